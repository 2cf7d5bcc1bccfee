package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"newsgenie/internal/assistant"
	"newsgenie/internal/config"
	"newsgenie/internal/llm"
	"newsgenie/internal/news"
	"newsgenie/internal/search"
	"newsgenie/internal/session"
	"newsgenie/internal/storage"
)

// One-shot front end: ask a question, show history, or clear a session.
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	sessionFlag := flag.String("session", cfg.DefaultSessionID, "session id")
	categoryFlag := flag.String("category", "", "news category (business, entertainment, general, health, science, sports, technology)")
	limitFlag := flag.Int("limit", assistant.HistoryDisplayLimit, "max history entries to show")
	flag.Parse()

	args := flag.Args()
	command := "ask"
	if len(args) > 0 {
		switch args[0] {
		case "ask", "history", "clear":
			command = args[0]
			args = args[1:]
		}
	}

	asst, store := buildAssistant(cfg)
	defer store.Close()

	switch command {
	case "history":
		showHistory(asst, *sessionFlag, *limitFlag)
	case "clear":
		if err := asst.ClearSession(*sessionFlag); err != nil {
			log.Fatalf("failed to clear session: %v", err)
		}
		fmt.Println("Session history cleared.")
	default:
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" && *categoryFlag == "" {
			fmt.Fprintln(os.Stderr, "usage: cli [flags] ask <question> | history | clear")
			flag.PrintDefaults()
			os.Exit(2)
		}
		response := asst.Process(context.Background(), query, *sessionFlag, *categoryFlag)
		fmt.Println(response)
	}
}

func showHistory(asst *assistant.Assistant, sessionID string, limit int) {
	interactions, err := asst.History(sessionID, limit)
	if err != nil {
		log.Fatalf("failed to load history: %v", err)
	}
	if len(interactions) == 0 {
		fmt.Println("No history yet.")
		return
	}
	for _, in := range interactions {
		label := in.Query
		if label == "" {
			label = "(category request)"
		}
		fmt.Printf("%s [%s] %s\n", in.Timestamp.Local().Format("2006-01-02 15:04:05"), in.Route, label)
		fmt.Printf("  %s\n", strings.ReplaceAll(in.Response, "\n", "\n  "))
	}
}

func buildAssistant(cfg *config.Config) (*assistant.Assistant, *session.SQLiteStore) {
	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	var newsClient *news.Client
	if cfg.NewsAPIKey != "" {
		newsClient = news.NewClient(cfg.NewsAPIKey, timeout)
	} else {
		log.Printf("Warning: NEWS_API_KEY not set, news will use sample headlines")
	}

	var searchClient *search.Client
	if cfg.TavilyAPIKey != "" {
		searchClient = search.NewClient(cfg.TavilyAPIKey, timeout)
	} else {
		log.Printf("Warning: TAVILY_API_KEY not set, web search will use mock results")
	}

	llmClient, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	store, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("failed to open session store: %v", err)
	}

	var rec storage.Recorder
	if cfg.AuditLogPath != "" {
		fr, err := storage.NewFileRecorder(cfg.AuditLogPath)
		if err != nil {
			log.Printf("failed to init audit recorder: %v", err)
		} else {
			rec = fr
		}
	}

	systemPrompt := readSystemPrompt(cfg.SystemPromptPath)

	return assistant.New(
		news.NewSource(newsClient),
		search.NewSource(searchClient),
		llmClient,
		store,
		rec,
		systemPrompt,
	), store
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
