package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"newsgenie/internal/assistant"
	"newsgenie/internal/config"
	"newsgenie/internal/llm"
	"newsgenie/internal/news"
	"newsgenie/internal/scheduler"
	"newsgenie/internal/search"
	"newsgenie/internal/session"
	"newsgenie/internal/storage"
	"newsgenie/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	if cfg.TelegramBotToken == "" {
		log.Fatalf("TELEGRAM_BOT_TOKEN is required for the bot front end")
	}

	asst, store, rec := buildAssistant(cfg)
	defer store.Close()

	bot, err := telegram.New(cfg.TelegramBotToken, asst, rec, cfg.DigestChatID)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sched := scheduler.New()
	sched.SetDigestFunction(bot.SendDailyDigest)
	if err := sched.Start(); err != nil {
		log.Printf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	bot.Start(context.Background())
}

func buildAssistant(cfg *config.Config) (*assistant.Assistant, *session.SQLiteStore, storage.Recorder) {
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
	if cfg.OpenAIAPIKey == "" && cfg.LLMProvider == config.ProviderOpenAI {
		log.Printf("Warning: OPENAI_API_KEY not set, answers will fall back to error text")
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
	), store, rec
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return ""
	}
	return string(data)
}
