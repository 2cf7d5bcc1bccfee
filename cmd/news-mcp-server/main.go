package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"newsgenie/internal/assistant"
	"newsgenie/internal/config"
	"newsgenie/internal/llm"
	"newsgenie/internal/news"
	"newsgenie/internal/search"
	"newsgenie/internal/session"
)

// NewsParams are the arguments for the get_news tool.
type NewsParams struct {
	Category string `json:"category" mcp:"news category, one of: business, entertainment, general, health, science, sports, technology"`
}

// SearchParams are the arguments for the search_web tool.
type SearchParams struct {
	Query string `json:"query" mcp:"free-text web search query"`
}

// AskParams are the arguments for the ask_assistant tool.
type AskParams struct {
	Question  string `json:"question" mcp:"natural-language input; routed to news, search or QA"`
	Category  string `json:"category,omitempty" mcp:"optional news category seed for routing"`
	SessionID string `json:"session_id,omitempty" mcp:"session id for history persistence (default: mcp)"`
}

// NewsGenieMCPServer exposes the assistant core as MCP tools.
type NewsGenieMCPServer struct {
	assistant *assistant.Assistant
}

func (s *NewsGenieMCPServer) GetNews(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[NewsParams]) (*mcp.CallToolResultFor[any], error) {
	category := strings.ToLower(strings.TrimSpace(params.Arguments.Category))
	log.Printf("MCP get_news: category=%q", category)

	text := s.assistant.Headlines(ctx, category)
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil
}

func (s *NewsGenieMCPServer) SearchWeb(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[SearchParams]) (*mcp.CallToolResultFor[any], error) {
	log.Printf("MCP search_web: query=%q", params.Arguments.Query)

	text := s.assistant.SearchResults(ctx, params.Arguments.Query)
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil
}

func (s *NewsGenieMCPServer) Ask(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AskParams]) (*mcp.CallToolResultFor[any], error) {
	sessionID := params.Arguments.SessionID
	if sessionID == "" {
		sessionID = "mcp"
	}
	log.Printf("MCP ask_assistant: session=%s question=%q", sessionID, params.Arguments.Question)

	text := s.assistant.Process(ctx, params.Arguments.Question, sessionID, params.Arguments.Category)
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
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
	defer store.Close()

	asst := assistant.New(
		news.NewSource(newsClient),
		search.NewSource(searchClient),
		llmClient,
		store,
		nil,
		"",
	)

	srv := &NewsGenieMCPServer{assistant: asst}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "newsgenie-mcp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_news",
		Description: "Gets top headlines for a news category (mock data when NewsAPI is unavailable)",
	}, srv.GetNews)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_web",
		Description: "Runs a web search and returns formatted results (mock data when Tavily is unavailable)",
	}, srv.SearchWeb)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_assistant",
		Description: "Routes a natural-language request through the assistant and persists it to session history",
	}, srv.Ask)

	log.Printf("Registered NewsGenie MCP tools: get_news, search_web, ask_assistant")
	log.Printf("Starting NewsGenie MCP server on stdin/stdout...")

	transport := mcp.NewStdioTransport()
	if err := server.Run(context.Background(), transport); err != nil {
		log.Fatalf("NewsGenie MCP server failed: %v", err)
	}
}
