package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// External APIs. A missing key switches the matching adapter to mock data.
	NewsAPIKey   string `env:"NEWS_API_KEY"`
	TavilyAPIKey string `env:"TAVILY_API_KEY"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH" envDefault:"prompts/system_prompt.txt"`

	// Storage
	SessionDBPath string `env:"SESSION_DB_PATH" envDefault:"data/sessions.db"`
	AuditLogPath  string `env:"AUDIT_LOG_PATH" envDefault:"logs/interactions.jsonl"`

	// Front ends
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	DigestChatID     int64  `env:"DIGEST_CHAT_ID"`
	DefaultSessionID string `env:"DEFAULT_SESSION_ID" envDefault:"guest001"`

	// Network
	HTTPTimeoutSeconds int `env:"HTTP_TIMEOUT_SECONDS" envDefault:"15"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
