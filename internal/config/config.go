package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	LLM        LLMConfig        `yaml:"llm"`
	Knowledge  KnowledgeConfig  `yaml:"knowledge"`
	Moderation ModerationConfig `yaml:"moderation"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// RateLimitPerMinute caps requests per client IP; 0 disables limiting.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer-token authentication settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"quizmod"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
}

// LLMConfig holds settings for the Anthropic completion client used for
// bias classification and corrective-content generation.
type LLMConfig struct {
	APIKey            string        `yaml:"api_key"            env:"LLM_API_KEY"            env-required:"true"`
	Model             string        `yaml:"model"              env:"LLM_MODEL"              env-default:"claude-sonnet-4-20250514"`
	ClassifyTimeout   time.Duration `yaml:"classify_timeout"   env:"LLM_CLASSIFY_TIMEOUT"   env-default:"60s"`
	GenerateTimeout   time.Duration `yaml:"generate_timeout"   env:"LLM_GENERATE_TIMEOUT"   env-default:"120s"`
	ClassifyMaxTokens int64         `yaml:"classify_max_tokens" env:"LLM_CLASSIFY_MAX_TOKENS" env-default:"1024"`
	GenerateMaxTokens int64         `yaml:"generate_max_tokens" env:"LLM_GENERATE_MAX_TOKENS" env-default:"2048"`
}

// KnowledgeConfig holds Weaviate knowledge-store settings.
type KnowledgeConfig struct {
	Host      string        `yaml:"host"       env:"KNOWLEDGE_HOST"       env-default:"localhost:8081"`
	Scheme    string        `yaml:"scheme"     env:"KNOWLEDGE_SCHEME"     env-default:"http"`
	ClassName string        `yaml:"class_name" env:"KNOWLEDGE_CLASS_NAME" env-default:"EducationalContent"`
	Timeout   time.Duration `yaml:"timeout"    env:"KNOWLEDGE_TIMEOUT"    env-default:"30s"`
	TopK      int           `yaml:"top_k"      env:"KNOWLEDGE_TOP_K"      env-default:"3"`
}

// ModerationConfig holds escalation and review-queue settings.
type ModerationConfig struct {
	// ConfidenceThreshold is the classifier confidence below which a
	// no-bias result is still escalated for human review.
	ConfidenceThreshold float64 `yaml:"confidence_threshold" env:"MODERATION_CONFIDENCE_THRESHOLD" env-default:"0.6"`
	// ConcernKeywordsRaw is a comma-separated denylist of keywords in user
	// comments that force an urgent review.
	ConcernKeywordsRaw string `yaml:"concern_keywords" env:"MODERATION_CONCERN_KEYWORDS" env-default:"biased,offensive,inappropriate,stereotype,racist,sexist,discriminat,exclusive,unfair"`
	ListPageSize       int    `yaml:"list_page_size"   env:"MODERATION_LIST_PAGE_SIZE"   env-default:"100"`

	// ConcernKeywords is parsed from ConcernKeywordsRaw during validation.
	ConcernKeywords []string `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ParseKeywords splits a comma-separated keyword list, trimming whitespace
// and lowercasing. Empty entries are dropped.
func ParseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		keywords = append(keywords, p)
	}
	return keywords
}
