package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"SignalStories/pkg/util"
)

type Config struct {
	Environment  string             `yaml:"environment" default:"development" validate:"required"`
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	Auth         AuthConfig         `yaml:"auth"`
	Fred         FredConfig         `yaml:"fred"`
	AlphaVantage AlphaVantageConfig `yaml:"alpha_vantage"`
	NewsAPI      NewsAPIConfig      `yaml:"news_api"`
	Anthropic    AnthropicConfig    `yaml:"anthropic"`
	HTTPClient   HTTPClientConfig   `yaml:"http_client"`
	Cache        CacheConfig        `yaml:"cache"`
}

type ServerConfig struct {
	Host            string          `yaml:"host" default:"0.0.0.0"`
	Port            int             `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" default:"90s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" default:"15s"`
	SlowThreshold   time.Duration   `yaml:"slow_threshold" default:"10s"`
	StaticDir       string          `yaml:"static_dir"`
	AllowOrigins    []string        `yaml:"allow_origins"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig bounds inbound API requests per user. Capacity 0 disables it.
type RateLimitConfig struct {
	Capacity     int     `yaml:"capacity" default:"30" validate:"min=0"`
	RefillPerSec float64 `yaml:"refill_per_sec" default:"1" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"json" validate:"oneof=json console"`
	Output string `yaml:"output" default:"stdout"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics"`
}

type AuthConfig struct {
	// AllowOpen admits unauthenticated requests when Firebase is not configured.
	AllowOpen  bool           `yaml:"allow_open"`
	LoginPath  string         `yaml:"login_path" default:"/login"`
	CookieName string         `yaml:"cookie_name" default:"auth-token"`
	Firebase   FirebaseConfig `yaml:"firebase"`
}

type FirebaseConfig struct {
	ProjectID   string `yaml:"project_id"`
	ClientEmail string `yaml:"client_email"`
	PrivateKey  string `yaml:"private_key"`
}

// Configured reports whether token verification can be performed.
func (f FirebaseConfig) Configured() bool {
	return f.ProjectID != ""
}

type FredConfig struct {
	APIKey           string `yaml:"api_key"`
	BaseURL          string `yaml:"base_url" default:"https://api.stlouisfed.org/fred/series/observations" validate:"url"`
	ObservationStart string `yaml:"observation_start" default:"2024-01-01" validate:"datetime=2006-01-02"`
}

type AlphaVantageConfig struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url" default:"https://www.alphavantage.co/query" validate:"url"`
	StaggerDelay      time.Duration `yaml:"stagger_delay" default:"1500ms"`
	RequestsPerMinute int           `yaml:"requests_per_minute" validate:"min=0"`
	CacheTTL          time.Duration `yaml:"cache_ttl" default:"15m"`
}

type NewsAPIConfig struct {
	APIKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url" default:"https://newsapi.org/v2/everything" validate:"url"`
	PageSize     int    `yaml:"page_size" default:"10" validate:"min=1,max=100"`
	MaxHeadlines int    `yaml:"max_headlines" default:"6" validate:"min=1"`
}

type AnthropicConfig struct {
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url" default:"https://api.anthropic.com/" validate:"url"`
	Model     string `yaml:"model" default:"claude-3-haiku-20240307" validate:"required"`
	MaxTokens int64  `yaml:"max_tokens" default:"300" validate:"min=1"`
}

type HTTPClientConfig struct {
	Timeout time.Duration `yaml:"timeout" default:"30s"`
}

type CacheConfig struct {
	Backend    string        `yaml:"backend" default:"memory" validate:"oneof=memory redis"`
	MaxEntries int           `yaml:"max_entries" default:"1000" validate:"min=1"`
	SummaryTTL time.Duration `yaml:"summary_ttl" default:"30m"`
	Redis      RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix" default:"signalstories"`
	PoolSize int    `yaml:"pool_size" default:"10" validate:"min=1"`
}

// Default returns a configuration with only default values applied.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load reads, parses and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// parse reads a YAML file over the defaults so that values present in the
// file, including false and zero, win.
func parse(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML, or defaults when path is empty, and
// overrides with environment variables. Validation runs once, after the
// overrides.
func LoadWithEnv(path string) (*Config, error) {
	var (
		c   *Config
		err error
	)
	if path == "" {
		c, err = Default()
	} else {
		c, err = parse(path)
	}
	if err != nil {
		return nil, err
	}

	c.applyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&c.Environment, "APP_ENV")
	setString(&c.Fred.APIKey, "FRED_API_KEY")
	setString(&c.AlphaVantage.APIKey, "ALPHA_VANTAGE_API_KEY")
	setString(&c.NewsAPI.APIKey, "NEWS_API_KEY")
	setString(&c.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	setString(&c.Auth.Firebase.ProjectID, "FIREBASE_PROJECT_ID")
	setString(&c.Auth.Firebase.ClientEmail, "FIREBASE_CLIENT_EMAIL")
	setString(&c.Auth.Firebase.PrivateKey, "FIREBASE_PRIVATE_KEY")
	setString(&c.Cache.Redis.Addr, "REDIS_ADDR")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Server.StaticDir, "STATIC_DIR")

	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.Backend = "redis"
	}
	c.Auth.AllowOpen = util.ParseBoolDefault(getenv("AUTH_ALLOW_OPEN"), c.Auth.AllowOpen)
	c.Server.Port = util.ParseIntDefault(getenv("PORT"), c.Server.Port)
	if v := getenv("ALLOW_ORIGINS"); v != "" {
		c.Server.AllowOrigins = util.SplitCSV(v)
	}

	// Private keys pasted into env files carry literal \n sequences.
	c.Auth.Firebase.PrivateKey = strings.ReplaceAll(c.Auth.Firebase.PrivateKey, `\n`, "\n")
}

// Validate checks if the configuration is valid. Upstream API keys are not
// required here; their absence is reported per request.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if !c.Auth.Firebase.Configured() && !c.Auth.AllowOpen {
		return fmt.Errorf("auth: firebase.project_id is not set; set auth.allow_open (AUTH_ALLOW_OPEN=true) to run without authentication")
	}
	if c.Auth.Firebase.Configured() && c.Auth.Firebase.ClientEmail != "" && c.Auth.Firebase.PrivateKey == "" {
		return fmt.Errorf("auth: firebase.private_key is required when client_email is set")
	}
	return nil
}
