package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App  AppConfig
	Log  LogConfig
	HTTP HTTPConfig
	Wave WaveConfig
}

// AppConfig holds application-specific settings.
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// WaveConfig holds the accounting platform integration settings. The account
// and title tables are keyed by business display name.
type WaveConfig struct {
	APIBaseURL          string
	Token               string
	TimeoutSeconds      int
	Businesses          []string
	IncomeAccounts      map[string]string
	ExpenseAccounts     map[string]string
	TitleOverrides      map[string]string
	InvoicePageSize     int
	CustomerPageSize    int
	RateLimitRetryDelay time.Duration
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with GOLDENHOUR_ prefix (e.g. GOLDENHOUR_WAVE_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("GOLDENHOUR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
		},
		Wave: WaveConfig{
			APIBaseURL:          v.GetString("wave.api_base_url"),
			Token:               v.GetString("wave.token"),
			TimeoutSeconds:      v.GetInt("wave.timeout_seconds"),
			Businesses:          v.GetStringSlice("wave.businesses"),
			IncomeAccounts:      v.GetStringMapString("wave.income_accounts"),
			ExpenseAccounts:     v.GetStringMapString("wave.expense_accounts"),
			TitleOverrides:      v.GetStringMapString("wave.title_overrides"),
			InvoicePageSize:     v.GetInt("wave.invoice_page_size"),
			CustomerPageSize:    v.GetInt("wave.customer_page_size"),
			RateLimitRetryDelay: v.GetDuration("wave.rate_limit_retry_delay"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "goldenhour-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if len(cfg.Wave.Businesses) == 0 {
		cfg.Wave.Businesses = []string{
			"Golden Hour Photography",
			"Golden Hour Films",
		}
	}
	if len(cfg.Wave.IncomeAccounts) == 0 {
		cfg.Wave.IncomeAccounts = map[string]string{
			"Golden Hour Photography": "Photography Sales",
			"Golden Hour Films":       "Film Production Sales",
		}
	}
	if len(cfg.Wave.ExpenseAccounts) == 0 {
		cfg.Wave.ExpenseAccounts = map[string]string{
			"Golden Hour Photography": "Production Supplies",
			"Golden Hour Films":       "Production Supplies",
		}
	}
	if len(cfg.Wave.TitleOverrides) == 0 {
		cfg.Wave.TitleOverrides = map[string]string{
			"Golden Hour Films": "Golden Hour Films Production Invoice",
		}
	}
}

// validate performs validation on the configuration.
func (c *Config) validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}

	if c.App.Env == "production" {
		if c.Wave.Token == "" {
			return fmt.Errorf("wave.token is required in production")
		}
	}
	return nil
}
