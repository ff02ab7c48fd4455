package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LinkedIn struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"linkedin"`
	Search struct {
		Titles    []string `yaml:"titles"`
		Locations []string `yaml:"locations"`
	} `yaml:"search"`
	Limits struct {
		MaxDailyConnections int `yaml:"max_daily_connections"`
		MaxProfilesPerQuery int `yaml:"max_profiles_per_query"`
	} `yaml:"limits"`
	Browser struct {
		Headless        bool `yaml:"headless"`
		PageLoadTimeout int  `yaml:"page_load_timeout"`
		ImplicitWait    int  `yaml:"implicit_wait"`
	} `yaml:"browser"`
	Retry struct {
		Attempts int     `yaml:"attempts"`
		Backoff  float64 `yaml:"backoff"`
	} `yaml:"retry"`
	FollowUp struct {
		Days    int    `yaml:"days"`
		Message string `yaml:"message"`
	} `yaml:"follow_up"`
	Delay struct {
		MinSeconds int `yaml:"min_seconds"`
		MaxSeconds int `yaml:"max_seconds"`
	} `yaml:"delay"`
	AI struct {
		Model string `yaml:"model"`
	} `yaml:"ai"`
	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`
	Schedule struct {
		At string `yaml:"at"`
	} `yaml:"schedule"`
	Dashboard struct {
		Addr string `yaml:"addr"`
	} `yaml:"dashboard"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load() // optional
	cfg := defaultConfig()
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultConfig() Config {
	var cfg Config
	cfg.LinkedIn.BaseURL = "https://www.linkedin.com/"
	cfg.Limits.MaxDailyConnections = 50
	cfg.Limits.MaxProfilesPerQuery = 20
	cfg.Browser.Headless = true
	cfg.Browser.PageLoadTimeout = 30
	cfg.Browser.ImplicitWait = 5
	cfg.Retry.Attempts = 3
	cfg.Retry.Backoff = 2.0
	cfg.FollowUp.Days = 5
	cfg.FollowUp.Message = "Hi, just following up — would love to connect!"
	cfg.Delay.MinSeconds = 3
	cfg.Delay.MaxSeconds = 10
	cfg.AI.Model = "gpt-4o-mini"
	cfg.Data.Dir = "data"
	cfg.Schedule.At = "09:00"
	cfg.Dashboard.Addr = ":8080"
	cfg.Logging.Level = "info"
	cfg.Logging.File = "automation.log"
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := envInt("MAX_DAILY_REQUESTS"); ok {
		cfg.Limits.MaxDailyConnections = v
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		cfg.Browser.Headless = v == "1" || v == "true" || v == "yes"
	}
	if v, ok := envInt("RETRY_ATTEMPTS"); ok {
		cfg.Retry.Attempts = v
	}
	if v := os.Getenv("RETRY_BACKOFF"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Retry.Backoff = f
		}
	}
	if v, ok := envInt("FOLLOW_UP_DAYS"); ok {
		cfg.FollowUp.Days = v
	}
	if v, ok := envInt("PAGE_LOAD_TIMEOUT"); ok {
		cfg.Browser.PageLoadTimeout = v
	}
	if v, ok := envInt("IMPLICIT_WAIT"); ok {
		cfg.Browser.ImplicitWait = v
	}
	if v := os.Getenv("LINKEDBOT_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("LINKEDBOT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func validate(cfg *Config) error {
	if cfg.LinkedIn.BaseURL == "" {
		return errors.New("linkedin.base_url is required")
	}
	if cfg.Limits.MaxDailyConnections <= 0 {
		return errors.New("limits.max_daily_connections must be > 0")
	}
	if cfg.Limits.MaxProfilesPerQuery <= 0 {
		return errors.New("limits.max_profiles_per_query must be > 0")
	}
	if cfg.Retry.Attempts < 1 {
		return errors.New("retry.attempts must be >= 1")
	}
	if cfg.FollowUp.Days < 0 {
		return errors.New("follow_up.days must be >= 0")
	}
	if cfg.Delay.MinSeconds > cfg.Delay.MaxSeconds {
		return errors.New("delay.min_seconds must be <= delay.max_seconds")
	}
	if _, err := time.Parse("15:04", cfg.Schedule.At); err != nil {
		return fmt.Errorf("schedule.at must be HH:MM: %w", err)
	}
	return nil
}

// Credentials reads the account identifier and secret from the environment.
// They are never written to config files or the record store.
func (c *Config) Credentials() (email, password string, err error) {
	email = os.Getenv("LINKEDIN_EMAIL")
	password = os.Getenv("LINKEDIN_PASSWORD")
	if email == "" || password == "" {
		return "", "", errors.New("missing LINKEDIN_EMAIL or LINKEDIN_PASSWORD in environment")
	}
	return email, password, nil
}

// Queries builds the search query list as the cartesian product of
// configured titles and locations, falling back to one generic query.
func (c *Config) Queries() []string {
	var out []string
	for _, t := range c.Search.Titles {
		for _, loc := range c.Search.Locations {
			out = append(out, t+" "+loc)
		}
	}
	if len(out) == 0 && len(c.Search.Titles) > 0 {
		out = append(out, c.Search.Titles...)
	}
	if len(out) == 0 {
		out = []string{"Software Engineer United States"}
	}
	return out
}

func (c *Config) PageLoadTimeout() time.Duration {
	return time.Duration(c.Browser.PageLoadTimeout) * time.Second
}

func (c *Config) ImplicitWait() time.Duration {
	return time.Duration(c.Browser.ImplicitWait) * time.Second
}

func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.Retry.Backoff * float64(time.Second))
}
