package config

import (
	"fmt"
	"os"
	"time"

	"inkwell/internal/pkg"

	"gopkg.in/yaml.v3"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Duration lets YAML carry values like "30m" or "24h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type AuthConfig struct {
	AccessSecret  string   `yaml:"access_secret"`
	RefreshSecret string   `yaml:"refresh_secret"`
	AccessTTL     Duration `yaml:"access_ttl"`
	RefreshTTL    Duration `yaml:"refresh_ttl"`
}

type Config struct {
	Addr     string          `yaml:"addr"`
	MySQLDSN string          `yaml:"mysql_dsn"`
	Redis    RedisConfig     `yaml:"redis"`
	Kafka    pkg.KafkaConfig `yaml:"kafka"`
	SMTP     pkg.SMTPConfig  `yaml:"smtp"`
	Auth     AuthConfig      `yaml:"auth"`

	// PostsPerPage drives every paginated listing; TitleChars is the
	// character limit for the derived post title on the detail view.
	PostsPerPage int `yaml:"posts_per_page"`
	TitleChars   int `yaml:"title_chars"`
}

func defaults() *Config {
	return &Config{
		Addr:     ":8080",
		MySQLDSN: "root:root@tcp(127.0.0.1:3306)/inkwell?charset=utf8mb4&parseTime=True",
		Redis:    RedisConfig{Addr: "127.0.0.1:6379"},
		Auth: AuthConfig{
			AccessSecret:  "dev-access-secret",
			RefreshSecret: "dev-refresh-secret",
			AccessTTL:     Duration(30 * time.Minute),
			RefreshTTL:    Duration(24 * time.Hour),
		},
		PostsPerPage: 10,
		TitleChars:   30,
	}
}

// Load reads the YAML file at path (optional: "" or a missing file keeps
// defaults), then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("INKWELL_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("INKWELL_MYSQL_DSN"); v != "" {
		cfg.MySQLDSN = v
	}
	if v := os.Getenv("INKWELL_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("INKWELL_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("INKWELL_ACCESS_SECRET"); v != "" {
		cfg.Auth.AccessSecret = v
	}
	if v := os.Getenv("INKWELL_REFRESH_SECRET"); v != "" {
		cfg.Auth.RefreshSecret = v
	}
}

func (c *Config) validate() error {
	if c.PostsPerPage < 1 {
		return fmt.Errorf("posts_per_page must be positive, got %d", c.PostsPerPage)
	}
	if c.TitleChars < 1 {
		return fmt.Errorf("title_chars must be positive, got %d", c.TitleChars)
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return fmt.Errorf("auth token TTLs must be positive")
	}
	return nil
}
