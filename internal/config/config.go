package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env    string `yaml:"env"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL       string `yaml:"ttl"`
		Dir       string `yaml:"dir"`
		DefaultID string `yaml:"default_id"`
	} `yaml:"quiz"`
	Confetti struct {
		Particles int    `yaml:"particles"`
		Success   string `yaml:"success"`
		Final     string `yaml:"final"`
		Settle    string `yaml:"settle"`
		FPS       int    `yaml:"fps"`
		Width     int    `yaml:"width"`
		Height    int    `yaml:"height"`
	} `yaml:"confetti"`
	Telegram struct {
		Token   string `yaml:"token"`
		Timeout int    `yaml:"timeout"`
		Debug   bool   `yaml:"debug"`
	} `yaml:"telegram"`
	Events struct {
		AMQPURL  string `yaml:"amqp_url"`
		Exchange string `yaml:"exchange"`
	} `yaml:"events"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{Env: "development"}
	cfg.Server.Port = "8080"
	cfg.Redis.TTL = "10m"
	cfg.Quiz.TTL = "10m"
	cfg.Quiz.DefaultID = "buddy-hunt"
	cfg.Confetti.Particles = 80
	cfg.Confetti.Success = "1400ms"
	cfg.Confetti.Final = "900ms"
	cfg.Confetti.Settle = "250ms"
	cfg.Confetti.FPS = 60
	cfg.Confetti.Width = 480
	cfg.Confetti.Height = 270
	cfg.Telegram.Timeout = 60
	cfg.Log.Level = "info"
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not
// an error. Environment variables override file values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadDotenv loads a .env file into the process environment if one exists.
// Variables already set are left untouched.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		cfg.Events.AMQPURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
