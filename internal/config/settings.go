package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Server    ServerSettings    `yaml:"server"`
	Database  DatabaseSettings  `yaml:"database"`
	Redis     RedisSettings     `yaml:"redis"`
	Auth      AuthSettings      `yaml:"auth"`
	Gemini    GeminiSettings    `yaml:"gemini"`
	Mail      MailSettings      `yaml:"mail"`
	Log       LogSettings       `yaml:"log"`
	RateLimit RateLimitSettings `yaml:"rate_limit"`
}

type ServerSettings struct {
	Port           string   `yaml:"port"`
	BackendURL     string   `yaml:"backend_url"`
	FrontendURL    string   `yaml:"frontend_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseSettings struct {
	DSN string `yaml:"dsn"`
}

// RedisSettings is optional; an empty Addr disables the question index cache.
type RedisSettings struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      string `yaml:"ttl"`
}

type AuthSettings struct {
	JWTSecret string `yaml:"jwt_secret"`
	CryptoKey string `yaml:"crypto_key"`
}

type GeminiSettings struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type MailSettings struct {
	ResendAPIKey      string   `yaml:"resend_api_key"`
	From              string   `yaml:"from"`
	ReplyTo           string   `yaml:"reply_to"`
	ContactRecipients []string `yaml:"contact_recipients"`
}

type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type RateLimitSettings struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

func Defaults() *Settings {
	return &Settings{
		Server: ServerSettings{
			Port:           "8080",
			BackendURL:     "http://localhost:8080",
			FrontendURL:    "http://localhost:3000",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Redis:     RedisSettings{TTL: "10m"},
		Gemini:    GeminiSettings{Model: "gemini-2.0-flash"},
		Mail:      MailSettings{From: "quizlens <no-reply@quizlens.app>"},
		Log:       LogSettings{Level: "info", Format: "json"},
		RateLimit: RateLimitSettings{RPS: 10, Burst: 20},
	}
}

// Load reads .env (if present), then the YAML file at path (if present),
// then applies environment overrides.
func Load(path string) (*Settings, error) {
	_ = godotenv.Load()

	s := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(s)
	return s, nil
}

func applyEnv(s *Settings) {
	s.Server.Port = getEnv("PORT", s.Server.Port)
	s.Server.BackendURL = getEnv("BACKEND_URL", s.Server.BackendURL)
	s.Server.FrontendURL = getEnv("FRONTEND_URL", s.Server.FrontendURL)
	s.Server.AllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", s.Server.AllowedOrigins)

	s.Database.DSN = getEnv("DATABASE_DSN", s.Database.DSN)

	s.Redis.Addr = getEnv("REDIS_ADDR", s.Redis.Addr)
	s.Redis.Password = getEnv("REDIS_PASSWORD", s.Redis.Password)
	s.Redis.TTL = getEnv("REDIS_TTL", s.Redis.TTL)
	if v, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		s.Redis.DB = v
	}

	s.Auth.JWTSecret = getEnv("JWT_SECRET", s.Auth.JWTSecret)
	s.Auth.CryptoKey = getEnv("CRYPTO_KEY", s.Auth.CryptoKey)

	s.Gemini.APIKey = getEnv("GOOGLE_API_KEY", s.Gemini.APIKey)
	s.Gemini.APIKey = getEnv("GEMINI_API_KEY", s.Gemini.APIKey)
	s.Gemini.Model = getEnv("GEMINI_MODEL", s.Gemini.Model)

	s.Mail.ResendAPIKey = getEnv("RESEND_API_KEY", s.Mail.ResendAPIKey)
	s.Mail.From = getEnv("RESEND_FROM_EMAIL", s.Mail.From)
	s.Mail.ReplyTo = getEnv("RESEND_REPLY_TO", s.Mail.ReplyTo)
	s.Mail.ContactRecipients = getEnvList("CONTACT_RECIPIENTS", s.Mail.ContactRecipients)

	s.Log.Level = getEnv("LOG_LEVEL", s.Log.Level)
	s.Log.Format = getEnv("LOG_FORMAT", s.Log.Format)

	if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64); err == nil {
		s.RateLimit.RPS = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST")); err == nil {
		s.RateLimit.Burst = v
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TTLDuration parses raw as a duration, falling back when it is empty, invalid or not positive.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
