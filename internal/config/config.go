package config

import (
	"fmt"
	"os"
)

type Config struct {
	Env         string
	ListenAddr  string
	BotToken    string
	DatabaseURL string
	DBMaxConns  int
	BackendRPS  float64
	AuditBuffer int
	StaticDir   string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() (Config, error) {
	cfg := Config{
		Env:         getenv("APP_ENV", "development"),
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		BotToken:    os.Getenv("BOT_TOKEN"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBMaxConns:  getenvInt("DB_MAX_CONNS", 4),
		BackendRPS:  getenvFloat("BACKEND_RPS", 10),
		AuditBuffer: getenvInt("AUDIT_BUFFER", 256),
		StaticDir:   getenv("STATIC_DIR", "web/static"),
	}
	if cfg.BotToken == "" {
		// Not fatal here; callers decide. Tests and dry runs load config
		// without a live backend.
		return cfg, fmt.Errorf("BOT_TOKEN not set")
	}
	return cfg, nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		_, err := fmt.Sscanf(v, "%d", &out)
		if err == nil {
			return out
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		var out float64
		_, err := fmt.Sscanf(v, "%g", &out)
		if err == nil {
			return out
		}
	}
	return def
}
