// Package envcfg loads process configuration from the environment, with an
// optional .env file for local development.
package envcfg

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Port    string
	Storage string // "memory" or "file"
	DataDir string

	AdminPassword string

	LocationIQKey     string
	LocationIQBaseURL string

	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads the .env file when present and falls back to defaults for
// anything unset. A missing .env file is normal in deployed environments.
func Load(log *zap.Logger) Config {
	if err := godotenv.Load(); err == nil {
		log.Info("loaded .env file")
	}

	cfg := Config{
		Port:              getenv("PORT", "9000"),
		Storage:           getenv("STORAGE", "memory"),
		DataDir:           getenv("DATA_DIR", "data"),
		AdminPassword:     getenv("ADMIN_PASSWORD", ""),
		LocationIQKey:     getenv("LOCATIONIQ_API_KEY", ""),
		LocationIQBaseURL: getenv("LOCATIONIQ_BASE_URL", ""),
		KafkaTopic:        getenv("KAFKA_TOPIC", "deliverytrack.changes"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
