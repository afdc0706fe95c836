package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the outfit service.
type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	GrayWhale GrayWhaleConfig
	Veo       VeoConfig
	Port      string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// GrayWhaleConfig holds the Gray Whale recommendation feed configuration.
type GrayWhaleConfig struct {
	ServerURL      string
	OrganizationID string
	AccessToken    string
}

// VeoConfig holds the video generation API configuration.
type VeoConfig struct {
	APIKey  string
	BaseURL string
}

// Known-good Gray Whale configuration used when the environment does not
// provide one. Carried over from the hackathon demo setup so the feed keeps
// working in a bare environment.
const (
	fallbackGrayWhaleServerURL = "https://app.productgenius.io"
	fallbackGrayWhaleOrgID     = "FittedAI"
	fallbackGrayWhaleToken     = "7cd2e0b1-8328-4838-91e8-6457b9bed2db"
)

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "outfit_service"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		GrayWhale: GrayWhaleConfig{
			ServerURL:      getEnv("GRAY_WHALE_SERVER_URL", ""),
			OrganizationID: getEnv("GRAY_WHALE_ORG_ID", ""),
			AccessToken:    getEnv("GRAY_WHALE_ACCESS_TOKEN", ""),
		},
		Veo: VeoConfig{
			APIKey:  getEnv("VEO_API_KEY", ""),
			BaseURL: getEnv("VEO_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		},
		Port: getEnv("SERVER_PORT", "8080"),
	}

	if cfg.GrayWhale.ServerURL == "" || cfg.GrayWhale.OrganizationID == "" || cfg.GrayWhale.AccessToken == "" {
		slog.Warn("incomplete Gray Whale config in environment, using known-good fallback",
			"server_url_set", cfg.GrayWhale.ServerURL != "",
			"org_id_set", cfg.GrayWhale.OrganizationID != "",
			"token_set", cfg.GrayWhale.AccessToken != "",
		)
		cfg.GrayWhale = GrayWhaleConfig{
			ServerURL:      fallbackGrayWhaleServerURL,
			OrganizationID: fallbackGrayWhaleOrgID,
			AccessToken:    fallbackGrayWhaleToken,
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
