package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	Port           string
	Env            string
	LogLevel       string
	StorageBackend string
	AllowedOrigin  string
	// DB Config
	DBDSN             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// Auth
	JWTSecret     string
	JWTIssuer     string
	JWTExpiresIn  time.Duration
	HashAlgorithm string
	BcryptCost    int
	// Cache
	CacheProductTTL time.Duration
	// Request limits
	SearchTimeout  time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() (*Config, error) {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			return nil, fmt.Errorf("load config file %q: %w", configFile, err)
		}
		log.Printf("Loaded configuration from %s", configFile)
	} else if err := godotenv.Load(); err != nil {
		// 2. No .env is normal in containers; system env vars are used.
		log.Println("No .env file found or error loading it, relying on system env vars")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("PORT"),
		Env:            v.GetString("ENV"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		StorageBackend: v.GetString("STORAGE_BACKEND"),
		AllowedOrigin:  v.GetString("ALLOWED_ORIGIN"),

		DBDSN:             v.GetString("DB_DSN"),
		DBMaxConns:        v.GetInt32("DB_MAX_CONNS"),
		DBMinConns:        v.GetInt32("DB_MIN_CONNS"),
		DBMaxConnIdleTime: v.GetDuration("DB_MAX_CONN_IDLE_TIME"),

		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		JWTExpiresIn:  v.GetDuration("JWT_EXPIRES_IN"),
		HashAlgorithm: v.GetString("HASH_ALGORITHM"),
		BcryptCost:    v.GetInt("BCRYPT_COST"),

		CacheProductTTL: v.GetDuration("CACHE_PRODUCT_TTL"),

		SearchTimeout:  v.GetDuration("SEARCH_TIMEOUT"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_BACKEND", BackendMemory)
	v.SetDefault("ALLOWED_ORIGIN", "http://localhost:3000")

	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_MAX_CONNS", 50)
	v.SetDefault("DB_MIN_CONNS", 10)
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", 15*time.Minute)

	v.SetDefault("JWT_SECRET", "default_secret_CHANGE_ME")
	v.SetDefault("JWT_ISSUER", "catalog-backend")
	v.SetDefault("JWT_EXPIRES_IN", 24*time.Hour)
	v.SetDefault("HASH_ALGORITHM", "bcrypt")
	v.SetDefault("BCRYPT_COST", 6)

	v.SetDefault("CACHE_PRODUCT_TTL", 10*time.Minute)

	v.SetDefault("SEARCH_TIMEOUT", 5*time.Second)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is required when STORAGE_BACKEND=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}
	switch c.HashAlgorithm {
	case "bcrypt", "argon2":
	default:
		errs = append(errs, fmt.Errorf("unknown HASH_ALGORITHM %q", c.HashAlgorithm))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.JWTExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.SearchTimeout <= 0 {
		errs = append(errs, errors.New("SEARCH_TIMEOUT must be positive"))
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" && c.Env == "production" {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	return errors.Join(errs...)
}
