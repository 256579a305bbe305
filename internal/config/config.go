package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultPort       = "3001"
	defaultAPIURL     = "http://localhost:4000/api"
	defaultPublicURL  = "http://localhost:3000"
	defaultFolder     = "listings"
	defaultAPITimeout = 15
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env            string
	Port           string
	APIURL         string // backend base URL including the /api prefix
	PublicURL      string // public EasyLease site, linked from the sidebar
	RedisURL       string // optional; view state falls back to process memory
	HealthAdminKey string
	UploadFolder   string
	APITimeout     time.Duration
	LogLevel       string
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", defaultPort)
	v.SetDefault("UPLOAD_FOLDER", defaultFolder)
	v.SetDefault("API_TIMEOUT_SECONDS", defaultAPITimeout)
	v.SetDefault("LOG_LEVEL", "info")

	env := v.GetString("APP_ENV")
	if env == "" {
		env = v.GetString("NODE_ENV")
	}
	if env == "" {
		env = "development"
	}

	timeout := v.GetInt("API_TIMEOUT_SECONDS")
	if timeout <= 0 {
		timeout = defaultAPITimeout
	}

	return &Config{
		Env:            env,
		Port:           v.GetString("PORT"),
		APIURL:         trimURL(firstSet(v, "API_URL", "NEXT_PUBLIC_API_URL"), defaultAPIURL),
		PublicURL:      trimURL(firstSet(v, "PUBLIC_URL", "NEXT_PUBLIC_PUBLIC_URL"), defaultPublicURL),
		RedisURL:       v.GetString("REDIS_URL"),
		HealthAdminKey: v.GetString("HEALTH_ADMIN_KEY"),
		UploadFolder:   v.GetString("UPLOAD_FOLDER"),
		APITimeout:     time.Duration(timeout) * time.Second,
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
	}, nil
}

func firstSet(v *viper.Viper, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(v.GetString(k)); s != "" {
			return s
		}
	}
	return ""
}

func trimURL(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return strings.TrimRight(s, "/")
}
