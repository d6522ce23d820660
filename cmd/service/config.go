package main

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	APIURL           string
	SupportTokenFile string
	RedisURL         string
	HTTPTimeout      time.Duration
}

func loadConfigFromEnv() (Config, error) {
	cfg := Config{
		Port:             getenv("PORT", "8090"),
		APIURL:           getenv("API_URL", "http://localhost:8080"),
		SupportTokenFile: getenv("SUPPORT_TOKEN_FILE", "./support-token"),
		RedisURL:         getenv("REDIS_URL", ""),
		HTTPTimeout:      time.Duration(getenvInt("HTTP_TIMEOUT", 30)) * time.Second,
	}

	if _, err := url.Parse(cfg.APIURL); err != nil {
		return Config{}, errors.New("admin-dashboard: invalid API_URL: " + cfg.APIURL)
	}
	if cfg.HTTPTimeout <= 0 {
		return Config{}, errors.New("admin-dashboard: HTTP_TIMEOUT must be positive")
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
