// Package config loads runtime settings from the environment. A .env file
// in the working directory is read first when present.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort        = ":8080"
	DefaultGitLabURL   = "https://gitlab.com"
	DefaultCacheTTL    = 24 * time.Hour
	DefaultConcurrency = 8
)

type Config struct {
	Port        string
	GitHubToken string
	GitLabToken string
	GitLabURL   string
	Cache       CacheConfig
	Concurrency int
}

type CacheConfig struct {
	RedisURL string
	Dir      string
	TTL      time.Duration
}

func Load() *Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset or
// malformed values.
func FromEnv(getenv func(string) string) *Config {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	return &Config{
		Port:        normalizePort(get("PORT")),
		GitHubToken: get("GITHUB_TOKEN"),
		GitLabToken: get("GITLAB_TOKEN"),
		GitLabURL:   strings.TrimSuffix(firstNonEmpty(get("GITLAB_URL"), DefaultGitLabURL), "/"),
		Cache: CacheConfig{
			RedisURL: get("REDIS_URL"),
			Dir:      get("REPOLENS_CACHE_DIR"),
			TTL:      parseDuration(get("REPOLENS_CACHE_TTL"), DefaultCacheTTL),
		},
		Concurrency: parsePositive(get("REPOLENS_CONCURRENCY"), DefaultConcurrency),
	}
}

func normalizePort(p string) string {
	switch {
	case p == "":
		return DefaultPort
	case strings.Contains(p, ":"):
		return p
	}
	return ":" + p
}

func parseDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
