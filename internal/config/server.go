// Package config provides configuration management for Inkwell.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment represents the deployment environment.
type Environment string

const (
	// EnvDevelopment is the default local development environment.
	EnvDevelopment Environment = "development"
	// EnvStaging is the staging/pre-production environment.
	EnvStaging Environment = "staging"
	// EnvProduction is the production environment.
	EnvProduction Environment = "production"
)

// ServerConfig holds server-level configuration loaded from environment variables.
type ServerConfig struct {
	Environment    Environment
	Port           int
	AllowedOrigins []string

	// RateLimitRequests is the number of requests allowed per RateLimitPeriod.
	RateLimitRequests int64
	RateLimitPeriod   string

	// RevisionHistoryLimit caps how many revision records are kept per
	// content entity. Zero means unbounded.
	RevisionHistoryLimit int
}

// LoadServerConfig reads server configuration from environment variables.
func LoadServerConfig() ServerConfig {
	env := Environment(os.Getenv("ENV"))
	switch env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// valid
	default:
		env = EnvDevelopment
	}

	port := getEnvInt("PORT", 8080)
	if port <= 0 || port > 65535 {
		port = 8080
	}

	revisionLimit := getEnvInt("REVISION_HISTORY_LIMIT", 0)
	if revisionLimit < 0 {
		revisionLimit = 0
	}

	rateLimitRequests := int64(getEnvInt("RATE_LIMIT_REQUESTS", 100))
	if rateLimitRequests <= 0 {
		rateLimitRequests = 100
	}

	rateLimitPeriod := os.Getenv("RATE_LIMIT_PERIOD")
	if rateLimitPeriod == "" {
		rateLimitPeriod = "1m"
	}

	return ServerConfig{
		Environment:          env,
		Port:                 port,
		AllowedOrigins:       splitList(os.Getenv("CORS_ORIGINS")),
		RateLimitRequests:    rateLimitRequests,
		RateLimitPeriod:      rateLimitPeriod,
		RevisionHistoryLimit: revisionLimit,
	}
}

// splitList parses a comma-separated environment value into a slice,
// dropping empty elements.
func splitList(val string) []string {
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvInt reads an integer from an environment variable, returning the default if unset or invalid.
func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
