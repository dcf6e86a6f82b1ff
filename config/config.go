// Package config reads process configuration from the environment once at
// startup. The dummy-mode switches select fixture implementations in main;
// nothing re-checks them per request.
package config

import (
	"os"
	"strings"
)

type Config struct {
	Port               string
	CatalogAPIURL      string
	CatalogDummyMode   bool
	AnalyticsDummyMode bool
	AnalyticsAPIKey    string
}

func Load() Config {
	return Config{
		Port:               getenvDefault("PORT", "8080"),
		CatalogAPIURL:      getenvDefault("CATALOG_API_URL", "http://localhost:4000"),
		CatalogDummyMode:   boolEnv("CATALOG_DUMMY_MODE"),
		AnalyticsDummyMode: boolEnv("ANALYTICS_DUMMY_MODE"),
		AnalyticsAPIKey:    os.Getenv("ANALYTICS_API_KEY"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// boolEnv accepts 1/true/yes/on in any case as enabled.
func boolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
