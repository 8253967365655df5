package config

import (
	"os"
	"strings"
)

// Environment names
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// GetEnvironment reads CLOKSY_SERVER_ENVIRONMENT, defaulting to development.
func GetEnvironment() string {
	env := os.Getenv("CLOKSY_SERVER_ENVIRONMENT")
	if env == "" {
		return EnvDevelopment
	}
	return strings.ToLower(env)
}

// IsProductionLike reports whether staging or production rules apply.
func IsProductionLike() bool {
	env := GetEnvironment()
	return env == EnvStaging || env == EnvProduction
}
