// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv), maps environment variables to the Config
// struct, and validates that production deployments never run on the
// insecure development fallbacks.
package config
