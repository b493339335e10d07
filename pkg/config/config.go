package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Server
	Port    string
	AppName string

	// Database
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// AWS; empty access/secret keys fall back to the SDK default chain
	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	AWSBucket    string // source-document bucket, filled by the ingestion pipeline

	// Bedrock models
	EmbedModel string
	TextModel  string

	// Retrieval
	TopK                int
	SimilarityThreshold float64

	// Generation
	GenMaxTokens   int
	GenTemperature float64
	GenTopP        float64

	// MCP
	MCPEnabled bool
	MCPPort    string

	// Frontend
	FrontendURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envOrDefault("PORT", "8000"),
		AppName: envOrDefault("APP_NAME", "AWS RAG Chatbot API"),

		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBName:     envOrDefault("DB_NAME", "ragchat"),
		DBUser:     envOrDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  envOrDefault("DB_SSLMODE", "disable"),

		AWSRegion:    envOrDefault("AWS_REGION", "us-east-1"),
		AWSAccessKey: os.Getenv("AWS_ACCESS_KEY"),
		AWSSecretKey: os.Getenv("AWS_SECRET_KEY"),
		AWSBucket:    os.Getenv("AWS_BUCKET"),

		EmbedModel: envOrDefault("BEDROCK_EMBED_MODEL", "amazon.titan-embed-text-v2:0"),
		TextModel:  envOrDefault("BEDROCK_TEXT_MODEL", "amazon.titan-text-express-v1"),

		TopK:                envOrDefaultInt("RETRIEVAL_TOP_K", 5),
		SimilarityThreshold: envOrDefaultFloat("SIMILARITY_THRESHOLD", 0.05),

		GenMaxTokens:   envOrDefaultInt("GEN_MAX_TOKENS", 4000),
		GenTemperature: envOrDefaultFloat("GEN_TEMPERATURE", 0.7),
		GenTopP:        envOrDefaultFloat("GEN_TOP_P", 0.9),

		MCPEnabled: envOrDefaultBool("MCP_ENABLED", false),
		MCPPort:    envOrDefault("MCP_PORT", "8001"),

		FrontendURL: envOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}
}

// DSN returns the Postgres connection string in key=value form.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}

func envOrDefaultFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func envOrDefaultBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
