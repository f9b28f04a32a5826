package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort     string
	HOST        string
	DatabaseURL string

	// JWT Settings
	JWTSecret     string
	JWTExpiration string

	// AI Chat Settings
	GroqAPIKey string
	GroqModel  string

	// Seed sample catalog on boot when "true"
	Seed bool

	// Drop and recreate all tables on boot when "true" (dev only)
	Reset bool

	// CORS Settings
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

func LoadConfig() *Config {
	// Optional .env; production injects env vars directly
	_ = godotenv.Load()

	config := &Config{
		AppPort:     getEnv("PORT", "5000"),
		HOST:        getEnv("HOST", "0.0.0.0"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: getEnv("JWT_EXPIRES_IN", "72h"),

		GroqAPIKey: os.Getenv("GROQ_API_KEY"),
		GroqModel:  getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),

		Seed:  os.Getenv("SEED") == "true",
		Reset: os.Getenv("RESET_DB") == "true",

		CORSAllowOrigins: []string{"*"},
		CORSAllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}

	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
