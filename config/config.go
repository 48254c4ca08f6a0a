package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env               string
	Port              string
	MongoURL          string
	MongoDB           string
	SecretKey         string
	APIKey            string
	AccessExpiryMin   int
	ResetExpiryMin    int
	AllowedOrigins    []string
	RequestsPerMinute int
	HSTSMaxAge        int
	CSPPolicy         string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	FrontendURL       string
}

func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8000"),
		MongoURL:          mustGetEnv("MONGODB_URL"),
		MongoDB:           getEnv("MONGODB_DB", "student_db"),
		SecretKey:         mustGetEnv("SECRET_KEY"),
		APIKey:            mustGetEnv("API_KEY"),
		AccessExpiryMin:   getEnvAsInt("ACCESS_TOKEN_EXPIRY", 30),
		ResetExpiryMin:    getEnvAsInt("RESET_TOKEN_EXPIRY", 60),
		AllowedOrigins:    getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RequestsPerMinute: getEnvAsInt("REQUESTS_PER_MINUTE", 60),
		HSTSMaxAge:        getEnvAsInt("HSTS_MAX_AGE", 31536000),
		CSPPolicy:         getEnv("CSP_POLICY", "default-src 'self'"),
		SMTPHost:          getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsSlice(key string, defaultVal []string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	parts := strings.Split(valStr, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
