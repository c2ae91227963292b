package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env               string
	Port              string
	BaseURL           string
	DBURL             string
	AccessTokenSecret string
	AccessExpiryMin   int
	RefreshExpiryMin  int
	OTPExpirySec      int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	StorageDriver string
	PosterDir     string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
}

func Load() *Config {
	// A missing .env file is fine; real deployments set variables directly.
	_ = godotenv.Load()

	return &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		DBURL:             mustGetEnv("DB_URL"),
		AccessTokenSecret: mustGetEnv("ACCESS_TOKEN_SECRET"),
		AccessExpiryMin:   getEnvAsInt("ACCESS_TOKEN_EXPIRY", 25),
		RefreshExpiryMin:  getEnvAsInt("REFRESH_TOKEN_EXPIRY", 50),
		OTPExpirySec:      getEnvAsInt("OTP_EXPIRY_SECONDS", 70),

		SMTPHost: getEnv("SMTP_HOST", "localhost"),
		SMTPPort: getEnvAsInt("SMTP_PORT", 587),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "no-reply@movieapi.local"),

		StorageDriver: getEnv("STORAGE_DRIVER", "disk"),
		PosterDir:     getEnv("POSTER_DIR", "posters"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("S3_SECRET_KEY", ""),
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
