package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI      string
	DBName        string
	MistralAPIKey string
	VisionModel   string
	VisionBaseURL string
	VisionTimeout time.Duration
	TempUploadDir string
	AuditDir      string
	LogLevel      string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:      getEnvOrDefault("MONGO_URI", ""),
		DBName:        getEnvOrDefault("DB_NAME", "ProductDb"),
		MistralAPIKey: getEnvOrDefault("MISTRAL_API_KEY", ""),
		VisionModel:   getEnvOrDefault("VISION_MODEL", "pixtral-12b-2409"),
		VisionBaseURL: getEnvOrDefault("VISION_BASE_URL", "https://api.mistral.ai/v1/chat/completions"),
		VisionTimeout: getDurationEnv("VISION_TIMEOUT", 60, time.Second),
		TempUploadDir: getEnvOrDefault("TEMP_UPLOAD_DIR", "temp_uploads"),
		AuditDir:      getEnvOrDefault("AUDIT_DIR", "saved_invoices"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
