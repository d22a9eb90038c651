package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Link generation / resolution policies. The loose variants are the
// defaults; the strict ones are opt-in per deployment.
const (
	LinkGenerationAnyAuthenticated = "any-authenticated"
	LinkGenerationOwnerOnly        = "owner-only"

	LinkResolveAnyRegistered = "any-registered"
	LinkResolveOwnerOrShared = "owner-or-shared"
)

type Config struct {
	Port             string
	JWTSecret        string
	MongoURI         string
	DBName           string
	SkipAuth         bool
	Environment      string
	AppId            string
	FSPath           string // Physical directory for file uploads
	FSURL            string // URL path prefix for file access
	MaxUploadMB      int64
	LinkGeneration   string // who may mint share links
	LinkResolveScope string // who may resolve a share token
	SweepSchedule    string // cron spec for the orphan blob sweeper
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		JWTSecret:        getEnv("JWT_SECRET", "secret"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:           getEnv("DB_NAME", "go-fileshare"),
		SkipAuth:         getEnv("SKIP_AUTH", "false") == "true",
		Environment:      getEnv("ENVIRONMENT", "development"),
		AppId:            getEnv("APP_ID", "go-fileshare"),
		FSPath:           getEnv("FS_PATH", "./uploads"),
		FSURL:            getEnv("FS_URL", "/fs/uploads"),
		MaxUploadMB:      getEnvInt64("MAX_UPLOAD_MB", 10),
		LinkGeneration:   getEnv("LINK_GENERATION", LinkGenerationAnyAuthenticated),
		LinkResolveScope: getEnv("LINK_RESOLVE_SCOPE", LinkResolveAnyRegistered),
		SweepSchedule:    getEnv("SWEEP_SCHEDULE", "@hourly"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
