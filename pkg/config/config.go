package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultMaxUploadBytes = 5 * 1024 * 1024 // 5 MiB per file

type Config struct {
	Port string
	Env  string

	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresDB       string

	SecretKey      string
	UploadDir      string
	MaxUploadBytes int64

	StorageBackend    string // "disk" or "minio"
	MinioEndpoint     string
	MinioRootUser     string
	MinioRootPassword string
	MinioBucket       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		PostgresUser:     getEnv("POSTGRES_USER", "microblog"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "microblog"),
		PostgresHost:     getEnv("POSTGRES_HOST", "db"),
		PostgresDB:       getEnv("POSTGRES_DB", "microblog"),

		SecretKey:      getEnv("SECRET_KEY", "dev-secret-key"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),

		StorageBackend:    getEnv("STORAGE_BACKEND", "disk"),
		MinioEndpoint:     getEnv("MINIO_ENDPOINT", ""),
		MinioRootUser:     getEnv("MINIO_ROOT_USER", ""),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD", ""),
		MinioBucket:       getEnv("MINIO_BUCKET", "microblog-media"),
	}
}

// PostgresDSN assembles the GORM connection string from its components
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
