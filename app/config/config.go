package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB           *sql.DB
	JWTSecret    string
	OpenAIAPIKey string
	OpenAIModel  string
	UploadDir    string
}

var AppConfig *Config

// LoadEnv loads a local .env file when present; real deployments set the
// variables directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

// GetEnv returns the value of key or fallback when unset.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid %s=%q, using %d", key, os.Getenv(key), fallback)
	}
	return fallback
}

// InitDB opens the Postgres pool and builds the global config. It fails hard:
// the application cannot serve anything meaningful without a database.
func InitDB() {
	psqlInfo := os.Getenv("DATABASE_URL")
	if psqlInfo == "" {
		psqlInfo = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			GetEnv("DB_HOST", "localhost"),
			GetEnv("DB_PORT", "5432"),
			GetEnv("DB_USER", "postgres"),
			GetEnv("DB_PASSWORD", ""),
			GetEnv("DB_NAME", "newassessment"),
			GetEnv("DB_SSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(getEnvInt("DB_MAX_OPEN_CONNS", 25))
	db.SetMaxIdleConns(getEnvInt("DB_MAX_IDLE_CONNS", 5))

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatalf("Cannot establish database connection: %v", err)
	}

	AppConfig = &Config{
		DB:           db,
		JWTSecret:    GetEnv("JWT_SECRET", ""),
		OpenAIAPIKey: GetEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  GetEnv("OPENAI_MODEL", "gpt-4o"),
		UploadDir:    GetEnv("UPLOAD_DIR", "./uploads"),
	}

	if AppConfig.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set, using development default")
		AppConfig.JWTSecret = "newassessment-dev-secret"
	}

	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
