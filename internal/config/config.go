package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Model    ModelConfig
	Weights  WeightConfig
	Qdrant   QdrantConfig
	Storage  StorageConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ModelConfig selects the language-model backend used for both semantic
// extraction and score adjustment. Supported providers: openai, anthropic,
// ollama, gemini. An empty or unknown provider runs the service in
// degraded mode (empty profiles, zero adjusted scores).
type ModelConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// WeightConfig is the weight vector applied to the five adjusted scores.
// Validated once at startup; the scoring path assumes it sums to 1.0.
type WeightConfig struct {
	Experience float64
	Skills     float64
	Education  float64
	Languages  float64
	JobFit     float64
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	VectorSize uint64
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cv_match"),
		},
		Model: ModelConfig{
			Provider: getEnv("EXTRACTION_MODEL_PROVIDER", ""),
			Model:    getEnv("EXTRACTION_MODEL", ""),
			APIKey:   getEnv("EXTRACTION_API_KEY", ""),
			BaseURL:  getEnv("EXTRACTION_BASE_URL", ""),
		},
		Weights: WeightConfig{
			Experience: getEnvAsFloat("WEIGHT_EXPERIENCE", 0.25),
			Skills:     getEnvAsFloat("WEIGHT_SKILLS", 0.35),
			Education:  getEnvAsFloat("WEIGHT_EDUCATION", 0.10),
			Languages:  getEnvAsFloat("WEIGHT_LANGUAGES", 0.10),
			JobFit:     getEnvAsFloat("WEIGHT_JOB_FIT", 0.20),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "cv_match_profiles"),
			VectorSize: uint64(getEnvAsInt64("QDRANT_VECTOR_SIZE", 768)),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// Validate enforces the weight-vector invariant at configuration time so the
// scoring path never has to re-check it.
func (w WeightConfig) Validate() error {
	weights := map[string]float64{
		"experience": w.Experience,
		"skills":     w.Skills,
		"education":  w.Education,
		"languages":  w.Languages,
		"job_fit":    w.JobFit,
	}

	sum := 0.0
	for name, weight := range weights {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("weight %s out of range [0,1]: %v", name, weight)
		}
		sum += weight
	}

	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
