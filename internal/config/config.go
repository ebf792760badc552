// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Spoilage  SpoilageConfig
	Recommend RecommendConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// DatasetConfig controls where the transaction log and catalogs are
// loaded from at startup. Source is one of "file", "postgres" or
// "generate".
type DatasetConfig struct {
	Source       string
	FilePath     string
	GenerateSeed int64
	GenerateSize int
	Workers      int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	KPITTLSeconds int
}

// SpoilageConfig holds the probabilistic spoilage model parameters.
// These are the production defaults; tests inject their own model.
type SpoilageConfig struct {
	Probability float64
	MaxFraction float64
	Seed        int64
}

type RecommendConfig struct {
	APIKey         string
	Endpoint       string
	Model          string
	TimeoutSeconds int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DATASET_SOURCE", "generate")
		viper.SetDefault("DATASET_FILE", "./data/pos_transactions.json")
		viper.SetDefault("DATASET_GENERATE_SEED", 1)
		viper.SetDefault("DATASET_GENERATE_SIZE", 5000)
		viper.SetDefault("DATASET_WORKERS", 4)
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "retailops")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_KPI_TTL_SECONDS", 60)
		viper.SetDefault("SPOILAGE_PROBABILITY", 0.05)
		viper.SetDefault("SPOILAGE_MAX_FRACTION", 0.20)
		viper.SetDefault("SPOILAGE_SEED", 0)
		viper.SetDefault("RECOMMEND_API_KEY", "")
		viper.SetDefault("RECOMMEND_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta")
		viper.SetDefault("RECOMMEND_MODEL", "gemini-2.5-flash")
		viper.SetDefault("RECOMMEND_TIMEOUT_SECONDS", 30)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Dataset: DatasetConfig{
				Source:       viper.GetString("DATASET_SOURCE"),
				FilePath:     viper.GetString("DATASET_FILE"),
				GenerateSeed: viper.GetInt64("DATASET_GENERATE_SEED"),
				GenerateSize: viper.GetInt("DATASET_GENERATE_SIZE"),
				Workers:      viper.GetInt("DATASET_WORKERS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
				KPITTLSeconds: viper.GetInt("CACHE_KPI_TTL_SECONDS"),
			},
			Spoilage: SpoilageConfig{
				Probability: viper.GetFloat64("SPOILAGE_PROBABILITY"),
				MaxFraction: viper.GetFloat64("SPOILAGE_MAX_FRACTION"),
				Seed:        viper.GetInt64("SPOILAGE_SEED"),
			},
			Recommend: RecommendConfig{
				APIKey:         viper.GetString("RECOMMEND_API_KEY"),
				Endpoint:       viper.GetString("RECOMMEND_ENDPOINT"),
				Model:          viper.GetString("RECOMMEND_MODEL"),
				TimeoutSeconds: viper.GetInt("RECOMMEND_TIMEOUT_SECONDS"),
			},
		}
	})

	return instance
}
