package utils

import (
	"gopkg.in/yaml.v2"
	"log"
	"os"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// OpenRouter vision model configuration
	OpenRouterAPIKey  string `yaml:"OPENROUTER_API_KEY"`
	OpenRouterModel   string `yaml:"OPENROUTER_MODEL"`
	OpenRouterBaseURL string `yaml:"OPENROUTER_BASE_URL"`

	// When true, the adapter keeps the model's freshness booleans instead of
	// rederiving them from the clamped shelf life.
	TrustModelFlags bool `yaml:"TRUST_MODEL_FLAGS"`

	// Sessions older than this many days are purged. Zero disables cleanup.
	RetentionDays int `yaml:"RETENTION_DAYS"`

	// AWS S3 configuration (optional scan image archival)
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Set environment variables for keys that should be accessible via os.Getenv
	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("OPENROUTER_API_KEY", config.OpenRouterAPIKey)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "OPENROUTER_API_KEY":
		return config.OpenRouterAPIKey
	case "OPENROUTER_MODEL":
		return config.OpenRouterModel
	case "OPENROUTER_BASE_URL":
		return config.OpenRouterBaseURL
	case "TRUST_MODEL_FLAGS":
		return getBoolString(config.TrustModelFlags)
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

func GetRetentionDays() int {
	return config.RetentionDays
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
