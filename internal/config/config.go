package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BerylCAtieno/content-studio/internal/generator"
	"github.com/BerylCAtieno/content-studio/internal/models"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port             string
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBackend    string
	DataFile         string
	BrandFile        string
	StrictValidation bool
	DebugMode        bool
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:      getEnv("GEMINI_MODEL", generator.DefaultModel),
		GeminiBackend:    getEnv("GEMINI_BACKEND", generator.BackendGenerativeAI),
		DataFile:         getEnv("STUDIO_DATA_FILE", "data/studio.json"),
		BrandFile:        getEnv("BRAND_FILE", ""),
		StrictValidation: getEnvBool("STRICT_VALIDATION", false),
		DebugMode:        getEnvBool("DEBUG_MODE", false),
	}

	switch cfg.GeminiBackend {
	case generator.BackendGenerativeAI, generator.BackendGenAI:
	default:
		return nil, fmt.Errorf("GEMINI_BACKEND must be %q or %q, got %q",
			generator.BackendGenerativeAI, generator.BackendGenAI, cfg.GeminiBackend)
	}

	return cfg, nil
}

// GeneratorSettings returns the model settings for the configured model.
func (c *Config) GeneratorSettings() generator.Settings {
	s := generator.DefaultSettings()
	s.Model = c.GeminiModel
	return s
}

// LoadBrand reads a YAML brand seed. Missing timestamps are set to now.
func LoadBrand(path string, now time.Time) (models.BrandProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.BrandProfile{}, fmt.Errorf("read brand file: %w", err)
	}

	brand := models.DefaultBrand(now)
	if err := yaml.Unmarshal(data, &brand); err != nil {
		return models.BrandProfile{}, fmt.Errorf("parse brand file %s: %w", path, err)
	}
	if err := brand.Validate(); err != nil {
		return models.BrandProfile{}, fmt.Errorf("invalid brand in %s: %w", path, err)
	}

	if brand.CreatedAt.IsZero() {
		brand.CreatedAt = now
	}
	if brand.UpdatedAt.IsZero() {
		brand.UpdatedAt = now
	}
	return brand, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
