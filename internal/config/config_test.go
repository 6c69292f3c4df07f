package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BerylCAtieno/content-studio/internal/generator"
	"github.com/BerylCAtieno/content-studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL", "GEMINI_BACKEND",
		"STUDIO_DATA_FILE", "BRAND_FILE", "STRICT_VALIDATION", "DEBUG_MODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "", cfg.GeminiAPIKey)
	assert.Equal(t, generator.DefaultModel, cfg.GeminiModel)
	assert.Equal(t, generator.BackendGenerativeAI, cfg.GeminiBackend)
	assert.Equal(t, "data/studio.json", cfg.DataFile)
	assert.False(t, cfg.StrictValidation)
	assert.False(t, cfg.DebugMode)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)

	t.Run("GOOGLE_API_KEY is a fallback", func(t *testing.T) {
		t.Setenv("GOOGLE_API_KEY", "google-key")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "google-key", cfg.GeminiAPIKey)
	})

	t.Run("GEMINI_API_KEY wins", func(t *testing.T) {
		t.Setenv("GOOGLE_API_KEY", "google-key")
		t.Setenv("GEMINI_API_KEY", "gemini-key")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "gemini-key", cfg.GeminiAPIKey)
	})

	t.Run("flags and backend", func(t *testing.T) {
		t.Setenv("STRICT_VALIDATION", "true")
		t.Setenv("DEBUG_MODE", "1")
		t.Setenv("GEMINI_BACKEND", "genai")
		t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.StrictValidation)
		assert.True(t, cfg.DebugMode)
		assert.Equal(t, generator.BackendGenAI, cfg.GeminiBackend)
		assert.Equal(t, "gemini-2.5-flash", cfg.GeneratorSettings().Model)
	})

	t.Run("bad bool keeps default", func(t *testing.T) {
		t.Setenv("STRICT_VALIDATION", "sometimes")
		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.StrictValidation)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("GEMINI_BACKEND", "openai")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadBrand(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	path := filepath.Join(dir, "brand.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
id: brand-atelier
name: Atelier Noir
industry: luxury
tone: luxurious
voice_description: Quiet confidence.
target_audience: Collectors of rare leather goods
keywords:
  - bespoke
  - heritage
colors:
  primary: "#111111"
  secondary: "#222222"
  accent: "#C0A060"
`), 0o644))

	brand, err := LoadBrand(path, now)
	require.NoError(t, err)
	assert.Equal(t, "Atelier Noir", brand.Name)
	assert.Equal(t, models.IndustryLuxury, brand.Industry)
	assert.Equal(t, models.ToneLuxurious, brand.Tone)
	assert.Equal(t, []string{"bespoke", "heritage"}, brand.Keywords)
	assert.Equal(t, "#C0A060", brand.Colors.Accent)
	assert.Equal(t, now, brand.CreatedAt)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("industry: automotive\n"), 0o644))
	_, err = LoadBrand(bad, now)
	assert.Error(t, err)

	_, err = LoadBrand(filepath.Join(dir, "missing.yaml"), now)
	assert.Error(t, err)
}
