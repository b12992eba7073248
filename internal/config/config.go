package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config contains all runtime settings for the farmerbot client.
type Config struct {
	BackendURL       string
	DefaultLanguage  string
	MetricsNamespace string
	// MetricsAddr is the listen address for the Prometheus endpoint, empty
	// to disable it.
	MetricsAddr string

	DeepgramAPIKey string
	VoiceEnabled   bool
	AudioBackend   string

	MalayalamRate   float64
	MalayalamPitch  float64
	MalayalamVolume float64
	EnglishRate     float64
	EnglishPitch    float64
	EnglishVolume   float64
}

// Load reads environment variables and applies safe defaults. Voice features
// are enabled only when a Deepgram key is present; the client stays fully
// functional text-only without one.
func Load() (Config, error) {
	cfg := Config{
		BackendURL:       envOrDefault("FARMERBOT_BACKEND_URL", "http://localhost:8000"),
		DefaultLanguage:  envOrDefault("FARMERBOT_LANGUAGE", "english"),
		MetricsNamespace: envOrDefault("FARMERBOT_METRICS_NAMESPACE", "farmerbot"),
		MetricsAddr:      strings.TrimSpace(os.Getenv("FARMERBOT_METRICS_ADDR")),
		DeepgramAPIKey:   strings.TrimSpace(os.Getenv("DEEPGRAM_API_KEY")),
		AudioBackend:     envOrDefault("FARMERBOT_AUDIO_BACKEND", "miniaudio"),
		MalayalamRate:    0.6,
		MalayalamPitch:   1.1,
		MalayalamVolume:  0.9,
		EnglishRate:      0.8,
		EnglishPitch:     1.0,
		EnglishVolume:    0.9,
	}
	cfg.VoiceEnabled = cfg.DeepgramAPIKey != ""

	var err error
	if cfg.MalayalamRate, err = floatOrDefault("FARMERBOT_ML_RATE", cfg.MalayalamRate); err != nil {
		return Config{}, err
	}
	if cfg.MalayalamPitch, err = floatOrDefault("FARMERBOT_ML_PITCH", cfg.MalayalamPitch); err != nil {
		return Config{}, err
	}
	if cfg.MalayalamVolume, err = floatOrDefault("FARMERBOT_ML_VOLUME", cfg.MalayalamVolume); err != nil {
		return Config{}, err
	}
	if cfg.EnglishRate, err = floatOrDefault("FARMERBOT_EN_RATE", cfg.EnglishRate); err != nil {
		return Config{}, err
	}
	if cfg.EnglishPitch, err = floatOrDefault("FARMERBOT_EN_PITCH", cfg.EnglishPitch); err != nil {
		return Config{}, err
	}
	if cfg.EnglishVolume, err = floatOrDefault("FARMERBOT_EN_VOLUME", cfg.EnglishVolume); err != nil {
		return Config{}, err
	}

	switch cfg.DefaultLanguage {
	case "english", "malayalam":
	default:
		return Config{}, fmt.Errorf("unsupported FARMERBOT_LANGUAGE %q", cfg.DefaultLanguage)
	}

	switch cfg.AudioBackend {
	case "miniaudio", "portaudio":
	default:
		return Config{}, fmt.Errorf("unsupported FARMERBOT_AUDIO_BACKEND %q", cfg.AudioBackend)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func floatOrDefault(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}
