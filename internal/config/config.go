package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultModel is the model used when none is given.
const DefaultModel = "small"

type Config struct {
	Model      string `yaml:"model" validate:"required"`
	ModelsDir  string `yaml:"models_dir" validate:"required"`
	Language   string `yaml:"language" validate:"required"`
	Threads    int    `yaml:"threads" validate:"gte=0,lte=256"`
	FFmpegPath string `yaml:"ffmpeg_path" validate:"required"`
	TempDir    string `yaml:"temp_dir"`
	LogLevel   string `yaml:"log_level"`
}

// envFiles are tried in order; the first one present is loaded.
var envFiles = []string{".env", ".env.local"}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// DefaultConfigPath returns the config file consulted when none is given.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "whisper-transcribe", "config.yaml")
}

// DefaultModelsDir returns the directory searched for ggml model files.
func DefaultModelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "models"
	}
	return filepath.Join(home, ".local", "share", "whisper-transcribe", "models")
}

// Default returns a Config with built-in values only.
func Default() *Config {
	return &Config{
		Model:      DefaultModel,
		ModelsDir:  DefaultModelsDir(),
		Language:   "auto",
		FFmpegPath: "ffmpeg",
		LogLevel:   "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML file,
// then the environment (including a .env file). An explicit path must exist;
// otherwise WHISPER_CONFIG or the default path is used when present.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := Default()

	file, explicit := path, path != ""
	if !explicit {
		file = getenv("WHISPER_CONFIG", DefaultConfigPath())
		explicit = os.Getenv("WHISPER_CONFIG") != ""
	}
	if file != "" {
		data, err := os.ReadFile(expandTilde(file))
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", file, err)
			}
		case explicit || !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.ModelsDir = expandTilde(cfg.ModelsDir)
	cfg.TempDir = expandTilde(cfg.TempDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Model = getenv("WHISPER_MODEL", c.Model)
	c.ModelsDir = getenv("WHISPER_MODELS_DIR", c.ModelsDir)
	c.Language = getenv("WHISPER_LANGUAGE", c.Language)
	c.Threads = getenvInt("WHISPER_THREADS", c.Threads)
	c.FFmpegPath = getenv("FFMPEG_PATH", c.FFmpegPath)
	c.TempDir = getenv("WHISPER_TEMP_DIR", c.TempDir)
	c.LogLevel = normalizeLevel(getenv("LOG_LEVEL", c.LogLevel))
}

// normalizeLevel maps a level zerolog does not know to info. The variable
// is inherited from whatever spawned us and must never fail a request.
func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if _, err := zerolog.ParseLevel(level); err != nil || level == "" {
		return "info"
	}
	return level
}

// loadDotEnv loads the first env file found, relative to the working
// directory. Variables already set in the process environment win.
func loadDotEnv() error {
	for _, p := range envFiles {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("error loading %s file: %w", p, err)
		}
		return nil
	}
	return nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
