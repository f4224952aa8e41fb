package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears every variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		"WHISPER_CONFIG", "WHISPER_MODEL", "WHISPER_MODELS_DIR", "WHISPER_LANGUAGE",
		"WHISPER_THREADS", "FFMPEG_PATH", "WHISPER_TEMP_DIR", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "small", cfg.Model)
	assert.Equal(t, "auto", cfg.Language)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0, cfg.Threads)
	assert.Equal(t, filepath.Join(home, ".local", "share", "whisper-transcribe", "models"), cfg.ModelsDir)
}

func TestLoadYAMLFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model: base
models_dir: ~/models
language: en
threads: 4
log_level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "base", cfg.Model)
	assert.Equal(t, filepath.Join(home, "models"), cfg.ModelsDir)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDefaultPathWhenPresent(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "whisper-transcribe")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("model: medium\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "medium", cfg.Model)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: base\nthreads: 2\n"), 0o644))

	t.Setenv("WHISPER_MODEL", "tiny")
	t.Setenv("WHISPER_THREADS", "8")
	t.Setenv("WHISPER_MODELS_DIR", "/opt/models")
	t.Setenv("LOG_LEVEL", "WARN")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tiny", cfg.Model)
	assert.Equal(t, 8, cfg.Threads)
	assert.Equal(t, "/opt/models", cfg.ModelsDir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		path          string
		errorContains string
	}{
		{
			name:          "explicit file missing",
			path:          "/nonexistent/config.yaml",
			errorContains: "reading config file",
		},
		{
			name:          "malformed yaml",
			content:       "model: [unterminated",
			errorContains: "parsing config file",
		},
		{
			name:          "negative threads",
			content:       "threads: -1",
			errorContains: "threads",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := tt.path
			if path == "" {
				path = filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestWhisperConfigEnvMustExist(t *testing.T) {
	isolate(t)
	t.Setenv("WHISPER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Model = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model")
}

func TestLoadUnknownLogLevelFallsBackToInfo(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     string
		want    string
	}{
		{name: "env verbose", env: "verbose", want: "info"},
		{name: "env warning", env: "warning", want: "info"},
		{name: "env upper case known", env: " DEBUG ", want: "debug"},
		{name: "file loud", content: "log_level: loud\n", want: "info"},
		{name: "file known", content: "log_level: error\n", want: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("LOG_LEVEL", tt.env)
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.LogLevel)
		})
	}
}

// useEnvFile points the .env lookup at a file in a temp dir.
func useEnvFile(t *testing.T, content string) {
	t.Helper()
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	prev := envFiles
	envFiles = []string{p}
	t.Cleanup(func() { envFiles = prev })
}

func TestLoadDotEnv(t *testing.T) {
	tests := []struct {
		name   string
		preset string // empty means unset
		want   string
	}{
		{name: "picked up when unset", want: "tiny"},
		{name: "process environment wins", preset: "medium", want: "medium"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			// godotenv writes into the process env; t.Setenv restores it afterwards
			t.Setenv("WHISPER_MODEL", tt.preset)
			if tt.preset == "" {
				require.NoError(t, os.Unsetenv("WHISPER_MODEL"))
			}
			useEnvFile(t, "WHISPER_MODEL=tiny\n")

			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Model)
		})
	}
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	isolate(t)
	prev := envFiles
	envFiles = []string{filepath.Join(t.TempDir(), ".env")}
	t.Cleanup(func() { envFiles = prev })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, cfg.Model)
}
