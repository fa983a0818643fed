package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_sms_normalizer/internal/config"
)

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.Default(), *cfg)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout.Duration)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	data := `
[server]
address = "127.0.0.1:9000"
read_timeout = "5s"

[processing]
normalizer = "default"
workers = 2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout.Duration)
	assert.Equal(t, "default", cfg.Processing.Normalizer)
	assert.Equal(t, 2, cfg.Processing.Workers)
	assert.Equal(t, 100, cfg.Processing.BatchSize)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
	}{
		{"bad duration", "[server]\nread_timeout = \"soon\"\n"},
		{"unknown key", "[server]\nport = 8080\n"},
		{"bad normalizer", "[processing]\nnormalizer = \"fast\"\n"},
		{"zero batch", "[processing]\nbatch_size = 0\n"},
		{"negative workers", "[processing]\nworkers = -1\n"},
		{"empty address", "[server]\naddress = \"\"\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.data), 0o644))

			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "server.toml")
	require.NoError(t, config.CreateSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded config.Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, config.Default(), decoded)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
}
