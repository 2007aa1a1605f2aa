package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ireal.yaml")
	data := `
server:
  addr: ":9000"
dynamo:
  endpoint: http://localhost:8000
decode:
  workers: 3
watch:
  debounce: 1s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(":9000", cfg.Server.Addr)
	assert.Equal([]string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal("http://localhost:8000", cfg.Dynamo.Endpoint)
	assert.Equal("ireal-songs", cfg.Dynamo.Table)
	assert.Equal(3, cfg.Decode.Workers)
	assert.Equal(time.Second, cfg.Watch.Debounce)
	assert.Equal("info", cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("IREAL_ADDR", ":7000")
	t.Setenv("IREAL_LOG_LEVEL", "debug")
	t.Setenv("IREAL_WORKERS", "8")
	cfg, err := Load("")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(":7000", cfg.Server.Addr)
	assert.Equal("debug", cfg.Logging.Level)
	assert.Equal(8, cfg.Decode.Workers)

	t.Setenv("IREAL_WORKERS", "many")
	_, err = Load("")
	assert.NotNil(err)
}

func TestLoadErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(path)
	assert.NotNil(err)
}
