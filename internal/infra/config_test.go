package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Views.Store)
	assert.Equal(t, 800*time.Millisecond, cfg.Simulation.AgentToggleLatency)
	assert.Equal(t, 1500*time.Millisecond, cfg.Simulation.SignupLatency)
	assert.Equal(t, 4*time.Second, cfg.Simulation.SparkleInterval)
	assert.Equal(t, 5, cfg.RateLimit.SignupPerMinute)
	assert.Equal(t, uint(3), cfg.Reliability.RetryAttempts)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
views:
  store: redis
  ttl: 10m
simulation:
  signup_latency: 2s
logger:
  format: console
`), 0o600))

	t.Setenv("SERVER_PORT", "9100")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Views.Store)
	assert.Equal(t, 10*time.Minute, cfg.Views.TTL)
	assert.Equal(t, 2*time.Second, cfg.Simulation.SignupLatency)
	assert.Equal(t, 800*time.Millisecond, cfg.Simulation.AgentToggleLatency)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := LoadConfig("")
	require.NoError(t, err)

	tests := map[string]func(c *Config){
		"bad port":         func(c *Config) { c.Server.Port = 0 },
		"unknown store":    func(c *Config) { c.Views.Store = "etcd" },
		"zero ttl":         func(c *Config) { c.Views.TTL = 0 },
		"negative latency": func(c *Config) { c.Simulation.SignupLatency = -time.Second },
		"no retries":       func(c *Config) { c.Reliability.RetryAttempts = 0 },
		"no signup limit":  func(c *Config) { c.RateLimit.SignupPerMinute = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := *base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(LoggerConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger(LoggerConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = NewLogger(LoggerConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, ":8080", ServerConfig{Port: 8080}.Addr())
	assert.Equal(t, "127.0.0.1:9000", ServerConfig{Host: "127.0.0.1", Port: 9000}.Addr())
}
