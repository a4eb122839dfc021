package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			HTTP3Port:          8443,
			HTTPPort:           8080,
			EnableHTTP:         true,
			TLSCertFile:        "/certs/dev.crt",
			TLSKeyFile:         "/certs/dev.key",
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       30 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			MaxIncomingStreams: 1000,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
			Port:    9090,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     50,
			Burst:   100,
		},
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateServer(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad http3 port", func(c *Config) { c.Server.HTTP3Port = 0 }, "http3_port"},
		{"bad http port", func(c *Config) { c.Server.HTTPPort = -1 }, "http_port"},
		{"port clash", func(c *Config) { c.Server.HTTPPort = c.Server.HTTP3Port }, "must differ"},
		{"missing cert", func(c *Config) { c.Server.TLSCertFile = "" }, "tls_cert_file"},
		{"missing key", func(c *Config) { c.Server.TLSKeyFile = "" }, "tls_key_file"},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "read_timeout"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "shutdown_timeout"},
		{"zero streams", func(c *Config) { c.Server.MaxIncomingStreams = 0 }, "max_incoming_streams"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateLogging(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "invalid level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid format"},
		{"empty output", func(c *Config) { c.Logging.Output = "" }, "output"},
		{"bad max size", func(c *Config) { c.Logging.MaxSize = 0 }, "max_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidateMetrics(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metrics.Port = 70000
		assert.ErrorContains(t, cfg.Validate(), "port")
	})

	t.Run("bad path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metrics.Path = "metrics"
		assert.ErrorContains(t, cfg.Validate(), "path")
	})

	t.Run("disabled skips checks", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metrics.Enabled = false
		cfg.Metrics.Port = 0
		assert.NoError(t, cfg.Validate())
	})
}

func TestValidateRateLimit(t *testing.T) {
	t.Run("zero rps", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.RPS = 0
		assert.ErrorContains(t, cfg.Validate(), "rps")
	})

	t.Run("zero burst", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.Burst = 0
		assert.ErrorContains(t, cfg.Validate(), "burst")
	})

	t.Run("disabled skips checks", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.Enabled = false
		cfg.RateLimit.RPS = 0
		assert.NoError(t, cfg.Validate())
	})
}
