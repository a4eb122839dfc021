package config

import (
	"fmt"
)

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	return nil
}

// Validate checks the server configuration.
func (s *ServerConfig) Validate() error {
	if s.HTTP3Port < 1 || s.HTTP3Port > 65535 {
		return fmt.Errorf("invalid http3_port: %d", s.HTTP3Port)
	}
	if s.EnableHTTP {
		if s.HTTPPort < 1 || s.HTTPPort > 65535 {
			return fmt.Errorf("invalid http_port: %d", s.HTTPPort)
		}
		if s.HTTPPort == s.HTTP3Port {
			return fmt.Errorf("http_port and http3_port must differ: %d", s.HTTPPort)
		}
	}
	if s.TLSCertFile == "" {
		return fmt.Errorf("tls_cert_file is required")
	}
	if s.TLSKeyFile == "" {
		return fmt.Errorf("tls_key_file is required")
	}
	if s.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be positive: %v", s.ReadTimeout)
	}
	if s.WriteTimeout <= 0 {
		return fmt.Errorf("write_timeout must be positive: %v", s.WriteTimeout)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive: %v", s.ShutdownTimeout)
	}
	if s.MaxIncomingStreams < 1 {
		return fmt.Errorf("max_incoming_streams must be positive: %d", s.MaxIncomingStreams)
	}
	return nil
}

// Validate checks the logging configuration.
func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid level: %q", l.Level)
	}
	switch l.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid format: %q", l.Format)
	}
	if l.Output == "" {
		return fmt.Errorf("output is required")
	}
	if l.MaxSize < 1 {
		return fmt.Errorf("max_size must be positive: %d", l.MaxSize)
	}
	return nil
}

// Validate checks the metrics configuration.
func (m *MetricsConfig) Validate() error {
	if !m.Enabled {
		return nil
	}
	if m.Port < 1 || m.Port > 65535 {
		return fmt.Errorf("invalid port: %d", m.Port)
	}
	if m.Path == "" || m.Path[0] != '/' {
		return fmt.Errorf("path must start with '/': %q", m.Path)
	}
	return nil
}

// Validate checks the rate limit configuration.
func (r *RateLimitConfig) Validate() error {
	if !r.Enabled {
		return nil
	}
	if r.RPS <= 0 {
		return fmt.Errorf("rps must be positive: %v", r.RPS)
	}
	if r.Burst < 1 {
		return fmt.Errorf("burst must be positive: %d", r.Burst)
	}
	return nil
}
