package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/zsiec/telecine/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			HTTP3Port:          8443,
			TLSCertFile:        "test-cert.pem",
			TLSKeyFile:         "test-key.pem",
			MaxIncomingStreams: 100,
			MaxIdleTimeout:     30 * time.Second,
			ShutdownTimeout:    5 * time.Second,
		},
		Logging: config.LoggingConfig{
			Level:  "debug",
			Format: "json",
			Output: "stdout",
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	s := New(testConfig(), logger)
	s.setupRoutes()
	return s
}

func TestNew(t *testing.T) {
	cfg := testConfig()
	logger := logrus.New()

	server := New(cfg, logger)

	assert.NotNil(t, server)
	assert.Equal(t, cfg, server.config)
	assert.Equal(t, logger, server.logger)
	assert.NotNil(t, server.router)
	assert.NotNil(t, server.healthMgr)
	assert.NotNil(t, server.errorHandler)
	assert.Nil(t, server.rateLimiter)
}

func TestNew_RateLimitEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 10, Burst: 20}

	server := New(cfg, logrus.New())

	assert.NotNil(t, server.rateLimiter)
}

func TestGetRouter(t *testing.T) {
	server := New(testConfig(), logrus.New())
	router := server.GetRouter()

	assert.NotNil(t, router)
	assert.IsType(t, &mux.Router{}, router)
}

func TestSetupRoutes_CoreEndpoints(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"health", "GET", "/health", http.StatusOK},
		{"ready", "GET", "/ready", http.StatusServiceUnavailable}, // no checks run yet
		{"live", "GET", "/live", http.StatusOK},
		{"version", "GET", "/version", http.StatusOK},
		{"framerates", "GET", "/api/v1/framerates", http.StatusOK},
		{"unknown route", "GET", "/api/v1/nothing-here", http.StatusNotFound},
		{"wrong method", "GET", "/api/v1/timecodes/parse", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			server.GetRouter().ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestSetupRoutes_DebugEndpoints(t *testing.T) {
	logger := logrus.New()
	cfg := testConfig()
	cfg.Server.DebugEndpoints = true

	server := New(cfg, logger)
	server.setupRoutes()

	req := httptest.NewRequest("GET", "/debug/info", nil)
	rr := httptest.NewRecorder()

	server.GetRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"debug_enabled":true`)
}

func TestRegisterRoutes(t *testing.T) {
	logger := logrus.New()
	server := New(testConfig(), logger)

	server.RegisterRoutes(func(router *mux.Router) {
		router.HandleFunc("/custom", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}).Methods("GET")
	})
	server.setupRoutes()

	req := httptest.NewRequest("GET", "/custom", nil)
	rr := httptest.NewRecorder()

	server.GetRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestStart_MissingCertificates(t *testing.T) {
	server := New(testConfig(), logrus.New())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := server.Start(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TLS certificates")
}
