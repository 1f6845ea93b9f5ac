package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentHelpers(t *testing.T) {
	tests := []struct {
		name    string
		appEnv  string
		ginMode string
		dev     bool
		prod    bool
	}{
		{name: "production release", appEnv: "production", ginMode: "release", dev: false, prod: true},
		{name: "development env", appEnv: "development", dev: true, prod: false},
		{name: "debug gin mode implies development", ginMode: "debug", dev: true, prod: false},
		{name: "staging is neither", appEnv: "staging", ginMode: "release", dev: false, prod: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{AppEnv: tt.appEnv, GinMode: tt.ginMode}}
			assert.Equal(t, tt.dev, cfg.IsDevelopment())
			assert.Equal(t, tt.prod, cfg.IsProduction())
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{URL: "postgres://localhost:5432/lessonforge"},
		Auth: AuthConfig{
			JWTSecret:       "test-secret",
			SessionTTLHours: 24,
		},
		Upload: UploadConfig{MaxUploadSizeMB: 20},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			mutate:      func(*Config) {},
			expectError: false,
		},
		{
			name:        "missing database URL",
			mutate:      func(c *Config) { c.Database.URL = "" },
			expectError: true,
			errorMsg:    "DATABASE_URL is required",
		},
		{
			name:        "missing JWT secret",
			mutate:      func(c *Config) { c.Auth.JWTSecret = "" },
			expectError: true,
			errorMsg:    "JWT_SECRET is required",
		},
		{
			name:        "non-positive session TTL",
			mutate:      func(c *Config) { c.Auth.SessionTTLHours = 0 },
			expectError: true,
			errorMsg:    "SESSION_TTL_HOURS must be positive",
		},
		{
			name:        "missing port",
			mutate:      func(c *Config) { c.Server.Port = "" },
			expectError: true,
			errorMsg:    "PORT is required",
		},
		{
			name:        "no CORS origins",
			mutate:      func(c *Config) { c.Server.AllowedOrigins = nil },
			expectError: true,
			errorMsg:    "CORS_ORIGINS is required",
		},
		{
			name:        "non-positive upload limit",
			mutate:      func(c *Config) { c.Upload.MaxUploadSizeMB = 0 },
			expectError: true,
			errorMsg:    "MAX_UPLOAD_SIZE_MB must be positive",
		},
		{
			name: "profiling enabled without endpoint",
			mutate: func(c *Config) {
				c.Profiling.Enabled = true
				c.Profiling.Endpoint = ""
			},
			expectError: true,
			errorMsg:    "PYROSCOPE_ENDPOINT is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	// Clean environment
	os.Clearenv()

	// Set only required fields
	os.Setenv("DATABASE_URL", "postgres://localhost:5432/lessonforge")
	os.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Check defaults
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, int32(2), cfg.Database.MinConns)
	assert.Equal(t, "lessonforge-api", cfg.Auth.JWTIssuer)
	assert.Equal(t, 24, cfg.Auth.SessionTTLHours)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, 20, cfg.Upload.MaxUploadSizeMB)
	assert.Equal(t, 900, cfg.Cache.RenderTTLSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/app/logs", cfg.Logging.Dir)
	assert.Empty(t, cfg.Observability.OTLPEndpoint)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	// Clean environment
	os.Clearenv()

	// Set environment variables
	os.Setenv("PORT", "9000")
	os.Setenv("GIN_MODE", "debug")
	os.Setenv("APP_ENV", "development")
	os.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")
	os.Setenv("DATABASE_URL", "postgres://db:5432/lessonforge")
	os.Setenv("DATABASE_MAX_CONNS", "25")
	os.Setenv("JWT_SECRET", "super-secret")
	os.Setenv("SESSION_TTL_HOURS", "48")
	os.Setenv("GEMINI_API_KEY", "platform-key-123")
	os.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	os.Setenv("MAX_UPLOAD_SIZE_MB", "50")
	os.Setenv("RENDER_CACHE_TTL_SECONDS", "60")
	os.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Verify values from environment
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, "development", cfg.Server.AppEnv)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "postgres://db:5432/lessonforge", cfg.Database.URL)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 48, cfg.Auth.SessionTTLHours)
	assert.Equal(t, "platform-key-123", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 50, cfg.Upload.MaxUploadSizeMB)
	assert.Equal(t, 60, cfg.Cache.RenderTTLSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ValidationFailure(t *testing.T) {
	// Save current directory and change to a temp directory without .env file
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)

	tempDir := t.TempDir()
	os.Chdir(tempDir)

	// Clean environment - missing JWT_SECRET
	os.Clearenv()
	os.Setenv("DATABASE_URL", "postgres://db:5432/lessonforge")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
