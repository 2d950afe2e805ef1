package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default configuration",
			envVars: map[string]string{
				"JWT_SECRET": "test-secret",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, "NexoHub API", cfg.AppName)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8000, cfg.Server.Port)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "HS256", cfg.Auth.JWTAlgorithm)
				assert.Equal(t, 900*time.Second, cfg.Auth.TokenTTL)
				assert.Equal(t, 12, cfg.Auth.BcryptCost)
				assert.Empty(t, cfg.Bootstrap.Token)
				assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
				assert.True(t, cfg.CORS.AllowCredentials)
				assert.Equal(t, []string{"*"}, cfg.CORS.AllowedMethods)
			},
		},
		{
			name:    "missing JWT secret is fatal",
			envVars: map[string]string{},
			wantErr: true,
		},
		{
			name: "non-HMAC algorithm is rejected",
			envVars: map[string]string{
				"JWT_SECRET": "test-secret",
				"JWT_ALG":    "RS256",
			},
			wantErr: true,
		},
		{
			name: "non-positive token lifetime is rejected",
			envVars: map[string]string{
				"JWT_SECRET":          "test-secret",
				"JWT_EXPIRES_SECONDS": "0",
			},
			wantErr: true,
		},
		{
			name: "bcrypt cost out of range is rejected",
			envVars: map[string]string{
				"JWT_SECRET":  "test-secret",
				"BCRYPT_COST": "3",
			},
			wantErr: true,
		},
		{
			name: "token settings overrides",
			envVars: map[string]string{
				"JWT_SECRET":              "another-secret",
				"JWT_ALG":                 "HS512",
				"JWT_EXPIRES_SECONDS":     "60",
				"NEXOHUB_BOOTSTRAP_TOKEN": "bootstrap-secret",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "another-secret", cfg.Auth.JWTSecret)
				assert.Equal(t, "HS512", cfg.Auth.JWTAlgorithm)
				assert.Equal(t, time.Minute, cfg.Auth.TokenTTL)
				assert.Equal(t, "bootstrap-secret", cfg.Bootstrap.Token)
			},
		},
		{
			name: "legacy BOOTSTRAP_TOKEN is a fallback",
			envVars: map[string]string{
				"JWT_SECRET":      "test-secret",
				"BOOTSTRAP_TOKEN": "legacy-secret",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "legacy-secret", cfg.Bootstrap.Token)
			},
		},
		{
			name: "NEXOHUB_BOOTSTRAP_TOKEN wins over the fallback",
			envVars: map[string]string{
				"JWT_SECRET":              "test-secret",
				"NEXOHUB_BOOTSTRAP_TOKEN": "primary-secret",
				"BOOTSTRAP_TOKEN":         "legacy-secret",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "primary-secret", cfg.Bootstrap.Token)
			},
		},
		{
			name: "DATABASE_URL takes precedence",
			envVars: map[string]string{
				"JWT_SECRET":   "test-secret",
				"DATABASE_URL": "postgres://nexo:pw@db.internal:6543/parking?sslmode=require",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "postgres://nexo:pw@db.internal:6543/parking?sslmode=require", cfg.Database.DSN())
				assert.Equal(t, "host=db.internal port=6543 database=parking", cfg.Database.LogString())
			},
		},
		{
			name: "wildcard CORS origin disables credentials",
			envVars: map[string]string{
				"JWT_SECRET":   "test-secret",
				"CORS_ORIGINS": "*",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
				assert.False(t, cfg.CORS.AllowCredentials)
			},
		},
		{
			name: "CORS lists are split and trimmed",
			envVars: map[string]string{
				"JWT_SECRET":         "test-secret",
				"CORS_ORIGINS":       "http://localhost:3000, https://app.nexohub.co ,",
				"CORS_ALLOW_METHODS": "GET,POST",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"http://localhost:3000", "https://app.nexohub.co"}, cfg.CORS.AllowedOrigins)
				assert.Equal(t, []string{"GET", "POST"}, cfg.CORS.AllowedMethods)
			},
		},
		{
			name: "PORT env var takes precedence over SERVER_PORT",
			envVars: map[string]string{
				"JWT_SECRET":  "test-secret",
				"PORT":        "9443",
				"SERVER_PORT": "9000",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9443, cfg.Server.Port)
			},
		},
		{
			name: "custom timeouts and pool settings",
			envVars: map[string]string{
				"JWT_SECRET":           "test-secret",
				"SERVER_READ_TIMEOUT":  "60s",
				"SERVER_WRITE_TIMEOUT": "90s",
				"DB_MAX_OPEN_CONNS":    "50",
				"DB_MAX_IDLE_CONNS":    "10",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 50, cfg.Database.MaxOpenConns)
				assert.Equal(t, 10, cfg.Database.MaxIdleConns)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := New(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "nexohub",
		Password: "secret",
		Database: "nexohub",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=localhost port=5432 user=nexohub password=secret dbname=nexohub sslmode=disable", cfg.DSN())
	assert.NotContains(t, cfg.LogString(), "secret")
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8000}
	assert.Equal(t, "127.0.0.1:8000", cfg.Address())

	cfg = ServerConfig{Host: "::1", Port: 8000}
	assert.Equal(t, "[::1]:8000", cfg.Address())
}
