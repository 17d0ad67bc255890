package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "ADDRESS", "DATABASE_URL", "DATABASE_DSN", "JWT_SECRET",
	"CORS_ALLOWED_ORIGINS", "GIN_MODE", "LOG_LEVEL", "SMTP_HOST", "SMTP_PORT",
	"EMAIL_USER", "EMAIL_PASS", "MAIL_FROM", "SITE_URL", "MAX_BODY_BYTES",
	"SHUTDOWN_TIMEOUT",
}

// clearEnv blanks every variable the loader reads; empty counts as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	b, err := json.Marshal(data)
	require.NoError(t, err)
	return writeTempFile(t, "cfg.json", string(b))
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.EndpointAddrHTTP)
	assert.Empty(t, c.SecretKey, "there must be no default secret")
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, DefaultAllowedOrigins, c.AllowedOrigins)
	assert.Equal(t, "release", c.GinMode)
	assert.Equal(t, "smtp.gmail.com", c.SMTPHost)
	assert.Equal(t, 587, c.SMTPPort)
	assert.Equal(t, int64(10<<20), c.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
}

func TestLoadConfig_RefusesMissingSecret(t *testing.T) {
	clearEnv(t)

	_, err := loadConfig([]string{"-d", "memory"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret is required")
}

func TestLoadConfig_RefusesMissingDSN(t *testing.T) {
	clearEnv(t)

	_, err := loadConfig([]string{"-s", "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database DSN is required")
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("EMAIL_USER", "news@formifyx.nl")
	t.Setenv("EMAIL_PASS", "app-password")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := loadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseDSN)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "news@formifyx.nl", cfg.SMTPUser)
	assert.Equal(t, "news@formifyx.nl", cfg.MailFrom, "MailFrom falls back to the SMTP user")
	assert.Equal(t, "app-password", cfg.SMTPPassword)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)

	jsonPath := writeTempJSON(t, map[string]any{
		"endpoint_addr_http": ":7000",
		"database_dsn":       "postgres://json/db",
		"secret_key":         "json-secret",
		"log_level":          "debug",
		"site_url":           "https://json.example",
		"shutdown_timeout":   "5s",
	})
	envPath := writeTempFile(t, "app.env", "JWT_SECRET=file-secret\nSITE_URL=https://file.example\nLOG_LEVEL=warn\n")
	t.Setenv("SITE_URL", "https://process.example")

	cfg, err := loadConfig([]string{"-c", jsonPath, "-env", envPath, "-l", "error"})
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.EndpointAddrHTTP, "json only")
	assert.Equal(t, "postgres://json/db", cfg.DatabaseDSN, "json only")
	assert.Equal(t, "file-secret", cfg.SecretKey, "env file beats json")
	assert.Equal(t, "https://process.example", cfg.SiteURL, "process env beats env file")
	assert.Equal(t, "error", cfg.LogLevel, "flag beats everything")
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		clearEnv(t)
		bad := writeTempFile(t, "bad.json", `{ this is not valid json`)
		_, err := loadConfig([]string{"-c", bad, "-s", "k", "-d", "memory"})
		require.Error(t, err)
	})

	t.Run("missing json file", func(t *testing.T) {
		clearEnv(t)
		_, err := loadConfig([]string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("explicit env file missing", func(t *testing.T) {
		clearEnv(t)
		_, err := loadConfig([]string{"-env", filepath.Join(t.TempDir(), "nope.env"), "-s", "k", "-d", "memory"})
		require.Error(t, err)
	})

	t.Run("bad smtp port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SMTP_PORT", "smtp")
		_, err := loadConfig([]string{"-s", "k", "-d", "memory"})
		require.Error(t, err)
	})

	t.Run("unknown gin mode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GIN_MODE", "loud")
		_, err := loadConfig([]string{"-s", "k", "-d", "memory"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown gin mode")
	})
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := []string{
		"-c", "ignored.json",
		"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
		"-o", "https://x.example,https://y.example", "-l", "debug",
	}
	require.NoError(t, parseFlags(cfg, args))

	want := &Config{}
	want.LoadDefaults()
	want.EndpointAddrHTTP = "127.0.0.1:9090"
	want.DatabaseDSN = "db"
	want.SecretKey = "secret"
	want.AllowedOrigins = []string{"https://x.example", "https://y.example"}
	want.LogLevel = "debug"

	assert.Empty(t, cmp.Diff(want, cfg))
}
