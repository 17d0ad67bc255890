package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/formifyx/backend/internal/flagx"
	"github.com/formifyx/backend/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON configuration file.
// Pointer and zero-value fields that are absent from the file leave the
// corresponding Config field untouched.
type JsonConfig struct {
	EndpointAddrHTTP string          `json:"endpoint_addr_http"`
	DatabaseDSN      string          `json:"database_dsn"`
	SecretKey        string          `json:"secret_key"`
	AllowedOrigins   []string        `json:"allowed_origins"`
	GinMode          string          `json:"gin_mode"`
	LogLevel         string          `json:"log_level"`
	SMTPHost         string          `json:"smtp_host"`
	SMTPPort         int             `json:"smtp_port"`
	SMTPUser         string          `json:"smtp_user"`
	SMTPPassword     string          `json:"smtp_password"`
	MailFrom         string          `json:"mail_from"`
	SiteURL          string          `json:"site_url"`
	MaxBodyBytes     int64           `json:"max_body_bytes"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file given by -c or -config.
// Without the flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.LookupString(args, "c", "config")
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	setString(&config.GinMode, c.GinMode)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort > 0 {
		config.SMTPPort = c.SMTPPort
	}
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.SiteURL, c.SiteURL)
	if c.MaxBodyBytes > 0 {
		config.MaxBodyBytes = c.MaxBodyBytes
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
