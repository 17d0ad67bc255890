// Package config handles configuration for the server, including defaults,
// a JSON overlay, .env/environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the FormifyX backend.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx), or "memory" for in-process storage.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Required.
//   - AllowedOrigins: CORS allow-list.
//   - GinMode / LogLevel: runtime verbosity.
//   - SMTP*, MailFrom, SiteURL: newsletter delivery.
//   - MaxBodyBytes: request body limit.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddrHTTP string
	DatabaseDSN      string
	SecretKey        string
	AllowedOrigins   []string
	GinMode          string
	LogLevel         string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	MailFrom         string
	SiteURL          string
	MaxBodyBytes     int64
	ShutdownTimeout  time.Duration
}

// DefaultAllowedOrigins are the site origins the frontend is served from.
var DefaultAllowedOrigins = []string{
	"https://formifyx.nl",
	"http://localhost:5173",
	"https://formifyx-frontend.onrender.com",
}

// LoadDefaults populates Config with development defaults.
// There is deliberately no default SecretKey or DatabaseDSN.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	c.GinMode = "release"
	c.LogLevel = "info"
	c.SMTPHost = "smtp.gmail.com"
	c.SMTPPort = 587
	c.SiteURL = "https://formifyx.nl"
	c.MaxBodyBytes = 10 << 20
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config from os.Args and the process environment.
func LoadConfig() (*Config, error) {
	return loadConfig(os.Args[1:])
}

// loadConfig applies defaults, then the JSON file named by -c/-config, then
// the .env file and environment, then flags, and validates the result.
func loadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("JWT secret is required (-s or JWT_SECRET)"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is required (-d or DATABASE_DSN)"))
	}
	if c.EndpointAddrHTTP == "" {
		errs = append(errs, errors.New("HTTP address must not be empty"))
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("unknown gin mode %q", c.GinMode))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("at least one CORS origin is required"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max body size must be positive"))
	}

	return errors.Join(errs...)
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
