package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/formifyx/backend/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays values from a dotenv file and the process environment.
// Process variables win over the file. The file is the one named by -env,
// or ./.env when present.
func parseEnv(config *Config, args []string) error {
	file, err := readEnvFile(flagx.LookupString(args, "env"))
	if err != nil {
		return err
	}

	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return file[key]
	}

	if port := get("PORT"); port != "" {
		config.EndpointAddrHTTP = ":" + port
	}
	setString(&config.EndpointAddrHTTP, get("ADDRESS"))
	setString(&config.DatabaseDSN, get("DATABASE_URL"))
	setString(&config.DatabaseDSN, get("DATABASE_DSN"))
	setString(&config.SecretKey, get("JWT_SECRET"))
	if origins := splitList(get("CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		config.AllowedOrigins = origins
	}
	setString(&config.GinMode, get("GIN_MODE"))
	setString(&config.LogLevel, get("LOG_LEVEL"))
	setString(&config.SMTPHost, get("SMTP_HOST"))
	setString(&config.SMTPUser, get("EMAIL_USER"))
	setString(&config.SMTPPassword, get("EMAIL_PASS"))
	setString(&config.MailFrom, get("MAIL_FROM"))
	setString(&config.SiteURL, get("SITE_URL"))

	if v := get("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		config.SMTPPort = port
	}
	if v := get("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_BODY_BYTES %q: %w", v, err)
		}
		config.MaxBodyBytes = n
	}
	if v := get("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		config.ShutdownTimeout = d
	}

	return nil
}

// readEnvFile reads an explicit dotenv file, failing if it is missing, or the
// default one, which may be absent.
func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}
