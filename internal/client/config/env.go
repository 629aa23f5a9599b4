package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

const (
	envAPIBaseURL = "API_BASE_URL"
	envTimeout    = "API_TIMEOUT"
	envDatabase   = "FITTRACK_DB"
	envLogLevel   = "LOG_LEVEL"
)

type lookupFunc func(key string) (string, bool)

// parseEnv overlays cfg with environment variables. Values from the dotenv
// file are used only for keys missing from the real environment.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	file, err := readEnvFile(flagx.EnvFileFlags())
	if err != nil {
		return err
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	if v, ok := get(envAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := get(envTimeout); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := get(envDatabase); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := get(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// readEnvFile reads path, or the default dotenv file when path is empty. A
// missing default file is not an error; a missing explicit one is.
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
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

// parseTimeout accepts a Go duration ("30s") or whole seconds ("30").
func parseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("timeout must be positive, got %q", v)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %q", v)
	}
	return d, nil
}
