package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// ValidateEnv checks the .env schema version when one is declared.
// Every other variable has a default, so nothing else is required.
func ValidateEnv() error {
	schemaVersion, ok := os.LookupEnv("ENV_SCHEMA_VERSION")
	if !ok {
		return nil
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	return nil
}

// ValidateEnvWithWarnings checks the environment and returns warnings
// for settings that work but are probably a mistake
func ValidateEnvWithWarnings(cfg *Config) ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if u, err := url.Parse(cfg.APIBaseURL); err == nil && u.Scheme == "http" && !isLocalHost(u.Hostname()) {
		warnings = append(warnings, "BURGER_API_URL uses plain http to a remote host - credentials will travel unencrypted")
	}

	if cfg.RequestTimeout < time.Second {
		warnings = append(warnings, fmt.Sprintf("REQUEST_TIMEOUT of %s is very short - requests may fail before the backend answers", cfg.RequestTimeout))
	}

	return warnings, nil
}

func isLocalHost(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
