package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, ValidationError{"server.port", "must be between 1 and 65535"})
	}

	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.Host == "" || cfg.Database.Name == "" {
			errs = append(errs, ValidationError{"database", "host and name are required for postgres"})
		}
	case "sqlite":
		if cfg.Database.Path == "" {
			errs = append(errs, ValidationError{"database.path", "is required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{"database.driver", fmt.Sprintf("unsupported driver %q", cfg.Database.Driver)})
	}

	if u, err := url.Parse(cfg.Gateway.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"gateway.url", "must be an absolute URL"})
	}
	if strings.TrimSpace(cfg.Gateway.Model) == "" {
		errs = append(errs, ValidationError{"gateway.model", "is required"})
	}
	if cfg.Gateway.Timeout <= 0 {
		errs = append(errs, ValidationError{"gateway.timeout", "must be positive"})
	}

	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests < 1 || cfg.RateLimit.Window <= 0) {
		errs = append(errs, ValidationError{"rate_limit", "requests and window must be positive when enabled"})
	}

	if cfg.Inventory.ExpiringWindowDays < 0 {
		errs = append(errs, ValidationError{"inventory.expiring_window_days", "must not be negative"})
	}

	if cfg.IsProduction() {
		if cfg.Auth.JWTSecret == "" {
			errs = append(errs, ValidationError{"auth.jwt_secret", "is required in production"})
		}
		if cfg.Gateway.APIKey == "" {
			errs = append(errs, ValidationError{"gateway.api_key", "is required in production"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
