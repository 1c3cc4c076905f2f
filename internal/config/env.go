package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnvFrom fills cfg from environ, or from the process environment when
// environ is nil. The envPrefix tags on [StructuredConfig] compose the final
// variable names, so App.Version is read from APP_VERSION.
//
// APP_ENVIRONMENT is matched case-insensitively and stored upper-cased.
func parseEnvFrom(cfg *StructuredConfig, environ map[string]string) error {
	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	cfg.App.Environment = strings.ToUpper(strings.TrimSpace(cfg.App.Environment))
	return nil
}
