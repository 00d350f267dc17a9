// Package config defines and loads the csrfd configuration.
//
// Values are read with koanf from an optional YAML file and then from
// environment variables, which take priority: CSRFD_CSRF_TTL=30m sets csrf.ttl.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the environment variable prefix.
const EnvPrefix = "CSRFD_"

// Config is the root configuration for csrfd.
type Config struct {
	HTTP HTTPSection `koanf:"http"`
	CSRF CSRFSection `koanf:"csrf"`
	Log  LogSection  `koanf:"log"`
}

// HTTPSection configures the HTTP listener.
type HTTPSection struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	SessionCookie   string        `koanf:"session_cookie"`
}

// CSRFSection mirrors csrf.Config.
type CSRFSection struct {
	Secret          string        `koanf:"secret"`
	Algorithm       string        `koanf:"algorithm"`
	TTL             time.Duration `koanf:"ttl"`
	Attribute       string        `koanf:"attribute"`
	HeaderName      string        `koanf:"header_name"`
	ExposeHeader    string        `koanf:"expose_header"`
	ReadOnlyMethods []string      `koanf:"read_only_methods"`
	ExemptPaths     []string      `koanf:"exempt_paths"`
	RejectStatus    int           `koanf:"reject_status"`
	RejectBody      string        `koanf:"reject_body"`

	EnforceOriginCheck bool   `koanf:"enforce_origin_check"`
	AllowedOrigin      string `koanf:"allowed_origin"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Load starts from Default, overlays the file at path (if any) and then the
// environment, and verifies the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load file %s: %w", path, err)
		}
	}

	// CSRFD_CSRF_HEADER_NAME -> csrf.header_name: only the first underscore
	// after the prefix separates the section from the key.
	transform := func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(s, "_", ".", 1)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
