package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

var (
	// ErrEnvSchema means ENV_SCHEMA_VERSION is absent in production or names another layout
	ErrEnvSchema = errors.New("env schema version")
	// ErrMissingEnv means a variable production cannot default is unset
	ErrMissingEnv = errors.New("missing required environment variables")
)

type envRequirement struct {
	key      string
	postgres bool   // only needed when STORAGE_DRIVER is postgres
	example  string // value copied from the sample .env
	warning  string
}

var envRequirements = []envRequirement{
	{key: "API_KEY", example: "generate_with_openssl_rand_hex_32",
		warning: "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32"},
	{key: "DB_USER", postgres: true},
	{key: "DB_PASSWORD", postgres: true, example: "change_this_secure_password",
		warning: "DB_PASSWORD appears to be using the example value - please use a secure password"},
	{key: "DB_HOST", postgres: true},
	{key: "DB_PORT", postgres: true},
	{key: "DB_NAME", postgres: true},
}

func isProduction(env string) bool {
	switch strings.ToLower(env) {
	case "prod", "production":
		return true
	}
	return false
}

// ValidateEnv checks the environment before Load applies defaults. A mismatched
// ENV_SCHEMA_VERSION always fails. In production the version must be present and
// every variable that would otherwise fall back to a development default must be set.
func ValidateEnv() error {
	strict := isProduction(os.Getenv("ENVIRONMENT"))

	switch v := os.Getenv("ENV_SCHEMA_VERSION"); {
	case v == "" && strict:
		return fmt.Errorf("%w: ENV_SCHEMA_VERSION is not set (expected %s)", ErrEnvSchema, ExpectedEnvSchemaVersion)
	case v != "" && v != ExpectedEnvSchemaVersion:
		return fmt.Errorf("%w: ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated",
			ErrEnvSchema, ExpectedEnvSchemaVersion, v)
	}
	if !strict {
		return nil
	}

	postgres := usesPostgres()
	var missing []string
	for _, req := range envRequirements {
		if req.postgres && !postgres {
			continue
		}
		if os.Getenv(req.key) == "" {
			missing = append(missing, req.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and also reports settings that work
// but should not reach production
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	postgres := usesPostgres()
	for _, req := range envRequirements {
		if req.example == "" || (req.postgres && !postgres) {
			continue
		}
		if os.Getenv(req.key) == req.example {
			warnings = append(warnings, req.warning)
		}
	}
	if os.Getenv("ENV_SCHEMA_VERSION") == "" {
		warnings = append(warnings, "ENV_SCHEMA_VERSION is not set - add it to your .env file (expected: "+ExpectedEnvSchemaVersion+")")
	}
	if strings.EqualFold(os.Getenv("RESET_POLICY"), "none") {
		warnings = append(warnings, "RESET_POLICY=none: claimed quests and calendar days never become claimable again")
	}
	return warnings, nil
}

func usesPostgres() bool {
	driver := strings.ToLower(os.Getenv("STORAGE_DRIVER"))
	return driver == "" || driver == StorageDriverPostgres
}
