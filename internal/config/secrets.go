package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"fjacquet/complaint-classifier/internal/classifyerror"
	"fjacquet/complaint-classifier/internal/logging"
	"fjacquet/complaint-classifier/internal/validation"

	"github.com/spf13/viper"
)

const (
	// DefaultSecretsFile is the structured secrets source checked first.
	DefaultSecretsFile = ".secrets/secrets.toml"
	// SecretsAPIKeyField is the key holding the credential inside the secrets file.
	SecretsAPIKeyField = "api_key"
	// APIKeyEnvVar is the environment variable checked when the secrets file has no key.
	APIKeyEnvVar = "GOOGLE_API_KEY"
)

// Credential sources reported by ResolveAPIKey.
const (
	SourceSecretsFile = "secrets_file"
	SourceEnvironment = "environment"
)

var errSecretsKeyMissing = errors.New("secrets file has no " + SecretsAPIKeyField)

// ResolveAPIKey looks the credential up in the secrets file first, then in GOOGLE_API_KEY.
// A missing or unreadable secrets file falls through to the environment.
// When neither source has a key it returns a *classifyerror.ConfigurationError.
func ResolveAPIKey(secretsFile string, logger logging.Logger) (key, source string, err error) {
	if logger == nil {
		logger = logging.NewMockLogger()
	}

	if secretsFile != "" {
		key, err := readSecretsKey(secretsFile)
		switch {
		case err == nil:
			warnIfExposed(secretsFile, logger)
			return key, SourceSecretsFile, nil
		case errors.Is(err, os.ErrNotExist), errors.Is(err, errSecretsKeyMissing):
			logger.Debug("No API key in secrets file, falling back to environment",
				logging.F("secrets_file", secretsFile))
		default:
			logger.WithError(err).Warn("Could not read secrets file, falling back to environment",
				logging.F("secrets_file", secretsFile))
		}
	}

	if key := strings.TrimSpace(os.Getenv(APIKeyEnvVar)); key != "" {
		return key, SourceEnvironment, nil
	}

	return "", "", &classifyerror.ConfigurationError{
		Setting: APIKeyEnvVar,
		Reason:  "Google API Key not found. Please set it in your environment or secrets file",
	}
}

// readSecretsKey reads api_key from a toml, yaml or json secrets file.
func readSecretsKey(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to parse secrets file %s: %w", path, err)
	}

	key := strings.TrimSpace(v.GetString(SecretsAPIKeyField))
	if key == "" {
		return "", errSecretsKeyMissing
	}
	return key, nil
}

// warnIfExposed logs when the secrets file is readable by other users.
func warnIfExposed(path string, logger logging.Logger) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if err := validation.IsValidFilePermissions(info.Mode()); err != nil {
		logger.WithError(err).Warn("Secrets file is readable by other users",
			logging.F("secrets_file", path))
	}
}
