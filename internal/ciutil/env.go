package ciutil

import (
	"log/slog"
	"net/url"
	"os"
	"strings"
)

// Common environment variable names used across the codebase.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvTravisCI      = "TRAVIS"
	EnvCircleCI      = "CIRCLECI"

	// Database connection environment variables, in order of preference
	EnvAdsTestDBURL   = "ADS_TEST_DB_URL"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvAdsDatabaseURL = "ADS_DATABASE_URL"
)

// TestDatabaseURLVars lists the variables consulted for a test database.
var TestDatabaseURLVars = []string{EnvAdsTestDBURL, EnvDatabaseURL, EnvAdsDatabaseURL}

// IsCI returns true if the current environment is a CI environment.
// It checks for common CI environment variables across different CI providers.
func IsCI() bool {
	for _, name := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvTravisCI, EnvCircleCI} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the value of the first non-empty environment variable
// from the provided list. If no environment variables are set, it returns the defaultValue.
// Using anything but the first name logs a warning naming the preferred one.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("using fallback environment variable",
					"used_var", envVar,
					"preferred_var", envVars[0],
					"value", MaskSensitiveValue(val),
				)
			}
			return val
		}
	}
	return defaultValue
}

// GetTestDatabaseURL returns the first configured test database URL, or "".
func GetTestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks(TestDatabaseURLVars, "", logger)
}

// MaskSensitiveValue hides the password of connection URLs and the middle
// of values that look like keys or tokens, for safe logging.
func MaskSensitiveValue(value string) string {
	if strings.Contains(value, "://") {
		if u, err := url.Parse(value); err == nil && u.User != nil {
			if _, hasPassword := u.User.Password(); hasPassword {
				return u.Redacted()
			}
		}
		return value
	}

	lower := strings.ToLower(value)
	if len(value) > 8 && (strings.Contains(lower, "key") ||
		strings.Contains(lower, "token") ||
		strings.Contains(lower, "secret")) {
		return value[:4] + "****" + value[len(value)-4:]
	}

	return value
}
