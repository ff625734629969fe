// Package config loads server, database, auth and pagination settings with
// viper. Values come from built-in defaults, an optional config.yaml and
// ADS_-prefixed environment variables, in increasing priority, and are
// validated before Load returns.
package config
