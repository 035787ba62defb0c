package config

import (
	"os"
	"strings"
)

const (
	appNameVar      = "APP_NAME"
	serverURLVar    = "FXA_OAUTH_SERVER_URL"
	clientIDVar     = "FXA_CLIENT_ID"
	clientSecretVar = "FXA_CLIENT_SECRET"
	logLevelVar     = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "FxA OAuth")
}

// GetServerURL returns the OAuth server base URL without a trailing slash.
// An empty value lets the client fall back to the production server.
func (EnvVars) GetServerURL() string {
	return strings.TrimSuffix(GetEnv(serverURLVar, ""), "/")
}

func (EnvVars) GetClientID() string {
	return GetEnv(clientIDVar, "")
}

// GetClientSecret implements EnvConfig. Never log this value.
func (EnvVars) GetClientSecret() string {
	return GetEnv(clientSecretVar, "")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
