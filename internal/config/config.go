package config

type Config interface {
	EnvConfig
	OAuthConfig
}

type EnvConfig interface {
	GetAppName() string
	GetServerURL() string
	GetClientID() string
	GetClientSecret() string
	GetLogLevel() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	OAuth
}

func New() Config {
	return mainConfig{}
}
