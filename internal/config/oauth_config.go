package config

import "time"

type OAuthConfig interface {
	GetHTTPTimeout() time.Duration
	GetDiscoveryTimeout() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetHTTPTimeout() time.Duration {
	return 30 * time.Second
}

func (OAuth) GetDiscoveryTimeout() time.Duration {
	return 10 * time.Second
}
