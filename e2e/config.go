package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// GATEWAY_ADDR points the suite at a running gateway (host:port).
	// When empty the whole suite is skipped.
	GatewayAddr string `envconfig:"GATEWAY_ADDR"`
	// JWT_SECRET must match the secret the target gateway was started with
	// so the suite can mint its own user tokens.
	JWTSecret string `envconfig:"JWT_SECRET" default:"e2e-secret"`
	// E2E_DEBUG_JSON allows dumping full HTTP request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
