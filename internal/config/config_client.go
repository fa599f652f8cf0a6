// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"dario.cat/mergo"
)

// ClientConfig holds the settings of the command-line API client.
type ClientConfig struct {
	// ServerURL is the base URL of the API, e.g. "http://localhost:8080".
	// Env: CLIENT_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// Token is the bearer token sent with authenticated commands.
	// Env: CLIENT_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds every request made by the client.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LogLevel of the client logger.
	// Env: CLIENT_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

type clientEnvConfig struct {
	Client ClientConfig `envPrefix:"CLIENT_"`
}

// GetClientConfig builds the client configuration from environment variables
// and the leading flags in args. It returns the remaining positional
// arguments (the command and its parameters).
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg, err := parseEnv[clientEnvConfig]()
	if err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	flagCfg := ClientConfig{}
	fs.StringVar(&flagCfg.ServerURL, "server", "", "API base URL")
	fs.StringVar(&flagCfg.Token, "token", "", "Bearer token")
	fs.DurationVar(&flagCfg.RequestTimeout, "timeout", 0, "Request timeout")
	fs.StringVar(&flagCfg.LogLevel, "log-level", "", "Log level")

	if err = fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := &ClientConfig{
		ServerURL:      "http://localhost:8080",
		RequestTimeout: 15 * time.Second,
		LogLevel:       "warn",
	}
	for _, src := range []ClientConfig{envCfg.Client, flagCfg} {
		if err := mergo.Merge(cfg, src, mergo.WithOverride); err != nil {
			return nil, nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if cfg.RequestTimeout < 0 {
		return nil, nil, fmt.Errorf("%w: negative timeout", ErrInvalidClientConfigs)
	}

	return cfg, fs.Args(), nil
}
