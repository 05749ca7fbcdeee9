package cmd

import (
	"fmt"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/caarlos0/env/v7"
)

// errEmptyValue signals that a required environment variable is empty.
const errEmptyValue errors.Error = "empty value"

// environment represents the configuration that is kept in the environment.
type environment struct {
	ConfPath     string `env:"CONFIG_PATH" envDefault:"./config.yaml"`
	ListenAddr   string `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8081"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	LogTimestamp bool   `env:"LOG_TIMESTAMP" envDefault:"true"`
	Verbosity    uint8  `env:"VERBOSE" envDefault:"0"`
}

// parseEnvironment reads the configuration from the environment.
func parseEnvironment() (envs *environment, err error) {
	envs = &environment{}
	err = env.Parse(envs)
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return envs, nil
}

// Validate returns an error if the environment variables are invalid.
func (envs *environment) Validate() (err error) {
	_, err = slogutil.NewFormat(envs.LogFormat)
	if err != nil {
		return fmt.Errorf("env LOG_FORMAT: %w", err)
	}

	if envs.ListenAddr == "" {
		return fmt.Errorf("env LISTEN_ADDR: %w", errEmptyValue)
	}

	return nil
}
