package handler

import (
	"fmt"
	"time"

	"go.uber.org/config"
)

const (
	_configKeyServer = "server"

	_defaultShutdownGrace = 5 * time.Second
	_defaultForceExit     = 10 * time.Second
)

// ServerConfig holds the process shutdown bounds from the server configuration block.
type ServerConfig struct {
	ShutdownGraceMillis int64 `yaml:"shutdownGraceMillis"`
	ForceExitMillis     int64 `yaml:"forceExitMillis"`
}

// NewServerConfig reads the shutdown bounds, falling back to defaults for missing keys.
func NewServerConfig(cfg config.Provider) (ServerConfig, error) {
	c := ServerConfig{
		ShutdownGraceMillis: _defaultShutdownGrace.Milliseconds(),
		ForceExitMillis:     _defaultForceExit.Milliseconds(),
	}
	if err := cfg.Get(_configKeyServer).Populate(&c); err != nil {
		return c, fmt.Errorf("getting config field %q: %w", _configKeyServer, err)
	}
	if c.ShutdownGraceMillis <= 0 || c.ForceExitMillis <= 0 {
		return c, fmt.Errorf("shutdown bounds must be positive, got grace %dms and force exit %dms", c.ShutdownGraceMillis, c.ForceExitMillis)
	}
	return c, nil
}

// ShutdownGrace bounds how long the coordinator waits for background work on stop.
func (c ServerConfig) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownGraceMillis) * time.Millisecond
}

// ForceExit bounds the whole shutdown before the process exits regardless.
func (c ServerConfig) ForceExit() time.Duration {
	return time.Duration(c.ForceExitMillis) * time.Millisecond
}
