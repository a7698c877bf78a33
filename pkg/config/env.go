package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvPort      = "CONDUIT_MOCK_PORT"
	EnvLogLevel  = "CONDUIT_MOCK_LOG_LEVEL"
	EnvLogFormat = "CONDUIT_MOCK_LOG_FORMAT"
	EnvLatency   = "CONDUIT_MOCK_LATENCY"
)

// ApplyEnv overrides cfg from environment variables. lookup has the
// signature of os.LookupEnv.
func ApplyEnv(cfg *ServerConfiguration, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		cfg.Port = port
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if cfg.Log == nil {
			cfg.Log = &LogConfig{}
		}
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		if cfg.Log == nil {
			cfg.Log = &LogConfig{}
		}
		cfg.Log.Format = v
	}

	if v, ok := lookup(EnvLatency); ok && v != "" {
		on, err := parseSwitch(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLatency, err)
		}
		if cfg.Latency == nil {
			cfg.Latency = &LatencyConfig{Scale: DefaultLatencyScale}
		}
		cfg.Latency.Enabled = on
	}
	return nil
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value %q (want on or off)", v)
	}
}
