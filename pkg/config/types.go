package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/civiclens/conduit-mock/pkg/logging"
)

// Defaults for ServerConfiguration.
const (
	DefaultPort           = 3001
	DefaultBasePath       = "/api"
	DefaultReadTimeout    = 30
	DefaultWriteTimeout   = 30
	DefaultMaxBodySize    = 1 << 20
	DefaultMaxLogEntries  = 1000
	DefaultLatencyScale   = 1.0
	DefaultRateLimitRPS   = 50
	DefaultRateLimitBurst = 100
)

// ServerConfiguration defines the mock server runtime settings.
type ServerConfiguration struct {
	// Port is the HTTP listen port.
	Port int `json:"port" yaml:"port"`
	// Host is the listen address. Empty listens on all interfaces.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	// BasePath is the prefix the API routes are mounted under (default "/api").
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	// ReadTimeout is the HTTP read timeout in seconds
	ReadTimeout int `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	// WriteTimeout is the HTTP write timeout in seconds
	WriteTimeout int `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
	// MaxBodySize is the maximum request body size in bytes
	MaxBodySize int64 `json:"maxBodySize,omitempty" yaml:"maxBodySize,omitempty"`
	// MaxLogEntries is the number of request log entries to retain (0 disables the log).
	MaxLogEntries int `json:"maxLogEntries,omitempty" yaml:"maxLogEntries,omitempty"`
	// SeedFile is an optional seed file replacing the built-in fixtures.
	SeedFile string `json:"seedFile,omitempty" yaml:"seedFile,omitempty"`

	Log       *LogConfig       `json:"log,omitempty" yaml:"log,omitempty"`
	Latency   *LatencyConfig   `json:"latency,omitempty" yaml:"latency,omitempty"`
	CORS      *CORSConfig      `json:"cors,omitempty" yaml:"cors,omitempty"`
	RateLimit *RateLimitConfig `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Logger builds the server logger writing to w. Unknown values fall back
// to info and text; Validate reports them.
func (c *LogConfig) Logger(w io.Writer) *slog.Logger {
	cfg := logging.Config{Output: w}
	if c != nil {
		cfg.Level, _ = logging.ParseLevel(c.Level)
		cfg.Format, _ = logging.ParseFormat(c.Format)
	}
	return logging.New(cfg)
}

// LatencyConfig controls simulated network latency.
type LatencyConfig struct {
	// Enabled turns latency simulation on. Each route carries its own default delay.
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Scale multiplies every delay. 0 is treated as 1.
	Scale float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
	// Rules override route delays for matching requests. First match wins.
	Rules []LatencyRule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// LatencyRule overrides the delay for requests whose path (relative to the
// base path) matches a glob pattern such as "/articles/**".
type LatencyRule struct {
	PathPattern string   `json:"pathPattern" yaml:"pathPattern"`
	Methods     []string `json:"methods,omitempty" yaml:"methods,omitempty"`
	// Delay is a Go duration string, e.g. "250ms".
	Delay string `json:"delay" yaml:"delay"`
}

// CORSConfig configures Cross-Origin Resource Sharing.
type CORSConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// AllowOrigins lists allowed origins. "*" allows any origin.
	// Empty list defaults to localhost origins only.
	AllowOrigins     []string `json:"allowOrigins,omitempty" yaml:"allowOrigins,omitempty"`
	AllowMethods     []string `json:"allowMethods,omitempty" yaml:"allowMethods,omitempty"`
	AllowHeaders     []string `json:"allowHeaders,omitempty" yaml:"allowHeaders,omitempty"`
	ExposeHeaders    []string `json:"exposeHeaders,omitempty" yaml:"exposeHeaders,omitempty"`
	AllowCredentials bool     `json:"allowCredentials,omitempty" yaml:"allowCredentials,omitempty"`
	// MaxAge is the preflight cache duration in seconds. Default: 86400
	MaxAge int `json:"maxAge,omitempty" yaml:"maxAge,omitempty"`
}

// RateLimitConfig defines per-client rate limiting. Default: disabled.
type RateLimitConfig struct {
	Enabled           bool    `json:"enabled" yaml:"enabled"`
	RequestsPerSecond float64 `json:"requestsPerSecond,omitempty" yaml:"requestsPerSecond,omitempty"`
	BurstSize         int     `json:"burstSize,omitempty" yaml:"burstSize,omitempty"`
}

// DefaultServerConfiguration returns a configuration with every default applied.
func DefaultServerConfiguration() *ServerConfiguration {
	return &ServerConfiguration{
		Port:          DefaultPort,
		BasePath:      DefaultBasePath,
		ReadTimeout:   DefaultReadTimeout,
		WriteTimeout:  DefaultWriteTimeout,
		MaxBodySize:   DefaultMaxBodySize,
		MaxLogEntries: DefaultMaxLogEntries,
		Log:           &LogConfig{Level: "info", Format: "text"},
		Latency:       &LatencyConfig{Enabled: true, Scale: DefaultLatencyScale},
		CORS:          &CORSConfig{Enabled: true},
		RateLimit: &RateLimitConfig{
			RequestsPerSecond: DefaultRateLimitRPS,
			BurstSize:         DefaultRateLimitBurst,
		},
	}
}

// Address returns the host:port listen address.
func (c *ServerConfiguration) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks the configuration for invalid values.
func (c *ServerConfiguration) Validate() error {
	var errs []error

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port: invalid port %d, must be 0-65535", c.Port))
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		errs = append(errs, fmt.Errorf("basePath: must start with /, got %q", c.BasePath))
	}
	if c.MaxBodySize < 0 {
		errs = append(errs, errors.New("maxBodySize: must not be negative"))
	}
	if c.MaxLogEntries < 0 {
		errs = append(errs, errors.New("maxLogEntries: must not be negative"))
	}
	if c.Log != nil {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
		if _, err := logging.ParseFormat(c.Log.Format); err != nil {
			errs = append(errs, fmt.Errorf("log.format: %w", err))
		}
	}
	if c.Latency != nil {
		if c.Latency.Scale < 0 {
			errs = append(errs, errors.New("latency.scale: must not be negative"))
		}
		for i, rule := range c.Latency.Rules {
			if rule.PathPattern == "" {
				errs = append(errs, fmt.Errorf("latency.rules[%d].pathPattern: required", i))
			}
			if _, err := time.ParseDuration(rule.Delay); err != nil {
				errs = append(errs, fmt.Errorf("latency.rules[%d].delay: %w", i, err))
			}
		}
	}
	if c.RateLimit != nil && c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, errors.New("rateLimit.requestsPerSecond: must be positive"))
		}
		if c.RateLimit.BurstSize < 1 {
			errs = append(errs, errors.New("rateLimit.burstSize: must be at least 1"))
		}
	}

	return errors.Join(errs...)
}

// DefaultCORSOrigins are allowed when CORSConfig.AllowOrigins is empty.
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// AllowOriginValue returns the Access-Control-Allow-Origin value for the
// request origin, or "" when the origin is not allowed.
func (c *CORSConfig) AllowOriginValue(requestOrigin string) string {
	if c == nil || !c.Enabled {
		return ""
	}
	origins := c.AllowOrigins
	if len(origins) == 0 {
		origins = DefaultCORSOrigins
	}

	for _, origin := range origins {
		if origin == "*" {
			// "*" cannot be combined with credentials.
			if c.AllowCredentials {
				return requestOrigin
			}
			return "*"
		}
	}
	for _, allowed := range origins {
		if allowed == requestOrigin {
			return requestOrigin
		}
	}
	return ""
}
