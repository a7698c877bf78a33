package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/civiclens/conduit-mock/pkg/config"
	"github.com/civiclens/conduit-mock/pkg/engine"
)

// serveFlags holds the values bound to serve's flags.
type serveFlags struct {
	port          int
	host          string
	basePath      string
	configFile    string
	seedFile      string
	latency       bool
	noLatency     bool
	latencyScale  float64
	logLevel      string
	logFormat     string
	corsOrigins   []string
	rateLimit     float64
	maxLogEntries int
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock Conduit API (foreground)",
	Long: `Start the mock Conduit API and block until interrupted.

Settings are resolved from the defaults, then the --config file, then
CONDUIT_MOCK_PORT, CONDUIT_MOCK_LOG_LEVEL, CONDUIT_MOCK_LOG_FORMAT and
CONDUIT_MOCK_LATENCY, then flags given on the command line.`,
	Example: `  # Start with defaults on :3001
  conduit-mock serve

  # Halve every simulated delay
  conduit-mock serve --latency-scale 0.5

  # Instant responses and custom fixtures
  conduit-mock serve --no-latency --seed fixtures.yaml

  # Allow a dev frontend and log JSON at debug level
  conduit-mock serve --cors-origin http://localhost:5173 --log-format json --log-level debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildServeConfig(&serveFlagVals, cmd.Flags().Changed, os.LookupEnv)
		if err != nil {
			return err
		}
		return runServe(cmd, cfg)
	},
}

func initServeCmd() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals

	serveCmd.Flags().IntVarP(&f.port, "port", "p", config.DefaultPort, "HTTP server port")
	serveCmd.Flags().StringVar(&f.host, "host", "", "Listen address (default: all interfaces)")
	serveCmd.Flags().StringVar(&f.basePath, "base-path", config.DefaultBasePath, "Path prefix the API is mounted under")
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to server configuration file (YAML or JSON)")
	serveCmd.Flags().StringVar(&f.seedFile, "seed", "", "Path to a seed file replacing the built-in fixtures")
	serveCmd.Flags().IntVar(&f.maxLogEntries, "max-log-entries", config.DefaultMaxLogEntries, "Request log capacity (0 disables the log)")

	// Latency flags
	serveCmd.Flags().BoolVar(&f.latency, "latency", true, "Simulate network latency")
	serveCmd.Flags().BoolVar(&f.noLatency, "no-latency", false, "Respond without simulated latency")
	serveCmd.Flags().Float64Var(&f.latencyScale, "latency-scale", config.DefaultLatencyScale, "Multiplier applied to every simulated delay")
	serveCmd.MarkFlagsMutuallyExclusive("latency", "no-latency")

	// Logging flags
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")

	// CORS and rate limiting
	serveCmd.Flags().StringSliceVar(&f.corsOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable, \"*\" allows any)")
	serveCmd.Flags().Float64Var(&f.rateLimit, "rate-limit", 0, "Requests per second per client (0 = unlimited)")
}

// buildServeConfig resolves the server configuration. changed reports
// whether a flag was set on the command line; lookup has the signature of
// os.LookupEnv.
func buildServeConfig(f *serveFlags, changed func(string) bool, lookup func(string) (string, bool)) (*config.ServerConfiguration, error) {
	cfg := config.DefaultServerConfiguration()
	if f.configFile != "" {
		loaded, err := config.LoadFromFile(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if changed("port") {
		cfg.Port = f.port
	}
	if changed("host") {
		cfg.Host = f.host
	}
	if changed("base-path") {
		cfg.BasePath = f.basePath
	}
	if changed("seed") {
		cfg.SeedFile = f.seedFile
	}
	if changed("max-log-entries") {
		cfg.MaxLogEntries = f.maxLogEntries
	}

	if cfg.Latency == nil {
		cfg.Latency = &config.LatencyConfig{Enabled: true, Scale: config.DefaultLatencyScale}
	}
	if changed("latency") {
		cfg.Latency.Enabled = f.latency
	}
	if changed("no-latency") && f.noLatency {
		cfg.Latency.Enabled = false
	}
	if changed("latency-scale") {
		cfg.Latency.Scale = f.latencyScale
	}

	if cfg.Log == nil {
		cfg.Log = &config.LogConfig{}
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}

	if changed("cors-origin") {
		if cfg.CORS == nil {
			cfg.CORS = &config.CORSConfig{}
		}
		cfg.CORS.Enabled = true
		cfg.CORS.AllowOrigins = f.corsOrigins
	}

	if changed("rate-limit") {
		if cfg.RateLimit == nil {
			cfg.RateLimit = &config.RateLimitConfig{BurstSize: config.DefaultRateLimitBurst}
		}
		cfg.RateLimit.Enabled = f.rateLimit > 0
		cfg.RateLimit.RequestsPerSecond = f.rateLimit
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, cfg *config.ServerConfiguration) error {
	log := cfg.Log.Logger(cmd.ErrOrStderr())

	srv, err := engine.NewServer(cfg, engine.WithLogger(log))
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}

	addr := displayAddr(srv.Addr())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Conduit mock API listening on http://%s%s\n", addr, cfg.BasePath)
	fmt.Fprintf(out, "Admin endpoints at http://%s/__admin\n", addr)

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	return srv.Stop()
}

// contextOrBackground returns the command's context, which is nil when a
// command runs outside Execute.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// displayAddr replaces a wildcard listen host with localhost.
func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "::", "0.0.0.0":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
