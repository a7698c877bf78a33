package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// DefaultServerURL is where status, reset and requests look for a server.
const DefaultServerURL = "http://localhost:3001"

var (
	// Persistent flags available to all subcommands
	serverURL  string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "conduit-mock",
	Short: "conduit-mock serves a stateful mock of the Conduit blogging API",
	Long: `conduit-mock runs an in-memory backend for the Conduit (RealWorld) API.
Users, profiles, articles, comments and tags start from seed fixtures and
change as clients call the API. Responses are delayed to imitate a real
network unless latency simulation is turned off.

Configuration can be provided via a configuration file, CONDUIT_MOCK_*
environment variables and flags, in increasing order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", DefaultServerURL, "Base URL of a running conduit-mock server")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")

	initServeCmd()
	rootCmd.AddCommand(routesCmd, openapiCmd, seedCmd, statusCmd, resetCmd, requestsCmd, versionCmd)
}
