package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civiclens/conduit-mock/pkg/config"
	"github.com/civiclens/conduit-mock/pkg/engine"
	"github.com/civiclens/conduit-mock/pkg/portability"
)

var (
	openapiFormat     string
	openapiOutput     string
	openapiBasePath   string
	openapiServerURL  string
	openapiAPIVersion string
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Export an OpenAPI 3 document describing the mock API",
	Example: `  # YAML to stdout
  conduit-mock openapi

  # JSON to a file, advertising a server URL
  conduit-mock openapi --format json --server-url http://localhost:3001 -o conduit.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := config.ParseFormat(openapiFormat)
		if err != nil {
			return err
		}

		doc, err := portability.NewOpenAPI(engine.Routes(), portability.Options{
			Version:   openapiAPIVersion,
			BasePath:  strings.TrimSuffix(openapiBasePath, "/"),
			ServerURL: openapiServerURL,
		})
		if err != nil {
			return fmt.Errorf("failed to build document: %w", err)
		}
		data, err := portability.Marshal(doc, format)
		if err != nil {
			return err
		}

		if openapiOutput == "" || openapiOutput == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(openapiOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", openapiOutput, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", openapiOutput)
		return nil
	},
}

func init() {
	openapiCmd.Flags().StringVarP(&openapiFormat, "format", "f", "yaml", "Output format (yaml, json)")
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "", "Write to a file instead of stdout")
	openapiCmd.Flags().StringVar(&openapiBasePath, "base-path", config.DefaultBasePath, "Path prefix of every route")
	openapiCmd.Flags().StringVar(&openapiServerURL, "server-url", "", "Server URL to list in the document")
	openapiCmd.Flags().StringVar(&openapiAPIVersion, "api-version", portability.DefaultVersion, "info.version of the document")
}
