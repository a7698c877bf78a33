package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/civiclens/conduit-mock/pkg/cli/internal/output"
	"github.com/civiclens/conduit-mock/pkg/config"
)

var seedFormat string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Print the built-in seed fixtures",
	Long: `Print the fixtures the server starts from. The output is a valid seed
file: edit it and pass it to 'conduit-mock serve --seed'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := config.ParseFormat(seedFormat)
		if err != nil {
			return err
		}
		if format == config.FormatYAML {
			_, err = cmd.OutOrStdout().Write(config.DefaultSeedYAML())
			return err
		}

		seed, err := config.DefaultSeed()
		if err != nil {
			return err
		}
		data, err := config.MarshalSeed(seed, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// SeedCheck is the outcome of validating one seed file.
type SeedCheck struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

var seedValidateCmd = &cobra.Command{
	Use:   "validate <file|glob>...",
	Short: "Check seed files against the schema and for broken references",
	Example: `  conduit-mock seed validate fixtures.yaml
  conduit-mock seed validate 'fixtures/**/*.{yaml,json}'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := expandSeedPatterns(args)
		if err != nil {
			return err
		}

		checks := make([]SeedCheck, 0, len(paths))
		failed := 0
		for _, p := range paths {
			check := SeedCheck{Path: p, Valid: true}
			if _, err := config.LoadSeedFile(p); err != nil {
				check.Valid = false
				check.Error = err.Error()
				failed++
			}
			checks = append(checks, check)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := output.JSON(out, checks); err != nil {
				return err
			}
		} else {
			for _, c := range checks {
				if c.Valid {
					fmt.Fprintf(out, "ok    %s\n", c.Path)
				} else {
					fmt.Fprintf(out, "FAIL  %s: %s\n", c.Path, c.Error)
				}
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d seed files invalid", failed, len(checks))
		}
		return nil
	},
}

// expandSeedPatterns resolves each argument as a doublestar glob. An
// argument without glob metacharacters is kept even if it does not exist,
// so the missing file is reported by validation.
func expandSeedPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if hasMeta(pattern) {
				return nil, fmt.Errorf("no files match %q", pattern)
			}
			matches = []string{pattern}
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, errors.New("no seed files given")
	}
	return paths, nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func init() {
	seedCmd.Flags().StringVarP(&seedFormat, "format", "f", "yaml", "Output format (yaml, json)")
	seedCmd.AddCommand(seedValidateCmd)
}
