package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/civiclens/conduit-mock/pkg/cli/internal/output"
	"github.com/civiclens/conduit-mock/pkg/client"
)

// StatusOutput is the JSON form of the status command.
type StatusOutput struct {
	URL    string         `json:"url"`
	Health *client.Health `json:"health"`
	State  *client.State  `json:"state"`
}

func newAdminClient() *client.Client {
	return client.New(serverURL)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show health and entity counts of a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := contextOrBackground(cmd)
		c := newAdminClient()

		health, err := c.Admin.Health(ctx)
		if err != nil {
			return fmt.Errorf("server at %s is not reachable: %w", serverURL, err)
		}
		state, err := c.Admin.State(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return output.JSON(out, StatusOutput{URL: serverURL, Health: health, State: state})
		}

		fmt.Fprintf(out, "Server:    %s (%s, up %s)\n", serverURL, health.Status, time.Duration(health.Uptime)*time.Second)
		fmt.Fprintf(out, "Users:     %d\n", state.Users)
		fmt.Fprintf(out, "Articles:  %d\n", state.Articles)
		fmt.Fprintf(out, "Comments:  %d\n", state.Comments)
		fmt.Fprintf(out, "Follows:   %d\n", state.Follows)
		fmt.Fprintf(out, "Favorites: %d\n", state.Favorites)
		fmt.Fprintf(out, "Tags:      %d\n", state.Tags)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore a running server to its seed data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newAdminClient().Admin.Reset(contextOrBackground(cmd)); err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), map[string]bool{"reset": true})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Store reset to seed data")
		return nil
	},
}

var (
	requestsLimit int
	requestsClear bool
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Show the request log of a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := contextOrBackground(cmd)
		c := newAdminClient()
		out := cmd.OutOrStdout()

		if requestsClear {
			n, err := c.Admin.ClearRequests(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(out, map[string]int{"cleared": n})
			}
			fmt.Fprintf(out, "Cleared %d requests\n", n)
			return nil
		}

		list, err := c.Admin.Requests(ctx, requestsLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(out, list)
		}
		if len(list.Requests) == 0 {
			fmt.Fprintln(out, "No requests logged")
			return nil
		}

		tw := output.Table(out)
		fmt.Fprintln(tw, "TIME\tMETHOD\tPATH\tROUTE\tSTATUS\tDELAY\tUSER")
		for _, e := range list.Requests {
			user := e.Username
			if user == "" {
				user = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%dms\t%s\n",
				e.Timestamp.Format(time.TimeOnly), e.Method, e.Path, e.Route, e.Status, e.DelayMs, user)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if list.Total > len(list.Requests) {
			fmt.Fprintf(out, "(%d of %d shown)\n", len(list.Requests), list.Total)
		}
		return nil
	},
}

func init() {
	requestsCmd.Flags().IntVarP(&requestsLimit, "limit", "n", 20, "Maximum number of requests to show")
	requestsCmd.Flags().BoolVar(&requestsClear, "clear", false, "Clear the request log instead of listing it")
}
