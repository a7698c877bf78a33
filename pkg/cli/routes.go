package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civiclens/conduit-mock/pkg/cli/internal/output"
	"github.com/civiclens/conduit-mock/pkg/config"
	"github.com/civiclens/conduit-mock/pkg/engine"
)

var routesBasePath string

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the API routes with their auth mode and simulated latency",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		base := strings.TrimSuffix(routesBasePath, "/")
		routes := engine.Routes()

		if jsonOutput {
			infos := make([]engine.RouteInfo, 0, len(routes))
			for _, rt := range routes {
				infos = append(infos, engine.RouteInfo{
					Name:      rt.Name,
					Method:    rt.Method,
					Path:      base + rt.Pattern,
					Auth:      rt.Auth.String(),
					Status:    rt.Status,
					LatencyMs: rt.Latency.Milliseconds(),
				})
			}
			return output.JSON(cmd.OutOrStdout(), infos)
		}

		tw := output.Table(cmd.OutOrStdout())
		fmt.Fprintln(tw, "METHOD\tPATH\tNAME\tAUTH\tSTATUS\tLATENCY")
		for _, rt := range routes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
				rt.Method, base+rt.Pattern, rt.Name, rt.Auth, rt.Status, rt.Latency)
		}
		return tw.Flush()
	},
}

func init() {
	routesCmd.Flags().StringVar(&routesBasePath, "base-path", config.DefaultBasePath, "Path prefix to show before each route")
}
