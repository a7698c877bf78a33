// conduit-mock serves a stateful mock of the Conduit (RealWorld) API.
package main

import (
	"os"

	"github.com/civiclens/conduit-mock/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	os.Exit(cli.Execute())
}
