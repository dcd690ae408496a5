// Package app assembles the pubkycore CLI application.
package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pubky/pubkycore/cli/auth"
	"github.com/pubky/pubkycore/cli/record"
	"github.com/pubky/pubkycore/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "pubkycore\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a pubkycore instance of [cli.App] with all commands
// included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "pubkycore"
	ctl.Version = config.Version
	ctl.Usage = "Pubky mobile SDK core tool"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, auth.NewCommands()...)
	ctl.Commands = append(ctl.Commands, record.NewCommands()...)
	return ctl
}
