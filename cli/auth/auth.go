// Package auth implements the authorization-URL CLI commands.
package auth

import (
	"fmt"
	"strings"

	"github.com/pubky/pubkycore/cli/input"
	"github.com/pubky/pubkycore/cli/options"
	pubkyauth "github.com/pubky/pubkycore/pkg/auth"
	"github.com/urfave/cli"
)

// NewCommands returns the 'auth' command.
func NewCommands() []cli.Command {
	createFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "relay, r",
			Usage: "relay endpoint for the approval exchange (config default when empty)",
		},
		cli.StringFlag{
			Name:  "capabilities, caps",
			Usage: "comma-separated capability tokens, e.g. /pub/app/:rw,/pub/foo:r",
		},
		cli.BoolFlag{
			Name:  "ask-secret",
			Usage: "prompt for the secret instead of generating one",
		},
		options.Config,
	}
	return []cli.Command{{
		Name:  "auth",
		Usage: "parse and compose pubkyauth authorization URLs",
		Subcommands: []cli.Command{
			{
				Name:      "parse",
				Usage:     "parse a pubkyauth URL into its JSON descriptor",
				UsageText: "auth parse <url>",
				Action:    parseURL,
			},
			{
				Name:   "create",
				Usage:  "compose a pubkyauth URL with a fresh secret",
				Action: createURL,
				Flags:  createFlags,
			},
		},
	}}
}

func parseURL(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		return cli.NewExitError("pubkyauth URL is missing", 1)
	}
	details, err := pubkyauth.Parse(ctx.Args()[0])
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	s, err := details.ToJSON()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, s)
	return nil
}

func createURL(ctx *cli.Context) error {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var caps []pubkyauth.Capability
	if tokens := ctx.String("capabilities"); tokens != "" {
		for _, token := range strings.Split(tokens, ",") {
			c, err := pubkyauth.ParseCapability(token)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
			caps = append(caps, c)
		}
	}

	relay := ctx.String("relay")
	if relay == "" {
		relay = cfg.Relay
	}

	var secret string
	if ctx.Bool("ask-secret") {
		secret, err = input.ReadSecret(ctx.App.Writer, "Secret: ")
	} else {
		secret, err = pubkyauth.NewSecret()
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	details := &pubkyauth.Details{Relay: relay, Secret: secret, Capabilities: caps}
	fmt.Fprintln(ctx.App.Writer, details.URL())
	return nil
}
