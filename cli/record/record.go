// Package record implements the record codec CLI commands.
package record

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/pubky/pubkycore/cli/input"
	"github.com/pubky/pubkycore/cli/options"
	"github.com/pubky/pubkycore/pkg/packet"
	pubkyrecord "github.com/pubky/pubkycore/pkg/record"
	"github.com/urfave/cli"
)

// NewCommands returns the 'record' command.
func NewCommands() []cli.Command {
	decodeFlags := []cli.Flag{
		cli.BoolFlag{
			Name:  "hex",
			Usage: "treat the packet argument as hex instead of base64",
		},
		cli.Uint64Flag{
			Name:  "last-seen",
			Usage: "resolver last-seen timestamp to attach to the envelope",
		},
		options.Config,
		options.Debug,
	}
	createFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "name, n",
			Usage: "record name",
		},
		cli.StringFlag{
			Name:  "content",
			Usage: "TXT record content (prompted for when empty)",
		},
		cli.StringFlag{
			Name:  "target",
			Usage: "build an HTTPS record pointing at this target instead of a TXT record",
		},
		cli.UintFlag{
			Name:  "ttl",
			Usage: "record TTL in seconds (config default when zero)",
		},
		options.Config,
	}
	return []cli.Command{{
		Name:  "record",
		Usage: "decode signed naming packets and build records for publication",
		Subcommands: []cli.Command{
			{
				Name:      "decode",
				Usage:     "decode a signed packet into its JSON envelope",
				UsageText: "record decode [--hex] [--last-seen N] <packet>",
				Action:    decodePacket,
				Flags:     decodeFlags,
			},
			{
				Name:   "create",
				Usage:  "build a record set ready for the signer",
				Action: createRecord,
				Flags:  createFlags,
			},
		},
	}}
}

func decodePacket(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		return cli.NewExitError("signed packet is missing", 1)
	}

	var (
		raw []byte
		err error
	)
	if ctx.Bool("hex") {
		raw, err = hex.DecodeString(ctx.Args()[0])
	} else {
		raw, err = base64.StdEncoding.DecodeString(ctx.Args()[0])
	}
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid packet encoding: %w", err), 1)
	}

	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer log.Sync()

	p, err := packet.Parse(raw)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	s, err := p.EncodeJSON(ctx.Uint64("last-seen"), log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, s)
	return nil
}

func createRecord(ctx *cli.Context) error {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	name := ctx.String("name")
	if name == "" {
		return cli.NewExitError("record name is missing", 1)
	}

	var rec pubkyrecord.Record
	if target := ctx.String("target"); target != "" {
		ttl := uint32(ctx.Uint("ttl"))
		if ttl == 0 {
			ttl = cfg.HTTPSTTL
		}
		rec, err = pubkyrecord.NewHTTPS(name, target, 0, ttl)
	} else {
		content := ctx.String("content")
		if content == "" {
			content, err = input.ReadLine(ctx.App.Writer, "Content: ")
			if err != nil {
				return cli.NewExitError(err, 1)
			}
		}
		ttl := uint32(ctx.Uint("ttl"))
		if ttl == 0 {
			ttl = cfg.TXTTTL
		}
		rec, err = pubkyrecord.NewTXT(name, content, ttl)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	wire, err := pubkyrecord.PackAnswers([]pubkyrecord.Record{rec})
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	b, err := json.Marshal(json.OrderedObject{
		{Key: "records", Value: pubkyrecord.EncodeAll([]pubkyrecord.Record{rec}, nil)},
		{Key: "dns_packet", Value: base64.StdEncoding.EncodeToString(wire)},
	})
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, string(b))
	return nil
}
