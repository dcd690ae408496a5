/*
Package options contains the common CLI options and helper functions to
use them.
*/
package options

import (
	"fmt"

	"github.com/pubky/pubkycore/pkg/config"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is a flag for commands that read the tool configuration.
var Config = cli.StringFlag{
	Name:  "config-file, c",
	Usage: "path to the YAML configuration file",
}

// Debug is a flag for commands that can print debug logs.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging",
}

// GetConfigFromContext loads the configuration named by the config-file
// flag, or the defaults when the flag is absent.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	return config.Load(ctx.String("config-file"))
}

// HandleLoggingParams builds a console logger honoring the configured
// level and the debug flag.
func HandleLoggingParams(debug bool, cfg config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if len(cfg.LogLevel) > 0 {
		var err error
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	return cc.Build()
}
