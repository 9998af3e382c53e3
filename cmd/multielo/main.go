package main

import (
	"fmt"
	"os"
	"time"

	"github.com/AidenDam/Elo-ranking-system/pkg/config"
	"github.com/AidenDam/Elo-ranking-system/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version kong.VersionFlag `help:"Print version information and exit." short:"v"`
	Debug   bool             `help:"Whether to enable debug logging."`
	Configs []string         `help:"Configuration files, applied in order. Defaults to the files listed in MULTIELO_CONFIG." name:"config" short:"c" type:"existingfile"`

	Rate struct {
		Ratings []float64 `arg:"" name:"ratings" help:"Ratings before the contest, in finishing order unless --order is given."`
		Order   []int     `help:"Place of each player (lower is better, equal places tie), e.g. 1,2,2."`
		Format  string    `help:"Output format: text, json, yaml or cbor. Overrides the configuration." short:"f"`
	} `cmd:"" help:"Rate a single contest."`

	Batch struct {
		File   string `arg:"" name:"file" help:"Contest file (.json, .yaml or .cbor) holding one contest or a list of them." type:"existingfile"`
		Format string `help:"Output format: text, json, yaml or cbor. Overrides the configuration." short:"f"`
	} `cmd:"" help:"Rate every contest in a file."`

	Presets struct {
	} `cmd:"" help:"List the K-value presets."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("multielo"),
		kong.Description("Elo ratings for contests with any number of players"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf(
				"multielo %s (commit %s)\nbuilt %s",
				version.Version,
				version.GitCommit,
				version.BuildTime,
			),
		},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	var err error
	switch ctx.Command() {
	case "rate <ratings>":
		err = rateCommand(os.Stdout)
	case "batch <file>":
		err = batchCommand(os.Stdout)
	case "presets":
		err = presetsCommand(os.Stdout)
	case "config":
		_, err = os.Stdout.Write(config.DEFAULT)
	}

	if err != nil {
		writeError(err)
	}
}
