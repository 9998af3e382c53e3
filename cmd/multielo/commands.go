package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/AidenDam/Elo-ranking-system/pkg/config"
	"github.com/AidenDam/Elo-ranking-system/pkg/contest"
	"github.com/AidenDam/Elo-ranking-system/pkg/mmr"

	fp "github.com/repeale/fp-go"
	"github.com/rs/zerolog/log"
)

func loadEngine() (*mmr.Elo, *config.Config, error) {
	paths := config.Paths(CLI.Configs)
	if len(paths) > 0 {
		log.Debug().Strs("configs", paths).Msg("loading configuration")
	}

	cfg, err := config.Process(paths)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	elo, err := cfg.Elo.Engine()
	if err != nil {
		return nil, nil, err
	}

	log.Debug().
		Float64("dValue", cfg.Elo.DValue).
		Float64("scoreFunctionBase", cfg.Elo.ScoreFunctionBase).
		Float64("logBase", cfg.Elo.LogBase).
		Str("kPolicy", cfg.Elo.KPolicy).
		Msg("engine ready")

	return elo, cfg, nil
}

func outputFormat(cfg *config.Config, override string) contest.Format {
	if override != "" {
		return contest.Format(override)
	}
	return cfg.Output.Format
}

func rateCommand(w io.Writer) error {
	elo, cfg, err := loadEngine()
	if err != nil {
		return err
	}

	results, err := contest.Rate(elo, []contest.Contest{{
		Ratings: CLI.Rate.Ratings,
		Orders:  CLI.Rate.Order,
	}})
	if err != nil {
		return err
	}

	return contest.Encode(
		w,
		outputFormat(cfg, CLI.Rate.Format),
		cfg.Output.Precision,
		results,
	)
}

func batchCommand(w io.Writer) error {
	elo, cfg, err := loadEngine()
	if err != nil {
		return err
	}

	contests, err := contest.DecodeFile(CLI.Batch.File)
	if err != nil {
		return err
	}

	results, err := contest.Rate(elo, contests)
	if err != nil {
		return err
	}

	log.Info().Int("contests", len(results)).Str("file", CLI.Batch.File).Msg("rated contests")

	return contest.Encode(
		w,
		outputFormat(cfg, CLI.Batch.Format),
		cfg.Output.Precision,
		results,
	)
}

func presetsCommand(w io.Writer) error {
	table := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "name\tmode\tbrackets")

	for i, name := range mmr.PolicyNames() {
		policy := mmr.FindPolicy(name).Value

		brackets := fp.Map(func(step mmr.Step) string {
			return fmt.Sprintf("<%g:%g", step.Below, step.K)
		})(policy.Steps)
		brackets = append(brackets, fmt.Sprintf("else:%g", policy.Final))

		if i == 0 {
			name += " (default)"
		}
		fmt.Fprintf(table, "%s\t%s\t%s\n", name, policy.Mode, strings.Join(brackets, " "))
	}

	return table.Flush()
}
