package config

import (
	"fmt"

	"github.com/AidenDam/Elo-ranking-system/pkg/contest"
	"github.com/AidenDam/Elo-ranking-system/pkg/mmr"

	opt "github.com/repeale/fp-go/option"
)

const PolicyCustom = "custom"

type EloSettings struct {
	DValue            float64        `json:"dValue"`
	ScoreFunctionBase float64        `json:"scoreFunctionBase"`
	LogBase           float64        `json:"logBase"`
	KPolicy           string         `json:"kPolicy"`
	Staircase         *mmr.Staircase `json:"staircase,omitempty"`
}

// Options converts the settings into engine options.
func (s EloSettings) Options() (mmr.Options, error) {
	options := mmr.Options{
		D:                 s.DValue,
		ScoreFunctionBase: s.ScoreFunctionBase,
		LogBase:           s.LogBase,
	}

	if s.KPolicy == PolicyCustom {
		if s.Staircase == nil {
			return options, fmt.Errorf("%w: custom k policy needs a staircase", mmr.ErrInvalidParameter)
		}

		if err := s.Staircase.Validate(); err != nil {
			return options, err
		}

		options.KPolicy = *s.Staircase
		return options, nil
	}

	preset := mmr.FindPolicy(s.KPolicy)
	if opt.IsNone(preset) {
		return options, fmt.Errorf("%w: unknown k policy %q", mmr.ErrInvalidParameter, s.KPolicy)
	}

	options.KPolicy = preset.Value
	return options, nil
}

// Engine builds an Elo engine from the settings.
func (s EloSettings) Engine() (*mmr.Elo, error) {
	options, err := s.Options()
	if err != nil {
		return nil, err
	}

	return mmr.NewEloWithOptions(options)
}

type OutputSettings struct {
	Format    contest.Format `json:"format"`
	Precision int            `json:"precision"`
}

type Config struct {
	Elo    EloSettings    `json:"elo"`
	Output OutputSettings `json:"output"`
}
