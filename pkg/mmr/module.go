package mmr

import (
	"fmt"
	"math"
	"sort"
)

const (
	// D is the default deviation.
	D = 400
	// Base is the default score function base.
	Base = 1.5
	// LogBase is the default base of the logistic expected-score model.
	LogBase = 10
)

// Options configure an Elo engine. A nil KPolicy or ScoreFunction falls back
// to the default; when ScoreFunction is set, ScoreFunctionBase is ignored.
type Options struct {
	D                 float64
	ScoreFunctionBase float64
	LogBase           float64
	KPolicy           KPolicy
	ScoreFunction     ScoreFunction
}

// DefaultOptions returns D=400, base 1.5, log base 10 and the signed-mirror
// K-value staircase.
func DefaultOptions() Options {
	return Options{
		D:                 D,
		ScoreFunctionBase: Base,
		LogBase:           LogBase,
		KPolicy:           DefaultPolicy(),
	}
}

// Elo rates multi-player contests. It is immutable after construction and
// safe for concurrent use as long as its KPolicy and ScoreFunction are.
type Elo struct {
	d       float64
	logBase float64
	kPolicy KPolicy
	scores  ScoreFunction
}

// Outcome is the result of a contest for a single player.
type Outcome struct {
	Rating   float64 `json:"rating"`
	Delta    float64 `json:"delta"`
	Actual   float64 `json:"actual"`
	Expected float64 `json:"expected"`
}

func (o *Outcome) String() string {
	return fmt.Sprintf("%.2f %+.2f", o.Rating, o.Delta)
}

// NewElo instantiates the Elo object with the default options.
func NewElo() *Elo {
	elo, err := NewEloWithOptions(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return elo
}

// NewEloWithOptions instantiates the Elo object with custom options.
func NewEloWithOptions(options Options) (*Elo, error) {
	if !(options.D > 0) || math.IsInf(options.D, 0) {
		return nil, fmt.Errorf("%w: d value must be positive (got %v)", ErrInvalidParameter, options.D)
	}

	if !(options.LogBase > 1) || math.IsInf(options.LogBase, 0) {
		return nil, fmt.Errorf("%w: log base must be greater than 1 (got %v)", ErrInvalidParameter, options.LogBase)
	}

	scores := options.ScoreFunction
	if scores == nil {
		exponential, err := NewExponential(options.ScoreFunctionBase)
		if err != nil {
			return nil, err
		}
		scores = exponential
	}

	kPolicy := options.KPolicy
	if kPolicy == nil {
		kPolicy = DefaultPolicy()
	}

	return &Elo{
		d:       options.D,
		logBase: options.LogBase,
		kPolicy: kPolicy,
		scores:  scores,
	}, nil
}

// NewRatings updates ratings after a contest. order gives each player's
// finishing place (lower is better, equal values tie); when it is empty the
// input order is taken as the finishing order. Results are in input order and
// never negative.
func (e *Elo) NewRatings(ratings []float64, order []int) ([]float64, error) {
	outcomes, err := e.Outcomes(ratings, order)
	if err != nil {
		return nil, err
	}

	updated := make([]float64, len(outcomes))
	for i, outcome := range outcomes {
		updated[i] = outcome.Rating
	}
	return updated, nil
}

// Outcomes is NewRatings with the intermediate scores kept for reporting.
func (e *Elo) Outcomes(ratings []float64, order []int) ([]Outcome, error) {
	n := len(ratings)
	if len(order) != 0 && len(order) != n {
		return nil, fmt.Errorf(
			"%w: %d places for %d ratings",
			ErrInvalidInput,
			len(order),
			n,
		)
	}

	actual, err := e.ActualScores(n, order)
	if err != nil {
		return nil, err
	}

	expected, err := e.ExpectedScores(ratings)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, n)
	for i, rating := range ratings {
		surprise := actual[i] - expected[i]

		magnitude := rating
		if surprise >= 0 {
			magnitude = -rating
		}
		scale := e.kPolicy.KValue(magnitude) * float64(n-1)

		updated := math.Max(rating+scale*surprise, 0)
		outcomes[i] = Outcome{
			Rating:   updated,
			Delta:    updated - rating,
			Actual:   actual[i],
			Expected: expected[i],
		}
	}
	return outcomes, nil
}

// ActualScores hands out the score function's points by finishing place and
// splits them evenly within each group of tied players.
func (e *Elo) ActualScores(n int, order []int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidInput)
	}

	if len(order) == 0 {
		order = make([]int, n)
		for i := range order {
			order[i] = i
		}
	}

	if len(order) != n {
		return nil, fmt.Errorf("%w: %d places for %d players", ErrInvalidInput, len(order), n)
	}

	byPlace, err := e.scores.Scores(n)
	if err != nil {
		return nil, err
	}

	if len(byPlace) != n {
		return nil, fmt.Errorf(
			"%w: score function returned %d scores for %d players",
			ErrInvariantViolation,
			len(byPlace),
			n,
		)
	}

	if err := checkSum("actual", byPlace); err != nil {
		return nil, err
	}

	// finishers[k] is the input index of the player who finished k-th
	finishers := make([]int, n)
	for i := range finishers {
		finishers[i] = i
	}
	sort.SliceStable(finishers, func(a, b int) bool {
		return order[finishers[a]] < order[finishers[b]]
	})

	scores := make([]float64, n)
	for rank, player := range finishers {
		scores[player] = byPlace[rank]
	}

	for start := 0; start < n; {
		end := start + 1
		for end < n && order[finishers[end]] == order[finishers[start]] {
			end++
		}

		if end-start > 1 {
			var total float64
			for _, player := range finishers[start:end] {
				total += scores[player]
			}

			mean := total / float64(end-start)
			for _, player := range finishers[start:end] {
				scores[player] = mean
			}
		}

		start = end
	}

	return scores, nil
}

// ExpectedScores computes the expected scores using the engine's d value and
// log base.
func (e *Elo) ExpectedScores(ratings []float64) ([]float64, error) {
	return ExpectedScores(ratings, e.d, e.logBase)
}
