package mmr

import (
	"fmt"
	"math"
)

// Tolerance is the absolute error allowed when checking that a score vector
// sums to 1.
const Tolerance = 1e-9

// ScoreFunction distributes a fixed pool of points among the n places of a
// contest. Implementations must return n non-negative values, ordered from
// first place to last, that sum to 1. Monotonicity is not checked.
type ScoreFunction interface {
	Scores(n int) ([]float64, error)
}

// ScoreFunctionFunc adapts a plain function to ScoreFunction.
type ScoreFunctionFunc func(n int) ([]float64, error)

func (f ScoreFunctionFunc) Scores(n int) ([]float64, error) {
	return f(n)
}

// Linear awards points that shrink by the same amount from one place to the
// next, so improving from 2nd to 1st is worth as much as from 5th to 4th.
type Linear struct{}

func (Linear) Scores(n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: contest needs at least one player", ErrInvalidInput)
	}
	return LinearScores(n), nil
}

// LinearScores gives place p (1-indexed) (n-p) / (n(n-1)/2) points. A single
// player takes the whole pool.
func LinearScores(n int) []float64 {
	if n == 1 {
		return []float64{1}
	}

	denom := float64(n*(n-1)) / 2
	scores := make([]float64, n)
	for p := 1; p <= n; p++ {
		scores[p-1] = float64(n-p) / denom
	}
	return scores
}

// Exponential weights points toward the top finishers: place p gets
// Alpha^(n-p) - 1 before normalization. A larger Alpha rewards winning more.
type Exponential struct {
	Alpha float64
}

// NewExponential checks alpha and returns the score function.
func NewExponential(alpha float64) (Exponential, error) {
	if err := checkAlpha(alpha); err != nil {
		return Exponential{}, err
	}
	return Exponential{Alpha: alpha}, nil
}

func checkAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha < 1 {
		return fmt.Errorf("%w: score function base must be >= 1 (got %v)", ErrInvalidParameter, alpha)
	}
	return nil
}

func (e Exponential) Scores(n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: contest needs at least one player", ErrInvalidInput)
	}
	return ExponentialScores(n, e.Alpha)
}

// ExponentialScores computes the exponential distribution for n players.
// Alpha == 1 is the limit of the exponential shape and yields exactly the
// linear distribution; the general formula would be 0/0 there.
func ExponentialScores(n int, alpha float64) ([]float64, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}

	if alpha == 1 || n == 1 {
		return LinearScores(n), nil
	}

	// Scaled by alpha^-(n-1) so every term stays within [0, 1] for any n.
	last := math.Pow(alpha, -float64(n-1))
	scores := make([]float64, n)
	var total float64
	for p := 1; p <= n; p++ {
		scores[p-1] = math.Pow(alpha, -float64(p-1)) - last
		total += scores[p-1]
	}

	if total == 0 {
		return nil, fmt.Errorf(
			"%w: score function base %v can not be normalized for %d players",
			ErrInvalidParameter,
			alpha,
			n,
		)
	}

	for i := range scores {
		scores[i] /= total
	}
	return scores, nil
}

// ExpectedScores gives each player's expected share of all pairwise wins:
// every head-to-head is scored with the logistic 1 / (1 + base^((Rb-Ra)/d)),
// summed per player, and divided by the number of distinct pairings.
func ExpectedScores(ratings []float64, d, logBase float64) ([]float64, error) {
	if err := checkRatings(ratings); err != nil {
		return nil, err
	}

	n := len(ratings)
	if n == 1 {
		return []float64{1}, nil
	}

	expected := make([]float64, n)
	for i, self := range ratings {
		for j, opponent := range ratings {
			if i == j {
				continue
			}
			expected[i] += 1 / (1 + math.Pow(logBase, (opponent-self)/d))
		}
	}

	denom := float64(n*(n-1)) / 2
	for i := range expected {
		expected[i] /= denom
	}

	if err := checkSum("expected", expected); err != nil {
		return nil, err
	}
	return expected, nil
}

func checkRatings(ratings []float64) error {
	if len(ratings) == 0 {
		return fmt.Errorf("%w: no ratings", ErrInvalidInput)
	}

	for i, rating := range ratings {
		if math.IsNaN(rating) || math.IsInf(rating, 0) {
			return fmt.Errorf("%w: rating %d is not a finite number", ErrInvalidInput, i)
		}
	}
	return nil
}

func checkSum(name string, scores []float64) error {
	var total float64
	for _, score := range scores {
		total += score
	}

	if math.IsNaN(total) || math.Abs(total-1) > Tolerance {
		return fmt.Errorf("%w: %s scores sum to %v", ErrInvariantViolation, name, total)
	}
	return nil
}
