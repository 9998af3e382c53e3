package mmr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(values []float64) (total float64) {
	for _, value := range values {
		total += value
	}
	return
}

func TestLinearScores(t *testing.T) {
	assert.Equal(t, []float64{1}, LinearScores(1))
	assert.Equal(t, []float64{1, 0}, LinearScores(2))

	scores := LinearScores(4)
	assert.InDeltaSlice(t, []float64{3.0 / 6, 2.0 / 6, 1.0 / 6, 0}, scores, Tolerance)

	for n := 2; n <= 20; n++ {
		assert.InDelta(t, 1, sum(LinearScores(n)), Tolerance, "n=%d", n)
	}

	_, err := Linear{}.Scores(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExponentialScores(t *testing.T) {
	for _, alpha := range []float64{1, 1.01, 1.5, 2, 10} {
		for n := 2; n <= 12; n++ {
			scores, err := ExponentialScores(n, alpha)
			require.NoError(t, err)
			require.Len(t, scores, n)
			assert.InDelta(t, 1, sum(scores), Tolerance, "alpha=%v n=%d", alpha, n)

			for i := 1; i < n; i++ {
				assert.LessOrEqual(t, scores[i], scores[i-1])
			}
			assert.Equal(t, 0.0, scores[n-1])
		}
	}

	scores, err := ExponentialScores(5, 1.5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{
		0.4961832061068702,
		0.2900763358778626,
		0.15267175572519084,
		0.061068702290076333,
		0,
	}, scores, Tolerance)

	scores, err = ExponentialScores(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, scores)
}

func TestExponentialMatchesLinearAtOne(t *testing.T) {
	for _, n := range []int{2, 3, 5, 10} {
		scores, err := ExponentialScores(n, 1)
		require.NoError(t, err)
		assert.InDeltaSlice(t, LinearScores(n), scores, Tolerance, "n=%d", n)
	}
}

func TestExponentialScoresLargeFields(t *testing.T) {
	tests := []struct {
		n     int
		alpha float64
	}{
		{2000, 1.5},
		{10000, 1.5},
		{40, 1e10},
		{500, 1e300},
	}

	for _, test := range tests {
		scores, err := ExponentialScores(test.n, test.alpha)
		require.NoError(t, err, "alpha=%v n=%d", test.alpha, test.n)
		require.Len(t, scores, test.n)
		assert.InDelta(t, 1, sum(scores), Tolerance, "alpha=%v n=%d", test.alpha, test.n)

		for i := 1; i < test.n; i++ {
			require.LessOrEqual(t, scores[i], scores[i-1], "alpha=%v n=%d place=%d", test.alpha, test.n, i+1)
			require.GreaterOrEqual(t, scores[i], 0.0)
		}
	}
}

func TestExponentialRejectsSmallBase(t *testing.T) {
	_, err := NewExponential(0.99)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewExponential(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidParameter)

	// an Exponential built without the constructor still fails on use
	_, err = Exponential{Alpha: 0.5}.Scores(3)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	e, err := NewExponential(1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, e.Alpha)
}

func TestExpectedScores(t *testing.T) {
	expected, err := ExpectedScores([]float64{1200, 1000}, D, LogBase)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.7597469266479578, 0.2402530733520421}, expected, Tolerance)

	expected, err = ExpectedScores([]float64{1500, 1500, 1500}, D, LogBase)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, expected, Tolerance)

	fields := [][]float64{
		{1200, 1000, 1100, 900},
		{0, 0},
		{0, 3000, 150, 2999.5, 1200},
		{-500, 400, 10000},
	}
	for _, ratings := range fields {
		expected, err := ExpectedScores(ratings, D, LogBase)
		require.NoError(t, err)
		assert.Len(t, expected, len(ratings))
		assert.InDelta(t, 1, sum(expected), Tolerance, "%v", ratings)
	}

	// the stronger player is always expected to do better
	expected, err = ExpectedScores([]float64{1000, 1800}, D, 2)
	require.NoError(t, err)
	assert.Greater(t, expected[1], expected[0])

	expected, err = ExpectedScores([]float64{1700}, D, LogBase)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, expected)
}

func TestExpectedScoresInvalid(t *testing.T) {
	_, err := ExpectedScores(nil, D, LogBase)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ExpectedScores([]float64{1000, math.NaN()}, D, LogBase)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ExpectedScores([]float64{math.Inf(1), 1000}, D, LogBase)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
