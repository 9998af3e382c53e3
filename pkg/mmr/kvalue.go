package mmr

import (
	"fmt"
	"math"

	opt "github.com/repeale/fp-go/option"
)

// KPolicy maps a rating-derived magnitude to the step constant that scales a
// rating change. The engine passes -rating for players who did at least as
// well as expected and +rating for the others, so a policy may treat gains
// and losses differently.
type KPolicy interface {
	KValue(magnitude float64) float64
}

// KPolicyFunc adapts a plain function to KPolicy.
type KPolicyFunc func(magnitude float64) float64

func (f KPolicyFunc) KValue(magnitude float64) float64 {
	return f(magnitude)
}

type StaircaseMode string

const (
	// StaircaseFloor maps negative magnitudes to 0.
	StaircaseFloor StaircaseMode = "floor"
	// StaircaseMirror evaluates the staircase on the absolute magnitude.
	StaircaseMirror StaircaseMode = "mirror"
)

// Step is one bracket of a staircase: magnitudes below Below get K.
type Step struct {
	Below float64 `json:"below"`
	K     float64 `json:"k"`
}

// Staircase is a KPolicy built from brackets scanned in order. Final applies
// to everything past the last bracket, so the policy is defined for all reals.
type Staircase struct {
	Mode  StaircaseMode `json:"mode"`
	Steps []Step        `json:"steps"`
	Final float64       `json:"final"`
}

func (s Staircase) KValue(magnitude float64) float64 {
	switch s.Mode {
	case StaircaseMirror:
		magnitude = math.Abs(magnitude)
	default:
		if magnitude < 0 {
			return 0
		}
	}

	for _, step := range s.Steps {
		if magnitude < step.Below {
			return step.K
		}
	}
	return s.Final
}

// Validate checks that brackets are strictly increasing and that no step is
// negative.
func (s Staircase) Validate() error {
	if s.Mode != StaircaseFloor && s.Mode != StaircaseMirror {
		return fmt.Errorf("%w: unknown staircase mode %q", ErrInvalidParameter, s.Mode)
	}

	for i, step := range s.Steps {
		if step.K < 0 || math.IsNaN(step.K) {
			return fmt.Errorf("%w: step %d has negative k", ErrInvalidParameter, i)
		}
		if i > 0 && !(step.Below > s.Steps[i-1].Below) {
			return fmt.Errorf("%w: step %d is not above step %d", ErrInvalidParameter, i, i-1)
		}
	}

	if s.Final < 0 || math.IsNaN(s.Final) {
		return fmt.Errorf("%w: final step is negative", ErrInvalidParameter)
	}
	return nil
}

const (
	PolicyAsymmetricFloor = "asymmetric-floor"
	PolicySignedMirror    = "signed-mirror"
)

var (
	// AsymmetricFloor never adjusts players whose magnitude is negative, i.e.
	// players with a positive rating who beat their expectation keep their
	// rating and only underperformers move.
	AsymmetricFloor = Staircase{
		Mode: StaircaseFloor,
		Steps: []Step{
			{800, 400},
			{1200, 300},
			{1600, 200},
			{2000, 100},
			{2400, 80},
		},
		Final: 50,
	}

	// SignedMirror applies the same step to gains and losses, shrinking as
	// ratings climb.
	SignedMirror = Staircase{
		Mode: StaircaseMirror,
		Steps: []Step{
			{2100, 32},
			{2400, 24},
		},
		Final: 16,
	}
)

var presets = []struct {
	Name   string
	Policy Staircase
}{
	{PolicySignedMirror, SignedMirror},
	{PolicyAsymmetricFloor, AsymmetricFloor},
}

// DefaultPolicy is used when no K-value policy is configured.
func DefaultPolicy() KPolicy {
	return SignedMirror
}

// FindPolicy looks up a named staircase preset.
func FindPolicy(name string) opt.Option[Staircase] {
	for _, preset := range presets {
		if preset.Name == name {
			policy := preset.Policy
			policy.Steps = append([]Step(nil), policy.Steps...)
			return opt.Some(policy)
		}
	}
	return opt.None[Staircase]()
}

// PolicyNames lists the presets, default first.
func PolicyNames() []string {
	names := make([]string, 0, len(presets))
	for _, preset := range presets {
		names = append(names, preset.Name)
	}
	return names
}
