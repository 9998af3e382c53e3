// Package contest reads batches of contests, rates them, and writes the
// results back out as text, JSON, YAML or CBOR.
package contest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/AidenDam/Elo-ranking-system/pkg/mmr"

	"github.com/fxamacker/cbor/v2"
	fp "github.com/repeale/fp-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var ErrMalformed = errors.New("malformed contest")

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// FormatForPath picks a format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cbor":
		return FormatCBOR, nil
	}

	return "", fmt.Errorf("unsupported contest file: %s", path)
}

// Contest is a single multi-player match. Orders holds each player's place
// and may be omitted, in which case the ratings are in finishing order.
type Contest struct {
	Ratings []float64 `json:"ratings" yaml:"ratings" cbor:"ratings"`
	Orders  []int     `json:"orders,omitempty" yaml:"orders,omitempty" cbor:"orders,omitempty"`
}

func (c *Contest) Validate() error {
	if len(c.Ratings) == 0 {
		return fmt.Errorf("%w: no ratings", ErrMalformed)
	}

	if len(c.Orders) != 0 && len(c.Orders) != len(c.Ratings) {
		return fmt.Errorf(
			"%w: %d orders for %d ratings",
			ErrMalformed,
			len(c.Orders),
			len(c.Ratings),
		)
	}

	return nil
}

type Result struct {
	Ratings  []float64     `json:"ratings" yaml:"ratings" cbor:"ratings"`
	Outcomes []mmr.Outcome `json:"outcomes,omitempty" yaml:"outcomes,omitempty" cbor:"outcomes,omitempty"`
}

// Rater is satisfied by *mmr.Elo.
type Rater interface {
	Outcomes(ratings []float64, order []int) ([]mmr.Outcome, error)
}

// Rate rates every contest independently.
func Rate(rater Rater, contests []Contest) ([]Result, error) {
	results := make([]Result, 0, len(contests))
	for i, contest := range contests {
		if err := contest.Validate(); err != nil {
			return nil, fmt.Errorf("contest %d: %w", i, err)
		}

		outcomes, err := rater.Outcomes(contest.Ratings, contest.Orders)
		if err != nil {
			return nil, fmt.Errorf("contest %d: %w", i, err)
		}

		ratings := fp.Map(func(o mmr.Outcome) float64 { return o.Rating })(outcomes)

		log.Debug().
			Int("contest", i).
			Int("players", len(ratings)).
			Floats64("ratings", ratings).
			Msg("rated contest")

		results = append(results, Result{
			Ratings:  ratings,
			Outcomes: outcomes,
		})
	}

	return results, nil
}

// Decode reads either a single contest or a list of contests.
func Decode(r io.Reader, format Format) ([]Contest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var unmarshal func([]byte, interface{}) error
	switch format {
	case FormatJSON:
		unmarshal = json.Unmarshal
	case FormatYAML:
		unmarshal = yaml.Unmarshal
	case FormatCBOR:
		unmarshal = cbor.Unmarshal
	default:
		return nil, fmt.Errorf("can not decode contests from %q", format)
	}

	var contests []Contest
	if err := unmarshal(data, &contests); err == nil {
		if len(contests) == 0 {
			return nil, fmt.Errorf("%w: no contests", ErrMalformed)
		}
		return contests, nil
	}

	var contest Contest
	if err := unmarshal(data, &contest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return []Contest{contest}, nil
}

func DecodeFile(path string) ([]Contest, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file, format)
}

// Encode writes results. precision only applies to the text format.
func Encode(w io.Writer, format Format, precision int, results []Result) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(results); err != nil {
			return err
		}
		return encoder.Close()
	case FormatCBOR:
		return cbor.NewEncoder(w).Encode(results)
	case FormatText:
		return encodeText(w, precision, results)
	}

	return fmt.Errorf("can not encode results as %q", format)
}

func encodeText(w io.Writer, precision int, results []Result) error {
	format := func(value float64) string {
		return strconv.FormatFloat(value, 'f', precision, 64)
	}

	var buffer bytes.Buffer
	for i, result := range results {
		if len(results) > 1 {
			fmt.Fprintf(&buffer, "contest %d\n", i)
		}

		if len(result.Outcomes) == 0 {
			fmt.Fprintln(&buffer, strings.Join(fp.Map(format)(result.Ratings), " "))
			continue
		}

		table := tabwriter.NewWriter(&buffer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(table, "player\trating\tdelta\tactual\texpected")
		for player, outcome := range result.Outcomes {
			fmt.Fprintf(
				table,
				"%d\t%s\t%s\t%s\t%s\n",
				player,
				format(outcome.Rating),
				signed(format(outcome.Delta)),
				format(outcome.Actual),
				format(outcome.Expected),
			)
		}
		if err := table.Flush(); err != nil {
			return err
		}
	}

	_, err := w.Write(buffer.Bytes())
	return err
}

func signed(value string) string {
	if strings.HasPrefix(value, "-") {
		return value
	}
	return "+" + value
}
