// Package series turns aggregated counters into chart-ready sequences.
package series

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/user/section-stats-go/internal/models"
	"github.com/user/section-stats-go/pkg/counter"
)

// DefaultLength is the default x axis length and top-N size.
const DefaultLength = 50

// ErrZeroDenominator is returned when normalizing by a non-positive revision count.
var ErrZeroDenominator = errors.New("normalization denominator must be positive")

// Sample is one charted value. Missing marks an index with no data, which is
// different from a value of zero.
type Sample struct {
	Label   string
	Value   float64
	Missing bool
}

// Series is a named, ordered list of samples.
type Series struct {
	Name    string
	Samples []Sample
}

// Labels returns the sample labels in order.
func (s Series) Labels() []string {
	labels := make([]string, len(s.Samples))
	for i, sample := range s.Samples {
		labels[i] = sample.Label
	}
	return labels
}

// Point is a sparse (integer key, value) pair.
type Point struct {
	Key   int
	Value float64
}

// Frequency is a key paired with its normalized count.
type Frequency[K comparable] struct {
	Key   K
	Value float64
}

// Fill spreads sparse points over indexes [0, stop). Indexes without a point
// are Missing; keys outside the range are dropped.
func Fill(points []Point, stop int) []Sample {
	if stop < 0 {
		stop = 0
	}
	samples := make([]Sample, stop)
	for i := range samples {
		samples[i] = Sample{Label: strconv.Itoa(i), Missing: true}
	}
	for _, p := range points {
		if p.Key < 0 || p.Key >= stop {
			continue
		}
		samples[p.Key].Value = p.Value
		samples[p.Key].Missing = false
	}
	return samples
}

// Normalize divides every count by denominator, keeping entry order.
func Normalize[K comparable](entries []counter.Entry[K], denominator int) ([]Frequency[K], error) {
	if denominator <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrZeroDenominator, denominator)
	}
	out := make([]Frequency[K], len(entries))
	for i, e := range entries {
		out[i] = Frequency[K]{Key: e.Key, Value: float64(e.Count) / float64(denominator)}
	}
	return out, nil
}

// TopNormalized selects the n most common entries of c and normalizes them.
func TopNormalized[K comparable](c *counter.Counter[K], n, denominator int) ([]Frequency[K], error) {
	return Normalize(c.MostCommon(n), denominator)
}

// SectionCounts builds the section-count distribution, one series per scope,
// each normalized by the scope's revision count and filled to length.
func SectionCounts(data *models.StatsRecord, length int) ([]Series, error) {
	out := make([]Series, 0, len(models.Scopes))
	for _, scope := range models.Scopes {
		stats, err := data.Scope(scope)
		if err != nil {
			return nil, err
		}

		var points []Point
		if stats.SectionCounts.Len() > 0 {
			freqs, err := Normalize(stats.SectionCounts.Entries(), stats.Revisions)
			if err != nil {
				return nil, fmt.Errorf("section counts (%s): %w", scope, err)
			}
			points = make([]Point, len(freqs))
			for i, f := range freqs {
				points[i] = Point{Key: f.Key, Value: f.Value}
			}
		}

		out = append(out, Series{Name: scope.Title(), Samples: Fill(points, length)})
	}
	return out, nil
}

// SectionNames builds the top-n section name frequencies for one scope,
// most frequent first.
func SectionNames(data *models.StatsRecord, scope models.Scope, n int) (Series, error) {
	stats, err := data.Scope(scope)
	if err != nil {
		return Series{}, err
	}

	s := Series{Name: scope.Title()}
	if stats.SectionNames.Len() == 0 {
		return s, nil
	}

	freqs, err := TopNormalized(stats.SectionNames, n, stats.Revisions)
	if err != nil {
		return Series{}, fmt.Errorf("section names (%s): %w", scope, err)
	}
	s.Samples = make([]Sample, len(freqs))
	for i, f := range freqs {
		s.Samples[i] = Sample{Label: f.Key, Value: f.Value}
	}
	return s, nil
}
