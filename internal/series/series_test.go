package series_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/section-stats-go/internal/models"
	"github.com/user/section-stats-go/internal/series"
	"github.com/user/section-stats-go/pkg/counter"
)

func TestFillDropsOutOfRangeKeys(t *testing.T) {
	t.Parallel()

	got := series.Fill([]series.Point{{Key: 0, Value: 5}, {Key: 60, Value: 9}}, 50)

	require.Len(t, got, 50)
	assert.Equal(t, series.Sample{Label: "0", Value: 5}, got[0])
	for i := 1; i < 50; i++ {
		assert.True(t, got[i].Missing, "index %d", i)
	}
}

func TestFillDropsNegativeKeys(t *testing.T) {
	t.Parallel()

	got := series.Fill([]series.Point{{Key: -1, Value: 3}}, 3)

	require.Len(t, got, 3)
	assert.True(t, got[2].Missing)
}

func TestFillMissingIsNotZero(t *testing.T) {
	t.Parallel()

	got := series.Fill([]series.Point{{Key: 1, Value: 0}}, 3)

	assert.True(t, got[0].Missing)
	assert.False(t, got[1].Missing)
	assert.Zero(t, got[1].Value)
	assert.Equal(t, "2", got[2].Label)
}

func TestFillIdempotentOnDenseInput(t *testing.T) {
	t.Parallel()

	const length = 5
	points := make([]series.Point, length)
	for i := range points {
		points[i] = series.Point{Key: i, Value: float64(i) / 10}
	}

	first := series.Fill(points, length)

	again := make([]series.Point, len(first))
	for i, s := range first {
		again[i] = series.Point{Key: i, Value: s.Value}
	}
	assert.Equal(t, first, series.Fill(again, length))
}

func TestFillZeroLength(t *testing.T) {
	t.Parallel()

	assert.Empty(t, series.Fill([]series.Point{{Key: 0, Value: 1}}, 0))
	assert.Empty(t, series.Fill(nil, -3))
}

func TestTopNormalized(t *testing.T) {
	t.Parallel()

	c := counter.New[string]()
	require.NoError(t, c.Add("intro", 10))
	require.NoError(t, c.Add("body", 6))
	require.NoError(t, c.Add("notes", 4))

	got, err := series.TopNormalized(c, 2, 20)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "intro", got[0].Key)
	assert.InDelta(t, 0.5, got[0].Value, 1e-9)
	assert.Equal(t, "body", got[1].Key)
	assert.InDelta(t, 0.3, got[1].Value, 1e-9)
}

func TestNormalizeZeroDenominator(t *testing.T) {
	t.Parallel()

	entries := []counter.Entry[int]{{Key: 1, Count: 3}}

	got, err := series.Normalize(entries, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, series.ErrZeroDenominator))
	assert.Nil(t, got)

	_, err = series.Normalize(entries, -1)
	assert.ErrorIs(t, err, series.ErrZeroDenominator)
}

func sampleRecord(t *testing.T) *models.StatsRecord {
	t.Helper()

	r := models.NewStatsRecord()
	r.Global.Revisions = 10
	r.LastRevision.Revisions = 2
	require.NoError(t, r.Global.SectionCounts.Add(3, 5))
	require.NoError(t, r.Global.SectionCounts.Add(70, 5))
	require.NoError(t, r.LastRevision.SectionCounts.Add(1, 2))
	require.NoError(t, r.Global.SectionNames.Add("body", 4))
	require.NoError(t, r.Global.SectionNames.Add("intro", 8))
	require.NoError(t, r.Global.SectionNames.Add("notes", 1))
	return r
}

func TestSectionCounts(t *testing.T) {
	t.Parallel()

	got, err := series.SectionCounts(sampleRecord(t), series.DefaultLength)
	require.NoError(t, err)
	require.Len(t, got, 2)

	global := got[0]
	assert.Equal(t, "All revisions", global.Name)
	require.Len(t, global.Samples, series.DefaultLength)
	assert.InDelta(t, 0.5, global.Samples[3].Value, 1e-9)
	assert.True(t, global.Samples[0].Missing)

	last := got[1]
	assert.Equal(t, "Last revision", last.Name)
	assert.InDelta(t, 1.0, last.Samples[1].Value, 1e-9)
}

func TestSectionCountsZeroRevisions(t *testing.T) {
	t.Parallel()

	r := models.NewStatsRecord()
	require.NoError(t, r.Global.SectionCounts.Add(2, 1))

	_, err := series.SectionCounts(r, series.DefaultLength)
	assert.ErrorIs(t, err, series.ErrZeroDenominator)
}

func TestSectionCountsEmptyRecord(t *testing.T) {
	t.Parallel()

	got, err := series.SectionCounts(models.NewStatsRecord(), 10)
	require.NoError(t, err)

	for _, s := range got {
		require.Len(t, s.Samples, 10)
		for _, sample := range s.Samples {
			assert.True(t, sample.Missing)
			assert.False(t, math.IsNaN(sample.Value))
		}
	}
}

func TestSectionNames(t *testing.T) {
	t.Parallel()

	got, err := series.SectionNames(sampleRecord(t), models.ScopeGlobal, 2)
	require.NoError(t, err)

	assert.Equal(t, "All revisions", got.Name)
	assert.Equal(t, []string{"intro", "body"}, got.Labels())
	assert.InDelta(t, 0.8, got.Samples[0].Value, 1e-9)
	assert.InDelta(t, 0.4, got.Samples[1].Value, 1e-9)
}

func TestSectionNamesEmptyScope(t *testing.T) {
	t.Parallel()

	got, err := series.SectionNames(models.NewStatsRecord(), models.ScopeLastRevision, 50)
	require.NoError(t, err)
	assert.Equal(t, "Last revision", got.Name)
	assert.Empty(t, got.Samples)
}

func TestSectionNamesUnknownScope(t *testing.T) {
	t.Parallel()

	_, err := series.SectionNames(models.NewStatsRecord(), models.Scope("weekly"), 50)
	assert.Error(t, err)
}
