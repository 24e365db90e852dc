package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/section-stats-go/internal/series"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func countsSeries() []series.Series {
	return []series.Series{
		{Name: "All revisions", Samples: series.Fill([]series.Point{{Key: 1, Value: 0.25}, {Key: 3, Value: 0.75}}, 5)},
		{Name: "Last revision", Samples: series.Fill([]series.Point{{Key: 3, Value: 1}}, 5)},
	}
}

func namesSeries() series.Series {
	return series.Series{Name: "All revisions", Samples: []series.Sample{
		{Label: "intro", Value: 0.9},
		{Label: "body", Value: 0.5},
		{Label: "notes", Value: 0.1},
	}}
}

func TestBarRendersPNG(t *testing.T) {
	t.Parallel()

	sink := NewMemorySink()
	meta := Meta{Name: "section_counts", Title: "Distribution", XTitle: "# sections", YTitle: "Frequency", Width: 600, Height: 400}

	require.NoError(t, PlotRenderer{}.Bar(sink, meta, countsSeries()...))

	assert.Equal(t, []string{"section_counts.png"}, sink.Names())
	assert.True(t, bytes.HasPrefix(sink.Bytes("section_counts.png"), pngMagic))
}

func TestHorizontalBarRendersPNG(t *testing.T) {
	t.Parallel()

	sink := NewMemorySink()
	meta := Meta{Name: "section_names.global", Title: "Names"}

	require.NoError(t, PlotRenderer{}.HorizontalBar(sink, meta, namesSeries()))
	assert.True(t, bytes.HasPrefix(sink.Bytes("section_names.global.png"), pngMagic))
}

func TestRenderEmptySeries(t *testing.T) {
	t.Parallel()

	sink := NewMemorySink()
	empty := series.Series{Name: "Last revision"}

	require.NoError(t, PlotRenderer{}.HorizontalBar(sink, Meta{Name: "empty_names"}, empty))
	require.NoError(t, PlotRenderer{}.Bar(sink, Meta{Name: "empty_counts"}, series.Series{
		Name: "All revisions", Samples: series.Fill(nil, 5),
	}))

	assert.Equal(t, []string{"empty_counts.png", "empty_names.png"}, sink.Names())
}

func TestReversePutsFirstSampleLast(t *testing.T) {
	t.Parallel()

	got := reverse(namesSeries())
	assert.Equal(t, []string{"notes", "body", "intro"}, got.Labels())
	assert.Equal(t, "All revisions", got.Name)

	// input is not modified
	assert.Equal(t, "intro", namesSeries().Samples[0].Label)
}

func TestValuesMissingDrawsZero(t *testing.T) {
	t.Parallel()

	got := values(series.Series{Samples: series.Fill([]series.Point{{Key: 1, Value: 0.4}}, 3)})
	assert.Equal(t, []float64{0, 0.4, 0}, []float64(got))
}

func TestMetaSize(t *testing.T) {
	t.Parallel()

	w, h := Meta{}.size()
	assert.InDelta(t, 900.0, float64(w), 1e-9)
	assert.InDelta(t, 600.0, float64(h), 1e-9)
}

func TestDirSink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, PlotRenderer{}.Bar(NewDirSink(dir), Meta{Name: "section_counts"}, countsSeries()...))

	content, err := os.ReadFile(filepath.Join(dir, "section_counts.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, pngMagic))
}

func TestDirSinkMissingDirectory(t *testing.T) {
	t.Parallel()

	sink := NewDirSink(filepath.Join(t.TempDir(), "output"))
	err := PlotRenderer{}.Bar(sink, Meta{Name: "section_counts"}, countsSeries()...)

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDirSinkNotADirectory(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := NewDirSink(file).Create("x.png")
	assert.ErrorIs(t, err, ErrNotDirectory)
}
