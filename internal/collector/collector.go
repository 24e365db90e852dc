package collector

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/user/section-stats-go/internal/models"
)

// Parser turns one statistics file into a record.
type Parser interface {
	Parse(path string) (*models.StatsRecord, error)
}

// StatsCollector loads statistics files and sums them into Data.
type StatsCollector struct {
	parser Parser
	logger *slog.Logger
	Data   *models.StatsRecord
}

// NewStatsCollector creates a collector with an empty aggregate.
// A nil logger discards progress output.
func NewStatsCollector(parser Parser, logger *slog.Logger) *StatsCollector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StatsCollector{
		parser: parser,
		logger: logger,
		Data:   models.NewStatsRecord(),
	}
}

// Collect parses every path in order and adds it to the running totals.
// The first failure aborts collection; Data then holds the files merged so far.
func (sc *StatsCollector) Collect(paths []string) (*models.StatsRecord, error) {
	for _, path := range paths {
		attrs := []any{slog.String("path", path)}
		if info, err := os.Stat(path); err == nil {
			attrs = append(attrs, slog.String("size", humanize.Bytes(uint64(info.Size()))))
		}
		sc.logger.Info("reading", attrs...)

		record, err := sc.parser.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to collect %s: %w", path, err)
		}
		sc.Data.Add(record)
	}

	sc.logger.Info("collection complete",
		slog.Int("files", len(paths)),
		slog.Int("revisions", sc.Data.Global.Revisions),
		slog.Int("section_names", sc.Data.Global.SectionNames.Len()),
	)
	return sc.Data, nil
}

// Aggregate is a convenience wrapper that collects paths with a fresh collector.
func Aggregate(parser Parser, logger *slog.Logger, paths []string) (*models.StatsRecord, error) {
	return NewStatsCollector(parser, logger).Collect(paths)
}
