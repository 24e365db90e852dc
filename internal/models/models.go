package models

import (
	"fmt"

	"github.com/user/section-stats-go/pkg/counter"
)

// Scope selects which revisions of a document a statistic covers.
type Scope string

const (
	// ScopeGlobal covers every revision in a document's history.
	ScopeGlobal Scope = "global"
	// ScopeLastRevision covers only the final revision.
	ScopeLastRevision Scope = "last_revision"
)

// Scopes lists every scope in output order.
var Scopes = []Scope{ScopeGlobal, ScopeLastRevision}

// Title returns the human readable series name used in charts.
func (s Scope) Title() string {
	switch s {
	case ScopeGlobal:
		return "All revisions"
	case ScopeLastRevision:
		return "Last revision"
	default:
		return string(s)
	}
}

// ScopeStats holds the three statistics tables for one scope.
type ScopeStats struct {
	// SectionNames counts occurrences of each section name.
	SectionNames *counter.Counter[string]
	// SectionCounts maps a number of sections to how many revisions had it.
	SectionCounts *counter.Counter[int]
	// Revisions is the total revision count, the normalization denominator.
	Revisions int
}

// NewScopeStats returns empty, ready to use tables.
func NewScopeStats() ScopeStats {
	return ScopeStats{
		SectionNames:  counter.New[string](),
		SectionCounts: counter.New[int](),
	}
}

// Add merges other into s.
func (s *ScopeStats) Add(other ScopeStats) {
	if s.SectionNames == nil {
		s.SectionNames = counter.New[string]()
	}
	if s.SectionCounts == nil {
		s.SectionCounts = counter.New[int]()
	}
	s.SectionNames.Merge(other.SectionNames)
	s.SectionCounts.Merge(other.SectionCounts)
	s.Revisions += other.Revisions
}

// StatsRecord is the statistics of one input file, or the sum of several.
type StatsRecord struct {
	Global       ScopeStats
	LastRevision ScopeStats
}

// NewStatsRecord returns a record with every counter at zero.
func NewStatsRecord() *StatsRecord {
	return &StatsRecord{
		Global:       NewScopeStats(),
		LastRevision: NewScopeStats(),
	}
}

// Scope returns the tables for scope s.
func (r *StatsRecord) Scope(s Scope) (*ScopeStats, error) {
	switch s {
	case ScopeGlobal:
		return &r.Global, nil
	case ScopeLastRevision:
		return &r.LastRevision, nil
	default:
		return nil, fmt.Errorf("unknown scope %q", s)
	}
}

// Add merges other into r, scope by scope.
func (r *StatsRecord) Add(other *StatsRecord) {
	if other == nil {
		return
	}
	r.Global.Add(other.Global)
	r.LastRevision.Add(other.LastRevision)
}
