package report

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/user/section-stats-go/internal/chart"
	"github.com/user/section-stats-go/internal/models"
)

// StatsExport is the serialized form of an aggregated record.
type StatsExport struct {
	Revisions               map[models.Scope]int             `json:"revisions" yaml:"revisions"`
	SectionNamesPerRevision map[models.Scope][]NameCount     `json:"section_names_per_revision" yaml:"section_names_per_revision"`
	SectionsPerRevision     map[models.Scope][]SectionsCount `json:"sections_per_revision" yaml:"sections_per_revision"`
}

// NameCount is one section name and its occurrences.
type NameCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// SectionsCount is how many revisions had Number sections.
type SectionsCount struct {
	Number int `json:"number" yaml:"number"`
	Count  int `json:"count" yaml:"count"`
}

// NewStatsExport converts data, listing entries in first-seen order.
func NewStatsExport(data *models.StatsRecord) StatsExport {
	export := StatsExport{
		Revisions:               make(map[models.Scope]int),
		SectionNamesPerRevision: make(map[models.Scope][]NameCount),
		SectionsPerRevision:     make(map[models.Scope][]SectionsCount),
	}

	for _, scope := range models.Scopes {
		stats, err := data.Scope(scope)
		if err != nil {
			continue
		}
		export.Revisions[scope] = stats.Revisions

		names := make([]NameCount, 0, stats.SectionNames.Len())
		for _, e := range stats.SectionNames.Entries() {
			names = append(names, NameCount{Name: e.Key, Count: e.Count})
		}
		export.SectionNamesPerRevision[scope] = names

		counts := make([]SectionsCount, 0, stats.SectionCounts.Len())
		for _, e := range stats.SectionCounts.Entries() {
			counts = append(counts, SectionsCount{Number: e.Key, Count: e.Count})
		}
		export.SectionsPerRevision[scope] = counts
	}
	return export
}

// --- JSON Report Adapter ---

// JsonReportAdapter writes the aggregate as section_stats.json.
type JsonReportAdapter struct {
	reportData []byte
}

// PrepareData marshals the aggregate into indented JSON.
func (jra *JsonReportAdapter) PrepareData(data *models.StatsRecord) error {
	jsonData, err := json.MarshalIndent(NewStatsExport(data), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data to JSON: %w", err)
	}
	jra.reportData = append(jsonData, '\n')
	return nil
}

// Write saves the JSON document.
func (jra *JsonReportAdapter) Write(sink chart.Sink) error {
	if jra.reportData == nil {
		return ErrNotPrepared
	}
	return writeArtifact(sink, exportName+"."+FormatJSON, jra.reportData)
}

// --- YAML Report Adapter ---

// YamlReportAdapter writes the aggregate as section_stats.yaml.
type YamlReportAdapter struct {
	reportData []byte
}

// PrepareData marshals the aggregate into YAML.
func (yra *YamlReportAdapter) PrepareData(data *models.StatsRecord) error {
	yamlData, err := yaml.Marshal(NewStatsExport(data))
	if err != nil {
		return fmt.Errorf("failed to marshal data to YAML: %w", err)
	}
	yra.reportData = yamlData
	return nil
}

// Write saves the YAML document.
func (yra *YamlReportAdapter) Write(sink chart.Sink) error {
	if yra.reportData == nil {
		return ErrNotPrepared
	}
	return writeArtifact(sink, exportName+"."+FormatYAML, yra.reportData)
}

func writeArtifact(sink chart.Sink, name string, content []byte) error {
	out, err := sink.Create(name)
	if err != nil {
		return err
	}
	if _, err := out.Write(content); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return out.Close()
}
