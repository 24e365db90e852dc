// Package loader reads a section statistics XML document into a StatsRecord.
//
// The expected document layout is:
//
//	<stats>
//	  <section_names_per_revision>
//	    <global><section name="intro" count="3"/></global>
//	    <last_revision>...</last_revision>
//	  </section_names_per_revision>
//	  <sections_per_revision>
//	    <global><sections number="4" count="2"/></global>
//	    <last_revision>...</last_revision>
//	  </sections_per_revision>
//	  <revisions>
//	    <global count="10"/>
//	    <last_revision count="1"/>
//	  </revisions>
//	</stats>
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/antchfx/xmlquery"

	"github.com/user/section-stats-go/internal/models"
)

// Sentinel parse errors.
var (
	ErrMissingElement   = errors.New("missing element")
	ErrMissingAttribute = errors.New("missing attribute")
	ErrInvalidAttribute = errors.New("invalid attribute")
)

// XMLParser loads statistics files from disk.
type XMLParser struct{}

// Parse implements collector.Parser.
func (XMLParser) Parse(path string) (*models.StatsRecord, error) {
	return Load(path)
}

// Load opens and parses the statistics file at path.
func Load(path string) (*models.StatsRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats file %s: %w", path, err)
	}
	defer f.Close()

	record, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stats file %s: %w", path, err)
	}
	return record, nil
}

// Parse reads a statistics document from r.
func Parse(r io.Reader) (*models.StatsRecord, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("malformed XML: %w", err)
	}

	record := models.NewStatsRecord()
	for _, scope := range models.Scopes {
		stats, err := record.Scope(scope)
		if err != nil {
			return nil, err
		}
		if err := parseScope(doc, scope, stats); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func parseScope(doc *xmlquery.Node, scope models.Scope, stats *models.ScopeStats) error {
	names, err := xmlquery.QueryAll(doc, fmt.Sprintf("/stats/section_names_per_revision/%s/section", scope))
	if err != nil {
		return fmt.Errorf("querying section names (%s): %w", scope, err)
	}
	for _, el := range names {
		name, err := attr(el, "name")
		if err != nil {
			return err
		}
		count, err := intAttr(el, "count")
		if err != nil {
			return err
		}
		if err := stats.SectionNames.Add(name, count); err != nil {
			return err
		}
	}

	counts, err := xmlquery.QueryAll(doc, fmt.Sprintf("/stats/sections_per_revision/%s/sections", scope))
	if err != nil {
		return fmt.Errorf("querying section counts (%s): %w", scope, err)
	}
	for _, el := range counts {
		number, err := intAttr(el, "number")
		if err != nil {
			return err
		}
		count, err := intAttr(el, "count")
		if err != nil {
			return err
		}
		if err := stats.SectionCounts.Add(number, count); err != nil {
			return err
		}
	}

	revisionsPath := fmt.Sprintf("/stats/revisions/%s", scope)
	revisions, err := xmlquery.Query(doc, revisionsPath)
	if err != nil {
		return fmt.Errorf("querying revisions (%s): %w", scope, err)
	}
	if revisions == nil {
		return fmt.Errorf("%w: %s", ErrMissingElement, revisionsPath)
	}
	stats.Revisions, err = intAttr(revisions, "count")
	return err
}

func attr(n *xmlquery.Node, name string) (string, error) {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value, nil
		}
	}
	return "", fmt.Errorf("%w: <%s> has no %q", ErrMissingAttribute, n.Data, name)
}

// intAttr reads a non-negative integer attribute.
func intAttr(n *xmlquery.Node, name string) (int, error) {
	raw, err := attr(n, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: <%s %s=%q> is not a non-negative integer", ErrInvalidAttribute, n.Data, name, raw)
	}
	return v, nil
}
