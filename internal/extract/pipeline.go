// Package extract implements the deterministic, rule-based extraction
// pipeline: date extraction, department section segmentation, labeled metric
// extraction, and the secondary table-row extractor.
//
// Everything in this package is a pure function over a single text blob; the
// rule tables are data (rules.yaml), so new metrics and departments are
// additive configuration, not code changes.
package extract

import (
	"log/slog"
	"time"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

// Pipeline runs the full extraction sequence for one document.
type Pipeline struct {
	rules  *RuleSet
	logger *slog.Logger
	now    func() time.Time
}

// Result is everything one document yielded.
type Result struct {
	Points   []entity.RawDataPoint
	Dates    []time.Time
	Sections []Section
}

func NewPipeline(rules *RuleSet, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{rules: rules, logger: logger, now: time.Now}
}

// Run extracts dates, segments the text into department sections, applies
// each department's metric rules, and finally scans tabular rows for
// unlabeled numeric tokens. Table-row points are attributed to defaultDept
// since generic rows carry no department header of their own.
func (p *Pipeline) Run(text string, tables [][][]string, sourceFile string, src constants.Source, defaultDept constants.Department) Result {
	dates := ExtractDates(text, p.now())
	sections := Segment(text, p.rules.Departments())

	var points []entity.RawDataPoint
	for _, section := range sections {
		dr, ok := p.rules.ForDepartment(section.Department)
		if !ok {
			continue
		}
		got := ExtractMetrics(section, dr.Rules, dates, src, sourceFile)
		if len(got) > 0 {
			p.logger.Debug("extract.section.ok",
				"department", section.Department,
				"points", len(got),
			)
		}
		points = append(points, got...)
	}

	tablePoints := ExtractTableRows(tables, defaultDept, dates, sourceFile)
	points = append(points, tablePoints...)

	p.logger.Info("extract.run.ok",
		"source_file", sourceFile,
		"dates", len(dates),
		"sections", len(sections),
		"labeled_points", len(points)-len(tablePoints),
		"table_points", len(tablePoints),
	)

	return Result{Points: points, Dates: dates, Sections: sections}
}
