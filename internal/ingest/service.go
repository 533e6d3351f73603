// Package ingest coordinates the document-to-store pipeline: source adapter,
// extraction, canonical name resolution, deduplication, and the final atomic
// store write.
package ingest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/catalog"
	"github.com/kofiasare/hotelmetrics/internal/common"
	"github.com/kofiasare/hotelmetrics/internal/dedup"
	"github.com/kofiasare/hotelmetrics/internal/entity"
	"github.com/kofiasare/hotelmetrics/internal/extract"
	"github.com/kofiasare/hotelmetrics/internal/repository"
	"github.com/kofiasare/hotelmetrics/internal/source"
)

// Service handles ingestion business logic.
type Service struct {
	pipeline *extract.Pipeline
	catalog  *catalog.Catalog
	gate     *dedup.Gate
	store    repository.ItemStore
	logger   *slog.Logger
}

func NewService(pipeline *extract.Pipeline, cat *catalog.Catalog, gate *dedup.Gate, store repository.ItemStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		pipeline: pipeline,
		catalog:  cat,
		gate:     gate,
		store:    store,
		logger:   logger,
	}
}

// IngestFile runs the whole pipeline for one document. defaultDept is
// attributed to points that carry no department header of their own
// (table rows).
//
// Either the full new-point set is written or the request fails before
// writing; a failed dedup read degrades to "treat everything as new" instead
// of blocking ingestion.
func (s *Service) IngestFile(ctx context.Context, path string, defaultDept constants.Department) (*entity.ProcessingSummary, error) {
	path = strings.TrimSpace(path)

	v := common.NewValidator()
	v.Field("path", path, common.Required)
	v.Field("department", string(defaultDept), common.Required, common.KnownDepartment)
	if err := v.Error(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = common.WithRunID(ctx, runID)
	log := s.logger.With("run_id", runID)

	doc, err := source.ReadDocument(path)
	if err != nil {
		log.Error("ingest.read.failed", "path", path, "error", err)
		return nil, err
	}

	result := s.pipeline.Run(doc.Text, doc.Tables, doc.Filename, doc.Source, defaultDept)

	// canonicalize once, at ingestion; stored items always hold the
	// canonical name
	for i := range result.Points {
		p := &result.Points[i]
		p.DataType = catalog.Resolve(p.DataType, p.Department)
	}

	summary := &entity.ProcessingSummary{
		SourceFile:     doc.Filename,
		TotalExtracted: len(result.Points),
		PerCategory:    s.categoryBreakdown(result.Points),
		Dates:          result.Dates,
	}

	if len(result.Points) == 0 {
		summary.Status = constants.RunStatusEmpty
		log.Info("ingest.empty", "path", path)
		return summary, nil
	}

	// dedup reads are per department, the write is one atomic batch: either
	// every new point lands or the request fails with nothing persisted
	duplicates := 0
	var newData []entity.RawDataPoint
	for _, batch := range groupByDepartment(result.Points) {
		partition := s.gate.PartitionPoints(ctx, batch)
		duplicates += len(partition.Duplicates)
		newData = append(newData, partition.NewData...)
	}

	stored := 0
	if len(newData) > 0 {
		n, err := s.store.InsertItems(ctx, newData)
		if err != nil {
			log.Error("ingest.write.failed", "path", path, "error", err)
			return nil, common.StoreError("writing extracted items", err)
		}
		stored = n
		// rows the unique index swallowed were concurrent duplicates
		duplicates += len(newData) - n
	}

	summary.Status = constants.RunStatusStored
	summary.Stored = stored
	summary.Duplicates = duplicates

	log.Info("ingest.file.ok",
		"path", path,
		"extracted", summary.TotalExtracted,
		"stored", stored,
		"duplicates", duplicates,
	)
	return summary, nil
}

func (s *Service) categoryBreakdown(points []entity.RawDataPoint) map[string]int {
	breakdown := make(map[string]int)
	for _, p := range points {
		breakdown[string(s.catalog.CategoryOf(p.Department, p.DataType))]++
	}
	return breakdown
}

// groupByDepartment splits a mixed batch so the dedup gate can scope each
// store read to a single department.
func groupByDepartment(points []entity.RawDataPoint) map[constants.Department][]entity.RawDataPoint {
	grouped := make(map[constants.Department][]entity.RawDataPoint)
	for _, p := range points {
		grouped[p.Department] = append(grouped[p.Department], p)
	}
	return grouped
}
