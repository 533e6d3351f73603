package ingest

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

// FileResult is the per-file outcome of a directory ingest.
type FileResult struct {
	Path    string
	Status  constants.RunStatus
	Summary *entity.ProcessingSummary
	Err     string
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
	Stored    uint32
	Duplicate uint32
}

// IngestDirectory walks root, filters to the allowed document extensions,
// skips hidden files, and ingests each match. Per-file failures are recorded
// and the walk continues.
func (s *Service) IngestDirectory(ctx context.Context, root string, defaultDept constants.Department) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Status: constants.RunStatusFailed, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		summary, err := s.IngestFile(ctx, path, defaultDept)
		if err != nil {
			results = append(results, FileResult{Path: path, Status: constants.RunStatusFailed, Err: err.Error()})
			stats.Failed++
			return nil
		}

		results = append(results, FileResult{Path: path, Status: summary.Status, Summary: summary})
		stats.Succeeded++
		stats.Stored += uint32(summary.Stored)
		stats.Duplicate += uint32(summary.Duplicates)
		return nil
	})

	if err != nil {
		return results, stats, err
	}
	return results, stats, nil
}
