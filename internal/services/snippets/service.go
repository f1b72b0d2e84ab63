package snippets

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/contestreplay/replay-api/internal/metrics"
	"github.com/contestreplay/replay-api/internal/models"
	"github.com/contestreplay/replay-api/internal/services/contests"
	"github.com/contestreplay/replay-api/internal/services/timeline"
	"gorm.io/gorm"
)

const (
	bundleName     = "export.zip"
	snippetAudio   = "snippet.mp3"
	snippetLogName = "snippet.log"
)

// Service produces paired snippet exports: for a contact index range it
// extracts the matching audio window into one MP3, writes the Cabrillo
// subset next to it, zips the pair and tracks the result in the database.
type Service struct {
	db        *gorm.DB
	contests  contests.Service
	registry  *timeline.Registry
	extractor *Extractor
	metrics   *metrics.Metrics

	exportDir   string
	maxSpan     time.Duration
	minDuration float64
}

// NewService creates the export service. The metrics handle may be nil.
func NewService(db *gorm.DB, contestSvc contests.Service, registry *timeline.Registry, extractor *Extractor, m *metrics.Metrics, exportDir string, maxSpan time.Duration, minDuration float64) *Service {
	return &Service{
		db:          db,
		contests:    contestSvc,
		registry:    registry,
		extractor:   extractor,
		metrics:     m,
		exportDir:   exportDir,
		maxSpan:     maxSpan,
		minDuration: minDuration,
	}
}

// Export builds a paired snippet for contacts [startIndex, endIndex] of the
// named contest. Indexes are zero-based and inclusive; a reversed pair is
// normalized. The record is persisted before extraction starts so a failed
// extraction leaves a visible failed export rather than nothing.
func (s *Service) Export(ctx context.Context, contestName string, startIndex, endIndex int) (*models.Export, error) {
	started := time.Now()
	if s.metrics != nil {
		s.metrics.RecordExportStarted()
	}

	if endIndex < startIndex {
		startIndex, endIndex = endIndex, startIndex
	}

	contest, err := s.contests.Get(ctx, contestName)
	if err != nil {
		return nil, err
	}

	first, err := contest.Log().Contact(startIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	last, err := contest.Log().Contact(endIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	inv, err := s.registry.GetOrBuild(ctx, contestName, contest.AudioPaths)
	if err != nil {
		return nil, err
	}

	resolver := timeline.NewResolver(inv, contest.Timing)
	startOffset, endOffset, err := resolver.ResolveRange(first.Timestamp, last.Timestamp)
	if err != nil {
		if s.metrics != nil {
			var notMapped *timeline.NotMappedError
			if errors.As(err, &notMapped) {
				s.metrics.RecordNotMapped(notMapped.Reason)
			}
		}
		return nil, err
	}

	// The window runs up to the pre-roll past the final contact so the
	// exchange that follows its timestamp is included.
	endOffset += contest.Timing.PreSeconds
	if endOffset > inv.TotalDuration {
		endOffset = inv.TotalDuration
	}

	// A zero pre-roll can leave a zero-width window; widen it to the
	// minimum snippet length so there is audio to cut.
	if endOffset <= startOffset {
		endOffset = startOffset + s.minDuration
		if endOffset > inv.TotalDuration {
			endOffset = inv.TotalDuration
			startOffset = endOffset - s.minDuration
			if startOffset < 0 {
				startOffset = 0
			}
		}
	}

	if span := endOffset - startOffset; span > s.maxSpan.Seconds() {
		return nil, fmt.Errorf("%w: %.1fs requested, %.0fs allowed", ErrSpanTooLong, span, s.maxSpan.Seconds())
	}

	cuts, err := PlanCuts(inv, startOffset, endOffset)
	if err != nil {
		return nil, err
	}

	export := &models.Export{
		ContestName: contestName,
		StartIndex:  startIndex,
		EndIndex:    endIndex,
		StartOffset: startOffset,
		EndOffset:   endOffset,
		Status:      models.ExportStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(export).Error; err != nil {
		return nil, fmt.Errorf("failed to create export record: %w", err)
	}

	if err := s.build(ctx, export, contest, cuts); err != nil {
		export.Status = models.ExportStatusFailed
		export.ErrorMessage = err.Error()
		if dbErr := s.db.WithContext(ctx).Save(export).Error; dbErr != nil {
			log.Printf("[ERROR] Failed to mark export %s failed: %v", export.UUID, dbErr)
		}
		if s.metrics != nil {
			s.metrics.RecordExportFailed()
		}
		return export, err
	}

	export.Status = models.ExportStatusReady
	if err := s.db.WithContext(ctx).Save(export).Error; err != nil {
		return nil, fmt.Errorf("failed to finalize export record: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordExportCompleted(time.Since(started).Seconds(), export.Duration, len(cuts))
	}
	log.Printf("[DEBUG] Export %s ready: contacts %d-%d, %.1fs audio, %d segments",
		export.UUID, startIndex, endIndex, export.Duration, len(cuts))
	return export, nil
}

// build extracts the audio, writes the log subset and zips the pair
func (s *Service) build(ctx context.Context, export *models.Export, contest *contests.Contest, cuts []Cut) error {
	dir := filepath.Join(s.exportDir, export.UUID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating export dir: %v", ErrExtractionFailed, err)
	}

	audioPath := filepath.Join(dir, snippetAudio)
	if err := s.extractor.Extract(ctx, cuts, audioPath, s.minDuration); err != nil {
		return err
	}

	logPath := filepath.Join(dir, snippetLogName)
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("%w: creating log subset: %v", ErrExtractionFailed, err)
	}
	if err := contest.Log().WriteSubset(logFile, export.StartIndex, export.EndIndex); err != nil {
		logFile.Close()
		return fmt.Errorf("%w: writing log subset: %v", ErrExtractionFailed, err)
	}
	if err := logFile.Close(); err != nil {
		return fmt.Errorf("%w: writing log subset: %v", ErrExtractionFailed, err)
	}

	bundlePath := filepath.Join(dir, bundleName)
	if err := writeBundle(bundlePath, audioPath, logPath); err != nil {
		return err
	}

	info, err := os.Stat(bundlePath)
	if err != nil {
		return fmt.Errorf("%w: stat bundle: %v", ErrExtractionFailed, err)
	}

	export.BundleFilename = bundleName
	export.Duration = export.EndOffset - export.StartOffset
	if export.Duration < s.minDuration {
		export.Duration = s.minDuration
	}
	export.SizeBytes = info.Size()
	return nil
}

// writeBundle zips the snippet audio and log subset into a single download
func writeBundle(bundlePath string, files ...string) error {
	out, err := os.Create(bundlePath)
	if err != nil {
		return fmt.Errorf("%w: creating bundle: %v", ErrExtractionFailed, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			zw.Close()
			return fmt.Errorf("%w: bundling %s: %v", ErrExtractionFailed, filepath.Base(path), err)
		}
		entry, err := zw.Create(filepath.Base(path))
		if err == nil {
			_, err = io.Copy(entry, f)
		}
		f.Close()
		if err != nil {
			zw.Close()
			return fmt.Errorf("%w: bundling %s: %v", ErrExtractionFailed, filepath.Base(path), err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: closing bundle: %v", ErrExtractionFailed, err)
	}
	return nil
}

// Get returns an export by UUID
func (s *Service) Get(ctx context.Context, id string) (*models.Export, error) {
	var export models.Export
	err := s.db.WithContext(ctx).Where("uuid = ?", id).First(&export).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load export: %w", err)
	}
	return &export, nil
}

// List returns exports newest first, optionally filtered by contest
func (s *Service) List(ctx context.Context, contestName string) ([]models.Export, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if contestName != "" {
		query = query.Where("contest_name = ?", contestName)
	}
	var exports []models.Export
	if err := query.Find(&exports).Error; err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return exports, nil
}

// BundlePath returns the on-disk zip for a ready export
func (s *Service) BundlePath(ctx context.Context, id string) (string, error) {
	export, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if export.Status != models.ExportStatusReady {
		return "", fmt.Errorf("%w: status is %s", ErrExportNotReady, export.Status)
	}
	return filepath.Join(s.exportDir, export.UUID, export.BundleFilename), nil
}

// Delete removes an export record and its files on disk
func (s *Service) Delete(ctx context.Context, id string) error {
	export, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(export).Error; err != nil {
		return fmt.Errorf("failed to delete export: %w", err)
	}
	if err := os.RemoveAll(filepath.Join(s.exportDir, export.UUID)); err != nil {
		log.Printf("[ERROR] Failed to remove export files for %s: %v", export.UUID, err)
	}
	return nil
}
