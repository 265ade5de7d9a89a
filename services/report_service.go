package services

import (
	"context"
	"fmt"
	"time"

	"blog-api/metrics"
	"blog-api/models"
	"blog-api/repositories"

	"github.com/sirupsen/logrus"
)

// SnapshotSource yields a consistent copy of the store. *repositories.Store
// implements it.
type SnapshotSource interface {
	Snapshot() (models.Snapshot, error)
}

// ReportService copies store snapshots into the reporting database. The
// snapshot is taken first so the store lock is never held during I/O.
type ReportService interface {
	ExportNow(ctx context.Context) (*models.ReportSnapshot, error)
	Run(ctx context.Context, interval time.Duration)
}

type reportService struct {
	source     SnapshotSource
	reportRepo repositories.ReportRepository
	log        logrus.FieldLogger
}

func NewReportService(source SnapshotSource, reportRepo repositories.ReportRepository, log logrus.FieldLogger) ReportService {
	return &reportService{
		source:     source,
		reportRepo: reportRepo,
		log:        log,
	}
}

func (s *reportService) ExportNow(ctx context.Context) (*models.ReportSnapshot, error) {
	snap, err := s.source.Snapshot()
	if err != nil {
		metrics.RecordExport(false)
		return nil, fmt.Errorf("snapshot store: %w", err)
	}

	start := time.Now()
	summary, err := s.reportRepo.Export(ctx, snap)
	if err != nil {
		metrics.RecordExport(false)
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	metrics.RecordExport(true)
	s.log.WithFields(logrus.Fields{
		"posts":    summary.TotalPosts,
		"comments": summary.TotalComments,
		"duration": time.Since(start),
	}).Info("report exported")
	return summary, nil
}

// Run exports once immediately and then on every tick until ctx is done.
// Failures are logged and the loop keeps going.
func (s *reportService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.ExportNow(ctx); err != nil && ctx.Err() == nil {
			s.log.WithError(err).Warn("report export failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
