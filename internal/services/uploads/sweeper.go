package uploads

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/internal/objectstore"
)

// Sweep aborts every in-progress upload under the tracks prefix initiated
// before now - (threshold + guard band). One entry failing never stops the
// sweep; failures are collected in the report.
func (s *service) Sweep(ctx context.Context, dryRun bool) (*SweepReport, error) {
	report := &SweepReport{DryRun: dryRun, Errors: []SweepError{}}

	uploads, err := s.store.ListInProgressMultiparts(ctx, objectstore.TracksPrefix)
	if err != nil {
		return report, fmt.Errorf("listing in-progress uploads: %w", err)
	}

	cutoff := s.now().UTC().Add(-(s.cfg.StuckThreshold + s.cfg.GuardBand))

	for _, up := range uploads {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++

		if !up.InitiatedAt.Before(cutoff) {
			report.Skipped++
			continue
		}
		report.Stale++

		if dryRun {
			s.logger.Info("stuck upload (dry run)",
				zap.String("key", string(up.Key)),
				zap.String("upload_id", up.UploadID),
				zap.Time("initiated_at", up.InitiatedAt))
			continue
		}

		result, err := s.abort(ctx, up.Key.DBKey(), up.UploadID, abortReasonSweep)
		if err != nil {
			s.logger.Error("failed to abort stuck upload",
				zap.String("key", string(up.Key)),
				zap.String("upload_id", up.UploadID),
				zap.Error(err))
			report.Errors = append(report.Errors, SweepError{
				Key:      string(up.Key.DBKey()),
				UploadID: up.UploadID,
				Error:    err.Error(),
			})
			continue
		}
		report.Aborted++
		report.DBRecordsDeleted += result.DBRecordsDeleted
	}

	s.logger.Info("stuck upload sweep finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("stale", report.Stale),
		zap.Int("aborted", report.Aborted),
		zap.Int("errors", len(report.Errors)),
		zap.Bool("dry_run", dryRun))

	return report, nil
}
