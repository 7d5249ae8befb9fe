package worker

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/fusion-cleaner/internal/core/domain"
	"go.uber.org/multierr"
)

type CleanerService interface {
	CleanProjectsByCode(ctx context.Context, projectCode string) *domain.CleanReport
	CleanProcessesByCode(ctx context.Context, processCode string) *domain.CleanReport
}

// Sweeper runs the cleaner over a fixed set of project and process codes.
type Sweeper struct {
	cleaner      CleanerService
	projectCodes []string
	processCodes []string
	logger       *slog.Logger
}

func NewSweeper(
	cleaner CleanerService,
	projectCodes []string,
	processCodes []string,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		cleaner:      cleaner,
		projectCodes: projectCodes,
		processCodes: processCodes,
		logger:       logger,
	}
}

// RunOnce cleans every project code and then every process code, one at a
// time, and returns the reports in that order.
func (s *Sweeper) RunOnce(ctx context.Context) []*domain.CleanReport {
	s.logger.Info("starting sweep", "project_codes", len(s.projectCodes), "process_codes", len(s.processCodes))

	reports := make([]*domain.CleanReport, 0, len(s.projectCodes)+len(s.processCodes))

	for _, code := range s.projectCodes {
		if ctx.Err() != nil {
			s.logger.Warn("sweep cancelled before project code", "code", code)
			return reports
		}
		reports = append(reports, s.cleaner.CleanProjectsByCode(ctx, code))
	}

	for _, code := range s.processCodes {
		if ctx.Err() != nil {
			s.logger.Warn("sweep cancelled before process code", "code", code)
			return reports
		}
		reports = append(reports, s.cleaner.CleanProcessesByCode(ctx, code))
	}

	s.logSummary(reports)
	return reports
}

func (s *Sweeper) logSummary(reports []*domain.CleanReport) {
	var found, succeeded, failed, skipped int
	for _, r := range reports {
		found += r.Found
		succeeded += len(r.Succeeded)
		failed += len(r.Failures)
		skipped += r.Skipped

		if r.Outcome() == domain.OutcomeListFailed {
			s.logger.Warn("listing failed, nothing cleaned for code", "kind", r.Kind, "code", r.Code, "error", r.ListErr)
		}
	}

	s.logger.Info("sweep finished",
		"codes", len(reports),
		"found", found,
		"succeeded", succeeded,
		"failed", failed,
		"skipped", skipped,
	)
}

// Err combines the failures of every report.
func Err(reports []*domain.CleanReport) error {
	var errs error
	for _, r := range reports {
		errs = multierr.Append(errs, r.Err())
	}
	return errs
}
