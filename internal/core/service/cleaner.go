package service

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/fusion-cleaner/internal/core/domain"
	"github.com/DanielPopoola/fusion-cleaner/internal/core/ports"
)

// Cleaner revokes in-progress fusion projects and aborts running workflow
// processes. Backend failures are logged and turned into failed results,
// never returned as errors.
type Cleaner struct {
	projects  ports.ProjectPort
	processes ports.ProcessPort
	logger    *slog.Logger
}

func NewCleaner(projects ports.ProjectPort, processes ports.ProcessPort, logger *slog.Logger) *Cleaner {
	return &Cleaner{
		projects:  projects,
		processes: processes,
		logger:    logger,
	}
}

type listFunc func(ctx context.Context, code string) domain.ListResult

type actFunc func(ctx context.Context, serialNumber string) domain.ActionResult

func (c *Cleaner) ListActiveProjects(ctx context.Context, projectCode string) domain.ListResult {
	serials, err := c.projects.ListActiveProjects(ctx, projectCode)
	return c.listed(domain.KindProject, projectCode, serials, err)
}

func (c *Cleaner) RevokeProject(ctx context.Context, serialNumber string) domain.ActionResult {
	err := c.projects.RevokeProject(ctx, serialNumber)
	return c.acted(domain.KindProject, serialNumber, err)
}

func (c *Cleaner) ListActiveProcesses(ctx context.Context, processCode string) domain.ListResult {
	serials, err := c.processes.ListActiveProcesses(ctx, processCode)
	return c.listed(domain.KindProcess, processCode, serials, err)
}

func (c *Cleaner) AbortProcess(ctx context.Context, serialNumber string) domain.ActionResult {
	err := c.processes.AbortProcess(ctx, serialNumber)
	return c.acted(domain.KindProcess, serialNumber, err)
}

func (c *Cleaner) CleanProjectsByCode(ctx context.Context, projectCode string) *domain.CleanReport {
	return c.clean(ctx, domain.KindProject, projectCode, c.ListActiveProjects, c.RevokeProject)
}

func (c *Cleaner) CleanProcessesByCode(ctx context.Context, processCode string) *domain.CleanReport {
	return c.clean(ctx, domain.KindProcess, processCode, c.ListActiveProcesses, c.AbortProcess)
}

// clean lists the active instances for code and acts on each one in list
// order. Empty serial numbers are skipped; a failed action does not stop the loop.
func (c *Cleaner) clean(ctx context.Context, kind domain.InstanceKind, code string, list listFunc, act actFunc) *domain.CleanReport {
	logger := c.logger.With("kind", kind, "code", code)
	report := domain.NewCleanReport(kind, code)

	logger.Info("starting cleanup")

	listing := list(ctx, code)
	report.ListErr = listing.Err
	report.Found = len(listing.SerialNumbers)

	logger.Info("active instances found", "count", report.Found)

	if report.Found == 0 {
		logger.Info("no active instances found")
		return report
	}

	for _, serialNumber := range listing.SerialNumbers {
		if ctx.Err() != nil {
			report.Interrupted = true
			logger.Warn("cleanup interrupted", "error", ctx.Err(), "processed", len(report.Succeeded)+len(report.Failures)+report.Skipped)
			break
		}

		if serialNumber == "" {
			report.Skipped++
			logger.Warn("instance has no serial number, skipping")
			continue
		}

		report.Record(act(ctx, serialNumber))
	}

	logger.Info("cleanup finished",
		"outcome", report.Outcome(),
		"succeeded", len(report.Succeeded),
		"failed", len(report.Failures),
		"skipped", report.Skipped,
	)

	return report
}

func (c *Cleaner) listed(kind domain.InstanceKind, code string, serials []string, err error) domain.ListResult {
	if err != nil {
		c.logger.Error("failed to list active instances", "kind", kind, "code", code, "error", err)
		return domain.ListResult{Kind: kind, Code: code, SerialNumbers: []string{}, Err: err}
	}
	return domain.ListResult{Kind: kind, Code: code, SerialNumbers: serials}
}

func (c *Cleaner) acted(kind domain.InstanceKind, serialNumber string, err error) domain.ActionResult {
	if err != nil {
		c.logger.Error("failed to cancel instance", "kind", kind, "serial_number", serialNumber, "error", err)
		return domain.ActionResult{Kind: kind, SerialNumber: serialNumber, Err: err}
	}
	c.logger.Info("instance cancelled", "kind", kind, "serial_number", serialNumber)
	return domain.ActionResult{Kind: kind, SerialNumber: serialNumber}
}
