package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DanielPopoola/fusion-cleaner/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type fakeCleaner struct {
	calls   []string
	reports map[string]*domain.CleanReport
	onCall  func()
}

func (f *fakeCleaner) report(kind domain.InstanceKind, code string) *domain.CleanReport {
	f.calls = append(f.calls, string(kind)+":"+code)
	if f.onCall != nil {
		f.onCall()
	}
	if r, ok := f.reports[code]; ok {
		return r
	}
	return domain.NewCleanReport(kind, code)
}

func (f *fakeCleaner) CleanProjectsByCode(ctx context.Context, projectCode string) *domain.CleanReport {
	return f.report(domain.KindProject, projectCode)
}

func (f *fakeCleaner) CleanProcessesByCode(ctx context.Context, processCode string) *domain.CleanReport {
	return f.report(domain.KindProcess, processCode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweeper_RunOnce_OrderAndReports(t *testing.T) {
	cleaner := &fakeCleaner{}
	sweeper := NewSweeper(cleaner, []string{"PU_1", "PU_2"}, []string{"PC_1"}, discardLogger())

	reports := sweeper.RunOnce(context.Background())

	assert.Equal(t, []string{"project:PU_1", "project:PU_2", "process:PC_1"}, cleaner.calls)
	require.Len(t, reports, 3)
	assert.Equal(t, "PC_1", reports[2].Code)
	assert.NoError(t, Err(reports))
}

func TestSweeper_RunOnce_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleaner := &fakeCleaner{onCall: cancel}
	sweeper := NewSweeper(cleaner, []string{"PU_1", "PU_2"}, []string{"PC_1"}, discardLogger())

	reports := sweeper.RunOnce(ctx)

	assert.Equal(t, []string{"project:PU_1"}, cleaner.calls)
	assert.Len(t, reports, 1)
}

func TestErr_CombinesFailures(t *testing.T) {
	listFailed := domain.NewCleanReport(domain.KindProject, "PU_1")
	listFailed.ListErr = errors.New("status 401")

	partial := domain.NewCleanReport(domain.KindProcess, "PC_1")
	partial.Found = 2
	partial.Record(domain.ActionResult{Kind: domain.KindProcess, SerialNumber: "W-1"})
	partial.Record(domain.ActionResult{Kind: domain.KindProcess, SerialNumber: "W-2", Err: errors.New("status 500")})

	cleaner := &fakeCleaner{reports: map[string]*domain.CleanReport{"PU_1": listFailed, "PC_1": partial}}
	reports := NewSweeper(cleaner, []string{"PU_1"}, []string{"PC_1"}, discardLogger()).RunOnce(context.Background())

	err := Err(reports)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "list project PU_1")
	assert.Contains(t, err.Error(), "process W-2")
}
