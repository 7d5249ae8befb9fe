package domain

import (
	"fmt"

	"go.uber.org/multierr"
)

type Outcome string

const (
	OutcomeNothingFound        Outcome = "nothing_found"
	OutcomeListFailed          Outcome = "list_failed"
	OutcomeCompleted           Outcome = "completed"
	OutcomeCompletedWithErrors Outcome = "completed_with_errors"
	OutcomeInterrupted         Outcome = "interrupted"
)

// CleanReport summarises one list-then-act pass for a single code.
type CleanReport struct {
	Kind        InstanceKind
	Code        string
	Found       int
	Skipped     int
	Succeeded   []string
	Failures    []ActionResult
	ListErr     error
	Interrupted bool
}

func NewCleanReport(kind InstanceKind, code string) *CleanReport {
	return &CleanReport{Kind: kind, Code: code}
}

func (r *CleanReport) Record(res ActionResult) {
	if res.OK() {
		r.Succeeded = append(r.Succeeded, res.SerialNumber)
		return
	}
	r.Failures = append(r.Failures, res)
}

func (r *CleanReport) Outcome() Outcome {
	switch {
	case r.ListErr != nil:
		return OutcomeListFailed
	case r.Interrupted:
		return OutcomeInterrupted
	case r.Found == 0:
		return OutcomeNothingFound
	case len(r.Failures) > 0:
		return OutcomeCompletedWithErrors
	default:
		return OutcomeCompleted
	}
}

// Err combines the listing error and every failed action, nil when the pass was clean.
func (r *CleanReport) Err() error {
	var errs error
	if r.ListErr != nil {
		errs = multierr.Append(errs, fmt.Errorf("list %s %s: %w", r.Kind, r.Code, r.ListErr))
	}
	for _, f := range r.Failures {
		errs = multierr.Append(errs, fmt.Errorf("%s %s: %w", f.Kind, f.SerialNumber, f.Err))
	}
	return errs
}
