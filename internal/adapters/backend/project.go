package backend

import (
	"context"

	"github.com/DanielPopoola/fusion-cleaner/internal/config"
	"github.com/DanielPopoola/fusion-cleaner/internal/core/ports"
)

const (
	traceListPath    = "/restful/standard/taskengine-mgr/v1/projects/get-trace-list"
	abortProjectPath = "/restful/standard/taskengine-mgr/v1/projects/abort-project"

	firstPage     = 1
	traceStateAny = -1
	traceTypeAll  = "All"
)

// ProjectClient talks to the fusion project service (task engine).
type ProjectClient struct {
	client *client
	cfg    config.TaskEngineConfig
	traces *lister[traceListRequest, []traceEntry, traceEntry]
	abort  endpoint
}

var _ ports.ProjectPort = (*ProjectClient)(nil)

func NewProjectClient(cfg config.TaskEngineConfig) *ProjectClient {
	p := &ProjectClient{
		client: newClient(cfg.BaseURL, cfg.Timeout),
		cfg:    cfg,
		abort:  endpoint{path: abortProjectPath, token: cfg.Token},
	}

	p.traces = &lister[traceListRequest, []traceEntry, traceEntry]{
		endpoint: endpoint{path: traceListPath, token: cfg.Token},
		build:    p.traceListRequest,
		entries:  func(page []traceEntry) []traceEntry { return page },
		serial: func(entry traceEntry) (string, bool) {
			if entry.SerialNumber == nil {
				return "", false
			}
			return *entry.SerialNumber, true
		},
	}

	return p
}

func (p *ProjectClient) traceListRequest(projectCode string) traceListRequest {
	return traceListRequest{
		Locale:        p.cfg.Locale,
		PageIndex:     firstPage,
		PageSize:      p.cfg.PageSize,
		StartTimeFrom: p.cfg.TraceFrom,
		StartTimeTo:   p.cfg.TraceTo,
		ProjectCode:   projectCode,
		State:         traceStateAny,
		Type:          traceTypeAll,
	}
}

// ListActiveProjects returns the serial numbers of the project instances
// traced under projectCode, in response order. Entries without a serialNumber
// field are dropped; empty serial numbers are kept for the caller to judge.
func (p *ProjectClient) ListActiveProjects(ctx context.Context, projectCode string) ([]string, error) {
	return p.traces.list(ctx, p.client, projectCode)
}

func (p *ProjectClient) RevokeProject(ctx context.Context, serialNumber string) error {
	req := abortProjectRequest{
		SerialNumber:   serialNumber,
		PersonInCharge: p.cfg.PersonInCharge,
		Locale:         p.cfg.Locale,
		Comment:        p.cfg.Comment,
	}
	return p.client.post(ctx, p.abort, req, nil)
}
