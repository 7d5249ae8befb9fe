package backend

import (
	"context"

	"github.com/DanielPopoola/fusion-cleaner/internal/config"
	"github.com/DanielPopoola/fusion-cleaner/internal/core/domain"
	"github.com/DanielPopoola/fusion-cleaner/internal/core/ports"
)

const (
	processListPath  = "/restful/standard/workflow/mgr/v1/api/process/inst/list"
	abortProcessPath = "/restful/standard/workflow/api/process/abort"
)

// ProcessClient talks to the workflow service. The search endpoint is
// authorised with the task engine token, abort with the workflow token.
type ProcessClient struct {
	client    *client
	cfg       config.WorkflowConfig
	instances *lister[processListRequest, processPage, processRecord]
	abort     endpoint
}

var _ ports.ProcessPort = (*ProcessClient)(nil)

func NewProcessClient(cfg config.WorkflowConfig, listToken string) *ProcessClient {
	p := &ProcessClient{
		client: newClient(cfg.BaseURL, cfg.Timeout),
		cfg:    cfg,
		abort:  endpoint{path: abortProcessPath, token: cfg.Token},
	}

	p.instances = &lister[processListRequest, processPage, processRecord]{
		endpoint: endpoint{path: processListPath, token: listToken},
		build:    p.processListRequest,
		entries:  func(page processPage) []processRecord { return page.Records },
		keep:     inProgress,
		serial: func(record processRecord) (string, bool) {
			return record.SerialNumber, record.SerialNumber != ""
		},
	}

	return p
}

func inProgress(record processRecord) bool {
	return record.CompleteState != nil && *record.CompleteState == domain.CompleteStateInProgress
}

func (p *ProcessClient) processListRequest(processCode string) processListRequest {
	return processListRequest{
		ProcessID: processCode,
		PageNum:   firstPage,
		PageSize:  p.cfg.PageSize,
	}
}

// ListActiveProcesses returns the serial numbers of the not yet completed
// instances of processCode.
func (p *ProcessClient) ListActiveProcesses(ctx context.Context, processCode string) ([]string, error) {
	return p.instances.list(ctx, p.client, processCode)
}

func (p *ProcessClient) AbortProcess(ctx context.Context, serialNumber string) error {
	req := abortProcessRequest{
		Comment:      p.cfg.Comment,
		PerformerID:  p.cfg.PerformerID,
		SerialNumber: serialNumber,
	}
	return p.client.post(ctx, p.abort, req, nil)
}
