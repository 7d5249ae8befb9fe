package ports

import "context"

// ProjectPort defines the behavior of the fusion project service.
type ProjectPort interface {
	ListActiveProjects(ctx context.Context, projectCode string) ([]string, error)
	RevokeProject(ctx context.Context, serialNumber string) error
}

// ProcessPort defines the behavior of the workflow service.
type ProcessPort interface {
	ListActiveProcesses(ctx context.Context, processCode string) ([]string, error)
	AbortProcess(ctx context.Context, serialNumber string) error
}
