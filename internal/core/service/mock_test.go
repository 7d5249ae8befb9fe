package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockProjectPort struct {
	mock.Mock
}

func (m *MockProjectPort) ListActiveProjects(ctx context.Context, projectCode string) ([]string, error) {
	args := m.Called(ctx, projectCode)
	serials, _ := args.Get(0).([]string)
	return serials, args.Error(1)
}

func (m *MockProjectPort) RevokeProject(ctx context.Context, serialNumber string) error {
	return m.Called(ctx, serialNumber).Error(0)
}

type MockProcessPort struct {
	mock.Mock
}

func (m *MockProcessPort) ListActiveProcesses(ctx context.Context, processCode string) ([]string, error) {
	args := m.Called(ctx, processCode)
	serials, _ := args.Get(0).([]string)
	return serials, args.Error(1)
}

func (m *MockProcessPort) AbortProcess(ctx context.Context, serialNumber string) error {
	return m.Called(ctx, serialNumber).Error(0)
}
