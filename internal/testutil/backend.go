package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/service"
)

// MockBackend is a testify mock of service.AdminBackend.
type MockBackend struct {
	mock.Mock
}

// NewMockBackend creates a mock whose expectations are asserted at cleanup.
func NewMockBackend(t *testing.T) *MockBackend {
	t.Helper()
	m := &MockBackend{}
	m.Test(t)
	t.Cleanup(func() {
		m.AssertExpectations(t)
	})
	return m
}

// UploadCostMaster implements service.AdminBackend.
func (m *MockBackend) UploadCostMaster(ctx context.Context, file model.SelectedFile) (int, error) {
	args := m.Called(ctx, file)
	return args.Int(0), args.Error(1)
}

// UploadTransactions implements service.AdminBackend.
func (m *MockBackend) UploadTransactions(ctx context.Context, file model.SelectedFile) (service.TransactionCounts, error) {
	args := m.Called(ctx, file)
	if counts, ok := args.Get(0).(service.TransactionCounts); ok {
		return counts, args.Error(1)
	}
	return service.TransactionCounts{}, args.Error(1)
}

// Template implements service.AdminBackend.
func (m *MockBackend) Template(ctx context.Context, templateType string) ([]byte, error) {
	args := m.Called(ctx, templateType)
	return bytesArg(args), args.Error(1)
}

// TransactionTemplate implements service.AdminBackend.
func (m *MockBackend) TransactionTemplate(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	return bytesArg(args), args.Error(1)
}

// Stats implements service.AdminBackend.
func (m *MockBackend) Stats(ctx context.Context) (model.Stats, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(model.Stats); ok {
		return stats, args.Error(1)
	}
	return model.Stats{}, args.Error(1)
}

// Data implements service.AdminBackend.
func (m *MockBackend) Data(ctx context.Context) (model.Snapshot, error) {
	args := m.Called(ctx)
	if snapshot, ok := args.Get(0).(model.Snapshot); ok {
		return snapshot, args.Error(1)
	}
	return model.Snapshot{}, args.Error(1)
}

// Export implements service.AdminBackend.
func (m *MockBackend) Export(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	return bytesArg(args), args.Error(1)
}

// Clear implements service.AdminBackend.
func (m *MockBackend) Clear(ctx context.Context, req model.ClearRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func bytesArg(args mock.Arguments) []byte {
	if data, ok := args.Get(0).([]byte); ok {
		return data
	}
	return nil
}

var _ service.AdminBackend = (*MockBackend)(nil)
