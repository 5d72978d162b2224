package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"finsight/internal/classifier"
	"finsight/internal/domain"
	"finsight/internal/service"
)

// MockIngestService is a mock implementation of service.IngestService.
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) Identify(ctx context.Context, input service.IdentifyInput) (*classifier.Result, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*classifier.Result), args.Error(1)
}

func (m *MockIngestService) Ingest(ctx context.Context, input service.IngestInput) (*domain.ImportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}
