package mocks

import (
	"github.com/stretchr/testify/mock"

	"finsight/internal/service"
)

// MockPeriodService is a mock implementation of service.PeriodService.
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) Resolve(value any) service.PeriodResolution {
	args := m.Called(value)
	return args.Get(0).(service.PeriodResolution)
}
