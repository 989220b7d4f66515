package mocks

import (
	"context"

	"github.com/pageza/pantrychef/backend/internal/llm"
	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock implementation of the generation gateway
type MockGenerator struct {
	mock.Mock
}

// GenerateText mocks the GenerateText method
func (m *MockGenerator) GenerateText(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
