package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGenerationService is a mock implementation of the generation service
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateRecipe(ctx context.Context, ingredients, allergies []string, servings string) (string, error) {
	args := m.Called(ctx, ingredients, allergies, servings)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) GenerateNamedRecipe(ctx context.Context, recipeName string, allergies []string, servings string) (string, error) {
	args := m.Called(ctx, recipeName, allergies, servings)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) SuggestSubstitute(ctx context.Context, ingredient string, allergies, alreadyUsed []string) (string, error) {
	args := m.Called(ctx, ingredient, allergies, alreadyUsed)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) SuggestSubstitutes(ctx context.Context, ingredient string, allergies, alreadyUsed []string) (string, error) {
	args := m.Called(ctx, ingredient, allergies, alreadyUsed)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) AdjustServings(ctx context.Context, recipe, servings string) (string, error) {
	args := m.Called(ctx, recipe, servings)
	return args.String(0), args.Error(1)
}
