package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	SaveRecipe(ctx context.Context, in SaveRecipeInput) (*SaveResult, error)
	RemoveUser(ctx context.Context, recipeID, userID string) (*RemoveResult, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	ListSavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
}

// IKitchenService defines the interface for kitchen operations
type IKitchenService interface {
	ListIngredients(ctx context.Context, userID uuid.UUID) (models.Kitchen, error)
	AddIngredient(ctx context.Context, userID uuid.UUID, name, amount, measurement string) (*models.Ingredient, models.Kitchen, error)
	UpdateIngredient(ctx context.Context, userID, ingredientID uuid.UUID, patch IngredientPatch) (*models.Ingredient, models.Kitchen, error)
	RemoveIngredient(ctx context.Context, userID, ingredientID uuid.UUID) (models.Kitchen, error)
}

// IUserService defines the interface for account administration
type IUserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
}

// IGenerationService defines the interface for text generation features
type IGenerationService interface {
	GenerateRecipe(ctx context.Context, ingredients, allergies []string, servings string) (string, error)
	GenerateNamedRecipe(ctx context.Context, recipeName string, allergies []string, servings string) (string, error)
	SuggestSubstitute(ctx context.Context, ingredient string, allergies, alreadyUsed []string) (string, error)
	SuggestSubstitutes(ctx context.Context, ingredient string, allergies, alreadyUsed []string) (string, error)
	AdjustServings(ctx context.Context, recipe, servings string) (string, error)
}

var (
	_ IRecipeService     = (*RecipeService)(nil)
	_ IKitchenService    = (*KitchenService)(nil)
	_ IUserService       = (*UserService)(nil)
	_ IAuthService       = (*AuthService)(nil)
	_ IGenerationService = (*GenerationService)(nil)
)
