package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IngredientPatch lists the ingredient fields to change. Nil fields keep
// their current value.
type IngredientPatch struct {
	Name        *string
	Amount      *string
	Measurement *string
}

// KitchenService manages the ingredient list embedded in a user
type KitchenService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewKitchenService creates a new KitchenService instance
func NewKitchenService(db *gorm.DB, logger *zap.Logger) *KitchenService {
	return &KitchenService{
		db:     db,
		logger: logger.Named("kitchen"),
	}
}

// ListIngredients returns the user's kitchen in insertion order
func (s *KitchenService) ListIngredients(ctx context.Context, userID uuid.UUID) (models.Kitchen, error) {
	user, err := loadUser(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return user.Kitchen, nil
}

// AddIngredient appends a new ingredient to the user's kitchen
func (s *KitchenService) AddIngredient(ctx context.Context, userID uuid.UUID, name, amount, measurement string) (*models.Ingredient, models.Kitchen, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, validationError("Ingredient name is required")
	}

	db := s.db.WithContext(ctx)
	user, err := loadUser(db, userID)
	if err != nil {
		return nil, nil, err
	}

	ingredient := models.Ingredient{
		ID:          uuid.New(),
		Name:        name,
		Amount:      strings.TrimSpace(amount),
		Measurement: strings.TrimSpace(measurement),
	}
	user.Kitchen = append(user.Kitchen, ingredient)
	if err := db.Save(user).Error; err != nil {
		return nil, nil, persistenceError("Failed to add ingredient", err)
	}

	s.logger.Debug("ingredient added",
		zap.String("user_id", userID.String()),
		zap.String("ingredient_id", ingredient.ID.String()),
	)
	return &ingredient, user.Kitchen, nil
}

// UpdateIngredient applies a partial patch to one kitchen entry
func (s *KitchenService) UpdateIngredient(ctx context.Context, userID, ingredientID uuid.UUID, patch IngredientPatch) (*models.Ingredient, models.Kitchen, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, nil, validationError("Ingredient name cannot be empty")
	}

	db := s.db.WithContext(ctx)
	user, err := loadUser(db, userID)
	if err != nil {
		return nil, nil, err
	}

	i := user.Kitchen.IndexOf(ingredientID)
	if i < 0 {
		return nil, nil, notFoundError("Ingredient not found")
	}

	ing := &user.Kitchen[i]
	if patch.Name != nil {
		ing.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Amount != nil {
		ing.Amount = strings.TrimSpace(*patch.Amount)
	}
	if patch.Measurement != nil {
		ing.Measurement = strings.TrimSpace(*patch.Measurement)
	}

	if err := db.Save(user).Error; err != nil {
		return nil, nil, persistenceError("Failed to update ingredient", err)
	}
	updated := *ing
	return &updated, user.Kitchen, nil
}

// RemoveIngredient deletes one kitchen entry, keeping the order of the rest
func (s *KitchenService) RemoveIngredient(ctx context.Context, userID, ingredientID uuid.UUID) (models.Kitchen, error) {
	db := s.db.WithContext(ctx)
	user, err := loadUser(db, userID)
	if err != nil {
		return nil, err
	}

	i := user.Kitchen.IndexOf(ingredientID)
	if i < 0 {
		return nil, notFoundError("Ingredient not found")
	}

	kitchen := make(models.Kitchen, 0, len(user.Kitchen)-1)
	kitchen = append(kitchen, user.Kitchen[:i]...)
	kitchen = append(kitchen, user.Kitchen[i+1:]...)
	user.Kitchen = kitchen

	if err := db.Save(user).Error; err != nil {
		return nil, persistenceError("Failed to remove ingredient", err)
	}

	s.logger.Debug("ingredient removed",
		zap.String("user_id", userID.String()),
		zap.String("ingredient_id", ingredientID.String()),
	)
	return user.Kitchen, nil
}

func loadUser(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, persistenceError("Failed to load user", err)
	}
	return &user, nil
}
