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

// SaveOutcome reports what SaveRecipe did
type SaveOutcome string

const (
	SaveCreated      SaveOutcome = "created"
	SaveAttached     SaveOutcome = "attached"
	SaveAlreadySaved SaveOutcome = "already_saved"
)

// SaveRecipeInput is a candidate recipe together with the saving user
type SaveRecipeInput struct {
	Name         string
	Ingredients  []string
	Instructions string
	UserID       string
}

// SaveResult is returned by SaveRecipe
type SaveResult struct {
	Outcome SaveOutcome
	Recipe  *models.Recipe
}

// Created reports whether a new recipe was inserted
func (r *SaveResult) Created() bool {
	return r.Outcome == SaveCreated
}

// RemoveResult is returned by RemoveUser
type RemoveResult struct {
	Deleted bool
	Recipe  *models.Recipe
}

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		db:     db,
		logger: logger.Named("recipes"),
	}
}

// SaveRecipe stores a recipe for a user. If a recipe with the same trimmed
// name and the same ingredient set already exists, the user is attached to it
// instead of creating a duplicate.
//
// Finding the match and writing are two separate statements, so two
// concurrent saves of the same new recipe may both insert.
func (s *RecipeService) SaveRecipe(ctx context.Context, in SaveRecipeInput) (*SaveResult, error) {
	name := strings.TrimSpace(in.Name)
	ingredients := trimAll(in.Ingredients)
	if name == "" || len(in.Ingredients) == 0 || strings.TrimSpace(in.Instructions) == "" || strings.TrimSpace(in.UserID) == "" {
		return nil, validationError("Name, ingredients, instructions, and userId are required.")
	}
	for _, ing := range ingredients {
		if ing == "" {
			return nil, validationError("Ingredients must not be blank.")
		}
	}
	userID, err := uuid.Parse(strings.TrimSpace(in.UserID))
	if err != nil {
		return nil, validationError("Invalid user ID format.")
	}

	db := s.db.WithContext(ctx)
	match, err := findMatch(db, name, ingredients)
	if err != nil {
		return nil, persistenceError("Failed to save recipe.", err)
	}

	if match != nil {
		if match.SavedBy.Contains(userID) {
			return &SaveResult{Outcome: SaveAlreadySaved, Recipe: match}, nil
		}

		match.SavedBy = append(match.SavedBy, userID)
		if err := db.Model(match).Update("saved_by", match.SavedBy).Error; err != nil {
			return nil, persistenceError("Failed to save recipe.", err)
		}
		s.logger.Info("user attached to existing recipe",
			zap.String("recipe_id", match.ID.String()),
			zap.String("user_id", userID.String()),
			zap.Int("saved_by", len(match.SavedBy)),
		)
		return &SaveResult{Outcome: SaveAttached, Recipe: match}, nil
	}

	recipe := &models.Recipe{
		ID:           uuid.New(),
		Name:         name,
		DedupKey:     models.DedupKey(name, ingredients),
		Ingredients:  models.JSONBStringArray(ingredients),
		Instructions: in.Instructions,
		SavedBy:      models.UUIDList{userID},
	}
	if err := db.Create(recipe).Error; err != nil {
		return nil, persistenceError("Failed to save recipe.", err)
	}
	s.logger.Info("recipe created",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return &SaveResult{Outcome: SaveCreated, Recipe: recipe}, nil
}

// RemoveUser detaches a user from a recipe and deletes the recipe once no
// user references it.
func (s *RecipeService) RemoveUser(ctx context.Context, recipeID, userID string) (*RemoveResult, error) {
	rid, err := uuid.Parse(strings.TrimSpace(recipeID))
	if err != nil {
		return nil, validationError("Invalid recipe ID format.")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, validationError("User ID is required.")
	}
	uid, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil {
		return nil, validationError("Invalid user ID format.")
	}

	db := s.db.WithContext(ctx)
	recipe, err := loadRecipe(db, rid)
	if err != nil {
		return nil, err
	}
	if !recipe.SavedBy.Contains(uid) {
		return nil, invalidStateError("User not associated with this recipe.")
	}

	deleted, err := detach(db, recipe, uid)
	if err != nil {
		return nil, persistenceError("Failed to remove user from recipe.", err)
	}
	s.logger.Info("user removed from recipe",
		zap.String("recipe_id", rid.String()),
		zap.String("user_id", uid.String()),
		zap.Bool("recipe_deleted", deleted),
	)
	if deleted {
		return &RemoveResult{Deleted: true}, nil
	}
	return &RemoveResult{Recipe: recipe}, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	rid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, validationError("Invalid recipe ID format.")
	}
	return loadRecipe(s.db.WithContext(ctx), rid)
}

// ListSavedRecipes returns every recipe the user has saved, oldest first
func (s *RecipeService) ListSavedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, persistenceError("Failed to load recipes.", err)
	}
	if count == 0 {
		return nil, notFoundError("User not found.")
	}

	recipes, err := recipesSavedBy(db, userID)
	if err != nil {
		return nil, persistenceError("Failed to load recipes.", err)
	}
	return recipes, nil
}

func findMatch(db *gorm.DB, name string, ingredients []string) (*models.Recipe, error) {
	var candidates []models.Recipe
	err := db.Where("dedup_key = ?", models.DedupKey(name, ingredients)).
		Order("created_at ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].Matches(name, ingredients) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

func loadRecipe(db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Recipe not found.")
		}
		return nil, persistenceError("Failed to fetch the recipe.", err)
	}
	return &recipe, nil
}

// detach removes uid from the recipe's savedBy and deletes the recipe when the
// list becomes empty. It reports whether the recipe was deleted.
func detach(db *gorm.DB, recipe *models.Recipe, uid uuid.UUID) (bool, error) {
	recipe.SavedBy = recipe.SavedBy.Without(uid)
	if len(recipe.SavedBy) == 0 {
		if err := db.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err := db.Model(recipe).Update("saved_by", recipe.SavedBy).Error; err != nil {
		return false, err
	}
	return false, nil
}

// recipesSavedBy narrows candidates with a text match on the JSON column and
// then checks membership on the decoded list.
func recipesSavedBy(db *gorm.DB, uid uuid.UUID) ([]models.Recipe, error) {
	column := "saved_by"
	if db.Dialector.Name() == "postgres" {
		column = "saved_by::text"
	}

	var candidates []models.Recipe
	err := db.Where(column+" LIKE ?", "%"+uid.String()+"%").
		Order("created_at ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(candidates))
	for _, r := range candidates {
		if r.SavedBy.Contains(uid) {
			recipes = append(recipes, r)
		}
	}
	return recipes, nil
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
