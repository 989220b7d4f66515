package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost is the bcrypt cost used for stored passwords
const PasswordCost = 10

// CreateUserInput holds the fields of a new account
type CreateUserInput struct {
	Username  string
	Password  string
	Roles     []string
	Allergens []string
}

// UserPatch lists the user fields to change. Nil fields are left alone.
type UserPatch struct {
	Username  *string
	Roles     []string
	Active    *bool
	Allergens []string
}

// UserService handles account administration
type UserService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB, logger *zap.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger.Named("users"),
	}
}

// CreateUser registers a new account with a bcrypt hashed password
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, validationError("Username and password are required")
	}

	db := s.db.WithContext(ctx)
	taken, err := usernameTaken(db, username, uuid.Nil)
	if err != nil {
		return nil, persistenceError("Failed to create user", err)
	}
	if taken {
		return nil, conflictError("Username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, persistenceError("Failed to create user", err)
	}

	roles := cleanList(in.Roles)
	if len(roles) == 0 {
		roles = []string{models.DefaultRole}
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Roles:        models.JSONBStringArray(roles),
		Allergens:    models.JSONBStringArray(cleanList(in.Allergens)),
		Active:       true,
		Kitchen:      models.Kitchen{},
	}
	if err := db.Create(user).Error; err != nil {
		return nil, persistenceError("Failed to create user", err)
	}

	s.logger.Info("user created", zap.String("user_id", user.ID.String()), zap.String("username", username))
	return user, nil
}

// ListUsers returns every account, oldest first
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, persistenceError("Failed to load users", err)
	}
	if len(users) == 0 {
		return nil, notFoundError("No users found")
	}
	return users, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return loadUser(s.db.WithContext(ctx), id)
}

// UpdateUser applies a partial patch to an account
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error) {
	db := s.db.WithContext(ctx)
	user, err := loadUser(db, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		if username == "" {
			return nil, validationError("Username cannot be empty")
		}
		taken, err := usernameTaken(db, username, id)
		if err != nil {
			return nil, persistenceError("Failed to update user", err)
		}
		if taken {
			return nil, conflictError("Username already exists")
		}
		user.Username = username
	}
	if patch.Roles != nil {
		roles := cleanList(patch.Roles)
		if len(roles) == 0 {
			return nil, validationError("Roles cannot be empty")
		}
		user.Roles = models.JSONBStringArray(roles)
	}
	if patch.Active != nil {
		user.Active = *patch.Active
	}
	if patch.Allergens != nil {
		user.Allergens = models.JSONBStringArray(cleanList(patch.Allergens))
	}

	if err := db.Save(user).Error; err != nil {
		return nil, persistenceError("Failed to update user", err)
	}
	return user, nil
}

// DeleteUser removes an account and detaches it from every saved recipe.
// Recipes left without users are deleted along with it.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var (
		user     *models.User
		detached int
		removed  int
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = loadUser(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return persistenceError("Failed to delete user", err)
		}

		recipes, err := recipesSavedBy(tx, id)
		if err != nil {
			return persistenceError("Failed to delete user", err)
		}
		for i := range recipes {
			deleted, err := detach(tx, &recipes[i], id)
			if err != nil {
				return persistenceError("Failed to delete user", err)
			}
			detached++
			if deleted {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, err
		}
		return nil, persistenceError("Failed to delete user", err)
	}

	s.logger.Info("user deleted",
		zap.String("user_id", id.String()),
		zap.Int("recipes_detached", detached),
		zap.Int("recipes_deleted", removed),
	)
	return user, nil
}

func usernameTaken(db *gorm.DB, username string, except uuid.UUID) (bool, error) {
	var count int64
	q := db.Model(&models.User{}).Where("username = ?", username)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
