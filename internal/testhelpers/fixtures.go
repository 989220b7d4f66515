package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain text password of users created by CreateTestUser
const TestPassword = "testpassword123"

// CreateTestUser inserts an active user with TestPassword and the given roles
func CreateTestUser(t *testing.T, db *gorm.DB, username string, roles ...string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if len(roles) == 0 {
		roles = []string{models.DefaultRole}
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Roles:        models.JSONBStringArray(roles),
		Allergens:    models.JSONBStringArray{},
		Active:       true,
		Kitchen:      models.Kitchen{},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
