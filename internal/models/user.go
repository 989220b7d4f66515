package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// DefaultRole is assigned to users created without explicit roles
const DefaultRole = "User"

// AdminRole grants access to every user's records
const AdminRole = "Admin"

// User is the account document. The kitchen is embedded and only ever
// persisted together with the user row.
type User struct {
	ID           uuid.UUID        `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Username     string           `gorm:"size:255;not null;uniqueIndex" json:"username"`
	PasswordHash string           `gorm:"not null" json:"-"`
	Roles        JSONBStringArray `gorm:"type:jsonb;not null" json:"roles"`
	Allergens    JSONBStringArray `gorm:"type:jsonb;not null" json:"allergens"`
	Active       bool             `gorm:"not null" json:"active"`
	Kitchen      Kitchen          `gorm:"type:jsonb;not null" json:"kitchen"`
}

// HasRole reports whether the user carries the given role tag
func (u *User) HasRole(role string) bool {
	return u.Roles.Contains(role)
}

// Ingredient is a kitchen entry. It has no table of its own.
type Ingredient struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Amount      string    `json:"amount,omitempty"`
	Measurement string    `json:"measurement,omitempty"`
}

// Kitchen is the ordered ingredient list embedded in a user
type Kitchen []Ingredient

// Value implements the driver.Valuer interface
func (k Kitchen) Value() (driver.Value, error) {
	if len(k) == 0 {
		return "[]", nil
	}
	return marshalColumn(k)
}

// Scan implements the sql.Scanner interface
func (k *Kitchen) Scan(value interface{}) error {
	*k = Kitchen{}
	return scanColumn(value, (*[]Ingredient)(k))
}

// IndexOf returns the position of the ingredient with the given id, or -1
func (k Kitchen) IndexOf(id uuid.UUID) int {
	for i := range k {
		if k[i].ID == id {
			return i
		}
	}
	return -1
}
