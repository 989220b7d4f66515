package models

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Recipe is a saved recipe shared by every user listed in SavedBy.
// A recipe whose SavedBy becomes empty is deleted by the service layer.
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Name         string           `gorm:"not null" json:"name"`
	DedupKey     string           `gorm:"size:64;not null;index" json:"-"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions string           `gorm:"type:text;not null" json:"instructions"`
	SavedBy      UUIDList         `gorm:"type:jsonb;not null" json:"saved_by"`
}

// DedupKey derives the lookup key for a (name, ingredient set) pair. Inputs
// must already be trimmed. Ingredient order and repetition do not affect the key.
func DedupKey(name string, ingredients []string) string {
	set := IngredientSet(ingredients)
	distinct := make([]string, 0, len(set))
	for ing := range set {
		distinct = append(distinct, ing)
	}
	sort.Strings(distinct)

	h := sha256.New()
	h.Write([]byte(name))
	for _, ing := range distinct {
		h.Write([]byte{0})
		h.Write([]byte(ing))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// IngredientSet returns the distinct ingredient strings
func IngredientSet(ingredients []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ingredients))
	for _, ing := range ingredients {
		set[ing] = struct{}{}
	}
	return set
}

// Matches reports whether the recipe has the given name and an ingredient list
// of the same length holding the same set of strings. Duplicate counts are
// not compared.
func (r *Recipe) Matches(name string, ingredients []string) bool {
	if r.Name != name || len(r.Ingredients) != len(ingredients) {
		return false
	}
	stored := IngredientSet(r.Ingredients)
	wanted := IngredientSet(ingredients)
	if len(stored) != len(wanted) {
		return false
	}
	for ing := range wanted {
		if _, ok := stored[ing]; !ok {
			return false
		}
	}
	return true
}
