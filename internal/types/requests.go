package types

// SaveRecipeRequest is the body of POST /recipes/save
type SaveRecipeRequest struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	UserID       string   `json:"userId"`
}

// RemoveUserRequest is the body of the remove-user endpoints
type RemoveUserRequest struct {
	UserID string `json:"userId"`
}

// AddIngredientRequest is the body of POST /users/:id/kitchen
type AddIngredientRequest struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Measurement string `json:"measurement"`
}

// UpdateIngredientRequest carries a partial ingredient patch. Nil fields are
// left untouched.
type UpdateIngredientRequest struct {
	Name        *string `json:"name"`
	Amount      *string `json:"amount"`
	Measurement *string `json:"measurement"`
}

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles"`
	Allergens []string `json:"allergens"`
}

// UpdateUserRequest carries a partial user patch
type UpdateUserRequest struct {
	Username  *string  `json:"username"`
	Roles     []string `json:"roles"`
	Active    *bool    `json:"active"`
	Allergens []string `json:"allergens"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GenerateRecipeRequest is the body of POST /recipes/generate
type GenerateRecipeRequest struct {
	Ingredients []string `json:"ingredients"`
	Allergies   []string `json:"allergies"`
	Servings    Servings `json:"servings"`
}

// GenerateNamedRecipeRequest is the body of POST /new-recipes/generate
type GenerateNamedRecipeRequest struct {
	RecipeName string   `json:"recipeName"`
	Allergies  []string `json:"allergies"`
	Servings   Servings `json:"servings"`
}

// SubstituteRequest is the body of the substitute endpoints
type SubstituteRequest struct {
	Ingredient  string   `json:"ingredient"`
	Allergies   []string `json:"allergies"`
	AlreadyUsed []string `json:"alreadyUsed"`
}

// UpdateServingsRequest is the body of POST /recipes/updateServings
type UpdateServingsRequest struct {
	Recipe   string   `json:"recipe"`
	Servings Servings `json:"servings"`
}
