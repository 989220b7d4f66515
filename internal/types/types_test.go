package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServingsUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", `4`, "4"},
		{"float", `2.5`, "2.5"},
		{"string", `"6"`, "6"},
		{"padded string", `"  8 "`, "8"},
		{"null", `null`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s Servings
			require.NoError(t, json.Unmarshal([]byte(tc.input), &s))
			assert.Equal(t, tc.want, s.Value)
			assert.Equal(t, tc.want != "", s.IsSet())
		})
	}

	var s Servings
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
}

func TestServingsInRequestBody(t *testing.T) {
	var req UpdateServingsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"recipe":"Soup","servings":3}`), &req))
	assert.Equal(t, "Soup", req.Recipe)
	assert.Equal(t, "3", req.Servings.Value)

	var missing GenerateRecipeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"ingredients":["egg"]}`), &missing))
	assert.False(t, missing.Servings.IsSet())
}

func TestTokenClaimsHasRole(t *testing.T) {
	c := &TokenClaims{Roles: []string{"User", "Admin"}}
	assert.True(t, c.HasRole("Admin"))
	assert.False(t, c.HasRole("Editor"))
}
