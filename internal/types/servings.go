package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Servings can handle both string and number values for servings
type Servings struct {
	Value string
}

// UnmarshalJSON accepts 4, 4.0, "4" and null
func (s *Servings) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		s.Value = ""
		return nil
	}

	// Try to unmarshal as number first
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		s.Value = strconv.FormatFloat(num, 'f', -1, 64)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Value = strings.TrimSpace(str)
		return nil
	}

	return fmt.Errorf("invalid servings format")
}

// MarshalJSON writes the value back as a string
func (s Servings) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

// IsSet reports whether a servings value was provided
func (s Servings) IsSet() bool {
	return s.Value != ""
}
