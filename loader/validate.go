package loader

import (
	"fmt"
	"strings"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the shape of a level record before it is compiled.
func validate(raw *rawLevel) *ValidationError {
	ve := &ValidationError{}

	size := len(raw.Map)
	if size == 0 {
		ve.Errors = append(ve.Errors, "map is empty")
	}
	for y, row := range raw.Map {
		if len(row) != size {
			ve.Errors = append(ve.Errors,
				fmt.Sprintf("map row %d has %d tiles, want %d (the map must be square)", y, len(row), size))
		}
	}

	if raw.CardsOnHand < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("cards_on_hand is negative (%d)", raw.CardsOnHand))
	}
	if len(raw.Cards) == 0 {
		ve.Warnings = append(ve.Warnings, "level has no cards")
	}

	return ve
}
