package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds ingredient identifiers in catalogs and on the command line.
const maxIDLength = 64

// ingredientIDRegex matches lowercase slug identifiers such as "pepperoni" or "red-onion".
var ingredientIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateIngredientID validates an ingredient identifier.
//
// The validation rules:
//   - No empty identifiers
//   - No control characters or whitespace
//   - Lowercase ASCII slug (letters, digits, dash, underscore), starting with a letter
//   - Maximum length of 64 characters
//
// Whether the identifier exists in a catalog is a separate, recoverable question.
func ValidateIngredientID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIngredient, "ingredient id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidIngredient, "ingredient id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidIngredient, "ingredient id contains invalid characters: %q", id)
		}
	}

	if !ingredientIDRegex.MatchString(id) {
		return New(ErrCodeInvalidIngredient, "invalid ingredient id: %q (lowercase letters, digits, '-' and '_')", id)
	}

	return nil
}

// ValidateSelectedID validates an identifier picked by a user rather than
// declared in a catalog. Only empty identifiers and control characters are
// rejected; anything else may simply be unknown, which is recoverable.
func ValidateSelectedID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIngredient, "ingredient id cannot be empty")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidIngredient, "ingredient id contains control characters: %q", id)
		}
	}
	return nil
}

// ValidateOutputPath validates a base output path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains a null byte")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains control characters")
		}
	}

	return nil
}
