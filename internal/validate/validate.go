package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length bounds for answer submissions.
const (
	MaxNameLen        = 40
	MaxPerspectiveLen = 5000
)

// FieldError reports which field failed validation; handlers surface the
// message verbatim with a 400 status.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Name checks the answer author's display name: required after trimming,
// at most 40 characters. Lengths are counted in runes so multi-byte input
// isn't penalized.
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "name", Message: "Name is required"}
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return &FieldError{Field: "name", Message: fmt.Sprintf("Name must be %d characters or less", MaxNameLen)}
	}
	return nil
}

// Perspective checks the answer text: required after trimming, at most 5000 characters.
func Perspective(perspective string) error {
	if strings.TrimSpace(perspective) == "" {
		return &FieldError{Field: "perspective", Message: "Answer is required"}
	}
	if utf8.RuneCountInString(perspective) > MaxPerspectiveLen {
		return &FieldError{Field: "perspective", Message: fmt.Sprintf("Answer must be %d characters or less", MaxPerspectiveLen)}
	}
	return nil
}
