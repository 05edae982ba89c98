package todo

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidDescription is returned for descriptions with characters
	// outside the allowed set.
	ErrInvalidDescription = errors.New("description contains invalid characters")
	// ErrEmptyDescription is returned for blank descriptions.
	ErrEmptyDescription = errors.New("description is empty")
	// ErrDelimiter is returned when a description would break the line format.
	ErrDelimiter = errors.New("description contains the field delimiter or a line break")
	// ErrOutOfRange is returned for task numbers outside 1..n.
	ErrOutOfRange = errors.New("task number out of range")
	// ErrLineTooLong is reported for task file lines longer than 1 MiB.
	ErrLineTooLong = errors.New("line too long")
)

// Letters, digits, space, tab and , . ' ! ? & $ -
var descriptionRegex = regexp.MustCompile(`^[A-Za-z0-9 \t,.'!?&$-]*$`)

// ValidateDescription checks a new task description against the allowed
// character set.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if !descriptionRegex.MatchString(description) {
		return ErrInvalidDescription
	}
	return nil
}
