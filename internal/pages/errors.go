package pages

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryRequired = errors.New("pages: repository required")
	ErrPageRequired       = errors.New("pages: page required")
	ErrUserIDRequired     = errors.New("pages: user id required")
	ErrSlugInvalid        = errors.New("pages: slug contains invalid characters")
	ErrSlugExists         = errors.New("pages: slug already exists")
	ErrBlockIDRequired    = errors.New("pages: block id required")
	ErrDuplicateBlockID   = errors.New("pages: duplicate block id")
	ErrBlockNotFound      = errors.New("pages: block not found")
	ErrReorderIncomplete  = errors.New("pages: reorder must list every block exactly once")
	ErrLanguagesRequired  = errors.New("pages: at least one language required")
	ErrLanguageInvalid    = errors.New("pages: unsupported language")
	ErrPageInvalid        = errors.New("pages: page failed validation")
	ErrPublicURLDisabled  = errors.New("pages: public url resolver not configured")
)

// PageNotFoundError is returned when a page lookup misses.
type PageNotFoundError struct {
	Key string
}

func (e *PageNotFoundError) Error() string {
	if e.Key == "" {
		return "page not found"
	}
	return fmt.Sprintf("page %q not found", e.Key)
}

// IsNotFound reports whether err is a page miss.
func IsNotFound(err error) bool {
	var target *PageNotFoundError
	return errors.As(err, &target)
}

// PageValidationError carries the page-level validation messages of a
// rejected save.
type PageValidationError struct {
	Errors []string
}

func (e *PageValidationError) Error() string {
	return fmt.Sprintf("pages: page failed validation: %v", e.Errors)
}

func (e *PageValidationError) Unwrap() error {
	return ErrPageInvalid
}
