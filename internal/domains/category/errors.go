package category

import (
	"errors"
)

// Sentinel errors for the category domain. Handlers map these to HTTP status
// codes with errors.Is.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateName    = errors.New("category name already exists")
	ErrCategoryInUse    = errors.New("category has referencing products")
	ErrInvalidID        = errors.New("invalid category id")
)
