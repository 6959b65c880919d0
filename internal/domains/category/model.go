package category

import (
	"time"
)

// Category groups products. Name is unique (case-insensitive).
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter narrows category listings.
type Filter struct {
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}
