package model

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrDuplicateSKU      = errors.New("sku already exists")
	ErrInvalidID         = errors.New("invalid product id")
	ErrEmptyFile         = errors.New("file contains no data rows")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTooManyRows       = errors.New("file exceeds the row limit")
	ErrImportJobNotFound = errors.New("import job not found")
)
