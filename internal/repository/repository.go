package repository

import "errors"

// Sentinel errors returned by the repositories. Handlers dispatch on these
// with errors.Is; raw gorm errors never cross the package boundary.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock indicates a stock decrease larger than the
	// current stock quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
)
