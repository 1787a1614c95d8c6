// Package domain defines domain-level errors for the codes feature.
package domain

import "errors"

// Domain errors for code snapshot operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrNoSnapshot indicates that no listing snapshot has ever been persisted.
	// This is returned by read operations when the store is absent or empty.
	ErrNoSnapshot = errors.New("no code snapshot available")

	// ErrUnknownCategory indicates a category filter outside TWSE, OTC and FUTURE.
	ErrUnknownCategory = errors.New("unknown listing category")
)
