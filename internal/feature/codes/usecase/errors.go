// Package usecase implements the business logic for the codes feature.
package usecase

import "errors"

var (
	// ErrNoSinkEnabled is returned when DownloadCodes is invoked with every
	// persistence sink disabled.
	ErrNoSinkEnabled = errors.New("no persistence sink enabled")
)
