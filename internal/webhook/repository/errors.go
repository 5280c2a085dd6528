package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert record")
	ErrFailedToGet    = errors.New("failed to get record")
	ErrFailedToList   = errors.New("failed to list records")
	ErrFailedToUpdate = errors.New("failed to update record")

	// ErrLogAlreadyFinalized is returned when a log is no longer received.
	ErrLogAlreadyFinalized = errors.New("webhook log already finalized")
)
