package workspace

import "errors"

var (
	ErrWorkspaceNotFound   = errors.New("workspace not found")
	ErrIntegrationNotFound = errors.New("integration not found")
	ErrInvalidInput        = errors.New("invalid input")
)
