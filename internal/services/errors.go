package services

import (
	"errors"
)

// Service-level errors, mapped to HTTP codes by the handlers and to
// local diagnostics by realtime sessions.
var (
	// Not found
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubTaskNotFound = errors.New("subtask not found")
	ErrUserNotFound    = errors.New("user not found")

	// Validation
	ErrTitleRequired      = errors.New("title is required")
	ErrNameRequired       = errors.New("name is required")
	ErrMessageRequired    = errors.New("message is required")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrInvalidPercentage  = errors.New("percentage must be between 0 and 100")
	ErrTaskNotInProject   = errors.New("task does not belong to this project")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Permission
	ErrNotProjectMember  = errors.New("user is not a member of the project")
	ErrNotProjectManager = errors.New("only the project manager can perform this action")
	ErrCannotKickManager = errors.New("the project manager cannot be kicked")
)

// IsNotFound reports whether err is one of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrSubTaskNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrMessageRequired) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidPercentage) ||
		errors.Is(err, ErrTaskNotInProject) ||
		errors.Is(err, ErrUsernameTaken)
}

// IsPermissionDenied reports whether err is a permission error.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrNotProjectMember) ||
		errors.Is(err, ErrNotProjectManager) ||
		errors.Is(err, ErrCannotKickManager)
}
