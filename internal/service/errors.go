package service

import (
	"errors"

	"claimflow/internal/claim"
	"claimflow/internal/repository"
)

var (
	ErrIDRequired  = errors.New("id is required")
	ErrReaderNil   = errors.New("reader is nil")
	ErrConflict    = errors.New("claim was changed by another request; reload and retry")
	ErrBusy        = errors.New("another request for this month is in progress")
	ErrUnknownUser = errors.New("unknown user")
	ErrUserExists  = errors.New("user name or email already in use")
	ErrInvalidRole = errors.New("invalid role")
	ErrInvalidRate = errors.New("hourly rate must be between 0 and 100000")
	ErrNotLecturer = errors.New("hourly rates apply to lecturers only")
)

// claimNotFound folds repository misses into the domain not-found error so
// missing and foreign claims look the same to callers.
func claimNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return claim.ErrNotFound
	}
	return err
}
