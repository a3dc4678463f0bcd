package service

import (
	"errors"
	"fmt"
)

// Registration rejection reasons. They are always wrapped in a
// ValidationError.
var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrMissingCollegeName = errors.New("college name is required")
	ErrMissingCompanyName = errors.New("company name is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidInstitute   = errors.New("institute does not exist")
	ErrUnknownRole        = errors.New("unknown role")
)

// Portal operation errors.
var (
	ErrAlreadyApplied     = errors.New("student has already applied to this job")
	ErrJobNotInInstitute  = errors.New("job is not open to the student's institute")
	ErrNotJobOwner        = errors.New("job was posted by another recruiter")
	ErrNotInInstitute     = errors.New("account does not belong to this institute")
	ErrSessionInvalidated = errors.New("session invalidated")
	ErrNoActiveSession    = errors.New("no active session")
)

// ValidationError rejects a registration before anything is written.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PersistenceError wraps a document store failure. Writes that completed
// before the failure are not rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// rejectReason is the metrics label for a validation failure.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, ErrPasswordTooShort):
		return "password_too_short"
	case errors.Is(err, ErrPasswordTooLong):
		return "password_too_long"
	case errors.Is(err, ErrMissingCollegeName):
		return "missing_college_name"
	case errors.Is(err, ErrMissingCompanyName):
		return "missing_company_name"
	case errors.Is(err, ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, ErrInvalidPhone):
		return "invalid_phone"
	case errors.Is(err, ErrInvalidInstitute):
		return "invalid_institute"
	case errors.Is(err, ErrUnknownRole):
		return "unknown_role"
	}
	return "other"
}
