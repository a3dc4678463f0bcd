package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrUserNotFound       ErrCode = "USER_NOT_FOUND"
	ErrWrongPassword      ErrCode = "WRONG_PASSWORD"
	ErrTooManyAttempts    ErrCode = "TOO_MANY_ATTEMPTS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"
	ErrRecruiterOnly     ErrCode = "RECRUITER_ACCESS_ONLY"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidCursor  ErrCode = "INVALID_CURSOR"

	// ─── Registration ──────────────────────────────────────────────────
	ErrPasswordMismatch   ErrCode = "PASSWORD_MISMATCH"
	ErrPasswordTooShort   ErrCode = "PASSWORD_TOO_SHORT"
	ErrPasswordTooLong    ErrCode = "PASSWORD_TOO_LONG"
	ErrMissingCollegeName ErrCode = "MISSING_COLLEGE_NAME"
	ErrMissingCompanyName ErrCode = "MISSING_COMPANY_NAME"
	ErrInvalidEmail       ErrCode = "INVALID_EMAIL"
	ErrInvalidPhone       ErrCode = "INVALID_PHONE"
	ErrInvalidInstitute   ErrCode = "INVALID_INSTITUTE"
	ErrUnknownRole        ErrCode = "UNKNOWN_ROLE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrConflict        ErrCode = "CONFLICT"
	ErrActionForbidden ErrCode = "ACTION_FORBIDDEN"

	// ─── Placement ─────────────────────────────────────────────────────
	ErrAlreadyApplied    ErrCode = "ALREADY_APPLIED"
	ErrJobNotInInstitute ErrCode = "JOB_NOT_IN_INSTITUTE"
	ErrNotJobOwner       ErrCode = "NOT_JOB_OWNER"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrUserNotFound:
		return "No user found with this email."
	case ErrWrongPassword:
		return "Invalid password. Please try again."
	case ErrTooManyAttempts:
		return "Too many login attempts. Please try again later."
	case ErrSessionInvalidated:
		return "Your session has ended. Please sign in again."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to institute admins."
	case ErrRecruiterOnly:
		return "This resource is restricted to recruiters."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrInvalidCursor:
		return "Invalid pagination cursor."

	// ─── Registration ──────────────────────────────────────────────────
	case ErrPasswordMismatch:
		return "Passwords do not match."
	case ErrPasswordTooShort:
		return "Password must be at least 6 characters."
	case ErrPasswordTooLong:
		return "Password must be at most 72 bytes."
	case ErrMissingCollegeName:
		return "College name is required."
	case ErrMissingCompanyName:
		return "Company name is required."
	case ErrInvalidEmail:
		return "Invalid email address."
	case ErrInvalidPhone:
		return "Phone number must have exactly 10 digits."
	case ErrInvalidInstitute:
		return "Invalid institute ID. Please check with your college."
	case ErrUnknownRole:
		return "Invalid role selected."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrActionForbidden:
		return "This action is not allowed."

	// ─── Placement ─────────────────────────────────────────────────────
	case ErrAlreadyApplied:
		return "You have already applied for this job."
	case ErrJobNotInInstitute:
		return "This job is not open to your institute."
	case ErrNotJobOwner:
		return "You did not post this job."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
