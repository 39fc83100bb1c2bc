package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "AUTH_TOKEN_INVALID"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden   = "AUTHZ_FORBIDDEN"
	ErrCodeInvalidRole = "AUTHZ_INVALID_ROLE"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidInput     = "VALIDATION_INVALID_INPUT"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodePrayerNotFound = "RESOURCE_PRAYER_NOT_FOUND"
	ErrCodeChurchNotFound = "RESOURCE_CHURCH_NOT_FOUND"
	ErrCodeGroupNotFound  = "RESOURCE_GROUP_NOT_FOUND"
	ErrCodeUserNotFound   = "RESOURCE_USER_NOT_FOUND"
	ErrCodeResourceExists = "RESOURCE_ALREADY_EXISTS"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError   = "INTERNAL_DATABASE_ERROR"
	ErrCodeUnexpectedError = "INTERNAL_UNEXPECTED_ERROR"
)
