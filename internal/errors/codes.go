package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Validation errors
	CodeValidation         Code = "VALIDATION_FAILED"
	CodeProgressOutOfRange Code = "PROGRESS_OUT_OF_RANGE"
	CodeScoreOutOfRange    Code = "SCORE_OUT_OF_RANGE"
	CodeRatingOutOfRange   Code = "RATING_OUT_OF_RANGE"
	CodeInvalidStatus      Code = "INVALID_STATUS"
	CodeInvalidAudience    Code = "INVALID_AUDIENCE"
	CodeInvalidPriority    Code = "INVALID_PRIORITY"

	// Storage errors
	CodeNotFound          Code = "NOT_FOUND"
	CodeDuplicateEmail    Code = "DUPLICATE_EMAIL"
	CodeDuplicateInvoice  Code = "DUPLICATE_INVOICE"
	CodeDanglingReference Code = "DANGLING_REFERENCE"

	// Enrollment errors
	CodeDuplicateEnrollment Code = "DUPLICATE_ENROLLMENT"

	// Application errors
	CodeDuplicateApplication  Code = "DUPLICATE_APPLICATION"
	CodeInternshipUnavailable Code = "INTERNSHIP_UNAVAILABLE"
	CodeSlotsExhausted        Code = "SLOTS_EXHAUSTED"

	// Payment errors
	CodeAlreadyPaid Code = "ALREADY_PAID"

	// Auth errors
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeTokenInvalid       Code = "TOKEN_INVALID"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeValidation,
		CodeProgressOutOfRange,
		CodeScoreOutOfRange,
		CodeRatingOutOfRange,
		CodeInvalidStatus,
		CodeInvalidAudience,
		CodeInvalidPriority,
		CodeDanglingReference:
		return http.StatusBadRequest

	// Conflict - uniqueness violations, state disallows operation
	case CodeDuplicateEmail,
		CodeDuplicateInvoice,
		CodeDuplicateEnrollment,
		CodeDuplicateApplication,
		CodeInternshipUnavailable,
		CodeSlotsExhausted,
		CodeAlreadyPaid:
		return http.StatusConflict

	// Not found - resource doesn't exist
	case CodeNotFound:
		return http.StatusNotFound

	// Unauthorized - credential or token failures
	case CodeInvalidCredentials,
		CodeTokenInvalid:
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}
