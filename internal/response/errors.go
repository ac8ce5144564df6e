package response

import "fmt"

// Error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternal      = "INTERNAL_ERROR"

	ErrCodeAlreadyMember           = "ALREADY_MEMBER"
	ErrCodePendingInvitationExists = "PENDING_INVITATION_EXISTS"
	ErrCodeInvitationInvalid       = "INVITATION_INVALID"
	ErrCodeInvitationUsed          = "INVITATION_USED"
	ErrCodeInvitationExpired       = "INVITATION_EXPIRED"
	ErrCodeReadonlyColumn          = "READONLY_COLUMN"
	ErrCodeEmailDeliveryFailed     = "EMAIL_DELIVERY_FAILED"
)

// AppError is the error type returned by the service layer
type AppError struct {
	Code    string
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates an AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

func NewForbiddenError(message, details string) *AppError {
	return NewAppError(ErrCodeForbidden, message, details)
}

func NewUnauthorizedError(message, details string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, details)
}

func NewInternalError(message, details string) *AppError {
	return NewAppError(ErrCodeInternal, message, details)
}
