package domain

import "errors"

// ErrorCode is a stable, machine-readable code carried across the service
// boundary. Handlers map codes to HTTP statuses; clients map them to UI text.
type ErrorCode string

const (
	// Authorization
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeNotAuthorized ErrorCode = "NOT_AUTHORIZED"

	// Not found
	CodeOrgNotFound     ErrorCode = "ORG_NOT_FOUND"
	CodeEventNotFound   ErrorCode = "EVENT_NOT_FOUND"
	CodeTeamNotFound    ErrorCode = "TEAM_NOT_FOUND"
	CodeRequestNotFound ErrorCode = "REQUEST_NOT_FOUND"
	CodeUserNotFound    ErrorCode = "USER_NOT_FOUND"

	// Invite / link validity
	CodeInviteInvalid      ErrorCode = "INVITE_INVALID"
	CodeInviteExpired      ErrorCode = "INVITE_EXPIRED"
	CodeLinkInvalid        ErrorCode = "LINK_INVALID"
	CodeLinkExpired        ErrorCode = "LINK_EXPIRED"
	CodeLinkMaxUsesReached ErrorCode = "LINK_MAX_USES_REACHED"
	CodeEmailMismatch      ErrorCode = "EMAIL_MISMATCH"

	// Conflict / idempotency
	CodeAlreadyRegistered      ErrorCode = "ALREADY_REGISTERED"
	CodeDuplicatePendingInvite ErrorCode = "DUPLICATE_PENDING_INVITE"
	CodeRequestAlreadyExists   ErrorCode = "REQUEST_ALREADY_EXISTS"
	CodeRequestAlreadyReviewed ErrorCode = "REQUEST_ALREADY_REVIEWED"
	CodeLastOwner              ErrorCode = "LAST_OWNER"

	// Settings / validation
	CodeInvalidJoinSettings ErrorCode = "INVALID_JOIN_SETTINGS"
	CodeJoinRequestsClosed  ErrorCode = "JOIN_REQUESTS_CLOSED"
	CodeRegistrationClosed  ErrorCode = "REGISTRATION_CLOSED"
	CodeInvalidArgument     ErrorCode = "INVALID_ARGUMENT"

	// Infrastructure
	CodeRateLimited ErrorCode = "RATE_LIMITED"
	CodeInternal    ErrorCode = "INTERNAL"
)

// Error is the discriminated failure result for all service operations.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// E builds a domain error with a stable code and human-readable message.
func E(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf extracts the domain code from an error chain. Infrastructure
// failures that were never translated surface as INTERNAL.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given domain code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
