package http

import (
	"encoding/json"
	"net/http"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
)

// envelope is the uniform response shape. Success carries data; failure
// carries a stable error code plus a human-readable message.
type envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondOK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Status: "SUCCESS", Data: data})
}

func respondCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, envelope{Status: "SUCCESS", Data: data})
}

// respondError maps a service error to HTTP. Untranslated infrastructure
// errors surface as 500 INTERNAL with a generic message; the detail goes to
// the log, not the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.CodeOf(err)
	status := httpStatus(code)

	message := err.Error()
	if code == domain.CodeInternal {
		logger.Error("Internal error", "path", r.URL.Path, "error", err)
		message = "internal server error"
	}

	writeJSON(w, status, envelope{
		Status: "ERROR",
		Error:  &apiError{Code: string(code), Message: message},
	})
}

func httpStatus(code domain.ErrorCode) int {
	switch code {
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeNotAuthorized:
		return http.StatusForbidden
	case domain.CodeOrgNotFound, domain.CodeEventNotFound, domain.CodeTeamNotFound,
		domain.CodeRequestNotFound, domain.CodeUserNotFound:
		return http.StatusNotFound
	case domain.CodeInviteInvalid, domain.CodeInviteExpired,
		domain.CodeLinkInvalid, domain.CodeLinkExpired:
		return http.StatusGone
	case domain.CodeLinkMaxUsesReached, domain.CodeAlreadyRegistered,
		domain.CodeDuplicatePendingInvite, domain.CodeRequestAlreadyExists,
		domain.CodeRequestAlreadyReviewed, domain.CodeLastOwner:
		return http.StatusConflict
	case domain.CodeEmailMismatch:
		return http.StatusForbidden
	case domain.CodeInvalidJoinSettings, domain.CodeJoinRequestsClosed,
		domain.CodeRegistrationClosed, domain.CodeInvalidArgument:
		return http.StatusBadRequest
	case domain.CodeRateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// decodeJSON parses a request body into dst, refusing unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.E(domain.CodeInvalidArgument, "invalid request body: "+err.Error())
	}
	return nil
}
