package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/requestcontext"
)

// APIVersion is reported in every response envelope.
const APIVersion = 1

// Response is the envelope shared by every endpoint.
type Response struct {
	Status     int         `json:"status"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Version    int         `json:"version"`
}

// Pagination describes a page of a larger collection.
type Pagination struct {
	TotalItems int `json:"total_items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteData writes a successful envelope.
func WriteData(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Response{
		Status:  status,
		Message: message,
		Data:    data,
		Version: APIVersion,
	})
}

// WriteError centralizes domain error translation to HTTP responses.
// Errors without a domain code are reported as internal errors and their text is not exposed.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status := DomainCodeToHTTPStatus(domainErr.Code)
		WriteJSON(w, status, Response{
			Status:  status,
			Error:   DomainCodeToHTTPCode(domainErr.Code),
			Message: domainErr.Error(),
			Version: APIVersion,
		})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, Response{
		Status:  http.StatusInternalServerError,
		Error:   DomainCodeToHTTPCode(dErrors.CodeInternal),
		Message: "internal server error",
		Version: APIVersion,
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeLookup:
		return http.StatusUnprocessableEntity
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToHTTPCode translates domain error codes to the error string of the envelope.
func DomainCodeToHTTPCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeNotFound:
		return "not_found"
	case dErrors.CodeBadRequest:
		return "bad_request"
	case dErrors.CodeValidation:
		return "validation_error"
	case dErrors.CodeLookup:
		return "lookup_error"
	case dErrors.CodeConflict:
		return "conflict"
	case dErrors.CodeUnauthorized:
		return "unauthorized"
	case dErrors.CodeForbidden:
		return "forbidden"
	case dErrors.CodeTimeout:
		return "ledger_timeout"
	case dErrors.CodeUnavailable:
		return "ledger_unavailable"
	default:
		return "internal_error"
	}
}

// RequireWallet extracts the authenticated wallet from context.
// Returns a domain error suitable for HTTP response on failure.
func RequireWallet(ctx context.Context, logger *zap.Logger, requestID string) (id.Wallet, error) {
	wallet := requestcontext.Wallet(ctx)
	if wallet.IsNil() {
		if logger != nil {
			logger.Error("wallet missing from context despite auth middleware",
				zap.String("request_id", requestID))
		}
		return "", dErrors.New(dErrors.CodeInternal, "authentication context error")
	}
	return wallet, nil
}
