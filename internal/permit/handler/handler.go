// Package handler exposes the permit registry lookup.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"licensing/internal/permit/fees"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/platform/validation"
	"licensing/pkg/requestcontext"
)

// TermsSource resolves the base terms URL of a permit; "" means it is not registered.
type TermsSource interface {
	BaseTerms(ctx context.Context, permit string) (string, error)
}

type PermitStatus struct {
	Permit       string `json:"permit"`
	Exists       bool   `json:"exists"`
	Priced       bool   `json:"priced"`
	BaseTermsURL string `json:"base_terms_url,omitempty"`
}

type Handler struct {
	terms  TermsSource
	logger *zap.Logger
}

func New(terms TermsSource, logger *zap.Logger) *Handler {
	return &Handler{terms: terms, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/permit/{permit}/exists", h.HandleExists)
}

// HandleExists implements GET /permit/{permit}/exists. Priced reports whether
// the fee schedule has a base rate for the permit.
func (h *Handler) HandleExists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	permit := strings.TrimSpace(chi.URLParam(r, "permit"))
	if permit == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "permit must not be blank"))
		return
	}
	if err := validation.CheckStringLength("permit", permit, validation.MaxPermitLength); err != nil {
		httputil.WriteError(w, err)
		return
	}

	url, err := h.terms.BaseTerms(ctx, permit)
	if err != nil {
		h.logger.Warn("permit lookup failed",
			zap.Error(err),
			zap.String("permit", permit),
			zap.String("request_id", requestcontext.RequestID(ctx)),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "permit lookup failed"))
		return
	}

	_, lookupErr := fees.Lookup(permit, fees.ThreeMonths)
	httputil.WriteData(w, http.StatusOK, "Permit checked", PermitStatus{
		Permit:       permit,
		Exists:       url != "",
		Priced:       lookupErr == nil,
		BaseTermsURL: url,
	})
}
