package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"licensing/internal/licensee/models"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/requestcontext"
)

// Service defines the licensee operations exposed over HTTP.
type Service interface {
	RegisterParams(params models.RegistrationParams) (*models.Raw, error)
	GetAccount(ctx context.Context, wallet string) (*models.Licensee, error)
}

// Handler serves the /licensee endpoints.
type Handler struct {
	licensees Service
	logger    *zap.Logger
}

func New(licensees Service, logger *zap.Logger) *Handler {
	return &Handler{licensees: licensees, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/licensee/{wallet}", h.HandleGet)
}

// RegisterAuthenticated mounts routes that need a session; the caller applies the auth middleware.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/licensee/register", h.HandleRegister)
}

// HandleRegister implements POST /licensee/register. The encoded payload is
// returned for the wallet to submit to the contract itself.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, err := httputil.RequireWallet(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}
	if req.WalletAddress != caller.String() {
		h.logger.Warn("licensee registration for another wallet",
			zap.String("request_id", requestID),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "wallet_address does not match the session wallet"))
		return
	}

	raw, err := h.licensees.RegisterParams(req.Params())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, "Registration parameters encoded", raw)
}

// HandleGet implements GET /licensee/{wallet}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	licensee, err := h.licensees.GetAccount(ctx, chi.URLParam(r, "wallet"))
	if err != nil {
		h.logger.Debug("get licensee failed",
			zap.Error(err),
			zap.String("request_id", requestcontext.RequestID(ctx)),
		)
		httputil.WriteError(w, err)
		return
	}

	message := "Licensee found"
	if !licensee.Exists() {
		message = "Licensee account not registered"
	}
	httputil.WriteData(w, http.StatusOK, message, licensee)
}
