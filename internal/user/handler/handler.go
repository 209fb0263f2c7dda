package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"licensing/internal/user/models"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/requestcontext"
)

// Service defines the user operations exposed over HTTP.
type Service interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.CreateUserResult, error)
	GetUser(ctx context.Context, wallet string) (*models.User, error)
	RevokeSession(ctx context.Context, sessionID id.SessionID) error
}

// Handler serves the /user endpoints.
type Handler struct {
	users  Service
	logger *zap.Logger
}

func New(users Service, logger *zap.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// Register mounts the public user routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/user/create", h.HandleCreate)
	r.Get("/user/{wallet}", h.HandleGet)
}

// RegisterAuthenticated mounts routes that need a session; the caller applies the auth middleware.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/user/session/revoke", h.HandleRevokeSession)
}

// HandleCreate implements POST /user/create.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateUserRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	res, err := h.users.CreateUser(ctx, req)
	if err != nil {
		h.logger.Warn("create user failed",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("wallet", req.WalletAddress),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteData(w, http.StatusCreated, "User created", res)
}

// HandleGet implements GET /user/{wallet}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.users.GetUser(ctx, chi.URLParam(r, "wallet"))
	if err != nil {
		h.logger.Debug("get user failed",
			zap.Error(err),
			zap.String("request_id", requestcontext.RequestID(ctx)),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, "User found", models.ProfileOf(user))
}

// HandleRevokeSession implements POST /user/session/revoke for the caller's own session.
func (h *Handler) HandleRevokeSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if _, err := httputil.RequireWallet(ctx, h.logger, requestID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.users.RevokeSession(ctx, requestcontext.SessionID(ctx)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, "Session revoked", nil)
}
