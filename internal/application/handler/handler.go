package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"licensing/internal/application/models"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/requestcontext"
)

// Service defines the application operations exposed over HTTP.
type Service interface {
	Quote(ctx context.Context, permit string, durationSeconds uint64) (*uint256.Int, error)
	Pack(ctx context.Context, req *models.PackRequest) (*models.PackResult, error)
	Unpack(req *models.UnpackRequest) models.ApplicationView
	Verify(ctx context.Context, req *models.PackRequest) (*models.VerifyResult, error)
}

// Handler serves the /application endpoints.
type Handler struct {
	applications Service
	logger       *zap.Logger
}

func New(applications Service, logger *zap.Logger) *Handler {
	return &Handler{applications: applications, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/application", func(r chi.Router) {
		r.Post("/fee", h.HandleFee)
		r.Post("/pack", h.HandlePack)
		r.Post("/unpack", h.HandleUnpack)
		r.Post("/verify", h.HandleVerify)
	})
}

// HandleFee implements POST /application/fee.
func (h *Handler) HandleFee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.FeeRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	fee, err := h.applications.Quote(ctx, req.Permit, req.Duration)
	if err != nil {
		h.logger.Debug("fee quote failed",
			zap.Error(err),
			zap.String("permit", req.Permit),
			zap.Uint64("duration", req.Duration),
			zap.String("request_id", requestID),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, "Fee calculated", models.FeeResult{
		Permit:     req.Permit,
		Duration:   req.Duration,
		LicenseFee: models.NewQuantity(fee),
	})
}

// HandlePack implements POST /application/pack.
func (h *Handler) HandlePack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.PackRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	res, err := h.applications.Pack(ctx, req)
	if err != nil {
		h.logger.Debug("pack failed", zap.Error(err), zap.String("request_id", requestID))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, "Application packed", res)
}

// HandleUnpack implements POST /application/unpack.
func (h *Handler) HandleUnpack(w http.ResponseWriter, r *http.Request) {
	requestID := requestcontext.RequestID(r.Context())

	req, ok := httputil.DecodeAndPrepare[models.UnpackRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}
	httputil.WriteData(w, http.StatusOK, "Application unpacked", h.applications.Unpack(req))
}

// HandleVerify implements POST /application/verify.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.PackRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	res, err := h.applications.Verify(ctx, req)
	if err != nil {
		h.logger.Warn("verify failed", zap.Error(err), zap.String("request_id", requestID))
		httputil.WriteError(w, err)
		return
	}

	message := "Packing matches ledger"
	if !res.Match {
		message = "Packing differs from ledger"
	}
	httputil.WriteData(w, http.StatusOK, message, res)
}
