package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/requestcontext"
)

// SessionValidator extracts and validates session tokens.
type SessionValidator interface {
	// ExtractToken returns the token carried by an Authorization header value.
	ExtractToken(authHeader string) (string, error)
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// SessionChecker reports whether a session is still usable.
type SessionChecker interface {
	SessionActive(ctx context.Context, sessionID id.SessionID) (bool, error)
}

// SessionClaims represents the claims we expect from the validator
type SessionClaims struct {
	Wallet    string
	SessionID string
	JTI       string
}

// RequireSession rejects requests without a valid bearer session token and
// stores the authenticated wallet and session in the request context.
// sessions may be nil, in which case only the token is checked.
func RequireSession(validator SessionValidator, sessions SessionChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.With(zap.String("request_id", requestcontext.RequestID(ctx)))

			token, err := validator.ExtractToken(r.Header.Get("Authorization"))
			if err != nil {
				log.Warn("unauthorized access - missing token", zap.Error(err))
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				log.Warn("unauthorized access - invalid token", zap.Error(err))
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			wallet, err := id.ParseWallet(claims.Wallet)
			if err != nil {
				log.Warn("unauthorized access - token wallet malformed", zap.Error(err))
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}
			sessionID, err := id.ParseSessionID(claims.SessionID)
			if err != nil {
				log.Warn("unauthorized access - token session malformed", zap.Error(err))
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			if sessions != nil {
				active, err := sessions.SessionActive(ctx, sessionID)
				if err != nil {
					log.Error("failed to check session", zap.Error(err))
					httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "Failed to validate token"))
					return
				}
				if !active {
					log.Warn("unauthorized access - session inactive", zap.String("session_id", sessionID.String()))
					httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Session is no longer active"))
					return
				}
			}

			ctx = requestcontext.WithWallet(ctx, wallet)
			ctx = requestcontext.WithSessionID(ctx, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
