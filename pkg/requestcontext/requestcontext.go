// Package requestcontext carries per-request values (request id, request time,
// authenticated wallet) through context.Context.
package requestcontext

import (
	"context"
	"time"

	id "licensing/pkg/domain"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	timeKey
	walletKey
	sessionIDKey
	userAgentKey
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// WithTime pins the request time so every component of one request observes
// the same instant.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, timeKey, t)
}

// Now returns the pinned request time, or the wall clock when none was set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(timeKey).(time.Time); ok {
		return t
	}
	return time.Now()
}

func WithWallet(ctx context.Context, wallet id.Wallet) context.Context {
	return context.WithValue(ctx, walletKey, wallet)
}

func Wallet(ctx context.Context) id.Wallet {
	v, _ := ctx.Value(walletKey).(id.Wallet)
	return v
}

func WithSessionID(ctx context.Context, sessionID id.SessionID) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func SessionID(ctx context.Context) id.SessionID {
	v, _ := ctx.Value(sessionIDKey).(id.SessionID)
	return v
}

func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey, ua)
}

func UserAgent(ctx context.Context) string {
	v, _ := ctx.Value(userAgentKey).(string)
	return v
}
