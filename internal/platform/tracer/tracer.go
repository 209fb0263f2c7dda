// Package tracer provides a lightweight tracing abstraction for calls that leave
// the process: ledger reads and the permit cache.
//
// Implementations:
//   - NoopTracer: for tests and when tracing is disabled
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/holiman/uint256"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	//
	// Example:
	//   ctx, span := t.Start(ctx, tracer.SpanLedgerAccount,
	//       tracer.String(tracer.AttrWallet, tracer.Fingerprint(wallet)),
	//   )
	//   defer func() { span.End(err) }()
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Word records a 256-bit storage word as 0x hex.
func Word(key string, value *uint256.Int) Attribute {
	return Attribute{Key: key, Value: value.Hex()}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Fingerprint returns a short SHA-256 prefix of value so traces can be
// correlated per wallet without carrying the address itself.
func Fingerprint(value string) string {
	if value == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

// Span names.
const (
	SpanLedgerAccount    = "ledger.get_account"
	SpanLedgerLicense    = "ledger.get_license"
	SpanLedgerPackedData = "ledger.get_packed_data"
	SpanPermitExists     = "permit.exists"
)

// Attribute keys.
const (
	AttrWallet   = "wallet"
	AttrPermit   = "permit"
	AttrCacheHit = "cache.hit"
	AttrUsable   = "account.usable"
	AttrEmpty    = "account.empty"
	AttrContract = "ledger.contract"
	AttrWordA    = "packed.word_a"
	AttrWordB    = "packed.word_b"
)
