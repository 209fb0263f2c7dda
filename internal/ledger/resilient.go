package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"licensing/internal/application/packing"
	"licensing/internal/sentinel"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/circuit"
)

// Resilient wraps a Client with a circuit breaker. While the circuit is open
// calls fail fast, except GetLicense which answers from the last terms it saw.
type Resilient struct {
	next    Client
	breaker *circuit.Breaker
	logger  *zap.Logger

	mu    sync.RWMutex
	terms map[[32]byte]string
}

// NewResilient protects next with breaker. A nil breaker gets the defaults.
func NewResilient(next Client, breaker *circuit.Breaker, logger *zap.Logger) *Resilient {
	if breaker == nil {
		breaker = circuit.New("ledger")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resilient{
		next:    next,
		breaker: breaker,
		logger:  logger,
		terms:   make(map[[32]byte]string),
	}
}

func (r *Resilient) GetAccount(ctx context.Context, wallet common.Address) (*Account, error) {
	if !r.breaker.Allow() {
		return nil, r.rejected("getAccount")
	}
	acc, err := r.next.GetAccount(ctx, wallet)
	r.record(ctx, err)
	return acc, err
}

func (r *Resilient) GetLicense(ctx context.Context, permitHash [32]byte) (string, error) {
	if !r.breaker.Allow() {
		if url, ok := r.lastTerms(permitHash); ok {
			r.logger.Warn("circuit open, using last known license terms", zap.String("circuit", r.breaker.Name()))
			return url, nil
		}
		return "", r.rejected("getLicense")
	}

	url, err := r.next.GetLicense(ctx, permitHash)
	if useFallback := r.record(ctx, err); err != nil {
		if cached, ok := r.lastTerms(permitHash); ok && useFallback {
			return cached, nil
		}
		return "", err
	}

	r.mu.Lock()
	r.terms[permitHash] = url
	r.mu.Unlock()
	return url, nil
}

func (r *Resilient) GetPackedData(ctx context.Context, rec packing.Record) (packing.Words, error) {
	if !r.breaker.Allow() {
		return packing.Words{}, r.rejected("getPackedData")
	}
	words, err := r.next.GetPackedData(ctx, rec)
	r.record(ctx, err)
	return words, err
}

// record feeds the outcome to the breaker. Only outages and timeouts count as
// failures; a cancelled request says nothing about the ledger.
func (r *Resilient) record(ctx context.Context, err error) (useFallback bool) {
	if err == nil {
		if change := r.breaker.RecordSuccess(); change.Closed {
			r.logger.Info("circuit breaker closed", zap.String("circuit", r.breaker.Name()))
		}
		return false
	}
	if errors.Is(err, context.Canceled) || !isOutage(err) {
		return false
	}
	useFallback, change := r.breaker.RecordFailure()
	if change.Opened {
		r.logger.Error("circuit breaker opened", zap.String("circuit", r.breaker.Name()), zap.Error(err))
	}
	return useFallback
}

func (r *Resilient) lastTerms(permitHash [32]byte) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	url, ok := r.terms[permitHash]
	return url, ok
}

func (r *Resilient) rejected(method string) error {
	return dErrors.Wrap(
		fmt.Errorf("%s: circuit %s open: %w", method, r.breaker.Name(), sentinel.ErrUnavailable),
		dErrors.CodeUnavailable, "ledger unavailable")
}

func isOutage(err error) bool {
	return dErrors.HasCode(err, dErrors.CodeUnavailable) ||
		dErrors.HasCode(err, dErrors.CodeTimeout) ||
		errors.Is(err, sentinel.ErrUnavailable) ||
		errors.Is(err, sentinel.ErrTimeout)
}
