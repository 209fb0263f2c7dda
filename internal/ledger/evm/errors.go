package evm

import (
	"context"
	"errors"
	"fmt"

	"licensing/internal/sentinel"
	dErrors "licensing/pkg/domain-errors"
)

// callFailed classifies a failed contract call. Deadlines become timeouts,
// cancellation is passed through untouched and everything else is an outage.
func callFailed(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%s: %w", method, context.Canceled)
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return dErrors.Wrap(
			fmt.Errorf("%s: %w: %w", method, sentinel.ErrTimeout, err),
			dErrors.CodeTimeout, "ledger call timed out")
	default:
		return dErrors.Wrap(
			fmt.Errorf("%s: %w: %w", method, sentinel.ErrUnavailable, err),
			dErrors.CodeUnavailable, "ledger unavailable")
	}
}

// badResponse reports output that does not match the ABI.
func badResponse(method string, err error) error {
	return dErrors.Wrap(
		fmt.Errorf("%s: unexpected contract output: %w", method, err),
		dErrors.CodeUnavailable, "ledger returned malformed data")
}
