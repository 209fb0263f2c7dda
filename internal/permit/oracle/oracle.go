// Package oracle answers whether a permit has base terms registered on the ledger.
package oracle

import (
	"context"

	"licensing/internal/ledger"
)

// TermsSource resolves the base terms URL of a permit; "" means the permit does not exist.
type TermsSource interface {
	BaseTerms(ctx context.Context, permit string) (string, error)
}

// LedgerOracle reads base terms straight from the License contract.
type LedgerOracle struct {
	client ledger.Client
}

func NewLedger(client ledger.Client) *LedgerOracle {
	return &LedgerOracle{client: client}
}

func (o *LedgerOracle) BaseTerms(ctx context.Context, permit string) (string, error) {
	return o.client.GetLicense(ctx, ledger.PermitHash(permit))
}

func (o *LedgerOracle) PermitExists(ctx context.Context, permit string) (bool, error) {
	return exists(ctx, o, permit)
}

// Static answers every existence check with the same value. The offline CLI
// uses it to price permits without a ledger.
type Static bool

func (s Static) PermitExists(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return bool(s), nil
}

func exists(ctx context.Context, src TermsSource, permit string) (bool, error) {
	url, err := src.BaseTerms(ctx, permit)
	if err != nil {
		return false, err
	}
	return url != "", nil
}
