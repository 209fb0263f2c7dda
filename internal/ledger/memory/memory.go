// Package memory is an in-process ledger used for local runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"licensing/internal/application/packing"
	"licensing/internal/ledger"
)

// Ledger keeps accounts and licenses in maps and packs records locally, the
// way the contract's getPackedData does.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[common.Address]ledger.Account
	licenses map[[32]byte]string
}

func New() *Ledger {
	return &Ledger{
		accounts: make(map[common.Address]ledger.Account),
		licenses: make(map[[32]byte]string),
	}
}

// SetAccount stores raw account data for wallet.
func (l *Ledger) SetAccount(wallet common.Address, data []byte, usable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[wallet] = ledger.Account{Data: append([]byte(nil), data...), Usable: usable}
}

// SetLicense registers base terms for a permit label.
func (l *Ledger) SetLicense(permit, baseTermsURL string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.licenses[ledger.PermitHash(permit)] = baseTermsURL
}

func (l *Ledger) GetAccount(ctx context.Context, wallet common.Address) (*ledger.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	acc, ok := l.accounts[wallet]
	if !ok {
		return &ledger.Account{}, nil
	}
	return &ledger.Account{Data: append([]byte(nil), acc.Data...), Usable: acc.Usable}, nil
}

func (l *Ledger) GetLicense(ctx context.Context, permitHash [32]byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.licenses[permitHash], nil
}

func (l *Ledger) GetPackedData(ctx context.Context, rec packing.Record) (packing.Words, error) {
	if err := ctx.Err(); err != nil {
		return packing.Words{}, err
	}
	return packing.Pack(rec)
}

var _ ledger.Client = (*Ledger)(nil)
