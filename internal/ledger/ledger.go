// Package ledger describes the License contract as seen by the services. The
// client is constructed once at startup and injected; nothing here is global.
package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"licensing/internal/application/packing"
)

// Account is the raw licensee account stored by the contract.
type Account struct {
	Data   []byte
	Usable bool
}

// Empty reports whether the wallet never registered.
func (a *Account) Empty() bool {
	return a == nil || len(a.Data) == 0
}

// Client reads from the License contract.
type Client interface {
	// GetAccount returns the raw account of wallet. Unregistered wallets yield
	// an empty account, not an error.
	GetAccount(ctx context.Context, wallet common.Address) (*Account, error)
	// GetLicense returns the base terms URL registered for a permit hash, or ""
	// when the permit does not exist.
	GetLicense(ctx context.Context, permitHash [32]byte) (string, error)
	// GetPackedData asks the contract to pack rec.
	GetPackedData(ctx context.Context, rec packing.Record) (packing.Words, error)
}

// PermitHash is the keccak256 of the permit label, the key the contract uses
// for its license registry.
func PermitHash(permit string) [32]byte {
	var out [32]byte
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(permit))
	h.Sum(out[:0])
	return out
}
