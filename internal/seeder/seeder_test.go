package seeder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"licensing/internal/ledger"
	"licensing/internal/ledger/memory"
	"licensing/internal/licensee/service"
	"licensing/internal/permit/fees"
	userstore "licensing/internal/user/store/user"
	id "licensing/pkg/domain"
)

func TestSeedAll(t *testing.T) {
	ctx := context.Background()
	chain := memory.New()
	users := userstore.New()

	require.NoError(t, New(chain, users, zap.NewNop()).SeedAll(ctx))

	for _, permit := range fees.Permits() {
		url, err := chain.GetLicense(ctx, ledger.PermitHash(permit))
		require.NoError(t, err)
		assert.NotEmpty(t, url, permit)
	}

	licensees := service.New(chain)
	for _, d := range demoLicensees {
		l, err := licensees.GetAccount(ctx, d.wallet)
		require.NoError(t, err)
		assert.Equal(t, d.name, l.Name)
		assert.Equal(t, d.usable, l.Usable)

		exists, err := users.ExistsByWallet(ctx, id.Wallet(d.wallet))
		require.NoError(t, err)
		assert.True(t, exists)
	}

	charlie, err := licensees.GetAccount(ctx, demoLicensees[2].wallet)
	require.NoError(t, err)
	assert.Nil(t, charlie.Company)
}

func TestSeedAll_Twice(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), userstore.New(), zap.NewNop())

	require.NoError(t, s.SeedAll(ctx))
	require.NoError(t, s.SeedAll(ctx))
}
