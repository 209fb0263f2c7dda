package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "date_of_birth", ToSnakeCase("DateOfBirth"))
	assert.Equal(t, "wallet_address", ToSnakeCase("WalletAddress"))
	assert.Equal(t, "permit_id", ToSnakeCase("PermitID"))
	assert.Equal(t, "name", ToSnakeCase("name"))
}

func TestTrimAll(t *testing.T) {
	a, b := "  alice ", "\tbob\n"
	TrimAll(&a, &b, nil)
	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)
}
