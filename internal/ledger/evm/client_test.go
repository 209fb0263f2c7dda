package evm

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"licensing/internal/application/packing"
	"licensing/internal/ledger"
	"licensing/internal/sentinel"
	dErrors "licensing/pkg/domain-errors"
)

// fakeContract answers eth_call requests with ABI-encoded results, emulating
// the License contract.
type fakeContract struct {
	abi      abi.ABI
	accounts map[common.Address]accountTuple
	licenses map[[32]byte]string
	err      error
	delay    time.Duration
	calls    []ethereum.CallMsg
	raw      []byte
}

func newFakeContract(t *testing.T) *fakeContract {
	parsed, err := abi.JSON(strings.NewReader(licenseABI))
	require.NoError(t, err)
	return &fakeContract{
		abi:      parsed,
		accounts: map[common.Address]accountTuple{},
		licenses: map[[32]byte]string{},
	}
}

func (f *fakeContract) CallContract(ctx context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls = append(f.calls, msg)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.raw != nil {
		return f.raw, nil
	}

	method, err := f.abi.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := method.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case methodGetAccount:
		acc := f.accounts[args[0].(common.Address)]
		return method.Outputs.Pack(acc)
	case methodGetLicense:
		return method.Outputs.Pack(f.licenses[args[0].([32]byte)])
	case methodGetPackedData:
		var rec packing.Record
		for i, field := range packing.Fields() {
			v, _ := uint256.FromBig(args[i].(*big.Int))
			*rec.Get(field) = *v
		}
		words, err := packing.Pack(rec)
		if err != nil {
			return nil, errors.New("execution reverted")
		}
		return method.Outputs.Pack(words.A.ToBig(), words.B.ToBig())
	}
	return nil, errors.New("unknown method")
}

type ClientSuite struct {
	suite.Suite
	contract *fakeContract
	client   *Client
	address  common.Address
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.contract = newFakeContract(s.T())
	s.address = common.HexToAddress("0x8617e340b3d01fa5f11f306f4090fd50e238070d")
	c, err := New(s.contract, s.address, WithTimeout(time.Second))
	s.Require().NoError(err)
	s.client = c
}

func (s *ClientSuite) TestGetAccount() {
	wallet := common.HexToAddress("0x52908400098527886e0f7030069857d2e4169ee7")
	s.contract.accounts[wallet] = accountTuple{Data: []byte("0xabc|Jane"), Usable: true}

	acc, err := s.client.GetAccount(context.Background(), wallet)
	s.Require().NoError(err)
	s.Equal([]byte("0xabc|Jane"), acc.Data)
	s.True(acc.Usable)

	s.Require().Len(s.contract.calls, 1)
	s.Equal(s.address, *s.contract.calls[0].To)
}

func (s *ClientSuite) TestGetAccount_Unregistered() {
	acc, err := s.client.GetAccount(context.Background(), common.HexToAddress("0x01"))
	s.Require().NoError(err)
	s.True(acc.Empty())
	s.False(acc.Usable)
}

func (s *ClientSuite) TestGetLicense() {
	s.contract.licenses[ledger.PermitHash("Asset Creation")] = "ipfs://terms"

	url, err := s.client.GetLicense(context.Background(), ledger.PermitHash("Asset Creation"))
	s.Require().NoError(err)
	s.Equal("ipfs://terms", url)

	url, err = s.client.GetLicense(context.Background(), ledger.PermitHash("Nonexistent"))
	s.Require().NoError(err)
	s.Empty(url)
}

func (s *ClientSuite) TestGetPackedData_MatchesLocalPacker() {
	rec := packing.NewApplication(packing.Terms{
		Duration:           31_536_000,
		LicenseFee:         *uint256.MustFromDecimal("90000000000000000000"),
		ReportingFrequency: 2_592_000,
	}, time.Unix(1_700_000_000, 0))

	got, err := s.client.GetPackedData(context.Background(), rec)
	s.Require().NoError(err)
	want, err := packing.Pack(rec)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *ClientSuite) TestRPCFailureIsUnavailable() {
	s.contract.err = errors.New("connection refused")

	_, err := s.client.GetLicense(context.Background(), ledger.PermitHash("Asset Creation"))
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrUnavailable))
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *ClientSuite) TestDeadlineIsTimeout() {
	c, err := New(s.contract, s.address, WithTimeout(10*time.Millisecond))
	s.Require().NoError(err)
	s.contract.delay = time.Second

	_, err = c.GetAccount(context.Background(), common.HexToAddress("0x01"))
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrTimeout))
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func (s *ClientSuite) TestCancellationPropagates() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.contract.delay = time.Second

	_, err := s.client.GetLicense(ctx, ledger.PermitHash("Asset Creation"))
	s.True(errors.Is(err, context.Canceled))
}

func (s *ClientSuite) TestMalformedOutput() {
	s.contract.raw = []byte{0x01, 0x02}

	_, err := s.client.GetLicense(context.Background(), ledger.PermitHash("Asset Creation"))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestNew_RequiresCaller(t *testing.T) {
	_, err := New(nil, common.Address{})
	assert.Error(t, err)
}

func TestDial_RejectsBadAddress(t *testing.T) {
	_, err := Dial(context.Background(), "http://127.0.0.1:8545", "not-an-address")
	assert.Error(t, err)
}
