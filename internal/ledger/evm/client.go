// Package evm reads the License contract through an Ethereum JSON-RPC endpoint.
package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"licensing/internal/application/packing"
	"licensing/internal/ledger"
	"licensing/internal/platform/tracer"
)

// DefaultTimeout bounds a single contract call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Client calls the License contract at a fixed address.
type Client struct {
	caller  ethereum.ContractCaller
	address common.Address
	abi     abi.ABI
	timeout time.Duration
	tracer  tracer.Tracer
	logger  *zap.Logger
	closer  func()
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a client over any contract caller, such as *ethclient.Client or a
// simulated backend.
func New(caller ethereum.ContractCaller, address common.Address, opts ...Option) (*Client, error) {
	if caller == nil {
		return nil, errors.New("contract caller is required")
	}
	parsed, err := abi.JSON(strings.NewReader(licenseABI))
	if err != nil {
		return nil, fmt.Errorf("parse license abi: %w", err)
	}
	c := &Client{
		caller:  caller,
		address: address,
		abi:     parsed,
		timeout: DefaultTimeout,
		tracer:  tracer.NewNoop(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dial connects to rpcURL and returns a client for the contract at address.
func Dial(ctx context.Context, rpcURL string, address string, opts ...Option) (*Client, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid license contract address %q", address)
	}
	rpc, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial ledger rpc: %w", err)
	}
	c, err := New(rpc, common.HexToAddress(address), opts...)
	if err != nil {
		rpc.Close()
		return nil, err
	}
	c.closer = rpc.Close
	return c, nil
}

// Close releases the RPC connection opened by Dial.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

type accountTuple struct {
	Data   []byte
	Usable bool
}

func (c *Client) GetAccount(ctx context.Context, wallet common.Address) (acc *ledger.Account, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanLedgerAccount,
		tracer.String(tracer.AttrWallet, tracer.Fingerprint(wallet.Hex())))
	defer func() { span.End(err) }()

	out, err := c.call(ctx, methodGetAccount, wallet)
	if err != nil {
		return nil, err
	}
	tuple, ok := abi.ConvertType(out[0], new(accountTuple)).(*accountTuple)
	if !ok {
		return nil, badResponse(methodGetAccount, fmt.Errorf("got %T", out[0]))
	}

	span.SetAttributes(
		tracer.Bool(tracer.AttrUsable, tuple.Usable),
		tracer.Bool(tracer.AttrEmpty, len(tuple.Data) == 0),
	)
	return &ledger.Account{Data: tuple.Data, Usable: tuple.Usable}, nil
}

func (c *Client) GetLicense(ctx context.Context, permitHash [32]byte) (url string, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanLedgerLicense,
		tracer.String(tracer.AttrPermit, common.Hash(permitHash).Hex()))
	defer func() { span.End(err) }()

	out, err := c.call(ctx, methodGetLicense, permitHash)
	if err != nil {
		return "", err
	}
	url, ok := out[0].(string)
	if !ok {
		return "", badResponse(methodGetLicense, fmt.Errorf("got %T", out[0]))
	}
	return url, nil
}

func (c *Client) GetPackedData(ctx context.Context, rec packing.Record) (words packing.Words, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanLedgerPackedData)
	defer func() { span.End(err) }()

	args := make([]any, 0, len(packing.Fields()))
	for _, f := range packing.Fields() {
		args = append(args, rec.Get(f).ToBig())
	}

	out, err := c.call(ctx, methodGetPackedData, args...)
	if err != nil {
		return packing.Words{}, err
	}
	first, err := toWord(out[0])
	if err != nil {
		return packing.Words{}, badResponse(methodGetPackedData, err)
	}
	second, err := toWord(out[1])
	if err != nil {
		return packing.Words{}, badResponse(methodGetPackedData, err)
	}
	span.SetAttributes(tracer.Word(tracer.AttrWordA, first), tracer.Word(tracer.AttrWordB, second))
	return packing.Words{A: *first, B: *second}, nil
}

// call packs args, performs an eth_call against the latest block and unpacks
// the outputs of method.
func (c *Client) call(ctx context.Context, method string, args ...any) ([]any, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	raw, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: input}, nil)
	if err != nil {
		c.logger.Warn("ledger call failed",
			zap.String("method", method),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, callFailed(ctx, method, err)
	}

	out, err := c.abi.Unpack(method, raw)
	if err != nil {
		return nil, badResponse(method, err)
	}
	want := len(c.abi.Methods[method].Outputs)
	if len(out) != want {
		return nil, badResponse(method, fmt.Errorf("got %d outputs, want %d", len(out), want))
	}
	c.logger.Debug("ledger call",
		zap.String("method", method),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

func toWord(v any) (*uint256.Int, error) {
	b, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("got %T, want *big.Int", v)
	}
	w, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.New("word exceeds 256 bits")
	}
	return w, nil
}

var _ ledger.Client = (*Client)(nil)
