// Package service reads licensee accounts from the ledger and prepares the
// payload a wallet submits to register one.
package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"licensing/internal/ledger"
	"licensing/internal/licensee/codec"
	"licensing/internal/licensee/models"
	"licensing/internal/platform/metrics"
	"licensing/internal/platform/privacy"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/requestcontext"
)

// AccountReader reads raw licensee accounts.
type AccountReader interface {
	GetAccount(ctx context.Context, wallet common.Address) (*ledger.Account, error)
}

type Service struct {
	accounts AccountReader
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(accounts AccountReader, opts ...Option) *Service {
	svc := &Service{accounts: accounts}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// RegisterParams encodes the registration fields. New accounts are never usable
// until the contract owner approves them.
func (s *Service) RegisterParams(params models.RegistrationParams) (*models.Raw, error) {
	data, err := codec.Encode(params)
	if err != nil {
		return nil, err
	}
	return &models.Raw{Data: data, Usable: false}, nil
}

// GetAccount decodes the account stored for wallet. A wallet without an
// account yields the absent record.
func (s *Service) GetAccount(ctx context.Context, wallet string) (*models.Licensee, error) {
	w, err := id.ParseWallet(wallet)
	if err != nil {
		return nil, err
	}

	acc, err := s.accounts.GetAccount(ctx, w.Address())
	if err != nil {
		s.metrics.IncrementLicenseeDecoded(metrics.OutcomeError)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read licensee account")
	}
	if acc.Empty() {
		s.metrics.IncrementLicenseeDecoded(metrics.OutcomeAbsent)
		return models.Absent(), nil
	}

	licensee, err := codec.Decode([]byte(hexutil.Encode(acc.Data)), acc.Usable)
	if err != nil {
		s.metrics.IncrementLicenseeDecoded(metrics.OutcomeRejected)
		s.logger.Warn("stored licensee account is malformed",
			zap.Error(err),
			zap.String("wallet", privacy.MaskTail(w.String(), 4)),
			zap.Int("bytes", len(acc.Data)),
			zap.String("request_id", requestcontext.RequestID(ctx)),
		)
		return nil, err
	}

	s.metrics.IncrementLicenseeDecoded(metrics.OutcomeOK)
	s.logger.Debug("licensee account decoded",
		zap.String("wallet", privacy.MaskTail(w.String(), 4)),
		zap.String("email", privacy.MaskEmail(licensee.EmailAddress)),
		zap.Bool("usable", licensee.Usable),
	)
	return licensee, nil
}
