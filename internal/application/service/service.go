package service

import (
	"context"
	"slices"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"licensing/internal/application/models"
	"licensing/internal/application/packing"
	"licensing/internal/permit/fees"
	"licensing/internal/platform/metrics"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/requestcontext"
)

// FeeCalculator prices an application.
type FeeCalculator interface {
	Calculate(ctx context.Context, permit string, durationSeconds uint64) (*uint256.Int, error)
}

// PackedDataSource packs a record on the ledger side.
type PackedDataSource interface {
	GetPackedData(ctx context.Context, rec packing.Record) (packing.Words, error)
}

// Service quotes, packs and unpacks license applications.
type Service struct {
	fees    FeeCalculator
	ledger  PackedDataSource
	logger  *zap.Logger
	metrics *metrics.Metrics
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

func New(fees FeeCalculator, ledger PackedDataSource, opts ...Option) *Service {
	svc := &Service{fees: fees, ledger: ledger}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Quote returns the license fee for permit over durationSeconds.
func (s *Service) Quote(ctx context.Context, permit string, durationSeconds uint64) (*uint256.Int, error) {
	fee, err := s.fees.Calculate(ctx, permit, durationSeconds)
	s.metrics.IncrementFeeQuotes(permitLabel(permit), outcomeOf(err))
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// Pack builds the application submitted now and packs it into two words.
func (s *Service) Pack(ctx context.Context, req *models.PackRequest) (*models.PackResult, error) {
	rec, err := s.record(ctx, req)
	if err != nil {
		s.metrics.IncrementApplicationsPacked(outcomeOf(err))
		return nil, err
	}

	words, err := packing.Pack(rec)
	s.metrics.IncrementApplicationsPacked(outcomeOf(err))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("application packed",
		zap.String("permit", req.Permit),
		zap.Uint64("duration", req.Duration),
		zap.String("request_id", requestcontext.RequestID(ctx)),
	)
	return &models.PackResult{
		FirstPackedData:  models.NewWord(&words.A),
		SecondPackedData: models.NewWord(&words.B),
		Application:      models.ViewOf(&rec),
	}, nil
}

// Unpack decodes any pair of words.
func (s *Service) Unpack(req *models.UnpackRequest) models.ApplicationView {
	rec := packing.Unpack(req.Words())
	return models.ViewOf(&rec)
}

// Verify packs the application locally and on the ledger and compares the
// results. Both sides see the same record, so dates cannot drift apart.
func (s *Service) Verify(ctx context.Context, req *models.PackRequest) (*models.VerifyResult, error) {
	rec, err := s.record(ctx, req)
	if err != nil {
		return nil, err
	}
	local, err := packing.Pack(rec)
	if err != nil {
		return nil, err
	}

	remote, err := s.ledger.GetPackedData(ctx, rec)
	if err != nil {
		s.metrics.IncrementApplicationsVerified(metrics.OutcomeError)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "ledger packing failed")
	}

	match := local.A.Eq(&remote.A) && local.B.Eq(&remote.B)
	if match {
		s.metrics.IncrementApplicationsVerified(metrics.OutcomeOK)
	} else {
		s.metrics.IncrementApplicationsVerified(metrics.OutcomeRejected)
		s.logger.Warn("local packing differs from ledger",
			zap.String("local_first", local.A.Hex()),
			zap.String("ledger_first", remote.A.Hex()),
			zap.String("local_second", local.B.Hex()),
			zap.String("ledger_second", remote.B.Hex()),
			zap.String("request_id", requestcontext.RequestID(ctx)),
		)
	}

	return &models.VerifyResult{
		Match: match,
		Local: models.PackResult{
			FirstPackedData:  models.NewWord(&local.A),
			SecondPackedData: models.NewWord(&local.B),
			Application:      models.ViewOf(&rec),
		},
		Ledger: models.WordsOf(&remote),
	}, nil
}

func (s *Service) record(ctx context.Context, req *models.PackRequest) (packing.Record, error) {
	fee, err := s.Quote(ctx, req.Permit, req.Duration)
	if err != nil {
		return packing.Record{}, err
	}
	return packing.NewApplication(packing.Terms{
		Duration:             req.Duration,
		LicenseFee:           *fee,
		ReportingFrequency:   req.ReportingFrequency,
		ReportingGracePeriod: req.ReportingGracePeriod,
		RoyaltyGracePeriod:   req.RoyaltyGracePeriod,
		ExtraData:            *req.ExtraData.Int(),
	}, requestcontext.Now(ctx)), nil
}

func permitLabel(permit string) string {
	if slices.Contains(fees.Permits(), permit) {
		return permit
	}
	return "other"
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case dErrors.HasCode(err, dErrors.CodeValidation), dErrors.HasCode(err, dErrors.CodeLookup):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
