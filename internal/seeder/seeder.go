// Package seeder fills the in-memory ledger and user store with demo data for
// local runs without a chain or database.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"licensing/internal/licensee/codec"
	licenseemodels "licensing/internal/licensee/models"
	"licensing/internal/permit/fees"
	"licensing/internal/sentinel"
	usermodels "licensing/internal/user/models"
	id "licensing/pkg/domain"
)

// Ledger is the writable side of the in-memory ledger.
type Ledger interface {
	SetLicense(permit, baseTermsURL string)
	SetAccount(wallet common.Address, data []byte, usable bool)
}

// UserStore defines methods for seeding users
type UserStore interface {
	Save(ctx context.Context, user *usermodels.User) error
}

type Seeder struct {
	ledger Ledger
	users  UserStore
	logger *zap.Logger
	now    func() time.Time
}

func New(ledger Ledger, users UserStore, logger *zap.Logger) *Seeder {
	return &Seeder{ledger: ledger, users: users, logger: logger, now: time.Now}
}

type demoLicensee struct {
	wallet      string
	name        string
	dob         string
	email       string
	company     string
	nationality string
	country     string
	usable      bool
}

var demoLicensees = []demoLicensee{
	{"0x52908400098527886e0f7030069857d2e4169ee7", "Alice Anderson", "1988-02-11T00:00:00Z", "alice@example.com", "Anderson Studio", "British", "United Kingdom", true},
	{"0x8617e340b3d01fa5f11f306f4090fd50e238070d", "Bob Brown", "1992-07-30T00:00:00Z", "bob@example.com", "", "Canadian", "Canada", true},
	{"0xde709f2102306220921060314715629080e2fb77", "Charlie Chen", "1979-11-03T08:30:00+08:00", "charlie@example.com", "None", "Singaporean", "Singapore", false},
}

// SeedAll registers base terms for every priced permit, then demo licensee
// accounts and their users. Users that already exist are skipped.
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.logger.Info("seeding demo data")

	for _, permit := range fees.Permits() {
		s.ledger.SetLicense(permit, "memory://terms/"+slug(permit))
	}

	if err := s.seedLicensees(); err != nil {
		return fmt.Errorf("failed to seed licensees: %w", err)
	}

	users, err := s.seedUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	s.logger.Info("demo data seeded successfully",
		zap.Int("permits", len(fees.Permits())),
		zap.Int("licensees", len(demoLicensees)),
		zap.Int("users", users),
	)
	return nil
}

func (s *Seeder) seedLicensees() error {
	for _, d := range demoLicensees {
		var company *string
		if d.company != "" {
			company = &d.company
		}
		encoded, err := codec.Encode(licenseemodels.RegistrationParams{
			WalletAddress:        d.wallet,
			Name:                 d.name,
			DateOfBirth:          d.dob,
			Address:              "1 Demo Street",
			EmailAddress:         d.email,
			PhoneNumber:          "+1 555 0100",
			Company:              company,
			Nationality:          d.nationality,
			CountryOfApplication: d.country,
		})
		if err != nil {
			return err
		}
		raw, err := hexutil.Decode(encoded)
		if err != nil {
			return err
		}
		s.ledger.SetAccount(common.HexToAddress(d.wallet), raw, d.usable)
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) (int, error) {
	created := 0
	for _, d := range demoLicensees {
		wallet, err := id.ParseWallet(d.wallet)
		if err != nil {
			return created, err
		}
		user := usermodels.NewUser(wallet, s.now())
		user.Name = &d.name
		user.Email = &d.email

		if err := s.users.Save(ctx, user); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyExists) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

func slug(permit string) string {
	return strings.ReplaceAll(strings.ToLower(permit), " ", "-")
}
