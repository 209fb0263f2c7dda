package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"licensing/internal/sentinel"
	"licensing/internal/user/models"
	id "licensing/pkg/domain"
)

// Collection holds one document per user.
const Collection = "users"

type userDocument struct {
	ID                  string     `bson:"_id"`
	WalletAddress       string     `bson:"wallet_address"`
	CreatedAt           time.Time  `bson:"created_at"`
	UpdatedAt           time.Time  `bson:"updated_at"`
	Name                *string    `bson:"name,omitempty"`
	DateOfBirth         *time.Time `bson:"dob,omitempty"`
	Email               *string    `bson:"email,omitempty"`
	Phone               *string    `bson:"phone,omitempty"`
	Address             *string    `bson:"address,omitempty"`
	Company             *string    `bson:"company,omitempty"`
	KYCVerified         bool       `bson:"kyc_verified"`
	LastKYCVerification *time.Time `bson:"last_kyc_verification,omitempty"`
}

// MongoUserStore persists users in MongoDB.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongo(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(Collection)}
}

// EnsureIndexes creates the unique wallet index Save relies on.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "wallet_address", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("wallet_address_unique"),
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (s *MongoUserStore) Save(ctx context.Context, user *models.User) error {
	_, err := s.coll.InsertOne(ctx, toDocument(user))
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("user %s: %w", user.WalletAddress, sentinel.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoUserStore) FindByWallet(ctx context.Context, wallet id.Wallet) (*models.User, error) {
	var doc userDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "wallet_address", Value: wallet.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromDocument(&doc)
}

func (s *MongoUserStore) ExistsByWallet(ctx context.Context, wallet id.Wallet) (bool, error) {
	_, err := s.FindByWallet(ctx, wallet)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func toDocument(u *models.User) *userDocument {
	return &userDocument{
		ID:                  u.ID.String(),
		WalletAddress:       u.WalletAddress.String(),
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
		Name:                u.Name,
		DateOfBirth:         u.DateOfBirth,
		Email:               u.Email,
		Phone:               u.Phone,
		Address:             u.Address,
		Company:             u.Company,
		KYCVerified:         u.KYCVerified,
		LastKYCVerification: u.LastKYCVerification,
	}
}

func fromDocument(d *userDocument) (*models.User, error) {
	userID, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("decode user id %q: %w", d.ID, err)
	}
	return &models.User{
		ID:                  id.UserID(userID),
		WalletAddress:       id.Wallet(d.WalletAddress),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		Name:                d.Name,
		DateOfBirth:         d.DateOfBirth,
		Email:               d.Email,
		Phone:               d.Phone,
		Address:             d.Address,
		Company:             d.Company,
		KYCVerified:         d.KYCVerified,
		LastKYCVerification: d.LastKYCVerification,
	}, nil
}
