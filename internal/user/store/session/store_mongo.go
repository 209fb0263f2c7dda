package session

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

const Collection = "sessions"

type sessionDocument struct {
	ID                string         `bson:"_id"`
	WalletAddress     string         `bson:"wallet_address"`
	ChainID           uint32         `bson:"chain_id"`
	Domain            string         `bson:"domain"`
	UserSessionID     string         `bson:"user_session_id"`
	Nonce             string         `bson:"nonce"`
	Signature         string         `bson:"signature"`
	Payload           map[string]any `bson:"payload,omitempty"`
	ProfileID         string         `bson:"profile_id"`
	URI               string         `bson:"uri"`
	Version           uint8          `bson:"version"`
	DeviceDisplayName string         `bson:"device_display_name,omitempty"`
	CreatedAt         time.Time      `bson:"created_at"`
	ExpiresAt         time.Time      `bson:"expiration_date"`
	RevokedAt         *time.Time     `bson:"revoked_at,omitempty"`
}

// MongoSessionStore persists sessions in MongoDB.
type MongoSessionStore struct {
	coll *mongo.Collection
}

func NewMongo(db *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{coll: db.Collection(Collection)}
}

// EnsureIndexes adds a wallet lookup index and a TTL index that lets MongoDB
// drop sessions once they expire.
func (s *MongoSessionStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "wallet_address", Value: 1}}},
		{
			Keys:    bson.D{{Key: "expiration_date", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return fmt.Errorf("create session indexes: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) Create(ctx context.Context, session *models.Session) error {
	_, err := s.coll.InsertOne(ctx, toDocument(session))
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("session %s: %w", session.ID, sentinel.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	var doc sessionDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: sessionID.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return fromDocument(&doc)
}

// Revoke sets revoked_at, keeping an earlier revocation time.
func (s *MongoSessionStore) Revoke(ctx context.Context, sessionID id.SessionID, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: sessionID.String()}},
		bson.D{{Key: "$min", Value: bson.D{{Key: "revoked_at", Value: at}}}},
	)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func toDocument(s *models.Session) *sessionDocument {
	return &sessionDocument{
		ID:                s.ID.String(),
		WalletAddress:     s.WalletAddress.String(),
		ChainID:           s.ChainID,
		Domain:            s.Domain,
		UserSessionID:     s.UserSessionID,
		Nonce:             s.Nonce,
		Signature:         s.Signature,
		Payload:           s.Payload,
		ProfileID:         s.ProfileID,
		URI:               s.URI,
		Version:           s.Version,
		DeviceDisplayName: s.DeviceDisplayName,
		CreatedAt:         s.CreatedAt,
		ExpiresAt:         s.ExpiresAt,
		RevokedAt:         s.RevokedAt,
	}
}

func fromDocument(d *sessionDocument) (*models.Session, error) {
	sessionID, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("decode session id %q: %w", d.ID, err)
	}
	return &models.Session{
		ID:                id.SessionID(sessionID),
		WalletAddress:     id.Wallet(d.WalletAddress),
		ChainID:           d.ChainID,
		Domain:            d.Domain,
		UserSessionID:     d.UserSessionID,
		Nonce:             d.Nonce,
		Signature:         d.Signature,
		Payload:           d.Payload,
		ProfileID:         d.ProfileID,
		URI:               d.URI,
		Version:           d.Version,
		DeviceDisplayName: d.DeviceDisplayName,
		CreatedAt:         d.CreatedAt,
		ExpiresAt:         d.ExpiresAt,
		RevokedAt:         d.RevokedAt,
	}, nil
}
