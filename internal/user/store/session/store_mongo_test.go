package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"licensing/internal/sentinel"
)

func TestMongoSessionStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, NewMongo(mt.DB).EnsureIndexes(context.Background()))
	})

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, NewMongo(mt.DB).Create(context.Background(), newSession(now)))
	})

	mt.Run("find by id", func(mt *mtest.T) {
		session := newSession(now)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "licensing.sessions", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: session.ID.String()},
			{Key: "wallet_address", Value: session.WalletAddress.String()},
			{Key: "chain_id", Value: int32(1)},
			{Key: "nonce", Value: "n0nce"},
			{Key: "version", Value: int32(1)},
			{Key: "created_at", Value: now},
			{Key: "expiration_date", Value: now.Add(time.Hour)},
		}))

		found, err := NewMongo(mt.DB).FindByID(context.Background(), session.ID)
		require.NoError(mt, err)
		assert.Equal(mt, session.ID, found.ID)
		assert.Equal(mt, uint32(1), found.ChainID)
		assert.Equal(mt, uint8(1), found.Version)
		assert.True(mt, found.IsActive(now))
	})

	mt.Run("find missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "licensing.sessions", mtest.FirstBatch))
		_, err := NewMongo(mt.DB).FindByID(context.Background(), newSession(now).ID)
		assert.ErrorIs(mt, err, sentinel.ErrNotFound)
	})

	mt.Run("revoke", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})
		require.NoError(mt, NewMongo(mt.DB).Revoke(context.Background(), newSession(now).ID, now))
	})

	mt.Run("revoke missing", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})
		err := NewMongo(mt.DB).Revoke(context.Background(), newSession(now).ID, now)
		assert.ErrorIs(mt, err, sentinel.ErrNotFound)
	})
}
