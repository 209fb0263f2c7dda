package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"licensing/internal/sentinel"
	"licensing/internal/user/models"
)

const ns = "licensing.users"

func TestMongoUserStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, NewMongo(mt.DB).EnsureIndexes(context.Background()))
	})

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, NewMongo(mt.DB).Save(context.Background(), models.NewUser(wallet, now)))
	})

	mt.Run("save duplicate wallet", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: licensing.users index: wallet_address_unique",
		}))
		err := NewMongo(mt.DB).Save(context.Background(), models.NewUser(wallet, now))
		assert.ErrorIs(mt, err, sentinel.ErrAlreadyExists)
	})

	mt.Run("find by wallet", func(mt *mtest.T) {
		user := models.NewUser(wallet, now)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: user.ID.String()},
			{Key: "wallet_address", Value: wallet.String()},
			{Key: "created_at", Value: now},
			{Key: "updated_at", Value: now},
			{Key: "kyc_verified", Value: false},
		}))

		found, err := NewMongo(mt.DB).FindByWallet(context.Background(), wallet)
		require.NoError(mt, err)
		assert.Equal(mt, user.ID, found.ID)
		assert.Equal(mt, wallet, found.WalletAddress)
		assert.True(mt, now.Equal(found.CreatedAt))
		assert.Nil(mt, found.Name)
	})

	mt.Run("find missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewMongo(mt.DB).FindByWallet(context.Background(), wallet)
		assert.ErrorIs(mt, err, sentinel.ErrNotFound)
	})

	mt.Run("exists", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		exists, err := NewMongo(mt.DB).ExistsByWallet(context.Background(), wallet)
		require.NoError(mt, err)
		assert.False(mt, exists)
	})

	mt.Run("corrupt id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "not-a-uuid"},
			{Key: "wallet_address", Value: wallet.String()},
		}))

		_, err := NewMongo(mt.DB).FindByWallet(context.Background(), wallet)
		require.Error(mt, err)
	})
}
