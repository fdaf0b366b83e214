package walletRepo

import (
	"context"
	"fmt"
	"time"

	"mentora/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrCreate returns the owner's wallet, creating it on first use. The
// upsert plus the unique (ownerId, ownerType) index keep concurrent callers
// from creating two wallets for one owner.
func (repo *mongoWalletRepo) GetOrCreate(ctx context.Context, ownerID, ownerType string) (*models.Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"ownerId": ownerID, "ownerType": ownerType}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"ownerId":   ownerID,
			"ownerType": ownerType,
			"balance":   float64(0),
			"createdAt": time.Now(),
			"updatedAt": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var wallet models.Wallet
	if err := repo.walletColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&wallet); err != nil {
		return nil, fmt.Errorf("failed to get or create wallet for %s/%s: %w", ownerType, ownerID, err)
	}
	return &wallet, nil
}

// GetByID fetches a wallet document by its id.
func (repo *mongoWalletRepo) GetByID(ctx context.Context, walletID string) (*models.Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var wallet models.Wallet
	if err := repo.walletColl.FindOne(ctx, bson.M{"id": walletID}).Decode(&wallet); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching wallet %s: %w", walletID, err)
	}
	return &wallet, nil
}

// GetByOwner fetches a wallet by owner without creating one.
func (repo *mongoWalletRepo) GetByOwner(ctx context.Context, ownerID, ownerType string) (*models.Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var wallet models.Wallet
	filter := bson.M{"ownerId": ownerID, "ownerType": ownerType}
	if err := repo.walletColl.FindOne(ctx, filter).Decode(&wallet); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching wallet for %s/%s: %w", ownerType, ownerID, err)
	}
	return &wallet, nil
}

// IncrementBalance applies a relative delta as a single conditional update.
// A negative delta only matches when the balance covers it, so the balance
// can never go below zero and concurrent increments are never lost.
func (repo *mongoWalletRepo) IncrementBalance(ctx context.Context, walletID string, delta float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": walletID}
	if delta < 0 {
		filter["balance"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"balance": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := repo.walletColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to increment wallet %s balance: %w", walletID, err)
	}
	if res.MatchedCount == 0 {
		wallet, getErr := repo.GetByID(ctx, walletID)
		if getErr == nil && wallet == nil {
			return models.NewNotFoundError("wallet %s not found", walletID)
		}
		return models.NewConflictError("wallet %s has insufficient balance for delta %.2f", walletID, delta)
	}
	return nil
}
