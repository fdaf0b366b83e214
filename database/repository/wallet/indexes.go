package walletRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the wallets and
// transactions collections.
func (repo *mongoWalletRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	walletIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One wallet per owner.
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "ownerType", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_owner"),
		},
	}
	if _, err := repo.walletColl.Indexes().CreateMany(ctx, walletIndexes); err != nil {
		return fmt.Errorf("failed to create wallet indexes: %w", err)
	}

	txnIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "walletId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("wallet_created_idx"),
		},
		// One ledger movement per (session, purpose); partial so only
		// session-tagged movements pay for the constraint.
		{
			Keys: bson.D{{Key: "metadata.sessionId", Value: 1}, {Key: "metadata.purpose", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"metadata.sessionId": bson.M{"$exists": true}}).
				SetName("unique_session_purpose"),
		},
	}
	if _, err := repo.txnColl.Indexes().CreateMany(ctx, txnIndexes); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}
	return nil
}
