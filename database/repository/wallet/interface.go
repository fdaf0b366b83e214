package walletRepo

import (
	"context"

	"mentora/database"
	"mentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type WalletRepository interface {
	GetOrCreate(ctx context.Context, ownerID, ownerType string) (*models.Wallet, error)
	GetByID(ctx context.Context, walletID string) (*models.Wallet, error)
	GetByOwner(ctx context.Context, ownerID, ownerType string) (*models.Wallet, error)
	IncrementBalance(ctx context.Context, walletID string, delta float64) error
	CreditWithTransaction(ctx context.Context, walletID string, txn *models.Transaction) error
	FindTransactionBySession(ctx context.Context, sessionID, purpose string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, walletID string) ([]models.Transaction, error)
	Summarize(ctx context.Context, walletID string) (*models.WalletSummary, error)
	EnsureIndexes() error
}

type mongoWalletRepo struct {
	walletColl *mongo.Collection
	txnColl    *mongo.Collection
}

// NewMongoWalletRepo constructs a new MongoDB WalletRepository.
func NewMongoWalletRepo() WalletRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoWalletRepo{
		walletColl: db.Collection("wallets"),
		txnColl:    db.Collection("transactions"),
	}
}
