package walletRepo

import (
	"context"
	"fmt"
	"time"

	"mentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreditWithTransaction applies the balance increment and records the ledger
// movement in one Mongo transaction. The unique (sessionId, purpose) index
// on transactions aborts the whole pair when the same credit races in twice,
// so a duplicate delivery can never double-credit a wallet.
func (repo *mongoWalletRepo) CreditWithTransaction(ctx context.Context, walletID string, txn *models.Transaction) error {
	client := repo.walletColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.txnColl.InsertOne(sc, txn); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return models.NewConflictError("credit %s for session %s already recorded",
					txn.Metadata.Purpose, txn.Metadata.SessionID)
			}
			return fmt.Errorf("insert transaction failed: %w", err)
		}

		filter := bson.M{"id": walletID}
		update := bson.M{
			"$inc": bson.M{"balance": txn.Amount},
			"$set": bson.M{"updatedAt": time.Now()},
		}
		res, err := repo.walletColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("credit wallet balance failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("wallet %s not found for credit", walletID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}

// FindTransactionBySession looks up the ledger movement recorded for a
// checkout session and purpose, or (nil, nil) when it has not happened yet.
func (repo *mongoWalletRepo) FindTransactionBySession(ctx context.Context, sessionID, purpose string) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var txn models.Transaction
	filter := bson.M{
		"metadata.sessionId": sessionID,
		"metadata.purpose":   purpose,
	}
	if err := repo.txnColl.FindOne(ctx, filter).Decode(&txn); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching transaction for session %s: %w", sessionID, err)
	}
	return &txn, nil
}

// ListTransactions returns a wallet's ledger history, newest first.
func (repo *mongoWalletRepo) ListTransactions(ctx context.Context, walletID string) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.txnColl.Find(ctx, bson.M{"walletId": walletID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions for wallet %s: %w", walletID, err)
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	for cursor.Next(ctx) {
		var t models.Transaction
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("error decoding transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return txns, nil
}

// MonthStart returns midnight on the first day of t's month, in t's
// location. Transactions at or after this instant count as current-month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Summarize aggregates the wallet's completed transactions. "Current month"
// is calendar-month-to-date at query time.
func (repo *mongoWalletRepo) Summarize(ctx context.Context, walletID string) (*models.WalletSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	wallet, err := repo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, models.NewNotFoundError("wallet %s not found", walletID)
	}

	monthStart := MonthStart(time.Now())

	creditCond := bson.M{"$eq": bson.A{"$type", models.TxnCredit}}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"walletId": walletID,
			"status":   models.TxnCompleted,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": nil,
			"totalCredit": bson.M{"$sum": bson.M{
				"$cond": bson.A{creditCond, "$amount", 0},
			}},
			"totalDebit": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$type", models.TxnDebit}}, "$amount", 0},
			}},
			"currentMonthCredit": bson.M{"$sum": bson.M{
				"$cond": bson.A{
					bson.M{"$and": bson.A{
						creditCond,
						bson.M{"$gte": bson.A{"$createdAt", monthStart}},
					}},
					"$amount", 0,
				},
			}},
		}}},
	}

	cursor, err := repo.txnColl.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating transactions for wallet %s: %w", walletID, err)
	}
	defer cursor.Close(ctx)

	summary := &models.WalletSummary{Balance: wallet.Balance}
	if cursor.Next(ctx) {
		var row struct {
			TotalCredit        float64 `bson:"totalCredit"`
			TotalDebit         float64 `bson:"totalDebit"`
			CurrentMonthCredit float64 `bson:"currentMonthCredit"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("error decoding wallet summary: %w", err)
		}
		summary.TotalCredit = row.TotalCredit
		summary.TotalDebit = row.TotalDebit
		summary.CurrentMonthCredit = row.CurrentMonthCredit
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return summary, nil
}
