package fulfillmentRepo

import (
	"context"
	"fmt"
	"time"

	"mentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Claim inserts a processing record for the session. The unique sessionId
// index makes the insert a race-safe claim: losers get the existing record.
func (repo *mongoFulfillmentRepo) Claim(ctx context.Context, sessionID string) (*models.FulfillmentClaim, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	claim := &models.FulfillmentClaim{
		SessionID: sessionID,
		Status:    models.ClaimProcessing,
		CreatedAt: time.Now(),
	}
	_, err := repo.coll.InsertOne(ctx, claim)
	if err == nil {
		return claim, true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, false, fmt.Errorf("failed to claim fulfillment for session %s: %w", sessionID, err)
	}

	var existing models.FulfillmentClaim
	if err := repo.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&existing); err != nil {
		return nil, false, fmt.Errorf("error fetching existing claim for session %s: %w", sessionID, err)
	}
	return &existing, false, nil
}

// MarkCompleted finalizes the claim once every fulfillment step is durable.
func (repo *mongoFulfillmentRepo) MarkCompleted(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":      models.ClaimCompleted,
			"completedAt": now,
		},
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"sessionId": sessionID}, update)
	if err != nil {
		return fmt.Errorf("failed to complete claim for session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no claim found for session %s", sessionID)
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the fulfillment_claims collection.
func (repo *mongoFulfillmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_session"),
		},
	}
	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create fulfillment claim indexes: %w", err)
	}
	return nil
}
