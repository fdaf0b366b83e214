package fulfillmentRepo

import (
	"context"

	"mentora/database"
	"mentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type FulfillmentRepository interface {
	// Claim records the session id for processing. Returns the claim and
	// whether this call created it; an existing claim means the event was
	// delivered before.
	Claim(ctx context.Context, sessionID string) (*models.FulfillmentClaim, bool, error)
	MarkCompleted(ctx context.Context, sessionID string) error
	EnsureIndexes() error
}

type mongoFulfillmentRepo struct {
	coll *mongo.Collection
}

// NewMongoFulfillmentRepo constructs a new MongoDB FulfillmentRepository.
func NewMongoFulfillmentRepo() FulfillmentRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoFulfillmentRepo{
		coll: db.Collection("fulfillment_claims"),
	}
}
