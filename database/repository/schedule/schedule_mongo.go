package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"mentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts the provider's weekly schedule. The unique index on
// providerId serializes concurrent first-time creation; a duplicate insert
// surfaces as a conflict.
func (repo *mongoScheduleRepo) Create(ctx context.Context, schedule *models.WeeklySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, schedule); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewConflictError("weekly schedule already exists for provider %s", schedule.ProviderID)
		}
		return fmt.Errorf("failed to create weekly schedule: %w", err)
	}
	return nil
}

// GetByProviderID returns the provider's schedule, or (nil, nil) when the
// provider has not published one.
func (repo *mongoScheduleRepo) GetByProviderID(ctx context.Context, providerID string) (*models.WeeklySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var schedule models.WeeklySchedule
	filter := bson.M{"providerId": providerID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&schedule); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching weekly schedule for provider %s: %w", providerID, err)
	}
	return &schedule, nil
}

// ReplaceDays swaps in a full replacement day list. Returns false when no
// schedule exists for the provider.
func (repo *mongoScheduleRepo) ReplaceDays(ctx context.Context, providerID string, days []models.DaySchedule) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID}
	update := bson.M{
		"$set": bson.M{
			"days":      days,
			"updatedAt": time.Now(),
		},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to replace weekly schedule for provider %s: %w", providerID, err)
	}
	return res.MatchedCount > 0, nil
}
