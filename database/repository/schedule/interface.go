package scheduleRepo

import (
	"context"

	"mentora/database"
	"mentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.WeeklySchedule) error
	GetByProviderID(ctx context.Context, providerID string) (*models.WeeklySchedule, error)
	ReplaceDays(ctx context.Context, providerID string, days []models.DaySchedule) (bool, error)
	EnsureIndexes() error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoScheduleRepo{
		coll: db.Collection("weekly_schedules"),
	}
}
