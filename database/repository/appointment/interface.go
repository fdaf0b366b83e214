package appointmentRepo

import (
	"context"

	"mentora/database"
	"mentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetActiveByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Appointment, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Appointment, error)
	EnsureIndexes() error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}
