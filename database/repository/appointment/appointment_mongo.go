package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"mentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new appointment document. The sparse unique index on
// sessionId rejects a second appointment for the same checkout session.
func (repo *mongoAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, appointment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewConflictError("appointment already booked for session %s", appointment.SessionID)
		}
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

// GetActiveByProviderAndDate returns every non-cancelled appointment for the
// provider on the given date.
func (repo *mongoAppointmentRepo) GetActiveByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       date,
		"status":     bson.M{"$ne": models.AppointmentCancelled},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments for provider %s on %s: %w", providerID, date, err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("error decoding appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return appointments, nil
}

// GetBySessionID returns the appointment booked by a checkout session, or
// (nil, nil) when none exists yet.
func (repo *mongoAppointmentRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	filter := bson.M{"sessionId": sessionID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&appointment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching appointment for session %s: %w", sessionID, err)
	}
	return &appointment, nil
}
