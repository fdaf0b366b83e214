package models

import "time"

// Appointment lifecycle states.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a confirmed session, created exactly once per fulfilled
// payment. SessionID carries the gateway checkout session that paid for it.
type Appointment struct {
	ID            string    `bson:"id" json:"id"`
	ProviderID    string    `bson:"providerId" json:"providerId"`
	ClientID      string    `bson:"clientId" json:"clientId"`
	SlotID        string    `bson:"slotId" json:"slotId"`
	Date          string    `bson:"date" json:"date"` // "2006-01-02"
	Mode          string    `bson:"mode" json:"mode"`
	Status        string    `bson:"status" json:"status"`
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	SessionID     string    `bson:"sessionId" json:"sessionId"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CancelReason  string    `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
