package models

import "time"

// Consultation modes a therapist can offer on a slot.
const (
	ModeVideo = "video"
	ModeAudio = "audio"
)

// SlotTemplate is one recurring bookable window within a weekday. The ID is
// assigned when the schedule is persisted and is what appointments reference.
type SlotTemplate struct {
	ID        string   `bson:"id" json:"id"`
	StartTime string   `bson:"startTime" json:"startTime" binding:"required"` // 24-hour "HH:MM"
	Modes     []string `bson:"modes" json:"modes" binding:"required"`
	Price     float64  `bson:"price" json:"price" binding:"required"`
}

// DaySchedule groups the slot templates for one weekday.
type DaySchedule struct {
	Day   string         `bson:"day" json:"day" binding:"required"` // canonical name, e.g. "Monday"
	Slots []SlotTemplate `bson:"slots" json:"slots" binding:"required"`
}

// WeeklySchedule is a therapist's recurring availability template.
// Exactly one per provider.
type WeeklySchedule struct {
	ID         string        `bson:"id" json:"id"`
	ProviderID string        `bson:"providerId" json:"providerId"`
	Days       []DaySchedule `bson:"days" json:"days"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// WeeklyScheduleRequest is the payload for creating or replacing a schedule.
type WeeklyScheduleRequest struct {
	Days []DaySchedule `json:"days" binding:"required"`
}

// ResolvedSlot is a slot template projected onto a concrete calendar date,
// after booked and already-started slots have been filtered out.
type ResolvedSlot struct {
	ID        string   `json:"id"`
	StartTime string   `json:"startTime"`
	Modes     []string `json:"modes"`
	Price     float64  `json:"price"`
}

type AvailabilityResult struct {
	HasSlots bool           `json:"hasSlots"`
	Slots    []ResolvedSlot `json:"slots"`
}
