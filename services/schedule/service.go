package schedule

import (
	"context"
	"time"

	scheduleRepo "mentora/database/repository/schedule"
	"mentora/models"
	"mentora/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleService manages a provider's weekly availability template.
type ScheduleService interface {
	CreateWeeklySchedule(ctx context.Context, providerID string, days []models.DaySchedule) (*models.WeeklySchedule, error)
	GetWeeklySchedule(ctx context.Context, providerID string) (*models.WeeklySchedule, error)
	UpdateWeeklySchedule(ctx context.Context, providerID string, days []models.DaySchedule) (*models.WeeklySchedule, error)
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	Repo  scheduleRepo.ScheduleRepository
	Cache *redis.Client
}

// CreateWeeklySchedule validates and persists a provider's first template.
// Every slot gets a stable surrogate id at this point; appointments
// reference slots by that id from then on.
func (s *DefaultScheduleService) CreateWeeklySchedule(ctx context.Context, providerID string, days []models.DaySchedule) (*models.WeeklySchedule, error) {
	// A provider who already published answers with a conflict before the
	// payload is even validated. The unique index on the insert below
	// still catches a concurrent first publish.
	existing, err := s.Repo.GetByProviderID(ctx, providerID)
	if err != nil {
		return nil, models.NewUnavailableError("could not load weekly schedule: %v", err)
	}
	if existing != nil {
		return nil, models.NewConflictError("weekly schedule already exists for provider %s", providerID)
	}

	if err := ValidateDays(days); err != nil {
		return nil, err
	}

	for d := range days {
		for i := range days[d].Slots {
			days[d].Slots[i].ID = uuid.New().String()
		}
	}

	now := time.Now()
	sched := &models.WeeklySchedule{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Days:       days,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, sched); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("weekly schedule created",
		zap.String("providerId", providerID), zap.Int("days", len(days)))
	return sched, nil
}

// GetWeeklySchedule returns the provider's template, or (nil, nil) when
// none has been published.
func (s *DefaultScheduleService) GetWeeklySchedule(ctx context.Context, providerID string) (*models.WeeklySchedule, error) {
	return s.Repo.GetByProviderID(ctx, providerID)
}

// UpdateWeeklySchedule validates and applies a full replacement template.
// Slot ids are preserved for (day, start) pairs that survive the replace so
// live bookings and cached availability keep referencing valid slots.
func (s *DefaultScheduleService) UpdateWeeklySchedule(ctx context.Context, providerID string, days []models.DaySchedule) (*models.WeeklySchedule, error) {
	if err := ValidateDays(days); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByProviderID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, models.NewNotFoundError("no weekly schedule exists for provider %s", providerID)
	}

	prior := make(map[string]string)
	for _, day := range existing.Days {
		for _, slot := range day.Slots {
			prior[day.Day+"|"+slot.StartTime] = slot.ID
		}
	}
	for d := range days {
		for i := range days[d].Slots {
			if id, ok := prior[days[d].Day+"|"+days[d].Slots[i].StartTime]; ok {
				days[d].Slots[i].ID = id
			} else {
				days[d].Slots[i].ID = uuid.New().String()
			}
		}
	}

	matched, err := s.Repo.ReplaceDays(ctx, providerID, days)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, models.NewNotFoundError("no weekly schedule exists for provider %s", providerID)
	}

	s.bumpAvailabilityEpoch(ctx, providerID)

	existing.Days = days
	existing.UpdatedAt = time.Now()
	utils.GetLogger().Info("weekly schedule updated",
		zap.String("providerId", providerID), zap.Int("days", len(days)))
	return existing, nil
}

// bumpAvailabilityEpoch orphans every cached availability entry for the
// provider. Cache failures are not fatal; entries also carry a TTL.
func (s *DefaultScheduleService) bumpAvailabilityEpoch(ctx context.Context, providerID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Incr(ctx, utils.ScheduleEpochKey(providerID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to bump availability cache epoch",
			zap.String("providerId", providerID), zap.Error(err))
	}
}
