package booking

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	appointmentRepo "mentora/database/repository/appointment"
	scheduleRepo "mentora/database/repository/schedule"
	"mentora/models"
	"mentora/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityService derives the bookable windows for a provider on a
// concrete calendar date.
type AvailabilityService interface {
	AvailableSlots(ctx context.Context, providerID, date string) (*models.AvailabilityResult, error)
}

// DefaultAvailabilityService implements AvailabilityService over the
// schedule and appointment stores with a read-through Redis cache.
type DefaultAvailabilityService struct {
	ScheduleRepo    scheduleRepo.ScheduleRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	Cache           *redis.Client

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AvailableSlots resolves the provider's weekly template against existing
// appointments and the clock. Same-day slots that have already started are
// excluded; future dates are never filtered by time of day.
func (s *DefaultAvailabilityService) AvailableSlots(ctx context.Context, providerID, date string) (*models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, models.NewValidationError("invalid date %q, expected YYYY-MM-DD", date)
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return nil, models.NewValidationError("date %s is in the past", date)
	}

	// Same-day results depend on the clock: an entry computed before a
	// slot's start would keep listing it until the TTL ran out. Only
	// future dates go through the cache.
	isToday := day.Equal(today)
	if !isToday {
		if cached := s.cachedResult(ctx, providerID, date); cached != nil {
			return cached, nil
		}
	}

	empty := &models.AvailabilityResult{HasSlots: false, Slots: []models.ResolvedSlot{}}

	sched, err := s.ScheduleRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		return nil, models.NewUnavailableError("could not load weekly schedule: %v", err)
	}
	if sched == nil {
		return empty, nil
	}

	weekday := day.Weekday().String()
	var daySched *models.DaySchedule
	for i := range sched.Days {
		if sched.Days[i].Day == weekday {
			daySched = &sched.Days[i]
			break
		}
	}
	if daySched == nil {
		return empty, nil
	}

	appointments, err := s.AppointmentRepo.GetActiveByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return nil, models.NewUnavailableError("could not load appointments: %v", err)
	}
	booked := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		booked[a.SlotID] = true
	}

	result := &models.AvailabilityResult{Slots: []models.ResolvedSlot{}}
	for _, slot := range daySched.Slots {
		if booked[slot.ID] {
			continue
		}
		if isToday && !slotStartInstant(day, slot.StartTime).After(now) {
			continue
		}
		modes := make([]string, len(slot.Modes))
		for i, m := range slot.Modes {
			modes[i] = strings.ToLower(m)
		}
		result.Slots = append(result.Slots, models.ResolvedSlot{
			ID:        slot.ID,
			StartTime: slot.StartTime,
			Modes:     modes,
			Price:     slot.Price,
		})
	}
	result.HasSlots = len(result.Slots) > 0

	if !isToday {
		s.storeCached(ctx, providerID, date, result)
	}
	logger.Debug("availability resolved",
		zap.String("providerId", providerID), zap.String("date", date),
		zap.Int("slots", len(result.Slots)))
	return result, nil
}

// slotStartInstant anchors a validated "HH:MM" onto a calendar day.
func slotStartInstant(day time.Time, hhmm string) time.Time {
	h, _ := strconv.Atoi(hhmm[:2])
	m, _ := strconv.Atoi(hhmm[3:])
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, time.Local)
}

func (s *DefaultAvailabilityService) cachedResult(ctx context.Context, providerID, date string) *models.AvailabilityResult {
	if s.Cache == nil {
		return nil
	}
	epoch := utils.AvailabilityEpoch(ctx, s.Cache, providerID)
	raw, err := s.Cache.Get(ctx, utils.AvailabilityCacheKey(providerID, epoch, date)).Result()
	if err != nil {
		return nil
	}
	var result models.AvailabilityResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	return &result
}

func (s *DefaultAvailabilityService) storeCached(ctx context.Context, providerID, date string, result *models.AvailabilityResult) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	epoch := utils.AvailabilityEpoch(ctx, s.Cache, providerID)
	key := utils.AvailabilityCacheKey(providerID, epoch, date)
	if err := s.Cache.Set(ctx, key, raw, utils.AvailabilityCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("failed to cache availability", zap.String("key", key), zap.Error(err))
	}
}
