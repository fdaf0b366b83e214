package schedule

import (
	"context"
	"testing"

	"mentora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleRepo struct {
	schedules map[string]*models.WeeklySchedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[string]*models.WeeklySchedule)}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s *models.WeeklySchedule) error {
	if _, ok := f.schedules[s.ProviderID]; ok {
		return models.NewConflictError("weekly schedule already exists for provider %s", s.ProviderID)
	}
	f.schedules[s.ProviderID] = s
	return nil
}

func (f *fakeScheduleRepo) GetByProviderID(ctx context.Context, providerID string) (*models.WeeklySchedule, error) {
	return f.schedules[providerID], nil
}

func (f *fakeScheduleRepo) ReplaceDays(ctx context.Context, providerID string, days []models.DaySchedule) (bool, error) {
	s, ok := f.schedules[providerID]
	if !ok {
		return false, nil
	}
	s.Days = days
	return true, nil
}

func (f *fakeScheduleRepo) EnsureIndexes() error { return nil }

func validDays() []models.DaySchedule {
	return []models.DaySchedule{
		{Day: "Monday", Slots: []models.SlotTemplate{
			{StartTime: "09:00", Modes: []string{models.ModeVideo}, Price: 1000},
			{StartTime: "10:00", Modes: []string{models.ModeVideo}, Price: 1000},
		}},
	}
}

func TestCreateWeeklySchedule(t *testing.T) {
	svc := &DefaultScheduleService{Repo: newFakeScheduleRepo()}
	ctx := context.Background()

	sched, err := svc.CreateWeeklySchedule(ctx, "prov-1", validDays())
	require.NoError(t, err)
	require.NotNil(t, sched)
	assert.Equal(t, "prov-1", sched.ProviderID)

	// Every slot gets a stable id at persistence time.
	for _, day := range sched.Days {
		for _, slot := range day.Slots {
			assert.NotEmpty(t, slot.ID)
		}
	}

	// A second create for the same provider conflicts.
	_, err = svc.CreateWeeklySchedule(ctx, "prov-1", validDays())
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
}

func TestCreateWeeklyScheduleConflictBeforeValidation(t *testing.T) {
	svc := &DefaultScheduleService{Repo: newFakeScheduleRepo()}
	ctx := context.Background()

	_, err := svc.CreateWeeklySchedule(ctx, "prov-1", validDays())
	require.NoError(t, err)

	// A duplicate create answers with the conflict even when the payload
	// would not validate.
	invalid := []models.DaySchedule{
		{Day: "Monday", Slots: []models.SlotTemplate{
			{StartTime: "9am", Modes: []string{models.ModeVideo}, Price: 1000},
		}},
	}
	_, err = svc.CreateWeeklySchedule(ctx, "prov-1", invalid)
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
}

func TestCreateWeeklyScheduleRejectsInvalid(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := &DefaultScheduleService{Repo: repo}

	days := []models.DaySchedule{
		{Day: "Monday", Slots: []models.SlotTemplate{
			{StartTime: "09:00", Modes: []string{models.ModeVideo}, Price: 1000},
			{StartTime: "09:30", Modes: []string{models.ModeVideo}, Price: 1000},
		}},
	}
	_, err := svc.CreateWeeklySchedule(context.Background(), "prov-1", days)
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
	// Nothing persisted on validation failure.
	assert.Empty(t, repo.schedules)
}

func TestGetWeeklyScheduleMissingIsNil(t *testing.T) {
	svc := &DefaultScheduleService{Repo: newFakeScheduleRepo()}
	sched, err := svc.GetWeeklySchedule(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, sched)
}

func TestUpdateWeeklySchedule(t *testing.T) {
	svc := &DefaultScheduleService{Repo: newFakeScheduleRepo()}
	ctx := context.Background()

	created, err := svc.CreateWeeklySchedule(ctx, "prov-1", validDays())
	require.NoError(t, err)
	keptID := created.Days[0].Slots[0].ID

	// Replace Monday keeping 09:00, dropping 10:00, adding 11:00.
	updated, err := svc.UpdateWeeklySchedule(ctx, "prov-1", []models.DaySchedule{
		{Day: "Monday", Slots: []models.SlotTemplate{
			{StartTime: "09:00", Modes: []string{models.ModeAudio}, Price: 1200},
			{StartTime: "11:00", Modes: []string{models.ModeVideo}, Price: 1200},
		}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Days, 1)
	require.Len(t, updated.Days[0].Slots, 2)

	// The surviving (day, start) pair keeps its id; the new slot gets a fresh one.
	assert.Equal(t, keptID, updated.Days[0].Slots[0].ID)
	assert.NotEmpty(t, updated.Days[0].Slots[1].ID)
	assert.NotEqual(t, keptID, updated.Days[0].Slots[1].ID)
}

func TestUpdateWeeklyScheduleMissing(t *testing.T) {
	svc := &DefaultScheduleService{Repo: newFakeScheduleRepo()}
	_, err := svc.UpdateWeeklySchedule(context.Background(), "nobody", validDays())
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
