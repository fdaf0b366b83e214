package schedule

import (
	"testing"

	"mentora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(start string, price float64, modes ...string) models.SlotTemplate {
	if len(modes) == 0 {
		modes = []string{models.ModeVideo}
	}
	return models.SlotTemplate{StartTime: start, Modes: modes, Price: price}
}

func TestValidateDays(t *testing.T) {
	tests := []struct {
		name    string
		days    []models.DaySchedule
		wantErr string // empty means valid
	}{
		{
			name:    "empty schedule",
			days:    nil,
			wantErr: "at least one day",
		},
		{
			name: "invalid weekday name",
			days: []models.DaySchedule{
				{Day: "Funday", Slots: []models.SlotTemplate{slot("09:00", 1000)}},
			},
			wantErr: `invalid weekday "Funday"`,
		},
		{
			name: "duplicate weekday",
			days: []models.DaySchedule{
				{Day: "Monday", Slots: []models.SlotTemplate{slot("09:00", 1000)}},
				{Day: "Monday", Slots: []models.SlotTemplate{slot("11:00", 1000)}},
			},
			wantErr: "Monday appears more than once",
		},
		{
			name: "day without slots",
			days: []models.DaySchedule{
				{Day: "Tuesday", Slots: nil},
			},
			wantErr: "at least one slot",
		},
		{
			name: "bad time format",
			days: []models.DaySchedule{
				{Day: "Monday", Slots: []models.SlotTemplate{slot("9:00", 1000)}},
			},
			wantErr: `invalid start time "9:00"`,
		},
		{
			name: "hour out of range",
			days: []models.DaySchedule{
				{Day: "Monday", Slots: []models.SlotTemplate{slot("24:00", 1000)}},
			},
			wantErr: "invalid start time",
		},
		{
			name: "minute out of range",
			days: []models.DaySchedule{
				{Day: "Monday", Slots: []models.SlotTemplate{slot("09:60", 1000)}},
			},
			wantErr: "invalid start time",
		},
		{
			name: "non-positive price",
			days: []models.DaySchedule{
				{Day: "Monday", Slots: []models.SlotTemplate{slot("09:00", 0)}},
			},
			wantErr: "positive price",
		},
		{
			name: "no modes",
			days: []models.DaySchedule{
				{Day: "Monday", Slots: []models.SlotTemplate{
					{StartTime: "09:00", Price: 1000},
				}},
			},
			wantErr: "at least one mode",
		},
		{
			name: "unknown mode",
			days: []models.DaySchedule{
				{Day: "Monday", Slots: []models.SlotTemplate{slot("09:00", 1000, "telepathy")}},
			},
			wantErr: `invalid mode "telepathy"`,
		},
		{
			name: "sixty minutes apart is valid",
			days: []models.DaySchedule{
				{Day: "Monday", Slots: []models.SlotTemplate{
					slot("09:00", 1000),
					slot("10:00", 1000),
				}},
			},
		},
		{
			name: "exactly fifty minutes apart is valid",
			days: []models.DaySchedule{
				{Day: "Wednesday", Slots: []models.SlotTemplate{
					slot("09:00", 1000),
					slot("09:50", 1000),
				}},
			},
		},
		{
			name: "thirty minutes apart overlaps",
			days: []models.DaySchedule{
				{Day: "Monday", Slots: []models.SlotTemplate{
					slot("09:00", 1000),
					slot("09:30", 1000),
				}},
			},
			wantErr: "slots 09:00 and 09:30 on Monday overlap",
		},
		{
			name: "unsorted input still detects overlap",
			days: []models.DaySchedule{
				{Day: "Friday", Slots: []models.SlotTemplate{
					slot("09:30", 1000),
					slot("09:00", 1000),
				}},
			},
			wantErr: "slots 09:00 and 09:30 on Friday overlap",
		},
		{
			name: "slot extends past midnight",
			days: []models.DaySchedule{
				{Day: "Saturday", Slots: []models.SlotTemplate{slot("23:30", 1000)}},
			},
			wantErr: "extends past midnight",
		},
		{
			name: "last slot fitting before midnight is valid",
			days: []models.DaySchedule{
				{Day: "Saturday", Slots: []models.SlotTemplate{slot("23:10", 1000)}},
			},
		},
		{
			name: "full valid week",
			days: []models.DaySchedule{
				{Day: "Monday", Slots: []models.SlotTemplate{
					slot("09:00", 1500, models.ModeVideo, models.ModeAudio),
					slot("10:00", 1500, models.ModeVideo),
				}},
				{Day: "Thursday", Slots: []models.SlotTemplate{
					slot("14:00", 2000, models.ModeAudio),
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDays(tt.days)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
