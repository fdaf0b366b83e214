package schedule

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"mentora/models"
	"mentora/utils"
)

// 24-hour zero-padded "HH:MM".
var timePattern = regexp.MustCompile(`^(?:[01][0-9]|2[0-3]):[0-5][0-9]$`)

var weekdayNames = map[string]bool{
	time.Sunday.String():    true,
	time.Monday.String():    true,
	time.Tuesday.String():   true,
	time.Wednesday.String(): true,
	time.Thursday.String():  true,
	time.Friday.String():    true,
	time.Saturday.String():  true,
}

// ValidateDays checks a proposed weekly template. Pure; every rule has its
// own failure message so the caller can surface exactly what is wrong.
func ValidateDays(days []models.DaySchedule) error {
	if len(days) == 0 {
		return models.NewValidationError("schedule must contain at least one day")
	}

	sessionMin := utils.SessionMinutes()
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		if !weekdayNames[day.Day] {
			return models.NewValidationError("invalid weekday %q", day.Day)
		}
		if seen[day.Day] {
			return models.NewValidationError("weekday %s appears more than once", day.Day)
		}
		seen[day.Day] = true

		if len(day.Slots) == 0 {
			return models.NewValidationError("%s must have at least one slot", day.Day)
		}
		for _, slot := range day.Slots {
			if !timePattern.MatchString(slot.StartTime) {
				return models.NewValidationError("invalid start time %q on %s, expected 24-hour HH:MM", slot.StartTime, day.Day)
			}
			if slot.Price <= 0 {
				return models.NewValidationError("slot %s on %s must have a positive price", slot.StartTime, day.Day)
			}
			if len(slot.Modes) == 0 {
				return models.NewValidationError("slot %s on %s must offer at least one mode", slot.StartTime, day.Day)
			}
			for _, mode := range slot.Modes {
				if mode != models.ModeVideo && mode != models.ModeAudio {
					return models.NewValidationError("invalid mode %q on slot %s (%s)", mode, slot.StartTime, day.Day)
				}
			}
		}

		sorted := make([]models.SlotTemplate, len(day.Slots))
		copy(sorted, day.Slots)
		sort.Slice(sorted, func(i, j int) bool {
			return startMinutes(sorted[i].StartTime) < startMinutes(sorted[j].StartTime)
		})

		for i := 1; i < len(sorted); i++ {
			prev, cur := sorted[i-1], sorted[i]
			if startMinutes(cur.StartTime) < startMinutes(prev.StartTime)+sessionMin {
				return models.NewValidationError("slots %s and %s on %s overlap within a %d-minute session",
					prev.StartTime, cur.StartTime, day.Day, sessionMin)
			}
		}
		for _, slot := range sorted {
			if startMinutes(slot.StartTime)+sessionMin > 24*60 {
				return models.NewValidationError("slot %s on %s extends past midnight", slot.StartTime, day.Day)
			}
		}
	}
	return nil
}

// startMinutes converts a validated "HH:MM" to minutes from midnight.
func startMinutes(hhmm string) int {
	h, _ := strconv.Atoi(hhmm[:2])
	m, _ := strconv.Atoi(hhmm[3:])
	return h*60 + m
}
