package services

import "time"

// ScheduleService generates the bookable time slots of the current day.
type ScheduleService struct{}

// defaultSlotInterval is the slot quantum in minutes.
const defaultSlotInterval = 5

// slotGrace keeps a just-passed slot bookable for one more minute.
const slotGrace = time.Minute

// DaySlots returns every slot from 00:00:00 through 23:59:00 of now's day,
// stepping intervalMinutes (non-positive falls back to 5), formatted
// "YYYY-MM-DD HH:MM:SS". With includeAll=false, slots more than one minute
// in the past are dropped.
func (ScheduleService) DaySlots(intervalMinutes int, includeAll bool, now time.Time) []string {
	if intervalMinutes <= 0 {
		intervalMinutes = defaultSlotInterval
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())

	cutoff := now.Add(-slotGrace)

	slots := []string{}
	for t := startOfDay; !t.After(endOfDay); t = t.Add(time.Duration(intervalMinutes) * time.Minute) {
		if !includeAll && !t.After(cutoff) {
			continue
		}
		// Format in the slot's own location so the produced strings match
		// the day boundaries regardless of the process-local timezone.
		slots = append(slots, t.Format("2006-01-02 15:04:05"))
	}
	return slots
}
