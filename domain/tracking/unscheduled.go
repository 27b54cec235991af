package tracking

// Unscheduled returns the supplements referenced by no reminder, in the
// same relative order they were given. A reminder with an empty or absent
// id set schedules nothing; ids pointing at deleted supplements are
// ignored. The function is pure and total: any input, including nil
// slices, yields a defined result.
func Unscheduled(supplements []Supplement, reminders []Reminder) []Supplement {
	if len(supplements) == 0 {
		return nil
	}

	scheduled := ScheduledIDs(reminders)

	unscheduled := make([]Supplement, 0, len(supplements))
	for _, supplement := range supplements {
		if _, ok := scheduled[supplement.ID]; !ok {
			unscheduled = append(unscheduled, supplement)
		}
	}
	return unscheduled
}

// ScheduledIDs returns the union of all reminder id sets
func ScheduledIDs(reminders []Reminder) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, reminder := range reminders {
		for _, id := range reminder.SupplementIDs {
			ids[id] = struct{}{}
		}
	}
	return ids
}
