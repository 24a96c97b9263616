package booking

// Candidate start times are generated on a fixed grid.
const SlotStepMinutes = 15

// Slots returns the ascending "HH:MM" start times inside [openMin, closeMin)
// where an appointment of durationMin would overlap none of the blocked
// ranges. All interval checks are half-open, so an appointment may start
// exactly when the previous one ends.
func Slots(openMin, closeMin, durationMin int, blocked []Range) []string {
	if durationMin <= 0 {
		return []string{}
	}
	if closeMin <= openMin {
		// Malformed configuration never yields negative-length hours.
		return []string{}
	}

	latestStart := closeMin - durationMin
	if latestStart < openMin {
		return []string{}
	}

	slots := []string{}
	for t := openMin; t <= latestStart; t += SlotStepMinutes {
		candidate := Range{Start: t, End: t + durationMin}
		free := true
		for _, b := range blocked {
			if candidate.Overlaps(b) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, FromMinutes(t))
		}
	}
	return slots
}
