package reminder

import "time"

// DueResult is the outcome of one detection pass.
type DueResult struct {
	// Due holds the occurrences that became due in this pass, in store
	// iteration order.
	Due []Occurrence
	// Changed reports whether any reminder's notified flag was flipped, in
	// which case the caller should persist the collection once.
	Changed bool
	// Skipped counts reminders dropped because of malformed date/time or
	// recurrence fields.
	Skipped int
}

// Detect scans the collection for occurrences that are newly due at "now".
// An occurrence is due when it lies inside the window (now-pollInterval, now]
// and has not been notified yet; anything older than one poll window is
// silently missed, never backfilled. Detect mutates the notified flag on the
// owning Reminder in place: for a recurring reminder the single persisted
// boolean tracks only the currently-relevant cycle, not per-occurrence
// history. A processed set guarantees at most one firing per reminder per
// pass even when expansion yields overlapping matches.
func Detect(reminders []Reminder, now time.Time, pollInterval time.Duration) DueResult {
	var res DueResult
	windowStart := now.Add(-pollInterval)
	processed := make(map[string]struct{}, len(reminders))

	for i := range reminders {
		r := &reminders[i]
		if _, done := processed[r.ID]; done {
			continue
		}

		instances, err := Expand(*r, now)
		if err != nil {
			res.Skipped++
			continue
		}

		for _, inst := range instances {
			t, err := inst.When()
			if err != nil {
				res.Skipped++
				continue
			}
			if t.After(now) || t.Before(windowStart) || inst.Notified {
				continue
			}

			res.Due = append(res.Due, inst)
			r.Notified = true
			res.Changed = true
			processed[inst.ID] = struct{}{}
			processed[r.ID] = struct{}{}
		}
	}

	return res
}
