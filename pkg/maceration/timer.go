package maceration

import "time"

const day = 24 * time.Hour

// MacerationTimer counts down the total maceration duration from start.
type MacerationTimer struct {
	start time.Time
	total time.Duration
}

func NewMacerationTimer(start time.Time, total time.Duration) MacerationTimer {
	return MacerationTimer{start: start, total: total}
}

func (t MacerationTimer) Deadline() time.Time {
	return t.start.Add(t.total)
}

func (t MacerationTimer) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(t.start)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (t MacerationTimer) Remaining(now time.Time) time.Duration {
	remaining := t.total - t.Elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (t MacerationTimer) Expired(now time.Time) bool {
	return t.Elapsed(now) >= t.total
}

// DaysRemaining rounds up, so the last partial day still shows as 1.
func (t MacerationTimer) DaysRemaining(now time.Time) int {
	remaining := t.Remaining(now)
	days := int(remaining / day)
	if remaining%day != 0 {
		days++
	}
	return days
}
