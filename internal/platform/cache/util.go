package cache

import (
	"time"
)

// TimeUntilNextRefresh returns the duration until 08:00 Taipei time, shortly
// after the exchange has published listing changes for the day.
func TimeUntilNextRefresh() time.Duration {
	loc, _ := time.LoadLocation("Asia/Taipei")
	now := time.Now().In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, loc)

	// Use tomorrow's 08:00 if today's has already passed
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}
