package window

import (
	"math"
	"time"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/normalize"
)

const (
	DefaultPassingGraceMinutes  = 5
	DefaultLateToleranceMinutes = 30
)

// Bounds holds the grace limits applied after the reference event.
type Bounds struct {
	// PassingGraceMinutes keeps a passing train imminent this long after it passes.
	PassingGraceMinutes int
	// LateToleranceMinutes keeps other trains imminent this long after their check time.
	LateToleranceMinutes int
}

func DefaultBounds() Bounds {
	return Bounds{
		PassingGraceMinutes:  DefaultPassingGraceMinutes,
		LateToleranceMinutes: DefaultLateToleranceMinutes,
	}
}

// ReferenceInstant places an HH:mm reference on the calendar day of day,
// in day's location.
func ReferenceInstant(referenceTime string, day time.Time) (time.Time, bool) {
	minutes, ok := normalize.ClockMinutes(referenceTime)
	if !ok {
		return time.Time{}, false
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, day.Location()), true
}

// DiffMinutes is reference minus now, in fractional minutes.
// The reference is placed on the passenger's service date when one is given,
// not on today, so a tomorrow 00:30 train counts down correctly at 23:50
// today and rolled-over rows can turn imminent before midnight. Expired keeps
// the same-day rule.
func DiffMinutes(status domain.TrainStatus, now time.Time, serviceDate string) (float64, bool) {
	instant, ok := ReferenceInstant(status.ReferenceTime, anchorDay(now, serviceDate))
	if !ok {
		return 0, false
	}
	return instant.Sub(now).Minutes(), true
}

// Imminent is true inside the lead window of the reference event. Terminating
// trains never get a pre-event reminder.
func Imminent(status domain.TrainStatus, now time.Time, serviceDate string, bounds Bounds) bool {
	if !status.HasReference() || status.Category.IsTerminating() {
		return false
	}

	diff, ok := DiffMinutes(status, now, serviceDate)
	if !ok {
		return false
	}

	if status.Category.IsPassing() {
		return diff >= -float64(bounds.PassingGraceMinutes) && diff <= float64(status.LeadMinutes)
	}
	return diff >= -float64(bounds.LateToleranceMinutes) && diff <= float64(status.LeadMinutes)
}

// Expired is true once today's reference event is strictly in the past.
// A record dated on any other day is never expired.
func Expired(status domain.TrainStatus, now time.Time, serviceDate string) bool {
	if !status.HasReference() {
		return false
	}
	if serviceDate != "" && serviceDate != now.Format(normalize.DateLayout) {
		return false
	}

	instant, ok := ReferenceInstant(status.ReferenceTime, now)
	if !ok {
		return false
	}
	return instant.Before(now)
}

// RoundMinutes is the whole-minute countdown shown on a reminder.
func RoundMinutes(diff float64) int {
	return int(math.Round(diff))
}

func anchorDay(now time.Time, serviceDate string) time.Time {
	if serviceDate == "" {
		return now
	}
	day, err := time.ParseInLocation(normalize.DateLayout, serviceDate, now.Location())
	if err != nil {
		return now
	}
	return day
}
