// Package normalize turns the time and date encodings found in train and
// passenger records into canonical HH:mm and YYYY-MM-DD strings.
//
// Nothing here fails: input that cannot be understood degrades to an empty
// time or to today's date.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Time returns v as HH:mm, or "" when v carries no usable time-of-day.
// Accepted shapes: an ISO datetime string, an HH:mm string, or a spreadsheet
// day fraction.
func Time(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case domain.TimeValue:
		return Time(t.Raw())
	case *domain.TimeValue:
		if t == nil {
			return ""
		}
		return Time(t.Raw())
	case string:
		return timeFromString(t)
	case float64:
		return timeFromFraction(t)
	case float32:
		return timeFromFraction(float64(t))
	case int:
		return timeFromFraction(float64(t))
	case int64:
		return timeFromFraction(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return ""
		}
		return timeFromFraction(f)
	default:
		return ""
	}
}

// IsClock reports whether s is already canonical HH:mm.
func IsClock(s string) bool {
	return clockPattern.MatchString(s)
}

func timeFromString(s string) string {
	if idx := strings.Index(s, "T"); idx >= 0 {
		rest := s[idx+1:]
		if len(rest) < 5 || !IsClock(rest[:5]) {
			return ""
		}
		return rest[:5]
	}
	if IsClock(s) {
		return s
	}
	return ""
}

func timeFromFraction(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return ""
	}
	totalMinutes := int64(math.Round(f * 24 * 60))
	hours := (totalMinutes / 60) % 24
	minutes := totalMinutes % 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// ClockMinutes converts HH:mm into minutes past midnight.
func ClockMinutes(hhmm string) (int, bool) {
	if !IsClock(hhmm) {
		return 0, false
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
