package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	DateLayout = "2006-01-02"

	// excelEpochOffset is the serial number of 1970-01-01 in spreadsheet day numbering.
	excelEpochOffset = 25569
	millisPerDay     = 86_400_000
)

var (
	isoDatePattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDatePattern    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dashDatePattern     = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	dottedDatePattern   = regexp.MustCompile(`^(\d{4})\.(\d{1,2})\.(\d{1,2})$`)
	monthDayPattern     = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})$`)
	chineseMonthPattern = regexp.MustCompile(`^(\d{1,2})月(\d{1,2})日$`)
)

// Date returns v as YYYY-MM-DD. now supplies "today" and the default year;
// anything unparseable yields now's date.
func Date(v any, now time.Time) string {
	today := now.Format(DateLayout)

	switch t := v.(type) {
	case nil:
		return today
	case time.Time:
		if t.IsZero() {
			return today
		}
		return t.Format(DateLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return today
		}
		return t.Format(DateLayout)
	case float64:
		return dateFromSerial(t, today)
	case float32:
		return dateFromSerial(float64(t), today)
	case int:
		return dateFromSerial(float64(t), today)
	case int64:
		return dateFromSerial(float64(t), today)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return today
		}
		return dateFromSerial(f, today)
	case string:
		if d, ok := dateFromString(strings.TrimSpace(t), now); ok {
			return d
		}
		return today
	default:
		return today
	}
}

// dateFromSerial reads the calendar fields in UTC so the local offset cannot
// shift the day.
func dateFromSerial(serial float64, fallback string) string {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return fallback
	}
	ms := int64(math.Round((serial - excelEpochOffset) * millisPerDay))
	return time.UnixMilli(ms).UTC().Format(DateLayout)
}

func dateFromString(s string, now time.Time) (string, bool) {
	if s == "" {
		return "", false
	}

	if isoDatePattern.MatchString(s) {
		if _, err := time.Parse(DateLayout, s); err == nil {
			return s, true
		}
		return "", false
	}

	if m := slashDatePattern.FindStringSubmatch(s); m != nil {
		return buildDate(m[3], m[1], m[2], now.Location())
	}
	if m := dashDatePattern.FindStringSubmatch(s); m != nil {
		return buildDate(m[3], m[2], m[1], now.Location())
	}
	if m := dottedDatePattern.FindStringSubmatch(s); m != nil {
		return buildDate(m[1], m[2], m[3], now.Location())
	}
	if m := monthDayPattern.FindStringSubmatch(s); m != nil {
		return buildDate(strconv.Itoa(now.Year()), m[1], m[2], now.Location())
	}
	if m := chineseMonthPattern.FindStringSubmatch(s); m != nil {
		return buildDate(strconv.Itoa(now.Year()), m[1], m[2], now.Location())
	}

	parsed, err := dateparse.ParseIn(s, now.Location())
	if err != nil {
		return "", false
	}
	return parsed.In(now.Location()).Format(DateLayout), true
}

// buildDate rejects out-of-range fields instead of letting time.Date roll them over.
func buildDate(year, month, day string, loc *time.Location) (string, bool) {
	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	d, errD := strconv.Atoi(day)
	if errY != nil || errM != nil || errD != nil {
		return "", false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return "", false
	}
	return t.Format(DateLayout), true
}
