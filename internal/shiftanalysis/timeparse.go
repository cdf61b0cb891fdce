package shiftanalysis

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Off marks a day without a scheduled shift.
const Off = "OFF"

const minutesPerDay = 24 * 60

var (
	// ErrDayOff is returned by ParseShift for the OFF sentinel and for empty values.
	ErrDayOff = errors.New("shiftanalysis: day off")
	// ErrUnparseableTime is returned when a shift value is not a parseable start-end pair.
	ErrUnparseableTime = errors.New("shiftanalysis: unparseable shift time")
)

// clockPattern finds the first clock time in a token. The search is not
// anchored, so surrounding noise such as "~9am" still yields a time.
var clockPattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?(\s*[AP]M)?`)

// TimeRange is a parsed shift expressed as minutes since midnight. An End
// earlier than Start means the shift continues past midnight.
type TimeRange struct {
	Start int
	End   int
}

// Overnight reports whether the shift wraps past midnight.
func (r TimeRange) Overnight() bool {
	return r.End < r.Start
}

// Hours returns the shift length, adding a full day for overnight shifts.
func (r TimeRange) Hours() float64 {
	hours := float64(r.End-r.Start) / 60
	if hours < 0 {
		hours += 24
	}
	return hours
}

// ParseTime converts a clock token such as "9", "9:30", "9:30am" or "12 PM"
// into minutes since midnight.
//
// Tokens without an AM/PM suffix are taken literally as 24-hour clock values,
// so "9" is 09:00 and "22" is 22:00. "12am" is midnight and "12pm" is noon.
// The end-of-day value 24:00 is folded onto minute 0.
func ParseTime(token string) (int, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(token))
	if cleaned == "" {
		return 0, false
	}
	match := clockPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return 0, false
	}

	hours, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	minutes := 0
	if match[2] != "" {
		minutes, err = strconv.Atoi(match[2])
		if err != nil {
			return 0, false
		}
	}

	if period := strings.TrimSpace(match[3]); period != "" {
		if period == "PM" && hours != 12 {
			hours += 12
		}
		if period == "AM" && hours == 12 {
			hours = 0
		}
	}

	if minutes > 59 {
		return 0, false
	}
	total := hours*60 + minutes
	if total == minutesPerDay {
		return 0, true
	}
	if total > minutesPerDay {
		return 0, false
	}
	return total, true
}

// ParseShift splits a "start-end" assignment and parses both halves. Exactly
// one dash is expected; "9-5-1" is rejected.
func ParseShift(value string) (TimeRange, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == Off {
		return TimeRange{}, ErrDayOff
	}

	parts := strings.Split(trimmed, "-")
	if len(parts) != 2 {
		return TimeRange{}, ErrUnparseableTime
	}

	start, ok := ParseTime(parts[0])
	if !ok {
		return TimeRange{}, ErrUnparseableTime
	}
	end, ok := ParseTime(parts[1])
	if !ok {
		return TimeRange{}, ErrUnparseableTime
	}
	return TimeRange{Start: start, End: end}, nil
}
