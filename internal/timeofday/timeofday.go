package timeofday

import (
	"strconv"
	"strings"
	"time"
)

type Bucket string

const (
	Morning   Bucket = "morning"   // [06:00, 12:00)
	Afternoon Bucket = "afternoon" // [12:00, 18:00)
	Evening   Bucket = "evening"   // [18:00, 24:00)
	Night     Bucket = "night"     // [00:00, 06:00)
)

// ParseClock parses a 12-hour clock string such as "9:45 AM" or "12:00 PM"
// into a 24-hour value. Noon maps to 12, midnight to 0.
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)

	formats := []string{
		"3:04 PM",
		"03:04 PM",
		"3:04PM",
		"15:04",
	}
	for _, format := range formats {
		if t, perr := time.Parse(format, strings.ToUpper(s)); perr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}

	return 0, 0, &time.ParseError{
		Value:   s,
		Message: "unable to parse clock string",
	}
}

func BucketFor(hour int) Bucket {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	case hour >= 18:
		return Evening
	default:
		return Night
	}
}

// ParseStops normalizes a human-readable stop descriptor ("Non-stop",
// "1 stop", "2 stops", "3+") to an integer stop count. Unrecognized
// descriptors count as nonstop.
func ParseStops(descriptor string) int {
	d := strings.ToLower(strings.TrimSpace(descriptor))
	if d == "" || strings.Contains(d, "non") || strings.Contains(d, "direct") {
		return 0
	}

	digits := ""
	for _, r := range d {
		if r >= '0' && r <= '9' {
			digits += string(r)
		} else if digits != "" {
			break
		}
	}
	if digits == "" {
		return 0
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
