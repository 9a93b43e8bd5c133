package services

import (
	"strconv"
	"strings"
)

// ParseClock converts "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds are accepted but ignored. Empty or unparsable input yields false.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, false
		}
	}

	return hours*60 + minutes, true
}

// Penalty scores an arrival against a delivery deadline.
//
//   - no deadline, or arrival <= end:   on time, no lateness
//   - end < arrival <= end+tolerance:   on time (grace band), lateness recorded
//   - arrival > end+tolerance:          late
func Penalty(arrival float64, windowEnd int, hasWindow bool, tolerance float64) (bool, float64) {
	if !hasWindow {
		return true, 0
	}

	end := float64(windowEnd)
	if arrival <= end {
		return true, 0
	}
	if arrival <= end+tolerance {
		return true, arrival - end
	}
	return false, arrival - end
}
