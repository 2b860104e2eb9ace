package medicationreminder

import (
	"fmt"
	"strconv"
	"strings"
)

// parseDoseTime parses one timesOfDay entry ("08:00", "8:30 PM", "12:15am")
// into 24-hour clock values. AM/PM normalization: 12 AM is hour 0, 12 PM
// stays 12, any other PM hour gains 12.
func parseDoseTime(entry string) (hour, minute int, err error) {
	s := strings.TrimSpace(entry)
	if s == "" {
		return 0, 0, fmt.Errorf("empty dose time")
	}

	meridiem := ""
	upper := strings.ToUpper(s)
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(upper, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("dose time %q is not HH:MM", entry)
	}

	hour, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("dose time %q has invalid hour", entry)
	}
	minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("dose time %q has invalid minute", entry)
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("dose time %q minute out of range", entry)
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("dose time %q hour out of range", entry)
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("dose time %q hour out of range", entry)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, 0, fmt.Errorf("dose time %q hour out of range", entry)
		}
	}

	return hour, minute, nil
}
