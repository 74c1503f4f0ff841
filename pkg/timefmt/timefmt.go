// Package timefmt converts between the 24-hour strings used by form
// controls and the 12-hour strings stored on bus records, and computes
// trip durations with overnight rollover.
//
// Malformed or empty input is passed through unchanged rather than
// rejected: stored records predating input validation already contain
// strings in either format, and screens re-parse them freely.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// To12Hour converts a 24-hour "HH:MM" string to "H:MM AM" / "H:MM PM".
// Input that does not parse is returned unchanged.
func To12Hour(hhmm string) string {
	hour, minute, ok := parse24(hhmm)
	if !ok {
		return hhmm
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour12, minute, suffix)
}

// To24Hour converts a 12-hour "H:MM AM|PM" string to "HH:MM".
// Input that does not parse is returned unchanged.
func To24Hour(h12 string) string {
	hour, minute, ok := parse12(h12)
	if !ok {
		return h12
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// Duration computes the elapsed trip time between two 12-hour clock
// strings, formatted "Xh Ym". An arrival at or before the departure is
// treated as next-day: equal times mean a full 24-hour trip, never a
// zero-length one. Returns "" when either time does not parse.
func Duration(dep12, arr12 string) string {
	depMin, depOK := minutesOfDay(dep12)
	arrMin, arrOK := minutesOfDay(arr12)
	if !depOK || !arrOK {
		return ""
	}

	if arrMin <= depMin {
		arrMin += 24 * 60
	}

	delta := arrMin - depMin
	return fmt.Sprintf("%dh %dm", delta/60, delta%60)
}

func minutesOfDay(h12 string) (int, bool) {
	hour, minute, ok := parse12(h12)
	if !ok {
		return 0, false
	}
	return hour*60 + minute, true
}

func parse24(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}

	return hour, minute, true
}

func parse12(s string) (hour, minute int, ok bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, false
	}

	suffix := strings.ToUpper(fields[1])
	if suffix != "AM" && suffix != "PM" {
		return 0, 0, false
	}

	parts := strings.Split(fields[0], ":")
	if len(parts) != 2 {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, false
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}

	if suffix == "AM" && hour == 12 {
		hour = 0
	}
	if suffix == "PM" && hour != 12 {
		hour += 12
	}

	return hour, minute, true
}
