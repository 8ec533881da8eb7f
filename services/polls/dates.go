package polls

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var monthsByPrefix = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

func monthNumber(name string) (int, bool) {
	name = strings.ToLower(name)
	if len(name) < 3 {
		return 0, false
	}
	m, ok := monthsByPrefix[name[:3]]
	return m, ok
}

var fieldworkRangeRegex = regexp.MustCompile(
	`(?i)([A-Za-z]{3,9})\.?\s+(\d{1,2})\s*(?:[-–—]|through|to)\s*(?:([A-Za-z]{3,9})\.?\s+)?(\d{1,2}),?\s*(\d{4})`)

var fieldworkSingleRegex = regexp.MustCompile(
	`(?i)([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s*(\d{4})`)

// ParseFieldwork turns a raw fieldwork/date string into ISO start
// and end dates. Tried in order: a "Month D - Month D, YYYY" range
// (both dates take the trailing year), then a single "Month D, YYYY"
// used for both ends. Anything else yields empty strings: a poll with
// an unparseable window is kept, it just sorts after dated polls.
func ParseFieldwork(raw string) (start, end string) {
	if m := fieldworkRangeRegex.FindStringSubmatch(raw); m != nil {
		startMonth, okStart := monthNumber(m[1])
		endMonth, okEnd := startMonth, okStart
		if m[3] != "" {
			endMonth, okEnd = monthNumber(m[3])
		}
		if okStart && okEnd {
			startDay, _ := strconv.Atoi(m[2])
			endDay, _ := strconv.Atoi(m[4])
			year, _ := strconv.Atoi(m[5])
			if validDay(startDay) && validDay(endDay) {
				return isoDate(year, startMonth, startDay), isoDate(year, endMonth, endDay)
			}
		}
	}

	if m := fieldworkSingleRegex.FindStringSubmatch(raw); m != nil {
		month, ok := monthNumber(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if ok && validDay(day) {
			d := isoDate(year, month, day)
			return d, d
		}
	}

	return "", ""
}

func validDay(d int) bool { return d >= 1 && d <= 31 }

func isoDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
