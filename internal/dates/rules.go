package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthPattern = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

const dateTokenPattern = `\d{1,2}/\d{1,2}(?:/\d{2,4})?|(?:` + monthPattern + `)\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?`

var (
	rangeRe    = regexp.MustCompile(`(` + dateTokenPattern + `)\s*(?:to|-|until|&)\s*(` + dateTokenPattern + `)`)
	numericRe  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?$`)
	namedRe    = regexp.MustCompile(`^(` + monthPattern + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?$`)
	durationRe = regexp.MustCompile(`(\d+)[\s-]*(day|week|month)s?\b`)
	offsetRe   = regexp.MustCompile(`\bin\s+(\d+)\s*(day|week|month)s?\b`)
	monthRe    = regexp.MustCompile(`\b(` + monthPattern + `)\b\.?(?:\s+(\d{1,2})(?:st|nd|rd|th)?\b)?(?:,?\s+(\d{4})\b)?`)
)

// explicitRange reads "<date> to <date>". Both sides must be real calendar
// dates and the return may not precede the departure.
func explicitRange(text string, today time.Time) (time.Time, time.Time, bool) {
	m := rangeRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}

	departure, _, ok := parseDateToken(m[1], today)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	ret, explicitYear, ok := parseDateToken(m[2], today)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if ret.Before(departure) && !explicitYear {
		ret = ret.AddDate(1, 0, 0)
	}
	if ret.Before(departure) {
		return time.Time{}, time.Time{}, false
	}
	return departure, ret, true
}

func parseDateToken(token string, today time.Time) (time.Time, bool, bool) {
	var month, day, year int
	var yearText string

	if m := numericRe.FindStringSubmatch(token); m != nil {
		month, _ = strconv.Atoi(m[1])
		day, _ = strconv.Atoi(m[2])
		yearText = m[3]
	} else if m := namedRe.FindStringSubmatch(token); m != nil {
		month = monthNumber(m[1])
		day, _ = strconv.Atoi(m[2])
		yearText = m[3]
	} else {
		return time.Time{}, false, false
	}

	explicitYear := yearText != ""
	if explicitYear {
		year, _ = strconv.Atoi(yearText)
		if year < 100 {
			year += 2000
		}
	} else {
		year = today.Year()
	}

	date, ok := calendarDate(year, month, day, today.Location())
	if !ok {
		return time.Time{}, false, false
	}
	if !explicitYear && date.Before(today) {
		date = date.AddDate(1, 0, 0)
	}
	return date, explicitYear, true
}

// durationPhrase finds "<n> days|weeks|months". Matches introduced by "in"
// are offsets, not durations, and are skipped.
func durationPhrase(text string) (int, bool) {
	for _, idx := range durationRe.FindAllStringSubmatchIndex(text, -1) {
		prefix := strings.TrimSpace(text[:idx[0]])
		if prefix == "in" || strings.HasSuffix(prefix, " in") {
			continue
		}
		n, err := strconv.Atoi(text[idx[2]:idx[3]])
		if err != nil || n < 1 {
			continue
		}
		switch text[idx[4]:idx[5]] {
		case "week":
			return n * 7, true
		case "month":
			return n * daysPerMonth, true
		default:
			return n, true
		}
	}
	return 0, false
}

func nextMonth(text string, today time.Time) (match, bool) {
	if !strings.Contains(text, "next month") {
		return match{}, false
	}
	first := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
	return match{departure: first}, true
}

func thisMonth(text string, today time.Time) (match, bool) {
	if !strings.Contains(text, "this month") {
		return match{}, false
	}
	if today.Day() == 1 {
		return match{departure: today}, true
	}
	return match{departure: today.AddDate(0, 0, 1)}, true
}

func nextWeekend(text string, today time.Time) (match, bool) {
	if !strings.Contains(text, "next weekend") {
		return match{}, false
	}
	return match{departure: upcomingFriday(today).AddDate(0, 0, 7), duration: weekendDuration}, true
}

func thisWeekend(text string, today time.Time) (match, bool) {
	if !strings.Contains(text, "this weekend") {
		return match{}, false
	}
	return match{departure: upcomingFriday(today), duration: weekendDuration}, true
}

// upcomingFriday is the Friday of the current week, or of next week once
// this week's Friday is behind us.
func upcomingFriday(today time.Time) time.Time {
	friday := today.AddDate(0, 0, int(time.Friday)-int(today.Weekday()))
	if friday.Before(today) {
		friday = friday.AddDate(0, 0, 7)
	}
	return friday
}

func relativeOffset(text string, today time.Time) (match, bool) {
	m := offsetRe.FindStringSubmatch(text)
	if m == nil {
		return match{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return match{}, false
	}
	switch m[2] {
	case "week":
		return match{departure: today.AddDate(0, 0, n*7)}, true
	case "month":
		return match{departure: today.AddDate(0, n, 0)}, true
	default:
		return match{departure: today.AddDate(0, 0, n)}, true
	}
}

func monthName(text string, today time.Time) (match, bool) {
	m := monthRe.FindStringSubmatch(text)
	if m == nil {
		return match{}, false
	}

	day := 1
	if m[2] != "" {
		day, _ = strconv.Atoi(m[2])
	}
	year := today.Year()
	explicitYear := m[3] != ""
	if explicitYear {
		year, _ = strconv.Atoi(m[3])
	}

	date, ok := calendarDate(year, monthNumber(m[1]), day, today.Location())
	if !ok {
		return match{}, false
	}
	if !explicitYear && date.Before(today) {
		date = date.AddDate(1, 0, 0)
	}
	return match{departure: date}, true
}

func monthNumber(name string) int {
	months := []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	for i, prefix := range months {
		if strings.HasPrefix(name, prefix) {
			return i + 1
		}
	}
	return 0
}

// calendarDate rejects dates time.Date would silently normalize, like 2/30.
func calendarDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
