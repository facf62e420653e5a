package dates

import (
	"strings"
	"time"

	"github.com/dharmasatrya/travelsearch/internal/models"
)

const (
	defaultLeadDays = 30
	defaultDuration = 7
	weekendDuration = 3
	daysPerMonth    = 30
)

// Resolver turns free-text travel phrases into concrete date ranges. It never
// fails: anything it cannot read falls back to a departure 30 days out.
type Resolver struct {
	now func() time.Time
}

func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now}
}

// match is what a departure rule found. A zero duration leaves the
// duration from the phrase untouched.
type match struct {
	departure time.Time
	duration  int
}

type departureRule func(phrase string, today time.Time) (match, bool)

// Checked in order, first hit wins.
var departureRules = []departureRule{
	nextMonth,
	thisMonth,
	nextWeekend,
	thisWeekend,
	relativeOffset,
	monthName,
}

func (r *Resolver) Resolve(phrase string) models.ParsedDateRange {
	today := dateOf(r.now())
	text := strings.ToLower(strings.Join(strings.Fields(phrase), " "))
	if text == "" {
		return build(today, today.AddDate(0, 0, defaultLeadDays), defaultDuration, false)
	}

	oneWay := isOneWay(text)

	if departure, ret, ok := explicitRange(text, today); ok {
		return build(today, departure, daysBetween(departure, ret)+1, oneWay)
	}

	duration := defaultDuration
	if n, ok := durationPhrase(text); ok {
		duration = n
	}

	departure := today.AddDate(0, 0, defaultLeadDays)
	for _, rule := range departureRules {
		if m, ok := rule(text, today); ok {
			departure = m.departure
			if m.duration > 0 {
				duration = m.duration
			}
			break
		}
	}

	return build(today, departure, duration, oneWay)
}

// build enforces the never-in-the-past rule and derives the return date.
func build(today, departure time.Time, duration int, oneWay bool) models.ParsedDateRange {
	if departure.Before(today) {
		departure = today.AddDate(0, 0, defaultLeadDays)
		duration = defaultDuration
	}
	if duration < 1 {
		duration = 1
	}

	result := models.ParsedDateRange{
		DepartureDate: departure,
		DurationDays:  duration,
		Type:          models.TripRoundTrip,
	}
	if oneWay {
		result.Type = models.TripOneWay
		return result
	}

	ret := departure.AddDate(0, 0, duration-1)
	result.ReturnDate = &ret
	return result
}

func isOneWay(text string) bool {
	return strings.Contains(text, "one way") || strings.Contains(text, "one-way")
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	// Round through UTC so DST shifts do not lose a day.
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
