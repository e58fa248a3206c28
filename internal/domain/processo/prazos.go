package processo

import "time"

// Statutory post-sentence windows, counted in business days.
const (
	RecursoBusinessDays  = 10
	EmbargosBusinessDays = 5
)

// IsBusinessDay reports whether t falls on a weekday.  Court holidays are not
// modelled; the computed deadline is a lower bound the user can adjust.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// AddBusinessDays returns the date that is n business days after start,
// skipping weekends.
func AddBusinessDays(start time.Time, n int) time.Time {
	t := start
	for added := 0; added < n; {
		t = t.AddDate(0, 0, 1)
		if IsBusinessDay(t) {
			added++
		}
	}
	return t
}

// BusinessDaysBetween counts the business days in (from, to].
func BusinessDaysBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	n := 0
	for t := from.AddDate(0, 0, 1); !t.After(to); t = t.AddDate(0, 0, 1) {
		if IsBusinessDay(t) {
			n++
		}
	}
	return n
}

// PrazoRecursoFrom computes the appeal deadline from the sentence date.
func PrazoRecursoFrom(sentenca time.Time) time.Time {
	return AddBusinessDays(sentenca, RecursoBusinessDays)
}

// PrazoEmbargosFrom computes the embargos deadline from the sentence date.
func PrazoEmbargosFrom(sentenca time.Time) time.Time {
	return AddBusinessDays(sentenca, EmbargosBusinessDays)
}

//Personal.AI order the ending
