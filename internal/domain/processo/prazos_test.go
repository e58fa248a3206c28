package processo

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDay(t *testing.T) {
	if IsBusinessDay(date(2026, time.August, 29)) { // Saturday
		t.Error("Saturday is not a business day")
	}
	if IsBusinessDay(date(2026, time.August, 30)) { // Sunday
		t.Error("Sunday is not a business day")
	}
	if !IsBusinessDay(date(2026, time.August, 31)) { // Monday
		t.Error("Monday is a business day")
	}
}

func TestAddBusinessDays(t *testing.T) {
	// Friday + 1 business day lands on Monday.
	fri := date(2026, time.August, 28)
	if got := AddBusinessDays(fri, 1); !got.Equal(date(2026, time.August, 31)) {
		t.Errorf("Friday+1 = %v, want Monday 31", got)
	}
	// A full statutory appeal window spans two weekends.
	if got := AddBusinessDays(fri, RecursoBusinessDays); !got.Equal(date(2026, time.September, 11)) {
		t.Errorf("Friday+10 = %v, want 2026-09-11", got)
	}
	if got := AddBusinessDays(fri, EmbargosBusinessDays); !got.Equal(date(2026, time.September, 4)) {
		t.Errorf("Friday+5 = %v, want 2026-09-04", got)
	}
}

func TestBusinessDaysBetween(t *testing.T) {
	from := date(2026, time.August, 28) // Friday
	to := date(2026, time.September, 4) // next Friday
	if got := BusinessDaysBetween(from, to); got != 5 {
		t.Errorf("BusinessDaysBetween = %d, want 5", got)
	}
	if got := BusinessDaysBetween(to, from); got != 0 {
		t.Errorf("reversed range should count 0, got %d", got)
	}
}

func TestPrazosFromSentenca(t *testing.T) {
	sentenca := date(2026, time.August, 24) // Monday
	if got := PrazoRecursoFrom(sentenca); !got.Equal(date(2026, time.September, 7)) {
		t.Errorf("PrazoRecursoFrom = %v, want 2026-09-07", got)
	}
	if got := PrazoEmbargosFrom(sentenca); !got.Equal(date(2026, time.August, 31)) {
		t.Errorf("PrazoEmbargosFrom = %v, want 2026-08-31", got)
	}
}

//Personal.AI order the ending
