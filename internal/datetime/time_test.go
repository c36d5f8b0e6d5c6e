package datetime

import "testing"

func TestLocalTimeWrapsDiscardingCarry(t *testing.T) {
	// 23:00:00 plus 2 hours wraps to 01:00:00, discarding the day carry
	// per OQ-1 (SPEC_FULL.md §9): LocalTime has no date field to carry into.
	tm := LocalTime{Hour: 23, Minute: 0, Second: 0}
	got := tm.PlusHours(2)
	want := LocalTime{Hour: 1, Minute: 0, Second: 0}
	if got != want {
		t.Errorf("23:00:00 plusHours(2) = %v, want %v", got, want)
	}
}

func TestLocalTimeNegativeWrap(t *testing.T) {
	tm := LocalTime{Hour: 0, Minute: 30, Second: 0}
	got := tm.MinusHours(1)
	want := LocalTime{Hour: 23, Minute: 30, Second: 0}
	if got != want {
		t.Errorf("00:30:00 minusHours(1) = %v, want %v", got, want)
	}
}

func TestLocalDateTimeCarriesIntoDate(t *testing.T) {
	dt := LocalDateTime{Date: LocalDate{2024, 1, 1}, Time: LocalTime{Hour: 23}}
	got := dt.PlusHours(2)
	want := LocalDateTime{Date: LocalDate{2024, 1, 2}, Time: LocalTime{Hour: 1}}
	if got != want {
		t.Errorf("2024-01-01T23:00 plusHours(2) = %v, want %v", got, want)
	}
}
