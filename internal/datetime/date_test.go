package datetime

import "testing"

func TestEpochDayRoundTrip(t *testing.T) {
	dates := []LocalDate{
		{1970, 1, 1},
		{2000, 2, 29},
		{1969, 12, 31},
		{2024, 7, 30},
		{1, 1, 1},
	}
	for _, d := range dates {
		got := FromEpochDay(d.ToEpochDay())
		if got != d {
			t.Errorf("round trip %v -> epoch day %d -> %v", d, d.ToEpochDay(), got)
		}
	}
}

func TestPlusDaysMinusDaysRoundTrip(t *testing.T) {
	d := LocalDate{2024, 3, 15}
	for _, n := range []int64{1, 30, 365, 1000, -1, -400} {
		if got := d.PlusDays(n).MinusDays(n); got != d {
			t.Errorf("plusDays(%d).minusDays(%d) = %v, want %v", n, n, got, d)
		}
	}
}

// TestLeapYearPlusYearsClamp exercises spec.md §8's end-to-end scenario:
// Feb 29 of a leap year, advanced by one non-leap year, clamps to Feb 28
// rather than rolling into March.
func TestLeapYearPlusYearsClamp(t *testing.T) {
	leap := LocalDate{2024, 2, 29}
	got := leap.PlusYears(1)
	want := LocalDate{2025, 2, 28}
	if got != want {
		t.Errorf("2024-02-29 plusYears(1) = %v, want %v", got, want)
	}
}

func TestPlusMonthsEndClamp(t *testing.T) {
	jan31 := LocalDate{2023, 1, 31}
	if got := jan31.PlusMonths(1); got != (LocalDate{2023, 2, 28}) {
		t.Errorf("2023-01-31 plusMonths(1) = %v, want 2023-02-28", got)
	}
}

func TestIsLeapYear(t *testing.T) {
	cases := map[int]bool{2000: true, 1900: false, 2024: true, 2023: false, 2400: true}
	for year, want := range cases {
		if got := IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestDayOfWeekKnownDate(t *testing.T) {
	// 1970-01-01 is a Thursday: 1=Mon..7=Sun, so Thursday=4.
	if got := (LocalDate{1970, 1, 1}).DayOfWeek(); got != 4 {
		t.Errorf("DayOfWeek(1970-01-01) = %d, want 4", got)
	}
	// 1970-01-05 is a Monday.
	if got := (LocalDate{1970, 1, 5}).DayOfWeek(); got != 1 {
		t.Errorf("DayOfWeek(1970-01-05) = %d, want 1", got)
	}
}
