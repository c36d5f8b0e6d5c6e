package datetime

import "testing"

func TestDurationNanosShareSignWithSeconds(t *testing.T) {
	d := normalizeDuration(0, -1_500_000_000)
	if d.Seconds >= 0 || d.Nanos > 0 {
		t.Errorf("normalizeDuration(0, -1.5s) = %+v, want negative seconds and non-positive nanos", d)
	}
	if d.Seconds != -1 || d.Nanos != -500_000_000 {
		t.Errorf("normalizeDuration(0, -1.5s) = %+v, want {-1 -500000000}", d)
	}
}

func TestDurationPlusMinusRoundTrip(t *testing.T) {
	d := OfSeconds(10).PlusNanos(500_000_000)
	got := d.Plus(d.Negated())
	if !got.IsZero() {
		t.Errorf("d + (-d) = %+v, want zero", got)
	}
}

func TestPeriodAddToClampsMonthEnd(t *testing.T) {
	d := LocalDate{2023, 1, 31}
	p := Period{Months: 1}
	if got := p.AddTo(d); got != (LocalDate{2023, 2, 28}) {
		t.Errorf("Period{Months:1}.AddTo(2023-01-31) = %v, want 2023-02-28", got)
	}
}
