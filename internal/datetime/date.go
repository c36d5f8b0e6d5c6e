// Package datetime implements Slate's date/time algebra (spec.md §4.6):
// LocalDate, LocalTime, LocalDateTime, ZonedDateTime, Instant, Duration,
// and Period. Only the arithmetic and calendar math live here; parsing
// ISO-8601 strings into these types is explicitly out of scope (spec.md
// Non-goals) — callers are expected to construct values field-by-field
// and use String for the ISO-8601 form in the other direction.
package datetime

import "fmt"

// LocalDate is a Gregorian calendar date with no time-of-day or time
// zone component.
type LocalDate struct {
	Year, Month, Day int
}

// daysBeforeMonth[m] is the number of days in a non-leap year before
// the first day of month m (1-indexed).
var daysBeforeMonth = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// IsLeapYear applies the standard Gregorian leap-year rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given year/month,
// accounting for leap years in February.
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	days := [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	return days[month]
}

// ToEpochDay converts d to a day count relative to 1970-01-01, the
// common currency every other calendar computation in this package is
// built from (the same technique java.time's LocalDate.toEpochDay
// uses, via the civil_from_days / days_from_civil algorithm).
func (d LocalDate) ToEpochDay() int64 {
	y := int64(d.Year)
	m := int64(d.Month)
	if m <= 2 {
		y--
	}
	era := y
	if era < 0 {
		era -= 399
	}
	era /= 400
	yoe := y - era*400
	var mp int64
	if m > 2 {
		mp = m - 3
	} else {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + int64(d.Day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// FromEpochDay is the inverse of ToEpochDay.
func FromEpochDay(epochDay int64) LocalDate {
	z := epochDay + 719468
	era := z
	if era < 0 {
		era -= 146096
	}
	era /= 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := doy - (153*mp+2)/5 + 1
	var month int64
	if mp < 10 {
		month = mp + 3
	} else {
		month = mp - 9
	}
	if month <= 2 {
		y++
	}
	return LocalDate{Year: int(y), Month: int(month), Day: int(day)}
}

// New validates and constructs a LocalDate, reporting false for an
// out-of-range month or a day that does not exist in the given
// year/month (e.g. February 30).
func New(year, month, day int) (LocalDate, bool) {
	if month < 1 || month > 12 {
		return LocalDate{}, false
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return LocalDate{}, false
	}
	return LocalDate{Year: year, Month: month, Day: day}, true
}

func (d LocalDate) PlusDays(n int64) LocalDate {
	return FromEpochDay(d.ToEpochDay() + n)
}

// PlusMonths adds n months, clamping the day-of-month into range when
// the target month is shorter (e.g. Jan 31 + 1 month = Feb 28/29, never
// March 2-3) — the "month-end clamp" invariant spec.md §8 tests.
func (d LocalDate) PlusMonths(n int) LocalDate {
	totalMonths := int64(d.Year)*12 + int64(d.Month-1) + int64(n)
	year := totalMonths / 12
	month := totalMonths % 12
	if month < 0 {
		month += 12
		year--
	}
	month++
	day := d.Day
	if max := DaysInMonth(int(year), int(month)); day > max {
		day = max
	}
	return LocalDate{Year: int(year), Month: int(month), Day: day}
}

func (d LocalDate) PlusYears(n int) LocalDate {
	return d.PlusMonths(n * 12)
}

func (d LocalDate) MinusDays(n int64) LocalDate   { return d.PlusDays(-n) }
func (d LocalDate) MinusMonths(n int) LocalDate   { return d.PlusMonths(-n) }
func (d LocalDate) MinusYears(n int) LocalDate    { return d.PlusYears(-n) }

// DayOfWeek returns 1 for Monday through 7 for Sunday, per spec.md
// §4.6 ("1=Mon...7=Sun, derived from epoch-day mod 7 aligned so
// 1970-01-01 is Thursday=4").
func (d LocalDate) DayOfWeek() int {
	ed := d.ToEpochDay()
	return int(((ed+3)%7+7)%7) + 1
}

func (d LocalDate) DayOfYear() int {
	return daysBeforeMonthFor(d.Year, d.Month) + d.Day
}

func daysBeforeMonthFor(year, month int) int {
	n := daysBeforeMonth[month]
	if month > 2 && IsLeapYear(year) {
		n++
	}
	return n
}

func (d LocalDate) Compare(other LocalDate) int {
	a, b := d.ToEpochDay(), other.ToEpochDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
