package datetime

import "fmt"

const millisPerSecond = 1000
const millisPerDay = int64(24) * 60 * 60 * millisPerSecond

// LocalTime is a time-of-day with millisecond resolution and no date or
// zone component, per spec.md §4.6 ("hour 0-23, minute 0-59, second
// 0-59, millis 0-999").
type LocalTime struct {
	Hour, Minute, Second, Millis int
}

// New2 validates and constructs a LocalTime. (Named New2 to avoid
// colliding with LocalDate's New in this package's flat namespace.)
func New2(hour, minute, second, millis int) (LocalTime, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 ||
		millis < 0 || millis > 999 {
		return LocalTime{}, false
	}
	return LocalTime{Hour: hour, Minute: minute, Second: second, Millis: millis}, true
}

func (t LocalTime) toMilliOfDay() int64 {
	return int64(t.Hour)*3600*millisPerSecond + int64(t.Minute)*60*millisPerSecond +
		int64(t.Second)*millisPerSecond + int64(t.Millis)
}

func fromMilliOfDay(n int64) LocalTime {
	hour := n / (3600 * millisPerSecond)
	n -= hour * 3600 * millisPerSecond
	minute := n / (60 * millisPerSecond)
	n -= minute * 60 * millisPerSecond
	second := n / millisPerSecond
	n -= second * millisPerSecond
	return LocalTime{Hour: int(hour), Minute: int(minute), Second: int(second), Millis: int(n)}
}

// wrapMilliOfDay reduces n modulo one day, always returning a
// non-negative millisecond-of-day. This is the "discard the day carry"
// rule OQ-1 (SPEC_FULL.md §9) settles on: LocalTime has no date
// component to carry into, so overflow past midnight simply wraps.
func wrapMilliOfDay(n int64) int64 {
	n %= millisPerDay
	if n < 0 {
		n += millisPerDay
	}
	return n
}

func (t LocalTime) PlusHours(n int64) LocalTime {
	return fromMilliOfDay(wrapMilliOfDay(t.toMilliOfDay() + n*3600*millisPerSecond))
}

func (t LocalTime) PlusMinutes(n int64) LocalTime {
	return fromMilliOfDay(wrapMilliOfDay(t.toMilliOfDay() + n*60*millisPerSecond))
}

func (t LocalTime) PlusSeconds(n int64) LocalTime {
	return fromMilliOfDay(wrapMilliOfDay(t.toMilliOfDay() + n*millisPerSecond))
}

func (t LocalTime) PlusMillis(n int64) LocalTime {
	return fromMilliOfDay(wrapMilliOfDay(t.toMilliOfDay() + n))
}

func (t LocalTime) MinusHours(n int64) LocalTime   { return t.PlusHours(-n) }
func (t LocalTime) MinusMinutes(n int64) LocalTime { return t.PlusMinutes(-n) }
func (t LocalTime) MinusSeconds(n int64) LocalTime { return t.PlusSeconds(-n) }
func (t LocalTime) MinusMillis(n int64) LocalTime  { return t.PlusMillis(-n) }

func (t LocalTime) Compare(other LocalTime) int {
	a, b := t.toMilliOfDay(), other.toMilliOfDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (t LocalTime) String() string {
	if t.Millis == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour, t.Minute, t.Second, t.Millis)
}

// --- LocalDateTime: a LocalDate and LocalTime pair. Unlike bare
// LocalTime, adding hours/minutes/seconds here carries into the date
// component instead of wrapping — OQ-1's "discard the carry" resolution
// is specific to LocalTime alone, which has nowhere to carry into. ---

type LocalDateTime struct {
	Date LocalDate
	Time LocalTime
}

func (dt LocalDateTime) toEpochMilli() (epochDay int64, milliOfDay int64) {
	return dt.Date.ToEpochDay(), dt.Time.toMilliOfDay()
}

func fromEpochMilli(epochDay, milliOfDay int64) LocalDateTime {
	if milliOfDay < 0 {
		days := (-milliOfDay-1)/millisPerDay + 1
		epochDay -= days
		milliOfDay += days * millisPerDay
	} else if milliOfDay >= millisPerDay {
		days := milliOfDay / millisPerDay
		epochDay += days
		milliOfDay -= days * millisPerDay
	}
	return LocalDateTime{Date: FromEpochDay(epochDay), Time: fromMilliOfDay(milliOfDay)}
}

func (dt LocalDateTime) PlusDays(n int64) LocalDateTime {
	return LocalDateTime{Date: dt.Date.PlusDays(n), Time: dt.Time}
}

func (dt LocalDateTime) PlusMonths(n int) LocalDateTime {
	return LocalDateTime{Date: dt.Date.PlusMonths(n), Time: dt.Time}
}

func (dt LocalDateTime) PlusYears(n int) LocalDateTime {
	return LocalDateTime{Date: dt.Date.PlusYears(n), Time: dt.Time}
}

func (dt LocalDateTime) PlusHours(n int64) LocalDateTime {
	ed, mod := dt.toEpochMilli()
	return fromEpochMilli(ed, mod+n*3600*millisPerSecond)
}

func (dt LocalDateTime) PlusMinutes(n int64) LocalDateTime {
	ed, mod := dt.toEpochMilli()
	return fromEpochMilli(ed, mod+n*60*millisPerSecond)
}

func (dt LocalDateTime) PlusSeconds(n int64) LocalDateTime {
	ed, mod := dt.toEpochMilli()
	return fromEpochMilli(ed, mod+n*millisPerSecond)
}

func (dt LocalDateTime) Compare(other LocalDateTime) int {
	if c := dt.Date.Compare(other.Date); c != 0 {
		return c
	}
	return dt.Time.Compare(other.Time)
}

func (dt LocalDateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}
