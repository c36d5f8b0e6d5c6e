package datetime

import "fmt"

const nanosPerSecond = 1_000_000_000
const nanosPerMilli = nanosPerSecond / millisPerSecond

// ZonedDateTime pairs a LocalDateTime with a zone identifier, a fixed
// UTC offset (minutes), and whether that offset currently reflects
// daylight saving (spec.md §4.6). Slate models only a fixed offset
// snapshot per value, not a tz-database rule table — resolving a named
// zone to an offset/DST pair on a given date is a front-end/CLI concern
// (spec.md Non-goals: no ISO-8601 parser shipped here).
type ZonedDateTime struct {
	DateTime     LocalDateTime
	ZoneID       string
	OffsetMins   int
	DST          bool
}

// ToInstant converts to an absolute point in time by subtracting the
// offset, the operation that makes two ZonedDateTimes in different
// offsets comparable.
func (z ZonedDateTime) ToInstant() Instant {
	epochDay := z.DateTime.Date.ToEpochDay()
	milliOfDay := z.DateTime.Time.toMilliOfDay()
	totalSecs := epochDay*86400 + milliOfDay/millisPerSecond - int64(z.OffsetMins)*60
	nanos := int(milliOfDay%millisPerSecond) * nanosPerMilli
	return Instant{Seconds: totalSecs, Nanos: nanos}
}

// FromInstant reconstructs a ZonedDateTime at the given fixed offset,
// preserving zoneID/dst as supplied by the caller. No zone table is
// consulted: offsetMins, zoneID and dst are used exactly as passed.
func FromInstant(i Instant, zoneID string, offsetMins int, dst bool) ZonedDateTime {
	total := i.Seconds + int64(offsetMins)*60
	epochDay := total / 86400
	secOfDay := total % 86400
	if secOfDay < 0 {
		secOfDay += 86400
		epochDay--
	}
	milliOfDay := secOfDay*millisPerSecond + int64(i.Nanos/nanosPerMilli)
	return ZonedDateTime{
		DateTime:   LocalDateTime{Date: FromEpochDay(epochDay), Time: fromMilliOfDay(milliOfDay)},
		ZoneID:     zoneID,
		OffsetMins: offsetMins,
		DST:        dst,
	}
}

func (z ZonedDateTime) PlusSeconds(n int64) ZonedDateTime {
	return FromInstant(z.ToInstant().PlusSeconds(n), z.ZoneID, z.OffsetMins, z.DST)
}

func (z ZonedDateTime) Compare(other ZonedDateTime) int {
	return z.ToInstant().Compare(other.ToInstant())
}

func (z ZonedDateTime) String() string {
	sign := "+"
	off := z.OffsetMins
	if off < 0 {
		sign = "-"
		off = -off
	}
	return fmt.Sprintf("%s%s%02d:%02d", z.DateTime.String(), sign, off/60, off%60)
}

// Instant is an absolute point in time: a count of seconds and
// nanoseconds (0-999,999,999) since the Unix epoch, with no calendar or
// zone interpretation attached.
type Instant struct {
	Seconds int64
	Nanos   int
}

func (i Instant) PlusSeconds(n int64) Instant {
	return Instant{Seconds: i.Seconds + n, Nanos: i.Nanos}
}

func (i Instant) PlusNanos(n int64) Instant {
	total := int64(i.Nanos) + n
	secs := i.Seconds + total/nanosPerSecond
	nanos := total % nanosPerSecond
	if nanos < 0 {
		nanos += nanosPerSecond
		secs--
	}
	return Instant{Seconds: secs, Nanos: int(nanos)}
}

func (i Instant) Compare(other Instant) int {
	switch {
	case i.Seconds != other.Seconds:
		if i.Seconds < other.Seconds {
			return -1
		}
		return 1
	case i.Nanos != other.Nanos:
		if i.Nanos < other.Nanos {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Since returns the Duration elapsed from earlier to i.
func (i Instant) Since(earlier Instant) Duration {
	secs := i.Seconds - earlier.Seconds
	nanos := i.Nanos - earlier.Nanos
	return normalizeDuration(secs, nanos)
}

func (i Instant) String() string {
	return fmt.Sprintf("%d.%09ds", i.Seconds, i.Nanos)
}
