package value

import "github.com/edadma/slate/internal/datetime"

// Each date/time kind wraps its internal/datetime struct in a tiny
// refcounted heap box. A box, not an inline struct field on Value
// itself, keeps Value's size fixed regardless of how many date/time
// kinds exist — the same reason String/Array/Object go through heap
// rather than widening Value's primitive fields.
type dateBox struct {
	d    datetime.LocalDate
	refs int32
}

func (b *dateBox) retain()  { b.refs++ }
func (b *dateBox) release() { b.refs-- }

func LocalDate(d datetime.LocalDate) Value {
	return Value{kind: KindLocalDate, heap: &dateBox{d: d, refs: 1}}
}

func (v Value) AsLocalDate() datetime.LocalDate { return v.heap.(*dateBox).d }

type timeBox struct {
	t    datetime.LocalTime
	refs int32
}

func (b *timeBox) retain()  { b.refs++ }
func (b *timeBox) release() { b.refs-- }

func LocalTime(t datetime.LocalTime) Value {
	return Value{kind: KindLocalTime, heap: &timeBox{t: t, refs: 1}}
}

func (v Value) AsLocalTime() datetime.LocalTime { return v.heap.(*timeBox).t }

type dateTimeBox struct {
	dt   datetime.LocalDateTime
	refs int32
}

func (b *dateTimeBox) retain()  { b.refs++ }
func (b *dateTimeBox) release() { b.refs-- }

func LocalDateTime(dt datetime.LocalDateTime) Value {
	return Value{kind: KindLocalDateTime, heap: &dateTimeBox{dt: dt, refs: 1}}
}

func (v Value) AsLocalDateTime() datetime.LocalDateTime { return v.heap.(*dateTimeBox).dt }

type zonedBox struct {
	z    datetime.ZonedDateTime
	refs int32
}

func (b *zonedBox) retain()  { b.refs++ }
func (b *zonedBox) release() { b.refs-- }

func ZonedDateTime(z datetime.ZonedDateTime) Value {
	return Value{kind: KindZonedDateTime, heap: &zonedBox{z: z, refs: 1}}
}

func (v Value) AsZonedDateTime() datetime.ZonedDateTime { return v.heap.(*zonedBox).z }

type instantBox struct {
	i    datetime.Instant
	refs int32
}

func (b *instantBox) retain()  { b.refs++ }
func (b *instantBox) release() { b.refs-- }

func Instant(i datetime.Instant) Value {
	return Value{kind: KindInstant, heap: &instantBox{i: i, refs: 1}}
}

func (v Value) AsInstant() datetime.Instant { return v.heap.(*instantBox).i }

type durationBox struct {
	d    datetime.Duration
	refs int32
}

func (b *durationBox) retain()  { b.refs++ }
func (b *durationBox) release() { b.refs-- }

func Duration(d datetime.Duration) Value {
	return Value{kind: KindDuration, heap: &durationBox{d: d, refs: 1}}
}

func (v Value) AsDuration() datetime.Duration { return v.heap.(*durationBox).d }

type periodBox struct {
	p    datetime.Period
	refs int32
}

func (b *periodBox) retain()  { b.refs++ }
func (b *periodBox) release() { b.refs-- }

func Period(p datetime.Period) Value {
	return Value{kind: KindPeriod, heap: &periodBox{p: p, refs: 1}}
}

func (v Value) AsPeriod() datetime.Period { return v.heap.(*periodBox).p }
