package builtins

import (
	"github.com/edadma/slate/internal/datetime"
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

func requireInt64(v value.Value, who string) (int64, error) {
	switch v.Kind() {
	case value.KindInt32:
		return int64(v.AsInt32()), nil
	case value.KindBigInt:
		b := v.AsBigInt().Big()
		if !b.IsInt64() {
			return 0, vmerr.Domainf("%s: value out of range", who)
		}
		return b.Int64(), nil
	default:
		return 0, vmerr.Typef("%s expects an Int, got %s", who, v.TypeName())
	}
}

// registerLocalDateClass installs LocalDate's constructor and the
// plus/minus calendar algebra (spec.md §8 scenario 5:
// LocalDate(2024,2,29).plusYears(1).toString() -> "2025-02-28").
func registerLocalDateClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "LocalDate", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 3, "LocalDate"); err != nil {
			return value.Value{}, err
		}
		y, err := requireInt(args[0], "LocalDate")
		if err != nil {
			return value.Value{}, err
		}
		m, err := requireInt(args[1], "LocalDate")
		if err != nil {
			return value.Value{}, err
		}
		d, err := requireInt(args[2], "LocalDate")
		if err != nil {
			return value.Value{}, err
		}
		date, ok := datetime.New(y, m, d)
		if !ok {
			return value.Value{}, vmerr.Domainf("LocalDate: %04d-%02d-%02d is not a valid date", y, m, d)
		}
		return value.LocalDate(date), nil
	}

	cls.Methods["year"] = method("year", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsLocalDate().Year)), nil
	})
	cls.Methods["month"] = method("month", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsLocalDate().Month)), nil
	})
	cls.Methods["day"] = method("day", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsLocalDate().Day)), nil
	})
	cls.Methods["dayOfWeek"] = method("dayOfWeek", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsLocalDate().DayOfWeek())), nil
	})
	cls.Methods["dayOfYear"] = method("dayOfYear", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsLocalDate().DayOfYear())), nil
	})
	cls.Methods["plusDays"] = method("plusDays", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusDays")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDate(args[0].AsLocalDate().PlusDays(n)), nil
	})
	cls.Methods["plusMonths"] = method("plusMonths", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "plusMonths")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDate(args[0].AsLocalDate().PlusMonths(n)), nil
	})
	cls.Methods["plusYears"] = method("plusYears", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "plusYears")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDate(args[0].AsLocalDate().PlusYears(n)), nil
	})
	cls.Methods["minusDays"] = method("minusDays", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "minusDays")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDate(args[0].AsLocalDate().MinusDays(n)), nil
	})
	cls.Methods["minusMonths"] = method("minusMonths", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "minusMonths")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDate(args[0].AsLocalDate().MinusMonths(n)), nil
	})
	cls.Methods["minusYears"] = method("minusYears", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "minusYears")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDate(args[0].AsLocalDate().MinusYears(n)), nil
	})
	cls.Methods["plus"] = method("plus", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindPeriod {
			return value.Value{}, vmerr.Typef("plus expects a Period, got %s", args[1].TypeName())
		}
		return value.LocalDate(args[1].AsPeriod().AddTo(args[0].AsLocalDate())), nil
	})
	cls.Methods["compareTo"] = method("compareTo", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindLocalDate {
			return value.Value{}, vmerr.Typef("compareTo expects a LocalDate, got %s", args[1].TypeName())
		}
		return value.Int32(int32(args[0].AsLocalDate().Compare(args[1].AsLocalDate()))), nil
	})
	cls.Methods["toString"] = method("toString", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.String(args[0].AsLocalDate().String()), nil
	})

	return cls
}

// registerLocalTimeClass installs LocalTime's constructor and
// millisecond-resolution time-of-day algebra.
func registerLocalTimeClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "LocalTime", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 4, "LocalTime"); err != nil {
			return value.Value{}, err
		}
		h, err := requireInt(args[0], "LocalTime")
		if err != nil {
			return value.Value{}, err
		}
		mi, err := requireInt(args[1], "LocalTime")
		if err != nil {
			return value.Value{}, err
		}
		s, err := requireInt(args[2], "LocalTime")
		if err != nil {
			return value.Value{}, err
		}
		ms, err := requireInt(args[3], "LocalTime")
		if err != nil {
			return value.Value{}, err
		}
		t, ok := datetime.New2(h, mi, s, ms)
		if !ok {
			return value.Value{}, vmerr.Domainf("LocalTime: %02d:%02d:%02d.%03d is not a valid time", h, mi, s, ms)
		}
		return value.LocalTime(t), nil
	}

	cls.Methods["hour"] = method("hour", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsLocalTime().Hour)), nil
	})
	cls.Methods["minute"] = method("minute", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsLocalTime().Minute)), nil
	})
	cls.Methods["second"] = method("second", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsLocalTime().Second)), nil
	})
	cls.Methods["millis"] = method("millis", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsLocalTime().Millis)), nil
	})
	cls.Methods["plusHours"] = method("plusHours", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusHours")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalTime(args[0].AsLocalTime().PlusHours(n)), nil
	})
	cls.Methods["plusMinutes"] = method("plusMinutes", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusMinutes")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalTime(args[0].AsLocalTime().PlusMinutes(n)), nil
	})
	cls.Methods["plusSeconds"] = method("plusSeconds", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusSeconds")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalTime(args[0].AsLocalTime().PlusSeconds(n)), nil
	})
	cls.Methods["plusMillis"] = method("plusMillis", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusMillis")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalTime(args[0].AsLocalTime().PlusMillis(n)), nil
	})
	cls.Methods["minusHours"] = method("minusHours", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "minusHours")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalTime(args[0].AsLocalTime().MinusHours(n)), nil
	})
	cls.Methods["minusMinutes"] = method("minusMinutes", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "minusMinutes")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalTime(args[0].AsLocalTime().MinusMinutes(n)), nil
	})
	cls.Methods["minusSeconds"] = method("minusSeconds", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "minusSeconds")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalTime(args[0].AsLocalTime().MinusSeconds(n)), nil
	})
	cls.Methods["minusMillis"] = method("minusMillis", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "minusMillis")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalTime(args[0].AsLocalTime().MinusMillis(n)), nil
	})
	cls.Methods["compareTo"] = method("compareTo", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindLocalTime {
			return value.Value{}, vmerr.Typef("compareTo expects a LocalTime, got %s", args[1].TypeName())
		}
		return value.Int32(int32(args[0].AsLocalTime().Compare(args[1].AsLocalTime()))), nil
	})
	cls.Methods["toString"] = method("toString", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.String(args[0].AsLocalTime().String()), nil
	})

	return cls
}

// registerLocalDateTimeClass installs LocalDateTime, pairing a
// LocalDate and LocalTime with combined arithmetic.
func registerLocalDateTimeClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "LocalDateTime", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 2, "LocalDateTime"); err != nil {
			return value.Value{}, err
		}
		if args[0].Kind() != value.KindLocalDate {
			return value.Value{}, vmerr.Typef("LocalDateTime expects a LocalDate, got %s", args[0].TypeName())
		}
		if args[1].Kind() != value.KindLocalTime {
			return value.Value{}, vmerr.Typef("LocalDateTime expects a LocalTime, got %s", args[1].TypeName())
		}
		return value.LocalDateTime(datetime.LocalDateTime{Date: args[0].AsLocalDate(), Time: args[1].AsLocalTime()}), nil
	}

	cls.Methods["date"] = method("date", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.LocalDate(args[0].AsLocalDateTime().Date), nil
	})
	cls.Methods["time"] = method("time", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.LocalTime(args[0].AsLocalDateTime().Time), nil
	})
	cls.Methods["plusDays"] = method("plusDays", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusDays")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDateTime(args[0].AsLocalDateTime().PlusDays(n)), nil
	})
	cls.Methods["plusMonths"] = method("plusMonths", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "plusMonths")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDateTime(args[0].AsLocalDateTime().PlusMonths(n)), nil
	})
	cls.Methods["plusYears"] = method("plusYears", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "plusYears")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDateTime(args[0].AsLocalDateTime().PlusYears(n)), nil
	})
	cls.Methods["plusHours"] = method("plusHours", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusHours")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDateTime(args[0].AsLocalDateTime().PlusHours(n)), nil
	})
	cls.Methods["plusMinutes"] = method("plusMinutes", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusMinutes")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDateTime(args[0].AsLocalDateTime().PlusMinutes(n)), nil
	})
	cls.Methods["plusSeconds"] = method("plusSeconds", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusSeconds")
		if err != nil {
			return value.Value{}, err
		}
		return value.LocalDateTime(args[0].AsLocalDateTime().PlusSeconds(n)), nil
	})
	cls.Methods["compareTo"] = method("compareTo", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindLocalDateTime {
			return value.Value{}, vmerr.Typef("compareTo expects a LocalDateTime, got %s", args[1].TypeName())
		}
		return value.Int32(int32(args[0].AsLocalDateTime().Compare(args[1].AsLocalDateTime()))), nil
	})
	cls.Methods["toString"] = method("toString", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.String(args[0].AsLocalDateTime().String()), nil
	})

	return cls
}

// registerZonedDateTimeClass installs ZonedDateTime, a LocalDateTime
// paired with a zone id/offset/DST snapshot (spec.md §4.6 — no tz-
// database lookup; callers supply the offset directly).
func registerZonedDateTimeClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "ZonedDateTime", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 4, "ZonedDateTime"); err != nil {
			return value.Value{}, err
		}
		if args[0].Kind() != value.KindLocalDateTime {
			return value.Value{}, vmerr.Typef("ZonedDateTime expects a LocalDateTime, got %s", args[0].TypeName())
		}
		if !args[1].IsString() {
			return value.Value{}, vmerr.Typef("ZonedDateTime expects a String zone id, got %s", args[1].TypeName())
		}
		offset, err := requireInt(args[2], "ZonedDateTime")
		if err != nil {
			return value.Value{}, err
		}
		if args[3].Kind() != value.KindBool {
			return value.Value{}, vmerr.Typef("ZonedDateTime expects a Boolean dst flag, got %s", args[3].TypeName())
		}
		return value.ZonedDateTime(datetime.ZonedDateTime{
			DateTime:   args[0].AsLocalDateTime(),
			ZoneID:     args[1].AsString(),
			OffsetMins: offset,
			DST:        args[3].AsBool(),
		}), nil
	}

	cls.Methods["dateTime"] = method("dateTime", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.LocalDateTime(args[0].AsZonedDateTime().DateTime), nil
	})
	cls.Methods["zoneId"] = method("zoneId", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.String(args[0].AsZonedDateTime().ZoneID), nil
	})
	cls.Methods["offsetMinutes"] = method("offsetMinutes", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsZonedDateTime().OffsetMins)), nil
	})
	cls.Methods["isDst"] = method("isDst", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].AsZonedDateTime().DST), nil
	})
	cls.Methods["toInstant"] = method("toInstant", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Instant(args[0].AsZonedDateTime().ToInstant()), nil
	})
	cls.Methods["plusSeconds"] = method("plusSeconds", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusSeconds")
		if err != nil {
			return value.Value{}, err
		}
		return value.ZonedDateTime(args[0].AsZonedDateTime().PlusSeconds(n)), nil
	})
	cls.Methods["compareTo"] = method("compareTo", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindZonedDateTime {
			return value.Value{}, vmerr.Typef("compareTo expects a ZonedDateTime, got %s", args[1].TypeName())
		}
		return value.Int32(int32(args[0].AsZonedDateTime().Compare(args[1].AsZonedDateTime()))), nil
	})
	cls.Methods["toString"] = method("toString", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.String(args[0].AsZonedDateTime().String()), nil
	})

	return cls
}

// registerInstantClass installs Instant, an absolute (seconds, nanos)
// point in time with no calendar interpretation.
func registerInstantClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "Instant", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 2, "Instant"); err != nil {
			return value.Value{}, err
		}
		secs, err := requireInt64(args[0], "Instant")
		if err != nil {
			return value.Value{}, err
		}
		nanos, err := requireInt(args[1], "Instant")
		if err != nil {
			return value.Value{}, err
		}
		return value.Instant(datetime.Instant{Seconds: secs, Nanos: nanos}), nil
	}

	cls.Methods["seconds"] = method("seconds", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsInstant().Seconds)), nil
	})
	cls.Methods["nanos"] = method("nanos", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsInstant().Nanos)), nil
	})
	cls.Methods["plusSeconds"] = method("plusSeconds", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusSeconds")
		if err != nil {
			return value.Value{}, err
		}
		return value.Instant(args[0].AsInstant().PlusSeconds(n)), nil
	})
	cls.Methods["plusNanos"] = method("plusNanos", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt64(args[1], "plusNanos")
		if err != nil {
			return value.Value{}, err
		}
		return value.Instant(args[0].AsInstant().PlusNanos(n)), nil
	})
	cls.Methods["since"] = method("since", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindInstant {
			return value.Value{}, vmerr.Typef("since expects an Instant, got %s", args[1].TypeName())
		}
		return value.Duration(args[0].AsInstant().Since(args[1].AsInstant())), nil
	})
	cls.Methods["compareTo"] = method("compareTo", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindInstant {
			return value.Value{}, vmerr.Typef("compareTo expects an Instant, got %s", args[1].TypeName())
		}
		return value.Int32(int32(args[0].AsInstant().Compare(args[1].AsInstant()))), nil
	})
	cls.Methods["toString"] = method("toString", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.String(args[0].AsInstant().String()), nil
	})

	return cls
}

// registerDurationClass installs Duration, an exact (seconds, nanos)
// span of time.
func registerDurationClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "Duration", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "Duration"); err != nil {
			return value.Value{}, err
		}
		secs, err := requireInt64(args[0], "Duration")
		if err != nil {
			return value.Value{}, err
		}
		return value.Duration(datetime.OfSeconds(secs)), nil
	}

	cls.Methods["seconds"] = method("seconds", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsDuration().Seconds)), nil
	})
	cls.Methods["nanos"] = method("nanos", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsDuration().Nanos)), nil
	})
	cls.Methods["plus"] = method("plus", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindDuration {
			return value.Value{}, vmerr.Typef("plus expects a Duration, got %s", args[1].TypeName())
		}
		return value.Duration(args[0].AsDuration().Plus(args[1].AsDuration())), nil
	})
	cls.Methods["minus"] = method("minus", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindDuration {
			return value.Value{}, vmerr.Typef("minus expects a Duration, got %s", args[1].TypeName())
		}
		return value.Duration(args[0].AsDuration().Minus(args[1].AsDuration())), nil
	})
	cls.Methods["negated"] = method("negated", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Duration(args[0].AsDuration().Negated()), nil
	})
	cls.Methods["isZero"] = method("isZero", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].AsDuration().IsZero()), nil
	})
	cls.Methods["compareTo"] = method("compareTo", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindDuration {
			return value.Value{}, vmerr.Typef("compareTo expects a Duration, got %s", args[1].TypeName())
		}
		return value.Int32(int32(args[0].AsDuration().Compare(args[1].AsDuration()))), nil
	})
	cls.Methods["toString"] = method("toString", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.String(args[0].AsDuration().String()), nil
	})

	return cls
}

// registerPeriodClass installs Period, a calendar-field span (years,
// months, days) interpreted only when applied to a LocalDate.
func registerPeriodClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "Period", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 3, "Period"); err != nil {
			return value.Value{}, err
		}
		y, err := requireInt(args[0], "Period")
		if err != nil {
			return value.Value{}, err
		}
		m, err := requireInt(args[1], "Period")
		if err != nil {
			return value.Value{}, err
		}
		d, err := requireInt(args[2], "Period")
		if err != nil {
			return value.Value{}, err
		}
		return value.Period(datetime.Period{Years: y, Months: m, Days: d}), nil
	}

	cls.Methods["years"] = method("years", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsPeriod().Years)), nil
	})
	cls.Methods["months"] = method("months", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsPeriod().Months)), nil
	})
	cls.Methods["days"] = method("days", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].AsPeriod().Days)), nil
	})
	cls.Methods["addTo"] = method("addTo", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if args[1].Kind() != value.KindLocalDate {
			return value.Value{}, vmerr.Typef("addTo expects a LocalDate, got %s", args[1].TypeName())
		}
		return value.LocalDate(args[0].AsPeriod().AddTo(args[1].AsLocalDate())), nil
	})
	cls.Methods["negated"] = method("negated", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Period(args[0].AsPeriod().Negated()), nil
	})
	cls.Methods["isZero"] = method("isZero", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].AsPeriod().IsZero()), nil
	})
	cls.Methods["toString"] = method("toString", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.String(args[0].AsPeriod().String()), nil
	})

	return cls
}
