package value

import (
	"fmt"
	"strconv"
	"strings"
)

// ToString renders v the way Slate's universal `toString` builtin does
// (spec.md §4.2, OQ-3): numbers and strings print their natural form,
// containers print recursively using each element's own ToString, and
// an Object with no class or an unoverridden toString method prints as
// `{key: value, ...}` in field insertion order — the canonical form
// OQ-3 settles on rather than inventing a bespoke serialization syntax.
//
// ctx may be nil; it is only consulted when v is an Object whose class
// chain defines a toString method, in which case ToString calls back
// into the running VM through ctx.Invoke.
func (v Value) ToString(ctx *Context) (string, error) {
	switch v.kind {
	case KindNull:
		return "null", nil
	case KindUndefined:
		return "undefined", nil
	case KindBool:
		return strconv.FormatBool(v.b), nil
	case KindInt32:
		return strconv.FormatInt(int64(v.i32), 10), nil
	case KindBigInt:
		return v.big.String(), nil
	case KindNumber:
		return formatNumber(v.num), nil
	case KindString:
		return v.AsString(), nil
	case KindArray:
		return v.arrayToString(ctx)
	case KindObject:
		return v.objectToString(ctx)
	case KindRange:
		r := v.rng()
		op := ".."
		if r.exclusive {
			op = "..<"
		}
		return fmt.Sprintf("%d%s%d", r.start, op, r.end), nil
	case KindBuffer:
		return fmt.Sprintf("Buffer[%d]", v.BufferLen()), nil
	case KindClass:
		return "class " + v.AsClass().Name, nil
	case KindClosure, KindNative, KindBoundMethod:
		return "<function>", nil
	case KindLocalDate:
		return v.AsLocalDate().String(), nil
	case KindLocalTime:
		return v.AsLocalTime().String(), nil
	case KindLocalDateTime:
		return v.AsLocalDateTime().String(), nil
	case KindZonedDateTime:
		return v.AsZonedDateTime().String(), nil
	case KindInstant:
		return v.AsInstant().String(), nil
	case KindDuration:
		return v.AsDuration().String(), nil
	case KindPeriod:
		return v.AsPeriod().String(), nil
	default:
		return "<" + v.kind.String() + ">", nil
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (v Value) arrayToString(ctx *Context) (string, error) {
	elems := v.ArrayElements()
	parts := make([]string, len(elems))
	for i, e := range elems {
		s, err := e.ToString(ctx)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func (v Value) objectToString(ctx *Context) (string, error) {
	if ctx != nil && v.class != nil {
		if method, _, ok := v.LookupMethod("toString"); ok && ctx.Invoke != nil {
			result, err := ctx.Invoke(BoundMethod(v, method), nil)
			if err != nil {
				return "", err
			}
			return result.AsString(), nil
		}
	}
	keys := v.ObjectKeys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		val, _ := v.ObjectGet(k)
		s, err := val.ToString(ctx)
		if err != nil {
			return "", err
		}
		parts[i] = k + ": " + s
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}
