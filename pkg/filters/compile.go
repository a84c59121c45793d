package filters

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

type checker[E any] func(e E, value any) bool

type compiled[E any] struct {
	name  string
	check checker[E]
}

// Filters is the compiled form of a declaration set for one entity
// shape. It is immutable after New and safe for concurrent use: every
// checker is a pure closure over the schema and the spec.
type Filters[E any] struct {
	checks []compiled[E]
}

// New validates specs against schema and compiles them. Field
// references are resolved once, here; matching never looks fields up
// again. Any violation makes New fail with an error that lists all of
// them.
func New[E any](schema Schema[E], specs Specs) (*Filters[E], error) {
	vs := Validate(specs, func(field string) bool {
		_, ok := schema[field]
		return ok
	})

	for _, ns := range specs {
		if ns.Spec.Check == nil {
			continue
		}
		if _, ok := ns.Spec.Check.(func(E, any) bool); !ok {
			vs = append(vs, Violation{ns.Name, "custom checker must be func(E, any) bool"})
		}
	}

	if err := Reject(vs); err != nil {
		return nil, err
	}

	checks := make([]compiled[E], 0, len(specs))
	for _, ns := range specs {
		checks = append(checks, compiled[E]{
			name:  ns.Name,
			check: compileSpec(schema, ns.Name, ns.Spec),
		})
	}

	return &Filters[E]{checks: checks}, nil
}

func compileSpec[E any](schema Schema[E], name string, s Spec) checker[E] {
	if s.Check != nil {
		return s.Check.(func(E, any) bool)
	}

	if s.Kind.group() {
		return compileGroup(schema, s)
	}

	field := s.Field
	if field == "" {
		field = name
	}

	return compileComparison(schema[field], s.Kind, s.CaseInsensitive)
}

// compileGroup combines condition checkers over a single broadcast
// value: every condition sees the same input. The broadcast is
// literal; no per-condition coercion happens even when the grouped
// fields have different types.
func compileGroup[E any](schema Schema[E], s Spec) checker[E] {
	conds := make([]checker[E], 0, len(s.Conditions))
	for _, c := range s.Conditions {
		conds = append(conds, compileComparison(schema[c.Field], c.Kind, c.CaseInsensitive))
	}

	if s.Kind == And {
		return func(e E, v any) bool {
			for _, check := range conds {
				if !check(e, v) {
					return false
				}
			}
			return true
		}
	}

	return func(e E, v any) bool {
		for _, check := range conds {
			if check(e, v) {
				return true
			}
		}
		return false
	}
}

func compileComparison[E any](get func(E) any, kind Kind, fold bool) checker[E] {
	switch kind {
	case Eq:
		return func(e E, v any) bool { return equal(get(e), v) }
	case Neq:
		return func(e E, v any) bool { return !equal(get(e), v) }
	case Contains:
		return func(e E, v any) bool { return containsFold(get(e), v, fold) }
	case InArray:
		return func(e E, v any) bool { return inSequence(get(e), v) }
	case IsNull:
		return func(e E, v any) bool {
			flag, ok := v.(bool)
			return ok && isNil(get(e)) == flag
		}
	case IsNotNull:
		return func(e E, v any) bool {
			flag, ok := v.(bool)
			return ok && isNil(get(e)) != flag
		}
	case Gt:
		return func(e E, v any) bool { return asNumber(get(e)) > asNumber(v) }
	case Gte:
		return func(e E, v any) bool { return asNumber(get(e)) >= asNumber(v) }
	case Lt:
		return func(e E, v any) bool { return asNumber(get(e)) < asNumber(v) }
	case Lte:
		return func(e E, v any) bool { return asNumber(get(e)) <= asNumber(v) }
	}

	// unreachable: validation rejects unknown kinds
	return func(E, any) bool { return false }
}

// equal is strict: no numeric cross-type coercion, an int field never
// equals a float input. Uncomparable values fall back to DeepEqual
// instead of panicking.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

func containsFold(fv, v any, fold bool) bool {
	s, sub := fmt.Sprint(fv), fmt.Sprint(v)
	if fold {
		s, sub = strings.ToLower(s), strings.ToLower(sub)
	}
	return strings.Contains(s, sub)
}

// inSequence wants a slice or array value. Anything else is a mistake
// at the call site, not a data mismatch, so it panics instead of
// silently matching nothing.
func inSequence(fv, v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		panic(fmt.Sprintf("filters: inArray value must be a slice or array, got %T", v))
	}

	for i := 0; i < rv.Len(); i++ {
		if equal(fv, rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func isNil(x any) bool {
	if x == nil {
		return true
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// asNumber coerces for ordered comparisons. A failed coercion yields
// NaN, and every comparison with NaN is false, so mistyped values
// reject silently instead of erroring.
func asNumber(x any) float64 {
	switch n := x.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
