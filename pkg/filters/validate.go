package filters

import (
	"reflect"

	"github.com/nikmy/sift/pkg/errors"
)

// Violation is one specification problem found by Validate.
type Violation struct {
	Filter string
	Reason string
}

func (v Violation) String() string {
	return v.Filter + ": " + v.Reason
}

// Validate checks the declarative part of every spec against the set
// of known entity fields. It collects all problems instead of
// stopping at the first one, so a caller can report a broken
// declaration set in a single pass. Custom specs are only checked for
// actually being functions; their signatures are backend-specific and
// verified by the backend's constructor.
func Validate(specs Specs, knownField func(field string) bool) []Violation {
	var vs []Violation

	for _, ns := range specs {
		s := ns.Spec

		if s.Check != nil {
			if reflect.TypeOf(s.Check).Kind() != reflect.Func {
				vs = append(vs, Violation{ns.Name, "custom checker is not a function"})
			}
			continue
		}

		switch {
		case s.Kind.group():
			vs = append(vs, validateGroup(ns.Name, s, knownField)...)

		case s.Kind.primitive():
			field := s.Field
			if field == "" {
				field = ns.Name
			}
			if !knownField(field) {
				vs = append(vs, Violation{ns.Name, "unknown field " + quoted(field)})
			}

		default:
			vs = append(vs, Violation{ns.Name, "unknown filter kind"})
		}
	}

	return vs
}

func validateGroup(name string, s Spec, knownField func(string) bool) []Violation {
	if len(s.Conditions) == 0 {
		return []Violation{{name, "group has no conditions"}}
	}

	var vs []Violation
	for _, c := range s.Conditions {
		switch {
		case c.Field == "":
			vs = append(vs, Violation{name, "group condition has no field"})
		case !c.Kind.primitive():
			vs = append(vs, Violation{name, "group condition kind must be a comparison, got " + c.Kind.String()})
		case !knownField(c.Field):
			vs = append(vs, Violation{name, "unknown field " + quoted(c.Field)})
		}
	}

	return vs
}

func quoted(field string) string {
	return `"` + field + `"`
}

// Reject turns a non-empty violation list into a single error
// aggregating every violation, so compilation can fail fast while
// still reporting everything at once.
func Reject(vs []Violation) error {
	if len(vs) == 0 {
		return nil
	}

	errs := make([]error, 0, len(vs))
	for _, v := range vs {
		errs = append(errs, errors.Error(v.String()))
	}

	return errors.WrapFail(errors.Collapse(errs), "validate filter specs")
}
