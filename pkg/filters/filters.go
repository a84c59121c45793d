// Package filters compiles declarative filter specifications into
// reusable matchers. A specification is declared once, validated and
// compiled once, and the result can be applied to any number of sparse
// filter inputs. The in-memory backend lives here; condition backends
// for SQL and mongo live in the sqlcond and mongocond subpackages and
// consume the same Specs.
package filters

// Input is the sparse, call-time mapping of filter names to values.
// A missing key, or a key explicitly set to nil, disables the named
// filter for that call. Any other value is meaningful: false supplied
// to an IsNull filter is a real "must not be null" constraint, not an
// absent one.
type Input map[string]any

// Kind tags one filter specification.
type Kind int

const (
	// Comparison kinds
	Eq Kind = iota
	Neq
	Contains
	InArray
	IsNull
	IsNotNull
	Gt
	Gte
	Lt
	Lte

	// Group kinds
	And
	Or
)

func (k Kind) primitive() bool {
	return k >= Eq && k <= Lte
}

func (k Kind) group() bool {
	return k == And || k == Or
}

func (k Kind) String() string {
	names := [...]string{
		"eq", "neq", "contains", "inArray", "isNull", "isNotNull",
		"gt", "gte", "lt", "lte", "and", "or",
	}
	if k < Eq || k > Or {
		return "unknown"
	}
	return names[k]
}

// Condition is a single comparison inside an And/Or group. Field is
// mandatory here: the name-as-field fallback never reaches inside a
// group, because the group's name cannot stand for several fields.
// Groups do not nest.
type Condition struct {
	Kind            Kind
	Field           string
	CaseInsensitive bool
}

// Spec describes one named filter. It is either a tagged record
// (Kind plus the optional knobs) or, when Check is set, a custom
// filter that bypasses field resolution entirely.
//
// For comparison kinds, Field names the entity field to compare;
// an empty Field falls back to the filter's own name. CaseInsensitive
// applies to Contains only. For And/Or, Conditions holds the grouped
// comparisons and the single input value is broadcast to each of them.
//
// Check carries a backend-specific function: the in-memory backend
// expects func(E, any) bool, sqlcond expects
// func(sqlcond.Table, any) squirrel.Sqlizer, mongocond expects
// func(any) bson.M. A wrong function type is reported by validation,
// not at match time.
type Spec struct {
	Kind            Kind
	Field           string
	CaseInsensitive bool
	Conditions      []Condition

	Check any
}

// Named binds a filter name to its spec.
type Named struct {
	Name string
	Spec Spec
}

// Specs is an ordered filter declaration set. Order is declaration
// order; a Go map would lose it, so the set is a slice.
type Specs []Named

// Schema declares the entity shape for the in-memory backend: field
// name to getter. Validation resolves every referenced field against
// it, and compiled checkers read entity fields through it.
type Schema[E any] map[string]func(E) any
