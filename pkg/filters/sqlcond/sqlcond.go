// Package sqlcond compiles a filter declaration set into squirrel
// condition fragments. It shares the declarative model (and its
// validation) with the in-memory backend in pkg/filters; only the
// checker bodies differ: instead of booleans they produce
// squirrel.Sqlizer values which the caller hangs onto a SELECT.
package sqlcond

import (
	"fmt"
	"reflect"

	sq "github.com/Masterminds/squirrel"

	"github.com/nikmy/sift/pkg/filters"
)

// Table is the column descriptor conditions resolve fields against.
// Columns maps entity field names to column names; Name, when set,
// qualifies every column.
type Table struct {
	Name    string
	Columns map[string]string
}

func (t Table) column(field string) string {
	col := t.Columns[field]
	if t.Name == "" {
		return col
	}
	return t.Name + "." + col
}

type condFunc func(value any) sq.Sqlizer

type compiled struct {
	name string
	cond condFunc
}

// Conds is the compiled declaration set. Immutable, safe for
// concurrent use.
type Conds struct {
	conds []compiled
}

// New validates specs against the table descriptor and compiles them.
// Custom specs must carry func(Table, any) squirrel.Sqlizer; they
// receive the descriptor instead of entity data and build their own
// fragment (typically a subquery).
func New(table Table, specs filters.Specs) (*Conds, error) {
	vs := filters.Validate(specs, func(field string) bool {
		_, ok := table.Columns[field]
		return ok
	})

	for _, ns := range specs {
		if ns.Spec.Check == nil {
			continue
		}
		if _, ok := ns.Spec.Check.(func(Table, any) sq.Sqlizer); !ok {
			vs = append(vs, filters.Violation{
				Filter: ns.Name,
				Reason: "custom checker must be func(Table, any) squirrel.Sqlizer",
			})
		}
	}

	if err := filters.Reject(vs); err != nil {
		return nil, err
	}

	conds := make([]compiled, 0, len(specs))
	for _, ns := range specs {
		conds = append(conds, compiled{
			name: ns.Name,
			cond: compileSpec(table, ns.Name, ns.Spec),
		})
	}

	return &Conds{conds: conds}, nil
}

// Where builds the condition for one filter input. When nothing in
// the input constrains the query, Where returns nil: the absence of a
// condition, not a tautology. Callers must skip their WHERE clause on
// nil rather than expect an always-true fragment.
func (c *Conds) Where(input filters.Input) sq.Sqlizer {
	if input == nil {
		return nil
	}

	var parts sq.And
	for _, nc := range c.conds {
		v, ok := input[nc.name]
		if !ok || v == nil {
			continue
		}
		parts = append(parts, nc.cond(v))
	}

	switch len(parts) {
	case 0:
		return nil
	case 1:
		return parts[0]
	default:
		return parts
	}
}

func compileSpec(table Table, name string, s filters.Spec) condFunc {
	if s.Check != nil {
		check := s.Check.(func(Table, any) sq.Sqlizer)
		return func(v any) sq.Sqlizer { return check(table, v) }
	}

	if s.Kind == filters.And || s.Kind == filters.Or {
		return compileGroup(table, s)
	}

	field := s.Field
	if field == "" {
		field = name
	}

	return compileComparison(table.column(field), s.Kind, s.CaseInsensitive)
}

func compileGroup(table Table, s filters.Spec) condFunc {
	conds := make([]condFunc, 0, len(s.Conditions))
	for _, c := range s.Conditions {
		conds = append(conds, compileComparison(table.column(c.Field), c.Kind, c.CaseInsensitive))
	}

	all := s.Kind == filters.And

	return func(v any) sq.Sqlizer {
		parts := make([]sq.Sqlizer, 0, len(conds))
		for _, cond := range conds {
			parts = append(parts, cond(v))
		}
		if all {
			return sq.And(parts)
		}
		return sq.Or(parts)
	}
}

func compileComparison(col string, kind filters.Kind, fold bool) condFunc {
	switch kind {
	case filters.Eq:
		return func(v any) sq.Sqlizer { return sq.Eq{col: v} }
	case filters.Neq:
		return func(v any) sq.Sqlizer { return sq.NotEq{col: v} }
	case filters.Contains:
		return func(v any) sq.Sqlizer {
			pattern := "%" + fmt.Sprint(v) + "%"
			if fold {
				return sq.ILike{col: pattern}
			}
			return sq.Like{col: pattern}
		}
	case filters.InArray:
		return func(v any) sq.Sqlizer {
			rv := reflect.ValueOf(v)
			if !rv.IsValid() || rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				panic(fmt.Sprintf("sqlcond: inArray value must be a slice or array, got %T", v))
			}
			return sq.Eq{col: v}
		}
	case filters.IsNull:
		return nullCond(col, false)
	case filters.IsNotNull:
		return nullCond(col, true)
	case filters.Gt:
		return func(v any) sq.Sqlizer { return sq.Gt{col: v} }
	case filters.Gte:
		return func(v any) sq.Sqlizer { return sq.GtOrEq{col: v} }
	case filters.Lt:
		return func(v any) sq.Sqlizer { return sq.Lt{col: v} }
	case filters.Lte:
		return func(v any) sq.Sqlizer { return sq.LtOrEq{col: v} }
	}

	// unreachable: validation rejects unknown kinds
	return func(any) sq.Sqlizer { return never }
}

// nullCond handles IsNull and IsNotNull, which are each other's
// complement for the same boolean flag. A non-boolean value is outside
// the filter's declared input type and matches nothing.
func nullCond(col string, invert bool) condFunc {
	return func(v any) sq.Sqlizer {
		flag, ok := v.(bool)
		if !ok {
			return never
		}
		if flag != invert {
			return sq.Eq{col: nil} // IS NULL
		}
		return sq.NotEq{col: nil} // IS NOT NULL
	}
}

var never sq.Sqlizer = sq.Expr("1 = 0")
