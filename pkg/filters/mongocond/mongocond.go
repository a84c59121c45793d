// Package mongocond compiles a filter declaration set into mongo
// condition documents (bson.M). Same declarative model and validation
// as pkg/filters, checker bodies build $-operator documents instead of
// evaluating entities.
package mongocond

import (
	"fmt"
	"reflect"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nikmy/sift/pkg/filters"
)

// Fields maps entity field names to document keys.
type Fields map[string]string

type condFunc func(value any) bson.M

type compiled struct {
	name string
	cond condFunc
}

type Conds struct {
	conds []compiled
}

// New validates specs against the document key set and compiles them.
// Custom specs must carry func(any) bson.M and build their own
// condition document from the broadcast value.
func New(fields Fields, specs filters.Specs) (*Conds, error) {
	vs := filters.Validate(specs, func(field string) bool {
		_, ok := fields[field]
		return ok
	})

	for _, ns := range specs {
		if ns.Spec.Check == nil {
			continue
		}
		if _, ok := ns.Spec.Check.(func(any) bson.M); !ok {
			vs = append(vs, filters.Violation{
				Filter: ns.Name,
				Reason: "custom checker must be func(any) bson.M",
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
			cond: compileSpec(fields, ns.Name, ns.Spec),
		})
	}

	return &Conds{conds: conds}, nil
}

// Where builds the condition document for one filter input. Nil means
// no constraint; the caller decides what an unconstrained query looks
// like (for mongo Find that is an explicit empty document).
func (c *Conds) Where(input filters.Input) bson.M {
	if input == nil {
		return nil
	}

	var parts []bson.M
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
		return bson.M{"$and": parts}
	}
}

func compileSpec(fields Fields, name string, s filters.Spec) condFunc {
	if s.Check != nil {
		return s.Check.(func(any) bson.M)
	}

	if s.Kind == filters.And || s.Kind == filters.Or {
		return compileGroup(fields, s)
	}

	field := s.Field
	if field == "" {
		field = name
	}

	return compileComparison(fields[field], s.Kind, s.CaseInsensitive)
}

func compileGroup(fields Fields, s filters.Spec) condFunc {
	conds := make([]condFunc, 0, len(s.Conditions))
	for _, c := range s.Conditions {
		conds = append(conds, compileComparison(fields[c.Field], c.Kind, c.CaseInsensitive))
	}

	op := "$or"
	if s.Kind == filters.And {
		op = "$and"
	}

	return func(v any) bson.M {
		parts := make([]bson.M, 0, len(conds))
		for _, cond := range conds {
			parts = append(parts, cond(v))
		}
		return bson.M{op: parts}
	}
}

func compileComparison(key string, kind filters.Kind, fold bool) condFunc {
	switch kind {
	case filters.Eq:
		return func(v any) bson.M { return bson.M{key: v} }
	case filters.Neq:
		return func(v any) bson.M { return bson.M{key: bson.M{"$ne": v}} }
	case filters.Contains:
		return func(v any) bson.M {
			re := bson.M{"$regex": regexp.QuoteMeta(fmt.Sprint(v))}
			if fold {
				re["$options"] = "i"
			}
			return bson.M{key: re}
		}
	case filters.InArray:
		return func(v any) bson.M {
			rv := reflect.ValueOf(v)
			if !rv.IsValid() || rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				panic(fmt.Sprintf("mongocond: inArray value must be a slice or array, got %T", v))
			}
			return bson.M{key: bson.M{"$in": v}}
		}
	case filters.IsNull:
		return nullCond(key, false)
	case filters.IsNotNull:
		return nullCond(key, true)
	case filters.Gt:
		return func(v any) bson.M { return bson.M{key: bson.M{"$gt": v}} }
	case filters.Gte:
		return func(v any) bson.M { return bson.M{key: bson.M{"$gte": v}} }
	case filters.Lt:
		return func(v any) bson.M { return bson.M{key: bson.M{"$lt": v}} }
	case filters.Lte:
		return func(v any) bson.M { return bson.M{key: bson.M{"$lte": v}} }
	}

	// unreachable: validation rejects unknown kinds
	return func(any) bson.M { return never }
}

func nullCond(key string, invert bool) condFunc {
	return func(v any) bson.M {
		flag, ok := v.(bool)
		if !ok {
			return never
		}
		if flag != invert {
			return bson.M{key: nil}
		}
		return bson.M{key: bson.M{"$ne": nil}}
	}
}

// never matches no document.
var never = bson.M{"$expr": false}
