package filters

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type user struct {
	Name  string
	Age   int
	Email *string
}

var userSchema = Schema[user]{
	"name":  func(u user) any { return u.Name },
	"age":   func(u user) any { return u.Age },
	"email": func(u user) any { return u.Email },
}

func email(s string) *string { return &s }

func compile(t *testing.T, specs Specs) *Filters[user] {
	t.Helper()

	f, err := New(userSchema, specs)
	require.NoError(t, err)
	return f
}

func Test_Comparisons(t *testing.T) {
	type testcase struct {
		name string
		spec Spec
		val  any
		ent  user
		want bool
	}

	tests := [...]testcase{
		{
			name: "eq matches",
			spec: Spec{Kind: Eq, Field: "name"},
			val:  "John",
			ent:  user{Name: "John"},
			want: true,
		},
		{
			name: "eq is strict about types",
			spec: Spec{Kind: Eq, Field: "age"},
			val:  float64(30),
			ent:  user{Age: 30},
			want: false,
		},
		{
			name: "neq complements eq",
			spec: Spec{Kind: Neq, Field: "name"},
			val:  "John",
			ent:  user{Name: "John"},
			want: false,
		},
		{
			name: "contains is case sensitive by default",
			spec: Spec{Kind: Contains, Field: "name"},
			val:  "john",
			ent:  user{Name: "John"},
			want: false,
		},
		{
			name: "contains folds case when asked",
			spec: Spec{Kind: Contains, Field: "name", CaseInsensitive: true},
			val:  "john",
			ent:  user{Name: "John"},
			want: true,
		},
		{
			name: "contains empty value matches anything",
			spec: Spec{Kind: Contains, Field: "name"},
			val:  "",
			ent:  user{Name: "Jane"},
			want: true,
		},
		{
			name: "inArray membership",
			spec: Spec{Kind: InArray, Field: "age"},
			val:  []any{25, 30},
			ent:  user{Age: 30},
			want: true,
		},
		{
			name: "inArray rejects non-members",
			spec: Spec{Kind: InArray, Field: "age"},
			val:  []any{25, 30},
			ent:  user{Age: 28},
			want: false,
		},
		{
			name: "isNull true wants nil field",
			spec: Spec{Kind: IsNull, Field: "email"},
			val:  true,
			ent:  user{},
			want: true,
		},
		{
			name: "isNull false inverts the check",
			spec: Spec{Kind: IsNull, Field: "email"},
			val:  false,
			ent:  user{Email: email("a@b.c")},
			want: true,
		},
		{
			name: "gt strict",
			spec: Spec{Kind: Gt, Field: "age"},
			val:  30,
			ent:  user{Age: 30},
			want: false,
		},
		{
			name: "gte includes the bound",
			spec: Spec{Kind: Gte, Field: "age"},
			val:  30,
			ent:  user{Age: 30},
			want: true,
		},
		{
			name: "lt across numeric types",
			spec: Spec{Kind: Lt, Field: "age"},
			val:  30.5,
			ent:  user{Age: 30},
			want: true,
		},
		{
			name: "lte with numeric string value",
			spec: Spec{Kind: Lte, Field: "age"},
			val:  "30",
			ent:  user{Age: 30},
			want: true,
		},
		{
			name: "failed numeric coercion rejects silently",
			spec: Spec{Kind: Gt, Field: "name"},
			val:  10,
			ent:  user{Name: "John"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := compile(t, Specs{{Name: "it", Spec: tt.spec}})
			require.Equal(t, tt.want, f.Matches(tt.ent, Input{"it": tt.val}))
		})
	}
}

func Test_EmptyInputMatchesEverything(t *testing.T) {
	f := compile(t, Specs{
		{Name: "minAge", Spec: Spec{Kind: Gte, Field: "age"}},
	})

	for _, u := range []user{{Age: 1}, {Age: 100}, {}} {
		require.True(t, f.Matches(u, nil))
		require.True(t, f.Matcher(nil)(u))
	}
}

func Test_AbsentValueSkipsChecker(t *testing.T) {
	f := compile(t, Specs{
		{Name: "minAge", Spec: Spec{Kind: Gte, Field: "age"}},
		{Name: "name", Spec: Spec{Kind: Eq}},
	})

	u := user{Name: "John", Age: 10}

	// key missing entirely
	require.True(t, f.Matches(u, Input{"name": "John"}))
	// key set to the no-value sentinel
	require.True(t, f.Matches(u, Input{"name": "John", "minAge": nil}))
	// supplied values still constrain
	require.False(t, f.Matches(u, Input{"name": "John", "minAge": 18}))
}

func Test_NameAsFieldFallback(t *testing.T) {
	f := compile(t, Specs{
		{Name: "age", Spec: Spec{Kind: Eq}},
	})

	require.True(t, f.Matches(user{Age: 25}, Input{"age": 25}))
	require.False(t, f.Matches(user{Age: 26}, Input{"age": 25}))
}

func Test_Complements(t *testing.T) {
	eq := compile(t, Specs{{Name: "f", Spec: Spec{Kind: Eq, Field: "age"}}})
	neq := compile(t, Specs{{Name: "f", Spec: Spec{Kind: Neq, Field: "age"}}})

	for _, u := range []user{{Age: 25}, {Age: 30}} {
		in := Input{"f": 25}
		require.Equal(t, eq.Matches(u, in), !neq.Matches(u, in))
	}

	null := compile(t, Specs{{Name: "f", Spec: Spec{Kind: IsNull, Field: "email"}}})
	notNull := compile(t, Specs{{Name: "f", Spec: Spec{Kind: IsNotNull, Field: "email"}}})

	for _, u := range []user{{}, {Email: email("a@b.c")}} {
		for _, flag := range []bool{true, false} {
			in := Input{"f": flag}
			require.Equal(t, null.Matches(u, in), !notNull.Matches(u, in))
			// isNull(x) == isNotNull(!x)
			require.Equal(t, null.Matches(u, in), notNull.Matches(u, Input{"f": !flag}))
		}
	}
}

func Test_Groups(t *testing.T) {
	exact := compile(t, Specs{
		{Name: "exactAge", Spec: Spec{Kind: And, Conditions: []Condition{
			{Kind: Gte, Field: "age"},
			{Kind: Lte, Field: "age"},
		}}},
	})

	in := Input{"exactAge": 30}
	require.True(t, exact.Matches(user{Age: 30}, in))
	require.False(t, exact.Matches(user{Age: 29}, in))
	require.False(t, exact.Matches(user{Age: 31}, in))

	except := compile(t, Specs{
		{Name: "notAge", Spec: Spec{Kind: Or, Conditions: []Condition{
			{Kind: Lt, Field: "age"},
			{Kind: Gt, Field: "age"},
		}}},
	})

	in = Input{"notAge": 28}
	require.True(t, except.Matches(user{Age: 27}, in))
	require.True(t, except.Matches(user{Age: 29}, in))
	require.False(t, except.Matches(user{Age: 28}, in))
}

func Test_CustomCheck(t *testing.T) {
	f := compile(t, Specs{
		{Name: "ageParity", Spec: Spec{Check: func(u user, v any) bool {
			even, ok := v.(bool)
			return ok && (u.Age%2 == 0) == even
		}}},
	})

	require.True(t, f.Matches(user{Age: 30}, Input{"ageParity": true}))
	require.False(t, f.Matches(user{Age: 31}, Input{"ageParity": true}))
	require.True(t, f.Matches(user{Age: 31}, Input{"ageParity": false}))
}

func Test_InArrayWantsSequence(t *testing.T) {
	f := compile(t, Specs{{Name: "age", Spec: Spec{Kind: InArray}}})

	require.Panics(t, func() {
		f.Matches(user{Age: 30}, Input{"age": 30})
	})
}

func Test_Validation(t *testing.T) {
	type testcase struct {
		name    string
		specs   Specs
		reasons []string
	}

	tests := [...]testcase{
		{
			name:    "unknown field",
			specs:   Specs{{Name: "f", Spec: Spec{Kind: Eq, Field: "salary"}}},
			reasons: []string{`unknown field "salary"`},
		},
		{
			name:    "unknown name-as-field",
			specs:   Specs{{Name: "salary", Spec: Spec{Kind: Eq}}},
			reasons: []string{`unknown field "salary"`},
		},
		{
			name:    "empty group",
			specs:   Specs{{Name: "g", Spec: Spec{Kind: And}}},
			reasons: []string{"group has no conditions"},
		},
		{
			name: "group condition without field",
			specs: Specs{{Name: "g", Spec: Spec{Kind: Or, Conditions: []Condition{
				{Kind: Gte},
			}}}},
			reasons: []string{"group condition has no field"},
		},
		{
			name: "group condition with group kind",
			specs: Specs{{Name: "g", Spec: Spec{Kind: And, Conditions: []Condition{
				{Kind: Or, Field: "age"},
			}}}},
			reasons: []string{"group condition kind must be a comparison"},
		},
		{
			name: "all problems reported at once",
			specs: Specs{
				{Name: "a", Spec: Spec{Kind: Eq, Field: "salary"}},
				{Name: "b", Spec: Spec{Kind: And}},
			},
			reasons: []string{`unknown field "salary"`, "group has no conditions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(userSchema, tt.specs)
			require.Error(t, err)
			for _, reason := range tt.reasons {
				require.ErrorContains(t, err, reason)
			}
		})
	}
}

func Test_Validation_CustomCheckerType(t *testing.T) {
	_, err := New(userSchema, Specs{
		{Name: "bad", Spec: Spec{Check: func(u user) bool { return true }}},
	})
	require.ErrorContains(t, err, "custom checker must be func(E, any) bool")

	_, err = New(userSchema, Specs{
		{Name: "worse", Spec: Spec{Check: 42}},
	})
	require.ErrorContains(t, err, "custom checker is not a function")
}
