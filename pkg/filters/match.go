package filters

// Matcher builds a predicate for one filter input. A nil input is the
// empty filter: the predicate accepts everything. Otherwise the
// supplied names compose with AND semantics; names absent from the
// input (or set to nil) contribute no constraint at all.
func (f *Filters[E]) Matcher(input Input) func(E) bool {
	if input == nil {
		return func(E) bool { return true }
	}

	return func(e E) bool {
		for _, c := range f.checks {
			v, ok := input[c.name]
			if !ok || v == nil {
				continue
			}
			if !c.check(e, v) {
				return false
			}
		}
		return true
	}
}

// Matches reports whether e satisfies every filter supplied in input.
func (f *Filters[E]) Matches(e E, input Input) bool {
	return f.Matcher(input)(e)
}
