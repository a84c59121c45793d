package filters

import "slices"

// List helpers over the in-memory matcher. No semantics of their own.

func (f *Filters[E]) Filter(list []E, input Input) []E {
	match := f.Matcher(input)

	var out []E
	for _, e := range list {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f *Filters[E]) Find(list []E, input Input) (E, bool) {
	if i := f.FindIndex(list, input); i >= 0 {
		return list[i], true
	}

	var zero E
	return zero, false
}

func (f *Filters[E]) FindIndex(list []E, input Input) int {
	return slices.IndexFunc(list, f.Matcher(input))
}

func (f *Filters[E]) Some(list []E, input Input) bool {
	return f.FindIndex(list, input) >= 0
}

// Every is vacuously true on an empty list.
func (f *Filters[E]) Every(list []E, input Input) bool {
	match := f.Matcher(input)
	for _, e := range list {
		if !match(e) {
			return false
		}
	}
	return true
}
