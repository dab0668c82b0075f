package analysis

// joinedEntry pairs the old-year and new-year values sharing one label key.
type joinedEntry[T any] struct {
	Key    string
	Label  string
	Old    T
	New    T
	HasOld bool
	HasNew bool
}

// joinByLabel is a full outer join of old and new on labelKey(label(x)).
// The display label prefers the new-year spelling. The result is sorted by
// label.
func joinByLabel[T any](old, new []T, label func(T) string) []joinedEntry[T] {
	index := map[string]*joinedEntry[T]{}
	var keys []string
	get := func(l string) *joinedEntry[T] {
		k := labelKey(l)
		e, ok := index[k]
		if !ok {
			e = &joinedEntry[T]{Key: k, Label: l}
			index[k] = e
			keys = append(keys, k)
		}
		return e
	}
	for _, v := range old {
		e := get(label(v))
		e.Old, e.HasOld = v, true
	}
	for _, v := range new {
		l := label(v)
		e := get(l)
		e.New, e.HasNew = v, true
		e.Label = l
	}

	out := make([]joinedEntry[T], 0, len(keys))
	for _, k := range keys {
		out = append(out, *index[k])
	}
	sortByLabel(out, func(e joinedEntry[T]) string { return e.Label })
	return out
}
