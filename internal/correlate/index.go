package correlate

// KeyFunc extracts a lookup key from a record. Returning ok=false marks the
// record as unkeyable; index builders skip it and keep a count instead of
// failing.
type KeyFunc[T any] func(T) (key string, ok bool)

// Index is a lookup table over one fetched collection. A non-multi index
// keeps a single record per key with last-wins semantics, matching "current
// assignment per section" lookups where only the latest row matters. A multi
// index accumulates records per key in input order.
type Index[T any] struct {
	multi   bool
	entries map[string][]T
	keys    []string
	skipped int
}

// NewIndex builds an index over records using key. Records whose key cannot
// be derived are excluded and counted via Skipped.
func NewIndex[T any](records []T, key KeyFunc[T], multi bool) *Index[T] {
	idx := &Index[T]{
		multi:   multi,
		entries: make(map[string][]T, len(records)),
	}
	if key == nil {
		idx.skipped = len(records)
		return idx
	}
	for _, record := range records {
		k, ok := key(record)
		if !ok || k == "" {
			idx.skipped++
			continue
		}
		existing, seen := idx.entries[k]
		switch {
		case !seen:
			idx.keys = append(idx.keys, k)
			idx.entries[k] = []T{record}
		case multi:
			idx.entries[k] = append(existing, record)
		default:
			// last wins, key keeps its original position
			idx.entries[k] = []T{record}
		}
	}
	return idx
}

// Get returns the record stored under key. For a multi index it returns the
// first-encountered record.
func (x *Index[T]) Get(key string) (T, bool) {
	var zero T
	if x == nil {
		return zero, false
	}
	records, ok := x.entries[key]
	if !ok || len(records) == 0 {
		return zero, false
	}
	return records[0], true
}

// List returns all records stored under key in input order.
func (x *Index[T]) List(key string) []T {
	if x == nil {
		return nil
	}
	return x.entries[key]
}

// Has reports whether key is present.
func (x *Index[T]) Has(key string) bool {
	if x == nil {
		return false
	}
	_, ok := x.entries[key]
	return ok
}

// Keys returns index keys in first-insertion order. Iterating Keys rather
// than the underlying map keeps every derived result deterministic.
func (x *Index[T]) Keys() []string {
	if x == nil {
		return nil
	}
	return x.keys
}

// Len returns the number of distinct keys.
func (x *Index[T]) Len() int {
	if x == nil {
		return 0
	}
	return len(x.keys)
}

// Skipped returns how many records were excluded for lacking a usable key.
func (x *Index[T]) Skipped() int {
	if x == nil {
		return 0
	}
	return x.skipped
}
