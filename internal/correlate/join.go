package correlate

import "errors"

// Cardinality selects how many right-side records attach to each left record.
type Cardinality string

const (
	// OneToOne attaches at most one right record per left. When several
	// right candidates share a key the first-encountered record in input
	// order wins; callers needing "most recent wins" must sort before
	// indexing.
	OneToOne Cardinality = "one-to-one"
	// OneToMany attaches every right candidate in input order.
	OneToMany Cardinality = "one-to-many"
)

// Wiring errors indicate a caller bug, never a data problem.
var (
	ErrNilIndex   = errors.New("correlate: join requires a non-nil right index")
	ErrNilKeyFunc = errors.New("correlate: join requires a non-nil key func")
)

// Pair is one joined row. Right is set for one-to-one joins, Rights for
// one-to-many.
type Pair[L, R any] struct {
	Left   L
	Right  *R
	Rights []R
}

// JoinResult carries joined rows plus both unmatched sides. SkippedLeft
// counts left records whose join key could not be derived; those records are
// also reported in UnmatchedLeft so no input row disappears silently.
type JoinResult[L, R any] struct {
	Matched        []Pair[L, R]
	UnmatchedLeft  []L
	UnmatchedRight []R
	SkippedLeft    int
}

// Join correlates lefts against a pre-built right index. Multi-step joins
// (student -> assignment -> room assignment) are composed by chaining calls;
// there is no N-way primitive. Output order follows input order on the left
// and index insertion order for UnmatchedRight, so identical inputs always
// produce identical results.
func Join[L, R any](lefts []L, right *Index[R], on KeyFunc[L], cardinality Cardinality) (*JoinResult[L, R], error) {
	if right == nil {
		return nil, ErrNilIndex
	}
	if on == nil {
		return nil, ErrNilKeyFunc
	}

	result := &JoinResult[L, R]{}
	hit := make(map[string]struct{}, right.Len())

	for _, left := range lefts {
		key, ok := on(left)
		if !ok || key == "" {
			result.SkippedLeft++
			result.UnmatchedLeft = append(result.UnmatchedLeft, left)
			continue
		}
		candidates := right.List(key)
		if len(candidates) == 0 {
			result.UnmatchedLeft = append(result.UnmatchedLeft, left)
			continue
		}
		hit[key] = struct{}{}
		if cardinality == OneToMany {
			rights := make([]R, len(candidates))
			copy(rights, candidates)
			result.Matched = append(result.Matched, Pair[L, R]{Left: left, Rights: rights})
			continue
		}
		first := candidates[0]
		result.Matched = append(result.Matched, Pair[L, R]{Left: left, Right: &first})
	}

	for _, key := range right.Keys() {
		if _, matched := hit[key]; matched {
			continue
		}
		result.UnmatchedRight = append(result.UnmatchedRight, right.List(key)...)
	}

	return result, nil
}
