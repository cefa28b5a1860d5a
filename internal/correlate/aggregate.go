package correlate

// FieldFunc extracts one numeric field from a record. ok=false means the
// field was not entered; a present zero is a real score and must report
// ok=true.
type FieldFunc[T any] func(T) (value float64, ok bool)

// Grouping holds grouped records with deterministic key ordering.
type Grouping[T any] struct {
	Keys    []string
	Groups  map[string][]T
	Skipped int
}

// GroupBy partitions records by key, preserving first-seen key order and
// input order within each group. Unkeyable records are counted, not dropped
// silently.
func GroupBy[T any](records []T, key KeyFunc[T]) Grouping[T] {
	grouping := Grouping[T]{Groups: make(map[string][]T)}
	if key == nil {
		grouping.Skipped = len(records)
		return grouping
	}
	for _, record := range records {
		k, ok := key(record)
		if !ok {
			grouping.Skipped++
			continue
		}
		if _, seen := grouping.Groups[k]; !seen {
			grouping.Keys = append(grouping.Keys, k)
		}
		grouping.Groups[k] = append(grouping.Groups[k], record)
	}
	return grouping
}

// ReduceNumericAverage computes a two-level mean: for each record the mean of
// its present fields, then the mean of those per-record means. ok=false means
// no record contributed any usable value, which is distinct from an average
// of zero.
func ReduceNumericAverage[T any](records []T, fields ...FieldFunc[T]) (float64, bool) {
	var total float64
	var contributors int
	for _, record := range records {
		var sum float64
		var present int
		for _, field := range fields {
			if field == nil {
				continue
			}
			value, ok := field(record)
			if !ok {
				continue
			}
			sum += value
			present++
		}
		if present == 0 {
			continue
		}
		total += sum / float64(present)
		contributors++
	}
	if contributors == 0 {
		return 0, false
	}
	return total / float64(contributors), true
}

// CountBy tallies records per derived key.
func CountBy[T any](records []T, key KeyFunc[T]) map[string]int {
	counts := make(map[string]int)
	if key == nil {
		return counts
	}
	for _, record := range records {
		k, ok := key(record)
		if !ok {
			continue
		}
		counts[k]++
	}
	return counts
}
