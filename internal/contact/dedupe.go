package contact

// Dedupe returns the records whose identity key has not been seen earlier in
// the slice, in their original order. Later records sharing an email (in any
// letter case) are dropped whatever their name or phone.
func Dedupe(records []Record) []Record {
	out, _ := dedupe(records)
	return out
}

// dedupe also returns the input indexes that were dropped.
func dedupe(records []Record) ([]Record, []int) {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	var dropped []int
	for i, r := range records {
		key := r.Key()
		if _, ok := seen[key]; ok {
			dropped = append(dropped, i)
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out, dropped
}
