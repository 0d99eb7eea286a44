package model

// ByteRange is an end-inclusive span of file bytes.
type ByteRange struct {
	Start uint64
	End   uint64
}

// Length returns the number of payload bytes the range covers.
func (r ByteRange) Length() uint64 {
	return r.End - r.Start + 1
}

// RangeSet holds ranges in the order the client requested them.
// Overlapping and out-of-order ranges are kept exactly as requested,
// never sorted, merged or deduplicated.
type RangeSet []ByteRange

// TotalLength returns the summed payload length of all ranges.
func (s RangeSet) TotalLength() uint64 {
	var total uint64
	for _, r := range s {
		total += r.Length()
	}
	return total
}
