package buffer

import "fmt"

// RangeError reports a span that does not fit the buffer. It signals a
// programming error in the caller, never a user-facing condition.
type RangeError struct {
	From int
	To   int
	Len  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("buffer: span [%d,%d) out of range for length %d", e.From, e.To, e.Len)
}

func validSpan(from, to, n int) error {
	if from < 0 || to < from || to > n {
		return &RangeError{From: from, To: to, Len: n}
	}
	return nil
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
