package clock

import "time"

// Clock is injected wherever "today" matters, so date comparisons are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
