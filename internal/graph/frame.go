package graph

import "fmt"

// FrameRange addresses the time-step subrange of a sequence-shaped tensor
// for one evaluation: a single step, a span of steps, or all frames at once.
type FrameRange struct {
	begin int
	end   int
	all   bool
}

// AllFrames returns a FrameRange covering the whole sequence.
func AllFrames() FrameRange {
	return FrameRange{all: true}
}

// Frame returns a FrameRange addressing the single time step t.
func Frame(t int) FrameRange {
	return FrameRange{begin: t, end: t + 1}
}

// FrameSpan returns a FrameRange addressing time steps [begin, end).
func FrameSpan(begin, end int) FrameRange {
	return FrameRange{begin: begin, end: end}
}

// IsAllFrames reports whether the range covers the whole sequence.
func (fr FrameRange) IsAllFrames() bool {
	return fr.all
}

// TimeRange returns the addressed range [begin, end). For an all-frames
// range it returns [0, steps).
func (fr FrameRange) TimeRange(steps int) (begin, end int) {
	if fr.all {
		return 0, steps
	}
	return fr.begin, fr.end
}

// String returns the bracket syntax used by trace headers: empty for all
// frames, "t" for a single step, "t0..t1" (inclusive) for a span.
func (fr FrameRange) String() string {
	switch {
	case fr.all:
		return ""
	case fr.end == fr.begin+1:
		return fmt.Sprintf("%d", fr.begin)
	default:
		return fmt.Sprintf("%d..%d", fr.begin, fr.end-1)
	}
}
