package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Body is the ordered list of occupied cells, head first.
//
// Shift moves every segment into the cell its predecessor held and records
// the cell the tail vacated, so Grow can hand that cell to a new tail
// segment. After a shift segment i always holds the pre-shift position of
// segment i-1.
type Body struct {
	segments []core.Point
	trail    core.Point
}

// NewBody returns a body of length n with every segment on start.
func NewBody(start core.Point, n int) Body {
	if n < 1 {
		n = 1
	}
	segments := make([]core.Point, n)
	for i := range segments {
		segments[i] = start
	}
	return Body{segments: segments, trail: start}
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return len(b.segments)
}

// Head returns segment 0.
func (b *Body) Head() core.Point {
	return b.segments[0]
}

// Tail returns the last segment.
func (b *Body) Tail() core.Point {
	return b.segments[len(b.segments)-1]
}

// At returns segment i.
func (b *Body) At(i int) core.Point {
	return b.segments[i]
}

// Shift advances the body: pos[i] = pos[i-1] from the tail down to 1, then
// the head moves to head.
func (b *Body) Shift(head core.Point) {
	n := len(b.segments)
	b.trail = b.segments[n-1]
	for i := n - 1; i > 0; i-- {
		b.segments[i] = b.segments[i-1]
	}
	b.segments[0] = head
}

// SetHead replaces the head position without shifting.
func (b *Body) SetHead(p core.Point) {
	b.segments[0] = p
}

// Grow appends one segment on the cell vacated by the last Shift.
func (b *Body) Grow() {
	b.segments = append(b.segments, b.trail)
}

// Contains reports whether any segment occupies p.
func (b *Body) Contains(p core.Point) bool {
	for _, seg := range b.segments {
		if seg == p {
			return true
		}
	}
	return false
}

// HitsSelf reports whether the head shares a cell with any other segment.
func (b *Body) HitsSelf() bool {
	head := b.segments[0]
	for _, seg := range b.segments[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// Segments returns a copy of the segment positions.
func (b *Body) Segments() []core.Point {
	out := make([]core.Point, len(b.segments))
	copy(out, b.segments)
	return out
}
