package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestNewBodyCoiled(t *testing.T) {
	start := core.Point{X: 2, Y: 3}
	b := NewBody(start, 4)

	if b.Len() != 4 {
		t.Fatalf("Expected length 4, got %d", b.Len())
	}
	for i := 0; i < b.Len(); i++ {
		if b.At(i) != start {
			t.Errorf("Segment %d = %v, want %v", i, b.At(i), start)
		}
	}
	if b.HitsSelf() {
		t.Error("A coiled body has not hit itself until the head moves")
	}
}

func TestNewBodyMinimumLength(t *testing.T) {
	b := NewBody(core.Point{}, 0)
	if b.Len() != 1 {
		t.Errorf("Expected length clamped to 1, got %d", b.Len())
	}
}

func TestBodyShift(t *testing.T) {
	b := NewBody(core.Point{}, 3)
	b.Shift(core.Point{X: 1})
	b.Shift(core.Point{X: 2})

	want := []core.Point{{X: 2}, {X: 1}, {X: 0}}
	for i, p := range want {
		if b.At(i) != p {
			t.Errorf("Segment %d = %v, want %v", i, b.At(i), p)
		}
	}
	if b.Head() != (core.Point{X: 2}) || b.Tail() != (core.Point{}) {
		t.Errorf("Head/Tail = %v/%v", b.Head(), b.Tail())
	}
}

func TestBodyGrowUsesTrail(t *testing.T) {
	b := NewBody(core.Point{}, 2)
	b.Shift(core.Point{X: 1})
	b.Shift(core.Point{X: 2})
	// Tail was at (0,0) before the last shift.
	b.Grow()

	if b.Len() != 3 {
		t.Fatalf("Expected length 3, got %d", b.Len())
	}
	if b.Tail() != (core.Point{}) {
		t.Errorf("New tail should be the vacated cell, got %v", b.Tail())
	}
}

func TestBodyContainsAndHitsSelf(t *testing.T) {
	b := NewBody(core.Point{}, 1)
	for _, p := range []core.Point{{X: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}} {
		b.Shift(p)
		b.Grow()
	}
	// Body: (0,1) (1,1) (1,0) (0,0)
	if !b.Contains(core.Point{X: 1, Y: 1}) {
		t.Error("Contains should find a body cell")
	}
	if b.Contains(core.Point{X: 5, Y: 5}) {
		t.Error("Contains should not find an empty cell")
	}
	if b.HitsSelf() {
		t.Fatal("Body should not collide yet")
	}

	b.Shift(core.Point{X: 1, Y: 1})
	if !b.HitsSelf() {
		t.Error("Moving the head onto the body should collide")
	}
}

func TestBodySegmentsIsCopy(t *testing.T) {
	b := NewBody(core.Point{}, 2)
	segs := b.Segments()
	segs[0] = core.Point{X: 9, Y: 9}
	if b.Head() != (core.Point{}) {
		t.Error("Segments should return a copy")
	}
}

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Direction
	}{
		{DirUp, DirDown},
		{DirDown, DirUp},
		{DirLeft, DirRight},
		{DirRight, DirLeft},
	}

	for _, tt := range tests {
		if got := tt.dir.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.dir, got, tt.want)
		}
		if !tt.want.IsReverseOf(tt.dir) {
			t.Errorf("%v should be the reverse of %v", tt.want, tt.dir)
		}
		if tt.dir.IsReverseOf(tt.dir) {
			t.Errorf("%v should not be its own reverse", tt.dir)
		}
		sum := tt.dir.Delta().Add(tt.want.Delta())
		if sum != (core.Point{}) {
			t.Errorf("Deltas of %v and %v should cancel, got %v", tt.dir, tt.want, sum)
		}
	}
}

func TestDirectionFromAction(t *testing.T) {
	tests := []struct {
		action core.Action
		want   Direction
		ok     bool
	}{
		{core.ActionUp, DirUp, true},
		{core.ActionDown, DirDown, true},
		{core.ActionLeft, DirLeft, true},
		{core.ActionRight, DirRight, true},
		{core.ActionPause, DirRight, false},
		{core.ActionRestart, DirRight, false},
	}

	for _, tt := range tests {
		got, ok := DirectionFromAction(tt.action)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("DirectionFromAction(%v) = %v, %v; want %v, %v", tt.action, got, ok, tt.want, tt.ok)
		}
	}
}
