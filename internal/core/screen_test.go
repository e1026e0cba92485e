package core

import (
	"strings"
	"testing"
)

// frame joins rows into the form Screen.String returns.
func frame(rows ...string) string {
	return strings.Join(rows, "\n")
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(4, 2)

	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("Expected a 4x2 screen, got %dx%d", s.Width(), s.Height())
	}
	if got := s.String(); got != frame("    ", "    ") {
		t.Errorf("New screen should be blank, got %q", got)
	}
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		draw func(s *Screen)
		want string
	}{
		{
			name: "box around a playfield",
			w:    5, h: 4,
			draw: func(s *Screen) { s.DrawBox(NewRect(0, 0, 5, 4)) },
			want: frame("┌───┐", "│   │", "│   │", "└───┘"),
		},
		{
			name: "text clipped at the right edge",
			w:    6, h: 1,
			draw: func(s *Screen) { s.DrawText(3, 0, "Score") },
			want: frame("   Sco"),
		},
		{
			name: "text starting left of the screen",
			w:    4, h: 1,
			draw: func(s *Screen) { s.DrawText(-2, 0, "abcdef") },
			want: frame("cdef"),
		},
		{
			name: "centered overlay",
			w:    11, h: 1,
			draw: func(s *Screen) { s.DrawTextCentered(0, "Game Over") },
			want: frame(" Game Over "),
		},
		{
			name: "centered multibyte text counts runes",
			w:    7, h: 1,
			draw: func(s *Screen) { s.DrawTextCentered(0, "─O─") },
			want: frame("  ─O─  "),
		},
		{
			name: "filled rect and line",
			w:    5, h: 3,
			draw: func(s *Screen) {
				s.DrawRect(NewRect(1, 0, 2, 2), '#')
				s.DrawHLine(0, 2, 9, '=')
			},
			want: frame(" ##  ", " ##  ", "====="),
		},
		{
			name: "out of bounds writes ignored",
			w:    3, h: 2,
			draw: func(s *Screen) {
				s.Set(-1, 0, 'x')
				s.Set(3, 0, 'x')
				s.Set(0, -1, 'x')
				s.Set(0, 2, 'x')
				s.Set(1, 1, 'o')
			},
			want: frame("   ", " o "),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(tt.w, tt.h)
			tt.draw(s)
			if got := s.String(); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestScreenClearAndGet(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawRect(NewRect(0, 0, 3, 3), '@')

	if s.Get(1, 1) != '@' {
		t.Errorf("Get(1, 1) = %q, expected '@'", s.Get(1, 1))
	}
	if s.Get(-1, 0) != ' ' || s.Get(0, 5) != ' ' {
		t.Error("Out of bounds Get should return space")
	}

	s.Clear()
	if got := s.String(); got != frame("   ", "   ", "   ") {
		t.Errorf("Clear should blank the screen, got %q", got)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "Snake")
	s.DrawText(0, 2, "tail")

	s.Resize(3, 2)
	if got := s.String(); got != frame("Sna", "   ") {
		t.Errorf("Shrinking should keep the top-left corner, got %q", got)
	}

	s.Resize(4, 3)
	if got := s.String(); got != frame("Sna ", "    ", "    ") {
		t.Errorf("Growing should keep content and blank the rest, got %q", got)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(6, 2)
	s.DrawText(1, 1, "HUD")

	if got := s.Row(1); got != " HUD  " {
		t.Errorf("Row(1) = %q", got)
	}
	if got := s.Row(-1); got != "      " {
		t.Errorf("Out of bounds row should be spaces, got %q", got)
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(2, 1, 'O', ColorBrightGreen)
	s.DrawTextColored(0, 2, "ab", ColorRed)

	if c := s.GetCell(2, 1); c.Rune != 'O' || c.Color != ColorBrightGreen {
		t.Errorf("GetCell(2, 1) = %+v, expected 'O' in bright green", c)
	}
	if c := s.GetCell(1, 2); c.Rune != 'b' || c.Color != ColorRed {
		t.Errorf("GetCell(1, 2) = %+v, expected 'b' in red", c)
	}

	// Plain Set resets the color.
	s.Set(2, 1, 'x')
	if c := s.GetCell(2, 1); c.Color != ColorDefault {
		t.Errorf("Set should use the default color, got %v", c.Color)
	}

	s.Clear()
	if c := s.GetCell(0, 2); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("After Clear, GetCell(0, 2) = %+v", c)
	}
	if c := s.GetCell(-1, 0); c.Rune != ' ' {
		t.Errorf("Out of bounds GetCell should be blank, got %+v", c)
	}
}
