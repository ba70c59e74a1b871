package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 2, '#', ColorBrown)

	c := s.GetCell(1, 2)
	if c.Rune != '#' || c.Color != ColorBrown {
		t.Errorf("GetCell(1, 2) = %+v, expected '#' brown", c)
	}

	s.Clear()
	if c := s.GetCell(1, 2); c.Color != ColorDefault || c.Rune != ' ' {
		t.Errorf("Clear() left %+v", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "WAVE", ColorRed)

	if got := s.Row(1)[2:6]; got != "WAVE" {
		t.Errorf("Row(1)[2:6] = %q, expected WAVE", got)
	}
	if s.GetCell(3, 1).Color != ColorRed {
		t.Error("DrawTextColored should apply color")
	}

	// Clipping at the right edge
	s.DrawText(18, 2, "ABCD")
	if s.Get(19, 2) != 'B' {
		t.Errorf("Get(19, 2) = %q, expected 'B'", s.Get(19, 2))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "HI")
	if s.Get(4, 0) != 'H' || s.Get(5, 0) != 'I' {
		t.Errorf("centered text misplaced: %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	corners := []struct {
		x, y int
		r    rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		if s.Get(c.x, c.y) != c.r {
			t.Errorf("Get(%d, %d) = %q, expected %q", c.x, c.y, s.Get(c.x, c.y), c.r)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
	if s.GetCell(3, 4).Color != ColorGray {
		t.Error("box should carry its color")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawHLine(2, 1, 4, '=', ColorDarkRed)
	if got := s.Row(1); got != "  ====    " {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	s.Resize(15, 8)
	if s.Width() != 15 || s.Height() != 8 {
		t.Errorf("After enlarging, dimensions should be 15x8, got %dx%d", s.Width(), s.Height())
	}
	if row0 := s.Row(0); row0 != "Hello          " {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
	// row 5 was cut off by the shrink and must come back blank
	if row5 := s.Row(5); row5 != strings.Repeat(" ", 15) {
		t.Errorf("Row 5 after shrink and grow = %q, expected blank", row5)
	}
	if c := s.GetCell(14, 7); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("New cell = %+v, expected blank", c)
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)
	if got := s.Row(-1); got != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", got)
	}
}

func TestColorANSI(t *testing.T) {
	if ColorDefault.ANSI() != "" {
		t.Errorf("ColorDefault.ANSI() = %q, expected empty", ColorDefault.ANSI())
	}
	if ColorBrown.ANSI() != "130" {
		t.Errorf("ColorBrown.ANSI() = %q, expected 130", ColorBrown.ANSI())
	}
	if Color(200).ANSI() != "" {
		t.Error("unknown colors should fall back to the terminal default")
	}
}
