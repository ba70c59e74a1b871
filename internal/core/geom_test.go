package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 4, 22, 8)
	if r.Right() != 32 {
		t.Errorf("Right() = %d, expected 32", r.Right())
	}
	if r.Bottom() != 12 {
		t.Errorf("Bottom() = %d, expected 12", r.Bottom())
	}
}

func TestFloorInt(t *testing.T) {
	tests := []struct {
		val      float64
		expected int
	}{
		{1.5, 1},
		{-0.5, -1},
		{-1.5, -2},
		{2, 2},
		{0.999, 0},
		{-1, -1},
	}

	for _, tc := range tests {
		if got := FloorInt(tc.val); got != tc.expected {
			t.Errorf("FloorInt(%v) = %d, expected %d", tc.val, got, tc.expected)
		}
	}
}
