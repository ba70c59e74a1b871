package core

import "testing"

func TestActionStringRoundTrip(t *testing.T) {
	for a := ActionNone; a <= ActionPause; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v; expected %v", a.String(), got, ok, a)
		}
	}

	if _, ok := ParseAction("Jump"); ok {
		t.Error("ParseAction should reject unknown names")
	}
}

func TestInputFrameList(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionHardDrop)
	f.Set(ActionLeft)

	list := f.List()
	if len(list) != 2 || list[0] != ActionLeft || list[1] != ActionHardDrop {
		t.Errorf("List() = %v, expected [Left HardDrop]", list)
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear() should empty the frame")
	}
	if !clone.Has(ActionLeft) {
		t.Error("Clone() should be independent of the original")
	}
}
