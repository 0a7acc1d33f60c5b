package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := FrameOf(ActionLeft, ActionSelect)

	if !f.Has(ActionLeft) || !f.Has(ActionSelect) {
		t.Error("FrameOf should set the given actions")
	}
	if f.Has(ActionPause) {
		t.Error("unset action reported as active")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should leave the frame empty")
	}
	if !clone.Has(ActionSelect) {
		t.Error("Clone should not share storage with the original")
	}

	var zero InputFrame
	if zero.Has(ActionUp) || !zero.Empty() {
		t.Error("zero frame should be empty")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputFrameList(t *testing.T) {
	f := FrameOf(ActionPause, ActionUp)
	got := f.List()
	if len(got) != 2 || got[0] != ActionUp || got[1] != ActionPause {
		t.Errorf("List() = %v, expected [Up Pause]", got)
	}
}

func TestActionNames(t *testing.T) {
	for a := ActionNone; a <= ActionQuit; a++ {
		parsed, ok := ParseAction(a.String())
		if !ok || parsed != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), parsed, ok)
		}
	}
	if Action(99).String() != "Unknown" {
		t.Error("out of range action should be Unknown")
	}
	if a, ok := ParseAction("select"); !ok || a != ActionSelect {
		t.Errorf("ParseAction is case-insensitive, got %v, %v", a, ok)
	}
	if _, ok := ParseAction("Jump"); ok {
		t.Error("Jump is not an action")
	}
}
