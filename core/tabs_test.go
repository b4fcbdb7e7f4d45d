package core

import "testing"

func TestSpacesTillNextTab(t *testing.T) {
	cases := []struct {
		i, want int
	}{
		{0, TabStop},
		{1, TabStop - 1},
		{TabStop, TabStop},
		{TabStop + 1, TabStop - 1},
	}
	for _, c := range cases {
		if got := spacesTillNextTab(c.i); got != c.want {
			t.Errorf("spacesTillNextTab(%d) = %d, want %d", c.i, got, c.want)
		}
	}
}

func TestShiftwidthNoTabs(t *testing.T) {
	s := []rune("hello")
	if got := shiftwidth(s, 4); got != 0 {
		t.Errorf("shiftwidth with no tabs = %d, want 0", got)
	}
}

func TestShiftwidthOneLeadingTab(t *testing.T) {
	s := []rune("\tx")
	// the tab at index 0 contributes TabStop-1 extra columns
	if got := shiftwidth(s, 1); got != TabStop-1 {
		t.Errorf("shiftwidth(%q, 1) = %d, want %d", string(s), got, TabStop-1)
	}
}

func TestVisualLengthAt(t *testing.T) {
	s := []rune("ab")
	if got := visualLengthAt(s, -1); got != 0 {
		t.Errorf("visualLengthAt(-1) = %d, want 0", got)
	}
	if got := visualLengthAt(s, 1); got != 2 {
		t.Errorf("visualLengthAt(1) = %d, want 2", got)
	}
}

func TestNextLineCursorIndexClampsToModeSlack(t *testing.T) {
	line := []rune("abc")
	// NormalMode slack is 1: max index is len(line)-1 = 2
	if got := nextLineCursorIndex(100, line, NormalMode); got != 2 {
		t.Errorf("nextLineCursorIndex (normal) = %d, want 2", got)
	}
	// InsertMode slack is 0: max index is len(line) = 3
	if got := nextLineCursorIndex(100, line, InsertMode); got != 3 {
		t.Errorf("nextLineCursorIndex (insert) = %d, want 3", got)
	}
}

func TestNextLineCursorIndexWithTabs(t *testing.T) {
	line := []rune("\tabc")
	// visual column 0 maps to logical index 0
	if got := nextLineCursorIndex(0, line, NormalMode); got != 0 {
		t.Errorf("nextLineCursorIndex(0) = %d, want 0", got)
	}
	// the tab occupies columns [0,TabStop), so a desired column of TabStop
	// lands right after it, at logical index 1
	if got := nextLineCursorIndex(TabStop, line, NormalMode); got != 1 {
		t.Errorf("nextLineCursorIndex(TabStop) = %d, want 1", got)
	}
}
