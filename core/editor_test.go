package core

import "testing"

func newTestEditor(lines ...string) *Editor {
	b := NewTextBuffer("test.txt")
	if len(lines) > 0 {
		b.SetLines(lines)
	}
	return NewEditor(b, NewInMemoryClipboard())
}

func TestPutCharAdvancesCursorAndMarksDirty(t *testing.T) {
	e := newTestEditor("ac")
	e.setCursorX(1)
	e.PutChar('b')

	if got := e.Buffer().Lines()[0]; got != "abc" {
		t.Fatalf("line = %q, want %q", got, "abc")
	}
	if e.Cursor().X != 2 {
		t.Errorf("cursor.X = %d, want 2", e.Cursor().X)
	}
	if !e.Buffer().HasChanges() {
		t.Errorf("buffer should be dirty after PutChar")
	}
}

func TestPutNewlineSplitsAtCursorAndTrimsLeadingSpace(t *testing.T) {
	e := newTestEditor("hello   world")
	e.setCursorX(5)
	e.PutNewline()

	lines := e.Buffer().Lines()
	if lines[0] != "hello" || lines[1] != "world" {
		t.Fatalf("lines = %v, want [hello world]", lines)
	}
	if e.Cursor() != (Position{X: 0, Y: 1}) {
		t.Errorf("cursor = %v, want {0 1}", e.Cursor())
	}
}

func TestPopCharRemovesUnderCursor(t *testing.T) {
	e := newTestEditor("abc")
	e.setCursorX(1)
	e.PopChar()
	if got := e.Buffer().Lines()[0]; got != "ac" {
		t.Fatalf("line = %q, want %q", got, "ac")
	}
}

func TestPopBackspaceJoinsLinesAtColumnZero(t *testing.T) {
	e := newTestEditor("foo", "bar")
	e.cursor = Position{X: 0, Y: 1}
	e.PopBackspace()

	lines := e.Buffer().Lines()
	if len(lines) != 1 || lines[0] != "foobar" {
		t.Fatalf("lines = %v, want [foobar]", lines)
	}
	if e.Cursor() != (Position{X: 3, Y: 0}) {
		t.Errorf("cursor = %v, want {3 0}", e.Cursor())
	}
}

func TestMoveCursorLeftRightClampToLineBounds(t *testing.T) {
	e := newTestEditor("ab")
	e.MoveCursorLeft(5)
	if e.Cursor().X != 0 {
		t.Errorf("left clamp: X = %d, want 0", e.Cursor().X)
	}
	// NormalMode slack is 1, so max index on a 2-char line is 1.
	e.MoveCursorRight(5)
	if e.Cursor().X != 1 {
		t.Errorf("right clamp: X = %d, want 1", e.Cursor().X)
	}
}

func TestMoveCursorUpDownPreservesStickyColumn(t *testing.T) {
	e := newTestEditor("abcdef", "xy", "abcdef")
	e.setCursorX(4)
	e.MoveCursorDown(1)
	if e.Cursor().Y != 1 || e.Cursor().X != 1 {
		t.Fatalf("cursor after down onto short line = %v, want {1 1}", e.Cursor())
	}
	e.MoveCursorDown(1)
	if e.Cursor().Y != 2 || e.Cursor().X != 4 {
		t.Fatalf("cursor should restore sticky column, got %v, want {4 2}", e.Cursor())
	}
}

func TestMoveWordCrossesLineBoundary(t *testing.T) {
	e := newTestEditor("foo", "bar baz")
	e.setCursorX(0)
	move := e.MoveWord(1)
	if e.Cursor() != (Position{X: 0, Y: 1}) {
		t.Fatalf("MoveWord across lines: cursor = %v, want {0 1}", e.Cursor())
	}
	if move.Start.Y != 0 {
		t.Errorf("MoveWord start.Y = %d, want 0", move.Start.Y)
	}
}

func TestMoveWordSkipsSeparators(t *testing.T) {
	e := newTestEditor("foo   bar")
	e.setCursorX(0)
	e.MoveWord(1)
	if e.Cursor().X != 6 {
		t.Fatalf("cursor.X = %d, want 6", e.Cursor().X)
	}
}

func TestMoveEndWordLandsOnLastCharOfWord(t *testing.T) {
	e := newTestEditor("foo bar")
	e.setCursorX(0)
	e.MoveEndWord(1)
	if e.Cursor().X != 2 {
		t.Fatalf("cursor.X = %d, want 2", e.Cursor().X)
	}
}

func TestDeleteSelectionSingleLine(t *testing.T) {
	e := newTestEditor("abcdef")
	// end is inclusive: deletes indices 1..3 ("b", "c", "d").
	e.DeleteSelection(MoveInfo{Start: Position{X: 1, Y: 0}, End: Position{X: 3, Y: 0}})
	if got := e.Buffer().Lines()[0]; got != "aef" {
		t.Fatalf("line = %q, want %q", got, "aef")
	}
}

func TestDeleteLinesRemovesWholeRange(t *testing.T) {
	e := newTestEditor("a", "b", "c", "d")
	e.DeleteLines(MoveInfo{Start: Position{Y: 1}, End: Position{Y: 2}})
	lines := e.Buffer().Lines()
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "d" {
		t.Fatalf("lines = %v, want [a d]", lines)
	}
}

func TestCopyThenPasteCharacterwise(t *testing.T) {
	e := newTestEditor("abcdef")
	// End is exclusive for character-wise Copy: this copies "ab".
	e.Copy(MoveInfo{Start: Position{X: 0, Y: 0}, End: Position{X: 2, Y: 0}})
	e.setCursorX(5)
	e.Paste()
	if got := e.Buffer().Lines()[0]; got != "abcdefab" {
		t.Fatalf("line = %q, want %q", got, "abcdefab")
	}
}

func TestCopyLinesThenPasteLinewise(t *testing.T) {
	e := newTestEditor("one", "two", "three")
	e.CopyLines(MoveInfo{Start: Position{Y: 0}, End: Position{Y: 1}})
	e.cursor.Y = 2
	e.Paste()
	lines := e.Buffer().Lines()
	want := []string{"one", "two", "three", "one", "two"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSwitchModeToVisualOpensSelectionAtCursor(t *testing.T) {
	e := newTestEditor("abc")
	e.setCursorX(1)
	e.SwitchMode(VisualMode)

	sel, ok := e.CurrentSelection()
	if !ok {
		t.Fatal("expected an active selection in Visual mode")
	}
	if sel.Start != (Position{X: 1, Y: 0}) || sel.End != (Position{X: 1, Y: 0}) {
		t.Fatalf("selection = %v, want anchor == cursor", sel)
	}
}

func TestSelectionFollowsCursorInVisualMode(t *testing.T) {
	e := newTestEditor("abcdef")
	e.setCursorX(1)
	e.SwitchMode(VisualMode)
	e.MoveCursorRight(2)

	sel, ok := e.CurrentSelection()
	if !ok {
		t.Fatal("expected an active selection")
	}
	if sel.End != e.Cursor() {
		t.Errorf("selection.End = %v, want it to track cursor %v", sel.End, e.Cursor())
	}
}

func TestSwitchModeToNormalClearsSelection(t *testing.T) {
	e := newTestEditor("abc")
	e.SwitchMode(VisualMode)
	e.SwitchMode(NormalMode)
	if _, ok := e.CurrentSelection(); ok {
		t.Error("selection should be cleared on leaving Visual mode")
	}
}

func TestAppendAfterCursorEntersInsertModeOneCellRight(t *testing.T) {
	e := newTestEditor("ab")
	e.setCursorX(0)
	e.AppendAfterCursor()

	if e.Mode() != InsertMode {
		t.Fatalf("mode = %v, want InsertMode", e.Mode())
	}
	if e.Cursor().X != 1 {
		t.Errorf("cursor.X = %d, want 1", e.Cursor().X)
	}
}

func TestMoveToFindsNthOccurrence(t *testing.T) {
	e := newTestEditor("a.b.c.d")
	e.setCursorX(0)
	// offset 0 lands on the match itself (the "find" variant).
	move := e.MoveTo('.', 2, 0)
	if e.Cursor().X != 3 {
		t.Fatalf("cursor.X = %d, want 3 (second dot)", e.Cursor().X)
	}
	if move.Start.X != 0 {
		t.Errorf("move.Start.X = %d, want 0", move.Start.X)
	}
}

func TestMoveToUntilLandsOneBeforeMatch(t *testing.T) {
	e := newTestEditor("a.b.c")
	e.setCursorX(0)
	// offset -1 lands one cell short of the match (the "until" variant).
	e.MoveTo('.', 1, -1)
	if e.Cursor().X != 0 {
		t.Fatalf("cursor.X = %d, want 0 (one before the first dot)", e.Cursor().X)
	}
}

func TestMoveToNoMatchLeavesCursorInPlace(t *testing.T) {
	e := newTestEditor("abc")
	e.setCursorX(1)
	e.MoveTo('z', 1, 0)
	if e.Cursor().X != 1 {
		t.Errorf("cursor.X = %d, want 1 (unchanged)", e.Cursor().X)
	}
}
