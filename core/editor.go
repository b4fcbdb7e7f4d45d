package core

import (
	"strings"
	"unicode"
)

// Selection is the active Visual-mode selection: the anchor where Visual
// mode was entered, and the MoveInfo whose End tracks the cursor.
type Selection struct {
	Anchor Position
	Move   MoveInfo
}

// Editor owns the TextBuffer, the cursor, the mode, the last message and
// the clipboard port. It exposes every text-mutating and cursor-moving
// operation the interpreter dispatches into.
type Editor struct {
	buffer    *TextBuffer
	mode      Mode
	cursor    Position
	latestX   int
	selection *Selection
	message   string
	clipboard ClipboardPort
}

func NewEditor(buffer *TextBuffer, clipboard ClipboardPort) *Editor {
	if clipboard == nil {
		clipboard = NewInMemoryClipboard()
	}
	return &Editor{
		buffer:    buffer,
		mode:      NormalMode,
		clipboard: clipboard,
	}
}

func (e *Editor) Buffer() *TextBuffer   { return e.buffer }
func (e *Editor) Mode() Mode            { return e.mode }
func (e *Editor) Cursor() Position      { return e.cursor }
func (e *Editor) LatestX() int          { return e.latestX }
func (e *Editor) Clipboard() ClipboardPort { return e.clipboard }

// CurrentSelection returns the active Visual-mode selection. ok is false
// outside Visual mode.
func (e *Editor) CurrentSelection() (MoveInfo, bool) {
	if e.selection == nil {
		return MoveInfo{}, false
	}
	return e.selection.Move, true
}

func (e *Editor) lineRunes(y int) []rune {
	lines := e.buffer.Lines()
	if y < 0 || y >= len(lines) {
		return nil
	}
	return []rune(lines[y])
}

func (e *Editor) currentLineRunes() []rune {
	return e.lineRunes(e.cursor.Y)
}

func (e *Editor) lineCount() int {
	return len(e.buffer.Lines())
}

func (e *Editor) maxX(y int) int {
	n := len(e.lineRunes(y)) - e.mode.slack()
	if n < 0 {
		return 0
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// visualColumnOf returns the visual column the cursor occupies at logical
// index x on line, accounting for tabs to its left.
func visualColumnOf(line []rune, x int) int {
	if x <= 0 {
		return 0
	}
	return shiftwidth(line, x-1) + x
}

func (e *Editor) setCursorX(x int) {
	e.cursor.X = clamp(x, 0, e.maxX(e.cursor.Y))
	e.latestX = visualColumnOf(e.currentLineRunes(), e.cursor.X)
	e.syncSelection()
}

// syncSelection keeps the active selection's end equal to the cursor
// position whenever the cursor moves in Visual mode.
func (e *Editor) syncSelection() {
	if e.selection != nil {
		e.selection.Move = MoveInfo{Start: e.selection.Anchor, End: e.cursor}
	}
}

// ---- 4.2 text operations -------------------------------------------------

func (e *Editor) setLine(y int, s string) {
	lines := e.buffer.Lines()
	lines[y] = s
	e.buffer.SetLines(lines)
}

func (e *Editor) removeLine(y int) {
	lines := e.buffer.Lines()
	lines = append(lines[:y], lines[y+1:]...)
	e.buffer.SetLines(lines)
}

func (e *Editor) insertLineAt(y int, s string) {
	lines := e.buffer.Lines()
	lines = append(lines, "")
	copy(lines[y+1:], lines[y:])
	lines[y] = s
	e.buffer.SetLines(lines)
}

// PutChar inserts c at the cursor and advances the cursor by one.
func (e *Editor) PutChar(c rune) {
	line := e.currentLineRunes()
	x := clamp(e.cursor.X, 0, len(line))
	next := make([]rune, 0, len(line)+1)
	next = append(next, line[:x]...)
	next = append(next, c)
	next = append(next, line[x:]...)
	e.setLine(e.cursor.Y, string(next))
	e.buffer.markDirty()
	e.cursor.X = x + 1
	e.latestX = visualColumnOf(e.currentLineRunes(), e.cursor.X)
}

// PutNewline splits the current line at the cursor; the tail, with
// leading spaces and tabs trimmed, becomes a new line at y+1.
func (e *Editor) PutNewline() {
	line := e.currentLineRunes()
	x := clamp(e.cursor.X, 0, len(line))
	head := string(line[:x])
	tail := strings.TrimLeft(string(line[x:]), " \t")
	e.setLine(e.cursor.Y, head)
	e.insertLineAt(e.cursor.Y+1, tail)
	e.buffer.markDirty()
	e.cursor = Position{X: 0, Y: e.cursor.Y + 1}
	e.latestX = 0
}

// PopChar removes the character under the cursor.
func (e *Editor) PopChar() {
	line := e.currentLineRunes()
	x := e.cursor.X
	if x < 0 || x >= len(line) {
		return
	}
	next := append(append([]rune{}, line[:x]...), line[x+1:]...)
	if len(next) == 0 && e.lineCount() > 1 {
		e.removeLine(e.cursor.Y)
		if e.cursor.Y > 0 {
			e.cursor.Y--
		}
	} else {
		e.setLine(e.cursor.Y, string(next))
	}
	e.buffer.markDirty()
	if e.cursor.X > e.maxX(e.cursor.Y) {
		e.setCursorX(e.cursor.X - 1)
	} else {
		e.setCursorX(e.cursor.X)
	}
}

// PopBackspace deletes the character to the left of the cursor, or joins
// the current line onto the previous one at column 0.
func (e *Editor) PopBackspace() {
	if e.cursor.X > 0 {
		e.setCursorX(e.cursor.X - 1)
		e.PopChar()
		return
	}
	if e.cursor.Y == 0 {
		return
	}
	prevLen := len(e.lineRunes(e.cursor.Y - 1))
	e.JoinLines(e.cursor.Y-1, e.cursor.Y)
	e.cursor = Position{X: prevLen, Y: e.cursor.Y - 1}
	e.setCursorX(prevLen)
}

// JoinLines concatenates lines[b] onto lines[a] and removes b.
func (e *Editor) JoinLines(a, b int) {
	if a == b {
		return
	}
	lines := e.buffer.Lines()
	joined := lines[a] + lines[b]
	e.setLine(a, joined)
	e.removeLine(b)
	e.buffer.markDirty()
}

// DeleteSelection removes the characters spanned by m (character-wise).
func (e *Editor) DeleteSelection(m MoveInfo) {
	m = m.GetOrdered()
	start, end := m.Start, m.End
	if start.Y == end.Y {
		line := e.lineRunes(start.Y)
		ex := clamp(end.X, start.X, len(line))
		next := append(append([]rune{}, line[:start.X]...), line[ex+1:]...)
		if len(next) == 0 && e.lineCount() > 1 {
			e.removeLine(start.Y)
		} else {
			e.setLine(start.Y, string(next))
		}
	} else {
		startLine := e.lineRunes(start.Y)
		endLine := e.lineRunes(end.Y)
		ex := clamp(end.X, 0, len(endLine)-1)
		head := string(startLine[:clamp(start.X, 0, len(startLine))])
		tail := string(endLine[clamp(ex+1, 0, len(endLine)):])
		e.setLine(start.Y, head)
		for y := end.Y; y > start.Y; y-- {
			e.removeLine(y)
		}
		joined := head + tail
		e.setLine(start.Y, joined)
		if joined == "" && e.lineCount() > 1 {
			e.removeLine(start.Y)
		}
	}
	e.buffer.markDirty()
	e.cursor = start
	e.setCursorX(start.X)
	e.cursor.Y = clamp(e.cursor.Y, 0, e.lineCount()-1)
}

// DeleteLines removes every whole line spanned by m.
func (e *Editor) DeleteLines(m MoveInfo) {
	m = m.GetOrdered()
	lines := e.buffer.Lines()
	from := clamp(m.Start.Y, 0, len(lines)-1)
	to := clamp(m.End.Y, 0, len(lines)-1)
	kept := append([]string{}, lines[:from]...)
	kept = append(kept, lines[to+1:]...)
	if len(kept) == 0 {
		kept = []string{""}
	}
	e.buffer.SetLines(kept)
	e.buffer.markDirty()
	e.cursor.Y = clamp(from, 0, e.lineCount()-1)
	e.setCursorX(0)
}

// ---- 4.3 motions ----------------------------------------------------------

func (e *Editor) MoveCursorLeft(n int) MoveInfo {
	start := e.cursor
	e.setCursorX(e.cursor.X - n)
	return MoveInfo{Start: start, End: e.cursor}
}

func (e *Editor) MoveCursorRight(n int) MoveInfo {
	start := e.cursor
	e.setCursorX(e.cursor.X + n)
	return MoveInfo{Start: start, End: e.cursor}
}

func (e *Editor) MoveCursorUp(n int) MoveInfo {
	start := e.cursor
	newY := clamp(e.cursor.Y-n, 0, e.lineCount()-1)
	e.cursor.Y = newY
	e.cursor.X = nextLineCursorIndex(e.latestX, e.currentLineRunes(), e.mode)
	e.syncSelection()
	return MoveInfo{Start: start, End: e.cursor}
}

func (e *Editor) MoveCursorDown(n int) MoveInfo {
	start := e.cursor
	newY := clamp(e.cursor.Y+n, 0, e.lineCount()-1)
	e.cursor.Y = newY
	e.cursor.X = nextLineCursorIndex(e.latestX, e.currentLineRunes(), e.mode)
	e.syncSelection()
	return MoveInfo{Start: start, End: e.cursor}
}

// MoveTo finds the count-th occurrence of ch strictly after the cursor on
// the current line. offset is 0 to land on the match ("find"), -1 to land
// one before it ("until").
func (e *Editor) MoveTo(ch rune, count, offset int) MoveInfo {
	start := e.cursor
	line := e.currentLineRunes()
	found := -1
	seen := 0
	for i := e.cursor.X + 1; i < len(line); i++ {
		if line[i] == ch {
			seen++
			if seen == count {
				found = i
				break
			}
		}
	}
	if found == -1 {
		return MoveInfo{Start: start, End: start}
	}
	e.setCursorX(clamp(found+offset, 0, len(line)))
	return MoveInfo{Start: start, End: e.cursor}
}

func isAlnum(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

func isSeparator(r rune) bool { return !isAlnum(r) || unicode.IsSpace(r) }

func (e *Editor) charAt(p Position) (rune, bool) {
	lines := e.buffer.Lines()
	if p.Y < 0 || p.Y >= len(lines) {
		return 0, false
	}
	line := []rune(lines[p.Y])
	if p.X < len(line) {
		return line[p.X], true
	}
	if p.X == len(line) && p.Y < len(lines)-1 {
		return '\n', true
	}
	return 0, false
}

func (e *Editor) stepForward(p Position) (Position, bool) {
	line := e.lineRunes(p.Y)
	if p.X < len(line) {
		return Position{X: p.X + 1, Y: p.Y}, true
	}
	if p.Y < e.lineCount()-1 {
		return Position{X: 0, Y: p.Y + 1}, true
	}
	return p, false
}

func (e *Editor) stepBackward(p Position) (Position, bool) {
	if p.X > 0 {
		return Position{X: p.X - 1, Y: p.Y}, true
	}
	if p.Y > 0 {
		return Position{X: len(e.lineRunes(p.Y - 1)), Y: p.Y - 1}, true
	}
	return p, false
}

func (e *Editor) clampDocEnd(p Position) Position {
	if p.Y == e.lineCount()-1 {
		last := e.lineRunes(p.Y)
		if p.X >= len(last) {
			if len(last) > 0 {
				p.X = len(last) - 1
			} else {
				p.X = 0
			}
		}
	}
	return p
}

func (e *Editor) wordForwardOnce(p Position) Position {
	c, ok := e.charAt(p)
	if !ok {
		return p
	}
	cls := isSeparator(c)
	cur := p
	for {
		nxt, ok2 := e.stepForward(cur)
		if !ok2 {
			return e.clampDocEnd(cur)
		}
		c2, ok3 := e.charAt(nxt)
		if !ok3 {
			return e.clampDocEnd(nxt)
		}
		cur = nxt
		if isSeparator(c2) != cls {
			break
		}
	}
	for {
		c2, ok2 := e.charAt(cur)
		if !ok2 || !isSeparator(c2) {
			break
		}
		nxt, ok3 := e.stepForward(cur)
		if !ok3 {
			break
		}
		cur = nxt
	}
	return e.clampDocEnd(cur)
}

// MoveWord moves forward by n word starts.
func (e *Editor) MoveWord(n int) MoveInfo {
	start := e.cursor
	cur := e.cursor
	for i := 0; i < n; i++ {
		cur = e.wordForwardOnce(cur)
	}
	e.cursor = cur
	e.latestX = visualColumnOf(e.currentLineRunes(), e.cursor.X)
	e.syncSelection()
	return MoveInfo{Start: start, End: e.cursor}
}

func (e *Editor) wordEndForwardOnce(p Position) Position {
	cur, ok := e.stepForward(p)
	if !ok {
		return p
	}
	for {
		c, ok2 := e.charAt(cur)
		if !ok2 || !isSeparator(c) {
			break
		}
		nxt, ok3 := e.stepForward(cur)
		if !ok3 {
			return cur
		}
		cur = nxt
	}
	for {
		nxt, ok2 := e.stepForward(cur)
		if !ok2 {
			break
		}
		c2, ok3 := e.charAt(nxt)
		if !ok3 || isSeparator(c2) {
			break
		}
		cur = nxt
	}
	return cur
}

// MoveEndWord moves forward to the nth word end.
func (e *Editor) MoveEndWord(n int) MoveInfo {
	start := e.cursor
	cur := e.cursor
	for i := 0; i < n; i++ {
		cur = e.wordEndForwardOnce(cur)
	}
	e.cursor = cur
	e.latestX = visualColumnOf(e.currentLineRunes(), e.cursor.X)
	e.syncSelection()
	return MoveInfo{Start: start, End: e.cursor}
}

func (e *Editor) wordBackwardOnce(p Position) Position {
	cur, ok := e.stepBackward(p)
	if !ok {
		return p
	}
	for {
		c, ok2 := e.charAt(cur)
		if !ok2 || !isSeparator(c) {
			break
		}
		prev, ok3 := e.stepBackward(cur)
		if !ok3 {
			return cur
		}
		cur = prev
	}
	c0, ok0 := e.charAt(cur)
	if ok0 && !isSeparator(c0) {
		for {
			prev, ok2 := e.stepBackward(cur)
			if !ok2 {
				break
			}
			c2, ok3 := e.charAt(prev)
			if !ok3 || isSeparator(c2) {
				break
			}
			cur = prev
		}
	}
	return cur
}

// MoveEndWordBackwards moves backward by n word starts.
func (e *Editor) MoveEndWordBackwards(n int) MoveInfo {
	start := e.cursor
	cur := e.cursor
	for i := 0; i < n; i++ {
		cur = e.wordBackwardOnce(cur)
	}
	e.cursor = cur
	e.latestX = visualColumnOf(e.currentLineRunes(), e.cursor.X)
	e.syncSelection()
	return MoveInfo{Start: start, End: e.cursor}
}

// MoveToEnd moves the cursor to the last character of the current line.
func (e *Editor) MoveToEnd() MoveInfo {
	start := e.cursor
	line := e.currentLineRunes()
	last := len(line) - 1
	if last < 0 {
		last = 0
	}
	e.cursor.X = last
	e.latestX = visualColumnOf(line, e.cursor.X)
	e.syncSelection()
	return MoveInfo{Start: start, End: e.cursor}
}

// ---- 4.4 clipboard operations ---------------------------------------------

// Copy stores the character-wise text spanned by m and returns the
// MoveInfo actually copied.
func (e *Editor) Copy(m MoveInfo) MoveInfo {
	m = m.GetOrdered()
	start, end := m.Start, m.End
	var text string
	if start.Y == end.Y {
		line := e.lineRunes(start.Y)
		ex := clamp(end.X, start.X, len(line))
		text = string(line[start.X:ex])
	} else {
		var b strings.Builder
		startLine := e.lineRunes(start.Y)
		b.WriteString(string(startLine[clamp(start.X, 0, len(startLine)):]))
		for y := start.Y + 1; y < end.Y; y++ {
			b.WriteString("\n")
			b.WriteString(string(e.lineRunes(y)))
		}
		b.WriteString("\n")
		endLine := e.lineRunes(end.Y)
		ex := clamp(end.X, 0, len(endLine))
		b.WriteString(string(endLine[:ex]))
		text = b.String()
	}
	if err := e.clipboard.Set(text); err != nil {
		e.DispatchError(ErrClipboard, err)
	}
	return MoveInfo{Start: start, End: end}
}

// CopyLines joins every whole line spanned by m, with a trailing newline
// marking the payload as line-wise for Paste.
func (e *Editor) CopyLines(m MoveInfo) MoveInfo {
	m = m.GetOrdered()
	lines := e.buffer.Lines()
	from := clamp(m.Start.Y, 0, len(lines)-1)
	to := clamp(m.End.Y, 0, len(lines)-1)
	text := strings.Join(lines[from:to+1], "\n") + "\n"
	if err := e.clipboard.Set(text); err != nil {
		e.DispatchError(ErrClipboard, err)
	}
	return MoveInfo{Start: Position{X: 0, Y: from}, End: Position{X: 0, Y: to}}
}

// Paste inserts the clipboard contents after the cursor: a character-wise
// payload to the right of the cursor cell, a line-wise payload (one with
// a trailing newline) below the current line.
func (e *Editor) Paste() {
	text, err := e.clipboard.Get()
	if err != nil {
		e.DispatchError(ErrClipboard, err)
		return
	}
	if text == "" {
		return
	}
	if strings.HasSuffix(text, "\n") {
		body := strings.TrimSuffix(text, "\n")
		newLines := strings.Split(body, "\n")
		lines := e.buffer.Lines()
		at := e.cursor.Y + 1
		merged := append([]string{}, lines[:at]...)
		merged = append(merged, newLines...)
		merged = append(merged, lines[at:]...)
		e.buffer.SetLines(merged)
		e.buffer.markDirty()
		e.cursor.Y++
		e.setCursorX(0)
		return
	}

	parts := strings.Split(text, "\n")
	line := e.currentLineRunes()
	x := clamp(e.cursor.X+1, 0, len(line))
	if len(parts) == 1 {
		next := make([]rune, 0, len(line)+len([]rune(text)))
		next = append(next, line[:x]...)
		next = append(next, []rune(text)...)
		next = append(next, line[x:]...)
		e.setLine(e.cursor.Y, string(next))
		e.buffer.markDirty()
		e.setCursorX(x + len([]rune(text)))
		return
	}
	head := string(line[:x])
	tail := string(line[x:])
	lines := e.buffer.Lines()
	newLines := append([]string{}, lines[:e.cursor.Y]...)
	newLines = append(newLines, head+parts[0])
	newLines = append(newLines, parts[1:len(parts)-1]...)
	newLines = append(newLines, parts[len(parts)-1]+tail)
	newLines = append(newLines, lines[e.cursor.Y+1:]...)
	e.buffer.SetLines(newLines)
	e.buffer.markDirty()
	e.cursor.Y += len(parts) - 1
	e.setCursorX(len([]rune(parts[len(parts)-1])))
}

// ---- mode switching ---------------------------------------------------------

// SwitchMode transitions to newMode, applying the cursor adjustment and
// selection bookkeeping each mode requires.
func (e *Editor) SwitchMode(newMode Mode) {
	switch newMode {
	case NormalMode:
		if e.mode == InsertMode {
			e.setCursorXRaw(e.cursor.X - 2)
			e.setCursorXRaw(e.cursor.X + 1)
		}
		e.selection = nil
	case InsertMode:
		e.selection = nil
	case VisualMode:
		e.selection = &Selection{
			Anchor: e.cursor,
			Move:   MoveInfo{Start: e.cursor, End: e.cursor},
		}
	}
	e.mode = newMode
}

// setCursorXRaw clamps using NormalMode slack regardless of the current
// mode, used while still transitioning out of Insert.
func (e *Editor) setCursorXRaw(x int) {
	maxX := len(e.currentLineRunes()) - 1
	if maxX < 0 {
		maxX = 0
	}
	e.cursor.X = clamp(x, 0, maxX)
}

// MoveCursorTo moves the cursor to (x, y), clamped to the buffer and the
// mode's slack, and keeps the Visual-mode selection's End on the cursor.
func (e *Editor) MoveCursorTo(x, y int) {
	y = clamp(y, 0, e.lineCount()-1)
	x = clamp(x, 0, e.maxX(y))
	e.cursor = Position{X: x, Y: y}
	e.latestX = visualColumnOf(e.currentLineRunes(), x)
	e.syncSelection()
}

// AppendAfterCursor implements Normal mode 'a': step one cell right of
// the Normal-mode slack (if the line isn't empty) and enter Insert.
func (e *Editor) AppendAfterCursor() {
	line := e.currentLineRunes()
	if len(line) > 0 && e.cursor.X < len(line) {
		e.cursor.X++
	}
	e.SwitchMode(InsertMode)
}
