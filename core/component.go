package core

import (
	"fmt"
	"strings"
)

// Component is the one place in the core that uses dynamic dispatch: the
// set of components is closed (edit pane, gutter, message line), so this
// could equally be a tagged variant, but an interface keeps ClientLoop's
// draw pass a plain loop over a slice.
type Component interface {
	Draw(rb *RenderBuffer, e *Editor)
	Resize(vp Viewport)
	UpdateCursor(e *Editor)
}

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}

func isInSelection(x, y int, sel MoveInfo) bool {
	sel = sel.GetOrdered()
	if sel.Start.Y == sel.End.Y {
		return y == sel.Start.Y && x >= sel.Start.X && x <= sel.End.X
	}
	if y == sel.Start.Y {
		return x >= sel.Start.X
	}
	if y == sel.End.Y {
		return x <= sel.End.X
	}
	return y > sel.Start.Y && y < sel.End.Y
}

// YankHighlightFrames is the number of client-loop frames a yank
// highlight remains visible for after a Copy.
const YankHighlightFrames = 15

// EditorPane owns scroll state and translates Editor cursor positions to
// screen coordinates.
type EditorPane struct {
	viewport   Viewport
	topIndex   int
	sideScroll int
	leftOffset int

	highlightedSelection *MoveInfo
	yankElapsedFrames    int
}

func NewEditorPane(vp Viewport) *EditorPane {
	return &EditorPane{viewport: vp, leftOffset: 4}
}

func (p *EditorPane) Resize(vp Viewport) {
	p.viewport = vp
}

func (p *EditorPane) Viewport() Viewport {
	return p.viewport
}

// MarkYank starts a transient highlight window over span.
func (p *EditorPane) MarkYank(span MoveInfo) {
	cp := span
	p.highlightedSelection = &cp
	p.yankElapsedFrames = 0
}

// Tick advances the yank highlight's frame counter, expiring it once it
// exceeds YankHighlightFrames.
func (p *EditorPane) Tick() {
	if p.highlightedSelection == nil {
		return
	}
	p.yankElapsedFrames++
	if p.yankElapsedFrames > YankHighlightFrames {
		p.highlightedSelection = nil
	}
}

// CenterOn recenters the viewport around row y.
func (p *EditorPane) CenterOn(y int) {
	top := y - p.viewport.Height/2
	if top < 0 {
		top = 0
	}
	p.topIndex = top
}

// UpdateCursor resolves the cursor's tab-aware visual column, then
// rescrolls the viewport horizontally and vertically to keep it visible.
func (p *EditorPane) UpdateCursor(e *Editor) {
	lines := e.Buffer().Lines()
	h := p.viewport.Height
	if h <= 0 {
		h = 1
	}
	cy := e.Cursor().Y

	if cy >= p.topIndex+(3*h)/4 {
		p.topIndex = cy - (3*h)/4
	}
	if cy < p.topIndex+h/4 {
		p.topIndex = cy - h/4
	}
	if p.topIndex < 0 {
		p.topIndex = 0
	}
	if maxTop := len(lines) - h; maxTop >= 0 && p.topIndex > maxTop {
		p.topIndex = maxTop
	}

	p.leftOffset = digits(len(lines)) + 3

	line := []rune(lines[cy])
	takeAmount := e.Cursor().X + 1
	if e.Mode() == InsertMode {
		takeAmount = e.Cursor().X
	}
	rawVisualX := p.leftOffset + e.Cursor().X + shiftwidth(line, takeAmount)

	if rawVisualX-p.sideScroll >= p.viewport.Width {
		p.sideScroll = rawVisualX - p.viewport.Width + 1
	}
	if rawVisualX-p.sideScroll < p.leftOffset {
		p.sideScroll = rawVisualX - p.leftOffset
	}
	if p.sideScroll < 0 {
		p.sideScroll = 0
	}
}

// VisualCursor returns the on-screen column/row the terminal cursor
// should be positioned at, relative to this pane's viewport.
func (p *EditorPane) VisualCursor(e *Editor) (x, y int) {
	lines := e.Buffer().Lines()
	line := []rune(lines[e.Cursor().Y])
	takeAmount := e.Cursor().X + 1
	if e.Mode() == InsertMode {
		takeAmount = e.Cursor().X
	}
	rawVisualX := p.leftOffset + e.Cursor().X + shiftwidth(line, takeAmount)
	return rawVisualX - p.sideScroll, e.Cursor().Y - p.topIndex
}

func (p *EditorPane) buildLineCells(line []rune, y int, e *Editor) []Cell {
	cells := make([]Cell, 0, len(line))
	selMove, inVisual := e.CurrentSelection()
	for x, r := range line {
		style := defaultTextStyle(y == e.Cursor().Y)
		switch {
		case p.highlightedSelection != nil && isInSelection(x, y, *p.highlightedSelection):
			style = highlightedTextStyle()
		case inVisual && isInSelection(x, y, selMove):
			style = highlightedTextStyle()
		}
		if r == '\t' {
			n := spacesTillNextTab(len(cells))
			for i := 0; i < n; i++ {
				cells = append(cells, Cell{Character: ' ', Style: style})
			}
			continue
		}
		cells = append(cells, Cell{Character: r, Style: style})
	}
	return cells
}

func (p *EditorPane) Draw(rb *RenderBuffer, e *Editor) {
	lines := e.Buffer().Lines()
	for row := 0; row < p.viewport.Height; row++ {
		y := p.topIndex + row
		if y >= len(lines) {
			rb.PutStr(strings.Repeat(" ", p.leftOffset-2)+"~", 0, row, defaultLineNumberStyle(false), p.viewport)
			continue
		}
		numStr := fmt.Sprintf("%*d ", p.leftOffset-1, y+1)
		rb.PutStr(numStr, 0, row, defaultLineNumberStyle(y == e.Cursor().Y), p.viewport)

		cells := p.buildLineCells([]rune(lines[y]), y, e)
		start := p.sideScroll
		if start > len(cells) {
			start = len(cells)
		}
		rb.PutCells(cells[start:], p.leftOffset, row, p.viewport)
	}
}

// Gutter renders the one-row mode/path/position status bar.
type Gutter struct {
	viewport Viewport
}

func NewGutter(vp Viewport) *Gutter { return &Gutter{viewport: vp} }

func (g *Gutter) Resize(vp Viewport)        { g.viewport = vp }
func (g *Gutter) UpdateCursor(e *Editor)    {}

func (g *Gutter) Draw(rb *RenderBuffer, e *Editor) {
	dirty := ""
	if e.Buffer().HasChanges() {
		dirty = "+"
	}
	left := fmt.Sprintf("[%s] %s%s", strings.ToUpper(string(e.Mode())), e.Buffer().Path(), dirty)
	posStr := fmt.Sprintf("%d:%d", e.Cursor().Y+1, e.Cursor().X+1)
	right := fmt.Sprintf("%d bytes | %s", e.Buffer().BytesLen(), posStr)

	padWidth := len(posStr) + 3
	if w := g.viewport.Width / 20; w > padWidth {
		padWidth = w
	}

	style := modeStyle(e.Mode())
	rb.PutStr(left, 0, 0, style, g.viewport)
	rightX := g.viewport.Width - len(right)
	if rightX < len(left)+padWidth {
		rightX = len(left) + padWidth
	}
	rb.PutStr(right, rightX, 0, style, g.viewport)
}

// MessageLine renders the editor's last message, left-aligned.
type MessageLine struct {
	viewport Viewport
}

func NewMessageLine(vp Viewport) *MessageLine { return &MessageLine{viewport: vp} }

func (m *MessageLine) Resize(vp Viewport)     { m.viewport = vp }
func (m *MessageLine) UpdateCursor(e *Editor) {}

func (m *MessageLine) Draw(rb *RenderBuffer, e *Editor) {
	rb.PutStr(e.Message(), 0, 0, Style{}, m.viewport)
}
