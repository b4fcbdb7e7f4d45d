package core

// Color is a 24-bit RGB color, or the zero value meaning "terminal
// default".
type Color struct {
	R, G, B uint8
	Set     bool
}

// Style is the full presentation of one cell.
type Style struct {
	Foreground Color
	Background Color
	Underline  bool
	Bold       bool
	Reverse    bool
}

// Cell is one character of the terminal grid together with its style.
type Cell struct {
	Character rune
	Style     Style
}

// RenderBuffer is a fixed width*height grid of Cells. All writes clip to
// the buffer's own dimensions and to the Viewport passed in.
type RenderBuffer struct {
	Width, Height int
	data          []Cell
}

func NewRenderBuffer(width, height int) *RenderBuffer {
	rb := &RenderBuffer{Width: width, Height: height}
	rb.data = make([]Cell, width*height)
	rb.ClearBuffer(Style{})
	return rb
}

func (rb *RenderBuffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= rb.Width || y >= rb.Height {
		return 0, false
	}
	return y*rb.Width + x, true
}

// CellAt returns the cell at (x,y), or a blank cell if out of bounds.
func (rb *RenderBuffer) CellAt(x, y int) Cell {
	if i, ok := rb.index(x, y); ok {
		return rb.data[i]
	}
	return Cell{Character: ' '}
}

// PutCell writes one cell at (x,y), clipped to the buffer bounds.
func (rb *RenderBuffer) PutCell(c Cell, x, y int) {
	if i, ok := rb.index(x, y); ok {
		rb.data[i] = c
	}
}

// PutStr writes text starting at (x,y) inside viewport, one cell per
// rune, clipping to both the viewport and the buffer.
func (rb *RenderBuffer) PutStr(text string, x, y int, style Style, vp Viewport) {
	if y < 0 || y >= vp.Height {
		return
	}
	i := 0
	for _, r := range text {
		cx := x + i
		if cx >= vp.Width {
			break
		}
		if cx >= 0 {
			rb.PutCell(Cell{Character: r, Style: style}, vp.Pos.X+cx, vp.Pos.Y+y)
		}
		i++
	}
}

// PutCells writes pre-styled cells starting at (x,y) inside viewport.
func (rb *RenderBuffer) PutCells(cells []Cell, x, y int, vp Viewport) {
	if y < 0 || y >= vp.Height {
		return
	}
	for i, c := range cells {
		cx := x + i
		if cx >= vp.Width {
			break
		}
		if cx >= 0 {
			rb.PutCell(c, vp.Pos.X+cx, vp.Pos.Y+y)
		}
	}
}

// ClearBuffer fills every cell with a space of the given background.
func (rb *RenderBuffer) ClearBuffer(style Style) {
	blank := Cell{Character: ' ', Style: style}
	for i := range rb.data {
		rb.data[i] = blank
	}
}

// CopyInto copies this buffer's cells into other, which must share its
// dimensions.
func (rb *RenderBuffer) CopyInto(other *RenderBuffer) {
	copy(other.data, rb.data)
}

// StyledRun is a maximal contiguous, same-style span of cells that
// differ between two buffers.
type StyledRun struct {
	Content string
	X, Y    int
	Style   Style
}

// Diff walks prev and rb in row-major order and coalesces contiguous,
// same-style differing cells into StyledRuns. prev and rb must share
// dimensions.
func (rb *RenderBuffer) Diff(prev *RenderBuffer) []StyledRun {
	if prev.Width != rb.Width || prev.Height != rb.Height {
		panic("render: diff between buffers of different dimensions")
	}
	var runs []StyledRun
	var cur *StyledRun
	flush := func() {
		if cur != nil {
			runs = append(runs, *cur)
			cur = nil
		}
	}
	for i, c := range rb.data {
		if c == prev.data[i] {
			flush()
			continue
		}
		x, y := i%rb.Width, i/rb.Width
		if cur != nil && cur.Style == c.Style && cur.Y == y && cur.X+len([]rune(cur.Content)) == x {
			cur.Content += string(c.Character)
			continue
		}
		flush()
		cur = &StyledRun{Content: string(c.Character), X: x, Y: y, Style: c.Style}
	}
	flush()
	return runs
}
