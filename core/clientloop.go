package core

// TerminalOp is a single instruction the backend must perform to bring
// the physical terminal in line with the last rendered frame. core never
// writes escape codes itself; it only describes what changed.
type TerminalOp struct {
	Run        StyledRun
	CursorX    int
	CursorY    int
	IsCursorOp bool
}

// ClientLoop owns the three components and the key interpreter, and
// drives exactly one frame per Tick call. It is single-threaded and
// blocks on nothing: the terminal backend (the bubbletea adapter, or any
// other driver) is responsible for polling input and calling Tick once
// per received event or timer tick.
type ClientLoop struct {
	Editor      *Editor
	Interpreter *KeyInterpreter
	Pane        *EditorPane
	Gutter      *Gutter
	Message     *MessageLine

	front *RenderBuffer
	back  *RenderBuffer
}

// NewClientLoop wires the three components against a width*height
// terminal, reserving the bottom two rows for the gutter and message
// line.
func NewClientLoop(e *Editor, width, height int) *ClientLoop {
	paneHeight := height - 2
	if paneHeight < 1 {
		paneHeight = 1
	}
	pane := NewEditorPane(NewViewport(0, 0, width, paneHeight))
	gutter := NewGutter(NewViewport(0, paneHeight, width, 1))
	message := NewMessageLine(NewViewport(0, paneHeight+1, width, 1))

	return &ClientLoop{
		Editor:      e,
		Interpreter: NewKeyInterpreter(),
		Pane:        pane,
		Gutter:      gutter,
		Message:     message,
		front:       NewRenderBuffer(width, height),
		back:        NewRenderBuffer(width, height),
	}
}

// Resize re-lays the components out for a new terminal size and
// reallocates both render buffers.
func (cl *ClientLoop) Resize(width, height int) {
	paneHeight := height - 2
	if paneHeight < 1 {
		paneHeight = 1
	}
	cl.Pane.Resize(NewViewport(0, 0, width, paneHeight))
	cl.Gutter.Resize(NewViewport(0, paneHeight, width, 1))
	cl.Message.Resize(NewViewport(0, paneHeight+1, width, 1))
	cl.front = NewRenderBuffer(width, height)
	cl.back = NewRenderBuffer(width, height)
}

func (cl *ClientLoop) components() [3]Component {
	return [3]Component{cl.Pane, cl.Gutter, cl.Message}
}

// HandleKey dispatches one key event into the interpreter. Callers
// should follow it with Draw to obtain the resulting terminal ops.
func (cl *ClientLoop) HandleKey(key KeyEvent) {
	cl.Interpreter.HandleKey(cl.Editor, cl.Pane, key)
}

// ShouldQuit reports whether the interpreter has seen a quit key.
func (cl *ClientLoop) ShouldQuit() bool {
	return cl.Interpreter.QuitRequested
}

// Draw runs one full frame: advance transient state, update every
// component's cursor-dependent layout, draw into the back buffer, diff
// it against the front buffer, and swap. It returns the ops the backend
// must apply plus the new physical cursor position.
func (cl *ClientLoop) Draw() (ops []TerminalOp, cursorX, cursorY int) {
	cl.Pane.Tick()

	for _, c := range cl.components() {
		c.UpdateCursor(cl.Editor)
	}

	cl.back.ClearBuffer(Style{Background: background})
	for _, c := range cl.components() {
		c.Draw(cl.back, cl.Editor)
	}

	for _, run := range cl.back.Diff(cl.front) {
		ops = append(ops, TerminalOp{Run: run})
	}
	cl.back.CopyInto(cl.front)

	cx, cy := cl.Pane.VisualCursor(cl.Editor)
	return ops, cx, cy
}
