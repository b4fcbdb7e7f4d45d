// Package bubble_adapter wires the core editor engine into a
// charm.land/bubbletea/v2 program. It owns no editing semantics: every
// key is translated into a core.KeyEvent and handed to the
// core.KeyInterpreter, and every frame is rendered by walking a
// core.RenderBuffer built by the core components.
package bubble_adapter

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	core "github.com/AlexGoodlife/not-vim/core"
)

// atottoClipboard adapts github.com/atotto/clipboard to core.ClipboardPort,
// reaching the OS clipboard instead of the in-process one core falls back
// to when no ClipboardPort is supplied.
type atottoClipboard struct{}

func (atottoClipboard) Get() (string, error) { return clipboard.ReadAll() }
func (atottoClipboard) Set(s string) error   { return clipboard.WriteAll(s) }

// NewSystemClipboard returns a ClipboardPort backed by the OS clipboard.
// If the platform has no clipboard utility available, Get and Set return
// the clipboard library's error, which the editor shows on its message
// line.
func NewSystemClipboard() core.ClipboardPort {
	return atottoClipboard{}
}

type clearMessageMsg struct{}

// Model is the bubbletea.Model driving one core.Editor.
type Model struct {
	editor      *core.Editor
	interpreter *core.KeyInterpreter
	pane        *core.EditorPane
	gutter      *core.Gutter
	message     *core.MessageLine

	width, height int
}

// New builds a Model over buffer, sized to width*height terminal cells.
// clip may be nil, in which case core falls back to an in-memory
// clipboard confined to the process.
func New(buffer *core.TextBuffer, clip core.ClipboardPort, width, height int) Model {
	e := core.NewEditor(buffer, clip)

	paneHeight := height - 2
	if paneHeight < 1 {
		paneHeight = 1
	}

	return Model{
		editor:      e,
		interpreter: core.NewKeyInterpreter(),
		pane:        core.NewEditorPane(core.NewViewport(0, 0, width, paneHeight)),
		gutter:      core.NewGutter(core.NewViewport(0, paneHeight, width, 1)),
		message:     core.NewMessageLine(core.NewViewport(0, paneHeight+1, width, 1)),
		width:       width,
		height:      height,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	paneHeight := height - 2
	if paneHeight < 1 {
		paneHeight = 1
	}
	m.pane.Resize(core.NewViewport(0, 0, width, paneHeight))
	m.gutter.Resize(core.NewViewport(0, paneHeight, width, 1))
	m.message.Resize(core.NewViewport(0, paneHeight+1, width, 1))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyPressMsg:
		before := m.editor.Message()
		m.interpreter.HandleKey(m.editor, m.pane, convertKey(msg))
		if m.interpreter.QuitRequested {
			return m, tea.Quit
		}
		if m.editor.Message() != before && m.editor.Message() != "" {
			return m, clearMessageAfter(3 * time.Second)
		}

	case clearMessageMsg:
		m.editor.DispatchMessage("")
	}

	m.pane.Tick()
	return m, nil
}

func clearMessageAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearMessageMsg{} })
}

func (m Model) View() string {
	m.pane.UpdateCursor(m.editor)
	m.gutter.UpdateCursor(m.editor)
	m.message.UpdateCursor(m.editor)

	rb := core.NewRenderBuffer(m.width, m.height)
	m.pane.Draw(rb, m.editor)
	m.gutter.Draw(rb, m.editor)
	m.message.Draw(rb, m.editor)

	return renderBuffer(rb)
}

// renderBuffer walks rb row by row, coalescing consecutive same-style
// cells into a single lipgloss.Render call per run.
func renderBuffer(rb *core.RenderBuffer) string {
	var out []byte
	for y := 0; y < rb.Height; y++ {
		if y > 0 {
			out = append(out, '\n')
		}
		runStyle := lipgloss.Style{}
		var run []rune
		flush := func() {
			if len(run) > 0 {
				out = append(out, runStyle.Render(string(run))...)
				run = run[:0]
			}
		}
		cells := rowCells(rb, y)
		for _, c := range cells {
			s := toLipgloss(c.Style)
			if len(run) == 0 {
				runStyle = s
			} else if s != runStyle {
				flush()
				runStyle = s
			}
			run = append(run, c.Character)
		}
		flush()
	}
	return string(out)
}

func rowCells(rb *core.RenderBuffer, y int) []core.Cell {
	cells := make([]core.Cell, rb.Width)
	for x := 0; x < rb.Width; x++ {
		cells[x] = rb.CellAt(x, y)
	}
	return cells
}

func toLipgloss(s core.Style) lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s.Foreground.Set {
		ls = ls.Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", s.Foreground.R, s.Foreground.G, s.Foreground.B)))
	}
	if s.Background.Set {
		ls = ls.Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", s.Background.R, s.Background.G, s.Background.B)))
	}
	if s.Bold {
		ls = ls.Bold(true)
	}
	if s.Underline {
		ls = ls.Underline(true)
	}
	if s.Reverse {
		ls = ls.Reverse(true)
	}
	return ls
}

// convertKey translates a bubbletea v2 key press into a core.KeyEvent.
func convertKey(msg tea.KeyPressMsg) core.KeyEvent {
	var ev core.KeyEvent
	if msg.Mod&tea.ModCtrl != 0 {
		ev.Modifiers |= core.ModCtrl
	}

	switch msg.Code {
	case tea.KeyEnter:
		ev.Key = core.KeyEnter
	case tea.KeyTab:
		ev.Key = core.KeyTab
	case tea.KeyBackspace:
		ev.Key = core.KeyBackspace
	case tea.KeyEscape:
		ev.Key = core.KeyEscape
	case tea.KeyUp:
		ev.Key = core.KeyUp
	case tea.KeyDown:
		ev.Key = core.KeyDown
	case tea.KeyLeft:
		ev.Key = core.KeyLeft
	case tea.KeyRight:
		ev.Key = core.KeyRight
	default:
		if msg.Text != "" {
			ev.Rune = []rune(msg.Text)[0]
		}
	}
	return ev
}
