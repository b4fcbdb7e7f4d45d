package core

import (
	"fmt"
	"strings"
)

// KeyCode represents non-character keys.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// KeyModifiers represents modifier keys held during a keystroke.
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
)

// KeyEvent is the input the terminal backend hands to the core. It is
// the only input type the interpreter understands; the terminal backend
// is responsible for translating its own event type into this one.
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

func (k KeyEvent) String() string {
	var parts []string
	if k.Modifiers&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if k.Rune != 0 {
		parts = append(parts, string(k.Rune))
	} else {
		switch k.Key {
		case KeyEnter:
			parts = append(parts, "Enter")
		case KeyTab:
			parts = append(parts, "Tab")
		case KeyBackspace:
			parts = append(parts, "Backspace")
		case KeyEscape:
			parts = append(parts, "Escape")
		case KeyUp:
			parts = append(parts, "Up")
		case KeyDown:
			parts = append(parts, "Down")
		case KeyLeft:
			parts = append(parts, "Left")
		case KeyRight:
			parts = append(parts, "Right")
		default:
			parts = append(parts, fmt.Sprintf("Unknown(%d)", k.Key))
		}
	}
	return strings.Join(parts, "+")
}

// IsPrintable reports whether the event carries a character to insert.
func (k KeyEvent) IsPrintable() bool {
	return k.Rune != 0 && k.Modifiers == ModNone
}
