package core

// background is the editor's default background color.
var background = Color{R: 18, G: 18, B: 18, Set: true}

func rgb(r, g, b uint8) Color { return Color{R: r, G: g, B: b, Set: true} }

func defaultTextStyle(isCurrentLine bool) Style {
	fg := rgb(200, 200, 200)
	if isCurrentLine {
		fg = rgb(255, 255, 255)
	}
	return Style{Foreground: fg, Background: background}
}

func highlightedTextStyle() Style {
	return Style{Foreground: rgb(18, 18, 18), Background: rgb(160, 32, 140), Reverse: false}
}

func defaultLineNumberStyle(isCurrentLine bool) Style {
	fg := rgb(90, 90, 90)
	if isCurrentLine {
		fg = rgb(160, 160, 160)
	}
	return Style{Foreground: fg, Background: background}
}

// modeStyle colors the gutter by the active mode: teal for Normal, green
// for Insert, purple for Visual.
func modeStyle(m Mode) Style {
	switch m {
	case InsertMode:
		return Style{Foreground: rgb(18, 18, 18), Background: rgb(0, 163, 108), Bold: true}
	case VisualMode:
		return Style{Foreground: rgb(18, 18, 18), Background: rgb(160, 32, 140), Bold: true}
	default:
		return Style{Foreground: rgb(18, 18, 18), Background: rgb(100, 149, 171), Bold: true}
	}
}
