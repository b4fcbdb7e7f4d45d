// Command editor is a terminal-based modal text editor.
package main

import (
	"errors"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"

	adapter "github.com/AlexGoodlife/not-vim/adapter-bubbletea"
	"github.com/AlexGoodlife/not-vim/core"
)

func main() {
	path := "test.txt"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	buffer, err := core.FromPath(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("failed to open %s: %v", path, err)
		}
		buffer = core.NewTextBuffer(path)
	}

	var clip core.ClipboardPort
	if _, disableSystemClipboard := os.LookupEnv("NOT_VIM_NO_SYSTEM_CLIPBOARD"); !disableSystemClipboard {
		clip = adapter.NewSystemClipboard()
	}

	model := adapter.New(buffer, clip, 80, 24)

	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Fatalf("error running program: %v", err)
	}
}
