package core

import (
	"os"
	"path/filepath"
	"strings"
)

// TextBuffer is an ordered sequence of lines backing one open file. It
// never enforces cursor invariants — that is the Editor's job.
type TextBuffer struct {
	lines      []string
	path       string
	bytesLen   int
	hasChanges bool
}

// NewTextBuffer creates an empty buffer for a not-yet-existing path.
func NewTextBuffer(path string) *TextBuffer {
	return &TextBuffer{
		lines: []string{""},
		path:  path,
	}
}

// FromPath reads path, decodes it as UTF-8 and splits it into lines.
// Trailing carriage returns and whitespace are stripped from each line.
func FromPath(path string) (*TextBuffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newEditorError(ErrIO, err)
	}
	parts := strings.Split(string(raw), "\n")
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = strings.TrimRight(p, " \t\r")
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	b := &TextBuffer{lines: lines, path: path}
	b.bytesLen = b.computeBytesLen()
	return b, nil
}

func (b *TextBuffer) computeBytesLen() int {
	n := 0
	for _, l := range b.lines {
		n += len(l)
	}
	if len(b.lines) > 0 {
		n += len(b.lines) - 1
	}
	return n
}

// Lines returns the buffer's lines for read and in-place mutation by the
// Editor.
func (b *TextBuffer) Lines() []string {
	return b.lines
}

func (b *TextBuffer) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = lines
}

func (b *TextBuffer) Path() string {
	return b.path
}

func (b *TextBuffer) BytesLen() int {
	return b.bytesLen
}

func (b *TextBuffer) HasChanges() bool {
	return b.hasChanges
}

func (b *TextBuffer) markDirty() {
	b.hasChanges = true
}

// WriteToFile joins the lines with "\n" and writes them atomically to
// Path, returning the number of bytes and lines written.
func (b *TextBuffer) WriteToFile() (bytesWritten, lineCount int, err error) {
	content := strings.Join(b.lines, "\n")

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, ".not-vim-*.tmp")
	if err != nil {
		return 0, 0, newEditorError(ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	data := []byte(content)
	written := 0
	for written < len(data) {
		n, werr := tmp.Write(data[written:])
		if werr != nil {
			tmp.Close()
			return 0, 0, newEditorError(ErrIO, werr)
		}
		written += n
	}
	if err := tmp.Close(); err != nil {
		return 0, 0, newEditorError(ErrIO, err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		return 0, 0, newEditorError(ErrIO, err)
	}

	b.bytesLen = written
	b.hasChanges = false
	return written, len(b.lines), nil
}
