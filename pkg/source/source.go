// Package source provides a rewindable byte source with line and offset
// accounting for the recognizers.
package source

import (
	"bytes"
	"fmt"
	"os"
)

// EOF is returned by Getc at the end of input
const EOF = -1

// Source serves the bytes of one input file. Carriage returns are folded so
// that "\r\n" and a lone "\r" both read as '\n'. A newline reports the line
// it terminates; the line counter advances on the following read.
type Source struct {
	name string
	data []byte

	pos            int
	line           int
	lineStart      int
	pendingNewline bool
}

// Mark is a saved reading position
type Mark struct {
	pos            int
	line           int
	lineStart      int
	pendingNewline bool
}

// New creates a source over data
func New(name string, data []byte) *Source {
	return &Source{name: name, data: data, line: 1}
}

// Open reads a whole file into a source
func Open(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return New(path, data), nil
}

// Name returns the name the source was created with.
func (s *Source) Name() string {
	return s.name
}

// Bytes returns the raw input.
func (s *Source) Bytes() []byte {
	return s.data
}

// Size returns the length of the raw input in bytes.
func (s *Source) Size() int {
	return len(s.data)
}

// Getc returns the next byte, or EOF.
func (s *Source) Getc() int {
	if s.pendingNewline {
		s.line++
		s.lineStart = s.pos
		s.pendingNewline = false
	}
	if s.pos >= len(s.data) {
		return EOF
	}
	c := s.data[s.pos]
	s.pos++
	if c == '\r' {
		if s.pos < len(s.data) && s.data[s.pos] == '\n' {
			s.pos++
		}
		c = '\n'
	}
	if c == '\n' {
		s.pendingNewline = true
	}
	return int(c)
}

// Prev returns the n-th byte before the one most recently read, or 0 when
// there is no such byte.
func (s *Source) Prev(n int) int {
	i := s.pos - 1 - n
	if i < 0 || i >= len(s.data) {
		return 0
	}
	return int(s.data[i])
}

// Line returns the current 1-based line number.
func (s *Source) Line() int {
	return s.line
}

// LineStart returns the byte offset of the start of the current line.
func (s *Source) LineStart() int {
	return s.lineStart
}

// Offset returns the byte offset of the next byte to be read.
func (s *Source) Offset() int {
	return s.pos
}

// Mark records the current position.
func (s *Source) Mark() Mark {
	return Mark{pos: s.pos, line: s.line, lineStart: s.lineStart, pendingNewline: s.pendingNewline}
}

// Reset rewinds to a recorded position.
func (s *Source) Reset(m Mark) {
	s.pos = m.pos
	s.line = m.line
	s.lineStart = m.lineStart
	s.pendingNewline = m.pendingNewline
}

// Rewind returns to the start of the input.
func (s *Source) Rewind() {
	s.Reset(Mark{line: 1})
}

// Slice returns the raw bytes between two offsets.
func (s *Source) Slice(from, to int) []byte {
	if from < 0 {
		from = 0
	}
	if to > len(s.data) {
		to = len(s.data)
	}
	if from >= to {
		return nil
	}
	return s.data[from:to]
}

// LineText returns the raw text of the line starting at offset, without
// its terminator.
func (s *Source) LineText(offset int) string {
	if offset < 0 || offset > len(s.data) {
		return ""
	}
	rest := s.data[offset:]
	if i := bytes.IndexAny(rest, "\r\n"); i >= 0 {
		rest = rest[:i]
	}
	return string(rest)
}
