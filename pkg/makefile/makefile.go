// Package makefile extracts macros, targets and included makefiles from
// make input. It is line oriented: recipe lines and comments are skipped and
// backslash continuations join lines.
package makefile

import (
	"strings"

	"cxxtags/pkg/source"
	"cxxtags/pkg/tag"
)

type word struct {
	text string
	pos  tag.Position
}

type scanner struct {
	src      *source.Source
	sink     tag.Sink
	ungot    int
	hasUngot bool
}

// Parse reports the definitions of src to sink.
func Parse(src *source.Source, sink tag.Sink) {
	s := &scanner{src: src, sink: sink}
	s.run()
}

func isSpace(c int) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isAlnum(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// isIdentifier accepts the characters of macro names, targets and paths,
// variable references included.
func isIdentifier(c int) bool {
	return c > 0 && (isAlnum(c) || strings.ContainsRune(".-_/$(){}%", rune(c)))
}

// isSpecialTarget recognizes GNU make's .UPPERCASE targets
func isSpecialTarget(name string) bool {
	if len(name) < 2 || name[0] != '.' {
		return false
	}
	for _, c := range name[1:] {
		if c != '_' && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// next returns the next character with backslash-newline pairs removed
func (s *scanner) next() int {
	if s.hasUngot {
		s.hasUngot = false
		return s.ungot
	}
	c := s.src.Getc()
	if c == '\\' {
		n := s.src.Getc()
		if n == '\n' {
			return s.next()
		}
		s.unget(n)
	}
	return c
}

func (s *scanner) unget(c int) {
	s.ungot = c
	s.hasUngot = true
}

func (s *scanner) peek() int {
	c := s.next()
	s.unget(c)
	return c
}

func (s *scanner) position() tag.Position {
	return tag.Position{Line: s.src.Line(), Offset: s.src.LineStart()}
}

// skipLine drops the rest of the line, leaving the newline unread
func (s *scanner) skipLine() {
	c := s.next()
	for c != source.EOF && c != '\n' {
		c = s.next()
	}
	if c == '\n' {
		s.unget(c)
	}
}

func (s *scanner) skipToNonWhite(c int) int {
	for c != '\n' && isSpace(c) {
		c = s.next()
	}
	return c
}

// readIdentifier reads a name starting with first. Inside $(...) and
// ${...} any character up to the end of line is accepted.
func (s *scanner) readIdentifier(first int) word {
	w := word{pos: s.position()}
	var b strings.Builder
	depth := 0
	c := first
	for isIdentifier(c) || (depth > 0 && c != source.EOF && c != '\n') {
		switch {
		case c == '(' || c == '{':
			depth++
		case depth > 0 && (c == ')' || c == '}'):
			depth--
		}
		b.WriteByte(byte(c))
		c = s.next()
	}
	s.unget(c)
	w.text = b.String()
	return w
}

// readRestOfLine reads the name following "define", spaces included
func (s *scanner) readRestOfLine() word {
	c := s.skipToNonWhite(s.next())
	w := word{pos: s.position()}
	var b strings.Builder
	for c != source.EOF && c != '\n' {
		b.WriteByte(byte(c))
		c = s.next()
	}
	if c == '\n' {
		s.unget(c)
	}
	w.text = strings.TrimRight(b.String(), " \t\r\f\v")
	return w
}

// readIncludes reports every file named on an include line
func (s *scanner) readIncludes(optional bool) {
	for {
		c := s.skipToNonWhite(s.next())
		w := s.readIdentifier(c)
		w.text = strings.TrimRight(w.text, " \t")
		if w.text != "" && w.text != "$" {
			role := tag.RoleIncluded
			if optional {
				role = tag.RoleOptional
			}
			s.emit(tag.KindMakefile, w, role)
		}

		// drop what readIdentifier refused, as in "include $*"
		c = s.next()
		for c != source.EOF && c != '\n' && !isSpace(c) {
			c = s.next()
		}
		if c == '\n' {
			s.unget(c)
		}
		if c == source.EOF || c == '\n' {
			return
		}
	}
}

func (s *scanner) emit(kind tag.Kind, w word, role tag.Role) {
	rec := s.sink.Begin(kind, w.text, w.pos)
	if rec == nil {
		return
	}
	rec.Role = role
	s.sink.Commit(rec)
}

func (s *scanner) newTarget(w word) {
	if isSpecialTarget(w.text) || strings.Contains(w.text, "%") {
		return
	}
	s.emit(tag.KindTarget, w, tag.RoleDefinition)
}

func (s *scanner) newMacro(w word, appending bool) {
	if appending || w.text == "" {
		return
	}
	s.emit(tag.KindMakeMacro, w, tag.RoleDefinition)
}

func (s *scanner) run() {
	var ids []word
	newline := true
	inDefine, inValue, inRule := false, false, false
	variablePossible := true
	appending := false

	for {
		c := s.next()
		if c == source.EOF {
			return
		}
		if newline {
			if inRule {
				if c == '\t' {
					// recipe line
					s.skipLine()
					c = s.next()
				} else if c = s.skipToNonWhite(c); c == '#' {
					s.skipLine()
					c = s.next()
				} else if c != '\n' {
					inRule = false
				}
			} else if inValue {
				inValue = false
			}
			ids = ids[:0]
			variablePossible = !inRule
			newline = false
		}

		switch {
		case c == source.EOF:
			return
		case c == '\n':
			newline = true
		case isSpace(c):
		case c == '#':
			s.skipLine()
		case variablePossible && c == '?':
			variablePossible = s.peek() == '='
		case variablePossible && c == '+':
			variablePossible = s.peek() == '='
			appending = true
		case variablePossible && c == ':' && len(ids) > 0:
			if s.peek() != '=' {
				for _, id := range ids {
					s.newTarget(id)
				}
				ids = ids[:0]
				inRule = true
			}
		case variablePossible && c == '=' && len(ids) == 1:
			s.newMacro(ids[0], appending)
			inValue = true
			inRule = false
			appending = false
		case variablePossible && isIdentifier(c):
			w := s.readIdentifier(c)
			ids = append(ids, w)
			if len(ids) > 1 {
				break
			}
			switch {
			case inDefine && w.text == "endef":
				inDefine = false
			case inDefine:
				s.skipLine()
			case w.text == "define":
				inDefine = true
				s.newMacro(s.readRestOfLine(), false)
			case w.text == "export" || w.text == "override":
				ids = ids[:0]
			case w.text == "include" || w.text == "sinclude" || w.text == "-include":
				s.readIncludes(w.text[0] != 'i')
			}
		default:
			variablePossible = false
		}
	}
}
