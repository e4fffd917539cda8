// Package cpp implements the character level preprocessing stage of the
// C/C++ recognizer. It strips comments and directives, folds string and
// character literals into placeholder symbols, translates trigraphs and
// digraphs and tracks conditional compilation.
package cpp

import (
	"strings"

	"cxxtags/pkg/source"
	"cxxtags/pkg/tag"
)

// Special characters returned by Getc
const (
	EOF          = source.EOF
	StringSymbol = 0x100 + 'S' // any string literal
	CharSymbol   = 0x100 + 'C' // any character literal
)

// maxRawDelimiter is the longest raw string delimiter C++ allows
const maxRawDelimiter = 16

// IsIdentStart reports whether c may start an identifier.
func IsIdentStart(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$' ||
		(c >= 0x80 && c < 0x100)
}

// IsIdent reports whether c may appear inside an identifier.
func IsIdent(c int) bool {
	return IsIdentStart(c) || (c >= '0' && c <= '9')
}

// Options configures a Preprocessor
type Options struct {
	IsHeader         bool // macros of headers are not file scoped
	CPlusPlus        bool // recognize raw string literals
	AtLiteralStrings bool // recognize @"..." verbatim strings
	ExamineIf0       bool // scan code inside #if 0 branches
	Relaxed          bool // follow every conditional branch
	Macros           *MacroTable
	ExpandFileMacros bool // also expand macros #defined in the input
}

type directiveState int

const (
	stateNone directiveState = iota
	stateHash
	stateDefine
	stateUndef
	stateInclude
	stateIf
	statePragma
)

// Preprocessor turns a source into a clean character stream
type Preprocessor struct {
	src  *source.Source
	sink tag.Sink
	opts Options

	unget           []int
	accept          bool // a '#' here starts a directive
	state           directiveState
	cond            conditionalStack
	resolveRequired bool

	fileMacros *MacroTable
	capture    *defineCapture
}

// getcState is the per-call state of Getc
type getcState struct {
	directive  bool
	ignore     bool
	macroIndex int
}

// New creates a preprocessor reading src. Macro and header records go to
// sink, which may be nil.
func New(src *source.Source, sink tag.Sink, opts Options) *Preprocessor {
	return &Preprocessor{
		src:        src,
		sink:       sink,
		opts:       opts,
		accept:     true,
		fileMacros: NewMacroTable(),
	}
}

// Line returns the line of the most recently read character.
func (p *Preprocessor) Line() int {
	return p.src.Line()
}

// LineStart returns the offset of the start of the current line.
func (p *Preprocessor) LineStart() int {
	return p.src.LineStart()
}

// Position returns the current position as a record position.
func (p *Preprocessor) Position() tag.Position {
	return tag.Position{Line: p.src.Line(), Offset: p.src.LineStart()}
}

// NestLevel returns the depth of the open conditionals.
func (p *Preprocessor) NestLevel() int {
	return p.cond.level
}

// BeginStatement records that a statement is in progress. Conditionals
// met from now on follow a single branch.
func (p *Preprocessor) BeginStatement() {
	p.resolveRequired = true
}

// EndStatement records that no statement is in progress.
func (p *Preprocessor) EndStatement() {
	p.resolveRequired = false
}

// FindMacro returns the macro for name, looking at the configured table
// first and, when enabled, at the macros defined by the input itself.
func (p *Preprocessor) FindMacro(name string) *Macro {
	if m := p.opts.Macros.Lookup(name); m != nil {
		return m
	}
	if p.opts.ExpandFileMacros {
		return p.fileMacros.Lookup(name)
	}
	return nil
}

// FileMacros returns the macros defined by the input so far.
func (p *Preprocessor) FileMacros() *MacroTable {
	return p.fileMacros
}

// Ungetc pushes c back; the last pushed character is returned first.
func (p *Preprocessor) Ungetc(c int) {
	p.unget = append(p.unget, c)
}

// UngetString pushes s back so that its first byte is returned first.
func (p *Preprocessor) UngetString(s string) {
	for i := len(s) - 1; i >= 0; i-- {
		p.unget = append(p.unget, int(s[i]))
	}
}

// read returns the next character from the pushback stack or the source.
func (p *Preprocessor) read() int {
	if n := len(p.unget); n > 0 {
		c := p.unget[n-1]
		p.unget = p.unget[:n-1]
		return c
	}
	return p.src.Getc()
}

// Getc returns the next character with comments, directives, ignored
// branches and literal contents removed.
func (p *Preprocessor) Getc() int {
	var st getcState
	for {
		c, restart := p.dispatch(p.read(), &st)
		if restart {
			continue
		}
		if !st.directive && !st.ignore {
			return c
		}
	}
}

// dispatch handles one character. It reports restart when the character
// vanished (a line continuation) and the next one must be read.
func (p *Preprocessor) dispatch(c int, st *getcState) (int, bool) {
	switch c {
	case EOF:
		st.ignore = false
		st.directive = false
		p.endDirective(st)

	case ' ', '\t':
		p.captureText(st, " ")

	case '\n':
		if st.directive && !st.ignore {
			p.endDirective(st)
			st.directive = false
		}
		p.accept = true

	case '"':
		if p.state == stateInclude {
			return p.enter(c, st), false
		}
		p.accept = false
		c = p.skipToEndOfString(false)
		p.captureText(st, `""`)

	case '#':
		if p.accept {
			st.directive = true
			p.state = stateHash
			p.accept = false
		} else {
			p.captureText(st, "#")
		}

	case '\'':
		p.accept = false
		c = p.skipToEndOfChar()
		p.captureText(st, "''")

	case '/':
		next := p.read()
		switch classifyComment(next) {
		case commentC:
			c = p.skipOverBlockComment('*')
			p.captureText(st, " ")
		case commentCPlus:
			c = p.skipOverLineComment()
			if c == '\n' {
				p.Ungetc(c)
			}
		case commentD:
			c = p.skipOverBlockComment('+')
			p.captureText(st, " ")
		default:
			p.Ungetc(next)
			p.accept = false
			p.captureText(st, "/")
		}

	case '\\':
		next := p.read()
		if next == '\n' {
			return c, true
		}
		p.Ungetc(next)
		p.captureText(st, `\`)

	case '?':
		next := p.read()
		if next != '?' {
			p.Ungetc(next)
			p.captureText(st, "?")
			break
		}
		next = p.read()
		out, reprocess, ok := translateTrigraph(next)
		if !ok {
			p.Ungetc(next)
			p.Ungetc('?')
			p.captureText(st, "?")
			break
		}
		if reprocess {
			return p.dispatch(out, st)
		}
		c = out
		p.captureText(st, string(rune(c)))

	case '<', ':', '%':
		next := p.read()
		out, reprocess, ok := translateDigraph(c, next)
		if !ok {
			p.Ungetc(next)
			return p.enter(c, st), false
		}
		if reprocess {
			return p.dispatch(out, st)
		}
		return p.enter(out, st), false

	default:
		if c == '@' && p.opts.AtLiteralStrings {
			next := p.read()
			if next == '"' {
				p.accept = false
				c = p.skipToEndOfString(true)
				p.captureText(st, `""`)
				break
			}
			p.Ungetc(next)
		} else if c == 'R' && p.opts.CPlusPlus && p.rawPrefixAllowed() {
			next := p.read()
			if next == '"' {
				p.accept = false
				c = p.skipToEndOfRawString()
				p.captureText(st, `""`)
				break
			}
			p.Ungetc(next)
		}
		return p.enter(c, st), false
	}
	return c, false
}

// enter passes an ordinary character, feeding it to the directive being
// read if any.
func (p *Preprocessor) enter(c int, st *getcState) int {
	p.accept = false
	if st.directive {
		st.ignore = p.handleDirective(c, st)
	}
	return c
}

// rawPrefixAllowed reports whether the 'R' just read stands on its own or
// after an L, u, U or u8 encoding prefix, making it a raw string prefix.
func (p *Preprocessor) rawPrefixAllowed() bool {
	prev := p.src.Prev(1)
	prev2 := p.src.Prev(2)
	prev3 := p.src.Prev(3)
	return !IsIdent(prev) ||
		(!IsIdent(prev2) && (prev == 'L' || prev == 'u' || prev == 'U')) ||
		(!IsIdent(prev3) && prev2 == 'u' && prev == '8')
}

type commentKind int

const (
	commentNone  commentKind = iota
	commentC                 // /* */
	commentCPlus             // //
	commentD                 // /+ +/
)

// classifyComment tells which comment, if any, a '/' followed by next
// opens.
func classifyComment(next int) commentKind {
	switch next {
	case '*':
		return commentC
	case '/':
		return commentCPlus
	case '+':
		return commentD
	}
	return commentNone
}

// translateTrigraph maps the third character of a "??x" trigraph.
// reprocess is set when the result must be handled as freshly read input.
func translateTrigraph(c int) (out int, reprocess, ok bool) {
	switch c {
	case '(':
		return '[', false, true
	case ')':
		return ']', false, true
	case '<':
		return '{', false, true
	case '>':
		return '}', false, true
	case '/':
		return '\\', true, true
	case '!':
		return '|', false, true
	case '\'':
		return '^', false, true
	case '-':
		return '~', false, true
	case '=':
		return '#', true, true
	}
	return c, false, false
}

// translateDigraph maps a two character digraph. ok is false when c and
// next do not form one.
func translateDigraph(c, next int) (out int, reprocess, ok bool) {
	switch {
	case c == '<' && next == ':':
		return '[', false, true
	case c == '<' && next == '%':
		return '{', false, true
	case c == ':' && next == '>':
		return ']', false, true
	case c == '%' && next == '>':
		return '}', false, true
	case c == '%' && next == ':':
		return '#', true, true
	}
	return c, false, false
}

// skipOverBlockComment consumes a /* */ or /+ +/ comment whose opener has
// been read, returning the space that replaces it.
func (p *Preprocessor) skipOverBlockComment(star int) int {
	c := p.read()
	for c != EOF {
		if c != star {
			c = p.read()
			continue
		}
		next := p.read()
		if next == '/' {
			return ' '
		}
		c = next
	}
	return c
}

// skipOverLineComment consumes a // comment up to and including the
// newline, which is returned.
func (p *Preprocessor) skipOverLineComment() int {
	for {
		c := p.read()
		switch c {
		case EOF, '\n':
			return c
		case '\\':
			p.read()
		}
	}
}

func (p *Preprocessor) skipToEndOfString(ignoreBackslash bool) int {
	for {
		c := p.read()
		if c == EOF {
			break
		}
		if c == '\\' && !ignoreBackslash {
			p.read()
		} else if c == '"' {
			break
		}
	}
	return StringSymbol
}

func isRawDelimiterChar(c int) bool {
	return c != ' ' && c != '\f' && c != '\n' && c != '\r' && c != '\t' && c != '\v' &&
		c != '(' && c != ')' && c != '\\'
}

// skipToEndOfRawString consumes R"delim(...)delim" after its opening quote.
func (p *Preprocessor) skipToEndOfRawString() int {
	c := p.read()
	if c != '(' && !isRawDelimiterChar(c) {
		p.Ungetc(c)
		return p.skipToEndOfString(false)
	}

	var delim []int
	collecting := true
	for ; c != EOF; c = p.read() {
		if collecting {
			if isRawDelimiterChar(c) && len(delim) < maxRawDelimiter {
				delim = append(delim, c)
			} else {
				collecting = false
			}
			continue
		}
		if c != ')' {
			continue
		}
		i := 0
		for {
			c = p.read()
			if c == EOF || i >= len(delim) || delim[i] != c {
				break
			}
			i++
		}
		if i == len(delim) && c == '"' {
			break
		}
		p.Ungetc(c)
	}
	return StringSymbol
}

// skipToEndOfChar consumes a character literal. Unterminated literals stop
// at the end of the line.
func (p *Preprocessor) skipToEndOfChar() int {
	for {
		c := p.read()
		switch c {
		case EOF, '\'':
			return CharSymbol
		case '\\':
			p.read()
		case '\n':
			p.Ungetc(c)
			return CharSymbol
		}
	}
}

// defineCapture accumulates the body of a #define being read
type defineCapture struct {
	name   string
	params string
	body   strings.Builder
}

func (p *Preprocessor) captureText(st *getcState, s string) {
	if st.directive && p.capture != nil {
		p.capture.body.WriteString(s)
	}
}
