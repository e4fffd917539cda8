package cpp

import (
	"strings"

	"cxxtags/pkg/tag"
)

// maxDirectiveName bounds the directive word read after '#'
const maxDirectiveName = 10

type directiveKind int

const (
	directiveOther directiveKind = iota
	directiveDefine
	directiveInclude
	directiveUndef
	directiveIf
	directiveElif
	directiveElse
	directiveEndif
	directivePragma
)

// classifyDirective maps a directive word. Any word starting with "if"
// (if, ifdef, ifndef) opens a conditional.
func classifyDirective(name string) directiveKind {
	switch {
	case name == "define":
		return directiveDefine
	case name == "include":
		return directiveInclude
	case name == "undef":
		return directiveUndef
	case strings.HasPrefix(name, "if"):
		return directiveIf
	case name == "elif":
		return directiveElif
	case name == "else":
		return directiveElse
	case name == "endif":
		return directiveEndif
	case name == "pragma":
		return directivePragma
	}
	return directiveOther
}

func (p *Preprocessor) policy() branchPolicy {
	return branchPolicy{
		resolveRequired: p.resolveRequired,
		relaxed:         p.opts.Relaxed,
		examineIf0:      p.opts.ExamineIf0,
	}
}

// handleDirective feeds c to the directive being read and reports whether
// the input is now ignored.
func (p *Preprocessor) handleDirective(c int, st *getcState) bool {
	ignore := p.cond.isIgnore()
	switch p.state {
	case stateNone:
		if p.capture != nil {
			p.capture.body.WriteString(symbolText(c))
		}
	case stateDefine:
		st.macroIndex = p.directiveDefine(c, false)
	case stateHash:
		ignore = p.directiveHash(c)
	case stateIf:
		ignore = p.directiveIf(c)
	case statePragma:
		p.directivePragma(c)
	case stateUndef:
		p.directiveDefine(c, true)
	case stateInclude:
		p.directiveInclude(c)
	}
	return ignore
}

func symbolText(c int) string {
	switch c {
	case StringSymbol:
		return `""`
	case CharSymbol:
		return "''"
	}
	return string(rune(c))
}

// endDirective closes the directive at a newline or the end of input: the
// end line of a #define record is set and a captured body is registered.
func (p *Preprocessor) endDirective(st *getcState) {
	if st.macroIndex != tag.Nil && p.sink != nil {
		if t := p.sink.Lookup(st.macroIndex); t != nil {
			t.End = p.src.Line()
		}
	}
	st.macroIndex = tag.Nil

	if p.capture != nil {
		spec := p.capture.name + p.capture.params
		if body := strings.TrimSpace(p.capture.body.String()); body != "" {
			spec += "=" + body
		}
		// the name was read with IsIdentStart and IsIdent, the same classes
		// parseDefine accepts, so the definition cannot be rejected
		_ = p.fileMacros.AddDefine(spec)
		p.capture = nil
	}
}

// readDirective reads the directive word starting with c.
func (p *Preprocessor) readDirective(c int) string {
	var b strings.Builder
	for i := 0; i < maxDirectiveName-1; i++ {
		if i > 0 {
			c = p.read()
			if c == EOF || c > 0xff || !isAlpha(byte(c)) {
				p.Ungetc(c)
				break
			}
		}
		b.WriteByte(byte(c))
	}
	return b.String()
}

// readIdentifier reads an identifier starting with c.
func (p *Preprocessor) readIdentifier(c int) string {
	var b strings.Builder
	for {
		b.WriteByte(byte(c))
		c = p.read()
		if c == EOF || !IsIdent(c) {
			break
		}
	}
	p.Ungetc(c)
	return b.String()
}

// readFilename reads an include operand up to its closing delimiter.
func (p *Preprocessor) readFilename(c int) string {
	end := '"'
	if c == '<' {
		end = '>'
	}
	var b strings.Builder
	for {
		c = p.read()
		if c == EOF || c == int(end) {
			break
		}
		if c == '\n' {
			p.Ungetc(c)
			break
		}
		b.WriteByte(byte(c))
	}
	return b.String()
}

func (p *Preprocessor) directiveHash(c int) bool {
	ignore := false
	name := p.readDirective(c)
	p.state = stateNone
	switch classifyDirective(name) {
	case directiveDefine:
		p.state = stateDefine
	case directiveInclude:
		p.state = stateInclude
	case directiveUndef:
		p.state = stateUndef
	case directiveIf:
		p.state = stateIf
	case directiveElif, directiveElse:
		ignore = p.cond.setIgnore(p.cond.ignoreBranch(p.policy()))
		if !ignore && name == "else" {
			p.cond.chooseBranch(p.policy())
		}
	case directiveEndif:
		ignore = p.cond.pop()
	case directivePragma:
		p.state = statePragma
	}
	return ignore
}

func (p *Preprocessor) directiveIf(c int) bool {
	ignore := p.cond.push(c != '0', p.policy())
	p.state = stateNone
	return ignore
}

// directiveDefine reads the name of a #define or #undef and emits its
// record. The body of a #define is captured for later expansion.
func (p *Preprocessor) directiveDefine(c int, undef bool) int {
	index := tag.Nil
	p.state = stateNone
	if !IsIdentStart(c) {
		return index
	}

	name := p.readIdentifier(c)
	if p.cond.isIgnore() {
		return index
	}
	if undef {
		delete(p.fileMacros.macros, name)
		p.makeDefineTag(name, "", true)
		return index
	}

	signature := ""
	next := p.read()
	if next == '(' {
		var b strings.Builder
		for next != ')' && next != EOF {
			if next != ' ' && next != '\t' {
				b.WriteByte(byte(next))
			}
			next = p.read()
		}
		if next == ')' {
			b.WriteByte(')')
			signature = b.String()
		}
	} else {
		p.Ungetc(next)
	}

	index = p.makeDefineTag(name, signature, false)
	p.capture = &defineCapture{name: name, params: signature}
	return index
}

func (p *Preprocessor) directivePragma(c int) {
	p.state = stateNone
	if !IsIdentStart(c) {
		return
	}
	if p.readIdentifier(c) != "weak" {
		return
	}
	for c = p.read(); c == ' '; c = p.read() {
	}
	if IsIdentStart(c) {
		p.makeDefineTag(p.readIdentifier(c), "", false)
	} else {
		p.Ungetc(c)
	}
}

func (p *Preprocessor) directiveInclude(c int) {
	p.state = stateNone
	if c != '<' && c != '"' {
		return
	}
	name := p.readFilename(c)
	if p.cond.isIgnore() || name == "" {
		return
	}
	p.makeIncludeTag(name, c == '<')
}

func (p *Preprocessor) makeDefineTag(name, signature string, undef bool) int {
	if p.sink == nil {
		return tag.Nil
	}
	t := p.sink.Begin(tag.KindMacro, name, p.Position())
	if t == nil {
		return tag.Nil
	}
	t.FileScope = !p.opts.IsHeader
	if undef {
		t.Role = tag.RoleUndef
	}
	t.Signature = signature
	return p.sink.Commit(t)
}

func (p *Preprocessor) makeIncludeTag(name string, system bool) {
	if p.sink == nil {
		return
	}
	t := p.sink.Begin(tag.KindHeader, name, p.Position())
	if t == nil {
		return
	}
	t.Role = tag.RoleLocal
	if system {
		t.Role = tag.RoleSystem
	}
	p.sink.Commit(t)
}
