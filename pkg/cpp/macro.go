package cpp

import (
	"fmt"
	"strings"
)

// MaxMacroParams is the largest number of parameters a macro definition
// may declare.
const MaxMacroParams = 16

type replacementFlags int

const (
	flagStringify replacementFlags = 1 << iota
	flagVarArgs
)

// replacementPart is either a constant text or a reference to a parameter.
type replacementPart struct {
	param    int // -1 for constants
	flags    replacementFlags
	constant string
}

// Macro is an identifier the token builder elides or replaces
type Macro struct {
	Name string
	// HasParameterList makes the parenthesis following the identifier part
	// of the macro invocation.
	HasParameterList bool

	parts []replacementPart
}

// HasReplacement reports whether the macro expands to text. Macros without
// a replacement are simply removed.
func (m *Macro) HasReplacement() bool {
	return len(m.parts) > 0
}

// Expand builds the replacement text for the given arguments.
func (m *Macro) Expand(args []string) string {
	var b strings.Builder
	for _, part := range m.parts {
		if part.param < 0 {
			b.WriteString(part.constant)
			continue
		}
		if part.param >= len(args) {
			continue
		}
		if part.flags&flagStringify != 0 {
			b.WriteByte('"')
		}
		b.WriteString(args[part.param])
		if part.flags&flagVarArgs != 0 {
			for _, extra := range args[part.param+1:] {
				b.WriteByte(',')
				b.WriteString(extra)
			}
		}
		if part.flags&flagStringify != 0 {
			b.WriteByte('"')
		}
	}
	return b.String()
}

// MacroTable maps identifiers to macros
type MacroTable struct {
	macros map[string]*Macro
}

// NewMacroTable creates an empty table
func NewMacroTable() *MacroTable {
	return &MacroTable{macros: make(map[string]*Macro)}
}

// Lookup returns the macro named name, or nil. A nil table is empty.
func (t *MacroTable) Lookup(name string) *Macro {
	if t == nil {
		return nil
	}
	return t.macros[name]
}

// Len returns the number of macros in the table.
func (t *MacroTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.macros)
}

// AddIgnore registers an ignore token. Accepted forms are "NAME" (elide the
// identifier), "NAME+" (elide it together with the following parenthesis)
// and "NAME=replacement".
func (t *MacroTable) AddIgnore(spec string) error {
	name := spec
	replacement := ""
	params := false

	if i := strings.IndexAny(spec, "+="); i >= 0 {
		name = spec[:i]
		rest := spec[i:]
		if eq := strings.IndexByte(rest, '='); eq >= 0 {
			params = strings.Contains(rest[:eq], "+")
			replacement = rest[eq+1:]
		} else {
			params = true
		}
	}
	if name == "" {
		return fmt.Errorf("invalid ignore token %q", spec)
	}

	m := &Macro{Name: name, HasParameterList: params}
	if replacement != "" {
		m.parts = []replacementPart{{param: -1, constant: replacement}}
	}
	t.macros[name] = m
	return nil
}

// AddDefine registers a macro given as "NAME", "NAME=body" or
// "NAME(a,b)=body". The body may use the parameters, "#" to stringify a
// parameter, "##" to paste and __VA_ARGS__ for a trailing "..." parameter.
func (t *MacroTable) AddDefine(spec string) error {
	m, err := parseDefine(spec)
	if err != nil {
		return err
	}
	t.macros[m.Name] = m
	return nil
}

func isSpaceTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func parseDefine(spec string) (*Macro, error) {
	s := spec
	i := 0
	for i < len(s) && isSpaceTab(s[i]) {
		i++
	}
	if i == len(s) {
		return nil, fmt.Errorf("empty macro definition")
	}
	if !IsIdentStart(int(s[i])) {
		return nil, fmt.Errorf("macro definition %q does not start with an identifier", spec)
	}

	start := i
	for i < len(s) && IsIdent(int(s[i])) {
		i++
	}
	m := &Macro{Name: s[start:i]}

	for i < len(s) && isSpaceTab(s[i]) {
		i++
	}

	var params []string
	if i < len(s) && s[i] == '(' {
		m.HasParameterList = true
		i++
		for i < len(s) {
			for i < len(s) && isSpaceTab(s[i]) {
				i++
			}
			if i < len(s) && s[i] != ',' && s[i] != ')' {
				p := i
				i++
				for i < len(s) && s[i] != ',' && s[i] != ')' && !isSpaceTab(s[i]) {
					i++
				}
				params = append(params, s[p:i])
				if len(params) >= MaxMacroParams {
					break
				}
			}
			for i < len(s) && isSpaceTab(s[i]) {
				i++
			}
			if i < len(s) && s[i] == ')' {
				break
			}
			if i < len(s) && s[i] == ',' {
				i++
			}
		}
		for i < len(s) && s[i] != ')' {
			i++
		}
		if i < len(s) {
			i++
		}
	}

	for i < len(s) && isSpaceTab(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '=' {
		m.parts = parseReplacement(s[i+1:], params)
	}
	return m, nil
}

func parseReplacement(body string, params []string) []replacementPart {
	var parts []replacementPart
	addConstant := func(text string) {
		if n := len(parts); n > 0 && parts[n-1].param < 0 {
			parts[n-1].constant += text
			return
		}
		parts = append(parts, replacementPart{param: -1, constant: text})
	}

	var nextFlags replacementFlags
	begin := 0
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case IsIdentStart(int(c)):
			if i > begin {
				addConstant(body[begin:i])
			}
			tok := i
			for i < len(body) && IsIdent(int(body[i])) {
				i++
			}
			word := body[tok:i]
			varArgs := word == "__VA_ARGS__"
			found := false
			for pi, p := range params {
				if (varArgs && p == "...") || (!varArgs && p == word) {
					flags := nextFlags
					if varArgs {
						flags |= flagVarArgs
					}
					parts = append(parts, replacementPart{param: pi, flags: flags})
					nextFlags = 0
					found = true
					break
				}
			}
			if !found {
				addConstant(word)
			}
			begin = i

		case c == '"' || c == '\'':
			i++
			for i < len(body) {
				if body[i] == '\\' {
					i += 2
					continue
				}
				if body[i] == c {
					i++
					break
				}
				i++
			}

		case c == '#':
			if i > begin {
				addConstant(body[begin:i])
			}
			i++
			if i < len(body) && body[i] == '#' {
				for i < len(body) && body[i] == '#' {
					i++
				}
				for i < len(body) && isSpaceTab(body[i]) {
					i++
				}
				if n := len(parts); n > 0 && parts[n-1].param < 0 {
					parts[n-1].constant = strings.TrimRight(parts[n-1].constant, " \t")
				}
			} else {
				nextFlags |= flagStringify
			}
			begin = i

		default:
			i++
		}
	}
	if i > len(body) {
		i = len(body)
	}
	if i > begin {
		addConstant(body[begin:i])
	}
	return parts
}
