package parser

import (
	"strings"

	"cxxtags/pkg/cpp"
)

// maxMacroDepth bounds consecutive macro substitutions without a real token
const maxMacroDepth = 32

func isSpace(c int) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}

func (p *Parser) getc() int {
	return p.cpp.Getc()
}

// append links t as the new current token
func (p *Parser) append(t *Token) {
	p.chain.Append(t)
	p.token = t
}

// ungetCurrentToken moves the current token back to the input. The next
// parseNextToken returns it again.
func (p *Parser) ungetCurrentToken() {
	if p.token == nil {
		return
	}
	p.ungot = p.chain.Take(p.token)
	p.token = p.chain.Last()
}

// parseNextToken appends the next token to the current chain. It returns
// false when the appended token is the end of input.
func (p *Parser) parseNextToken() bool {
	if p.ungot != nil {
		t := p.ungot
		p.ungot = nil
		p.append(t)
		return t.Type != TokenEOF
	}

	for {
		for isSpace(p.char) {
			p.char = p.getc()
		}
		if !p.inStatement {
			p.inStatement = true
			p.cpp.BeginStatement()
		}

		pos := p.cpp.Position()
		t := &Token{Line: pos.Line, Offset: pos.Offset}

		if p.char == cpp.EOF {
			t.Type = TokenEOF
			p.append(t)
			return false
		}

		var ok bool
		if cpp.IsIdentStart(p.char) {
			ok = p.readWord(t)
		} else {
			ok = p.readPunctuation(t)
		}
		if !ok {
			continue
		}
		t.FollowedBySpace = isSpace(p.char)
		p.macroDepth = 0
		p.append(t)
		return true
	}
}

func (p *Parser) readIdentifier() string {
	var b strings.Builder
	for cpp.IsIdent(p.char) {
		b.WriteByte(byte(p.char))
		p.char = p.getc()
	}
	return b.String()
}

// readWord reads an identifier or keyword into t. It returns false when the
// word was consumed without producing a token: attributes, elided macros
// and macros replaced by their expansion.
func (p *Parser) readWord(t *Token) bool {
	word := p.readIdentifier()
	t.Text = word
	t.Type = TokenIdentifier

	if info, ok := keywords[word]; ok && p.keywordEnabled(info) {
		if info.flags&kwSkipArgument != 0 {
			p.skipAttributeArgument()
			return false
		}
		t.Type = TokenKeyword
		t.Keyword = info.keyword
		return true
	}
	if word == "__extension__" {
		return false
	}
	if p.isCPlusPlus() {
		if op, ok := alternativeOperators[word]; ok {
			t.Text = op
			t.Type = TokenOperator
			if op == "&&" {
				t.Type = TokenMultipleAnds
			}
			return true
		}
	}

	m := p.cpp.FindMacro(word)
	if m == nil || p.macroDepth >= maxMacroDepth {
		return true
	}
	p.macroDepth++
	var args []string
	if m.HasParameterList {
		for isSpace(p.char) {
			p.char = p.getc()
		}
		if p.char == '(' {
			args = p.readMacroArguments()
		}
	}
	if m.HasReplacement() {
		p.cpp.Ungetc(p.char)
		p.cpp.UngetString(m.Expand(args) + " ")
		p.char = p.getc()
	}
	return false
}

func (p *Parser) keywordEnabled(info keywordInfo) bool {
	if info.flags&kwCPlusPlus != 0 && !p.isCPlusPlus() {
		return false
	}
	if info.flags&kwAccess != 0 && !p.accessEnabled {
		return false
	}
	return true
}

// readMacroArguments reads the parenthesized arguments of a macro call at
// the lookahead '(' and splits them at top level commas.
func (p *Parser) readMacroArguments() []string {
	var args []string
	var b strings.Builder
	depth := 0
	for {
		c := p.getc()
		switch {
		case c == cpp.EOF:
			p.char = c
			return append(args, strings.TrimSpace(b.String()))
		case c == '(':
			depth++
		case c == ')':
			if depth == 0 {
				p.char = p.getc()
				return append(args, strings.TrimSpace(b.String()))
			}
			depth--
		case c == ',' && depth == 0:
			args = append(args, strings.TrimSpace(b.String()))
			b.Reset()
			continue
		}
		switch c {
		case cpp.StringSymbol:
			b.WriteString(`""`)
		case cpp.CharSymbol:
			b.WriteString("''")
		default:
			b.WriteRune(rune(c))
		}
	}
}

// skipAttributeArgument drops the parenthesized argument following
// __attribute__, __declspec, alignas or asm. A "deprecated" word inside
// marks the statement.
func (p *Parser) skipAttributeArgument() {
	for isSpace(p.char) {
		p.char = p.getc()
	}
	if p.char != '(' {
		return
	}
	p.skipBalanced('(', ')', 0)
}

// skipBalanced consumes characters from the lookahead until depth open
// delimiters are closed, watching for the deprecated attribute.
func (p *Parser) skipBalanced(open, close, depth int) {
	var word strings.Builder
	flush := func() {
		if word.String() == "deprecated" {
			p.keywordState |= seenDeprecated
		}
		word.Reset()
	}
	for c := p.char; c != cpp.EOF; c = p.getc() {
		if cpp.IsIdent(c) {
			word.WriteByte(byte(c))
			continue
		}
		flush()
		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.char = p.getc()
				return
			}
		}
	}
	p.char = cpp.EOF
}

// readPunctuation reads a number, literal placeholder or punctuator into t
func (p *Parser) readPunctuation(t *Token) bool {
	c := p.char
	if isDigit(c) {
		p.readNumber(t, "")
		return true
	}

	p.char = p.getc()
	t.Text = string(rune(c))
	t.Type = TokenOperator

	// two character forms are decided on the lookahead
	follows := func(next int, text string, tt TokenType) bool {
		if p.char != next {
			return false
		}
		p.char = p.getc()
		t.Text = text
		t.Type = tt
		return true
	}

	switch c {
	case cpp.StringSymbol:
		t.Text = `""`
		t.Type = TokenStringConstant
	case cpp.CharSymbol:
		t.Text = "''"
		t.Type = TokenCharacterConstant
	case '{':
		t.Type = TokenOpeningBracket
	case '}':
		t.Type = TokenClosingBracket
	case '(':
		t.Type = TokenOpeningParenthesis
	case ')':
		t.Type = TokenClosingParenthesis
	case '[':
		if p.isCPlusPlus() && p.char == '[' {
			// [[attribute]]
			p.skipBalanced('[', ']', 1)
			return false
		}
		t.Type = TokenOpeningSquareParenthesis
	case ']':
		t.Type = TokenClosingSquareParenthesis
	case ',':
		t.Type = TokenComma
	case ';':
		t.Type = TokenSemicolon
	case ':':
		if !follows(':', "::", TokenMultipleColons) {
			t.Type = TokenSingleColon
		}
	case '=':
		if !follows('=', "==", TokenOperator) {
			t.Type = TokenAssignment
		}
	case '<':
		switch {
		case follows('<', "<<", TokenOperator):
			follows('=', "<<=", TokenOperator)
		case follows('=', "<=", TokenOperator):
			follows('>', "<=>", TokenOperator)
		default:
			t.Type = TokenSmallerThanSign
		}
	case '>':
		// '>>' stays two tokens so that nested template arguments close
		if !follows('=', ">=", TokenOperator) {
			t.Type = TokenGreaterThanSign
		}
	case '-':
		if follows('>', "->", TokenPointerOperator) {
			follows('*', "->*", TokenOperator)
		} else if !follows('-', "--", TokenOperator) {
			follows('=', "-=", TokenOperator)
		}
	case '+':
		if !follows('+', "++", TokenOperator) {
			follows('=', "+=", TokenOperator)
		}
	case '*':
		if !follows('=', "*=", TokenOperator) {
			t.Type = TokenStar
		}
	case '&':
		if !follows('&', "&&", TokenMultipleAnds) && !follows('=', "&=", TokenOperator) {
			t.Type = TokenAnd
		}
	case '|':
		if !follows('|', "||", TokenOperator) {
			follows('=', "|=", TokenOperator)
		}
	case '!', '/', '%', '^':
		follows('=', t.Text+"=", TokenOperator)
	case '~':
		if p.isCPlusPlus() && cpp.IsIdentStart(p.char) {
			t.Text = "~" + p.readIdentifier()
			t.Type = TokenIdentifier
		}
	case '?':
	case '.':
		switch {
		case isDigit(p.char):
			p.readNumber(t, ".")
		case p.char == '.':
			next := p.getc()
			if next == '.' {
				p.char = p.getc()
				t.Text = "..."
				t.Type = TokenMultipleDots
			} else {
				p.cpp.Ungetc(next)
				t.Type = TokenDotOperator
			}
		default:
			if !follows('*', ".*", TokenOperator) {
				t.Type = TokenDotOperator
			}
		}
	default:
		t.Type = TokenUnknown
	}
	return true
}

// readNumber reads a numeric literal starting at the lookahead. Exponent
// signs and digit separators are part of the number.
func (p *Parser) readNumber(t *Token, prefix string) {
	var b strings.Builder
	b.WriteString(prefix)
	for cpp.IsIdent(p.char) || p.char == '.' {
		c := p.char
		b.WriteByte(byte(c))
		p.char = p.getc()
		if (c == 'e' || c == 'E' || c == 'p' || c == 'P') && (p.char == '+' || p.char == '-') {
			b.WriteByte(byte(p.char))
			p.char = p.getc()
		}
	}
	t.Text = b.String()
	t.Type = TokenNumber
}
