package parser

import "strings"

// Chain is a doubly linked sequence of tokens. A token belongs to at most
// one chain at a time; appending a token that is still owned elsewhere
// moves it.
type Chain struct {
	head, tail *Token
	count      int
}

// NewChain creates an empty chain
func NewChain() *Chain {
	return &Chain{}
}

// Len returns the number of tokens in the chain
func (c *Chain) Len() int {
	return c.count
}

// First returns the head of the chain, or nil
func (c *Chain) First() *Token {
	return c.head
}

// Last returns the tail of the chain, or nil
func (c *Chain) Last() *Token {
	return c.tail
}

// At returns the token at index i, or nil
func (c *Chain) At(i int) *Token {
	t := c.head
	for ; t != nil && i > 0; i-- {
		t = t.next
	}
	return t
}

func detach(t *Token) {
	if t.owner != nil {
		t.owner.Take(t)
	}
}

// Append adds t at the end of the chain
func (c *Chain) Append(t *Token) {
	detach(t)
	t.owner = c
	t.prev = c.tail
	t.next = nil
	if c.tail != nil {
		c.tail.next = t
	} else {
		c.head = t
	}
	c.tail = t
	c.count++
}

// Prepend adds t at the start of the chain
func (c *Chain) Prepend(t *Token) {
	detach(t)
	t.owner = c
	t.prev = nil
	t.next = c.head
	if c.head != nil {
		c.head.prev = t
	} else {
		c.tail = t
	}
	c.head = t
	c.count++
}

// InsertAfter links t right after at, which must belong to the chain.
func (c *Chain) InsertAfter(at, t *Token) {
	if at == nil || at == c.tail {
		c.Append(t)
		return
	}
	detach(t)
	t.owner = c
	t.prev = at
	t.next = at.next
	at.next.prev = t
	at.next = t
	c.count++
}

// Take unlinks t from the chain
func (c *Chain) Take(t *Token) *Token {
	if t == nil || t.owner != c {
		return nil
	}
	if t.prev != nil {
		t.prev.next = t.next
	} else {
		c.head = t.next
	}
	if t.next != nil {
		t.next.prev = t.prev
	} else {
		c.tail = t.prev
	}
	t.prev, t.next, t.owner = nil, nil, nil
	c.count--
	return t
}

// TakeFirst unlinks and returns the head of the chain
func (c *Chain) TakeFirst() *Token {
	return c.Take(c.head)
}

// TakeLast unlinks and returns the tail of the chain
func (c *Chain) TakeLast() *Token {
	return c.Take(c.tail)
}

// DestroyRange unlinks every token from "from" to "to", inclusive. Both
// must belong to the chain with from not after to.
func (c *Chain) DestroyRange(from, to *Token) {
	if from == nil || to == nil || from.owner != c || to.owner != c {
		return
	}
	for t := from; t != nil; {
		next := t.next
		c.Take(t)
		if t == to {
			return
		}
		t = next
	}
}

// Clear empties the chain
func (c *Chain) Clear() {
	for c.head != nil {
		c.TakeFirst()
	}
}

// FirstOfType returns the first token of one of types
func (c *Chain) FirstOfType(types TokenType) *Token {
	for t := c.head; t != nil; t = t.next {
		if t.Is(types) {
			return t
		}
	}
	return nil
}

// LastOfType returns the last token of one of types
func (c *Chain) LastOfType(types TokenType) *Token {
	for t := c.tail; t != nil; t = t.prev {
		if t.Is(types) {
			return t
		}
	}
	return nil
}

// FirstNotOfType returns the first token that is none of types
func (c *Chain) FirstNotOfType(types TokenType) *Token {
	for t := c.head; t != nil; t = t.next {
		if !t.Is(types) {
			return t
		}
	}
	return nil
}

// FirstKeyword returns the first token that is keyword k
func (c *Chain) FirstKeyword(k Keyword) *Token {
	for t := c.head; t != nil; t = t.next {
		if t.IsKeyword(k) {
			return t
		}
	}
	return nil
}

func (c *Chain) slice() []*Token {
	toks := make([]*Token, 0, c.count)
	for t := c.head; t != nil; t = t.next {
		toks = append(toks, t)
	}
	return toks
}

// nextOfType returns the first token after t of one of types
func nextOfType(t *Token, types TokenType) *Token {
	if t == nil {
		return nil
	}
	for t = t.next; t != nil; t = t.next {
		if t.Is(types) {
			return t
		}
	}
	return nil
}

// prevOfType returns the last token before t of one of types
func prevOfType(t *Token, types TokenType) *Token {
	if t == nil {
		return nil
	}
	for t = t.prev; t != nil; t = t.prev {
		if t.Is(types) {
			return t
		}
	}
	return nil
}

// prevNotOfType returns the last token before t that is none of types
func prevNotOfType(t *Token, types TokenType) *Token {
	if t == nil {
		return nil
	}
	for t = t.prev; t != nil; t = t.prev {
		if !t.Is(types) {
			return t
		}
	}
	return nil
}

// firstPossiblyNestedOfType searches c depth first, descending into
// parenthesis chains. It returns the token and the chain that holds it.
func firstPossiblyNestedOfType(c *Chain, types TokenType) (*Token, *Chain) {
	for t := c.head; t != nil; t = t.next {
		if t.Is(types) {
			return t, c
		}
		if t.Is(TokenParenthesisChain) {
			if found, owner := firstPossiblyNestedOfType(t.Chain, types); found != nil {
				return found, owner
			}
		}
	}
	return nil, nil
}

// lastPossiblyNestedOfType is firstPossiblyNestedOfType scanning backwards.
func lastPossiblyNestedOfType(c *Chain, types TokenType) (*Token, *Chain) {
	for t := c.tail; t != nil; t = t.prev {
		if t.Is(types) {
			return t, c
		}
		if t.Is(TokenParenthesisChain) {
			if found, owner := lastPossiblyNestedOfType(t.Chain, types); found != nil {
				return found, owner
			}
		}
	}
	return nil, nil
}

// chainContains reports whether a token of one of types appears in c,
// descending into nested chains when deep is set.
func chainContains(c *Chain, types TokenType, deep bool) bool {
	for t := c.head; t != nil; t = t.next {
		if t.Is(types) {
			return true
		}
		if deep && t.Chain != nil && chainContains(t.Chain, types, true) {
			return true
		}
	}
	return false
}

// skipToEndOfTemplateAngleBracket returns the '>' matching the '<' at t,
// or nil when the brackets are unbalanced.
func skipToEndOfTemplateAngleBracket(t *Token) *Token {
	depth := 0
	for ; t != nil; t = t.next {
		switch {
		case t.Is(TokenSmallerThanSign):
			depth++
		case t.Is(TokenGreaterThanSign):
			depth--
			if depth == 0 {
				return t
			}
		case t.Is(TokenSemicolon | TokenOpeningBracket | TokenClosingBracket):
			return nil
		}
	}
	return nil
}

// skipBackToStartOfTemplateAngleBracket returns the '<' matching the '>'
// at t, or nil.
func skipBackToStartOfTemplateAngleBracket(t *Token) *Token {
	depth := 0
	for ; t != nil; t = t.prev {
		switch {
		case t.Is(TokenGreaterThanSign):
			depth++
		case t.Is(TokenSmallerThanSign):
			depth--
			if depth == 0 {
				return t
			}
		case t.Is(TokenSemicolon | TokenOpeningBracket | TokenClosingBracket):
			return nil
		}
	}
	return nil
}

// tokenRange returns the tokens from "from" to "to", inclusive, following
// the links of their chain.
func tokenRange(from, to *Token) []*Token {
	var toks []*Token
	for t := from; t != nil; t = t.next {
		toks = append(toks, t)
		if t == to {
			break
		}
	}
	return toks
}

// render joins tokens with normalized spacing, leaving out the tokens in
// skip wherever they appear, nested chains included.
func render(toks []*Token, skip map[*Token]bool) string {
	var b strings.Builder
	var prev *Token
	for _, t := range toks {
		if skip[t] {
			continue
		}
		if prev != nil && spaceBetween(prev, t) {
			b.WriteByte(' ')
		}
		if t.Chain != nil {
			b.WriteString(render(t.Chain.slice(), skip))
		} else {
			b.WriteString(t.Text)
		}
		prev = t
	}
	return b.String()
}

// spaceBetween decides the normalized spacing of type names and signatures:
// "const char * s", "std::vector<int> &", "(int a,int b)", "operator ()".
func spaceBetween(a, b *Token) bool {
	if a.Is(TokenOpeningParenthesis | TokenOpeningSquareParenthesis | TokenOpeningBracket |
		TokenSmallerThanSign | TokenMultipleColons | TokenDotOperator | TokenPointerOperator) {
		return false
	}
	if b.Is(TokenClosingParenthesis | TokenClosingSquareParenthesis | TokenClosingBracket |
		TokenGreaterThanSign | TokenComma | TokenMultipleColons | TokenDotOperator |
		TokenPointerOperator | TokenSemicolon | TokenSquareParenthesisChain |
		TokenSmallerThanSign | TokenAngleBracketChain) {
		return false
	}
	if a.IsKeyword(KeywordOperator) {
		return true
	}
	if a.Is(TokenOperator|TokenAssignment) || b.Is(TokenOperator|TokenAssignment) {
		return true
	}
	if b.Is(TokenParenthesisChain) || a.Is(TokenComma) {
		return false
	}
	if a.Is(TokenStar | TokenAnd | TokenMultipleAnds) {
		return b.Is(TokenIdentifier | TokenKeyword)
	}
	if a.Is(TokenKeyword | TokenIdentifier | TokenGreaterThanSign | TokenAngleBracketChain |
		TokenParenthesisChain | TokenSquareParenthesisChain | TokenNumber) {
		return b.Is(TokenKeyword | TokenIdentifier | TokenStar | TokenAnd | TokenMultipleAnds |
			TokenNumber | TokenBracketChain | TokenStringConstant | TokenCharacterConstant)
	}
	return false
}
