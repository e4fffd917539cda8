package parser

import "cxxtags/pkg/tag"

// K&R outcomes of maybeParseKnRStyleFunctionDefinition
const (
	knrFailed   = -1
	knrNotKnR   = 0
	knrFunction = 1
)

// maybeParseKnRStyleFunctionDefinition checks whether the statement ending
// at the current ';' starts an old style definition:
//
//	int add(a, b)
//	int a;
//	int b;
//	{
//
// On a match the remaining parameter declarations and the body are parsed
// and knrFunction is returned. knrNotKnR leaves the statement to the
// generic analysis; knrFailed reports a structural failure in the body.
func (p *Parser) maybeParseKnRStyleFunctionDefinition() int {
	paren := knrParameterList(p.chain)
	if paren == nil {
		return knrNotKnR
	}
	names := map[string]bool{}
	for t := paren.Chain.First(); t != nil; t = t.next {
		if t.Is(TokenIdentifier) {
			names[t.Text] = true
		}
	}

	// move the first declaration out of the statement
	first := NewChain()
	for paren.next != nil {
		first.Append(paren.next)
	}
	if !knrDeclaration(first) {
		for first.Len() > 0 {
			p.chain.Append(first.TakeFirst())
		}
		p.token = p.chain.Last()
		return knrNotKnR
	}
	decls := []*Chain{first}

	header := p.chain
	for {
		p.chain = NewChain()
		if !p.parseUpToOneOf(TokenSemicolon | TokenOpeningBracket | TokenEOF) {
			p.chain = header
			return knrFailed
		}
		if p.token.Is(TokenOpeningBracket) {
			break
		}
		if p.token.Is(TokenEOF) || !knrDeclaration(p.chain) {
			// not a definition after all; the header is analyzed alone
			p.chain = header
			p.token = header.Last()
			return knrNotKnR
		}
		decls = append(decls, p.chain)
	}
	p.chain = header
	p.token = header.Last()

	var info signatureInfo
	if !p.lookForFunctionSignature(header, &info, nil) {
		return knrNotKnR
	}
	name, scopes, index := p.emitFunctionTags(&info, tag.KindFunction)
	p.scopes.push(name, scopeFunction, tag.AccessUnknown)
	scopes++

	for _, decl := range decls {
		p.emitKnRParameters(decl, names)
	}

	if !p.parseBlock(true) {
		p.scopes.popN(scopes)
		return knrFailed
	}
	p.markEnd(index)
	p.scopes.popN(scopes)
	return knrFunction
}

// knrParameterList returns the identifier list of "type name(a, b)" when
// declarations follow it in chain.
func knrParameterList(chain *Chain) *Token {
	paren := chain.FirstOfType(TokenParenthesisChain)
	if paren == nil || !paren.prev.Is(TokenIdentifier) {
		return nil
	}
	// at least "type name ;" must follow
	if paren.next == nil || paren.next.next == nil || paren.next.next.next == nil {
		return nil
	}
	inner := paren.Chain
	if inner.Len() < 3 {
		return nil
	}
	expectIdentifier := true
	for t := inner.First().next; t != nil && !t.Is(TokenClosingParenthesis); t = t.next {
		if expectIdentifier && !t.Is(TokenIdentifier) {
			return nil
		}
		if !expectIdentifier && !t.Is(TokenComma) {
			return nil
		}
		expectIdentifier = !expectIdentifier
	}
	if expectIdentifier {
		return nil
	}
	return paren
}

// knrDeclaration checks a parameter declaration: identifiers, keywords,
// pointer marks, arrays, bitfield widths and separating commas only.
func knrDeclaration(chain *Chain) bool {
	first := chain.First()
	if !first.Is(TokenIdentifier | TokenKeyword) {
		return false
	}
	for t := first; t != nil; t = t.next {
		switch {
		case t.Is(TokenIdentifier | TokenKeyword | TokenStar | TokenSquareParenthesisChain | TokenComma):
		case t.Is(TokenSingleColon) && t.next.Is(TokenNumber):
			t = t.next
		case t.Is(TokenParenthesisChain) && (isPointerDeclarator(t) || t.prev.Is(TokenParenthesisChain)):
		case t.Is(TokenSemicolon) && t.next == nil:
		default:
			return false
		}
	}
	return chain.Last().Is(TokenSemicolon)
}

// emitKnRParameters reports the declarators of decl that name one of the
// identifiers of the parameter list.
func (p *Parser) emitKnRParameters(decl *Chain, names map[string]bool) {
	p.knrNames = names
	p.extractVariableDeclarations(decl, variablesAsParameters)
	p.knrNames = nil
}
