package parser

import "cxxtags/pkg/tag"

// openingBracketIsLambda checks whether the current '{' opens a lambda body:
//
//	[capture] (params) mutable noexcept -> ret {
//	[capture] (params) {
//	[capture] {
//
// It returns the parameter chain token, or the capture list when there are
// no parameters, and nil when the bracket is something else.
func (p *Parser) openingBracketIsLambda() *Token {
	t := p.token.prev
	if t == nil {
		return nil
	}
	if t.Is(TokenSquareParenthesisChain) {
		if isLambdaCapture(t) {
			return t
		}
		return nil
	}

	// trailing return type
	if arrow := prevOfType(p.token, TokenPointerOperator|TokenParenthesisChain); arrow.Is(TokenPointerOperator) {
		t = arrow.prev
	}
	for t.Is(TokenKeyword) && (t.IsKeyword(KeywordMutable) || t.IsKeyword(KeywordNoexcept) ||
		t.IsKeyword(KeywordConstexpr) || t.IsKeyword(KeywordConsteval)) {
		t = t.prev
	}
	if t.Is(TokenParenthesisChain) && t.prev.Is(TokenKeyword) && t.prev.IsKeyword(KeywordNoexcept) {
		t = t.prev.prev
	}
	if t.Is(TokenParenthesisChain) && t.prev.Is(TokenSquareParenthesisChain) && isLambdaCapture(t.prev) {
		return t
	}
	return nil
}

// isLambdaCapture tells a capture list from an array subscript or size
func isLambdaCapture(square *Token) bool {
	prev := square.prev
	if prev == nil {
		return true
	}
	if prev.Is(TokenIdentifier | TokenSquareParenthesisChain | TokenParenthesisChain |
		TokenGreaterThanSign | TokenAngleBracketChain | TokenClosingBracket) {
		return false
	}
	if prev.IsKeyword(KeywordOperator) || prev.IsKeyword(KeywordNew) || prev.IsKeyword(KeywordDelete) {
		return false
	}
	return true
}

// handleLambda parses the lambda body opened by the current '{' as an
// anonymous function scope and leaves an empty bracket chain in its place.
func (p *Parser) handleLambda(params *Token) bool {
	open := p.token
	saved := p.saveStatement()

	name := p.anonymousToken(open)
	index := tag.Nil
	var declared *paramInfo
	if rec := p.beginTag(tag.KindFunction, name); rec != nil {
		if params.Is(TokenParenthesisChain) {
			rec.Signature = render([]*Token{params}, nil)
		}
		rec.FileScope = true
		index = p.commitTag(rec)
	}
	p.scopes.push(name.Text, scopeFunction, tag.AccessUnknown)
	if params.Is(TokenParenthesisChain) {
		info := &paramInfo{}
		if looksLikeFunctionParameterList(params, p.isCPlusPlus(), info) {
			declared = info
		}
	}
	p.emitParameterTags(declared)

	ok := p.parseBlock(true)
	p.markEnd(index)
	p.scopes.pop()
	p.restoreStatement(saved)

	open.Type = TokenBracketChain
	open.Text = ""
	open.Chain = NewChain()
	open.Chain.Append(&Token{Type: TokenOpeningBracket, Text: "{", Line: open.Line, Offset: open.Offset})
	open.Chain.Append(&Token{Type: TokenClosingBracket, Text: "}", Line: p.blockEndLine})
	p.token = open
	return ok
}
