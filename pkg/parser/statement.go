package parser

// analyzeOtherStatement examines a statement ended by ';' that no keyword
// handler claimed. Outside function bodies prototypes are looked for first
// and variables second; inside them the order is reversed.
func (p *Parser) analyzeOtherStatement() {
	if p.keywordState&seenReturn != 0 || p.chain.Len() < 2 {
		return
	}
	first := p.chain.First()
	if !first.Is(TokenIdentifier | TokenKeyword | TokenMultipleColons) {
		return
	}
	if p.keywordState&seenTypedef != 0 {
		p.extractTypedef(p.chain)
		return
	}

	if p.scopes.typ() == scopeFunction {
		if p.extractVariableDeclarations(p.chain, 0) {
			return
		}
		p.emitPrototypes(true)
		return
	}

	if p.emitPrototypes(false) {
		return
	}
	if p.keywordState&(seenInline|seenExplicit|seenOperator|seenVirtual) != 0 {
		return
	}
	p.extractVariableDeclarations(p.chain, 0)
}

// parseIfForWhileSwitch reports the variables declared in the condition of
// a control statement: "if (T x = f())", "for (int i = 0; ...)",
// "for (auto x : v)".
func (p *Parser) parseIfForWhileSwitch() bool {
	if !p.parseUpToOneOf(TokenParenthesisChain | TokenSemicolon | TokenOpeningBracket | TokenEOF) {
		return false
	}
	switch {
	case p.token.Is(TokenEOF):
		return true
	case p.token.Is(TokenOpeningBracket):
		return p.parseBlock(true)
	case p.token.Is(TokenSemicolon):
		p.newStatement()
		return true
	}

	inner := p.token.Chain
	if !chainContains(inner, TokenAnd|TokenMultipleAnds|TokenStar, false) ||
		chainContains(inner, TokenAssignment|TokenSemicolon, false) {
		inner.TakeFirst()
		if last := inner.Last(); last.Is(TokenClosingParenthesis) {
			last.Type = TokenSemicolon
			last.Text = ";"
		}
		p.extractVariableDeclarations(inner, 0)
	}
	p.newStatement()
	return true
}
