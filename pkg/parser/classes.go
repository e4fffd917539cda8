package parser

import "cxxtags/pkg/tag"

// parseClassStructOrUnion handles a statement at a class, struct or union
// keyword: a definition with its body, a forward declaration, or a
// declaration using the type.
func (p *Parser) parseClassStructOrUnion(kw Keyword, kind tag.Kind, st scopeType) bool {
	kwTok := p.token
	if p.isCPlusPlus() {
		p.accessEnabled = true
	}

	stop := TokenEOF | TokenSingleColon | TokenSemicolon | TokenOpeningBracket | TokenSmallerThanSign |
		TokenParenthesisChain | TokenAssignment
	for {
		if !p.parseUpToOneOf(stop) {
			return false
		}
		if !p.token.Is(TokenSmallerThanSign) {
			break
		}
		// Foo<int> specializations
		if !p.parseAndCondenseCurrentSubchain(subchainMarkers|TokenSmallerThanSign, false) {
			return false
		}
	}

	switch {
	case p.token.Is(TokenParenthesisChain):
		// struct X *f(...): the block loop carries on
		return true

	case p.token.Is(TokenEOF):
		return true

	case p.token.Is(TokenSemicolon):
		if p.chain.Len() > 3 {
			if p.keywordState&seenTypedef != 0 {
				p.extractTypedef(p.chain)
			} else if p.keywordState&seenFriend == 0 {
				p.extractVariableDeclarations(p.chain, 0)
			}
		}
		p.newStatement()
		return true

	case p.token.Is(TokenAssignment):
		// struct point p = { ... };
		p.extractVariableDeclarations(p.chain, 0)
		if !p.skipToSemicolonOrEOF() {
			return false
		}
		p.newStatement()
		return true
	}

	// ':' or '{'
	terminator := p.token
	var props tag.Properties
	nameTok := terminator.prev
	if nameTok.Is(TokenIdentifier) && nameTok.Text == "final" && nameTok.prev != kwTok {
		props |= tag.PropFinal
		nameTok = nameTok.prev
	}
	if nameTok.Is(TokenAngleBracketChain) {
		props |= tag.PropSpecialization
		nameTok = nameTok.prev
	}
	if p.isTemplateSpecialization() {
		props |= tag.PropSpecialization
	}

	outer := p.scopes.typ()
	scopes := 0
	var name *Token
	if nameTok.Is(TokenIdentifier) && nameTok != kwTok {
		name = nameTok
		if q := qualifierStart(name); q != nil {
			scopes = p.pushQualifierScopes(q, name)
		}
	} else {
		name = p.anonymousToken(kwTok)
	}

	state := p.keywordState
	template := p.templateText()

	var inheritance string
	if terminator.Is(TokenSingleColon) {
		header := p.chain
		p.chain = NewChain()
		if !p.parseUpToOneOf(TokenEOF | TokenSemicolon | TokenOpeningBracket) {
			p.chain = header
			p.scopes.popN(scopes)
			return false
		}
		inheritance = firstBaseClass(p.chain)
		bases := p.chain
		p.chain = header
		if !bases.Last().Is(TokenOpeningBracket) {
			p.scopes.popN(scopes)
			p.newStatement()
			return true
		}
	}

	index := tag.Nil
	if rec := p.beginTag(kind, name); rec != nil {
		rec.Inheritance = inheritance
		rec.Template = template
		rec.Properties = props
		if state&seenDeprecated != 0 {
			rec.Properties |= tag.PropDeprecated
		}
		rec.FileScope = p.fileScope(kind, outer, false)
		index = p.commitTag(rec)
	}

	access := tag.AccessPublic
	switch {
	case !p.isCPlusPlus():
		access = tag.AccessUnknown
	case kw == KeywordClass:
		access = tag.AccessPrivate
	}
	nameText := name.Text
	p.scopes.push(nameText, st, access)

	ok := p.parseBlock(true)
	p.markEnd(index)
	p.scopes.pop()
	p.scopes.popN(scopes)
	if !ok {
		return false
	}

	ok = p.parseDeclarationTrailer(kw, kwTok.Text, nameText, state)
	p.newStatement()
	return ok
}

// firstBaseClass renders the first entry of a base clause, leaving out
// access and virtual keywords.
func firstBaseClass(chain *Chain) string {
	var toks []*Token
	depth := 0
	for t := chain.First(); t != nil; t = t.next {
		if t.Is(TokenOpeningBracket | TokenSemicolon | TokenEOF) {
			break
		}
		if depth == 0 && t.Is(TokenComma) {
			break
		}
		switch {
		case t.IsKeyword(KeywordPublic), t.IsKeyword(KeywordProtected), t.IsKeyword(KeywordPrivate),
			t.IsKeyword(KeywordVirtual):
			continue
		case t.Is(TokenSmallerThanSign):
			depth++
		case t.Is(TokenGreaterThanSign):
			depth--
		}
		toks = append(toks, t)
	}
	return render(toks, nil)
}

// parseDeclarationTrailer handles what follows the closing bracket of a
// class or enum body, "} a, *b;" or "} name_t;" after typedef, by parsing
// it as a declaration of the type "kw name".
func (p *Parser) parseDeclarationTrailer(kw Keyword, kwText, name string, state keywordState) bool {
	p.chain.Clear()
	if !p.parseUpToOneOf(TokenEOF | TokenSemicolon | TokenOpeningBracket) {
		return false
	}
	if p.token.Is(TokenEOF) || p.chain.Len() < 2 {
		return true
	}

	first := p.chain.First()
	p.chain.Prepend(&Token{Type: TokenIdentifier, Text: name, Line: first.Line, Offset: first.Offset})
	p.chain.Prepend(&Token{Type: TokenKeyword, Keyword: kw, Text: kwText, Line: first.Line, Offset: first.Offset})
	if state&seenConst != 0 {
		p.chain.Prepend(&Token{Type: TokenKeyword, Keyword: KeywordConst, Text: "const"})
	}
	if state&seenVolatile != 0 {
		p.chain.Prepend(&Token{Type: TokenKeyword, Keyword: KeywordVolatile, Text: "volatile"})
	}
	p.keywordState = state

	switch {
	case p.token.Is(TokenOpeningBracket):
		// struct s { ... } f(void) { ... }
		return p.handleOpeningBracket()
	case state&seenTypedef != 0:
		p.extractTypedef(p.chain)
	default:
		p.extractVariableDeclarations(p.chain, 0)
	}
	return true
}
