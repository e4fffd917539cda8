package parser

import "cxxtags/pkg/tag"

// parseEnum handles a statement at the enum keyword: a definition with its
// enumerators, a forward declaration, or a declaration using an enum type.
func (p *Parser) parseEnum() bool {
	enumTok := p.token
	if !p.parseUpToOneOf(TokenEOF | TokenSemicolon | TokenParenthesisChain | TokenOpeningBracket) {
		return false
	}

	if p.token.Is(TokenParenthesisChain) {
		// a function returning an enum: the block loop carries on
		return true
	}

	scoped := false
	if n := enumTok.next; n.IsKeyword(KeywordClass) || n.IsKeyword(KeywordStruct) {
		scoped = true
	}

	if p.token.Is(TokenSemicolon | TokenEOF) {
		if p.token.Is(TokenSemicolon) && p.chain.Len() > 3 && !scoped {
			if p.keywordState&seenTypedef != 0 {
				p.extractTypedef(p.chain)
			} else {
				p.extractVariableDeclarations(p.chain, 0)
			}
		}
		p.newStatement()
		return true
	}

	// '{'
	open := p.token
	var typeRef tag.TypeRef
	nameEnd := open.prev
	if colon := nextOfType(enumTok, TokenSingleColon); colon != nil {
		typeRef = typeRefOf(tokenRange(colon.next, open.prev), nil)
		nameEnd = colon.prev
	}

	outer := p.scopes.typ()
	scopes := 0
	var name *Token
	if nameEnd.Is(TokenIdentifier) && nameEnd != enumTok {
		name = nameEnd
		if q := qualifierStart(name); q != nil {
			scopes = p.pushQualifierScopes(q, name)
		}
	} else {
		name = p.anonymousToken(enumTok)
	}

	index := tag.Nil
	if rec := p.beginTag(tag.KindEnum, name); rec != nil {
		rec.TypeRef = typeRef
		rec.Template = p.templateText()
		rec.FileScope = p.fileScope(tag.KindEnum, outer, false)
		if scoped {
			rec.Properties |= tag.PropScopedEnum
		}
		index = p.commitTag(rec)
	}

	state := p.keywordState
	nameText := name.Text
	p.scopes.push(nameText, scopeEnum, tag.AccessUnknown)

	for {
		p.chain.Clear()
		if !p.parseUpToOneOf(TokenComma | TokenClosingBracket | TokenEOF) {
			p.scopes.pop()
			p.scopes.popN(scopes)
			return false
		}
		if p.token.Is(TokenEOF) {
			// truncated: no end line
			p.scopes.pop()
			p.scopes.popN(scopes)
			return true
		}
		if first := p.chain.First(); p.chain.Len() > 1 && first.Is(TokenIdentifier) {
			if rec := p.beginTag(tag.KindEnumerator, first); rec != nil {
				rec.FileScope = p.fileScope(tag.KindEnumerator, outer, false)
				p.commitTag(rec)
			}
		}
		if p.token.Is(TokenClosingBracket) {
			break
		}
	}

	p.blockEndLine = p.token.Line
	p.markEnd(index)
	p.scopes.pop()
	p.scopes.popN(scopes)

	if scoped {
		if !p.skipToSemicolonOrEOF() {
			return false
		}
		p.newStatement()
		return true
	}
	ok := p.parseDeclarationTrailer(KeywordEnum, "enum", nameText, state)
	p.newStatement()
	return ok
}

// qualifierStart returns the first token of an "A::B::" prefix before id
func qualifierStart(id *Token) *Token {
	var start *Token
	for t := id; t.prev.Is(TokenMultipleColons) && t.prev.prev.Is(TokenIdentifier); t = t.prev.prev {
		start = t.prev.prev
	}
	return start
}
