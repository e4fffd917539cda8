package parser

import "cxxtags/pkg/tag"

// parseNamespace handles "namespace A {", "namespace A::B {", anonymous
// namespaces and "namespace A = B::C;" aliases.
func (p *Parser) parseNamespace() bool {
	nsTok := p.token
	inline := p.keywordState&seenInline != 0
	if !p.parseUpToOneOf(TokenEOF | TokenSemicolon | TokenOpeningBracket | TokenAssignment) {
		return false
	}

	switch {
	case p.token.Is(TokenEOF):
		return true
	case p.token.Is(TokenSemicolon):
		p.newStatement()
		return true
	case p.token.Is(TokenAssignment):
		return p.parseNamespaceAlias(p.token)
	}

	var names []*Token
	for t := nsTok.next; t != nil && t != p.token; t = t.next {
		if t.Is(TokenIdentifier) {
			names = append(names, t)
		}
	}
	if len(names) == 0 {
		names = append(names, p.anonymousToken(nsTok))
	}

	var indexes []int
	for _, name := range names {
		if rec := p.beginTag(tag.KindNamespace, name); rec != nil {
			if inline {
				rec.Properties |= tag.PropInline
			}
			indexes = append(indexes, p.commitTag(rec))
		}
		p.scopes.push(name.Text, scopeNamespace, tag.AccessUnknown)
	}

	ok := p.parseBlock(true)
	for _, index := range indexes {
		p.markEnd(index)
	}
	p.scopes.popN(len(names))
	return ok
}

// parseNamespaceAlias reports "namespace name = target;" as an alias
func (p *Parser) parseNamespaceAlias(assign *Token) bool {
	name := assign.prev
	if !p.skipToSemicolonOrEOF() {
		return false
	}
	if name.Is(TokenIdentifier) && assign.next != nil && assign.next != p.token {
		end := p.token.prev
		if rec := p.beginTag(tag.KindAlias, name); rec != nil {
			rec.TypeRef = tag.TypeRef{Kind: "namespace", Name: render(tokenRange(assign.next, end), nil)}
			rec.FileScope = p.fileScope(tag.KindAlias, p.scopes.typ(), false)
			p.commitTag(rec)
		}
	}
	p.newStatement()
	return true
}
