package parser

import "cxxtags/pkg/tag"

// parseUsingClause handles the forms of using:
//
//	using namespace X;    no record
//	using A = B;         typedef A
//	using A::b;          using b
func (p *Parser) parseUsingClause() bool {
	usingTok := p.token
	if !p.skipToSemicolonOrEOF() {
		return false
	}
	end := p.token
	if end.Is(TokenSemicolon | TokenEOF) {
		end = end.prev
	}
	first := usingTok.next
	if first == nil || first == p.token || end == usingTok {
		p.newStatement()
		return true
	}

	outer := p.scopes.typ()
	switch {
	case first.IsKeyword(KeywordNamespace):
		// using namespace X;

	case first.next.Is(TokenAssignment):
		if first.Is(TokenIdentifier) && first.next != end {
			if rec := p.beginTag(tag.KindTypedef, first); rec != nil {
				rec.TypeRef = typeRefOf(tokenRange(first.next.next, end), nil)
				rec.Template = p.templateText()
				rec.FileScope = p.fileScope(tag.KindTypedef, outer, false)
				p.commitTag(rec)
			}
		}

	default:
		if first.IsKeyword(KeywordTypename) {
			first = first.next
		}
		if end.Is(TokenIdentifier) && end.prev.Is(TokenMultipleColons) {
			if rec := p.beginTag(tag.KindUsing, end); rec != nil {
				rec.TypeRef = tag.TypeRef{Kind: "typename", Name: render(tokenRange(first, end), nil)}
				rec.FileScope = p.fileScope(tag.KindUsing, outer, false)
				p.commitTag(rec)
			}
		}
	}
	p.newStatement()
	return true
}
