package parser

import "cxxtags/pkg/tag"

type variableFlags int

const (
	// variablesAsParameters reports the declarations as parameters, as in
	// the declaration list of a K&R function definition.
	variablesAsParameters variableFlags = 1 << iota
	// variablesAsTypedefs reports the declared names as typedefs
	variablesAsTypedefs
)

// declarator is one name declared by a variable declaration statement
type declarator struct {
	identifier *Token
	qualifier  *Token // first token of an "A::" prefix
	start, end *Token // tokens making up the declarator, type included
	typeEnd    *Token // last token of the type before the qualified name
}

// extractVariableDeclarations reports the variables declared by chain,
// which holds one statement terminated by ';', ',' or its end. It returns
// whether the statement looked like a declaration, regardless of which
// records the sink kept.
func (p *Parser) extractVariableDeclarations(chain *Chain, flags variableFlags) bool {
	first := chain.First()
	if first == nil || !first.Is(TokenIdentifier|TokenKeyword|TokenMultipleColons) {
		return false
	}
	if first.Is(TokenKeyword) && !mayBePartOfTypeName(first.Keyword) && !excludeFromTypeNames(first.Keyword) {
		return false
	}

	got := false
	var baseType []*Token
	for t := first; t != nil; {
		d, next, ok := p.scanDeclarator(t, !got, flags)
		if !ok {
			return got
		}
		var inherited []*Token
		if got {
			inherited = baseType
		} else {
			baseType = baseTypeTokens(d)
		}
		p.emitVariable(d, inherited, flags)
		got = true

		// skip the initializer or bitfield width
		for next != nil && !next.Is(TokenComma|TokenSemicolon) {
			next = next.next
		}
		if !next.Is(TokenComma) {
			return got
		}
		t = next.next
	}
	return got
}

// scanDeclarator reads one declarator starting at t. The first declarator
// of a statement must carry a type before its name.
func (p *Parser) scanDeclarator(t *Token, first bool, flags variableFlags) (declarator, *Token, bool) {
	cpp := p.isCPlusPlus()
	d := declarator{start: t}
	for ; t != nil; t = t.next {
		switch {
		case t.Is(TokenIdentifier | TokenMultipleColons | TokenStar | TokenAnd | TokenMultipleAnds |
			TokenAngleBracketChain):
			continue
		case t.Is(TokenKeyword):
			if !mayBePartOfTypeName(t.Keyword) && !excludeFromTypeNames(t.Keyword) {
				return d, nil, false
			}
			continue
		case cpp && t.Is(TokenSmallerThanSign):
			end := skipToEndOfTemplateAngleBracket(t)
			if end == nil {
				return d, nil, false
			}
			t = end
			continue
		}
		break
	}

	var after, nested *Token
	switch {
	case t == nil || t.Is(TokenSemicolon|TokenComma|TokenAssignment|TokenSingleColon):
		if t == nil {
			d.end = d.start.owner.Last()
		} else {
			d.end = t.prev
		}
		d.identifier = d.end
		after = t

	case t.Is(TokenSquareParenthesisChain):
		d.identifier = t.prev
		for t.next.Is(TokenSquareParenthesisChain) {
			t = t.next
		}
		d.end = t
		after = t.next

	case cpp && t.Is(TokenBracketChain):
		// uniform initialization: T x{...}
		d.identifier = t.prev
		d.end = t.prev
		after = t.next

	case t.Is(TokenParenthesisChain):
		if isPointerDeclarator(t) && t != d.start &&
			(t.next.Is(TokenParenthesisChain|TokenSquareParenthesisChain) || t.prev.Is(TokenKeyword)) {
			// T (*name)(args), T (*name)[n], T (&name)
			d.identifier = t.Chain.LastOfType(TokenIdentifier)
			nested = t
			end := t
			for end.next.Is(TokenParenthesisChain | TokenSquareParenthesisChain) {
				end = end.next
			}
			d.end = end
			after = end.next
		} else if flags&variablesAsTypedefs != 0 && t.prev.Is(TokenIdentifier) && t.prev != d.start {
			// function type: typedef void handler(int);
			d.identifier = t.prev
			d.end = t
			after = t.next
		} else if cpp && t.prev.Is(TokenIdentifier) && looksLikeConstructorParameterSet(t) {
			// T name(args)
			d.identifier = t.prev
			d.end = t.prev
			after = t.next
		} else {
			return d, nil, false
		}

	default:
		return d, nil, false
	}

	if d.identifier == nil || !d.identifier.Is(TokenIdentifier) {
		return d, nil, false
	}
	if !after.Is(TokenSemicolon|TokenComma|TokenAssignment|TokenSingleColon) && after != nil {
		if !(cpp && after.Is(TokenBracketChain)) {
			return d, nil, false
		}
	}

	if nested != nil {
		d.typeEnd = nested.prev
		return d, after, true
	}

	// qualified definitions: int A::b = 0;
	lead := d.identifier
	for lead.prev.Is(TokenMultipleColons) && lead.prev.prev.Is(TokenIdentifier|TokenGreaterThanSign) {
		q := lead.prev.prev
		if q.Is(TokenGreaterThanSign) {
			lt := skipBackToStartOfTemplateAngleBracket(q)
			if lt == nil || !lt.prev.Is(TokenIdentifier) {
				break
			}
			q = lt.prev
		}
		lead = q
	}
	if lead != d.identifier {
		d.qualifier = lead
	}
	if lead.prev.Is(TokenMultipleColons) {
		return d, nil, false
	}
	if lead != d.start && lead.prev != nil {
		d.typeEnd = lead.prev
	}
	if first && d.typeEnd == nil {
		// "x = 1;", "a[i] = 2;": nothing is declared
		return d, nil, false
	}
	return d, after, true
}

// looksLikeConstructorParameterSet tells "T name(1, x)" from the most
// vexing parse "T name(U)": arguments that cannot be parameter
// declarations make it an object construction.
func looksLikeConstructorParameterSet(paren *Token) bool {
	if paren.Chain.Len() <= 2 {
		return false
	}
	var info paramInfo
	if !looksLikeFunctionParameterList(paren, true, &info) {
		return true
	}
	for _, prm := range info.params {
		if prm.identifier != nil {
			return false
		}
	}
	return true
}

// baseTypeTokens returns the type shared by later declarators of the
// statement: the type of the first one without pointer marks.
func baseTypeTokens(d declarator) []*Token {
	if d.typeEnd == nil {
		return nil
	}
	end := d.typeEnd
	for end != d.start && end.Is(TokenStar|TokenAnd|TokenMultipleAnds) {
		end = end.prev
	}
	return tokenRange(d.start, end)
}

// emitVariable reports the declarator with the record kind its scope and
// keywords call for. inherited is the type shared with the first
// declarator of the statement.
func (p *Parser) emitVariable(d declarator, inherited []*Token, flags variableFlags) {
	if flags&variablesAsParameters != 0 && p.knrNames != nil && !p.knrNames[d.identifier.Text] {
		return
	}
	static := p.keywordState&seenStatic != 0
	extern := p.keywordState&seenExtern != 0
	for t := d.start; t != nil && t != d.identifier; t = t.next {
		switch {
		case t.IsKeyword(KeywordStatic):
			static = true
		case t.IsKeyword(KeywordExtern):
			extern = true
		}
	}

	outer := p.scopes.typ()
	var kind tag.Kind
	switch {
	case flags&variablesAsTypedefs != 0:
		kind = tag.KindTypedef
	case flags&variablesAsParameters != 0:
		kind = tag.KindParameter
	case extern && !d.identifier.next.Is(TokenAssignment):
		kind = tag.KindExternVar
	case outer == scopeFunction:
		kind = tag.KindLocal
	case p.scopes.isClassLike():
		kind = tag.KindMember
	default:
		kind = tag.KindVariable
	}

	scopes := 0
	if d.qualifier != nil {
		scopes = p.pushQualifierScopes(d.qualifier, d.identifier)
	}
	if rec := p.beginTag(kind, d.identifier); rec != nil {
		skip := map[*Token]bool{d.identifier: true}
		toks := tokenRange(d.start, d.end)
		if d.qualifier != nil {
			for _, t := range tokenRange(d.qualifier, d.identifier) {
				skip[t] = true
			}
		}
		if len(inherited) > 0 {
			toks = append(append([]*Token{}, inherited...), toks...)
		}
		rec.TypeRef = typeRefOf(toks, skip)
		rec.Template = p.templateText()
		if kind != tag.KindTypedef {
			rec.Properties = p.declarationProperties()
		}
		if static {
			rec.Properties |= tag.PropStatic
		}
		if extern {
			rec.Properties |= tag.PropExtern
		}
		rec.FileScope = p.fileScope(kind, outer, static)
		p.commitTag(rec)
	}
	p.scopes.popN(scopes)
}

// extractTypedef reports the names declared by a typedef statement whose
// typedef keyword was already removed from chain.
func (p *Parser) extractTypedef(chain *Chain) bool {
	return p.extractVariableDeclarations(chain, variablesAsTypedefs)
}
