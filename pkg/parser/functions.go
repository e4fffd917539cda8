package parser

import "cxxtags/pkg/tag"

// maxParameters bounds the parameters recorded for one signature
const maxParameters = 24

type signatureFlags uint16

const (
	sigPure signatureFlags = 1 << iota
	sigDefault
	sigDelete
	sigOverride
	sigFinal
	sigVolatile
	sigTemplateSpecialization
	sigScopeTemplateSpecialization
	sigTypeContainsIdentifier
	sigTrailingReturn
)

// signatureInfo locates the parts of a function signature inside a
// statement chain. For parenthesized declarators such as
// "int (*f(void))[2]" the identifier and the parameter list live in a
// nested chain and the type spans the whole statement.
type signatureInfo struct {
	identifierStart *Token
	identifierEnd   *Token
	scopeStart      *Token // first token of an "A::B::" qualifier
	paren           *Token // parameter list
	topParen        *Token // statement level token holding paren
	trailingConst   *Token
	typeStart       *Token
	typeEnd         *Token
	returnStart     *Token // trailing return type
	returnEnd       *Token
	flags           signatureFlags
}

// param is one declarator of a parameter list, default value excluded
type param struct {
	start, end *Token
	identifier *Token
}

type paramInfo struct {
	params []param
}

// lookForFunctionSignature scans chain for the first parenthesis that reads
// as the parameter list of a function declarator and fills info.
func (p *Parser) lookForFunctionSignature(chain *Chain, info *signatureInfo, params *paramInfo) bool {
	for t := chain.First(); t != nil; t = t.next {
		switch {
		case t.Is(TokenAssignment | TokenSemicolon | TokenOpeningBracket | TokenBracketChain):
			return false
		case t.IsKeyword(KeywordOperator):
			return p.matchOperatorSignature(chain, t, info, params)
		case t.Is(TokenParenthesisChain):
			*info = signatureInfo{}
			if params != nil {
				params.params = params.params[:0]
			}
			if p.matchSignatureAt(chain, t, info, params) {
				return true
			}
		}
	}
	return false
}

// matchSignatureAt tests the parenthesis t of chain as a parameter list
func (p *Parser) matchSignatureAt(chain *Chain, t *Token, info *signatureInfo, params *paramInfo) bool {
	cpp := p.isCPlusPlus()
	prev := t.prev
	var id *Token
	switch {
	case prev.Is(TokenIdentifier):
		id = prev
	case cpp && prev.Is(TokenGreaterThanSign):
		// f<int>(...)
		lt := skipBackToStartOfTemplateAngleBracket(prev)
		if lt == nil || !lt.prev.Is(TokenIdentifier) {
			return false
		}
		id = lt.prev
		info.flags |= sigTemplateSpecialization
	case cpp && prev.Is(TokenAngleBracketChain) && prev.prev.Is(TokenIdentifier):
		id = prev.prev
		info.flags |= sigTemplateSpecialization
	case t.next.Is(TokenParenthesisChain | TokenSquareParenthesisChain):
		return p.matchNestedSignature(chain, t, info, params)
	default:
		return false
	}
	if id.prev.Is(TokenDotOperator|TokenPointerOperator) || id.prev.IsKeyword(KeywordNew) {
		return false
	}
	if !looksLikeFunctionParameterList(t, cpp, params) {
		return false
	}

	info.identifierStart, info.identifierEnd = id, id
	info.paren, info.topParen = t, t
	scanScopeQualifier(info)
	if !p.setReturnType(chain, info) {
		return false
	}
	return p.scanSignatureTrailer(t.next, info)
}

// matchNestedSignature handles declarators like "(*f(void))" where the
// function name sits inside the parenthesis t.
func (p *Parser) matchNestedSignature(chain *Chain, t *Token, info *signatureInfo, params *paramInfo) bool {
	inner := t.Chain
	second := inner.First().next
	if !second.Is(TokenStar | TokenAnd | TokenMultipleAnds) {
		return false
	}
	for u := second; u != nil; u = u.next {
		if u.Is(TokenIdentifier) && u.next.Is(TokenParenthesisChain) {
			if !looksLikeFunctionParameterList(u.next, p.isCPlusPlus(), params) {
				return false
			}
			info.identifierStart, info.identifierEnd = u, u
			info.paren = u.next
			info.topParen = t
			info.flags |= sigTypeContainsIdentifier
			scanScopeQualifier(info)

			end := t
			for end.next.Is(TokenParenthesisChain | TokenSquareParenthesisChain) {
				end = end.next
			}
			if t.prev != nil && !validReturnType(chain.First(), t.prev, p.isCPlusPlus()) {
				return false
			}
			info.typeStart, info.typeEnd = chain.First(), end
			return p.scanSignatureTrailer(end.next, info)
		}
		if !u.Is(TokenStar | TokenAnd | TokenMultipleAnds | TokenIdentifier | TokenMultipleColons | TokenKeyword) {
			return false
		}
	}
	return false
}

// matchOperatorSignature handles operator overloads and conversion
// operators: "operator+ (...)", "operator() (...)", "operator int* ()".
func (p *Parser) matchOperatorSignature(chain *Chain, op *Token, info *signatureInfo, params *paramInfo) bool {
	*info = signatureInfo{}
	if params != nil {
		params.params = params.params[:0]
	}
	t := op.next
	if t == nil {
		return false
	}
	var paren, end *Token
	if t.Is(TokenParenthesisChain) && t.Chain.Len() == 2 && t.next.Is(TokenParenthesisChain) {
		end, paren = t, t.next
	} else {
		for u := t; u != nil; u = u.next {
			if u.Is(TokenParenthesisChain) {
				paren = u
				break
			}
			if u.Is(TokenSemicolon | TokenOpeningBracket) {
				return false
			}
		}
		if paren == nil || paren == t {
			return false
		}
		end = paren.prev
	}
	if !looksLikeFunctionParameterList(paren, true, params) {
		return false
	}
	info.identifierStart, info.identifierEnd = op, end
	info.paren, info.topParen = paren, paren
	scanScopeQualifier(info)
	if !p.setReturnType(chain, info) {
		return false
	}
	return p.scanSignatureTrailer(paren.next, info)
}

// scanScopeQualifier walks back from the identifier over "A::B<T>::"
func scanScopeQualifier(info *signatureInfo) {
	t := info.identifierStart
	for t.prev.Is(TokenMultipleColons) {
		q := t.prev.prev
		switch {
		case q.Is(TokenGreaterThanSign):
			lt := skipBackToStartOfTemplateAngleBracket(q)
			if lt == nil {
				return
			}
			info.flags |= sigScopeTemplateSpecialization
			q = lt.prev
		case q.Is(TokenAngleBracketChain):
			info.flags |= sigScopeTemplateSpecialization
			q = q.prev
		}
		if !q.Is(TokenIdentifier) {
			if q == nil {
				// "::f()" names the global scope
				info.scopeStart = t.prev
			}
			return
		}
		info.scopeStart = q
		t = q
	}
}

// setReturnType records the tokens before the qualified identifier as the
// return type after checking they can form one.
func (p *Parser) setReturnType(chain *Chain, info *signatureInfo) bool {
	lead := info.identifierStart
	if info.scopeStart != nil {
		lead = info.scopeStart
	}
	if lead.prev == nil {
		return true
	}
	if !validReturnType(chain.First(), lead.prev, p.isCPlusPlus()) {
		return false
	}
	info.typeStart, info.typeEnd = chain.First(), lead.prev
	return true
}

// validReturnType checks the tokens from "from" to "to" for the shape of
// declaration specifiers and a type.
func validReturnType(from, to *Token, cpp bool) bool {
	depth := 0
	for t := from; t != nil; t = t.next {
		switch {
		case t.Is(TokenIdentifier | TokenMultipleColons | TokenStar | TokenAnd | TokenMultipleAnds |
			TokenAngleBracketChain):
		case t.Is(TokenKeyword):
			if !mayBePartOfTypeName(t.Keyword) && !excludeFromTypeNames(t.Keyword) {
				return false
			}
		case cpp && t.Is(TokenSmallerThanSign):
			depth++
		case cpp && t.Is(TokenGreaterThanSign):
			depth--
		case depth > 0 && t.Is(TokenComma|TokenNumber):
		case t.Is(TokenParenthesisChain):
			// decltype(...), __typeof__(...) and attribute macros
			if !t.prev.Is(TokenIdentifier) && !t.prev.IsKeyword(KeywordDecltype) {
				return false
			}
		default:
			return false
		}
		if t == to {
			break
		}
	}
	return depth == 0
}

func isVirtSpecifier(t *Token) bool {
	return t.Is(TokenIdentifier) && (t.Text == "override" || t.Text == "final")
}

// scanSignatureTrailer checks what follows the parameter list and records
// the qualifiers found there: const, volatile, override, final, "= 0",
// "= default", "= delete" and a trailing return type.
func (p *Parser) scanSignatureTrailer(t *Token, info *signatureInfo) bool {
	cpp := p.isCPlusPlus()
	for ; t != nil; t = t.next {
		switch {
		case t.Is(TokenSemicolon | TokenOpeningBracket | TokenComma | TokenEOF):
			return true
		case t.Is(TokenSingleColon):
			// constructor initializer list
			return cpp
		case t.IsKeyword(KeywordRequires):
			return true
		case t.IsKeyword(KeywordConst):
			if info.trailingConst == nil {
				info.trailingConst = t
			}
		case t.IsKeyword(KeywordVolatile):
			info.flags |= sigVolatile
		case t.IsKeyword(KeywordNoexcept), t.IsKeyword(KeywordThrow):
			if t.next.Is(TokenParenthesisChain) {
				t = t.next
			}
		case cpp && t.Is(TokenAnd|TokenMultipleAnds):
			// ref qualifier
		case cpp && t.Is(TokenPointerOperator):
			end := trailingReturnEnd(t.next)
			if end == nil {
				return false
			}
			info.returnStart, info.returnEnd = t.next, end
			info.flags |= sigTrailingReturn
			t = end
		case t.Is(TokenAssignment):
			n := t.next
			switch {
			case n.Is(TokenNumber) && n.Text == "0":
				info.flags |= sigPure
			case n.IsKeyword(KeywordDefault):
				info.flags |= sigDefault
			case n.IsKeyword(KeywordDelete):
				info.flags |= sigDelete
			default:
				return false
			}
			t = n
		case t.Is(TokenIdentifier):
			switch {
			case cpp && t.Text == "override":
				info.flags |= sigOverride
			case cpp && t.Text == "final":
				info.flags |= sigFinal
			case t.next.Is(TokenParenthesisChain):
				// attribute macro with arguments
				t = t.next
			}
		case !cpp && t.Is(TokenKeyword):
			// K&R parameter declarations follow
			return true
		default:
			return false
		}
	}
	return true
}

// trailingReturnEnd returns the last token of the type after "->"
func trailingReturnEnd(start *Token) *Token {
	if start == nil || start.Is(TokenSemicolon|TokenOpeningBracket|TokenAssignment|TokenComma) {
		return nil
	}
	depth := 0
	u := start
	for ; u.next != nil; u = u.next {
		n := u.next
		if depth == 0 && (n.Is(TokenSemicolon|TokenOpeningBracket|TokenAssignment|TokenComma|TokenEOF) ||
			isVirtSpecifier(n) || n.IsKeyword(KeywordRequires)) {
			break
		}
		switch {
		case n.Is(TokenSmallerThanSign):
			depth++
		case n.Is(TokenGreaterThanSign):
			depth--
		}
	}
	return u
}

// looksLikeFunctionParameterList checks whether the contents of the
// parenthesis chain token can be a parameter list: declarators built from
// identifiers, type keywords, pointer and reference marks, array suffixes,
// function pointer sub-declarators and, in C++, default values. Literals
// and operators outside template arguments and default values reject it.
// The declarators are recorded in info when it is not nil.
func looksLikeFunctionParameterList(paren *Token, cpp bool, info *paramInfo) bool {
	if !paren.Is(TokenParenthesisChain) {
		return false
	}
	first := paren.Chain.First().next
	if first == nil {
		return false
	}
	if first.Is(TokenClosingParenthesis) {
		return true
	}
	if first.IsKeyword(KeywordVoid) && first.next.Is(TokenClosingParenthesis) {
		return true
	}
	for t := first; t != nil && !t.Is(TokenClosingParenthesis); {
		prm, next, ok := scanParameter(t, cpp)
		if !ok {
			return false
		}
		if info != nil && prm.start != nil && len(info.params) < maxParameters {
			info.params = append(info.params, prm)
		}
		t = next
	}
	return true
}

// scanParameter reads one parameter declaration starting at start. It
// returns the declarator and the token after its separator.
func scanParameter(start *Token, cpp bool) (param, *Token, bool) {
	if start.Is(TokenMultipleDots) {
		return param{}, start.next, start.next == nil || start.next.Is(TokenClosingParenthesis)
	}
	if !start.Is(TokenIdentifier | TokenKeyword | TokenMultipleColons) {
		return param{}, nil, false
	}
	depth := 0
	var last *Token
	t := start
	for ; t != nil; t = t.next {
		if depth == 0 && t.Is(TokenComma|TokenClosingParenthesis|TokenAssignment) {
			break
		}
		switch {
		case t.Is(TokenIdentifier | TokenMultipleColons | TokenStar | TokenAnd | TokenMultipleAnds |
			TokenSquareParenthesisChain | TokenMultipleDots | TokenAngleBracketChain):
		case t.Is(TokenKeyword):
			if !mayBePartOfTypeName(t.Keyword) && !excludeFromTypeNames(t.Keyword) {
				return param{}, nil, false
			}
		case t.Is(TokenParenthesisChain):
			if !parameterParenthesisAllowed(start, t) {
				return param{}, nil, false
			}
		case cpp && t.Is(TokenSmallerThanSign):
			depth++
		case cpp && t.Is(TokenGreaterThanSign):
			depth--
			if depth < 0 {
				return param{}, nil, false
			}
		case depth > 0 && t.Is(TokenComma|TokenNumber|TokenOperator):
		default:
			return param{}, nil, false
		}
		last = t
	}
	prm := param{start: start, end: last, identifier: parameterIdentifier(start, last)}

	if t.Is(TokenAssignment) {
		if !cpp || t.next == nil || t.next.Is(TokenComma|TokenClosingParenthesis) {
			return param{}, nil, false
		}
		for t != nil && !t.Is(TokenComma|TokenClosingParenthesis) {
			t = t.next
		}
	}
	if t.Is(TokenComma) {
		t = t.next
		if t == nil || t.Is(TokenClosingParenthesis) {
			return param{}, nil, false
		}
	}
	return prm, t, true
}

// parameterParenthesisAllowed accepts the parentheses of function pointer
// declarators, function type parameters and decltype inside a parameter.
func parameterParenthesisAllowed(start, t *Token) bool {
	switch {
	case isPointerDeclarator(t):
		return true
	case t.prev.Is(TokenParenthesisChain):
		return true
	case t.prev.IsKeyword(KeywordDecltype):
		return true
	case t.prev.Is(TokenIdentifier) && t.prev != start:
		return true
	}
	return false
}

// isPointerDeclarator recognizes "(*name)", "(&name)" and "(C::*name)"
func isPointerDeclarator(t *Token) bool {
	if !t.Is(TokenParenthesisChain) {
		return false
	}
	second := t.Chain.First().next
	if second.Is(TokenStar | TokenAnd | TokenMultipleAnds) {
		return true
	}
	return second.Is(TokenIdentifier) && second.next.Is(TokenMultipleColons)
}

// parameterIdentifier finds the name declared by the tokens from start to
// last, or nil for an unnamed parameter.
func parameterIdentifier(start, last *Token) *Token {
	if last == nil {
		return nil
	}
	for t := start; t != nil; t = t.next {
		if isPointerDeclarator(t) {
			return t.Chain.LastOfType(TokenIdentifier)
		}
		if t == last {
			break
		}
	}
	t := last
	for t != start && t.Is(TokenSquareParenthesisChain) {
		t = t.prev
	}
	if t == start || !t.Is(TokenIdentifier) || t.prev.Is(TokenMultipleColons) {
		return nil
	}
	if k := t.prev; k.IsKeyword(KeywordStruct) || k.IsKeyword(KeywordClass) ||
		k.IsKeyword(KeywordUnion) || k.IsKeyword(KeywordEnum) || k.IsKeyword(KeywordTypename) {
		return nil
	}
	return t
}

// looksLikeCall decides whether a signature found in a statement is really
// a function call. A candidate without return type, scope qualifier or
// declaration keyword is a call unless it names a constructor or destructor
// of className.
func looksLikeCall(info *signatureInfo, className string, declKeywords bool) bool {
	if info.typeStart != nil || info.scopeStart != nil || declKeywords {
		return false
	}
	if info.identifierStart.IsKeyword(KeywordOperator) {
		return false
	}
	name := info.identifierStart.Text
	if className != "" && (name == className || name == "~"+className) {
		return false
	}
	return true
}

// declarationKeywords reports the keywords that make a statement a
// declaration even without a return type.
func (p *Parser) declarationKeywords() bool {
	const decl = seenInline | seenExplicit | seenVirtual | seenOperator | seenStatic | seenExtern | seenFriend
	return p.keywordState&decl != 0 || p.templateChain != nil
}

// declarationProperties maps the keyword state to record properties
func (p *Parser) declarationProperties() tag.Properties {
	var props tag.Properties
	for _, m := range []struct {
		seen keywordState
		prop tag.Properties
	}{
		{seenVirtual, tag.PropVirtual},
		{seenStatic, tag.PropStatic},
		{seenInline, tag.PropInline},
		{seenExplicit, tag.PropExplicit},
		{seenExtern, tag.PropExtern},
		{seenDeprecated, tag.PropDeprecated},
		{seenMutable, tag.PropMutable},
	} {
		if p.keywordState&m.seen != 0 {
			props |= m.prop
		}
	}
	return props
}

func (p *Parser) signatureProperties(info *signatureInfo) tag.Properties {
	props := p.declarationProperties()
	if info.trailingConst != nil {
		props |= tag.PropConst
	}
	for _, m := range []struct {
		flag signatureFlags
		prop tag.Properties
	}{
		{sigPure, tag.PropPure},
		{sigDefault, tag.PropDefault},
		{sigDelete, tag.PropDelete},
		{sigOverride, tag.PropOverride},
		{sigFinal, tag.PropFinal},
		{sigVolatile, tag.PropVolatile},
		{sigTemplateSpecialization, tag.PropSpecialization},
		{sigScopeTemplateSpecialization, tag.PropScopeSpecialization},
	} {
		if info.flags&m.flag != 0 {
			props |= m.prop
		}
	}
	if p.isTemplateSpecialization() {
		props |= tag.PropSpecialization
	}
	return props
}

// signatureTypeRef renders the return type of the signature
func signatureTypeRef(info *signatureInfo) tag.TypeRef {
	switch {
	case info.flags&sigTrailingReturn != 0:
		return typeRefOf(tokenRange(info.returnStart, info.returnEnd), nil)
	case info.flags&sigTypeContainsIdentifier != 0:
		skip := map[*Token]bool{info.identifierStart: true, info.paren: true}
		return typeRefOf(tokenRange(info.typeStart, info.typeEnd), skip)
	case info.typeStart != nil:
		return typeRefOf(tokenRange(info.typeStart, info.typeEnd), nil)
	}
	return tag.TypeRef{}
}

// typeRefOf builds the type reference of a declaration from its type
// tokens. Declaration specifiers such as static are left out and
// "struct X" style types keep their keyword as the reference kind.
func typeRefOf(toks []*Token, skip map[*Token]bool) tag.TypeRef {
	var kept []*Token
	for _, t := range toks {
		if skip[t] || (t.Is(TokenKeyword) && excludeFromTypeNames(t.Keyword)) {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return tag.TypeRef{}
	}
	if len(kept) == 2 && kept[1].Is(TokenIdentifier) {
		switch kept[0].Keyword {
		case KeywordStruct, KeywordClass, KeywordUnion, KeywordEnum:
			if kept[0].Is(TokenKeyword) {
				return tag.TypeRef{Kind: kept[0].Text, Name: kept[1].Text}
			}
		}
	}
	name := render(kept, skip)
	if name == "" {
		return tag.TypeRef{}
	}
	return tag.TypeRef{Kind: "typename", Name: name}
}

// fileScope decides whether a record of kind is visible only inside the
// input file. outer is the scope type the declaration appears in.
func (p *Parser) fileScope(kind tag.Kind, outer scopeType, static bool) bool {
	header := p.opts.Header
	switch kind {
	case tag.KindLocal, tag.KindParameter:
		return true
	case tag.KindMember, tag.KindExternVar, tag.KindNamespace:
		return false
	case tag.KindVariable:
		return static && !header
	case tag.KindFunction:
		if outer == scopeNamespace {
			return static && !header
		}
		return !header
	}
	if outer == scopeFunction {
		return true
	}
	return !header
}

// pushQualifierScopes pushes the names of an "A::B::" qualifier ending
// before id and returns how many scopes were pushed.
func (p *Parser) pushQualifierScopes(start, id *Token) int {
	n := 0
	for t := start; t != nil && t != id; t = t.next {
		if t.Is(TokenIdentifier) && t.next.Is(TokenMultipleColons|TokenSmallerThanSign|TokenAngleBracketChain) {
			p.scopes.push(t.Text, scopeClass, tag.AccessUnknown)
			n++
		}
		if t.Is(TokenSmallerThanSign) {
			if end := skipToEndOfTemplateAngleBracket(t); end != nil {
				t = end
			}
		}
	}
	return n
}

// emitFunctionTags reports the signature as a record of kind. The
// qualifier scopes stay pushed; the caller pops them. The identifier and
// qualifier tokens are removed from their chain.
func (p *Parser) emitFunctionTags(info *signatureInfo, kind tag.Kind) (name string, scopes, index int) {
	outer := p.scopes.typ()
	name = render(tokenRange(info.identifierStart, info.identifierEnd), nil)
	typeRef := signatureTypeRef(info)
	scopes = p.pushQualifierScopes(info.scopeStart, info.identifierStart)

	nameTok := &Token{
		Type:   TokenIdentifier,
		Text:   name,
		Line:   info.identifierStart.Line,
		Offset: info.identifierStart.Offset,
	}
	index = tag.Nil
	if rec := p.beginTag(kind, nameTok); rec != nil {
		rec.Signature = render([]*Token{info.paren}, nil)
		if info.trailingConst != nil {
			rec.Signature += " const"
		}
		rec.TypeRef = typeRef
		rec.Template = p.templateText()
		rec.Properties = p.signatureProperties(info)
		if kind == tag.KindPrototype {
			rec.FileScope = !p.opts.Header
		} else {
			rec.FileScope = p.fileScope(kind, outer, rec.Properties.Has(tag.PropStatic))
		}
		index = p.commitTag(rec)
	}

	from := info.identifierStart
	if info.scopeStart != nil {
		from = info.scopeStart
	}
	if owner := info.identifierStart.owner; owner != nil {
		owner.DestroyRange(from, info.identifierEnd)
	}
	return name, scopes, index
}

// emitParameterTags reports the named parameters in the current scope
func (p *Parser) emitParameterTags(info *paramInfo) {
	if info == nil {
		return
	}
	for _, prm := range info.params {
		if prm.identifier == nil {
			continue
		}
		rec := p.beginTag(tag.KindParameter, prm.identifier)
		if rec == nil {
			return
		}
		rec.TypeRef = typeRefOf(tokenRange(prm.start, prm.end), map[*Token]bool{prm.identifier: true})
		rec.FileScope = true
		p.commitTag(rec)
	}
}

// extractFunctionSignatureBeforeOpeningBracket examines the statement
// ending with the current '{'. When it is a function definition the
// function record is emitted and its scope pushed together with the
// qualifier scopes; the count of pushed scopes and the record index are
// returned.
func (p *Parser) extractFunctionSignatureBeforeOpeningBracket() (int, int) {
	p.chain.TakeLast()
	if p.chain.Len() == 0 {
		return 0, tag.Nil
	}
	var info signatureInfo
	params := &paramInfo{}
	if !p.lookForFunctionSignature(p.chain, &info, params) {
		return 0, tag.Nil
	}
	name, scopes, index := p.emitFunctionTags(&info, tag.KindFunction)
	p.scopes.push(name, scopeFunction, tag.AccessUnknown)
	p.emitParameterTags(params)
	return scopes + 1, index
}

// emitPrototypes reports the prototypes declared by the current
// statement, including "int a(int), b(char);" lists. It returns whether
// any was found.
func (p *Parser) emitPrototypes(requireType bool) bool {
	found := false
	for {
		var info signatureInfo
		params := &paramInfo{}
		if !p.lookForFunctionSignature(p.chain, &info, params) {
			return found
		}
		if looksLikeCall(&info, p.scopes.className(), p.declarationKeywords()) {
			return found
		}
		if requireType && info.typeStart == nil {
			return found
		}
		found = true
		typeEnd := info.typeEnd
		name, scopes, _ := p.emitFunctionTags(&info, tag.KindPrototype)
		p.scopes.push(name, scopePrototype, tag.AccessUnknown)
		p.emitParameterTags(params)
		p.scopes.pop()
		p.scopes.popN(scopes)

		if info.flags&sigTypeContainsIdentifier != 0 || info.topParen.owner != p.chain {
			return found
		}
		comma := nextOfType(info.topParen, TokenComma|TokenSemicolon)
		if !comma.Is(TokenComma) {
			return found
		}
		from := p.chain.First()
		if typeEnd != nil {
			from = typeEnd.next
		}
		p.chain.DestroyRange(from, comma)
	}
}
