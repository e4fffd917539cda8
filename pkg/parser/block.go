package parser

import "cxxtags/pkg/tag"

// parseBlock parses statements up to the '}' closing the current block, or
// up to the end of input when expectClosingBracket is false. The end of
// input inside a block is tolerated.
func (p *Parser) parseBlock(expectClosingBracket bool) bool {
	p.newStatement()
	ok := p.parseBlockInternal(expectClosingBracket)
	p.newStatement()
	return ok
}

func (p *Parser) parseBlockInternal(expectClosingBracket bool) bool {
	reprocess := false
	for {
		if !reprocess && !p.parseNextToken() {
			p.blockEndLine = 0
			return true
		}
		reprocess = false

		switch p.token.Type {
		case TokenEOF:
			p.blockEndLine = 0
			return true

		case TokenKeyword:
			next, ok := p.handleKeyword()
			if !ok {
				return false
			}
			switch next {
			case keywordReprocess:
				reprocess = true
			case keywordEOF:
				p.blockEndLine = 0
				return true
			}

		case TokenSemicolon:
			if p.isC() && p.scopes.isGlobal() && p.keywordState&(seenExtern|seenTypedef) == 0 {
				switch p.maybeParseKnRStyleFunctionDefinition() {
				case knrFunction:
				case knrNotKnR:
					p.analyzeOtherStatement()
				default:
					return false
				}
			} else {
				p.analyzeOtherStatement()
			}
			p.newStatement()

		case TokenSingleColon:
			// a label, or "signals:" style section markers
			if p.chain.Len() == 2 && p.chain.First().Is(TokenIdentifier) {
				p.newStatement()
			}

		case TokenOpeningBracket:
			if p.isCPlusPlus() {
				if params := p.openingBracketIsLambda(); params != nil {
					if !p.handleLambda(params) {
						return false
					}
					break
				}
			}
			if !p.handleOpeningBracket() {
				return false
			}

		case TokenClosingBracket:
			if !expectClosingBracket {
				// unbalanced: most likely a preprocessor branch we guessed wrong
				return false
			}
			p.blockEndLine = p.token.Line
			return true

		case TokenOpeningParenthesis, TokenOpeningSquareParenthesis:
			if !p.parseAndCondenseCurrentSubchain(subchainMarkers, true) {
				return false
			}

		case TokenClosingParenthesis, TokenClosingSquareParenthesis:
			return false
		}
	}
}

type keywordNext int

const (
	keywordContinue keywordNext = iota
	keywordReprocess
	keywordEOF
)

// handleKeyword dispatches on the keyword that is the current token. It
// tells the block loop whether to read on, to look at the current token
// again or to stop at the end of input.
func (p *Parser) handleKeyword() (keywordNext, bool) {
	switch p.token.Keyword {
	case KeywordNamespace:
		if p.scopes.typ() == scopeNamespace && p.chain.Len() <= 2 {
			return keywordContinue, p.parseNamespace()
		}
		if !p.skipToSemicolonOrEOF() {
			return keywordContinue, false
		}
		p.newStatement()

	case KeywordTemplate:
		return keywordContinue, p.parseTemplatePrefix()

	case KeywordTypedef:
		p.keywordState |= seenTypedef
		p.chain.TakeLast()
		p.token = p.chain.Last()

	case KeywordEnum:
		return keywordContinue, p.parseEnum()

	case KeywordClass:
		return keywordContinue, p.parseClassStructOrUnion(KeywordClass, tag.KindClass, scopeClass)

	case KeywordStruct:
		return keywordContinue, p.parseClassStructOrUnion(KeywordStruct, tag.KindStruct, scopeStruct)

	case KeywordUnion:
		return keywordContinue, p.parseClassStructOrUnion(KeywordUnion, tag.KindUnion, scopeUnion)

	case KeywordPublic, KeywordProtected, KeywordPrivate:
		return keywordContinue, p.parseAccessSpecifier()

	case KeywordUsing:
		return keywordContinue, p.parseUsingClause()

	case KeywordIf, KeywordFor, KeywordWhile, KeywordSwitch:
		return keywordContinue, p.parseIfForWhileSwitch()

	case KeywordElse, KeywordDo, KeywordTry:
		p.newStatement()

	case KeywordCatch:
		// the handler parameter is not a declaration worth reporting
		if !p.parseUpToOneOf(TokenParenthesisChain | TokenSemicolon | TokenOpeningBracket | TokenEOF) {
			return keywordContinue, false
		}
		if !p.token.Is(TokenParenthesisChain) {
			return keywordReprocess, true
		}
		p.newStatement()

	case KeywordReturn:
		p.keywordState |= seenReturn

	case KeywordCase:
		if !p.parseUpToOneOf(TokenSingleColon | TokenSemicolon | TokenEOF) {
			return keywordContinue, false
		}
		p.newStatement()

	case KeywordDefault:
		if p.chain.Len() == 1 {
			if !p.parseNextToken() {
				return keywordEOF, true
			}
			if p.token.Is(TokenSingleColon) {
				p.newStatement()
				return keywordContinue, true
			}
			return keywordReprocess, true
		}

	case KeywordBreak, KeywordContinue, KeywordGoto, KeywordStaticAssert, KeywordDelete, KeywordThrow:
		if p.chain.Len() == 1 {
			if !p.skipToSemicolonOrEOF() {
				return keywordContinue, false
			}
			p.newStatement()
		}

	case KeywordExtern:
		return p.handleExtern()

	case KeywordStatic:
		p.keywordState |= seenStatic
	case KeywordInline:
		p.keywordState |= seenInline
	case KeywordExplicit:
		p.keywordState |= seenExplicit
	case KeywordOperator:
		p.keywordState |= seenOperator
	case KeywordVirtual:
		p.keywordState |= seenVirtual
	case KeywordMutable:
		p.keywordState |= seenMutable
	case KeywordFriend:
		p.keywordState |= seenFriend
	case KeywordConst:
		p.keywordState |= seenConst
	case KeywordVolatile:
		p.keywordState |= seenVolatile
	}
	return keywordContinue, true
}

// handleExtern deals with "extern", "extern "C" decl" and the transparent
// "extern "C" { ... }" block.
func (p *Parser) handleExtern() (keywordNext, bool) {
	p.keywordState |= seenExtern
	p.chain.TakeLast()
	if !p.parseNextToken() {
		return keywordEOF, true
	}
	if !p.token.Is(TokenStringConstant) {
		return keywordReprocess, true
	}
	p.chain.TakeLast()
	if !p.parseNextToken() {
		return keywordEOF, true
	}
	if !p.token.Is(TokenOpeningBracket) {
		return keywordReprocess, true
	}
	p.chain.TakeLast()
	p.keywordState &^= seenExtern
	if !p.parseBlock(true) {
		return keywordContinue, false
	}
	return keywordContinue, true
}

// handleOpeningBracket decides what the current '{' opens: an initializer,
// a function body or a plain nested block.
func (p *Parser) handleOpeningBracket() bool {
	if p.openingBracketIsInitializer() {
		return p.parseAndCondenseCurrentSubchain(subchainMarkers, false)
	}

	scopes := 0
	index := tag.Nil
	if p.scopes.typ() != scopeFunction {
		scopes, index = p.extractFunctionSignatureBeforeOpeningBracket()
	}

	if !p.parseBlock(true) {
		p.scopes.popN(scopes)
		return false
	}
	p.markEnd(index)
	p.scopes.popN(scopes)
	return true
}

// openingBracketIsInitializer recognizes the braces of an initializer:
//
//	x = { ... }
//	T { ... }
//	T object { ... }
//	new T { ... }
//	Class::Class() : member { ... } {
func (p *Parser) openingBracketIsInitializer() bool {
	prev := p.token.prev
	if prev == nil {
		return false
	}
	if prev.Is(TokenAssignment) {
		return true
	}
	if !p.isCPlusPlus() || !prev.Is(TokenIdentifier) {
		return false
	}
	if isVirtSpecifier(prev) || endsFunctionHeader(prev) {
		return false
	}
	before := prev.prev
	switch {
	case before == nil:
		return p.scopes.typ() == scopeFunction
	case before.Is(TokenIdentifier | TokenStar | TokenAnd | TokenGreaterThanSign | TokenMultipleAnds):
		return true
	case before.Is(TokenKeyword):
		return mayBePartOfTypeName(before.Keyword) || before.IsKeyword(KeywordNew)
	case before.Is(TokenSingleColon | TokenComma):
		// member initializer list
		return prevOfType(before, TokenParenthesisChain) != nil
	}
	return false
}

// endsFunctionHeader reports whether the type-like run ending at last
// follows a parameter list or a trailing return arrow, as in
//
//	int size() const {
//	auto f() -> const Foo {
func endsFunctionHeader(last *Token) bool {
	t := last
	for t != nil && t.Is(TokenIdentifier|TokenKeyword|TokenMultipleColons|TokenStar|
		TokenAnd|TokenMultipleAnds|TokenSmallerThanSign|TokenGreaterThanSign|TokenAngleBracketChain) {
		t = t.prev
	}
	if t == nil {
		return false
	}
	if t.Is(TokenPointerOperator) {
		return true
	}
	if t.Is(TokenParenthesisChain) {
		// decltype(x) y { ... }
		return t.prev == nil || !t.prev.IsKeyword(KeywordDecltype)
	}
	return false
}
