package parser

// subchainMarkers are the delimiters condensed by parseUpToOneOf
const subchainMarkers = TokenOpeningBracket | TokenOpeningParenthesis | TokenOpeningSquareParenthesis

// parseAndCondenseCurrentSubchain condenses the pair opened by the current
// token into a single chain token that replaces it in the current chain.
// Nested pairs of openTypes are condensed recursively. With acceptEOF the
// end of input closes every open pair; otherwise it is a failure, as is a
// mismatched closing delimiter.
func (p *Parser) parseAndCondenseCurrentSubchain(openTypes TokenType, acceptEOF bool) bool {
	parent := p.chain
	open := parent.TakeLast()

	p.chain = NewChain()
	p.chain.Append(open)
	chainToken := newChainToken(open, p.chain)
	parent.Append(chainToken)

	stop := open.Type << 4
	if acceptEOF {
		stop |= TokenEOF
	}
	ok := p.parseAndCondenseSubchainsUpToOneOf(stop, openTypes)

	p.chain = parent
	p.token = parent.Last()
	if p.token != nil {
		if last := chainToken.Chain.Last(); last != nil {
			p.token.FollowedBySpace = last.FollowedBySpace
		}
	}
	return ok
}

// parseAndCondenseSubchainsUpToOneOf advances until a token of one of
// stopTypes is appended, condensing the pairs opened by openTypes on the
// way. A '{' that introduces a lambda body is handed to the lambda parser.
// It reports whether a stop token was reached; the end of input counts only
// when it is one of stopTypes.
func (p *Parser) parseAndCondenseSubchainsUpToOneOf(stopTypes, openTypes TokenType) bool {
	closeTypes := openTypes << 4
	if !p.parseNextToken() {
		return stopTypes&TokenEOF != 0
	}
	for {
		if p.token.Is(stopTypes) {
			return true
		}
		if p.token.Is(openTypes) {
			if p.token.Is(TokenOpeningBracket) && p.isCPlusPlus() {
				if params := p.openingBracketIsLambda(); params != nil {
					if !p.handleLambda(params) {
						return false
					}
					if p.token.Is(stopTypes) {
						return true
					}
					if !p.parseNextToken() {
						return stopTypes&TokenEOF != 0
					}
					continue
				}
			}
			if !p.parseAndCondenseCurrentSubchain(openTypes, stopTypes&TokenEOF != 0) {
				return false
			}
			if p.token.Is(stopTypes) {
				return true
			}
		} else if p.token.Is(closeTypes) {
			// a closing delimiter nobody opened
			return false
		}
		if !p.parseNextToken() {
			return stopTypes&TokenEOF != 0
		}
	}
}

// parseUpToOneOf advances to the next token of one of stopTypes,
// condensing bracket, parenthesis and square bracket pairs.
func (p *Parser) parseUpToOneOf(stopTypes TokenType) bool {
	return p.parseAndCondenseSubchainsUpToOneOf(stopTypes, subchainMarkers)
}

// skipToSemicolonOrEOF drops the rest of the statement
func (p *Parser) skipToSemicolonOrEOF() bool {
	return p.parseUpToOneOf(TokenSemicolon | TokenEOF)
}

// parseTemplateAngleBrackets condenses the "<...>" opened by the current
// token. Angle brackets nest; parentheses, brackets and square brackets are
// condensed so that comparisons inside them do not count. The end of input
// closes the list.
func (p *Parser) parseTemplateAngleBrackets() bool {
	return p.parseAndCondenseCurrentSubchain(subchainMarkers|TokenSmallerThanSign, true)
}
