package parser

import "cxxtags/pkg/tag"

// parseAccessSpecifier handles "public:", "protected:" and "private:".
// Outside a class, struct or union the keyword cannot be right and the
// enclosing construct fails.
func (p *Parser) parseAccessSpecifier() bool {
	if !p.scopes.isClassLike() {
		return false
	}

	var access tag.AccessLevel
	switch p.token.Keyword {
	case KeywordPublic:
		access = tag.AccessPublic
	case KeywordProtected:
		access = tag.AccessProtected
	default:
		access = tag.AccessPrivate
	}
	p.scopes.setAccess(access)

	if !p.parseUpToOneOf(TokenSingleColon | TokenSemicolon | TokenClosingBracket | TokenEOF) {
		return false
	}
	if p.token.Is(TokenClosingBracket | TokenEOF) {
		// let the block loop see it
		p.ungetCurrentToken()
	}
	p.newStatement()
	return true
}
