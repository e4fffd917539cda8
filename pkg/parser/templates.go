package parser

// parseTemplatePrefix reads the "<...>" following the template keyword and
// keeps it aside as the template prefix of the statement. Explicit
// instantiations, which have no angle brackets, are skipped.
func (p *Parser) parseTemplatePrefix() bool {
	tmpl := p.token
	if !p.parseNextToken() {
		return true
	}
	if !p.token.Is(TokenSmallerThanSign) {
		if p.token.Is(TokenSemicolon) {
			p.newStatement()
			return true
		}
		if !p.skipToSemicolonOrEOF() {
			return false
		}
		p.newStatement()
		return true
	}
	if !p.parseTemplateAngleBrackets() {
		return false
	}

	p.templateChain = NewChain()
	p.templateChain.Append(p.token)
	p.chain.Take(tmpl)
	p.token = p.chain.Last()
	return true
}
