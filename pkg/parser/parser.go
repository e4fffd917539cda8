// Package parser implements the token level recognizer of C and C++ source.
// It pulls characters from the cpp preprocessor, builds a token chain per
// statement with nested bracket chains, and reports declarations to a
// tag.Sink.
package parser

import (
	"fmt"

	"cxxtags/pkg/cpp"
	"cxxtags/pkg/source"
	"cxxtags/pkg/tag"
)

// maxPasses bounds the rescans of one input
const maxPasses = 2

// Language selects the dialect being recognized
type Language int

const (
	LanguageC Language = iota
	LanguageCPlusPlus
)

func (l Language) String() string {
	if l == LanguageCPlusPlus {
		return "C++"
	}
	return "C"
}

// Options configures the recognizer for one input
type Options struct {
	Language         Language
	Header           bool // input is a header file
	Macros           *cpp.MacroTable
	ExamineIf0       bool // scan code inside #if 0 on the first pass
	ExpandFileMacros bool // expand macros #defined by the input itself
}

// Stats counts the scope operations of the last pass
type Stats struct {
	Pushes int
	Pops   int
}

// Result describes how an input was recognized
type Result struct {
	Passes    int
	Rescanned bool // the first pass failed and a relaxed pass ran
	Failed    bool // the last pass failed; its records are kept anyway
	Stats     Stats
}

// keywordState records the declaration keywords seen in the current statement
type keywordState uint32

const (
	seenTypedef keywordState = 1 << iota
	seenInline
	seenExtern
	seenStatic
	seenExplicit
	seenOperator
	seenVirtual
	seenReturn
	seenMutable
	seenConst
	seenVolatile
	seenDeprecated
	seenFriend
)

// Parser holds the state of one pass over one input
type Parser struct {
	cpp  *cpp.Preprocessor
	sink tag.Sink
	opts Options
	pass int

	char          int    // lookahead character
	chain         *Chain // current statement or subchain
	token         *Token // last token appended to chain
	ungot         *Token
	keywordState  keywordState
	templateChain *Chain // template<...> prefix of the statement
	scopes        scopeStack
	inStatement   bool
	macroDepth    int
	blockEndLine  int  // line of the '}' closing the last block, 0 at EOF
	accessEnabled bool // public/protected/private are keywords
	anonCount     int
	knrNames      map[string]bool // parameter names of a K&R definition
}

// Parse recognizes src and reports its declarations to sink. When the first
// pass fails on a structural error and sink implements tag.Rewinder, the
// records of that pass are dropped and the input is scanned again in relaxed
// mode. Parse never fails: problems only reduce the records found.
func Parse(src *source.Source, sink tag.Sink, opts Options) Result {
	var res Result
	rw, canRewind := sink.(tag.Rewinder)
	mark := 0
	if canRewind {
		mark = rw.Len()
	}

	for pass := 1; pass <= maxPasses; pass++ {
		if pass > 1 {
			if !canRewind {
				break
			}
			src.Rewind()
			rw.Truncate(mark)
			res.Rescanned = true
		}
		p := newParser(src, sink, opts, pass)
		ok := p.run()
		res.Passes = pass
		res.Stats = Stats{Pushes: p.scopes.pushes, Pops: p.scopes.pops}
		res.Failed = !ok
		if ok {
			break
		}
	}
	return res
}

func newParser(src *source.Source, sink tag.Sink, opts Options, pass int) *Parser {
	cppOpts := cpp.Options{
		IsHeader:         opts.Header,
		CPlusPlus:        opts.Language == LanguageCPlusPlus,
		ExamineIf0:       opts.ExamineIf0 || pass > 1,
		Relaxed:          pass > 1,
		Macros:           opts.Macros,
		ExpandFileMacros: opts.ExpandFileMacros,
	}
	return &Parser{
		cpp:           cpp.New(src, sink, cppOpts),
		sink:          sink,
		opts:          opts,
		pass:          pass,
		char:          ' ',
		chain:         NewChain(),
		accessEnabled: opts.Language == LanguageCPlusPlus && !opts.Header,
	}
}

// run parses the whole input as a block without a closing bracket.
func (p *Parser) run() bool {
	p.scopes.reset()
	p.newStatement()
	ok := p.parseBlock(false)
	for !p.scopes.isGlobal() {
		p.scopes.pop()
	}
	return ok
}

func (p *Parser) isCPlusPlus() bool {
	return p.opts.Language == LanguageCPlusPlus
}

func (p *Parser) isC() bool {
	return p.opts.Language == LanguageC
}

// newStatement clears the statement state
func (p *Parser) newStatement() {
	p.chain.Clear()
	p.token = nil
	p.templateChain = nil
	p.keywordState = 0
	p.inStatement = false
	p.cpp.EndStatement()
}

// statement is a saved statement state, restored after a nested parse
type statement struct {
	chain         *Chain
	token         *Token
	keywordState  keywordState
	templateChain *Chain
	inStatement   bool
}

func (p *Parser) saveStatement() statement {
	s := statement{
		chain:         p.chain,
		token:         p.token,
		keywordState:  p.keywordState,
		templateChain: p.templateChain,
		inStatement:   p.inStatement,
	}
	p.chain = NewChain()
	p.token = nil
	p.templateChain = nil
	p.keywordState = 0
	return s
}

func (p *Parser) restoreStatement(s statement) {
	p.chain = s.chain
	p.token = s.token
	p.keywordState = s.keywordState
	p.templateChain = s.templateChain
	p.inStatement = s.inStatement
	if p.inStatement {
		p.cpp.BeginStatement()
	}
}

// anonymousToken creates the identifier naming an unnamed construct
func (p *Parser) anonymousToken(at *Token) *Token {
	p.anonCount++
	t := &Token{
		Type: TokenIdentifier,
		Text: fmt.Sprintf("__anon%d", p.anonCount),
	}
	if at != nil {
		t.Line = at.Line
		t.Offset = at.Offset
	}
	return t
}

// beginTag starts a record named by t in the current scope
func (p *Parser) beginTag(kind tag.Kind, t *Token) *tag.Tag {
	if p.sink == nil || t == nil {
		return nil
	}
	rec := p.sink.Begin(kind, t.Text, tag.Position{Line: t.Line, Offset: t.Offset})
	if rec == nil {
		return nil
	}
	if !p.scopes.isGlobal() {
		rec.Scope = p.scopes.fullName()
		rec.ScopeKind = p.scopes.kind()
		if p.scopes.isClassLike() {
			rec.Access = p.scopes.access()
		}
	}
	return rec
}

func (p *Parser) commitTag(rec *tag.Tag) int {
	if rec == nil {
		return tag.Nil
	}
	return p.sink.Commit(rec)
}

// markEnd records the line of the last closed block as the end of the
// record at index. Blocks cut short by the end of input leave it unset.
func (p *Parser) markEnd(index int) {
	if index == tag.Nil || p.blockEndLine == 0 {
		return
	}
	if rec := p.sink.Lookup(index); rec != nil {
		rec.End = p.blockEndLine
	}
}

// templateText returns the template<...> prefix of the statement
func (p *Parser) templateText() string {
	if p.templateChain == nil || p.templateChain.Len() == 0 {
		return ""
	}
	return render(p.templateChain.slice(), nil)
}

// isTemplateSpecialization reports a "template<>" prefix
func (p *Parser) isTemplateSpecialization() bool {
	if p.templateChain == nil {
		return false
	}
	t := p.templateChain.First()
	return t.Is(TokenAngleBracketChain) && t.Chain.Len() == 2
}
