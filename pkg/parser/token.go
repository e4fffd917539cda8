package parser

import (
	"fmt"
	"strings"
)

// TokenType is a bit flag so that a set of types can be tested at once.
//
// The opening delimiters occupy bits 20-23. The matching closing delimiter
// of an opening type is always open<<4 and the chain type built for the
// pair is open<<8.
type TokenType uint32

const (
	TokenEOF               TokenType = 1 << iota
	TokenIdentifier                  // foo
	TokenKeyword                     // int, class, ...
	TokenNumber                      // 42
	TokenSingleColon                 // :
	TokenMultipleColons              // ::
	TokenComma                       // ,
	TokenSemicolon                   // ;
	TokenAssignment                  // =
	TokenOperator                    // + - ! == ...
	TokenDotOperator                 // .
	TokenPointerOperator             // ->
	TokenStar                        // *
	TokenAnd                         // &
	TokenMultipleAnds                // &&
	TokenMultipleDots                // ...
	TokenStringConstant              // folded "..."
	TokenCharacterConstant           // folded '.'
	TokenUnknown
)

const (
	TokenOpeningBracket           TokenType = 1 << (20 + iota) // {
	TokenOpeningParenthesis                                    // (
	TokenOpeningSquareParenthesis                              // [
	TokenSmallerThanSign                                       // <
)

const (
	TokenClosingBracket           = TokenOpeningBracket << 4           // }
	TokenClosingParenthesis       = TokenOpeningParenthesis << 4       // )
	TokenClosingSquareParenthesis = TokenOpeningSquareParenthesis << 4 // ]
	TokenGreaterThanSign          = TokenSmallerThanSign << 4          // >

	TokenBracketChain           = TokenOpeningBracket << 8           // {...}
	TokenParenthesisChain       = TokenOpeningParenthesis << 8       // (...)
	TokenSquareParenthesisChain = TokenOpeningSquareParenthesis << 8 // [...]
	TokenAngleBracketChain      = TokenSmallerThanSign << 8          // <...>
)

// tokenTypeNames maps token types to their names for debugging
var tokenTypeNames = map[TokenType]string{
	TokenEOF:                      "EOF",
	TokenIdentifier:               "IDENTIFIER",
	TokenKeyword:                  "KEYWORD",
	TokenNumber:                   "NUMBER",
	TokenSingleColon:              "COLON",
	TokenMultipleColons:           "DOUBLE_COLON",
	TokenComma:                    "COMMA",
	TokenSemicolon:                "SEMICOLON",
	TokenAssignment:               "ASSIGNMENT",
	TokenOperator:                 "OPERATOR",
	TokenDotOperator:              "DOT",
	TokenPointerOperator:          "ARROW",
	TokenStar:                     "STAR",
	TokenAnd:                      "AND",
	TokenMultipleAnds:             "DOUBLE_AND",
	TokenMultipleDots:             "ELLIPSIS",
	TokenStringConstant:           "STRING",
	TokenCharacterConstant:        "CHAR",
	TokenUnknown:                  "UNKNOWN",
	TokenOpeningBracket:           "LEFT_BRACE",
	TokenOpeningParenthesis:       "LEFT_PAREN",
	TokenOpeningSquareParenthesis: "LEFT_BRACKET",
	TokenSmallerThanSign:          "LESS",
	TokenClosingBracket:           "RIGHT_BRACE",
	TokenClosingParenthesis:       "RIGHT_PAREN",
	TokenClosingSquareParenthesis: "RIGHT_BRACKET",
	TokenGreaterThanSign:          "GREATER",
	TokenBracketChain:             "BRACE_CHAIN",
	TokenParenthesisChain:         "PAREN_CHAIN",
	TokenSquareParenthesisChain:   "BRACKET_CHAIN",
	TokenAngleBracketChain:        "ANGLE_CHAIN",
}

func (tt TokenType) String() string {
	if name, ok := tokenTypeNames[tt]; ok {
		return name
	}
	var names []string
	for bit := TokenType(1); bit != 0; bit <<= 1 {
		if tt&bit != 0 {
			names = append(names, tokenTypeNames[bit])
		}
	}
	return strings.Join(names, "|")
}

// Token is one unit of the statement being analyzed. Chain tokens own the
// nested sequence of everything between (and including) their delimiters.
type Token struct {
	Type            TokenType
	Keyword         Keyword
	Text            string
	Line            int
	Offset          int // offset of the start of the line
	FollowedBySpace bool
	Chain           *Chain

	prev, next *Token
	owner      *Chain
}

// Is reports whether the token is one of types. A nil token is never.
func (t *Token) Is(types TokenType) bool {
	return t != nil && t.Type&types != 0
}

// IsKeyword reports whether the token is the keyword k.
func (t *Token) IsKeyword(k Keyword) bool {
	return t != nil && t.Type == TokenKeyword && t.Keyword == k
}

// Next returns the following token in the owning chain
func (t *Token) Next() *Token {
	return t.next
}

// Prev returns the preceding token in the owning chain
func (t *Token) Prev() *Token {
	return t.prev
}

// String returns a string representation of the token
func (t *Token) String() string {
	if t.Chain != nil {
		return fmt.Sprintf("%s:%s", t.Type, render(t.Chain.slice(), nil))
	}
	return fmt.Sprintf("%s:%s", t.Type, t.Text)
}

// newChainToken creates the token standing for a condensed pair. open is the
// opening delimiter, already moved into chain.
func newChainToken(open *Token, chain *Chain) *Token {
	return &Token{
		Type:   open.Type << 8,
		Line:   open.Line,
		Offset: open.Offset,
		Chain:  chain,
	}
}

// Keyword identifies a reserved word of C or C++
type Keyword int

const (
	KeywordNone Keyword = iota
	KeywordAlignas
	KeywordAlignof
	KeywordAsm
	KeywordAttribute // __attribute__
	KeywordAuto
	KeywordBool
	KeywordBreak
	KeywordCase
	KeywordCatch
	KeywordChar
	KeywordChar8
	KeywordChar16
	KeywordChar32
	KeywordClass
	KeywordComplex
	KeywordConcept
	KeywordConst
	KeywordConstCast
	KeywordConsteval
	KeywordConstexpr
	KeywordConstinit
	KeywordContinue
	KeywordCoAwait
	KeywordCoReturn
	KeywordCoYield
	KeywordDecltype
	KeywordDeclspec // __declspec
	KeywordDefault
	KeywordDelete
	KeywordDo
	KeywordDouble
	KeywordDynamicCast
	KeywordElse
	KeywordEnum
	KeywordExplicit
	KeywordExport
	KeywordExtern
	KeywordFalse
	KeywordFloat
	KeywordFor
	KeywordFriend
	KeywordGoto
	KeywordIf
	KeywordInline
	KeywordInt
	KeywordLong
	KeywordMutable
	KeywordNamespace
	KeywordNew
	KeywordNoexcept
	KeywordNoreturn
	KeywordNullptr
	KeywordOperator
	KeywordPrivate
	KeywordProtected
	KeywordPublic
	KeywordRegister
	KeywordReinterpretCast
	KeywordRequires
	KeywordRestrict
	KeywordReturn
	KeywordShort
	KeywordSigned
	KeywordSizeof
	KeywordStatic
	KeywordStaticAssert
	KeywordStaticCast
	KeywordStruct
	KeywordSwitch
	KeywordTemplate
	KeywordThis
	KeywordThreadLocal
	KeywordThrow
	KeywordTrue
	KeywordTry
	KeywordTypedef
	KeywordTypeid
	KeywordTypename
	KeywordUnion
	KeywordUnsigned
	KeywordUsing
	KeywordVirtual
	KeywordVoid
	KeywordVolatile
	KeywordWcharT
	KeywordWhile
)

type keywordFlags uint8

const (
	kwTypeName     keywordFlags = 1 << iota // may be part of a type name
	kwExcludeType                           // a declaration prefix, never part of the type
	kwConstant                              // true, false, nullptr, this
	kwCPlusPlus                             // reserved in C++ only
	kwAccess                                // public, protected, private
	kwSkipArgument                          // followed by a parenthesized argument that is dropped
)

type keywordInfo struct {
	keyword Keyword
	flags   keywordFlags
}

// keywords maps reserved words, including common compiler spellings, to
// their keyword.
var keywords = map[string]keywordInfo{
	"__attribute__":    {KeywordAttribute, kwSkipArgument},
	"__attribute":      {KeywordAttribute, kwSkipArgument},
	"__declspec":       {KeywordDeclspec, kwSkipArgument},
	"__asm__":          {KeywordAsm, kwSkipArgument},
	"__asm":            {KeywordAsm, kwSkipArgument},
	"asm":              {KeywordAsm, kwSkipArgument | kwCPlusPlus},
	"alignas":          {KeywordAlignas, kwSkipArgument},
	"_Alignas":         {KeywordAlignas, kwSkipArgument},
	"alignof":          {KeywordAlignof, kwCPlusPlus},
	"_Alignof":         {KeywordAlignof, 0},
	"auto":             {KeywordAuto, kwTypeName},
	"bool":             {KeywordBool, kwTypeName | kwCPlusPlus},
	"_Bool":            {KeywordBool, kwTypeName},
	"break":            {KeywordBreak, 0},
	"case":             {KeywordCase, 0},
	"catch":            {KeywordCatch, kwCPlusPlus},
	"char":             {KeywordChar, kwTypeName},
	"char8_t":          {KeywordChar8, kwTypeName | kwCPlusPlus},
	"char16_t":         {KeywordChar16, kwTypeName | kwCPlusPlus},
	"char32_t":         {KeywordChar32, kwTypeName | kwCPlusPlus},
	"class":            {KeywordClass, kwTypeName | kwCPlusPlus},
	"_Complex":         {KeywordComplex, kwTypeName},
	"concept":          {KeywordConcept, kwCPlusPlus},
	"const":            {KeywordConst, kwTypeName},
	"__const":          {KeywordConst, kwTypeName},
	"const_cast":       {KeywordConstCast, kwCPlusPlus},
	"consteval":        {KeywordConsteval, kwExcludeType | kwCPlusPlus},
	"constexpr":        {KeywordConstexpr, kwExcludeType | kwCPlusPlus},
	"constinit":        {KeywordConstinit, kwExcludeType | kwCPlusPlus},
	"continue":         {KeywordContinue, 0},
	"co_await":         {KeywordCoAwait, kwCPlusPlus},
	"co_return":        {KeywordCoReturn, kwCPlusPlus},
	"co_yield":         {KeywordCoYield, kwCPlusPlus},
	"decltype":         {KeywordDecltype, kwTypeName | kwCPlusPlus},
	"default":          {KeywordDefault, 0},
	"delete":           {KeywordDelete, kwCPlusPlus},
	"do":               {KeywordDo, 0},
	"double":           {KeywordDouble, kwTypeName},
	"dynamic_cast":     {KeywordDynamicCast, kwCPlusPlus},
	"else":             {KeywordElse, 0},
	"enum":             {KeywordEnum, kwTypeName},
	"explicit":         {KeywordExplicit, kwExcludeType | kwCPlusPlus},
	"export":           {KeywordExport, kwExcludeType | kwCPlusPlus},
	"extern":           {KeywordExtern, kwExcludeType},
	"false":            {KeywordFalse, kwConstant | kwCPlusPlus},
	"float":            {KeywordFloat, kwTypeName},
	"for":              {KeywordFor, 0},
	"friend":           {KeywordFriend, kwExcludeType | kwCPlusPlus},
	"goto":             {KeywordGoto, 0},
	"if":               {KeywordIf, 0},
	"inline":           {KeywordInline, kwExcludeType},
	"__inline":         {KeywordInline, kwExcludeType},
	"__inline__":       {KeywordInline, kwExcludeType},
	"__forceinline":    {KeywordInline, kwExcludeType},
	"int":              {KeywordInt, kwTypeName},
	"long":             {KeywordLong, kwTypeName},
	"mutable":          {KeywordMutable, kwExcludeType | kwCPlusPlus},
	"namespace":        {KeywordNamespace, kwCPlusPlus},
	"new":              {KeywordNew, kwCPlusPlus},
	"noexcept":         {KeywordNoexcept, kwCPlusPlus},
	"_Noreturn":        {KeywordNoreturn, kwExcludeType},
	"nullptr":          {KeywordNullptr, kwConstant | kwCPlusPlus},
	"operator":         {KeywordOperator, kwCPlusPlus},
	"private":          {KeywordPrivate, kwAccess | kwCPlusPlus},
	"protected":        {KeywordProtected, kwAccess | kwCPlusPlus},
	"public":           {KeywordPublic, kwAccess | kwCPlusPlus},
	"register":         {KeywordRegister, kwExcludeType},
	"reinterpret_cast": {KeywordReinterpretCast, kwCPlusPlus},
	"requires":         {KeywordRequires, kwCPlusPlus},
	"restrict":         {KeywordRestrict, kwTypeName},
	"__restrict":       {KeywordRestrict, kwTypeName},
	"__restrict__":     {KeywordRestrict, kwTypeName},
	"return":           {KeywordReturn, 0},
	"short":            {KeywordShort, kwTypeName},
	"signed":           {KeywordSigned, kwTypeName},
	"__signed__":       {KeywordSigned, kwTypeName},
	"sizeof":           {KeywordSizeof, 0},
	"static":           {KeywordStatic, kwExcludeType},
	"static_assert":    {KeywordStaticAssert, kwCPlusPlus},
	"_Static_assert":   {KeywordStaticAssert, 0},
	"static_cast":      {KeywordStaticCast, kwCPlusPlus},
	"struct":           {KeywordStruct, kwTypeName},
	"switch":           {KeywordSwitch, 0},
	"template":         {KeywordTemplate, kwCPlusPlus},
	"this":             {KeywordThis, kwConstant | kwCPlusPlus},
	"thread_local":     {KeywordThreadLocal, kwExcludeType | kwCPlusPlus},
	"_Thread_local":    {KeywordThreadLocal, kwExcludeType},
	"__thread":         {KeywordThreadLocal, kwExcludeType},
	"throw":            {KeywordThrow, kwCPlusPlus},
	"true":             {KeywordTrue, kwConstant | kwCPlusPlus},
	"try":              {KeywordTry, kwCPlusPlus},
	"typedef":          {KeywordTypedef, kwExcludeType},
	"typeid":           {KeywordTypeid, kwCPlusPlus},
	"typename":         {KeywordTypename, kwTypeName | kwCPlusPlus},
	"union":            {KeywordUnion, kwTypeName},
	"unsigned":         {KeywordUnsigned, kwTypeName},
	"using":            {KeywordUsing, kwCPlusPlus},
	"virtual":          {KeywordVirtual, kwExcludeType | kwCPlusPlus},
	"void":             {KeywordVoid, kwTypeName},
	"volatile":         {KeywordVolatile, kwTypeName},
	"__volatile__":     {KeywordVolatile, kwTypeName},
	"wchar_t":          {KeywordWcharT, kwTypeName | kwCPlusPlus},
	"while":            {KeywordWhile, 0},
}

// keywordFlagsOf returns the flags of the first spelling of k.
var keywordFlagsOf = func() map[Keyword]keywordFlags {
	m := make(map[Keyword]keywordFlags, len(keywords))
	for _, info := range keywords {
		m[info.keyword] |= info.flags &^ kwCPlusPlus
	}
	return m
}()

// mayBePartOfTypeName reports whether k can appear inside a type name
func mayBePartOfTypeName(k Keyword) bool {
	return keywordFlagsOf[k]&kwTypeName != 0
}

// excludeFromTypeNames reports whether k is a declaration prefix such as
// static or inline that is never reported as part of a type.
func excludeFromTypeNames(k Keyword) bool {
	return keywordFlagsOf[k]&kwExcludeType != 0
}

func isConstantKeyword(k Keyword) bool {
	return keywordFlagsOf[k]&kwConstant != 0
}

// alternativeOperators are the C++ spellings of logical and bitwise operators
var alternativeOperators = map[string]string{
	"and":    "&&",
	"and_eq": "&=",
	"bitand": "&",
	"bitor":  "|",
	"compl":  "~",
	"not":    "!",
	"not_eq": "!=",
	"or":     "||",
	"or_eq":  "|=",
	"xor":    "^",
	"xor_eq": "^=",
}
