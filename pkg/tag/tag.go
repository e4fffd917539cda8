// Package tag defines the symbol records produced by the C/C++ and Makefile
// recognizers, together with their kinds, roles, properties and access levels.
package tag

import (
	"sort"
	"strings"
)

// Position represents a position in the source file
type Position struct {
	Line   int
	Offset int // byte offset of the start of the line
}

// Kind represents the type of a symbol record
type Kind int

const (
	KindUnknown Kind = iota
	KindMacro
	KindHeader
	KindEnum
	KindEnumerator
	KindClass
	KindStruct
	KindUnion
	KindNamespace
	KindTypedef
	KindFunction
	KindPrototype
	KindVariable
	KindExternVar
	KindLocal
	KindParameter
	KindMember
	KindUsing
	KindAlias

	// Makefile kinds
	KindMakeMacro
	KindTarget
	KindMakefile

	// KindFile is the optional per-input file record
	KindFile
)

type kindInfo struct {
	name   string
	letter byte
	doc    string
}

var kinds = map[Kind]kindInfo{
	KindMacro:      {"macro", 'd', "macro definitions"},
	KindHeader:     {"header", 'h', "included header files"},
	KindEnum:       {"enum", 'g', "enumeration names"},
	KindEnumerator: {"enumerator", 'e', "enumerators (values inside an enumeration)"},
	KindClass:      {"class", 'c', "classes"},
	KindStruct:     {"struct", 's', "structure names"},
	KindUnion:      {"union", 'u', "union names"},
	KindNamespace:  {"namespace", 'n', "namespaces"},
	KindTypedef:    {"typedef", 't', "typedefs"},
	KindFunction:   {"function", 'f', "function definitions"},
	KindPrototype:  {"prototype", 'p', "function prototypes"},
	KindVariable:   {"variable", 'v', "variable definitions"},
	KindExternVar:  {"externvar", 'x', "external and forward variable declarations"},
	KindLocal:      {"local", 'l', "local variables"},
	KindParameter:  {"parameter", 'z', "function parameters inside function or prototype definitions"},
	KindMember:     {"member", 'm', "class, struct, and union members"},
	KindUsing:      {"using", 'N', "names imported via using scope::symbol"},
	KindAlias:      {"alias", 'A', "namespace aliases"},
	KindMakeMacro:  {"macro", 'm', "makefile macros"},
	KindTarget:     {"target", 't', "makefile targets"},
	KindMakefile:   {"makefile", 'I', "makefiles"},
	KindFile:       {"file", 'F', "input files"},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return "unknown"
}

// Letter returns the single-letter kind used by the ctags format.
func (k Kind) Letter() byte {
	if info, ok := kinds[k]; ok {
		return info.letter
	}
	return '?'
}

// Doc returns a short human-readable description of the kind.
func (k Kind) Doc() string {
	return kinds[k].doc
}

// IsMake reports whether the kind belongs to the Makefile recognizer.
func (k Kind) IsMake() bool {
	return k == KindMakeMacro || k == KindTarget || k == KindMakefile
}

// IsScope reports whether a record of this kind opens a named scope.
func (k Kind) IsScope() bool {
	switch k {
	case KindNamespace, KindClass, KindStruct, KindUnion, KindEnum, KindFunction, KindPrototype:
		return true
	}
	return false
}

// CKinds lists the kinds produced by the C/C++ recognizer in display order.
func CKinds() []Kind {
	return []Kind{
		KindMacro, KindHeader, KindEnum, KindEnumerator, KindClass, KindStruct,
		KindUnion, KindNamespace, KindTypedef, KindFunction, KindPrototype,
		KindVariable, KindExternVar, KindLocal, KindParameter, KindMember,
		KindUsing, KindAlias,
	}
}

// MakeKinds lists the kinds produced by the Makefile recognizer.
func MakeKinds() []Kind {
	return []Kind{KindMakeMacro, KindTarget, KindMakefile}
}

// ParseKind resolves a kind by its long name or its letter. C/C++ kinds win
// over Makefile kinds sharing a name.
func ParseKind(s string) (Kind, bool) {
	all := append(CKinds(), MakeKinds()...)
	all = append(all, KindFile)
	for _, k := range all {
		if k.String() == s {
			return k, true
		}
	}
	if len(s) == 1 {
		for _, k := range all {
			if k.Letter() == s[0] {
				return k, true
			}
		}
	}
	return KindUnknown, false
}

// Role distinguishes definitions from the various reference roles
type Role int

const (
	RoleDefinition Role = iota
	RoleUndef           // #undef NAME
	RoleSystem          // #include <x>
	RoleLocal           // #include "x"
	RoleIncluded        // make: include x
	RoleOptional        // make: -include x
)

func (r Role) String() string {
	switch r {
	case RoleUndef:
		return "undef"
	case RoleSystem:
		return "system"
	case RoleLocal:
		return "local"
	case RoleIncluded:
		return "included"
	case RoleOptional:
		return "optional"
	default:
		return "def"
	}
}

// AccessLevel represents C++ access levels
type AccessLevel int

const (
	AccessUnknown AccessLevel = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (al AccessLevel) String() string {
	switch al {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// Properties is a bitset of declaration properties
type Properties uint32

const (
	PropVirtual Properties = 1 << iota
	PropStatic
	PropInline
	PropExplicit
	PropExtern
	PropDeprecated
	PropConst
	PropPure
	PropOverride
	PropFinal
	PropDefault
	PropDelete
	PropVolatile
	PropScopeSpecialization
	PropSpecialization
	PropMutable
	PropScopedEnum
)

var propertyNames = []struct {
	p    Properties
	name string
}{
	{PropVirtual, "virtual"},
	{PropStatic, "static"},
	{PropInline, "inline"},
	{PropExplicit, "explicit"},
	{PropExtern, "extern"},
	{PropDeprecated, "deprecated"},
	{PropConst, "const"},
	{PropPure, "pure"},
	{PropOverride, "override"},
	{PropFinal, "final"},
	{PropDefault, "default"},
	{PropDelete, "delete"},
	{PropVolatile, "volatile"},
	{PropScopeSpecialization, "scopespecialization"},
	{PropSpecialization, "specialization"},
	{PropMutable, "mutable"},
	{PropScopedEnum, "scopedenum"},
}

// Has reports whether all bits of q are set.
func (p Properties) Has(q Properties) bool {
	return p&q == q
}

// String renders the set as a comma separated list in a fixed order.
func (p Properties) String() string {
	var names []string
	for _, pn := range propertyNames {
		if p&pn.p != 0 {
			names = append(names, pn.name)
		}
	}
	return strings.Join(names, ",")
}

// TypeRef is a kind:name pair naming the type of a declaration
type TypeRef struct {
	Kind string // "typename", "struct", "namespace", ...
	Name string
}

func (r TypeRef) String() string {
	if r.Name == "" {
		return ""
	}
	return r.Kind + ":" + r.Name
}

// Tag is one reported declaration
type Tag struct {
	Name        string
	Kind        Kind
	Role        Role
	Position    Position
	End         int // line of the closing delimiter, 0 when unknown
	FileScope   bool
	Scope       string // fully qualified enclosing scope, "::"-joined
	ScopeKind   Kind
	Access      AccessLevel
	Signature   string
	TypeRef     TypeRef
	Inheritance string
	Template    string
	Properties  Properties

	// Path of the input file; filled in by the caller that owns the queue.
	Path string
}

// IsReference reports whether the record carries a reference role.
func (t *Tag) IsReference() bool {
	return t.Role != RoleDefinition
}

// QualifiedName returns Scope::Name, or Name at global scope.
func (t *Tag) QualifiedName() string {
	if t.Scope == "" {
		return t.Name
	}
	return t.Scope + "::" + t.Name
}

// SortByName orders tags by name, then path, then line, keeping the
// relative order of otherwise equal records.
func SortByName(tags []*Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		a, b := tags[i], tags[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Position.Line < b.Position.Line
	})
}
