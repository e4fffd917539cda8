package parser

import (
	"strings"

	"cxxtags/pkg/tag"
)

// scopeType is the kind of a named scope. The global scope behaves as a
// namespace.
type scopeType int

const (
	scopeNamespace scopeType = iota
	scopeClass
	scopeStruct
	scopeUnion
	scopeEnum
	scopeFunction
	scopePrototype
)

var scopeKinds = map[scopeType]tag.Kind{
	scopeNamespace: tag.KindNamespace,
	scopeClass:     tag.KindClass,
	scopeStruct:    tag.KindStruct,
	scopeUnion:     tag.KindUnion,
	scopeEnum:      tag.KindEnum,
	scopeFunction:  tag.KindFunction,
	scopePrototype: tag.KindPrototype,
}

type scope struct {
	name   string
	typ    scopeType
	access tag.AccessLevel
}

// scopeStack tracks the named scopes enclosing the current statement. It
// counts pushes and pops so that callers can verify they balance.
type scopeStack struct {
	entries []scope
	pushes  int
	pops    int
}

func (s *scopeStack) push(name string, typ scopeType, access tag.AccessLevel) {
	s.entries = append(s.entries, scope{name: name, typ: typ, access: access})
	s.pushes++
}

func (s *scopeStack) pop() {
	if len(s.entries) == 0 {
		return
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.pops++
}

// popN pops n scopes
func (s *scopeStack) popN(n int) {
	for ; n > 0; n-- {
		s.pop()
	}
}

func (s *scopeStack) isGlobal() bool {
	return len(s.entries) == 0
}

func (s *scopeStack) depth() int {
	return len(s.entries)
}

func (s *scopeStack) current() *scope {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// typ returns the type of the innermost scope
func (s *scopeStack) typ() scopeType {
	if c := s.current(); c != nil {
		return c.typ
	}
	return scopeNamespace
}

// kind returns the record kind of the innermost scope, KindUnknown at
// global scope.
func (s *scopeStack) kind() tag.Kind {
	if s.isGlobal() {
		return tag.KindUnknown
	}
	return scopeKinds[s.typ()]
}

func (s *scopeStack) access() tag.AccessLevel {
	if c := s.current(); c != nil {
		return c.access
	}
	return tag.AccessUnknown
}

func (s *scopeStack) setAccess(a tag.AccessLevel) {
	if c := s.current(); c != nil {
		c.access = a
	}
}

// isClassLike reports whether the innermost scope is a class, struct or union
func (s *scopeStack) isClassLike() bool {
	switch s.typ() {
	case scopeClass, scopeStruct, scopeUnion:
		return !s.isGlobal()
	}
	return false
}

// fullName returns the "::"-joined names from the outermost scope inward
func (s *scopeStack) fullName() string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}
	return strings.Join(names, "::")
}

// className returns the name of the innermost scope when it is class-like
func (s *scopeStack) className() string {
	if s.isClassLike() {
		return s.current().name
	}
	return ""
}

func (s *scopeStack) reset() {
	s.entries = s.entries[:0]
	s.pushes = 0
	s.pops = 0
}
