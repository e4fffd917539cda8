// Package crosscheck compares the function and type definitions found by
// the heuristic recognizer with the ones a tree-sitter grammar finds in the
// same input. The grammar is only linked in builds with the treesitter tag
// and cgo enabled.
package crosscheck

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cxxtags/pkg/tag"
)

// ErrUnavailable is returned by Oracle in builds without tree-sitter
var ErrUnavailable = errors.New("tree-sitter support not built in (build with -tags treesitter and cgo)")

// Group is the class of definitions compared
type Group string

const (
	GroupFunction Group = "function"
	GroupType     Group = "type"
)

// Symbol is one definition found by either side
type Symbol struct {
	Group Group
	Name  string
	Line  int
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s %s:%d", s.Group, s.Name, s.Line)
}

// Report lists the disagreements between the recognizer and the oracle
type Report struct {
	Matched int
	Missing []Symbol // found by the oracle only
	Extra   []Symbol // found by the recognizer only
}

// Agrees reports whether both sides found the same definitions.
func (r Report) Agrees() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// groupOf returns the group of a record, or "" when it is not compared
func groupOf(t *tag.Tag) Group {
	if t.IsReference() {
		return ""
	}
	switch t.Kind {
	case tag.KindFunction:
		return GroupFunction
	case tag.KindClass, tag.KindStruct, tag.KindUnion:
		return GroupType
	}
	return ""
}

// Symbols extracts the compared definitions from records. Anonymous types
// are skipped since the oracle has no name for them.
func Symbols(tags []*tag.Tag) []Symbol {
	var out []Symbol
	for _, t := range tags {
		g := groupOf(t)
		if g == "" || isAnonymous(t.Name) {
			continue
		}
		out = append(out, Symbol{Group: g, Name: normalizeName(t.Name), Line: t.Position.Line})
	}
	return out
}

// normalizeName drops the blanks of operator names, "operator ==" and
// "operator==" name the same function.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), "")
}

func isAnonymous(name string) bool {
	return strings.HasPrefix(name, "__anon")
}

// Compare matches the records of the recognizer against the oracle
// symbols by group, name and line.
func Compare(tags []*tag.Tag, oracle []Symbol) Report {
	var rep Report
	pending := make(map[Symbol]int)
	for _, s := range oracle {
		pending[s]++
	}

	for _, s := range Symbols(tags) {
		if pending[s] > 0 {
			pending[s]--
			rep.Matched++
			continue
		}
		rep.Extra = append(rep.Extra, s)
	}
	for _, s := range oracle {
		if pending[s] > 0 {
			pending[s]--
			rep.Missing = append(rep.Missing, s)
		}
	}

	sortSymbols(rep.Missing)
	sortSymbols(rep.Extra)
	return rep
}

func sortSymbols(s []Symbol) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Line != s[j].Line {
			return s[i].Line < s[j].Line
		}
		return s[i].Name < s[j].Name
	})
}
