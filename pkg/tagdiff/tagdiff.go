// Package tagdiff compares two tag listings and renders the differences as
// a unified diff.
package tagdiff

import (
	"fmt"
	"sort"
	"strings"

	"cxxtags/pkg/tag"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls the listing and the patch
type Options struct {
	// Context is the number of context lines around each hunk, 3 when 0.
	Context int
	// Lines adds the line number of each record to the listing. Off by
	// default so that moved code does not show as changed.
	Lines bool
	// Sort orders the listing by qualified name instead of input order.
	Sort bool
}

// Line renders one record as a listing line without terminator.
func Line(t *tag.Tag, opts Options) string {
	var b strings.Builder
	b.WriteString(t.Kind.String())
	b.WriteByte(' ')
	b.WriteString(t.QualifiedName())
	b.WriteString(t.Signature)
	if ref := t.TypeRef.String(); ref != "" {
		b.WriteString(" -> ")
		b.WriteString(ref)
	}
	if t.Access != tag.AccessUnknown {
		b.WriteString(" [")
		b.WriteString(t.Access.String())
		b.WriteByte(']')
	}
	if t.IsReference() {
		b.WriteString(" (")
		b.WriteString(t.Role.String())
		b.WriteByte(')')
	}
	if opts.Lines {
		fmt.Fprintf(&b, " :%d", t.Position.Line)
	}
	return b.String()
}

// Listing renders records one per line, each line ending in a newline.
func Listing(tags []*tag.Tag, opts Options) []string {
	lines := make([]string, 0, len(tags))
	for _, t := range tags {
		lines = append(lines, Line(t, opts)+"\n")
	}
	if opts.Sort {
		sort.SliceStable(lines, func(i, j int) bool {
			return nameOf(lines[i]) < nameOf(lines[j])
		})
	}
	return lines
}

// nameOf returns the qualified name part of a listing line
func nameOf(line string) string {
	if i := strings.IndexByte(line, ' '); i >= 0 {
		line = line[i+1:]
	}
	if i := strings.IndexAny(line, " (\n"); i >= 0 {
		line = line[:i]
	}
	return line
}

// Unified returns the unified diff turning the listing of a into the
// listing of b, or "" when both list the same records.
func Unified(aName, bName string, a, b []*tag.Tag, opts Options) (string, error) {
	ctx := opts.Context
	if ctx <= 0 {
		ctx = 3
	}

	u := difflib.UnifiedDiff{
		A:        Listing(a, opts),
		B:        Listing(b, opts),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s and %s: %w", aName, bName, err)
	}
	return s, nil
}

// Golden returns the unified diff turning the expected listing text into
// the listing of tags, or "" when they match. The text holds one
// listing line per record as written by Listing.
func Golden(name string, want []byte, tags []*tag.Tag, opts Options) (string, error) {
	ctx := opts.Context
	if ctx <= 0 {
		ctx = 3
	}

	var expected []string
	if text := strings.TrimRight(string(want), "\n"); text != "" {
		expected = difflib.SplitLines(text)
	}
	u := difflib.UnifiedDiff{
		A:        expected,
		B:        Listing(tags, opts),
		FromFile: name,
		ToFile:   "got",
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("failed to diff against %s: %w", name, err)
	}
	return s, nil
}

// Equal reports whether a and b produce the same listing.
func Equal(a, b []*tag.Tag, opts Options) bool {
	la, lb := Listing(a, opts), Listing(b, opts)
	if len(la) != len(lb) {
		return false
	}
	for i := range la {
		if la[i] != lb[i] {
			return false
		}
	}
	return true
}
