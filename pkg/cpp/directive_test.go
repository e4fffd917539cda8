package cpp

import (
	"testing"

	"cxxtags/pkg/source"
	"cxxtags/pkg/tag"
)

func TestClassifyDirective(t *testing.T) {
	tests := map[string]directiveKind{
		"define":  directiveDefine,
		"include": directiveInclude,
		"undef":   directiveUndef,
		"if":      directiveIf,
		"ifdef":   directiveIf,
		"ifndef":  directiveIf,
		"elif":    directiveElif,
		"else":    directiveElse,
		"endif":   directiveEndif,
		"pragma":  directivePragma,
		"error":   directiveOther,
		"line":    directiveOther,
	}
	for name, want := range tests {
		if got := classifyDirective(name); got != want {
			t.Errorf("classifyDirective(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestConditionalBranches(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    Options
		want    string
	}{
		{
			name:    "if 0 skipped",
			content: "#if 0\na\n#endif\nb\n",
			want:    "\nb\n",
		},
		{
			name:    "if 0 else",
			content: "#if 0\na\n#else\nc\n#endif\n",
			want:    "\nc\n\n",
		},
		{
			name:    "if 0 examined",
			content: "#if 0\na\n#endif\n",
			opts:    Options{ExamineIf0: true},
			want:    "\na\n\n",
		},
		{
			name:    "all branches followed",
			content: "#ifdef X\na\n#else\nb\n#endif\n",
			want:    "\na\n\nb\n\n",
		},
		{
			name:    "nested in ignored branch",
			content: "#if 0\n#if 1\na\n#endif\nb\n#endif\nc\n",
			want:    "\nc\n",
		},
		{
			name:    "relaxed pass follows if 0",
			content: "#if 0\na\n#else\nb\n#endif\n",
			opts:    Options{Relaxed: true},
			want:    "\na\n\nb\n\n",
		},
		{
			name:    "unknown directive",
			content: "#error oops \"x\"\nz\n",
			want:    "\nz\n",
		},
		{
			name:    "hash inside line is not a directive",
			content: "a # b\n",
			want:    "a # b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := surface(t, tt.content, tt.opts)
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSingleBranchWhenStatementInProgress(t *testing.T) {
	content := "#ifdef X\na\n#else\nb\n#endif\n"
	p := New(source.New("t.c", []byte(content)), nil, Options{})
	p.BeginStatement()

	var got []int
	for c := p.Getc(); c != EOF; c = p.Getc() {
		got = append(got, c)
	}
	if string(runes(got)) != "\na\n\n" {
		t.Errorf("Expected only the first branch, got %q", string(runes(got)))
	}
}

func runes(cs []int) []rune {
	r := make([]rune, len(cs))
	for i, c := range cs {
		r[i] = rune(c)
	}
	return r
}

func TestNestingLimit(t *testing.T) {
	var s conditionalStack
	pol := branchPolicy{}
	for i := 0; i < MaxNestingLevel+5; i++ {
		s.push(true, pol)
	}
	if s.level != MaxNestingLevel-1 {
		t.Errorf("Expected nesting to stop at %d, got %d", MaxNestingLevel-1, s.level)
	}
	for i := 0; i < MaxNestingLevel+5; i++ {
		s.pop()
	}
	if s.level != 0 {
		t.Errorf("Expected level 0 after popping, got %d", s.level)
	}
}

func TestConditionalTransitions(t *testing.T) {
	pol := branchPolicy{}
	f := newConditional(false, false, pol)
	if !f.ignoring {
		t.Error("Expected #if 0 to be ignored")
	}

	f = newConditional(false, false, branchPolicy{examineIf0: true})
	if f.ignoring {
		t.Error("Expected #if 0 to be examined")
	}

	f = newConditional(false, false, branchPolicy{examineIf0: true, resolveRequired: true})
	if !f.ignoring {
		t.Error("Expected #if 0 inside a statement to be ignored")
	}

	f = newConditional(true, true, pol)
	if !f.ignoring {
		t.Error("Expected a conditional inside an ignored branch to be ignored")
	}

	var s conditionalStack
	s.push(true, branchPolicy{resolveRequired: true})
	if !s.ignoreBranch(pol) {
		t.Error("Expected the else branch of a single branch conditional to be ignored")
	}
}

func TestDefineAndIncludeTags(t *testing.T) {
	content := `#define PLAIN 1
#define FUNC( a , b ) \
	((a) + (b))
#include <stdio.h>
#include "local.h"
#undef PLAIN
#pragma weak weak_symbol
#if 0
#define HIDDEN 1
#endif
`
	_, q := surface(t, content, Options{IsHeader: true})

	type want struct {
		name string
		kind tag.Kind
		role tag.Role
		line int
		end  int
		sig  string
	}
	wants := []want{
		{"PLAIN", tag.KindMacro, tag.RoleDefinition, 1, 1, ""},
		{"FUNC", tag.KindMacro, tag.RoleDefinition, 2, 3, "(a,b)"},
		{"stdio.h", tag.KindHeader, tag.RoleSystem, 4, 0, ""},
		{"local.h", tag.KindHeader, tag.RoleLocal, 5, 0, ""},
		{"PLAIN", tag.KindMacro, tag.RoleUndef, 6, 0, ""},
		{"weak_symbol", tag.KindMacro, tag.RoleDefinition, 7, 0, ""},
	}

	tags := q.Tags()
	if len(tags) != len(wants) {
		for _, tg := range tags {
			t.Logf("%s %s %s line %d", tg.Name, tg.Kind, tg.Role, tg.Position.Line)
		}
		t.Fatalf("Expected %d tags, got %d", len(wants), len(tags))
	}
	for i, w := range wants {
		tg := tags[i]
		if tg.Name != w.name || tg.Kind != w.kind || tg.Role != w.role || tg.Position.Line != w.line ||
			tg.End != w.end || tg.Signature != w.sig {
			t.Errorf("tag %d: got %s %s %s line %d end %d sig %q; want %s %s %s line %d end %d sig %q",
				i, tg.Name, tg.Kind, tg.Role, tg.Position.Line, tg.End, tg.Signature,
				w.name, w.kind, w.role, w.line, w.end, w.sig)
		}
		if tg.FileScope {
			t.Errorf("tag %s: macros of headers must not be file scoped", tg.Name)
		}
	}
}

func TestDefineFileScopeInSource(t *testing.T) {
	_, q := surface(t, "#define LOCAL_ONLY 2\n", Options{})
	if q.Len() != 1 || !q.Tags()[0].FileScope {
		t.Fatalf("Expected one file scoped macro, got %d records", q.Len())
	}
}

func TestFileMacroCapture(t *testing.T) {
	content := "#define EXPORT\n#define SQUARE(x) ((x) * (x)) /* c */\n#define NAME \"n\"\n#undef NAME\n"
	p := New(source.New("t.c", []byte(content)), nil, Options{ExpandFileMacros: true})
	for p.Getc() != EOF {
	}

	export := p.FindMacro("EXPORT")
	if export == nil || export.HasReplacement() || export.HasParameterList {
		t.Fatalf("Expected EXPORT to be an eliding macro, got %+v", export)
	}

	square := p.FindMacro("SQUARE")
	if square == nil || !square.HasParameterList {
		t.Fatalf("Expected SQUARE to take parameters, got %+v", square)
	}
	if got := square.Expand([]string{"y"}); got != "((y) * (y))" {
		t.Errorf("Expected ((y) * (y)), got %q", got)
	}

	if p.FindMacro("NAME") != nil {
		t.Error("Expected NAME to be removed by #undef")
	}
}

func TestFileMacrosNotExpandedByDefault(t *testing.T) {
	p := New(source.New("t.c", []byte("#define EXPORT\n")), nil, Options{})
	for p.Getc() != EOF {
	}
	if p.FindMacro("EXPORT") != nil {
		t.Error("Expected file macros to be hidden without ExpandFileMacros")
	}
	if p.FileMacros().Lookup("EXPORT") == nil {
		t.Error("Expected EXPORT to be captured anyway")
	}
}

func TestFileMacroCaptureExtendedNames(t *testing.T) {
	content := "#define $trace(x) x\n#define \xe9tat 1\n#define _x$ 2\n"
	p := New(source.New("t.c", []byte(content)), nil, Options{ExpandFileMacros: true})
	for p.Getc() != EOF {
	}

	for _, name := range []string{"$trace", "\xe9tat", "_x$"} {
		if p.FileMacros().Lookup(name) == nil {
			t.Errorf("Expected %q in the file macro table", name)
		}
	}
	if m := p.FindMacro("$trace"); m == nil || m.Expand([]string{"y"}) != "y" {
		t.Errorf("Expected $trace to expand its argument, got %+v", m)
	}
}
