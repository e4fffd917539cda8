package cpp

import "testing"

func TestAddIgnore(t *testing.T) {
	tests := []struct {
		spec        string
		name        string
		params      bool
		replacement string
	}{
		{"CLASS_API", "CLASS_API", false, ""},
		{"DECLARE_THING+", "DECLARE_THING", true, ""},
		{"EXPORT=extern", "EXPORT", false, "extern"},
		{"WRAP+=int", "WRAP", true, "int"},
	}

	for _, tt := range tests {
		table := NewMacroTable()
		if err := table.AddIgnore(tt.spec); err != nil {
			t.Fatalf("AddIgnore(%q) failed: %v", tt.spec, err)
		}
		m := table.Lookup(tt.name)
		if m == nil {
			t.Fatalf("Expected %s to be registered from %q", tt.name, tt.spec)
		}
		if m.HasParameterList != tt.params {
			t.Errorf("%q: HasParameterList = %v, want %v", tt.spec, m.HasParameterList, tt.params)
		}
		if got := m.Expand(nil); got != tt.replacement {
			t.Errorf("%q: replacement = %q, want %q", tt.spec, got, tt.replacement)
		}
	}

	if err := NewMacroTable().AddIgnore("=x"); err == nil {
		t.Error("Expected an error for an ignore token without a name")
	}
}

func TestAddDefine(t *testing.T) {
	tests := []struct {
		name string
		spec string
		args []string
		want string
	}{
		{"object", "VERSION=3", nil, "3"},
		{"parameters", "MAX(a, b)=((a) > (b) ? (a) : (b))", []string{"x", "y"}, "((x) > (y) ? (x) : (y))"},
		{"stringify", "STR(x)=#x", []string{"abc"}, `"abc"`},
		{"paste", "CAT(a,b)=a ## b", []string{"foo", "bar"}, "foobar"},
		{"paste with constant", "FN(n)=get_ ## n", []string{"size"}, "get_size"},
		{"varargs", "CALL(f, ...)=f(__VA_ARGS__)", []string{"g", "1", "2"}, "g(1,2)"},
		{"string constant kept", `Q(x)="x" x`, []string{"v"}, `"x" v`},
		{"missing argument", "TWO(a,b)=a+b", []string{"1"}, "1+"},
		{"dollar identifiers", "$WRAP($v)=$v + 1", []string{"n"}, "n + 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewMacroTable()
			if err := table.AddDefine(tt.spec); err != nil {
				t.Fatalf("AddDefine(%q) failed: %v", tt.spec, err)
			}
			var m *Macro
			for _, candidate := range table.macros {
				m = candidate
			}
			if m == nil || !m.HasReplacement() {
				t.Fatalf("Expected a macro with a replacement from %q", tt.spec)
			}
			if got := m.Expand(tt.args); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAddDefineErrors(t *testing.T) {
	for _, spec := range []string{"", "   ", "1ABC=2", "(x)=y"} {
		if err := NewMacroTable().AddDefine(spec); err == nil {
			t.Errorf("Expected an error for %q", spec)
		}
	}
}

func TestAddDefineParameterLimit(t *testing.T) {
	table := NewMacroTable()
	spec := "MANY(a0,a1,a2,a3,a4,a5,a6,a7,a8,a9,a10,a11,a12,a13,a14,a15,a16,a17)=a15 a16"
	if err := table.AddDefine(spec); err != nil {
		t.Fatalf("AddDefine failed: %v", err)
	}
	args := make([]string, 18)
	for i := range args {
		args[i] = "x"
	}
	args[15] = "last"
	if got := table.Lookup("MANY").Expand(args); got != "last a16" {
		t.Errorf("Expected parameters past the limit to stay literal, got %q", got)
	}
}

func TestNilTableLookup(t *testing.T) {
	var table *MacroTable
	if table.Lookup("x") != nil || table.Len() != 0 {
		t.Error("Expected a nil table to be empty")
	}
}
