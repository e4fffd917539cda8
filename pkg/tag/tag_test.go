package tag

import "testing"

func TestKindLetters(t *testing.T) {
	tests := []struct {
		kind   Kind
		name   string
		letter byte
	}{
		{KindMacro, "macro", 'd'},
		{KindPrototype, "prototype", 'p'},
		{KindParameter, "parameter", 'z'},
		{KindTarget, "target", 't'},
		{KindFile, "file", 'F'},
		{KindUnknown, "unknown", '?'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.kind.Letter(); got != tt.letter {
				t.Errorf("Letter() = %q, want %q", got, tt.letter)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"function", KindFunction, true},
		{"f", KindFunction, true},
		{"macro", KindMacro, true},
		{"target", KindTarget, true},
		{"m", KindMember, true},
		{"nope", KindUnknown, false},
	}

	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPropertiesString(t *testing.T) {
	p := PropPure | PropVirtual | PropConst
	if got := p.String(); got != "virtual,const,pure" {
		t.Errorf("Expected virtual,const,pure, got %q", got)
	}
	if !p.Has(PropVirtual | PropPure) {
		t.Error("Expected virtual|pure to be set")
	}
	if p.Has(PropStatic) {
		t.Error("Did not expect static")
	}
	if Properties(0).String() != "" {
		t.Error("Expected empty string for no properties")
	}
}

func TestQueueFiltering(t *testing.T) {
	q := NewQueue(Options{Disabled: map[Kind]bool{KindLocal: true}})

	if q.Begin(KindLocal, "x", Position{Line: 1}) != nil {
		t.Fatal("Expected disabled kind to yield a nil draft")
	}

	fs := q.Begin(KindFunction, "helper", Position{Line: 2})
	fs.FileScope = true
	if idx := q.Commit(fs); idx != Nil {
		t.Errorf("Expected file scoped record to be dropped, got index %d", idx)
	}

	ref := q.Begin(KindHeader, "stdio.h", Position{Line: 3})
	ref.Role = RoleSystem
	if idx := q.Commit(ref); idx != Nil {
		t.Errorf("Expected reference record to be dropped, got index %d", idx)
	}

	fn := q.Begin(KindFunction, "main", Position{Line: 4})
	idx := q.Commit(fn)
	if idx != 1 {
		t.Fatalf("Expected index 1, got %d", idx)
	}
	q.SetEnd(idx, 9)
	if q.Lookup(idx).End != 9 {
		t.Errorf("Expected end 9, got %d", q.Lookup(idx).End)
	}
	if q.Lookup(Nil) != nil || q.Lookup(2) != nil {
		t.Error("Expected out of range lookups to return nil")
	}
}

func TestQueueTruncate(t *testing.T) {
	q := NewQueue(AllOptions())
	for _, name := range []string{"a", "b", "c"} {
		q.Commit(q.Begin(KindVariable, name, Position{Line: 1}))
	}
	q.Truncate(1)
	if q.Len() != 1 || q.Tags()[0].Name != "a" {
		t.Fatalf("Expected only a to survive, got %d records", q.Len())
	}
	if idx := q.Commit(q.Begin(KindVariable, "d", Position{Line: 2})); idx != 2 {
		t.Errorf("Expected index 2 after truncate, got %d", idx)
	}
}

func TestSortByName(t *testing.T) {
	tags := []*Tag{
		{Name: "b", Position: Position{Line: 1}},
		{Name: "a", Position: Position{Line: 5}},
		{Name: "a", Position: Position{Line: 2}},
	}
	SortByName(tags)
	if tags[0].Name != "a" || tags[0].Position.Line != 2 || tags[2].Name != "b" {
		t.Errorf("Unexpected order: %s:%d %s:%d %s:%d",
			tags[0].Name, tags[0].Position.Line,
			tags[1].Name, tags[1].Position.Line,
			tags[2].Name, tags[2].Position.Line)
	}
}
