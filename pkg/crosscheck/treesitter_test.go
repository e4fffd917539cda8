//go:build treesitter && cgo

package crosscheck

import (
	"context"
	"testing"

	"cxxtags/pkg/parser"
	"cxxtags/pkg/source"
	"cxxtags/pkg/tag"
)

func TestOracleAgreesWithRecognizer(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		cplusplus bool
	}{
		{
			name:    "c functions and structs",
			content: "struct point { int x; int y; };\nstatic int add(int a, int b)\n{\n    return a + b;\n}\nint main(void) { return add(1, 2); }\n",
		},
		{
			name:      "c++ classes and methods",
			content:   "namespace ui {\nclass Widget {\npublic:\n    void draw() { }\n};\n}\nvoid ui::Widget::reset() {}\n",
			cplusplus: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang := parser.LanguageC
			if tt.cplusplus {
				lang = parser.LanguageCPlusPlus
			}
			q := tag.NewQueue(tag.AllOptions())
			parser.Parse(source.New("input", []byte(tt.content)), q, parser.Options{Language: lang})

			oracle, err := Oracle(context.Background(), []byte(tt.content), tt.cplusplus)
			if err != nil {
				t.Fatalf("Oracle() error: %v", err)
			}
			if rep := Compare(q.Tags(), oracle); !rep.Agrees() {
				t.Errorf("missing %v, extra %v", rep.Missing, rep.Extra)
			}
		})
	}
}
