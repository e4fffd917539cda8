package ctags

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"cxxtags/pkg/config"
	"cxxtags/pkg/tag"
	"cxxtags/pkg/tagdiff"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func summary(tags []*tag.Tag) []string {
	var out []string
	for _, t := range tags {
		out = append(out, t.Kind.String()+":"+t.QualifiedName())
	}
	return out
}

func TestContentCPlusPlus(t *testing.T) {
	e, err := New(nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	content := `namespace ui {
class Widget {
public:
    void draw();
};
}
`
	res, err := e.Content("widget.cpp", []byte(content))
	if err != nil {
		t.Fatalf("Content() error: %v", err)
	}
	if res.Language.Language != config.LanguageCPlusPlus || res.Parse.Failed {
		t.Errorf("Unexpected result: %+v", res.Parse)
	}

	got := strings.Join(summary(res.Tags), " ")
	want := "namespace:ui class:ui::Widget prototype:ui::Widget::draw"
	if got != want {
		t.Errorf("records = %q, want %q", got, want)
	}
	for _, tg := range res.Tags {
		if tg.Path != "widget.cpp" {
			t.Errorf("%s path = %q", tg.Name, tg.Path)
		}
	}
	if f := res.File(); f.Path != "widget.cpp" || f.Source == nil || len(f.Tags) != 3 {
		t.Errorf("File() = %+v", f)
	}
}

func TestContentFiltersWithConfig(t *testing.T) {
	cfg := config.Default()
	no := false
	cfg.FileScope = &no
	cfg.ExtraFileTags = true
	if err := cfg.SetKind("local", true); err != nil {
		t.Fatal(err)
	}

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	content := `static int hidden(void) { return 0; }
int visible(void) { int count = 0; return count; }
`
	res, err := e.Content("main.c", []byte(content))
	if err != nil {
		t.Fatalf("Content() error: %v", err)
	}

	got := strings.Join(summary(res.Tags), " ")
	want := "file:main.c function:visible"
	if got != want {
		t.Errorf("records = %q, want %q", got, want)
	}
}

func TestContentIgnoreTokens(t *testing.T) {
	cfg := config.Default()
	cfg.Ignore = []string{"API_EXPORT"}

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	res, err := e.Content("api.c", []byte("API_EXPORT int api_call(int x) { return x; }\n"))
	if err != nil {
		t.Fatalf("Content() error: %v", err)
	}
	if len(res.Tags) != 1 || res.Tags[0].Name != "api_call" || res.Tags[0].Kind != tag.KindFunction {
		t.Errorf("records = %v", summary(res.Tags))
	}
}

func TestNewRejectsBadMacros(t *testing.T) {
	cfg := config.Default()
	cfg.Define = []string{"=oops"}
	if _, err := New(cfg); err == nil {
		t.Error("Expected an error for an invalid definition")
	}
}

func TestFileMakefile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Makefile", "CC = gcc\nall: main.o\n\t$(CC) main.o\n")

	e, _ := New(nil)
	res, err := e.File(path)
	if err != nil {
		t.Fatalf("File() error: %v", err)
	}
	got := strings.Join(summary(res.Tags), " ")
	if got != "macro:CC target:all" {
		t.Errorf("records = %q", got)
	}
	if res.Parse.Passes != 0 {
		t.Errorf("Expected no C parse result, got %+v", res.Parse)
	}
}

func TestFileErrors(t *testing.T) {
	e, _ := New(nil)
	dir := t.TempDir()

	if _, err := e.File(filepath.Join(dir, "missing.c")); err == nil {
		t.Error("Expected an error for a missing file")
	}
	readme := writeFile(t, dir, "README.md", "# readme\n")
	if _, err := e.File(readme); err == nil {
		t.Error("Expected an error for an unsupported file")
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/a.c", "int a;\n")
	writeFile(t, dir, "src/b.hpp", "int b;\n")
	writeFile(t, dir, "src/notes.txt", "notes\n")
	writeFile(t, dir, "build/gen.c", "int gen;\n")
	writeFile(t, dir, "Makefile", "all:\n")

	e, _ := New(nil)
	files, err := e.Collect([]string{dir})
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	sort.Strings(rel)
	want := []string{"Makefile", "src/a.c", "src/b.hpp"}
	if strings.Join(rel, " ") != strings.Join(want, " ") {
		t.Errorf("Collect() = %v, want %v", rel, want)
	}

	if _, err := e.Collect([]string{filepath.Join(dir, "nope")}); err == nil {
		t.Error("Expected an error for a missing path")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.c", "int alpha;\n")
	writeFile(t, dir, "b.c", "int beta;\n")

	e, _ := New(nil)
	results, err := e.Run(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	files := Files(results)
	if len(files[0].Tags) != 1 || files[0].Tags[0].Name != "alpha" {
		t.Errorf("first file records = %v", summary(files[0].Tags))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Run(ctx, []string{dir}); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}

func TestGoldenListings(t *testing.T) {
	e, err := New(nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for _, input := range []string{"point.c", "shape.cpp", "Makefile"} {
		t.Run(input, func(t *testing.T) {
			res, err := e.File(filepath.Join("testdata", input))
			if err != nil {
				t.Fatalf("File() error: %v", err)
			}
			if res.Parse.Failed {
				t.Errorf("Unexpected failed parse: %+v", res.Parse)
			}

			golden := filepath.Join("testdata", input+".golden")
			want, err := os.ReadFile(golden)
			if err != nil {
				t.Fatalf("Failed to read %s: %v", golden, err)
			}
			diff, err := tagdiff.Golden(golden, want, res.Tags, tagdiff.Options{})
			if err != nil {
				t.Fatal(err)
			}
			if diff != "" {
				t.Errorf("Listing differs from %s:\n%s", golden, diff)
			}
		})
	}
}
