package parser

import (
	"fmt"
	"strings"
	"testing"

	"cxxtags/pkg/source"
	"cxxtags/pkg/tag"
)

// parseString recognizes content with every kind enabled
func parseString(t *testing.T, content string, lang Language) ([]*tag.Tag, Result) {
	t.Helper()
	name := "test.c"
	if lang == LanguageCPlusPlus {
		name = "test.cpp"
	}
	q := tag.NewQueue(tag.AllOptions())
	res := Parse(source.New(name, []byte(content)), q, Options{Language: lang})
	if res.Stats.Pushes != res.Stats.Pops {
		t.Errorf("Unbalanced scopes: %d pushes, %d pops", res.Stats.Pushes, res.Stats.Pops)
	}
	return q.Tags(), res
}

func findTag(tags []*tag.Tag, name string, kind tag.Kind) *tag.Tag {
	for _, tg := range tags {
		if tg.Name == name && tg.Kind == kind {
			return tg
		}
	}
	return nil
}

func mustFindTag(t *testing.T, tags []*tag.Tag, name string, kind tag.Kind) *tag.Tag {
	t.Helper()
	tg := findTag(tags, name, kind)
	if tg == nil {
		var got []string
		for _, x := range tags {
			got = append(got, x.Kind.String()+":"+x.QualifiedName())
		}
		t.Fatalf("Expected %s %q, got %v", kind, name, got)
	}
	return tg
}

func TestParseFunctionDefinition(t *testing.T) {
	content := `static int helper(int a, char **argv)
{
    int local = a;
    return local;
}
`
	tags, res := parseString(t, content, LanguageC)
	if res.Failed || res.Rescanned {
		t.Fatalf("Unexpected result: %+v", res)
	}

	fn := mustFindTag(t, tags, "helper", tag.KindFunction)
	if fn.Signature != "(int a,char ** argv)" {
		t.Errorf("Signature = %q", fn.Signature)
	}
	if fn.TypeRef.String() != "typename:int" {
		t.Errorf("TypeRef = %q", fn.TypeRef)
	}
	if !fn.FileScope {
		t.Error("Expected static function to be file scoped")
	}
	if fn.Position.Line != 1 || fn.End != 5 {
		t.Errorf("Expected lines 1-5, got %d-%d", fn.Position.Line, fn.End)
	}

	argv := mustFindTag(t, tags, "argv", tag.KindParameter)
	if argv.Scope != "helper" || argv.ScopeKind != tag.KindFunction {
		t.Errorf("argv scope = %q (%s)", argv.Scope, argv.ScopeKind)
	}
	if argv.TypeRef.Name != "char **" {
		t.Errorf("argv type = %q", argv.TypeRef.Name)
	}

	local := mustFindTag(t, tags, "local", tag.KindLocal)
	if local.Scope != "helper" || !local.FileScope {
		t.Errorf("Unexpected local: %+v", local)
	}
}

func TestParseKnRFunctionDefinition(t *testing.T) {
	content := `int add(a, b)
int a;
int b;
{
    return a + b;
}
`
	tags, res := parseString(t, content, LanguageC)
	if res.Failed {
		t.Fatalf("Unexpected failure: %+v", res)
	}

	fn := mustFindTag(t, tags, "add", tag.KindFunction)
	if fn.End != 6 {
		t.Errorf("End = %d, want 6", fn.End)
	}
	for _, name := range []string{"a", "b"} {
		prm := mustFindTag(t, tags, name, tag.KindParameter)
		if prm.Scope != "add" {
			t.Errorf("%s scope = %q", name, prm.Scope)
		}
		if prm.TypeRef.String() != "typename:int" {
			t.Errorf("%s type = %q", name, prm.TypeRef)
		}
	}
	if findTag(tags, "a", tag.KindVariable) != nil {
		t.Error("K&R declarations must not be reported as variables")
	}
}

func TestParseCallIsNotADeclaration(t *testing.T) {
	for _, lang := range []Language{LanguageC, LanguageCPlusPlus} {
		t.Run(lang.String(), func(t *testing.T) {
			tags, _ := parseString(t, "foo(a, b);\n", lang)
			if len(tags) != 0 {
				t.Errorf("Expected no records, got %d (first %q %s)", len(tags), tags[0].Name, tags[0].Kind)
			}
		})
	}
}

func TestParsePrototype(t *testing.T) {
	tags, _ := parseString(t, "int foo(int a, int b);\n", LanguageC)

	proto := mustFindTag(t, tags, "foo", tag.KindPrototype)
	if proto.Signature != "(int a,int b)" {
		t.Errorf("Signature = %q", proto.Signature)
	}
	if !proto.FileScope {
		t.Error("Expected prototype outside a header to be file scoped")
	}
	if findTag(tags, "foo", tag.KindFunction) != nil {
		t.Error("Prototype reported as function")
	}
	prm := mustFindTag(t, tags, "b", tag.KindParameter)
	if prm.Scope != "foo" || prm.ScopeKind != tag.KindPrototype {
		t.Errorf("Parameter scope = %q (%s)", prm.Scope, prm.ScopeKind)
	}
}

func TestParseTemplateSpecialization(t *testing.T) {
	tags, res := parseString(t, "template<> class Foo<int> { };\n", LanguageCPlusPlus)
	if res.Failed {
		t.Fatalf("Unexpected failure: %+v", res)
	}
	cls := mustFindTag(t, tags, "Foo", tag.KindClass)
	if !cls.Properties.Has(tag.PropSpecialization) {
		t.Errorf("Properties = %q, want specialization", cls.Properties)
	}
	if cls.Template != "<>" {
		t.Errorf("Template = %q", cls.Template)
	}
	if cls.End != 1 {
		t.Errorf("End = %d", cls.End)
	}
}

func TestParseTemplateDeclarations(t *testing.T) {
	content := `template <typename T, int N = 4>
class Array {
public:
    T data[N];
    template <class U> U convert(const U &u) const;
};
`
	tags, _ := parseString(t, content, LanguageCPlusPlus)

	cls := mustFindTag(t, tags, "Array", tag.KindClass)
	if cls.Template != "<typename T,int N = 4>" {
		t.Errorf("Template = %q", cls.Template)
	}
	data := mustFindTag(t, tags, "data", tag.KindMember)
	if data.Template != "" {
		t.Errorf("Template leaked to member: %q", data.Template)
	}
	conv := mustFindTag(t, tags, "convert", tag.KindPrototype)
	if conv.Template != "<class U>" {
		t.Errorf("Template = %q", conv.Template)
	}
	if !conv.Properties.Has(tag.PropConst) {
		t.Errorf("Properties = %q, want const", conv.Properties)
	}
}

func TestParseTrailingReturnType(t *testing.T) {
	tags, _ := parseString(t, "auto f() -> int { return 0; }\n", LanguageCPlusPlus)
	fn := mustFindTag(t, tags, "f", tag.KindFunction)
	if fn.TypeRef.String() != "typename:int" {
		t.Errorf("TypeRef = %q", fn.TypeRef)
	}
}

func TestParseBodyAfterTrailingMarkers(t *testing.T) {
	tests := []struct {
		name    string
		content string
		fn      string
		typeRef string
		props   tag.Properties
		member  string
		after   string
	}{
		{
			name:    "const override",
			content: "struct D : B { int size() const override { return n; } int n; };\nint after;\n",
			fn:      "size", typeRef: "typename:int", props: tag.PropConst | tag.PropOverride,
			member: "n", after: "after",
		},
		{
			name:    "const final",
			content: "struct E { int size() const final { return 0; } int m; };\nint tail;\n",
			fn:      "size", typeRef: "typename:int", props: tag.PropConst | tag.PropFinal,
			member: "m", after: "tail",
		},
		{
			name:    "trailing return with qualifier",
			content: "auto f() -> const Foo { return Foo(); }\nint g;\n",
			fn:      "f", typeRef: "typename:const Foo",
			after: "g",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, res := parseString(t, tt.content, LanguageCPlusPlus)
			if res.Failed {
				t.Fatalf("Unexpected failure: %+v", res)
			}
			fn := mustFindTag(t, tags, tt.fn, tag.KindFunction)
			if fn.TypeRef.String() != tt.typeRef {
				t.Errorf("TypeRef = %q, want %q", fn.TypeRef, tt.typeRef)
			}
			if !fn.Properties.Has(tt.props) {
				t.Errorf("Properties = %q, want %q", fn.Properties, tt.props)
			}
			if tt.member != "" {
				mustFindTag(t, tags, tt.member, tag.KindMember)
			}
			after := mustFindTag(t, tags, tt.after, tag.KindVariable)
			if after.Scope != "" {
				t.Errorf("%s scope = %q, want global", tt.after, after.Scope)
			}
		})
	}
}

func TestParseBraceInitializerIsNotABody(t *testing.T) {
	tags, _ := parseString(t, "Point p { 1, 2 };\nint q;\n", LanguageCPlusPlus)
	if findTag(tags, "p", tag.KindFunction) != nil {
		t.Error("Brace initializer reported as a function body")
	}
	mustFindTag(t, tags, "q", tag.KindVariable)
}

func TestParseSignatureTrailers(t *testing.T) {
	content := `class Shape {
public:
    virtual double area() const = 0;
    Shape() = default;
    Shape &operator=(const Shape &other) = delete;
    virtual void draw() override;
    virtual void done() final;
    int poll() volatile;
};
`
	tags, _ := parseString(t, content, LanguageCPlusPlus)

	tests := []struct {
		name  string
		props tag.Properties
	}{
		{"area", tag.PropVirtual | tag.PropConst | tag.PropPure},
		{"Shape", tag.PropDefault},
		{"operator =", tag.PropDelete},
		{"draw", tag.PropVirtual | tag.PropOverride},
		{"done", tag.PropVirtual | tag.PropFinal},
		{"poll", tag.PropVolatile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := mustFindTag(t, tags, tt.name, tag.KindPrototype)
			if !tg.Properties.Has(tt.props) {
				t.Errorf("Properties = %q, want %q", tg.Properties, tt.props)
			}
			if tg.Scope != "Shape" {
				t.Errorf("Scope = %q", tg.Scope)
			}
		})
	}
}

func TestParseNestedDeclarator(t *testing.T) {
	tags, _ := parseString(t, "int (*f(void))[2];\n", LanguageC)
	f := mustFindTag(t, tags, "f", tag.KindPrototype)
	if f.TypeRef.String() != "typename:int(*)[2]" {
		t.Errorf("TypeRef = %q", f.TypeRef)
	}
	if f.Signature != "(void)" {
		t.Errorf("Signature = %q", f.Signature)
	}
}

func TestParseExternCBlock(t *testing.T) {
	content := `extern "C" {
int c_api(void);
static int counter;
}
int after_block(void) { return 0; }
`
	tags, res := parseString(t, content, LanguageCPlusPlus)
	if res.Failed || res.Rescanned {
		t.Fatalf("Unexpected result: %+v", res)
	}

	tests := []struct {
		name string
		kind tag.Kind
	}{
		{"c_api", tag.KindPrototype},
		{"counter", tag.KindVariable},
		{"after_block", tag.KindFunction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := mustFindTag(t, tags, tt.name, tt.kind)
			if tg.Scope != "" {
				t.Errorf("Scope = %q, want global", tg.Scope)
			}
		})
	}
	if c := findTag(tags, "counter", tag.KindVariable); c != nil && c.Properties.Has(tag.PropExtern) {
		t.Error("extern \"C\" block leaked the extern property")
	}
}

func TestParseTruncatedInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lang    Language
		want    string
		kind    tag.Kind
	}{
		{"class", "class A {", LanguageCPlusPlus, "A", tag.KindClass},
		{"struct", "struct S { int x;", LanguageC, "S", tag.KindStruct},
		{"function", "void f() {\n  int y;", LanguageC, "f", tag.KindFunction},
		{"namespace", "namespace N {", LanguageCPlusPlus, "N", tag.KindNamespace},
		{"enum", "enum E { One, Two", LanguageC, "E", tag.KindEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, _ := parseString(t, tt.content, tt.lang)
			mustFindTag(t, tags, tt.want, tt.kind)
			for _, tg := range tags {
				if tg.End != 0 {
					t.Errorf("%s %q has end line %d", tg.Kind, tg.Name, tg.End)
				}
			}
		})
	}
}

func TestParseBalancedScopes(t *testing.T) {
	content := `namespace outer { namespace {
struct Point { int x, y; };
class Shape {
public:
    virtual ~Shape() {}
    virtual double area() const = 0;
protected:
    Point origin;
};
enum class Color : unsigned char { Red, Green };
} }

int Shape2::compute(int v) { if (v) { return [](int z) { return z; }(v); } return 0; }
`
	_, res := parseString(t, content, LanguageCPlusPlus)
	if res.Stats.Pushes == 0 {
		t.Error("Expected scopes to be pushed")
	}
	if res.Failed {
		t.Errorf("Unexpected failure: %+v", res)
	}
}

// summary reduces records to what does not depend on literal contents
func summary(tags []*tag.Tag) []string {
	var out []string
	for _, tg := range tags {
		out = append(out, fmt.Sprintf("%s %s %d %d %s", tg.Kind, tg.QualifiedName(), tg.Position.Line, tg.End, tg.Access))
	}
	return out
}

func TestParseCommentAndLiteralInvariance(t *testing.T) {
	base := `class Widget {
public:
    const char *label = "LABEL"; /* NOTE */
    void draw(char c = 'x'); // TAIL
};
`
	noisy := strings.NewReplacer(
		`"LABEL"`, `"} class Bogus { ; ("`,
		"NOTE", "}; struct Fake {",
		`'x'`, `'{'`,
		"TAIL", "} int bogus(",
	).Replace(base)

	plainTags, _ := parseString(t, base, LanguageCPlusPlus)
	noisyTags, _ := parseString(t, noisy, LanguageCPlusPlus)

	a, b := summary(plainTags), summary(noisyTags)
	if strings.Join(a, "\n") != strings.Join(b, "\n") {
		t.Errorf("Records differ:\n%s\n--\n%s", strings.Join(a, "\n"), strings.Join(b, "\n"))
	}
	if len(a) == 0 {
		t.Error("Expected records")
	}
}

func TestParseClassMembersAndAccess(t *testing.T) {
	content := `class Base {};
class Derived : public virtual Base, private Other {
    int hidden;
public:
    explicit Derived(int v);
    static int count;
    int value() const { return hidden; }
protected:
    Derived &operator=(const Derived &o);
private:
    friend class Helper;
};
struct Plain { int open; };
`
	tags, _ := parseString(t, content, LanguageCPlusPlus)

	derived := mustFindTag(t, tags, "Derived", tag.KindClass)
	if derived.Inheritance != "Base" {
		t.Errorf("Inheritance = %q", derived.Inheritance)
	}

	tests := []struct {
		name   string
		kind   tag.Kind
		access tag.AccessLevel
	}{
		{"hidden", tag.KindMember, tag.AccessPrivate},
		{"Derived", tag.KindPrototype, tag.AccessPublic},
		{"count", tag.KindMember, tag.AccessPublic},
		{"value", tag.KindFunction, tag.AccessPublic},
		{"operator =", tag.KindPrototype, tag.AccessProtected},
		{"open", tag.KindMember, tag.AccessPublic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := mustFindTag(t, tags, tt.name, tt.kind)
			if tg.Access != tt.access {
				t.Errorf("Access = %s, want %s", tg.Access, tt.access)
			}
		})
	}

	count := mustFindTag(t, tags, "count", tag.KindMember)
	if count.Scope != "Derived" || count.ScopeKind != tag.KindClass {
		t.Errorf("Scope = %q (%s)", count.Scope, count.ScopeKind)
	}
	if !count.Properties.Has(tag.PropStatic) {
		t.Errorf("Properties = %q, want static", count.Properties)
	}
	if findTag(tags, "Helper", tag.KindClass) != nil {
		t.Error("Friend declaration reported as class")
	}
}

func TestParseQualifiedDefinition(t *testing.T) {
	content := `void Foo::bar(int x) const {
}
Foo::Foo() : x_(1) {}
Foo::~Foo() {}
int Foo::counter = 0;
`
	tags, _ := parseString(t, content, LanguageCPlusPlus)

	bar := mustFindTag(t, tags, "bar", tag.KindFunction)
	if bar.Scope != "Foo" || bar.ScopeKind != tag.KindClass {
		t.Errorf("Scope = %q (%s)", bar.Scope, bar.ScopeKind)
	}
	if bar.Signature != "(int x) const" {
		t.Errorf("Signature = %q", bar.Signature)
	}
	if !bar.Properties.Has(tag.PropConst) {
		t.Errorf("Properties = %q", bar.Properties)
	}

	ctor := mustFindTag(t, tags, "Foo", tag.KindFunction)
	if ctor.Scope != "Foo" {
		t.Errorf("Constructor scope = %q", ctor.Scope)
	}
	mustFindTag(t, tags, "~Foo", tag.KindFunction)
	counter := mustFindTag(t, tags, "counter", tag.KindVariable)
	if counter.Scope != "Foo" {
		t.Errorf("counter scope = %q", counter.Scope)
	}
}

func TestParseEnums(t *testing.T) {
	content := `enum Color { Red, Green = 2, Blue };
enum class Mode : int { Fast, Slow };
typedef enum { Low, High } level_t;
enum Color paint;
`
	tags, _ := parseString(t, content, LanguageCPlusPlus)

	color := mustFindTag(t, tags, "Color", tag.KindEnum)
	if color.End != 1 {
		t.Errorf("End = %d", color.End)
	}
	for _, name := range []string{"Red", "Green", "Blue"} {
		e := mustFindTag(t, tags, name, tag.KindEnumerator)
		if e.Scope != "Color" || e.ScopeKind != tag.KindEnum {
			t.Errorf("%s scope = %q (%s)", name, e.Scope, e.ScopeKind)
		}
	}

	mode := mustFindTag(t, tags, "Mode", tag.KindEnum)
	if !mode.Properties.Has(tag.PropScopedEnum) {
		t.Errorf("Properties = %q", mode.Properties)
	}
	if mode.TypeRef.String() != "typename:int" {
		t.Errorf("TypeRef = %q", mode.TypeRef)
	}

	level := mustFindTag(t, tags, "level_t", tag.KindTypedef)
	if !strings.HasPrefix(level.TypeRef.Name, "__anon") || level.TypeRef.Kind != "enum" {
		t.Errorf("TypeRef = %q", level.TypeRef)
	}
	mustFindTag(t, tags, "High", tag.KindEnumerator)

	paint := mustFindTag(t, tags, "paint", tag.KindVariable)
	if paint.TypeRef.String() != "enum:Color" {
		t.Errorf("TypeRef = %q", paint.TypeRef)
	}
}

func TestParseNamespaces(t *testing.T) {
	content := `namespace A::B {
int x;
}
namespace {
void hidden();
}
inline namespace v1 { }
namespace fs = std::filesystem;
`
	tags, _ := parseString(t, content, LanguageCPlusPlus)

	mustFindTag(t, tags, "A", tag.KindNamespace)
	b := mustFindTag(t, tags, "B", tag.KindNamespace)
	if b.Scope != "A" {
		t.Errorf("B scope = %q", b.Scope)
	}
	x := mustFindTag(t, tags, "x", tag.KindVariable)
	if x.Scope != "A::B" || x.ScopeKind != tag.KindNamespace {
		t.Errorf("x scope = %q (%s)", x.Scope, x.ScopeKind)
	}

	hidden := mustFindTag(t, tags, "hidden", tag.KindPrototype)
	if !strings.HasPrefix(hidden.Scope, "__anon") {
		t.Errorf("hidden scope = %q", hidden.Scope)
	}

	v1 := mustFindTag(t, tags, "v1", tag.KindNamespace)
	if !v1.Properties.Has(tag.PropInline) {
		t.Errorf("Properties = %q", v1.Properties)
	}

	alias := mustFindTag(t, tags, "fs", tag.KindAlias)
	if alias.TypeRef.String() != "namespace:std::filesystem" {
		t.Errorf("TypeRef = %q", alias.TypeRef)
	}
}

func TestParseUsing(t *testing.T) {
	content := `using namespace std;
template <typename T> using Vec = std::vector<T>;
using Base::method;
`
	tags, _ := parseString(t, content, LanguageCPlusPlus)

	vec := mustFindTag(t, tags, "Vec", tag.KindTypedef)
	if vec.Template != "<typename T>" {
		t.Errorf("Template = %q", vec.Template)
	}
	using := mustFindTag(t, tags, "method", tag.KindUsing)
	if using.TypeRef.String() != "typename:Base::method" {
		t.Errorf("TypeRef = %q", using.TypeRef)
	}
	if findTag(tags, "std", tag.KindNamespace) != nil {
		t.Error("using namespace reported a namespace")
	}
}

func TestParseTypedefs(t *testing.T) {
	content := `typedef unsigned int uint;
typedef int (*callback)(int);
typedef struct { int x; } point_t;
typedef struct node node_t;
`
	tags, _ := parseString(t, content, LanguageC)

	uint := mustFindTag(t, tags, "uint", tag.KindTypedef)
	if uint.TypeRef.String() != "typename:unsigned int" {
		t.Errorf("TypeRef = %q", uint.TypeRef)
	}
	cb := mustFindTag(t, tags, "callback", tag.KindTypedef)
	if cb.TypeRef.Name != "int(*)(int)" {
		t.Errorf("TypeRef = %q", cb.TypeRef)
	}
	point := mustFindTag(t, tags, "point_t", tag.KindTypedef)
	if point.TypeRef.Kind != "struct" {
		t.Errorf("TypeRef = %q", point.TypeRef)
	}
	x := mustFindTag(t, tags, "x", tag.KindMember)
	if x.Scope != point.TypeRef.Name {
		t.Errorf("x scope = %q, want %q", x.Scope, point.TypeRef.Name)
	}
	node := mustFindTag(t, tags, "node_t", tag.KindTypedef)
	if node.TypeRef.String() != "struct:node" {
		t.Errorf("TypeRef = %q", node.TypeRef)
	}
}

func TestParseVariables(t *testing.T) {
	content := `int a, *b, c[4];
static int counter = 3;
extern int shared;
int (*handler)(int);
struct point origin = { 0, 0 };
`
	tags, _ := parseString(t, content, LanguageC)

	tests := []struct {
		name      string
		kind      tag.Kind
		typeRef   string
		fileScope bool
	}{
		{"a", tag.KindVariable, "typename:int", false},
		{"b", tag.KindVariable, "typename:int *", false},
		{"c", tag.KindVariable, "typename:int[4]", false},
		{"counter", tag.KindVariable, "typename:int", true},
		{"shared", tag.KindExternVar, "typename:int", false},
		{"handler", tag.KindVariable, "typename:int(*)(int)", false},
		{"origin", tag.KindVariable, "struct:point", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := mustFindTag(t, tags, tt.name, tt.kind)
			if tg.TypeRef.String() != tt.typeRef {
				t.Errorf("TypeRef = %q, want %q", tg.TypeRef, tt.typeRef)
			}
			if tg.FileScope != tt.fileScope {
				t.Errorf("FileScope = %v, want %v", tg.FileScope, tt.fileScope)
			}
		})
	}
}

func TestParseFunctionBodies(t *testing.T) {
	content := `void run() {
    std::vector<int> items(10);
    std::sort(items.begin(), items.end());
    auto twice = [](int z) { return z * 2; };
    for (int i = 0; i < 3; i++) {
        int inner = twice(i);
    }
}
`
	tags, res := parseString(t, content, LanguageCPlusPlus)
	if res.Failed {
		t.Fatalf("Unexpected failure: %+v", res)
	}

	mustFindTag(t, tags, "items", tag.KindLocal)
	mustFindTag(t, tags, "twice", tag.KindLocal)
	mustFindTag(t, tags, "inner", tag.KindLocal)
	if findTag(tags, "sort", tag.KindPrototype) != nil {
		t.Error("Call reported as prototype")
	}
	z := mustFindTag(t, tags, "z", tag.KindParameter)
	if !strings.HasPrefix(z.Scope, "run::__anon") {
		t.Errorf("Lambda parameter scope = %q", z.Scope)
	}
}

func TestParseOperators(t *testing.T) {
	content := `struct V {
    bool operator==(const V &o) const;
    V operator+(const V &o) const;
    int operator()(int i);
    operator bool() const;
};
`
	tags, _ := parseString(t, content, LanguageCPlusPlus)
	for _, name := range []string{"operator ==", "operator +", "operator ()", "operator bool"} {
		mustFindTag(t, tags, name, tag.KindPrototype)
	}
}

func TestParseStrayClosingBracketRescans(t *testing.T) {
	content := `int before;
}
int after;
`
	tags, res := parseString(t, content, LanguageC)
	if !res.Rescanned || res.Passes != 2 {
		t.Errorf("Expected a rescan, got %+v", res)
	}
	mustFindTag(t, tags, "before", tag.KindVariable)
	if n := len(tags); n > 2 {
		t.Errorf("Records of the failed pass were kept: %d records", n)
	}
}

func TestParseWithoutRewinder(t *testing.T) {
	var got []string
	sink := &recordingSink{fn: func(tg *tag.Tag) { got = append(got, tg.Name) }}
	res := Parse(source.New("t.c", []byte("int x;\n}\n")), sink, Options{Language: LanguageC})
	if res.Passes != 1 || !res.Failed {
		t.Errorf("Expected a single failed pass, got %+v", res)
	}
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("Records = %v", got)
	}
}

// recordingSink is a tag.Sink that cannot rewind
type recordingSink struct {
	fn func(*tag.Tag)
	n  int
}

func (s *recordingSink) Begin(kind tag.Kind, name string, pos tag.Position) *tag.Tag {
	return &tag.Tag{Kind: kind, Name: name, Position: pos}
}

func (s *recordingSink) Commit(t *tag.Tag) int {
	s.fn(t)
	s.n++
	return s.n
}

func (s *recordingSink) Lookup(index int) *tag.Tag {
	return nil
}

func TestLooksLikeCall(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		className string
		keywords  bool
		want      bool
	}{
		{"plain call", "foo(a, b);", "", false, true},
		{"typed prototype", "int foo(int a);", "", false, false},
		{"constructor", "Foo(int a);", "Foo", false, false},
		{"destructor", "~Foo();", "Foo", false, false},
		{"other class", "Bar(int a);", "Foo", false, true},
		{"qualified", "ns::foo(a);", "", false, false},
		{"declaration keywords", "foo(a);", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(tt.statement, LanguageCPlusPlus)
			if !p.parseUpToOneOf(TokenSemicolon | TokenEOF) {
				t.Fatal("parseUpToOneOf failed")
			}
			var info signatureInfo
			if !p.lookForFunctionSignature(p.chain, &info, nil) {
				t.Fatalf("No signature found in %q", tt.statement)
			}
			if got := looksLikeCall(&info, tt.className, tt.keywords); got != tt.want {
				t.Errorf("looksLikeCall() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLooksLikeFunctionParameterList(t *testing.T) {
	tests := []struct {
		list string
		cpp  bool
		want bool
	}{
		{"()", false, true},
		{"(void)", false, true},
		{"(int a, char *b)", false, true},
		{"(int a, ...)", false, true},
		{"(int (*cb)(int))", false, true},
		{"(a + b)", false, false},
		{"(1, 2)", false, false},
		{`("x")`, false, false},
		{"(const std::vector<int> &v)", true, true},
		{"(int a = 5)", true, true},
		{"(int a = 5)", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.list, func(t *testing.T) {
			lang := LanguageC
			if tt.cpp {
				lang = LanguageCPlusPlus
			}
			p := newTestParser("f"+tt.list+";", lang)
			if !p.parseUpToOneOf(TokenSemicolon | TokenEOF) {
				t.Fatal("parseUpToOneOf failed")
			}
			paren := p.chain.FirstOfType(TokenParenthesisChain)
			if paren == nil {
				t.Fatal("No parenthesis chain")
			}
			if got := looksLikeFunctionParameterList(paren, tt.cpp, nil); got != tt.want {
				t.Errorf("looksLikeFunctionParameterList(%s) = %v, want %v", tt.list, got, tt.want)
			}
		})
	}
}
