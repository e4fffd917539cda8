//go:build treesitter && cgo

package crosscheck

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Available reports whether Oracle is backed by tree-sitter.
const Available = true

// Oracle parses content with the C or C++ tree-sitter grammar and returns
// the function and type definitions it contains.
func Oracle(ctx context.Context, content []byte, cplusplus bool) ([]Symbol, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	if cplusplus {
		parser.SetLanguage(cpp.GetLanguage())
	} else {
		parser.SetLanguage(c.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	var out []Symbol
	walk(tree.RootNode(), content, &out)
	return out, nil
}

func walk(node *sitter.Node, content []byte, out *[]Symbol) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "function_definition":
		if name := declaredName(node.ChildByFieldName("declarator")); name != nil {
			*out = append(*out, Symbol{
				Group: GroupFunction,
				Name:  normalizeName(name.Content(content)),
				Line:  int(name.StartPoint().Row) + 1,
			})
		}
	case "class_specifier", "struct_specifier", "union_specifier":
		if node.ChildByFieldName("body") != nil {
			if name := typeName(node.ChildByFieldName("name")); name != nil {
				*out = append(*out, Symbol{
					Group: GroupType,
					Name:  name.Content(content),
					Line:  int(name.StartPoint().Row) + 1,
				})
			}
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(node.NamedChild(i), content, out)
	}
}

// declaredName descends a declarator to the node holding the plain name
func declaredName(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case "identifier", "field_identifier", "destructor_name", "operator_name":
			return node
		case "qualified_identifier":
			node = node.ChildByFieldName("name")
		case "function_declarator", "pointer_declarator", "reference_declarator", "parenthesized_declarator":
			next := node.ChildByFieldName("declarator")
			if next == nil && node.NamedChildCount() > 0 {
				next = node.NamedChild(0)
			}
			node = next
		case "template_function":
			node = node.ChildByFieldName("name")
		default:
			return nil
		}
	}
	return nil
}

// typeName strips qualifiers and template arguments from a type name
func typeName(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case "type_identifier":
			return node
		case "qualified_identifier", "template_type":
			node = node.ChildByFieldName("name")
		default:
			return nil
		}
	}
	return nil
}
