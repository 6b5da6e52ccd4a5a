// Package pykit is the shared tree-sitter Python walker the REST, ORM, and
// Messaging analyzer families use to find decorated functions and classes
// (spec §4.5 tier 1 for Python). Parser setup and the class/function walk
// are grounded on theRebelliousNerd-codenerd's PythonCodeParser
// (internal/world/python_parser.go): "class_definition"/"function_
// definition"/"decorated_definition" node types, "name"/"body" fields.
// Decorator extraction follows that same file's extractDecorators, which
// reads decorator lines as raw "@name(args)" text rather than walking a
// "decorator" node's child fields.
package pykit

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Decorator is one parsed Python decorator, e.g. @app.get("/orders/{id}").
type Decorator struct {
	Name string   // "app.get"
	Args []string // unquoted string-literal arguments, in source order
}

// Def is a decorated function or class definition.
type Def struct {
	Name       string
	IsClass    bool
	Decorators []Decorator
	Line       int
	Body       string // full source text of the definition, decorators included
}

// Parse parses Python source and returns every top-level-or-nested function
// and class definition along with its decorators.
func Parse(src []byte) ([]Def, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("pykit: parse: %w", err)
	}

	var defs []Def
	walk(tree.RootNode(), src, &defs)
	return defs, nil
}

func walk(node *sitter.Node, src []byte, out *[]Def) {
	if node == nil {
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "class_definition":
			if d, ok := parseDef(child, nil, src, true); ok {
				*out = append(*out, d)
				recurseBody(child, src, out)
			}
		case "function_definition":
			if d, ok := parseDef(child, nil, src, false); ok {
				*out = append(*out, d)
			}
		case "decorated_definition":
			inner := innermostDef(child)
			if inner == nil {
				continue
			}
			isClass := inner.Type() == "class_definition"
			if d, ok := parseDef(inner, child, src, isClass); ok {
				*out = append(*out, d)
				if isClass {
					recurseBody(inner, src, out)
				}
			}
		default:
			walk(child, src, out)
		}
	}
}

func recurseBody(classNode *sitter.Node, src []byte, out *[]Def) {
	body := classNode.ChildByFieldName("body")
	if body != nil {
		walk(body, src, out)
	}
}

// innermostDef returns the function_definition or class_definition wrapped
// by a decorated_definition node.
func innermostDef(decorated *sitter.Node) *sitter.Node {
	for i := 0; i < int(decorated.NamedChildCount()); i++ {
		child := decorated.NamedChild(i)
		if child.Type() == "function_definition" || child.Type() == "class_definition" {
			return child
		}
	}
	return nil
}

func parseDef(node, decorated *sitter.Node, src []byte, isClass bool) (Def, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Def{}, false
	}

	startLine := int(node.StartPoint().Row) + 1
	outer := node
	if decorated != nil {
		startLine = int(decorated.StartPoint().Row) + 1
		outer = decorated
	}

	return Def{
		Name:       nameNode.Content(src),
		IsClass:    isClass,
		Decorators: decoratorsOf(outer.Content(src)),
		Line:       startLine,
		Body:       outer.Content(src),
	}, true
}

// decoratorsOf scans a definition's raw source text for every "@name(...)"
// line, not only the leading ones, so a class also picks up the decorators
// of methods in its body. This is the same line-prefix scan codenerd's
// extractDecorators uses,
// extended to capture quoted string arguments the way javakit does for Java
// annotations.
func decoratorsOf(body string) []Decorator {
	var decorators []Decorator
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "@") {
			continue
		}
		name := strings.TrimPrefix(trimmed, "@")
		if idx := strings.IndexAny(name, "( "); idx >= 0 {
			name = name[:idx]
		}
		if name == "" {
			continue
		}
		dec := Decorator{Name: name}
		for _, match := range decoratorStringArg.FindAllStringSubmatch(trimmed, -1) {
			if match[1] != "" || strings.HasPrefix(match[0], `"`) {
				dec.Args = append(dec.Args, match[1])
			} else {
				dec.Args = append(dec.Args, match[2])
			}
		}
		decorators = append(decorators, dec)
	}
	return decorators
}

var decoratorStringArg = regexp.MustCompile(`"([^"]*)"|'([^']*)'`)

// HasDecorator reports whether decorators contains one whose Name equals or
// ends with ".name" (so both @app.get and a bare @get match "get").
func HasDecorator(decorators []Decorator, name string) bool {
	_, ok := FindDecorator(decorators, name)
	return ok
}

// FindDecorator returns the first decorator whose Name equals or ends with
// ".name", if any.
func FindDecorator(decorators []Decorator, name string) (Decorator, bool) {
	for _, d := range decorators {
		if d.Name == name || strings.HasSuffix(d.Name, "."+name) {
			return d, true
		}
	}
	return Decorator{}, false
}
