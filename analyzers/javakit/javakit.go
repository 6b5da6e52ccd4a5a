// Package javakit is the shared tree-sitter Java walker the REST, ORM, and
// Messaging analyzer families use to find annotated classes and methods
// (spec §4.5 tier 1 for Java). It is grounded directly on
// inspector/java/inspector.go (parser setup) and
// inspector/java/documentation.go (annotation extraction off the
// "modifiers" child).
package javakit

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Annotation is one parsed Java annotation, e.g. @GetMapping("/orders/{id}").
type Annotation struct {
	Name string   // "GetMapping"
	Args []string // unquoted string-literal arguments, in source order
}

// Method is a method declaration along with its annotations.
type Method struct {
	Name        string
	Annotations []Annotation
	Line        int
	Body        string // full source text of the method, for callers that need to regex-scan call expressions
}

// Field is a field declaration along with its annotations.
type Field struct {
	Name        string
	Type        string
	Annotations []Annotation
	Line        int
}

// Class is a class (or interface) declaration along with its annotations,
// fields, and methods.
type Class struct {
	Name        string
	Annotations []Annotation
	Fields      []Field
	Methods     []Method
	Line        int
}

// Parse parses Java source and returns every top-level-or-nested class
// declaration with its annotations and methods.
func Parse(src []byte) ([]Class, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("javakit: parse: %w", err)
	}

	var classes []Class
	walk(tree.RootNode(), src, &classes)
	return classes, nil
}

func walk(node *sitter.Node, src []byte, out *[]Class) {
	if node == nil {
		return
	}
	if node.Type() == "class_declaration" || node.Type() == "interface_declaration" {
		if c, ok := parseClass(node, src); ok {
			*out = append(*out, c)
		}
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(node.NamedChild(i), src, out)
	}
}

func parseClass(node *sitter.Node, src []byte) (Class, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Class{}, false
	}

	class := Class{
		Name:        nameNode.Content(src),
		Annotations: annotationsOf(node, src),
		Line:        int(node.StartPoint().Row) + 1,
	}

	bodyNode := node.ChildByFieldName("body")
	if bodyNode != nil {
		for i := 0; i < int(bodyNode.NamedChildCount()); i++ {
			child := bodyNode.NamedChild(i)
			switch child.Type() {
			case "method_declaration":
				methodNameNode := child.ChildByFieldName("name")
				if methodNameNode == nil {
					continue
				}
				class.Methods = append(class.Methods, Method{
					Name:        methodNameNode.Content(src),
					Annotations: annotationsOf(child, src),
					Line:        int(child.StartPoint().Row) + 1,
					Body:        child.Content(src),
				})
			case "field_declaration":
				if f, ok := parseField(child, src); ok {
					class.Fields = append(class.Fields, f)
				}
			}
		}
	}

	return class, true
}

// parseField extracts one field's type and name off its "type"/"declarator"
// children, grounded on inspector/java/declaration.go's
// parseFieldDeclaration (ChildByFieldName("type"), then
// ChildByFieldName("declarator").ChildByFieldName("name")).
func parseField(node *sitter.Node, src []byte) (Field, bool) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return Field{}, false
	}
	declaratorNode := node.ChildByFieldName("declarator")
	if declaratorNode == nil {
		return Field{}, false
	}
	nameNode := declaratorNode.ChildByFieldName("name")
	if nameNode == nil {
		return Field{}, false
	}
	return Field{
		Name:        nameNode.Content(src),
		Type:        typeNode.Content(src),
		Annotations: annotationsOf(node, src),
		Line:        int(node.StartPoint().Row) + 1,
	}, true
}

// annotationsOf reads the "modifiers" child of node (a class or method
// declaration) and parses every marker_annotation/annotation into an
// Annotation, the same child-of-modifiers walk documentation.go uses to
// harvest annotation text for doc comments.
func annotationsOf(node *sitter.Node, src []byte) []Annotation {
	if node.NamedChildCount() == 0 {
		return nil
	}
	first := node.NamedChild(0)
	if first == nil || first.Type() != "modifiers" {
		return nil
	}

	var annotations []Annotation
	for i := 0; i < int(first.NamedChildCount()); i++ {
		modifier := first.NamedChild(i)
		if modifier.Type() != "marker_annotation" && modifier.Type() != "annotation" {
			continue
		}
		annotations = append(annotations, parseAnnotation(modifier, src))
	}
	return annotations
}

// parseAnnotation reads an annotation's raw source text (the same
// modifier.Content(source) documentation.go uses for doc extraction) and
// pulls out its name and any quoted string arguments by regex. A tree-level
// walk of the argument list's field names is deliberately avoided here: the
// grammar's exact shape for annotation arguments isn't exercised anywhere
// else in the teacher, so going through the already-proven Content() text
// and a conservative regex is the lower-risk way to recover @GetMapping("/
// orders/{id}")-style path values.
func parseAnnotation(node *sitter.Node, src []byte) Annotation {
	text := node.Content(src)
	name := text
	if idx := strings.IndexAny(text, "(\n "); idx >= 0 {
		name = text[:idx]
	}
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")

	ann := Annotation{Name: name}
	for _, match := range annotationStringArg.FindAllStringSubmatch(text, -1) {
		ann.Args = append(ann.Args, match[1])
	}
	return ann
}

var annotationStringArg = regexp.MustCompile(`"([^"]*)"`)

// HasAnnotation reports whether annotations contains one named name.
func HasAnnotation(annotations []Annotation, name string) bool {
	for _, a := range annotations {
		if a.Name == name {
			return true
		}
	}
	return false
}

// FindAnnotation returns the first annotation named name, if any.
func FindAnnotation(annotations []Annotation, name string) (Annotation, bool) {
	for _, a := range annotations {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}
