// Package graphqlparse is a small hand-rolled recursive-descent parser for
// GraphQL SDL type definitions. Like analyzers/schema/sqlparse, it exists
// because a tree-sitter GraphQL grammar was deliberately dropped from this
// module's dependency set (see DESIGN.md): it covers `type`/`input`/`enum`
// blocks and the root `Query`/`Mutation`/`Subscription` operation fields,
// which is everything the graphql-schema analyzer needs.
package graphqlparse

import (
	"strings"
)

// FieldKind classifies how a Field's Type should be read.
type FieldKind string

const (
	KindScalar FieldKind = "scalar"
	KindList   FieldKind = "list"
)

// Field is one field of a Definition.
type Field struct {
	Name     string
	Type     string // the named type, brackets/"!" stripped
	Kind     FieldKind
	Nullable bool
	Args     []Field // input arguments, for operation fields
}

// DefinitionKind enumerates the SDL block kinds this parser recognizes.
type DefinitionKind string

const (
	DefType  DefinitionKind = "type"
	DefInput DefinitionKind = "input"
	DefEnum  DefinitionKind = "enum"
)

// Definition is one parsed `type`/`input`/`enum` block.
type Definition struct {
	Kind   DefinitionKind
	Name   string
	Fields []Field
}

// Parse scans src for type/input/enum blocks and returns one Definition per
// block found. Unrecognized top-level constructs (directives, schema{},
// scalar declarations, interface/union) are skipped.
func Parse(src string) []Definition {
	var defs []Definition
	tokens := tokenize(src)
	i := 0
	for i < len(tokens) {
		kind, ok := definitionKind(tokens[i])
		if !ok {
			i++
			continue
		}
		def, next := parseDefinition(tokens, i, kind)
		defs = append(defs, def)
		i = next
	}
	return defs
}

func definitionKind(tok string) (DefinitionKind, bool) {
	switch tok {
	case "type":
		return DefType, true
	case "input":
		return DefInput, true
	case "enum":
		return DefEnum, true
	default:
		return "", false
	}
}

// tokenize splits src into identifier/punctuation tokens, treating
// "{", "}", "(", ")", ":", "!", "[", "]" as their own tokens and skipping
// "#" line comments.
func tokenize(src string) []string {
	var tokens []string
	var buf strings.Builder
	inComment := false
	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
		}
	}
	for _, r := range src {
		if inComment {
			if r == '\n' {
				inComment = false
			}
			continue
		}
		switch {
		case r == '#':
			flush()
			inComment = true
		case strings.ContainsRune("{}():![]", r):
			flush()
			tokens = append(tokens, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ',':
			flush()
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func parseDefinition(tokens []string, i int, kind DefinitionKind) (Definition, int) {
	def := Definition{Kind: kind}
	i++ // skip "type"/"input"/"enum"
	if i < len(tokens) {
		def.Name = tokens[i]
		i++
	}
	// skip "implements Foo & Bar" and directives up to the opening brace
	for i < len(tokens) && tokens[i] != "{" {
		i++
	}
	if i >= len(tokens) {
		return def, i
	}
	i++ // skip "{"

	depth := 1
	for i < len(tokens) && depth > 0 {
		if tokens[i] == "{" {
			depth++
			i++
			continue
		}
		if tokens[i] == "}" {
			depth--
			i++
			continue
		}
		if depth == 1 && kind == DefEnum {
			def.Fields = append(def.Fields, Field{Name: tokens[i]})
			i++
			continue
		}
		if depth == 1 {
			field, next := parseField(tokens, i)
			if field.Name != "" {
				def.Fields = append(def.Fields, field)
			}
			i = next
			continue
		}
		i++
	}
	return def, i
}

// parseField parses one "name(args): Type!" or "name: Type" field starting
// at tokens[i], returning the field and the index just past it.
func parseField(tokens []string, i int) (Field, int) {
	if i >= len(tokens) {
		return Field{}, i
	}
	field := Field{Name: tokens[i]}
	i++

	if i < len(tokens) && tokens[i] == "(" {
		depth := 1
		i++
		var argTokens []string
		for i < len(tokens) && depth > 0 {
			if tokens[i] == "(" {
				depth++
			} else if tokens[i] == ")" {
				depth--
				if depth == 0 {
					i++
					break
				}
			}
			argTokens = append(argTokens, tokens[i])
			i++
		}
		field.Args = parseArgList(argTokens)
	}

	if i < len(tokens) && tokens[i] == ":" {
		i++
		typeName, nullable, fieldKind, next := parseType(tokens, i)
		field.Type = typeName
		field.Nullable = nullable
		field.Kind = fieldKind
		i = next
	}

	return field, i
}

// parseArgList parses a flat "name: Type, name2: Type2" argument list
// (default values are skipped; this parser only needs name/type pairs).
func parseArgList(tokens []string) []Field {
	var args []Field
	i := 0
	for i < len(tokens) {
		if tokens[i] == "=" {
			i++
			continue
		}
		field, next := parseField(tokens, i)
		if field.Name != "" && field.Name != "=" {
			args = append(args, field)
		}
		if next <= i {
			i++
		} else {
			i = next
		}
	}
	return args
}

func parseType(tokens []string, i int) (name string, nullable bool, kind FieldKind, next int) {
	nullable = true
	kind = KindScalar
	if i < len(tokens) && tokens[i] == "[" {
		kind = KindList
		i++
		if i < len(tokens) {
			name = tokens[i]
			i++
		}
		if i < len(tokens) && tokens[i] == "!" {
			i++ // inner non-null, element nullability not tracked separately
		}
		if i < len(tokens) && tokens[i] == "]" {
			i++
		}
	} else if i < len(tokens) {
		name = tokens[i]
		i++
	}
	if i < len(tokens) && tokens[i] == "!" {
		nullable = false
		i++
	}
	return name, nullable, kind, i
}
