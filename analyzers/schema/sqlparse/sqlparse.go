// Package sqlparse is a small hand-rolled recursive-descent parser for the
// CREATE TABLE subset of SQL DDL. It intentionally covers only the shapes a
// migration file typically contains (column list, inline and table-level
// PRIMARY KEY, NOT NULL) rather than a full SQL grammar: the sql-ddl
// analyzer only needs table/column/primary-key facts, and a tree-sitter SQL
// grammar was deliberately dropped from this module's dependency set (see
// DESIGN.md) in favor of this narrowly-scoped parser.
package sqlparse

import (
	"strings"
)

// Column is one column of a parsed table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
}

// Table is one parsed CREATE TABLE statement.
type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey string
}

// Parse splits src into statements and parses every CREATE TABLE among
// them. Statements this parser does not recognize (ALTER TABLE, CREATE
// INDEX, INSERT, ...) are silently skipped. The sql-ddl analyzer treats a
// successful Parse as its tier-1 result and stamps it HIGH confidence.
func Parse(src string) []Table {
	var tables []Table
	for _, stmt := range splitStatements(src) {
		if table, ok := parseCreateTable(stmt); ok {
			tables = append(tables, table)
		}
	}
	return tables
}

// splitStatements splits src on top-level semicolons, ignoring semicolons
// that appear inside single-quoted strings or nested parentheses.
func splitStatements(src string) []string {
	var stmts []string
	var buf strings.Builder
	depth := 0
	inString := false

	for _, r := range src {
		switch {
		case r == '\'' && !inString:
			inString = true
		case r == '\'' && inString:
			inString = false
		case !inString && r == '(':
			depth++
		case !inString && r == ')':
			depth--
		}

		if r == ';' && depth == 0 && !inString {
			stmts = append(stmts, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteRune(r)
	}
	if strings.TrimSpace(buf.String()) != "" {
		stmts = append(stmts, buf.String())
	}
	return stmts
}

func parseCreateTable(stmt string) (Table, bool) {
	stmt = strings.TrimSpace(stmt)
	fields := strings.Fields(stmt)
	if len(fields) < 3 || !strings.EqualFold(fields[0], "CREATE") || !strings.EqualFold(fields[1], "TABLE") {
		return Table{}, false
	}

	open := strings.Index(stmt, "(")
	if open < 0 {
		return Table{}, false
	}
	closeIdx := lastTopLevelParen(stmt, open)
	if closeIdx < 0 {
		return Table{}, false
	}

	nameSection := stmt[len("CREATE TABLE"):open]
	name := strings.TrimSpace(nameSection)
	if idx := strings.Index(strings.ToUpper(name), "IF NOT EXISTS"); idx >= 0 {
		name = strings.TrimSpace(name[idx+len("IF NOT EXISTS"):])
	}
	name = unquoteIdent(name)

	table := Table{Name: name}
	for _, part := range splitTopLevelCommas(stmt[open+1 : closeIdx]) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		upper := strings.ToUpper(part)
		if strings.HasPrefix(upper, "PRIMARY KEY") {
			table.PrimaryKey = firstParenToken(part)
			continue
		}
		if strings.HasPrefix(upper, "CONSTRAINT") || strings.HasPrefix(upper, "FOREIGN KEY") ||
			strings.HasPrefix(upper, "UNIQUE") || strings.HasPrefix(upper, "CHECK") {
			continue
		}
		col, ok := parseColumn(part)
		if !ok {
			continue
		}
		table.Columns = append(table.Columns, col)
		if strings.Contains(upper, "PRIMARY KEY") {
			table.PrimaryKey = col.Name
		}
	}

	return table, true
}

func parseColumn(def string) (Column, bool) {
	tokens := strings.Fields(def)
	if len(tokens) < 2 {
		return Column{}, false
	}
	col := Column{
		Name:     unquoteIdent(tokens[0]),
		Type:     tokens[1],
		Nullable: true,
	}
	upper := strings.ToUpper(def)
	if strings.Contains(upper, "NOT NULL") {
		col.Nullable = false
	}
	return col, true
}

func unquoteIdent(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"`[]")
	return s
}

// lastTopLevelParen returns the index of the ')' matching the '(' at open.
func lastTopLevelParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevelCommas splits s on commas that are not nested inside
// parentheses (so "NUMERIC(10,2)" stays one token).
func splitTopLevelCommas(s string) []string {
	var parts []string
	var buf strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if r == ',' && depth == 0 {
			parts = append(parts, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteRune(r)
	}
	parts = append(parts, buf.String())
	return parts
}

// firstParenToken returns the first identifier inside def's first
// parenthesized group, e.g. "PRIMARY KEY (id)" -> "id".
func firstParenToken(def string) string {
	open := strings.Index(def, "(")
	closeIdx := strings.Index(def, ")")
	if open < 0 || closeIdx < 0 || closeIdx <= open {
		return ""
	}
	inner := strings.Split(def[open+1:closeIdx], ",")
	if len(inner) == 0 {
		return ""
	}
	return unquoteIdent(strings.TrimSpace(inner[0]))
}
