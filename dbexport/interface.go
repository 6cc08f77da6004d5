package dbexport

import "strings"

// Field is one line of a type declaration.
type Field struct {
	Name     string
	Type     TargetType
	Optional bool
}

// TypeDeclaration describes the shape of one table. It depends only on the
// table's columns, never on its rows.
type TypeDeclaration struct {
	TableName string
	Fields    []Field
}

// NewTypeDeclaration builds the declaration for table, keeping column order.
func NewTypeDeclaration(table string, columns []ColumnDescriptor) TypeDeclaration {
	fields := make([]Field, len(columns))
	for i, c := range columns {
		fields[i] = Field{Name: c.Name, Type: MapType(c.RawType), Optional: c.Nullable}
	}
	return TypeDeclaration{TableName: table, Fields: fields}
}

// TypeScript renders d as an exported TypeScript interface.
func (d TypeDeclaration) TypeScript() string {
	lines := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		optional := ""
		if f.Optional {
			optional = "?"
		}
		lines[i] = "  " + f.Name + optional + ": " + f.Type.TypeScript() + ";"
	}
	return "export interface " + Capitalize(d.TableName) + " {\n" + strings.Join(lines, "\n") + "\n}"
}

// Synthesize renders the TypeScript interface for a table's columns.
func Synthesize(table string, columns []ColumnDescriptor) string {
	return NewTypeDeclaration(table, columns).TypeScript()
}

// RenderTypeScript joins the declarations into one document, one blank line
// between blocks.
func RenderTypeScript(decls []TypeDeclaration) string {
	blocks := make([]string, len(decls))
	for i, d := range decls {
		blocks[i] = d.TypeScript()
	}
	return strings.Join(blocks, "\n\n")
}

// Capitalize upper-cases the first byte of s when it is an ASCII lower-case
// letter and leaves everything else untouched.
func Capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
