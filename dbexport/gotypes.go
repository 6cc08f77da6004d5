package dbexport

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
)

// GoTypes renders one Go struct per declaration into a source file of
// package pkg. Nullable columns become pointers and every field carries a
// json tag with the column name, so the structs decode database_export.json.
func GoTypes(pkg string, decls []TypeDeclaration) ([]byte, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by sqltojson. DO NOT EDIT.")

	typeNames := map[string]int{}
	for _, d := range decls {
		used := map[string]int{}
		fields := make([]jen.Code, len(d.Fields))
		for i, fld := range d.Fields {
			fields[i] = jen.Id(unique(used, GoName(fld.Name))).
				Add(goType(fld.Type, fld.Optional)).
				Tag(map[string]string{"json": fld.Name})
		}
		name := unique(typeNames, GoName(d.TableName))
		f.Commentf("%s mirrors table %s.", name, d.TableName)
		f.Type().Id(name).Struct(fields...)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render go types: %w", err)
	}
	return buf.Bytes(), nil
}

func goType(t TargetType, optional bool) *jen.Statement {
	var s *jen.Statement
	switch t {
	case Number:
		s = jen.Float64()
	case String:
		s = jen.String()
	case DateTime:
		s = jen.Qual("time", "Time")
	case Boolean:
		s = jen.Bool()
	default:
		return jen.Interface()
	}
	if optional {
		return jen.Op("*").Add(s)
	}
	return s
}

var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uuid": "UUID",
	"api":  "API",
	"ip":   "IP",
	"json": "JSON",
}

// GoName converts a column or table name such as "created_at" into an
// exported Go identifier ("CreatedAt").
func GoName(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, p := range parts {
		if up, ok := initialisms[strings.ToLower(p)]; ok {
			b.WriteString(up)
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	name := b.String()
	if name == "" {
		return "Field"
	}
	if r := []rune(name)[0]; !unicode.IsLetter(r) || !unicode.IsUpper(r) {
		name = "X" + name
	}
	return name
}

// unique appends a numeric suffix when name was already handed out.
func unique(seen map[string]int, name string) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	return name + strconv.Itoa(n+1)
}
