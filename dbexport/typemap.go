package dbexport

import "strings"

// TargetType is the type-system primitive a column maps to.
type TargetType int

const (
	Unknown TargetType = iota
	Number
	String
	DateTime
	Boolean
)

func (t TargetType) String() string {
	switch t {
	case Number:
		return "Number"
	case String:
		return "String"
	case DateTime:
		return "DateTime"
	case Boolean:
		return "Boolean"
	default:
		return "Unknown"
	}
}

// TypeScript returns the TypeScript spelling of t.
func (t TargetType) TypeScript() string {
	switch t {
	case Number:
		return "number"
	case String:
		return "string"
	case DateTime:
		return "Date"
	case Boolean:
		return "boolean"
	default:
		return "any"
	}
}

type typeRule struct {
	prefixes []string
	target   TargetType
}

// typeRules are evaluated in order and the first match wins. tinyint(1) is
// MySQL's boolean and must come before any integer rule.
var typeRules = []typeRule{
	{prefixes: []string{"tinyint(1)"}, target: Boolean},
	{prefixes: []string{"int", "decimal", "float", "double"}, target: Number},
	{prefixes: []string{"varchar", "text", "char"}, target: String},
	{prefixes: []string{"date", "timestamp"}, target: DateTime},
}

// MapType maps a raw MySQL column type such as "varchar(255)" or
// "int unsigned" to a TargetType. Unrecognised types map to Unknown.
func MapType(raw string) TargetType {
	t := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range typeRules {
		for _, p := range rule.prefixes {
			if strings.HasPrefix(t, p) {
				return rule.target
			}
		}
	}
	return Unknown
}
