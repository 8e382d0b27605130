package gen

import "strings"

// goKeywords are the identifiers Go reserves; spec §4.D.1 prefixes a
// colliding identifier with `_cxx_` for the C++ binding. This
// reinterpretation prefixes with `_go_` instead, so a generated member or
// type name that happens to collide with a Go keyword still compiles.
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

// SanitizeIdentifier prefixes name with "_go_" if it collides with a Go
// reserved word, leaving every other identifier untouched.
func SanitizeIdentifier(name string) string {
	if goKeywords[name] {
		return "_go_" + name
	}
	return name
}

// GoTypeName maps a fully-scoped IDL name ("A::B::C") to a Go identifier
// ("A_B_C"), keeping each part's case, so it is exported only when the
// first part starts with an upper-case letter ("demo::Point" gives the
// unexported "demo_Point"). It flattens IDL module scoping since Go has no
// nested-namespace equivalent for sibling packages within one generated
// package.
func GoTypeName(scoped string) string {
	parts := strings.Split(scoped, "::")
	for i, p := range parts {
		parts[i] = SanitizeIdentifier(p)
	}
	return strings.Join(parts, "_")
}
