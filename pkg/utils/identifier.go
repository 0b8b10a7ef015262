package utils

import "strings"

// identifierQuotes are the quoting characters accepted across the supported
// dialects: backticks (MySQL), double quotes (ANSI, PostgreSQL, Oracle) and
// square brackets (SQL Server).
const identifierQuotes = "`\"[]"

// ExactlyValue strips every identifier quoting character from the given
// literal, leaving the case untouched.
//
// Examples:
//   - "`t_order`" -> "t_order"
//   - "\"T_Order\"" -> "T_Order"
//   - "[dbo].[t_order]" -> "dbo.t_order"
//   - "t_order" -> "t_order"
//   - "" -> ""
func ExactlyValue(s string) string {
	if !strings.ContainsAny(s, identifierQuotes) {
		return s
	}

	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(identifierQuotes, r) {
			return -1
		}
		return r
	}, s)
}

// IsQuoted checks if a literal is a single quoted identifier.
//
// Examples:
//   - "`table`" -> true
//   - "\"table\"" -> true
//   - "[table]" -> true
//   - "table" -> false
//   - "`db`.`table`" -> false (qualified name, not a single quoted identifier)
func IsQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}

	first, last := s[0], s[len(s)-1]
	switch {
	case first == '`' && last == '`':
	case first == '"' && last == '"':
	case first == '[' && last == ']':
	default:
		return false
	}

	return !strings.ContainsAny(s[1:len(s)-1], identifierQuotes)
}

// EqualIdentifiers compares two identifiers the way SQL resolves unquoted
// names: quotes are ignored and the comparison is case-insensitive.
func EqualIdentifiers(a, b string) bool {
	return strings.EqualFold(ExactlyValue(a), ExactlyValue(b))
}

// Ptr returns a pointer to v. Optional strings in the query model are
// modelled as pointers, which makes this handy for literals in tests.
func Ptr[T any](v T) *T {
	return &v
}
