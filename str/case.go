package str

import (
	"strings"
	"unicode"
)

// ToScreamingSnakeCase transforms a property key or an identifier into screaming snake case,
// the shape used by environment variables: "user.name" and "userName" both give "USER_NAME".
//
// Dots, dashes, underscores and spaces are word separators, consecutive separators collapse.
// Acronyms stay together ("XMLParser" gives "XML_PARSER") and digit runs form their own word.
func ToScreamingSnakeCase(in string) string {
	runes := []rune(strings.TrimSpace(in))
	if len(runes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(runes) + len(runes)/3)

	pendingSeparator := false
	for i, r := range runes {
		if isSeparator(r) {
			pendingSeparator = true
			continue
		}

		if i > 0 && !pendingSeparator {
			pendingSeparator = startsWord(runes, i)
		}
		if pendingSeparator && sb.Len() > 0 {
			sb.WriteByte('_')
		}
		pendingSeparator = false

		sb.WriteRune(unicode.ToUpper(r))
	}

	return sb.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

func startsWord(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	switch {
	case unicode.IsUpper(cur):
		if unicode.IsLower(prev) || unicode.IsDigit(prev) {
			return true
		}
		// last capital of an acronym followed by a lowercase word: XMLParser
		return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
	case unicode.IsDigit(cur):
		return unicode.IsLetter(prev)
	}
	return false
}
