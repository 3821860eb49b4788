package propchain

import (
	"fmt"
	"strings"
)

const (
	placeholderPrefix = "${"
	placeholderSuffix = "}"
	valueSeparator    = ":"
)

// ResolvePlaceholders replaces the ${key} and ${key:default} placeholders of text.
//
// Resolved values are expanded recursively. Placeholders that cannot be resolved are kept
// verbatim, a circular reference leaves text unchanged.
func (c *Chain) ResolvePlaceholders(text string) string {
	resolved, err := c.expand(text, true, newTracker())
	if err != nil {
		c.logger.Warn().Err(err).Str("text", text).Msg("unable to resolve placeholders")
		return text
	}
	return resolved
}

// ResolveRequiredPlaceholders is like ResolvePlaceholders but fails with ErrMissingKey when a
// placeholder without default cannot be resolved, and with ErrCircularPlaceholder on cycles.
func (c *Chain) ResolveRequiredPlaceholders(text string) (string, error) {
	return c.expand(text, false, newTracker())
}

func (c *Chain) expand(text string, ignoreUnresolvable bool, t *tracker) (string, error) {
	start := strings.Index(text, placeholderPrefix)
	if start < 0 {
		return text, nil
	}

	var b strings.Builder
	for start >= 0 {
		end := findPlaceholderEnd(text, start)
		if end < 0 {
			break
		}

		placeholder := text[start+len(placeholderPrefix) : end]
		if err := t.push(placeholder); err != nil {
			return "", err
		}

		// the key itself may hold placeholders: ${${profile}.name}
		placeholder, err := c.expand(placeholder, ignoreUnresolvable, t)
		if err != nil {
			return "", err
		}

		value, found := c.ResolveString(placeholder)
		if !found {
			if key, def, hasDefault := strings.Cut(placeholder, valueSeparator); hasDefault {
				value, found = c.ResolveString(key)
				if !found {
					value, found = def, true
				}
			}
		}

		b.WriteString(text[:start])
		if found {
			value, err = c.expand(value, ignoreUnresolvable, t)
			if err != nil {
				return "", err
			}
			b.WriteString(value)
		} else if ignoreUnresolvable {
			b.WriteString(text[start : end+len(placeholderSuffix)])
		} else {
			return "", fmt.Errorf("could not resolve placeholder %q in value %q:\n\t%w", placeholder, text, ErrMissingKey)
		}

		t.pop()
		text = text[end+len(placeholderSuffix):]
		start = strings.Index(text, placeholderPrefix)
	}

	b.WriteString(text)
	return b.String(), nil
}

// findPlaceholderEnd returns the index of the suffix closing the placeholder opened at start.
func findPlaceholderEnd(text string, start int) int {
	depth := 0
	for i := start + len(placeholderPrefix); i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], placeholderSuffix):
			if depth == 0 {
				return i
			}
			depth--
			i += len(placeholderSuffix)
		case strings.HasPrefix(text[i:], placeholderPrefix):
			depth++
			i += len(placeholderPrefix)
		default:
			i++
		}
	}
	return -1
}
