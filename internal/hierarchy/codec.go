package hierarchy

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
)

const (
	separator = '/'
	escape    = '\\'
)

// Parse splits an escaped hierarchical classification into its components.
//
// The empty string is the hierarchy root and yields no components. An escape
// followed by anything other than '/' or '\' fails with an EscapeSyntaxError,
// as does a backslash in the last position.
func Parse(name string) ([]string, error) {
	if name == "" {
		return []string{}, nil
	}
	var (
		result  []string
		current strings.Builder
	)
	for i := 0; i < len(name); i++ {
		switch c := name[i]; c {
		case separator:
			result = append(result, current.String())
			current.Reset()
		case escape:
			if i+1 == len(name) {
				return nil, escapeError(name, "unexpected '\\' at last position", i)
			}
			next := name[i+1]
			if next != separator && next != escape {
				return nil, escapeError(name, fmt.Sprintf("unknown escape sequence '\\%c'", next), i)
			}
			current.WriteByte(next)
			i++
		default:
			current.WriteByte(c)
		}
	}
	return append(result, current.String()), nil
}

// Join escapes each component (backslash first, then slash) and joins them with '/'.
func Join(parts []string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		p = strings.ReplaceAll(p, `\`, `\\`)
		escaped[i] = strings.ReplaceAll(p, `/`, `\/`)
	}
	return strings.Join(escaped, "/")
}

// Parent returns the classification one level up, and false for the root.
func Parent(name string) (string, bool, error) {
	parts, err := Parse(name)
	if err != nil {
		return "", false, err
	}
	if len(parts) == 0 {
		return "", false, nil
	}
	return Join(parts[:len(parts)-1]), true, nil
}

func escapeError(name, message string, pos int) error {
	return errors.EscapeSyntaxError(message).
		WithContext(errors.KeyClassification, name).
		WithContext("position", pos).
		Build()
}
