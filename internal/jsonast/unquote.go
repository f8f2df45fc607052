package jsonast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var errEmbeddedNUL = errors.New("string contains NUL")

// unquote strips the quotes from a JSON string literal and decodes its
// escapes. The result never shares memory with lit.
func unquote(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", fmt.Errorf("malformed string literal %s", lit)
	}
	s := lit[1 : len(lit)-1]
	if !strings.ContainsRune(s, '\\') {
		if strings.IndexByte(s, 0) >= 0 {
			return "", errEmbeddedNUL
		}
		return strings.Clone(s), nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("dangling escape in %s", lit)
		}
		esc := s[i+1]
		i += 2
		switch esc {
		case '"', '\\', '/':
			b.WriteByte(esc)
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			r, ok := hex4(s[i:])
			if !ok {
				return "", fmt.Errorf("bad unicode escape in %s", lit)
			}
			i += 4
			if utf16.IsSurrogate(r) {
				r2, ok := r, false
				if strings.HasPrefix(s[i:], `\u`) {
					r2, ok = hex4(s[i+2:])
				}
				if dec := utf16.DecodeRune(r, r2); ok && dec != utf8.RuneError {
					r = dec
					i += 6
				} else {
					r = utf8.RuneError
				}
			}
			if r == 0 {
				return "", errEmbeddedNUL
			}
			b.WriteRune(r)
		default:
			return "", fmt.Errorf("unknown escape \\%c in %s", esc, lit)
		}
	}
	out := b.String()
	if strings.IndexByte(out, 0) >= 0 {
		return "", errEmbeddedNUL
	}
	return out, nil
}

func hex4(s string) (rune, bool) {
	if len(s) < 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func isHex(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}
