package jsconfig

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unquote decodes a string literal or a template literal without substitutions.
func unquote(lit string) (string, error) {
	if len(lit) < 2 {
		return "", fmt.Errorf("malformed string literal %s", lit)
	}
	quote := lit[0]
	if (quote != '"' && quote != '\'' && quote != '`') || lit[len(lit)-1] != quote {
		return "", fmt.Errorf("malformed string literal %s", lit)
	}
	body := lit[1 : len(lit)-1]
	if !strings.Contains(body, `\`) {
		return body, nil
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("dangling escape in %s", lit)
		}
		switch e := body[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\r':
			// line continuation, \r\n counts as one
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case '\n':
			// line continuation
		case 'x':
			if i+2 >= len(body) {
				return "", fmt.Errorf("short \\x escape in %s", lit)
			}
			n, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("bad \\x escape in %s", lit)
			}
			b.WriteRune(rune(n))
			i += 2
		case 'u':
			r, width, err := decodeUnicodeEscape(body[i+1:])
			if err != nil {
				return "", fmt.Errorf("%w in %s", err, lit)
			}
			i += width
			if utf16.IsSurrogate(r) && strings.HasPrefix(body[i+1:], `\u`) {
				if low, w, err := decodeUnicodeEscape(body[i+3:]); err == nil {
					if combined := utf16.DecodeRune(r, low); combined != utf8.RuneError {
						r = combined
						i += 2 + w
					}
				}
			}
			b.WriteRune(r)
		default:
			// identity escape: \' \" \\ \` \$ and friends
			b.WriteByte(e)
		}
	}
	return b.String(), nil
}

// decodeUnicodeEscape reads XXXX or {X...} after a \u and returns the rune
// and the number of bytes consumed.
func decodeUnicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, fmt.Errorf("bad \\u{} escape")
		}
		n, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || n > utf8.MaxRune {
			return 0, 0, fmt.Errorf("bad \\u{} escape")
		}
		return rune(n), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, fmt.Errorf("short \\u escape")
	}
	n, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad \\u escape")
	}
	return rune(n), 4, nil
}
