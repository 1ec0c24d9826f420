package jsconfig

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// token is a significant lexeme with its starting line.
type token struct {
	tt   js.TokenType
	text string
	line int
}

// tokenize lexes src and drops whitespace, line terminators and comments.
func tokenize(src string) ([]token, error) {
	lexer := js.NewLexer(parse.NewInputString(src))
	line := 1

	var toks []token
	for {
		tt, data := lexer.Next()
		text := string(data)

		switch tt {
		case js.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, &SyntaxError{Line: line, Msg: err.Error()}
			}
			return toks, nil
		case js.WhitespaceToken:
			continue
		case js.LineTerminatorToken:
			if n := strings.Count(text, "\n"); n > 0 {
				line += n
			} else {
				line++
			}
			continue
		case js.CommentToken, js.CommentLineTerminatorToken:
			line += strings.Count(text, "\n")
			continue
		}

		toks = append(toks, token{tt: tt, text: text, line: line})
		// Template literals may span lines
		line += strings.Count(text, "\n")
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdent reports whether s is an ASCII identifier name. Keywords count as
// identifier names, which is what property keys need.
func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isIdentStart(c) && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= '0' && c <= '9') || (c == '.' && len(s) > 1 && s[1] >= '0' && s[1] <= '9')
}
