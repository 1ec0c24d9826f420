package jsconfig

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/js"
)

// maxResolveDepth bounds reference chasing (const a = b; const b = a).
const maxResolveDepth = 32

// File is the parsed module: its export and the top-level bindings the
// export may refer to.
type File struct {
	Export    Value             // default export or module.exports
	HasExport bool              // false when neither was found
	Imports   map[string]string // local name -> module specifier
	Consts    map[string]Value  // top-level const/let/var initializers

	invalid map[string]error // bindings whose initializer could not be read
}

type parser struct {
	toks []token
	pos  int
	file *File
}

// Parse reads a configuration module.
func Parse(src []byte) (*File, error) {
	toks, err := tokenize(string(src))
	if err != nil {
		return nil, err
	}

	p := &parser{
		toks: toks,
		file: &File{
			Imports: make(map[string]string),
			Consts:  make(map[string]Value),
			invalid: make(map[string]error),
		},
	}
	if err := p.parseModule(); err != nil {
		return nil, err
	}
	return p.file, nil
}

func (p *parser) eof() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peekAt(offset int) token {
	if i := p.pos + offset; i < len(p.toks) {
		return p.toks[i]
	}
	line := 1
	if len(p.toks) > 0 {
		line = p.toks[len(p.toks)-1].line
	}
	return token{tt: js.ErrorToken, line: line}
}

func (p *parser) peek() token {
	return p.peekAt(0)
}

func (p *parser) next() token {
	t := p.peek()
	if !p.eof() {
		p.pos++
	}
	return t
}

// is reports whether the next token is the punctuator or keyword text.
func (p *parser) is(text string) bool {
	t := p.peek()
	return t.text == text && t.tt != js.StringToken && t.tt != js.TemplateToken
}

func (p *parser) isAt(offset int, text string) bool {
	t := p.peekAt(offset)
	return t.text == text && t.tt != js.StringToken && t.tt != js.TemplateToken
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Line: t.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(text string) error {
	t := p.next()
	if t.text != text || t.tt == js.StringToken {
		return p.errorf(t, "expected %q, found %s", text, describe(t))
	}
	return nil
}

func describe(t token) string {
	if t.tt == js.ErrorToken && t.text == "" {
		return "end of file"
	}
	return fmt.Sprintf("%q", t.text)
}

// parseModule walks top-level statements, keeping imports, declarations
// and the export. Other tokens are stepped over.
func (p *parser) parseModule() error {
	for !p.eof() {
		switch {
		case p.is("import"):
			p.parseImport()
		case p.is("const"), p.is("let"), p.is("var"):
			p.parseDeclaration()
		case p.is("export"):
			if err := p.parseExport(); err != nil {
				return err
			}
		case p.is("module") && p.isAt(1, ".") && p.isAt(2, "exports") && p.isAt(3, "="):
			p.pos += 4
			v, err := p.parseValue()
			if err != nil {
				return err
			}
			p.setExport(v)
		default:
			p.pos++
		}
	}
	return nil
}

func (p *parser) setExport(v Value) {
	p.file.Export = v
	p.file.HasExport = true
}

// parseImport records default and namespace imports:
//
//	import forms from "@tailwindcss/forms"
//	import * as colors from "tailwindcss/colors"
//	import forms, { other } from "@tailwindcss/forms"
//
// Type-only imports are skipped.
func (p *parser) parseImport() {
	p.pos++ // import

	var name string
	switch t := p.peek(); {
	case t.text == "type":
		return
	case t.text == "*" && p.isAt(1, "as") && isIdent(p.peekAt(2).text):
		name = p.peekAt(2).text
		p.pos += 3
	case isIdent(t.text) && t.tt != js.StringToken:
		name = t.text
		p.pos++
	default:
		return
	}

	for !p.eof() && !p.is("from") && !p.is(";") {
		p.pos++
	}
	if !p.is("from") {
		return
	}
	p.pos++
	if t := p.peek(); t.tt == js.StringToken {
		if module, err := unquote(t.text); err == nil {
			p.file.Imports[name] = module
		}
		p.pos++
	}
}

// parseDeclaration records `const name [: Type] = value`. An initializer the
// reader cannot handle marks the binding invalid instead of failing the file;
// it only matters if the config refers to it.
func (p *parser) parseDeclaration() {
	p.pos++ // const/let/var
	nameTok := p.peek()
	if !isIdent(nameTok.text) || nameTok.tt == js.StringToken {
		return
	}
	p.pos++
	name := nameTok.text

	if p.is(":") {
		p.pos++
		p.skipType("=")
	}
	if !p.is("=") {
		return
	}
	p.pos++

	start := p.pos
	v, err := p.parseValue()
	if err != nil {
		p.file.invalid[name] = err
		p.pos = start
		p.skipStatement()
		return
	}
	p.file.Consts[name] = v

	if module, ok := RequireModule(v); ok {
		p.file.Imports[name] = module
	}
}

func (p *parser) parseExport() error {
	p.pos++ // export
	switch {
	case p.is("default"):
		p.pos++
		v, err := p.parseValue()
		if err != nil {
			return err
		}
		p.setExport(v)
	case p.is("const"), p.is("let"), p.is("var"):
		p.parseDeclaration()
	}
	return nil
}

// skipType steps over a type annotation up to stop at nesting depth zero.
func (p *parser) skipType(stop string) {
	depth := 0
	for !p.eof() {
		t := p.peek()
		if depth == 0 && t.text == stop {
			return
		}
		switch t.text {
		case "(", "[", "{", "<":
			depth++
		case ")", "]", "}", ">":
			if depth > 0 {
				depth--
			}
		}
		p.pos++
	}
}

// skipStatement steps to the end of the current statement: a ';' at depth
// zero, or the first statement keyword on a later line at depth zero.
func (p *parser) skipStatement() {
	depth := 0
	startLine := p.peek().line
	for !p.eof() {
		t := p.peek()
		if depth == 0 {
			if t.text == ";" {
				p.pos++
				return
			}
			if t.line > startLine && isStatementStart(t.text) {
				return
			}
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			if depth > 0 {
				depth--
			}
		}
		p.pos++
	}
}

func isStatementStart(text string) bool {
	switch text {
	case "const", "let", "var", "export", "import", "module", "function", "class":
		return true
	}
	return false
}

// parseValue reads one literal, reference or call, plus an optional
// trailing `as Type` / `satisfies Type`.
func (p *parser) parseValue() (Value, error) {
	v, err := p.parsePrimary()
	if err != nil {
		return Value{}, err
	}
	for p.is("as") || p.is("satisfies") {
		p.pos++
		p.skipTypeTail()
	}
	return v, nil
}

// skipTypeTail steps over a type after as/satisfies, stopping at the
// punctuation that ends the surrounding expression.
func (p *parser) skipTypeTail() {
	depth := 0
	for !p.eof() {
		t := p.peek()
		if depth == 0 {
			switch t.text {
			case ",", "}", "]", ")", ";":
				return
			}
			if t.line > p.toks[p.pos-1].line && isStatementStart(t.text) {
				return
			}
		}
		switch t.text {
		case "(", "[", "{", "<":
			depth++
		case ")", "]", "}", ">":
			if depth > 0 {
				depth--
			}
		}
		p.pos++
	}
}

func (p *parser) parsePrimary() (Value, error) {
	t := p.next()

	switch t.tt {
	case js.StringToken, js.TemplateToken:
		s, err := unquote(t.text)
		if err != nil {
			return Value{}, p.errorf(t, "%v", err)
		}
		return Value{Kind: String, Text: s, Line: t.line}, nil
	case js.TemplateStartToken:
		return Value{}, p.errorf(t, "template literals with substitutions are not supported")
	case js.RegExpToken:
		return Value{}, p.errorf(t, "regular expressions are not supported")
	}

	switch {
	case t.text == "{":
		return p.parseObject(t)
	case t.text == "[":
		return p.parseArray(t)
	case t.text == "(":
		if p.is(")") && p.isAt(1, "=>") {
			return Value{}, p.errorf(p.peekAt(1), "arrow functions are not supported")
		}
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		if err := p.expect(")"); err != nil {
			return Value{}, err
		}
		if p.is("=>") {
			return Value{}, p.errorf(p.peek(), "arrow functions are not supported")
		}
		return v, nil
	case t.text == "-" && isNumber(p.peek().text):
		n := p.next()
		return Value{Kind: Number, Text: "-" + n.text, Line: t.line}, nil
	case isNumber(t.text):
		return Value{Kind: Number, Text: t.text, Line: t.line}, nil
	case t.text == "true", t.text == "false":
		return Value{Kind: Bool, Bool: t.text == "true", Line: t.line}, nil
	case t.text == "null", t.text == "undefined":
		return Value{Kind: Null, Line: t.line}, nil
	case t.text == "...":
		return Value{}, p.errorf(t, "spread syntax is not supported")
	case t.text == "function", t.text == "async", t.text == "class", t.text == "new":
		return Value{}, p.errorf(t, "%q expressions are not supported", t.text)
	case isIdent(t.text):
		return p.parseReference(t)
	default:
		return Value{}, p.errorf(t, "unexpected %s", describe(t))
	}
}

// parseReference reads a dotted identifier path and any calls applied to it.
func (p *parser) parseReference(first token) (Value, error) {
	parts := []string{first.text}
	for p.is(".") && isIdent(p.peekAt(1).text) {
		parts = append(parts, p.peekAt(1).text)
		p.pos += 2
	}
	if p.is("=>") {
		return Value{}, p.errorf(p.peek(), "arrow functions are not supported")
	}

	v := Value{Kind: Ref, Text: strings.Join(parts, "."), Line: first.line}
	for p.is("(") {
		open := p.next()
		args, err := p.parseList(open, ")")
		if err != nil {
			return Value{}, err
		}
		if p.is("=>") {
			return Value{}, p.errorf(p.peek(), "arrow functions are not supported")
		}
		callee := v
		v = Value{Kind: Call, Text: callee.Text, Items: args, Callee: &callee, Line: first.line}
	}
	return v, nil
}

func (p *parser) parseArray(open token) (Value, error) {
	items, err := p.parseList(open, "]")
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: Array, Items: items, Line: open.line}, nil
}

// parseList reads comma-separated values up to the closing token.
// Trailing commas and array holes are accepted.
func (p *parser) parseList(open token, closing string) ([]Value, error) {
	var items []Value
	for {
		if p.eof() {
			return nil, p.errorf(open, "unclosed %q", open.text)
		}
		if p.is(closing) {
			p.pos++
			return items, nil
		}
		if p.is(",") {
			p.pos++
			continue
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if !p.is(",") && !p.is(closing) {
			return nil, p.errorf(p.peek(), "expected ',' or %q, found %s", closing, describe(p.peek()))
		}
	}
}

func (p *parser) parseObject(open token) (Value, error) {
	obj := Value{Kind: Object, Line: open.line}
	for {
		if p.eof() {
			return Value{}, p.errorf(open, "unclosed \"{\"")
		}
		if p.is("}") {
			p.pos++
			return obj, nil
		}

		keyTok := p.next()
		var key string
		switch {
		case keyTok.tt == js.StringToken:
			s, err := unquote(keyTok.text)
			if err != nil {
				return Value{}, p.errorf(keyTok, "%v", err)
			}
			key = s
		case keyTok.text == "...":
			return Value{}, p.errorf(keyTok, "spread syntax is not supported")
		case keyTok.text == "[":
			return Value{}, p.errorf(keyTok, "computed keys are not supported")
		case isIdent(keyTok.text), isNumber(keyTok.text):
			key = keyTok.text
		default:
			return Value{}, p.errorf(keyTok, "unexpected %s in object literal", describe(keyTok))
		}
		if _, dup := obj.Get(key); dup {
			return Value{}, p.errorf(keyTok, "duplicate key %q", key)
		}

		var v Value
		switch {
		case p.is(":"):
			p.pos++
			parsed, err := p.parseValue()
			if err != nil {
				return Value{}, err
			}
			v = parsed
		case p.is(",") || p.is("}"):
			if !isIdent(key) {
				return Value{}, p.errorf(keyTok, "expected ':' after key %q", key)
			}
			v = Value{Kind: Ref, Text: key, Line: keyTok.line}
		case p.is("("):
			return Value{}, p.errorf(keyTok, "method %q is not supported", key)
		default:
			return Value{}, p.errorf(p.peek(), "expected ':' after key %q, found %s", key, describe(p.peek()))
		}
		obj.Members = append(obj.Members, Member{Key: key, Value: v})

		switch {
		case p.is(","):
			p.pos++
		case p.is("}"):
		default:
			return Value{}, p.errorf(p.peek(), "expected ',' or '}', found %s", describe(p.peek()))
		}
	}
}

// RequireModule returns m for require("m").
func RequireModule(v Value) (string, bool) {
	if v.Kind != Call || v.Callee == nil || v.Callee.Kind != Ref || v.Callee.Text != "require" {
		return "", false
	}
	if len(v.Items) != 1 || v.Items[0].Kind != String {
		return "", false
	}
	return v.Items[0].Text, true
}

// ImportOf returns the module a single-identifier reference was imported from.
func (f *File) ImportOf(v Value) (string, bool) {
	if v.Kind != Ref || strings.Contains(v.Text, ".") {
		return "", false
	}
	module, ok := f.Imports[v.Text]
	return module, ok
}

// Resolve follows references to top-level bindings and member paths until
// it reaches a value that is not a reference. Imported bindings cannot be
// evaluated and yield an error.
func (f *File) Resolve(v Value) (Value, error) {
	return f.resolve(v, 0)
}

// resolve carries depth into member lookups so that self-referencing paths
// (const a = a.b) stop at maxResolveDepth too.
func (f *File) resolve(v Value, depth int) (Value, error) {
	for ; v.Kind == Ref; depth++ {
		if depth >= maxResolveDepth {
			return Value{}, &SyntaxError{Line: v.Line, Msg: fmt.Sprintf("reference %s does not resolve", v.Text)}
		}
		path := v.Path()
		root := path[0]

		if err, bad := f.invalid[root]; bad {
			return Value{}, fmt.Errorf("%s: %w", root, err)
		}
		if module, ok := f.Imports[root]; ok {
			return Value{}, &SyntaxError{Line: v.Line, Msg: fmt.Sprintf("%s refers to module %q and cannot be evaluated", v.Text, module)}
		}
		target, ok := f.Consts[root]
		if !ok {
			return Value{}, &SyntaxError{Line: v.Line, Msg: fmt.Sprintf("undefined reference %s", v.Text)}
		}

		for _, segment := range path[1:] {
			resolved, err := f.resolve(target, depth+1)
			if err != nil {
				return Value{}, err
			}
			member, ok := resolved.Get(segment)
			if resolved.Kind != Object || !ok {
				return Value{}, &SyntaxError{Line: v.Line, Msg: fmt.Sprintf("%s has no member %q", v.Text, segment)}
			}
			target = member
		}
		v = target
	}
	return v, nil
}
