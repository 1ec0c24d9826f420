package twconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// jsWriter renders a record as a config module.
type jsWriter struct {
	buf    bytes.Buffer
	format Format
	// plugin module -> local binding, ESM and TS only
	bindings map[string]string
}

func renderJS(c *Config, format Format) ([]byte, error) {
	w := &jsWriter{format: format, bindings: make(map[string]string)}

	if format != FormatCJS {
		w.bindPlugins(c.plugins)
	}

	switch format {
	case FormatTS:
		w.line(0, `import type { Config } from "tailwindcss";`)
		w.imports(c.plugins)
		w.line(0, "")
		w.line(0, "const config: Config = {")
	case FormatJS:
		w.imports(c.plugins)
		if len(c.plugins) > 0 {
			w.line(0, "")
		}
		w.line(0, "/** @type {import('tailwindcss').Config} */")
		w.line(0, "export default {")
	case FormatCJS:
		w.line(0, "/** @type {import('tailwindcss').Config} */")
		w.line(0, "module.exports = {")
	default:
		return nil, fmt.Errorf("format %q is not a JavaScript format", format)
	}

	w.body(c)

	if format == FormatTS {
		w.line(0, "};")
		w.line(0, "")
		w.line(0, "export default config;")
	} else {
		w.line(0, "};")
	}
	return w.buf.Bytes(), nil
}

func (w *jsWriter) line(indent int, text string) {
	if text != "" {
		w.buf.WriteString(strings.Repeat("  ", indent))
		w.buf.WriteString(text)
	}
	w.buf.WriteByte('\n')
}

func (w *jsWriter) body(c *Config) {
	w.line(1, "darkMode: "+jsDarkMode(c.darkMode)+",")

	if len(c.content) == 0 {
		w.line(1, "content: [],")
	} else {
		w.line(1, "content: [")
		for _, pattern := range c.content {
			w.line(2, jsString(pattern)+",")
		}
		w.line(1, "],")
	}

	w.line(1, "theme: {")
	if len(c.extend) == 0 {
		w.line(2, "extend: {},")
	} else {
		w.line(2, "extend: {")
		for _, category := range c.extend.Categories() {
			tokens := c.extend[category]
			if len(tokens) == 0 {
				w.line(3, jsKey(category)+": {},")
				continue
			}
			w.line(3, jsKey(category)+": {")
			for _, name := range sortedKeys(tokens) {
				w.line(4, jsKey(name)+": "+jsString(tokens[name])+",")
			}
			w.line(3, "},")
		}
		w.line(2, "},")
	}
	w.line(1, "},")

	if len(c.plugins) == 0 {
		w.line(1, "plugins: [],")
		return
	}
	w.line(1, "plugins: [")
	for _, p := range c.plugins {
		w.line(2, w.pluginExpr(p)+",")
	}
	w.line(1, "],")
}

func (w *jsWriter) pluginExpr(p Plugin) string {
	expr := "require(" + jsString(p.Module) + ")"
	if binding, ok := w.bindings[p.Module]; ok {
		expr = binding
	}
	if len(p.Options) == 0 {
		return expr
	}
	opts := make([]string, 0, len(p.Options))
	for _, k := range sortedKeys(p.Options) {
		opts = append(opts, jsKey(k)+": "+jsString(p.Options[k]))
	}
	return expr + "({ " + strings.Join(opts, ", ") + " })"
}

// bindPlugins picks an import name per plugin module, e.g.
// "@tailwindcss/forms" -> forms, "tailwindcss-animate" -> tailwindcssAnimate.
func (w *jsWriter) bindPlugins(plugins []Plugin) {
	used := map[string]bool{"config": true}
	for _, p := range plugins {
		if _, ok := w.bindings[p.Module]; ok {
			continue
		}
		base := bindingName(p.Module)
		name := base
		for i := 2; used[name] || isReserved(name); i++ {
			name = fmt.Sprintf("%s%d", base, i)
		}
		used[name] = true
		w.bindings[p.Module] = name
	}
}

func (w *jsWriter) imports(plugins []Plugin) {
	var seen []string
	for _, p := range plugins {
		if slices.Contains(seen, p.Module) {
			continue
		}
		seen = append(seen, p.Module)
		w.line(0, fmt.Sprintf("import %s from %s;", w.bindings[p.Module], jsString(p.Module)))
	}
}

func bindingName(module string) string {
	last := module
	if i := strings.LastIndex(module, "/"); i >= 0 {
		last = module[i+1:]
	}

	var b strings.Builder
	upper := false
	for _, r := range last {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if b.Len() == 0 && unicode.IsDigit(r) {
				b.WriteByte('_')
			}
			if upper && b.Len() > 0 {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
			upper = false
		default:
			upper = true
		}
	}
	if b.Len() == 0 {
		return "plugin"
	}
	return b.String()
}

func isReserved(name string) bool {
	switch name {
	case "break", "case", "catch", "class", "const", "continue", "debugger", "default",
		"delete", "do", "else", "export", "extends", "false", "finally", "for", "function",
		"if", "import", "in", "instanceof", "new", "null", "return", "super", "switch",
		"this", "throw", "true", "try", "typeof", "var", "void", "while", "with", "yield",
		"let", "static", "enum", "await", "implements", "package", "protected",
		"interface", "private", "public", "require", "module", "exports":
		return true
	}
	return false
}

func jsDarkMode(d DarkMode) string {
	if d.Selector == "" {
		return jsString(string(d.Strategy))
	}
	return "[" + jsString(string(d.Strategy)) + ", " + jsString(d.Selector) + "]"
}

// jsString quotes s as a double-quoted literal. JSON string syntax is valid
// JavaScript once HTML escaping is off.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func jsKey(k string) string {
	if isJSIdent(k) {
		return k
	}
	return jsString(k)
}

func isJSIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		ok := r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(i > 0 && r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}
