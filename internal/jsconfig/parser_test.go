package jsconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const starterTS = `import type { Config } from "tailwindcss";

const config: Config = {
  darkMode: 'class',
  content: [
    './pages/**/*.{js,ts,jsx,tsx,mdx}',
    './components/**/*.{js,ts,jsx,tsx,mdx}',
  ],
  theme: {
    extend: {
      colors: {},
    },
  },
  plugins: [],
};
export default config;
`

func TestParse_TypeScriptStarter(t *testing.T) {
	f, err := Parse([]byte(starterTS))
	require.NoError(t, err)
	require.True(t, f.HasExport)
	assert.Equal(t, Ref, f.Export.Kind)
	assert.Empty(t, f.Imports, "type-only imports are not bindings")

	root, err := f.Resolve(f.Export)
	require.NoError(t, err)
	require.Equal(t, Object, root.Kind)
	assert.Equal(t, []string{"darkMode", "content", "theme", "plugins"}, root.Keys())
	assert.Equal(t, 3, root.Line)

	dark, _ := root.Get("darkMode")
	assert.Equal(t, Value{Kind: String, Text: "class", Line: 4}, dark)

	content, _ := root.Get("content")
	require.Len(t, content.Items, 2)
	assert.Equal(t, "./components/**/*.{js,ts,jsx,tsx,mdx}", content.Items[1].Text)
	assert.Equal(t, 7, content.Items[1].Line)
}

func TestParse_Exports(t *testing.T) {
	tests := []struct {
		name string
		src  string
		keys []string
	}{
		{
			name: "export default object",
			src:  `export default { a: 1 }`,
			keys: []string{"a"},
		},
		{
			name: "module.exports",
			src:  "/** @type {import('tailwindcss').Config} */\nmodule.exports = { a: 1, b: 2 };",
			keys: []string{"a", "b"},
		},
		{
			name: "satisfies",
			src:  `export default { a: 1 } satisfies Config;`,
			keys: []string{"a"},
		},
		{
			name: "as const in parens",
			src:  `export default ({ a: [1, 2] as const }) as Config`,
			keys: []string{"a"},
		},
		{
			name: "exported const",
			src:  "export const base = { a: 1 };\nexport default base;",
			keys: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			require.True(t, f.HasExport)
			root, err := f.Resolve(f.Export)
			require.NoError(t, err)
			assert.Equal(t, tt.keys, root.Keys())
		})
	}
}

func TestParse_NoExport(t *testing.T) {
	f, err := Parse([]byte(`const a = { b: 1 };`))
	require.NoError(t, err)
	assert.False(t, f.HasExport)
	assert.Contains(t, f.Consts, "a")
}

func TestParse_Literals(t *testing.T) {
	f, err := Parse([]byte(`export default {
  s: "double",
  q: 'single',
  t: ` + "`template`" + `,
  n: 1.5,
  neg: -2,
  yes: true,
  no: false,
  nil: null,
  "quoted-key": 'x',
  100: 'numeric key',
  trailing: [1, 2,],
}`))
	require.NoError(t, err)

	root := f.Export
	get := func(key string) Value {
		t.Helper()
		v, ok := root.Get(key)
		require.True(t, ok, key)
		return v
	}

	assert.Equal(t, "double", get("s").Text)
	assert.Equal(t, "single", get("q").Text)
	assert.Equal(t, "template", get("t").Text)
	assert.Equal(t, Value{Kind: Number, Text: "1.5", Line: 5}, get("n"))
	assert.Equal(t, "-2", get("neg").Text)
	assert.True(t, get("yes").Bool)
	assert.Equal(t, Bool, get("no").Kind)
	assert.Equal(t, Null, get("nil").Kind)
	assert.Equal(t, "x", get("quoted-key").Text)
	assert.Equal(t, "numeric key", get("100").Text)
	assert.Len(t, get("trailing").Items, 2)
}

func TestParse_ImportsAndRequire(t *testing.T) {
	src := `import forms from "@tailwindcss/forms";
import * as colors from 'tailwindcss/colors';
import typography, { other } from "@tailwindcss/typography";
const animate = require("tailwindcss-animate");

module.exports = {
  plugins: [forms, typography({ className: 'prose' }), animate, require('@tailwindcss/aspect-ratio')],
};`
	f, err := Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"forms":      "@tailwindcss/forms",
		"colors":     "tailwindcss/colors",
		"typography": "@tailwindcss/typography",
		"animate":    "tailwindcss-animate",
	}, f.Imports)

	plugins, _ := f.Export.Get("plugins")
	require.Len(t, plugins.Items, 4)

	module, ok := f.ImportOf(plugins.Items[0])
	assert.True(t, ok)
	assert.Equal(t, "@tailwindcss/forms", module)

	call := plugins.Items[1]
	assert.Equal(t, Call, call.Kind)
	require.NotNil(t, call.Callee)
	assert.Equal(t, "typography", call.Callee.Text)
	require.Len(t, call.Items, 1)
	assert.Equal(t, []string{"className"}, call.Items[0].Keys())

	module, ok = RequireModule(plugins.Items[3])
	assert.True(t, ok)
	assert.Equal(t, "@tailwindcss/aspect-ratio", module)

	_, ok = RequireModule(call)
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	src := `const brand = '#0ea5e9';
const palette = { brand, nested: { deep: brand } };
const alias = palette.nested;
const loop = other;
const other = loop;
const dynamic = compute();
const self = self.inner;
const head = tail.value;
const tail = head;
import colors from "tailwindcss/colors";
export default {};`
	f, err := Parse([]byte(src))
	require.NoError(t, err)

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr string
	}{
		{name: "const", ref: "brand", want: "#0ea5e9"},
		{name: "shorthand member", ref: "palette.brand", want: "#0ea5e9"},
		{name: "member of alias", ref: "alias.deep", want: "#0ea5e9"},
		{name: "missing member", ref: "palette.missing", wantErr: `has no member "missing"`},
		{name: "undefined", ref: "nowhere", wantErr: "undefined reference nowhere"},
		{name: "cycle", ref: "loop", wantErr: "does not resolve"},
		{name: "self member", ref: "self", wantErr: "does not resolve"},
		{name: "member cycle", ref: "head", wantErr: "does not resolve"},
		{name: "member cycle via alias", ref: "tail.value", wantErr: "does not resolve"},
		{name: "import", ref: "colors.sky", wantErr: `refers to module "tailwindcss/colors"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := f.Resolve(Value{Kind: Ref, Text: tt.ref, Line: 9})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Text)
		})
	}

	// dynamic is a call, which resolves to itself
	v, err := f.Resolve(Value{Kind: Ref, Text: "dynamic"})
	require.NoError(t, err)
	assert.Equal(t, Call, v.Kind)
}

func TestResolve_InvalidInitializer(t *testing.T) {
	src := "const fn = () => 1;\nconst ok = 'yes';\nexport default { fn, ok };"
	f, err := Parse([]byte(src))
	require.NoError(t, err)

	ok, _ := f.Export.Get("ok")
	v, err := f.Resolve(ok)
	require.NoError(t, err)
	assert.Equal(t, "yes", v.Text)

	fn, _ := f.Export.Get("fn")
	_, err = f.Resolve(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fn: line 1")
}

func TestParse_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
		line int
	}{
		{
			name: "template substitution",
			src:  "export default {\n  content: [`${dir}/**`],\n}",
			msg:  "template literals with substitutions",
			line: 2,
		},
		{
			name: "spread",
			src:  "export default {\n  ...base,\n}",
			msg:  "spread syntax",
			line: 2,
		},
		{
			name: "function",
			src:  "export default {\n  plugins: [function () {}],\n}",
			msg:  `"function" expressions`,
			line: 2,
		},
		{
			name: "arrow",
			src:  "export default {\n\n  plugins: [(api) => api],\n}",
			msg:  "arrow functions",
			line: 3,
		},
		{
			name: "method",
			src:  "export default {\n  theme() {},\n}",
			msg:  `method "theme"`,
			line: 2,
		},
		{
			name: "computed key",
			src:  "export default { [key]: 1 }",
			msg:  "computed keys",
			line: 1,
		},
		{
			name: "unclosed object",
			src:  "export default {\n  a: 1,\n",
			msg:  `unclosed "{"`,
			line: 1,
		},
		{
			name: "missing comma",
			src:  "export default {\n  a: 1\n  b: 2\n}",
			msg:  "expected ',' or '}'",
			line: 3,
		},
		{
			name: "duplicate key",
			src:  "export default {\n  a: 1,\n  'a': 2,\n}",
			msg:  `duplicate key "a"`,
			line: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "want *SyntaxError, got %T", err)
			assert.Contains(t, syntaxErr.Msg, tt.msg)
			assert.Equal(t, tt.line, syntaxErr.Line)
		})
	}
}

func TestParse_CommentsKeepLineNumbers(t *testing.T) {
	src := "/*\n * block\n */\n// line\nexport default {\n  a: 'x', // trailing\n}"
	f, err := Parse([]byte(src))
	require.NoError(t, err)
	a, _ := f.Export.Get("a")
	assert.Equal(t, 6, a.Line)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "reference", Ref.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestValue_Scalar(t *testing.T) {
	tests := []struct {
		v    Value
		want string
		ok   bool
	}{
		{Value{Kind: String, Text: "a"}, "a", true},
		{Value{Kind: Number, Text: "10"}, "10", true},
		{Value{Kind: Bool, Bool: true}, "true", true},
		{Value{Kind: Bool}, "false", true},
		{Value{Kind: Object}, "", false},
	}
	for _, tt := range tests {
		got, ok := tt.v.Scalar()
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
}
