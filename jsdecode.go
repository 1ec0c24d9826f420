package twconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yacobolo/twconfig/internal/jsconfig"
)

// jsDecoder turns the exported object of a config module into a record.
type jsDecoder struct {
	file *jsconfig.File
}

func decodeJS(src []byte) (*Config, error) {
	file, err := jsconfig.Parse(src)
	if err != nil {
		return nil, err
	}
	if !file.HasExport {
		return nil, errors.New("no default export or module.exports found")
	}

	d := &jsDecoder{file: file}
	root, err := d.resolve(file.Export)
	if err != nil {
		return nil, err
	}
	if root.Kind == jsconfig.Call {
		return nil, fmt.Errorf("line %d: exported config is the result of %s(); only static objects can be read", root.Line, root.Text)
	}
	if root.Kind != jsconfig.Object {
		return nil, fmt.Errorf("line %d: exported config is a %s, want an object", root.Line, root.Kind)
	}

	fields, err := d.fields(root, "", recordKeys)
	if err != nil {
		return nil, err
	}

	darkMode, err := d.darkMode(fields["darkMode"])
	if err != nil {
		return nil, err
	}
	content, err := d.content(fields["content"])
	if err != nil {
		return nil, err
	}
	extend, err := d.theme(fields["theme"])
	if err != nil {
		return nil, err
	}
	plugins, err := d.plugins(fields["plugins"])
	if err != nil {
		return nil, err
	}

	return New(darkMode, content, extend, plugins)
}

var recordKeys = []string{"darkMode", "content", "theme", "plugins"}

func (d *jsDecoder) resolve(v jsconfig.Value) (jsconfig.Value, error) {
	return d.file.Resolve(v)
}

func (d *jsDecoder) errorf(v jsconfig.Value, field, format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %s", v.Line, field, fmt.Sprintf(format, args...))
}

// fields checks that obj has exactly the wanted keys and returns them resolved.
func (d *jsDecoder) fields(obj jsconfig.Value, prefix string, want []string) (map[string]jsconfig.Value, error) {
	allowed := make(map[string]bool, len(want))
	for _, k := range want {
		allowed[k] = true
	}

	out := make(map[string]jsconfig.Value, len(want))
	for _, m := range obj.Members {
		if !allowed[m.Key] {
			return nil, d.errorf(m.Value, prefix+m.Key, "unknown field")
		}
		v, err := d.resolve(m.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", prefix+m.Key, err)
		}
		out[m.Key] = v
	}

	var missing []string
	for _, k := range want {
		if _, ok := out[k]; !ok {
			missing = append(missing, prefix+k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("line %d: missing required field(s): %s", obj.Line, strings.Join(missing, ", "))
	}
	return out, nil
}

func (d *jsDecoder) darkMode(v jsconfig.Value) (DarkMode, error) {
	switch v.Kind {
	case jsconfig.String:
		return DarkMode{Strategy: Strategy(v.Text)}, nil
	case jsconfig.Array:
		if len(v.Items) == 0 || len(v.Items) > 2 {
			return DarkMode{}, d.errorf(v, "darkMode", "list must have one or two elements, got %d", len(v.Items))
		}
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			item, err := d.resolve(item)
			if err != nil {
				return DarkMode{}, fmt.Errorf("darkMode[%d]: %w", i, err)
			}
			if item.Kind != jsconfig.String {
				return DarkMode{}, d.errorf(item, fmt.Sprintf("darkMode[%d]", i), "want a string, got a %s", item.Kind)
			}
			parts[i] = item.Text
		}
		dm := DarkMode{Strategy: Strategy(parts[0])}
		if len(parts) == 2 {
			dm.Selector = parts[1]
		}
		return dm, nil
	default:
		return DarkMode{}, d.errorf(v, "darkMode", "want a strategy string or [strategy, selector], got a %s", v.Kind)
	}
}

// content accepts a list of globs or {files: [...], relative: bool}.
func (d *jsDecoder) content(v jsconfig.Value) ([]string, error) {
	if v.Kind == jsconfig.Object {
		for _, m := range v.Members {
			if m.Key != "files" && m.Key != "relative" {
				return nil, d.errorf(m.Value, "content."+m.Key, "not supported")
			}
		}
		files, ok := v.Get("files")
		if !ok {
			return nil, d.errorf(v, "content", "object form needs a files list")
		}
		resolved, err := d.resolve(files)
		if err != nil {
			return nil, fmt.Errorf("content.files: %w", err)
		}
		v = resolved
	}
	if v.Kind != jsconfig.Array {
		return nil, d.errorf(v, "content", "want a list of glob patterns, got a %s", v.Kind)
	}

	patterns := make([]string, 0, len(v.Items))
	for i, item := range v.Items {
		field := fmt.Sprintf("content[%d]", i)
		item, err := d.resolve(item)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		if item.Kind != jsconfig.String {
			return nil, d.errorf(item, field, "want a glob string, got a %s", item.Kind)
		}
		patterns = append(patterns, item.Text)
	}
	return patterns, nil
}

func (d *jsDecoder) theme(v jsconfig.Value) (ThemeExtensions, error) {
	if v.Kind != jsconfig.Object {
		return nil, d.errorf(v, "theme", "want an object, got a %s", v.Kind)
	}
	fields, err := d.fields(v, "theme.", []string{"extend"})
	if err != nil {
		return nil, err
	}

	extend := fields["extend"]
	if extend.Kind != jsconfig.Object {
		return nil, d.errorf(extend, "theme.extend", "want an object, got a %s", extend.Kind)
	}

	out := make(ThemeExtensions, len(extend.Members))
	for _, category := range extend.Members {
		field := "theme.extend." + category.Key
		if ruleCategories[category.Key] {
			return nil, d.errorf(category.Value, field, IssueRuleCategory, category.Key)
		}
		tokens, err := d.resolve(category.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		if tokens.Kind != jsconfig.Object {
			return nil, d.errorf(tokens, field, "want an object of tokens, got a %s", tokens.Kind)
		}

		flat := make(map[string]string)
		for _, m := range tokens.Members {
			if err := d.flattenToken(field, m.Key, m.Value, flat); err != nil {
				return nil, err
			}
		}
		out[category.Key] = flat
	}
	return out, nil
}

// flattenToken stores scalar token values under name. Nested objects join
// their keys with '-' and a DEFAULT key stands for the parent name. String
// lists (font stacks) are joined with ", ".
func (d *jsDecoder) flattenToken(field, name string, v jsconfig.Value, out map[string]string) error {
	tokenField := field + "." + name
	v, err := d.resolve(v)
	if err != nil {
		return fmt.Errorf("%s: %w", tokenField, err)
	}

	switch v.Kind {
	case jsconfig.String, jsconfig.Number:
		out[name] = v.Text
		return nil
	case jsconfig.Array:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			item, err := d.resolve(item)
			if err != nil {
				return fmt.Errorf("%s: %w", tokenField, err)
			}
			s, ok := item.Scalar()
			if !ok || item.Kind == jsconfig.Bool {
				return d.errorf(item, tokenField, "list elements must be strings or numbers, got a %s", item.Kind)
			}
			parts = append(parts, s)
		}
		out[name] = strings.Join(parts, ", ")
		return nil
	case jsconfig.Object:
		for _, m := range v.Members {
			child := name + "-" + m.Key
			if m.Key == "DEFAULT" {
				child = name
			}
			if err := d.flattenToken(field, child, m.Value, out); err != nil {
				return err
			}
		}
		return nil
	default:
		return d.errorf(v, tokenField, "want a string, number, list or object, got a %s", v.Kind)
	}
}

func (d *jsDecoder) plugins(v jsconfig.Value) ([]Plugin, error) {
	if v.Kind != jsconfig.Array {
		return nil, d.errorf(v, "plugins", "want a list, got a %s", v.Kind)
	}
	plugins := make([]Plugin, 0, len(v.Items))
	for i, item := range v.Items {
		p, err := d.plugin(fmt.Sprintf("plugins[%d]", i), item)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// plugin accepts "module", require("module"), an imported binding, or any of
// those called with a single options object.
func (d *jsDecoder) plugin(field string, v jsconfig.Value) (Plugin, error) {
	if module, ok := d.file.ImportOf(v); ok {
		return Plugin{Module: module}, nil
	}
	if module, ok := jsconfig.RequireModule(v); ok {
		return Plugin{Module: module}, nil
	}

	switch v.Kind {
	case jsconfig.String:
		return Plugin{Module: v.Text}, nil
	case jsconfig.Ref:
		resolved, err := d.resolve(v)
		if err != nil {
			return Plugin{}, fmt.Errorf("%s: %w", field, err)
		}
		return d.plugin(field, resolved)
	case jsconfig.Call:
		p, err := d.plugin(field, *v.Callee)
		if err != nil {
			return Plugin{}, err
		}
		if len(p.Options) > 0 {
			return Plugin{}, d.errorf(v, field, "plugin is called more than once")
		}
		options, err := d.pluginOptions(field, v)
		if err != nil {
			return Plugin{}, err
		}
		p.Options = options
		return p, nil
	default:
		return Plugin{}, d.errorf(v, field, "want a module reference, got a %s", v.Kind)
	}
}

func (d *jsDecoder) pluginOptions(field string, call jsconfig.Value) (map[string]string, error) {
	switch len(call.Items) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, d.errorf(call, field, "plugin takes at most one options object, got %d arguments", len(call.Items))
	}

	arg, err := d.resolve(call.Items[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	if arg.Kind != jsconfig.Object {
		return nil, d.errorf(arg, field, "plugin options must be an object, got a %s", arg.Kind)
	}

	options := make(map[string]string, len(arg.Members))
	for _, m := range arg.Members {
		value, err := d.resolve(m.Value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", field, m.Key, err)
		}
		s, ok := value.Scalar()
		if !ok {
			return nil, d.errorf(value, field+"."+m.Key, "option values must be scalars, got a %s", value.Kind)
		}
		options[m.Key] = s
	}
	return options, nil
}
