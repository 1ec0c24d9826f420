package twconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a serialization of the record
type Format string

// Supported formats
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTS   Format = "ts"  // tailwind.config.ts
	FormatJS   Format = "js"  // ES module
	FormatCJS  Format = "cjs" // CommonJS module
)

// Formats lists every supported format.
var Formats = []Format{FormatYAML, FormatJSON, FormatTS, FormatJS, FormatCJS}

// ParseFormat converts a format name or common alias into a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "ts", "typescript", "mts", "cts":
		return FormatTS, nil
	case "js", "mjs", "esm", "javascript":
		return FormatJS, nil
	case "cjs", "commonjs":
		return FormatCJS, nil
	default:
		return "", fmt.Errorf("unknown format %q (want yaml, json, ts, js or cjs)", name)
	}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer format of %s: no file extension", path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", fmt.Errorf("cannot infer format of %s: %w", path, err)
	}
	return f, nil
}

// IsJavaScript reports whether the format is a JS/TS module.
func (f Format) IsJavaScript() bool {
	return f == FormatTS || f == FormatJS || f == FormatCJS
}

// document is the YAML/JSON wire shape of the record.
type document struct {
	DarkMode DarkMode      `json:"darkMode" yaml:"darkMode"`
	Content  []string      `json:"content" yaml:"content"`
	Theme    themeDocument `json:"theme" yaml:"theme"`
	Plugins  []Plugin      `json:"plugins" yaml:"plugins"`
}

type themeDocument struct {
	Extend ThemeExtensions `json:"extend" yaml:"extend"`
}

// inputDocument mirrors document with pointers so absent fields can be told
// apart from empty ones.
type inputDocument struct {
	DarkMode *DarkMode           `json:"darkMode" yaml:"darkMode"`
	Content  *[]string           `json:"content" yaml:"content"`
	Theme    *inputThemeDocument `json:"theme" yaml:"theme"`
	Plugins  *[]Plugin           `json:"plugins" yaml:"plugins"`
}

type inputThemeDocument struct {
	Extend *ThemeExtensions `json:"extend" yaml:"extend"`
}

func (c *Config) document() document {
	return document{
		DarkMode: c.darkMode,
		Content:  c.content,
		Theme:    themeDocument{Extend: c.extend},
		Plugins:  c.plugins,
	}
}

// Marshal serializes the record.
func Marshal(c *Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c.document()); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c.document()); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTS, FormatJS, FormatCJS:
		return renderJS(c, format)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Unmarshal parses and validates a record. Unknown fields are rejected and
// all four fields must be present.
func Unmarshal(data []byte, format Format) (*Config, error) {
	switch format {
	case FormatYAML:
		var in inputDocument
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&in); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("decode yaml: document is empty")
			}
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return in.build()
	case FormatJSON:
		var in inputDocument
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		if dec.More() {
			return nil, errors.New("decode json: trailing data after the config object")
		}
		return in.build()
	case FormatTS, FormatJS, FormatCJS:
		c, err := decodeJS(data)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return nil, err
			}
			return nil, fmt.Errorf("decode %s: %w", format, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func (in inputDocument) build() (*Config, error) {
	var missing []string
	if in.DarkMode == nil {
		missing = append(missing, "darkMode")
	}
	if in.Content == nil {
		missing = append(missing, "content")
	}
	if in.Theme == nil {
		missing = append(missing, "theme")
	} else if in.Theme.Extend == nil {
		missing = append(missing, "theme.extend")
	}
	if in.Plugins == nil {
		missing = append(missing, "plugins")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
	}

	return New(*in.DarkMode, *in.Content, *in.Theme.Extend, *in.Plugins)
}
