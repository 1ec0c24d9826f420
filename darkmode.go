package twconfig

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Strategy selects how dark-mode variants are activated.
type Strategy string

// Dark-mode strategies understood by the build tool.
const (
	// StrategyMedia follows the OS preference via prefers-color-scheme.
	StrategyMedia Strategy = "media"
	// StrategyClass toggles on a class attribute (".dark" unless overridden).
	StrategyClass Strategy = "class"
	// StrategySelector is the newer spelling of class mode with :where() specificity.
	StrategySelector Strategy = "selector"
	// StrategyVariant uses a custom variant selector, which is mandatory.
	StrategyVariant Strategy = "variant"
)

// DefaultDarkSelector is used by class and selector strategies without an override.
const DefaultDarkSelector = ".dark"

var strategies = []Strategy{StrategyMedia, StrategyClass, StrategySelector, StrategyVariant}

// ParseStrategy converts a strategy tag into a Strategy.
func ParseStrategy(tag string) (Strategy, error) {
	for _, s := range strategies {
		if string(s) == tag {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown dark mode strategy %q (want one of %s)", tag, strategyList())
}

func strategyList() string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// DarkMode is the dark-mode setting: a strategy plus an optional custom selector.
type DarkMode struct {
	Strategy Strategy
	Selector string // "" means the strategy default
}

// EffectiveSelector returns the selector the build tool will use, or "" for media mode.
func (d DarkMode) EffectiveSelector() string {
	switch d.Strategy {
	case StrategyClass, StrategySelector:
		if d.Selector != "" {
			return d.Selector
		}
		return DefaultDarkSelector
	case StrategyVariant:
		return d.Selector
	default:
		return ""
	}
}

func (d DarkMode) String() string {
	if d.Selector == "" {
		return string(d.Strategy)
	}
	return fmt.Sprintf("[%s, %s]", d.Strategy, d.Selector)
}

// wire returns the serialized form: a bare tag or a [tag, selector] pair.
func (d DarkMode) wire() any {
	if d.Selector == "" {
		return string(d.Strategy)
	}
	return []string{string(d.Strategy), d.Selector}
}

// darkModeFromWire accepts either a tag string or a one- or two-element list.
// Strategy tags are not checked here; validation reports them as issues.
func darkModeFromWire(v any) (DarkMode, error) {
	switch t := v.(type) {
	case string:
		return DarkMode{Strategy: Strategy(t)}, nil
	case []any:
		if len(t) == 0 || len(t) > 2 {
			return DarkMode{}, fmt.Errorf("darkMode list must have one or two elements, got %d", len(t))
		}
		parts := make([]string, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return DarkMode{}, fmt.Errorf("darkMode list element %d must be a string", i)
			}
			parts[i] = s
		}
		d := DarkMode{Strategy: Strategy(parts[0])}
		if len(parts) == 2 {
			d.Selector = parts[1]
		}
		return d, nil
	default:
		return DarkMode{}, fmt.Errorf("darkMode must be a string or a [strategy, selector] list")
	}
}

// MarshalJSON implements json.Marshaler.
func (d DarkMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DarkMode) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := darkModeFromWire(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d DarkMode) MarshalYAML() (any, error) {
	return d.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DarkMode) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	parsed, err := darkModeFromWire(v)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}
