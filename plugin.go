package twconfig

import (
	"encoding/json"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// Plugin references a build-tool plugin by module specifier.
// Options holds scalar arguments passed when the plugin is invoked,
// e.g. require('@tailwindcss/forms')({ strategy: 'class' }).
type Plugin struct {
	Module  string
	Options map[string]string
}

func (p Plugin) clone() Plugin {
	if p.Options != nil {
		p.Options = maps.Clone(p.Options)
	}
	return p
}

func (p Plugin) equal(o Plugin) bool {
	return p.Module == o.Module && maps.Equal(p.Options, o.Options)
}

type pluginObject struct {
	Module  string            `json:"module" yaml:"module"`
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// MarshalJSON writes a bare module string unless options are present.
func (p Plugin) MarshalJSON() ([]byte, error) {
	if len(p.Options) == 0 {
		return json.Marshal(p.Module)
	}
	return json.Marshal(pluginObject(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Plugin) UnmarshalJSON(data []byte) error {
	var module string
	if err := json.Unmarshal(data, &module); err == nil {
		*p = Plugin{Module: module}
		return nil
	}
	var obj pluginObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("plugin must be a module string or {module, options}: %w", err)
	}
	*p = Plugin(obj)
	return nil
}

// MarshalYAML writes a bare module string unless options are present.
func (p Plugin) MarshalYAML() (any, error) {
	if len(p.Options) == 0 {
		return p.Module, nil
	}
	return pluginObject(p), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Plugin) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*p = Plugin{Module: node.Value}
		return nil
	case yaml.MappingNode:
		var obj pluginObject
		if err := node.Decode(&obj); err != nil {
			return err
		}
		*p = Plugin(obj)
		return nil
	default:
		return fmt.Errorf("line %d: plugin must be a module string or {module, options}", node.Line)
	}
}
