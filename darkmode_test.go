package twconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseStrategy(t *testing.T) {
	for _, tag := range []string{"media", "class", "selector", "variant"} {
		s, err := ParseStrategy(tag)
		require.NoError(t, err)
		assert.Equal(t, Strategy(tag), s)
	}

	_, err := ParseStrategy("Class")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want one of media, class, selector, variant")
}

func TestDarkMode_EffectiveSelector(t *testing.T) {
	tests := []struct {
		mode DarkMode
		want string
	}{
		{DarkMode{Strategy: StrategyMedia}, ""},
		{DarkMode{Strategy: StrategyClass}, ".dark"},
		{DarkMode{Strategy: StrategyClass, Selector: ".theme-dark"}, ".theme-dark"},
		{DarkMode{Strategy: StrategySelector}, ".dark"},
		{DarkMode{Strategy: StrategyVariant, Selector: "&:is(.dark *)"}, "&:is(.dark *)"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.EffectiveSelector())
		})
	}
}

func TestDarkMode_JSON(t *testing.T) {
	tests := []struct {
		name string
		mode DarkMode
		wire string
	}{
		{name: "tag", mode: DarkMode{Strategy: StrategyClass}, wire: `"class"`},
		{name: "pair", mode: DarkMode{Strategy: StrategyClass, Selector: ".theme-dark"}, wire: `["class",".theme-dark"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.mode)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wire, string(data))

			var got DarkMode
			require.NoError(t, json.Unmarshal([]byte(tt.wire), &got))
			assert.Equal(t, tt.mode, got)
		})
	}
}

func TestDarkMode_UnmarshalWireForms(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    DarkMode
		wantErr string
	}{
		{name: "tag", yaml: `media`, want: DarkMode{Strategy: StrategyMedia}},
		{name: "single element list", yaml: `[selector]`, want: DarkMode{Strategy: StrategySelector}},
		{name: "pair", yaml: `[variant, "&:where(.dark, .dark *)"]`, want: DarkMode{Strategy: StrategyVariant, Selector: "&:where(.dark, .dark *)"}},
		{name: "unknown tag kept for validation", yaml: `auto`, want: DarkMode{Strategy: "auto"}},
		{name: "empty list", yaml: `[]`, wantErr: "one or two elements"},
		{name: "three elements", yaml: `[class, a, b]`, wantErr: "one or two elements"},
		{name: "non-string element", yaml: `[class, 1]`, wantErr: "element 1 must be a string"},
		{name: "boolean", yaml: `false`, wantErr: "must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got DarkMode
			err := yaml.Unmarshal([]byte(tt.yaml), &got)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
