package twconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCSSValue(t *testing.T) {
	tests := []struct {
		value   string
		wantErr string
	}{
		{value: "#0ea5e9"},
		{value: "rgb(14 165 233 / <alpha-value>)"},
		{value: "calc(100% - 2rem)"},
		{value: "'Inter var', ui-sans-serif, system-ui"},
		{value: "var(--brand, theme(colors.sky.500))"},
		{value: "url(/img/hero.png)"},
		{value: "0 1px 2px 0 rgb(0 0 0 / 0.05)"},
		{value: "spin 1s linear infinite"},
		{value: "[data-state=open]"},
		{value: "1.5"},
		{value: "", wantErr: "empty"},
		{value: "   ", wantErr: "empty"},
		{value: "red; color: blue", wantErr: "';' would end the declaration"},
		{value: "red } body {", wantErr: "not allowed"},
		{value: "calc(1px + 2px", wantErr: "unclosed"},
		{value: "1px)", wantErr: "unbalanced"},
		{value: "[a)", wantErr: "unbalanced"},
		{value: "'abc\ndef'", wantErr: "unterminated string"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := checkCSSValue(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestThemeExtensions_Clone(t *testing.T) {
	var nilExt ThemeExtensions
	assert.NotNil(t, nilExt.Clone())

	ext := ThemeExtensions{"colors": {"brand": "#000"}, "spacing": nil}
	clone := ext.Clone()
	clone["colors"]["brand"] = "#fff"

	assert.Equal(t, "#000", ext["colors"]["brand"])
	assert.NotNil(t, clone["spacing"])
}

func TestThemeExtensions_Categories(t *testing.T) {
	ext := ThemeExtensions{"spacing": {}, "colors": {}, "fontFamily": {}}
	assert.Equal(t, []string{"colors", "fontFamily", "spacing"}, ext.Categories())
}

func TestIsKnownCategory(t *testing.T) {
	assert.True(t, IsKnownCategory("colors"))
	assert.True(t, IsKnownCategory("keyframes"))
	assert.False(t, IsKnownCategory("colours"))
}
