package twconfig

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ThemeExtensions maps a theme category ("colors") to token name → CSS value.
// The values are layered on top of the build tool's base theme.
type ThemeExtensions map[string]map[string]string

// Clone returns a deep copy. A nil receiver yields an empty, non-nil map.
func (t ThemeExtensions) Clone() ThemeExtensions {
	out := make(ThemeExtensions, len(t))
	for category, tokens := range t {
		if tokens == nil {
			out[category] = map[string]string{}
			continue
		}
		out[category] = maps.Clone(tokens)
	}
	return out
}

// Categories returns the category names in sorted order.
func (t ThemeExtensions) Categories() []string {
	return slices.Sorted(maps.Keys(t))
}

func (t ThemeExtensions) equal(o ThemeExtensions) bool {
	return maps.EqualFunc(t, o, func(a, b map[string]string) bool {
		return maps.Equal(a, b)
	})
}

// knownCategories are the theme keys of the build tool's core plugins.
var knownCategories = map[string]bool{
	"accentColor": true, "animation": true, "aria": true, "aspectRatio": true,
	"backdropBlur": true, "backdropBrightness": true, "backdropContrast": true,
	"backdropGrayscale": true, "backdropHueRotate": true, "backdropInvert": true,
	"backdropOpacity": true, "backdropSaturate": true, "backdropSepia": true,
	"backgroundColor": true, "backgroundImage": true, "backgroundOpacity": true,
	"backgroundPosition": true, "backgroundSize": true, "blur": true, "borderColor": true,
	"borderOpacity": true, "borderRadius": true, "borderSpacing": true, "borderWidth": true,
	"boxShadow": true, "boxShadowColor": true, "brightness": true, "caretColor": true,
	"colors": true, "columns": true, "container": true, "content": true, "contrast": true,
	"cursor": true, "divideColor": true, "divideOpacity": true, "divideWidth": true,
	"dropShadow": true, "fill": true, "flex": true, "flexBasis": true, "flexGrow": true,
	"flexShrink": true, "fontFamily": true, "fontSize": true, "fontWeight": true,
	"gap": true, "gradientColorStops": true, "gradientColorStopPositions": true,
	"grayscale": true, "gridAutoColumns": true, "gridAutoRows": true, "gridColumn": true,
	"gridColumnEnd": true, "gridColumnStart": true, "gridRow": true, "gridRowEnd": true,
	"gridRowStart": true, "gridTemplateColumns": true, "gridTemplateRows": true,
	"height": true, "hueRotate": true, "inset": true, "invert": true, "keyframes": true,
	"letterSpacing": true, "lineClamp": true, "lineHeight": true, "listStyleImage": true,
	"listStyleType": true, "margin": true, "maxHeight": true, "maxWidth": true,
	"minHeight": true, "minWidth": true, "objectPosition": true, "opacity": true,
	"order": true, "outlineColor": true, "outlineOffset": true, "outlineWidth": true,
	"padding": true, "placeholderColor": true, "placeholderOpacity": true,
	"ringColor": true, "ringOffsetColor": true, "ringOffsetWidth": true,
	"ringOpacity": true, "ringWidth": true, "rotate": true, "saturate": true,
	"scale": true, "screens": true, "scrollMargin": true, "scrollPadding": true,
	"sepia": true, "size": true, "skew": true, "space": true, "spacing": true,
	"stroke": true, "strokeWidth": true, "supports": true, "data": true,
	"textColor": true, "textDecorationColor": true, "textDecorationThickness": true,
	"textIndent": true, "textOpacity": true, "textUnderlineOffset": true,
	"transformOrigin": true, "transitionDelay": true, "transitionDuration": true,
	"transitionProperty": true, "transitionTimingFunction": true, "translate": true,
	"width": true, "willChange": true, "zIndex": true,
}

// ruleCategories hold nested CSS rules rather than token values and cannot be
// expressed as a flat token map.
var ruleCategories = map[string]bool{"keyframes": true}

// IsKnownCategory reports whether name is a core theme key.
func IsKnownCategory(name string) bool {
	return knownCategories[name]
}

// checkCSSValue verifies that value could stand as a single declaration value:
// it must lex cleanly, keep parentheses and brackets balanced and contain no
// top-level ';', '{' or '}'.
func checkCSSValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("value is empty")
	}

	lexer := css.NewLexer(parse.NewInputString(value))
	var stack []byte
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				return fmt.Errorf("value does not lex: %w", err)
			}
			if len(stack) > 0 {
				return fmt.Errorf("unclosed %q", string(stack[len(stack)-1]))
			}
			return nil
		case css.BadStringToken:
			return errors.New("unterminated string")
		case css.BadURLToken:
			return errors.New("malformed url()")
		case css.SemicolonToken:
			return errors.New("';' would end the declaration")
		case css.LeftBraceToken, css.RightBraceToken:
			return fmt.Errorf("%q is not allowed in a value", string(text))
		case css.FunctionToken, css.LeftParenthesisToken:
			stack = append(stack, '(')
		case css.LeftBracketToken:
			stack = append(stack, '[')
		case css.RightParenthesisToken, css.RightBracketToken:
			want := byte('(')
			if tt == css.RightBracketToken {
				want = '['
			}
			if len(stack) == 0 || stack[len(stack)-1] != want {
				return fmt.Errorf("unbalanced %q", string(text))
			}
			stack = stack[:len(stack)-1]
		}
	}
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
