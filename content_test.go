package twconfig

import (
	"os"
	"path/filepath"
	"testing"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_PagesScenario(t *testing.T) {
	c, err := New(DarkMode{Strategy: StrategyClass}, []string{"./pages/**/*.tsx"}, nil, nil)
	require.NoError(t, err)

	m, err := c.Matcher()
	require.NoError(t, err)

	assert.True(t, m.Match("./pages/index.tsx"))
	assert.False(t, m.Match("./lib/util.ts"))
}

func TestMatcher_Match(t *testing.T) {
	m, err := NewMatcher(DefaultContent)
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"pages/index.tsx", true},
		{"./pages/blog/[slug].tsx", true},
		{"components/ui/Button.jsx", true},
		{"app/layout.mdx", true},
		{`app\dashboard\page.tsx`, true},
		{"pages/index.css", false},
		{"src/pages/index.tsx", false},
		{"pages", false},
		{"../pages/index.tsx", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.path))
		})
	}
}

func TestMatcher_MatchDetail(t *testing.T) {
	m, err := NewMatcher([]string{
		"./src/**/*.{ts,tsx}",
		"!./src/**/*.test.tsx",
		"./stories/*.mdx",
	})
	require.NoError(t, err)

	tests := []struct {
		path string
		want MatchResult
	}{
		{
			path: "src/app.tsx",
			want: MatchResult{Path: "src/app.tsx", Matched: true, Pattern: "./src/**/*.{ts,tsx}"},
		},
		{
			path: "src/app.test.tsx",
			want: MatchResult{Path: "src/app.test.tsx", Pattern: "./src/**/*.{ts,tsx}", ExcludedBy: "!./src/**/*.test.tsx"},
		},
		{
			path: "stories/Button.mdx",
			want: MatchResult{Path: "stories/Button.mdx", Matched: true, Pattern: "./stories/*.mdx"},
		},
		{
			path: "stories/nested/Button.mdx",
			want: MatchResult{Path: "stories/nested/Button.mdx"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MatchDetail(tt.path))
		})
	}
}

func TestMatcher_BaseDir(t *testing.T) {
	base := t.TempDir()
	m, err := NewMatcher([]string{"./pages/**/*.tsx"}, WithBaseDir(base))
	require.NoError(t, err)

	assert.True(t, m.Match(filepath.Join(base, "pages", "index.tsx")))
	assert.False(t, m.Match(filepath.Join(base, "lib", "util.ts")))
	assert.False(t, m.Match(filepath.Join(filepath.Dir(base), "pages", "index.tsx")), "outside the base dir")
	assert.False(t, m.Match("pages/index.tsx"), "relative to the working directory, not the base dir")
}

func TestMatcher_BaseDirRelativePaths(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	m, err := NewMatcher([]string{"./pages/**/*.tsx", "!./pages/drafts/**"}, WithBaseDir("sub"))
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"sub/pages/index.tsx", true},
		{"./sub/pages/blog/post.tsx", true},
		{"sub/pages/drafts/wip.tsx", false},
		{"pages/index.tsx", false},
		{"sub/lib/util.ts", false},
		{"../sub/pages/index.tsx", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Match(tt.path), tt.path)
	}
}

func TestMatcher_AbsolutePattern(t *testing.T) {
	m, err := NewMatcher([]string{"/srv/app/pages/**/*.tsx"}, WithBaseDir("/srv/app"))
	require.NoError(t, err)

	assert.True(t, m.Match("/srv/app/pages/index.tsx"))
	assert.True(t, m.Match("/srv/app/pages/blog/post.tsx"))
	assert.False(t, m.Match("/srv/other/pages/index.tsx"))
}

func TestMatcher_GitIgnore(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitignore")
	require.NoError(t, os.WriteFile(path, []byte("pages/generated/\n*.gen.tsx\n"), 0o644))
	gi, err := ignore.CompileIgnoreFile(path)
	require.NoError(t, err)

	m, err := NewMatcher([]string{"./pages/**/*.tsx"}, WithGitIgnore(gi))
	require.NoError(t, err)

	assert.True(t, m.Match("pages/index.tsx"))

	res := m.MatchDetail("pages/generated/icons.tsx")
	assert.False(t, res.Matched)
	assert.Equal(t, ExcludedByGitIgnore, res.ExcludedBy)

	assert.False(t, m.Match("pages/api.gen.tsx"))
}

func TestNewMatcher_Errors(t *testing.T) {
	_, err := NewMatcher([]string{"./src/**/*.tsx", ""})
	require.Error(t, err)

	_, err = NewMatcher([]string{"src/[a-"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "src/[a-")
}

func TestMatcher_NoPatterns(t *testing.T) {
	m, err := NewMatcher(nil)
	require.NoError(t, err)
	assert.False(t, m.Match("pages/index.tsx"))
}
