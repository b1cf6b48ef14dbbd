package logic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[format]
indent = 4

[suggestions]
fuzzy = false
limit = 20

[theme]
keyword = "#ff00ff"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "    ", config.FormatOptions().Indent)
	assert.Equal(t, SuggestOptions{Fuzzy: false, Limit: 20}, config.SuggestOptions())
	assert.Equal(t, "#ff00ff", config.Theme["keyword"])

	s := newScenario()
	out := FormatWithOptions(s.program, config.FormatOptions()).String()
	assert.Contains(t, out, "\n    text = ")
}

func TestLoadConfigErrors(t *testing.T) {
	for name, content := range map[string]string{
		"negative indent": "[format]\nindent = -2\n",
		"unknown style":   "[theme]\nbackground = \"#000000\"\n",
		"malformed":       "[format\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, t.TempDir(), content))
			assert.Error(t, err)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	var config *Config
	assert.Equal(t, DefaultFormatOptions(), config.FormatOptions())
	assert.Equal(t, DefaultSuggestOptions(), config.SuggestOptions())
	assert.Equal(t, DefaultTheme().Selection, config.ThemeOrDefault().Selection)

	assert.Equal(t, DefaultSuggestOptions(), DefaultConfig().SuggestOptions())
}

func TestFindConfig(t *testing.T) {
	t.Run("walks up", func(t *testing.T) {
		root := t.TempDir()
		want := writeConfig(t, root, "[format]\nindent = 3\n")
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		path, config, err := FindConfig(nested)
		require.NoError(t, err)
		assert.Equal(t, want, path)
		assert.Equal(t, 3, config.Format.Indent)
	})

	t.Run("stops at repository root", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, "[format]\nindent = 3\n")
		repo := filepath.Join(root, "repo")
		nested := filepath.Join(repo, "src")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
		require.NoError(t, os.MkdirAll(nested, 0o755))

		path, config, err := FindConfig(nested)
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Nil(t, config)
	})

	t.Run("reports parse errors", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, "[format]\nindent = -1\n")
		_, _, err := FindConfig(root)
		assert.Error(t, err)
	})
}
