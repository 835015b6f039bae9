package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	content := Generate()

	assert.Contains(t, content, "[server]")
	assert.Contains(t, content, `# render = "vi"`)
	assert.Contains(t, content, "# length = 13")

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "line not commented: %q", line)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	cfg, err := Load(Options{
		Environ:   []string{},
		Overrides: map[string]any{"server.host": "https://a.example.com", "export.columns": []string{"name"}},
	})
	require.NoError(t, err)

	out, err := Render(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "retry_delay")
	assert.Contains(t, string(out), "2s")

	path := filepath.Join(t.TempDir(), "viur.toml")
	require.NoError(t, os.WriteFile(path, out, 0644))

	again, err := Load(Options{Path: path, Environ: []string{}})
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}
