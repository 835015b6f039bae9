package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/style"
	"github.com/arthur-debert/viur/pkg/ui"
	"github.com/arthur-debert/viur/pkg/ui/display"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *display.Summary {
	s := display.NewSummary("export", "user").Count("rows", 2).Item("user.csv")
	s.Message = "done"
	return s
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{"create terminal renderer", ui.FormatTerminal, false},
		{"create text renderer", ui.FormatText, false},
		{"create json renderer", ui.FormatJSON, false},
		{"create auto renderer with buffer", ui.FormatAuto, false},
		{"invalid format", ui.Format(999), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := ui.NewRenderer(tt.format, &bytes.Buffer{})
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				assert.Contains(t, err.Error(), "unknown format")
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, renderer)
			}
		})
	}
}

func TestTextRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	t.Run("summary", func(t *testing.T) {
		buf.Reset()
		s := sampleSummary()
		s.DryRun = true
		require.NoError(t, renderer.RenderResult(s))
		assert.Equal(t, "export: user (dry run)\n  rows: 2\n  user.csv\ndone\n", buf.String())
	})

	t.Run("error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(errors.New(errors.ErrAuth, "login failed")))
		assert.Equal(t, "Error: [AUTH] login failed\n", buf.String())
	})
}

func TestTerminalRenderer(t *testing.T) {
	style.UseProfile(termenv.Ascii)

	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	t.Run("summary", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleSummary()))
		out := buf.String()
		assert.Contains(t, out, "export user")
		assert.Contains(t, out, "2 rows")
		assert.Contains(t, out, "✓ user.csv")
		assert.Contains(t, out, "done")
	})

	t.Run("error with details", func(t *testing.T) {
		buf.Reset()
		err := errors.New(errors.ErrSchemaNotFound, "no schema").WithDetail("module", "user")
		require.NoError(t, renderer.RenderError(err))
		assert.Contains(t, buf.String(), "[SCHEMA_NOT_FOUND] no schema")
		assert.Contains(t, buf.String(), "module: user")
	})
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "hello world", result["message"])
	})

	t.Run("render coded error", func(t *testing.T) {
		buf.Reset()
		err := errors.New(errors.ErrRender, "bad value").WithDetail("field", "score")
		require.NoError(t, renderer.RenderError(err))

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "RENDER", result["code"])
		assert.Equal(t, map[string]interface{}{"field": "score"}, result["details"])
	})

	t.Run("render plain error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(assert.AnError))

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, assert.AnError.Error(), result["error"])
		assert.NotContains(t, result, "code")
	})

	t.Run("render summary", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleSummary()))

		var result display.Summary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, *sampleSummary(), result)
	})
}
