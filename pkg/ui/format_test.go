package ui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/arthur-debert/viur/pkg/ui"
	"github.com/stretchr/testify/assert"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"parse empty", "", ui.FormatAuto, false},
		{"parse auto", "auto", ui.FormatAuto, false},
		{"parse term", "term", ui.FormatTerminal, false},
		{"parse terminal", "terminal", ui.FormatTerminal, false},
		{"parse text", "text", ui.FormatText, false},
		{"parse plain", "plain", ui.FormatText, false},
		{"parse json", "json", ui.FormatJSON, false},
		{"parse mixed case JSON", "Json", ui.FormatJSON, false},
		{"parse invalid format", "invalid", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, format)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Run("buffer is plain text", func(t *testing.T) {
		assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}))
		assert.False(t, ui.IsTerminal(&bytes.Buffer{}))
	})

	t.Run("NO_COLOR forces text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		assert.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.False(t, ui.IsTerminal(f))
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})
}
