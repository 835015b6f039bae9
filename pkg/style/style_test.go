package style

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMarkupPlainProfile(t *testing.T) {
	UseProfile(termenv.Ascii)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"single_tag", "[success]done[/success]", "done"},
		{"two_tags", "[bold]a[/bold] and [path]/tmp/x[/path]", "a and /tmp/x"},
		{"unknown_tag", "[nope]x[/nope]", "[nope]x[/nope]"},
		{"mismatched", "[bold]x[/muted]", "[bold]x[/muted]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.in))
		})
	}
}

func TestRenderTemplate(t *testing.T) {
	UseProfile(termenv.Ascii)

	got := RenderTemplate("[title]{{module}}[/title]: {{rows}} rows", map[string]string{
		"module": "user",
		"rows":   "12",
	})
	assert.Equal(t, "user: 12 rows", got)
}

func TestMarkupColorProfile(t *testing.T) {
	UseProfile(termenv.TrueColor)
	defer UseProfile(termenv.Ascii)

	got := Render("[error]boom[/error]")
	assert.Contains(t, got, "boom")
	assert.NotEqual(t, "boom", got)
}

func TestIndicators(t *testing.T) {
	UseProfile(termenv.Ascii)

	assert.Equal(t, "✓", SuccessIndicator())
	assert.Equal(t, "✗", ErrorIndicator())
	assert.Equal(t, "  x", Indent("x", 1))
}
