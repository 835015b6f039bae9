// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/style"
	"github.com/arthur-debert/viur/pkg/ui/display"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.Summary:
		_, err := fmt.Fprint(r.output, r.summary(v))
		return err
	case string:
		return r.RenderMessage(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) summary(s *display.Summary) string {
	var b strings.Builder

	header := style.TitleStyle.Render(s.Command)
	if s.Target != "" {
		header += " " + style.PathStyle.Render(s.Target)
	}
	if s.DryRun {
		header += " " + style.WarningStyle.Render("(dry run)")
	}
	b.WriteString(header + "\n")

	for _, c := range s.Counts {
		b.WriteString(style.CountStyle.Render(fmt.Sprint(c.Value)) + " " + style.MutedStyle.Render(c.Label) + "\n")
	}
	for _, item := range s.Items {
		b.WriteString(style.Indent(style.SuccessIndicator()+" "+item, 1) + "\n")
	}
	if s.Message != "" {
		b.WriteString(style.InfoIndicator() + " " + s.Message + "\n")
	}
	return b.String()
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(style.ErrorIndicator() + " " + style.ErrorStyle.Render(err.Error()) + "\n")

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(style.Indent(style.MutedStyle.Render(k+":")+" "+fmt.Sprint(details[k]), 1) + "\n")
	}

	_, werr := fmt.Fprint(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Render(msg))
	return err
}
