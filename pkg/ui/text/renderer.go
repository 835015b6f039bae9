// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/viur/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.Summary:
		return r.renderSummary(v)
	case string:
		return r.RenderMessage(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderSummary(s *display.Summary) error {
	header := s.Command
	if s.Target != "" {
		header += ": " + s.Target
	}
	if s.DryRun {
		header += " (dry run)"
	}
	if _, err := fmt.Fprintln(r.output, header); err != nil {
		return err
	}
	for _, c := range s.Counts {
		if _, err := fmt.Fprintf(r.output, "  %s: %d\n", c.Label, c.Value); err != nil {
			return err
		}
	}
	for _, item := range s.Items {
		if _, err := fmt.Fprintf(r.output, "  %s\n", item); err != nil {
			return err
		}
	}
	if s.Message != "" {
		return r.RenderMessage(s.Message)
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
