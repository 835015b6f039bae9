// Package spinner shows progress of long running commands on a terminal.
// On anything that is not a terminal every method is a no-op, so piped
// output stays clean.
package spinner

import (
	"io"
	"sync"

	"github.com/arthur-debert/viur/pkg/ui"
	"github.com/pterm/pterm"
)

// Spinner wraps a pterm spinner
type Spinner struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	printer *pterm.SpinnerPrinter
}

// New returns a spinner writing to out. It only animates when out is a terminal.
func New(out io.Writer) *Spinner {
	return &Spinner{out: out, enabled: ui.IsTerminal(out)}
}

// Enabled reports whether the spinner draws anything
func (s *Spinner) Enabled() bool {
	return s.enabled
}

// Start begins animating with the given text. Starting twice is a no-op.
func (s *Spinner) Start(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.printer != nil {
		return
	}
	printer, err := pterm.DefaultSpinner.
		WithWriter(s.out).
		WithRemoveWhenDone(true).
		Start(text)
	if err != nil {
		s.enabled = false
		return
	}
	s.printer = printer
}

// Update replaces the spinner text
func (s *Spinner) Update(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.printer != nil {
		s.printer.UpdateText(text)
	}
}

// Stop removes the spinner. Safe to call when it never started.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.printer != nil {
		_ = s.printer.Stop()
		s.printer = nil
	}
}
