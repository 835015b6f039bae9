// Package display holds the output-neutral results commands hand to a renderer
package display

// Count is one labelled counter of a command summary
type Count struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// Summary describes the outcome of one command run
type Summary struct {
	Command string   `json:"command"`
	Target  string   `json:"target,omitempty"`
	DryRun  bool     `json:"dryRun,omitempty"`
	Counts  []Count  `json:"counts"`
	Items   []string `json:"items,omitempty"`
	Message string   `json:"message,omitempty"`
}

// NewSummary starts a summary for command acting on target
func NewSummary(command, target string) *Summary {
	return &Summary{Command: command, Target: target, Counts: []Count{}}
}

// Count appends a counter and returns the summary for chaining
func (s *Summary) Count(label string, value int64) *Summary {
	s.Counts = append(s.Counts, Count{Label: label, Value: value})
	return s
}

// Item appends a line item, e.g. a written path
func (s *Summary) Item(item string) *Summary {
	s.Items = append(s.Items, item)
	return s
}

// Lookup returns the value of the counter with the given label
func (s *Summary) Lookup(label string) (int64, bool) {
	for _, c := range s.Counts {
		if c.Label == label {
			return c.Value, true
		}
	}
	return 0, false
}
