package export

import (
	"encoding/csv"
	"io"
)

// Sink receives the header and then every rendered row
type Sink interface {
	WriteHeader(columns []string) error
	WriteRow(cells []string) error
}

// CSVSink writes rows as delimited text with quoting where a cell needs it
type CSVSink struct {
	w *csv.Writer
}

// NewCSVSink returns a sink writing to w. A zero delimiter means ','.
func NewCSVSink(w io.Writer, delimiter rune) *CSVSink {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	return &CSVSink{w: cw}
}

func (s *CSVSink) WriteHeader(columns []string) error {
	return s.w.Write(columns)
}

func (s *CSVSink) WriteRow(cells []string) error {
	return s.w.Write(cells)
}

// Flush writes buffered rows and reports any earlier write error
func (s *CSVSink) Flush() error {
	s.w.Flush()
	return s.w.Error()
}
