package export

import (
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/format"
	"github.com/arthur-debert/viur/pkg/schema"
	"github.com/shopspring/decimal"
)

// defaultFormat is used by relation and file fields that declare none.
const defaultFormat = "$(dest.name)"

// RenderOptions selects and shapes the output columns
type RenderOptions struct {
	// Module is only used to give errors context.
	Module string
	// Columns restricts the export to these field names; empty means all.
	Columns []string
	// OnlyVisible drops fields the schema marks as invisible.
	OnlyVisible bool
	// EmptyValue is written for absent or falsy values.
	EmptyValue string
	// Language is the preferred language inside relation labels.
	Language string
}

// Column is one output column: a field, or one language of a translated field
type Column struct {
	Field    *schema.Field
	Language string
}

// Header returns the column's display label
func (c Column) Header() string {
	if c.Language != "" {
		return fmt.Sprintf("%s [%s]", c.Field.Description, c.Language)
	}
	return c.Field.Description
}

// Name returns the column's technical name, e.g. "title.en"
func (c Column) Name() string {
	if c.Language != "" {
		return c.Field.Name + "." + c.Language
	}
	return c.Field.Name
}

// Renderer maps records to rows for a fixed column layout
type Renderer struct {
	opts    RenderOptions
	columns []Column
}

// NewRenderer computes the column layout for s
func NewRenderer(s *schema.Schema, opts RenderOptions) *Renderer {
	var wanted map[string]bool
	if len(opts.Columns) > 0 {
		wanted = make(map[string]bool, len(opts.Columns))
		for _, c := range opts.Columns {
			wanted[c] = true
		}
	}

	var columns []Column
	for _, f := range s.Fields() {
		if wanted != nil && !wanted[f.Name] {
			continue
		}
		if opts.OnlyVisible && !f.Visible {
			continue
		}
		if f.HasLanguages() {
			for _, lang := range f.Languages {
				columns = append(columns, Column{Field: f, Language: lang})
			}
			continue
		}
		columns = append(columns, Column{Field: f})
	}

	return &Renderer{opts: opts, columns: columns}
}

// Columns returns the output columns in order
func (r *Renderer) Columns() []Column {
	return r.columns
}

// Headers returns the display label of every column
func (r *Renderer) Headers() []string {
	headers := make([]string, len(r.columns))
	for i, c := range r.columns {
		headers[i] = c.Header()
	}
	return headers
}

// Render renders one record into one cell per column
func (r *Renderer) Render(rec schema.Record) ([]string, error) {
	row := make([]string, 0, len(r.columns))
	for _, col := range r.columns {
		raw, ok := rec[col.Field.Name]
		if !ok {
			return nil, r.fail(errors.New(errors.ErrFieldMissing, "record has no value for declared field"), rec, col)
		}

		if col.Language != "" && raw != nil {
			byLang, ok := format.AsMap(raw)
			if !ok {
				return nil, r.fail(errors.Newf(errors.ErrRender, "expected a value per language, got %T", raw), rec, col)
			}
			raw = byLang[col.Language]
		}

		if isEmpty(raw) {
			row = append(row, r.opts.EmptyValue)
			continue
		}

		cell, err := r.renderValue(col.Field, raw)
		if err != nil {
			return nil, r.fail(err, rec, col)
		}
		row = append(row, cell)
	}
	return row, nil
}

// Rows lazily renders a record sequence. Iteration stops at the first error.
func (r *Renderer) Rows(records iter.Seq2[schema.Record, error]) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for rec, err := range records {
			if err != nil {
				yield(nil, err)
				return
			}
			row, err := r.Render(rec)
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

func (r *Renderer) renderValue(f *schema.Field, raw any) (string, error) {
	switch f.Kind {
	case schema.KindText:
		if items, ok := format.AsList(raw); ok {
			return format.JoinValues(items), nil
		}
		return format.Stringify(raw), nil

	case schema.KindSelect:
		if items, ok := format.AsList(raw); ok {
			labels := make([]string, len(items))
			for i, item := range items {
				labels[i] = selectLabel(f, item)
			}
			return strings.Join(labels, format.Separator), nil
		}
		return selectLabel(f, raw), nil

	case schema.KindFile:
		return r.renderFiles(f, raw)

	case schema.KindNumeric:
		return renderNumeric(f, raw)

	case schema.KindRelational:
		return format.Substitute(formatOf(f), raw, f.RelSkel, r.opts.Language), nil

	case schema.KindRecord:
		if f.Format != "" {
			return format.Substitute(f.Format, raw, f.Using, r.opts.Language), nil
		}
		return format.Stringify(raw), nil

	default:
		return format.Stringify(raw), nil
	}
}

// renderFiles renders "<label> (<serving url>)" per file, one per line.
func (r *Renderer) renderFiles(f *schema.Field, raw any) (string, error) {
	items, ok := format.AsList(raw)
	if !ok {
		items = []any{raw}
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		wrapper, ok := format.AsMap(item)
		if !ok {
			return "", errors.Newf(errors.ErrRender, "malformed file reference: %T", item)
		}
		dest, ok := format.AsMap(wrapper["dest"])
		if !ok {
			return "", errors.New(errors.ErrRender, "file reference without destination record")
		}

		// The label may address destination fields directly or through dest.
		view := make(map[string]any, len(dest)+len(wrapper))
		for k, v := range dest {
			view[k] = v
		}
		for k, v := range wrapper {
			view[k] = v
		}

		label := format.Substitute(formatOf(f), view, f.RelSkel, r.opts.Language)
		lines = append(lines, fmt.Sprintf("%s (%s)", label, format.Stringify(dest["servingurl"])))
	}
	return strings.Join(lines, "\n"), nil
}

func renderNumeric(f *schema.Field, raw any) (string, error) {
	if f.Precision == nil {
		return "", errors.New(errors.ErrRender, "numeric field declares no precision")
	}
	d, err := toDecimal(raw)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "cannot round value")
	}
	return d.RoundBank(int32(*f.Precision)).String(), nil
}

func toDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	default:
		return decimal.Zero, fmt.Errorf("not a number: %T", raw)
	}
}

func selectLabel(f *schema.Field, v any) string {
	key := format.Stringify(v)
	if label, ok := f.Values.Label(key); ok {
		return label
	}
	return key
}

func formatOf(f *schema.Field) string {
	if f.Format != "" {
		return f.Format
	}
	return defaultFormat
}

// isEmpty reports the values that render as the empty placeholder: nil,
// false, zero numbers, empty strings and empty collections.
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		return err == nil && f == 0
	case float64:
		return x == 0
	case float32:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	}
	if m, ok := format.AsMap(v); ok {
		return len(m) == 0
	}
	if l, ok := format.AsList(v); ok {
		return len(l) == 0
	}
	return false
}

func (r *Renderer) fail(cause error, rec schema.Record, col Column) *errors.ViurError {
	err, ok := cause.(*errors.ViurError)
	if !ok {
		err = errors.Wrap(cause, errors.ErrRender, "cannot render value")
	}
	err.WithDetail("module", r.opts.Module).
		WithDetail("field", col.Field.Name).
		WithDetail("key", rec.Key())
	if col.Language != "" {
		err.WithDetail("language", col.Language)
	}
	return err
}
