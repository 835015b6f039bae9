package export

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"time"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/filesystem"
	"github.com/arthur-debert/viur/pkg/logging"
	"github.com/arthur-debert/viur/pkg/schema"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// RecordSource provides a module's schema and its records
type RecordSource interface {
	Structure(ctx context.Context, module string) (*schema.Schema, error)
	List(ctx context.Context, module string, params url.Values) iter.Seq2[schema.Record, error]
}

// Options configures an Exporter
type Options struct {
	Columns     []string
	OnlyVisible bool
	EmptyValue  string
	Language    string
	// Params are passed to every list request, e.g. filters or orderby.
	Params url.Values
	// Progress is called after every written row with the running count.
	Progress func(rows int)
}

// Result summarizes a finished export
type Result struct {
	Module  string
	Columns []string
	Rows    int
}

// Exporter streams one module into a Sink
type Exporter struct {
	source RecordSource
	logger zerolog.Logger
	opts   Options
}

// New creates an Exporter reading from source
func New(source RecordSource, logger zerolog.Logger, opts Options) *Exporter {
	return &Exporter{
		source: source,
		logger: logging.Component(logger, "export"),
		opts:   opts,
	}
}

// Export fetches the schema of module, writes the header and then one row per
// record. A partial result is returned alongside any error raised after the
// header was written.
func (e *Exporter) Export(ctx context.Context, module string, sink Sink) (*Result, error) {
	logger := e.logger.With().Str("module", module).Logger()
	done := logging.LogOperationStart(logger, "export")
	defer done()

	s, err := e.source.Structure(ctx, module)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			err = errors.Wrap(err, errors.ErrSchemaNotFound, "cannot fetch structure").
				WithDetail("module", module)
		}
		return nil, err
	}
	if s == nil || s.Len() == 0 {
		return nil, errors.New(errors.ErrSchemaNotFound, "module has no fields").
			WithDetail("module", module)
	}

	renderer := NewRenderer(s, RenderOptions{
		Module:      module,
		Columns:     e.opts.Columns,
		OnlyVisible: e.opts.OnlyVisible,
		EmptyValue:  e.opts.EmptyValue,
		Language:    e.opts.Language,
	})
	result := &Result{Module: module, Columns: renderer.Headers()}
	logger.Debug().Strs("columns", result.Columns).Msg("Computed column layout")

	if err := sink.WriteHeader(result.Columns); err != nil {
		return result, errors.Wrap(err, errors.ErrFileWrite, "cannot write header")
	}

	for row, err := range renderer.Rows(e.source.List(ctx, module, e.opts.Params)) {
		if err != nil {
			return result, err
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := sink.WriteRow(row); err != nil {
			return result, errors.Wrap(err, errors.ErrFileWrite, "cannot write row").
				WithDetail("row", result.Rows+1)
		}
		result.Rows++
		if e.opts.Progress != nil {
			e.opts.Progress(result.Rows)
		}
	}

	logger.Info().Int("rows", result.Rows).Msg("Export finished")
	return result, nil
}

// ExportFile exports module into a new CSV file at path on fs
func (e *Exporter) ExportFile(ctx context.Context, fs afero.Fs, module, path string, delimiter rune) (*Result, error) {
	f, err := filesystem.Create(fs, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "cannot create output file").
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	sink := NewCSVSink(f, delimiter)
	result, err := e.Export(ctx, module, sink)
	if flushErr := sink.Flush(); err == nil && flushErr != nil {
		err = errors.Wrap(flushErr, errors.ErrFileWrite, "cannot flush output file").
			WithDetail("path", path)
	}
	return result, err
}

// DefaultFileName returns the output name used when none is given
func DefaultFileName(module string, now time.Time) string {
	return fmt.Sprintf("export_%s_%s.csv", module, now.Format("2006-01-02_15-04-05"))
}
