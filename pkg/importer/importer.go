package importer

import (
	"context"
	"encoding/csv"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/viur/pkg/client"
	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Backend is the part of the client the importer needs
type Backend interface {
	Query(ctx context.Context, module string, params url.Values) (*client.Page, error)
	Add(ctx context.Context, module string, values url.Values) (string, error)
	Edit(ctx context.Context, module, key string, values url.Values) (string, error)
}

// Backend answers of accepted writes
const (
	addSuccess  = "addSuccess"
	editSuccess = "editSuccess"
)

// Options configures an import
type Options struct {
	Path string
	// Module defaults to the base name of Path without extension.
	Module string
	// Delimiter defaults to ';'.
	Delimiter rune
	// KeyColumn names the column used to find existing entries.
	KeyColumn    string
	AllowUpdate  bool
	DryRun       bool
	Translations []Translation
	Rules        []Rule
	Logger       zerolog.Logger
}

// Result counts what happened to the rows
type Result struct {
	Module  string
	Rows    int
	Added   int
	Updated int
	Skipped int
	Failed  int
}

// ModuleFromPath derives the module name from a file name
func ModuleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Run imports the file at opts.Path from fs
func Run(ctx context.Context, backend Backend, fs afero.Fs, opts Options) (*Result, error) {
	module := opts.Module
	if module == "" {
		module = ModuleFromPath(opts.Path)
	}
	logger := logging.Component(opts.Logger, "import").With().Str("module", module).Logger()
	done := logging.LogOperationStart(logger, "import")
	defer done()

	f, err := fs.Open(opts.Path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot open CSV file").WithDetail("path", opts.Path)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot read CSV header").WithDetail("path", opts.Path)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	if opts.KeyColumn != "" && !contains(header, opts.KeyColumn) {
		return nil, errors.Newf(errors.ErrInvalidInput, "key column %q does not exist", opts.KeyColumn).
			WithDetail("path", opts.Path)
	}
	for _, rule := range opts.Rules {
		if err := rule.Check(header); err != nil {
			return nil, err
		}
	}

	imp := &importer{backend: backend, module: module, opts: opts, logger: logger}
	result := &Result{Module: module}
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, errors.Wrap(err, errors.ErrInvalidInput, "malformed CSV").
				WithDetail("path", opts.Path).
				WithDetail("line", line)
		}

		result.Rows++
		if err := imp.row(ctx, toRow(header, cells), result); err != nil {
			if viurErr, ok := err.(*errors.ViurError); ok {
				return result, viurErr.WithDetail("line", line)
			}
			return result, err
		}
	}

	logger.Info().
		Int("added", result.Added).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("Import finished")
	return result, nil
}

type importer struct {
	backend Backend
	module  string
	opts    Options
	logger  zerolog.Logger
}

func (imp *importer) row(ctx context.Context, row map[string]string, result *Result) error {
	key := ""
	if imp.opts.KeyColumn != "" {
		value := row[imp.opts.KeyColumn]
		page, err := imp.backend.Query(ctx, imp.module, url.Values{imp.opts.KeyColumn: {value}})
		if err != nil {
			return err
		}
		switch len(page.Records) {
		case 0:
		case 1:
			if !imp.opts.AllowUpdate {
				imp.logger.Info().Str("value", value).Msg("Entry exists and will not be updated")
				result.Skipped++
				return nil
			}
			key = page.Records[0].Key()
		default:
			imp.logger.Error().Str("value", value).Int("matches", len(page.Records)).Msg("Key column value is not unique, skipping")
			result.Skipped++
			return nil
		}
	}

	for _, t := range imp.opts.Translations {
		t.Apply(row)
	}
	for _, rule := range imp.opts.Rules {
		v, err := rule.Eval(row)
		if err != nil {
			return err
		}
		row[rule.Column] = v
	}

	values := make(url.Values, len(row))
	for k, v := range row {
		values.Set(k, v)
	}

	if imp.opts.DryRun {
		imp.logger.Info().Str("key", key).Interface("values", row).Msg("Dry run, not sending")
		if key != "" {
			result.Updated++
		} else {
			result.Added++
		}
		return nil
	}

	if key != "" {
		action, err := imp.backend.Edit(ctx, imp.module, key, values)
		if err != nil {
			return err
		}
		imp.count(result, action, editSuccess, &result.Updated)
		return nil
	}

	action, err := imp.backend.Add(ctx, imp.module, values)
	if err != nil {
		return err
	}
	imp.count(result, action, addSuccess, &result.Added)
	return nil
}

func (imp *importer) count(result *Result, action, success string, counter *int) {
	if action == success {
		*counter++
		return
	}
	imp.logger.Warn().Str("action", action).Msg("Backend rejected entry")
	result.Failed++
}

func toRow(header, cells []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(cells) {
			row[h] = cells[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
