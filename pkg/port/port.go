// Package port renames legacy backend symbols across a Python source tree.
//
// Every file with a matching extension outside the ignored directories runs
// through the ordered Lookup table. A dry run prints a unified diff per
// changed file; otherwise the original is kept as <file>.bak unless backups
// are disabled, and the file is rewritten.
package port

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/filesystem"
	"github.com/arthur-debert/viur/pkg/logging"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Defaults for Options
var (
	DefaultIgnoreDirs = []string{"viur", "flare", "html5"}
	DefaultExtensions = []string{"py"}
)

// BackupSuffix is appended to the name of a file's backup copy
const BackupSuffix = ".bak"

// Options configures a porting run
type Options struct {
	Root     string
	DryRun   bool
	NoBackup bool
	// IgnoreDirs skips directories whose path below Root contains one of
	// these words.
	IgnoreDirs []string
	// Extensions lists the file extensions to rewrite, without dot.
	Extensions []string
	Logger     zerolog.Logger
}

// Result lists what was scanned and changed
type Result struct {
	Scanned  int
	Modified []string
}

// Run ports the tree below opts.Root on fs and reports to out
func Run(fs afero.Fs, opts Options, out io.Writer) (*Result, error) {
	if opts.IgnoreDirs == nil {
		opts.IgnoreDirs = DefaultIgnoreDirs
	}
	if opts.Extensions == nil {
		opts.Extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		exts[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	logger := logging.Component(opts.Logger, "port").With().Str("root", opts.Root).Logger()
	done := logging.LogOperationStart(logger, "port")
	defer done()

	info, err := fs.Stat(opts.Root)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%q is not a directory", opts.Root).WithDetail("root", opts.Root)
	}

	result := &Result{}
	err = afero.Walk(fs, opts.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrap(err, errors.ErrFileAccess, "cannot walk tree").WithDetail("path", path)
		}
		if info.IsDir() {
			if ignored(opts.Root, path, opts.IgnoreDirs) {
				logger.Debug().Str("path", path).Msg("Skipping directory")
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if !exts[ext] {
			return nil
		}

		result.Scanned++
		changed, err := portFile(fs, path, opts, out)
		if err != nil {
			return err
		}
		if changed {
			result.Modified = append(result.Modified, path)
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	logger.Info().Int("scanned", result.Scanned).Int("modified", len(result.Modified)).Msg("Porting finished")
	return result, nil
}

func portFile(fs afero.Fs, path string, opts Options, out io.Writer) (bool, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrFileAccess, "cannot read file").WithDetail("path", path)
	}
	original := string(data)
	content, count := Apply(original)
	if count == 0 {
		return false, nil
	}

	if opts.DryRun {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(original),
			B:        difflib.SplitLines(content),
			FromFile: path,
			ToFile:   path,
			Context:  3,
		})
		if err != nil {
			return false, errors.Wrap(err, errors.ErrInternal, "cannot build diff").WithDetail("path", path)
		}
		_, _ = fmt.Fprint(out, diff)
		return true, nil
	}

	if !opts.NoBackup {
		if err := filesystem.CopyFile(fs, path, path+BackupSuffix); err != nil {
			return false, errors.Wrap(err, errors.ErrFileWrite, "cannot write backup").WithDetail("path", path)
		}
	}
	if err := afero.WriteFile(fs, path, []byte(content), filesystem.FilePerm); err != nil {
		return false, errors.Wrap(err, errors.ErrFileWrite, "cannot write file").WithDetail("path", path)
	}
	_, _ = fmt.Fprintf(out, "Modified %s\n", path)
	return true, nil
}

// ignored reports whether dir, relative to root, contains an ignored word
func ignored(root, dir string, words []string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return false
	}
	for _, w := range words {
		if w != "" && strings.Contains(rel, w) {
			return true
		}
	}
	return false
}
