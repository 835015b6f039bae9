// Package download mirrors a file repository of a ViUR backend into a local
// folder tree.
package download

import (
	"context"
	"io"
	"path/filepath"

	"github.com/arthur-debert/viur/pkg/client"
	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/filesystem"
	"github.com/arthur-debert/viur/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Defaults for Options
const (
	DefaultRepo   = "Files"
	DefaultModule = "file"
)

// Backend is the part of the client the download needs
type Backend interface {
	ListRootNodes(ctx context.Context, module string) ([]client.Node, error)
	ListTree(ctx context.Context, module, kind, key string) ([]client.Node, error)
	Download(ctx context.Context, module, dlkey string, w io.Writer) (int64, error)
}

// Options configures a download
type Options struct {
	// Repo is the name of the root folder to mirror.
	Repo   string
	Target string
	Module string
	Logger zerolog.Logger
}

// Result counts what was written
type Result struct {
	Folders int
	Files   int
	Bytes   int64
	Skipped int
}

// Run mirrors the repository opts.Repo below opts.Target on fs
func Run(ctx context.Context, backend Backend, fs afero.Fs, opts Options) (*Result, error) {
	if opts.Repo == "" {
		opts.Repo = DefaultRepo
	}
	if opts.Module == "" {
		opts.Module = DefaultModule
	}
	if opts.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no target folder given")
	}

	logger := logging.Component(opts.Logger, "download").With().Str("repo", opts.Repo).Logger()
	done := logging.LogOperationStart(logger, "download")
	defer done()

	roots, err := backend.ListRootNodes(ctx, opts.Module)
	if err != nil {
		return nil, err
	}
	rootKey := ""
	for _, root := range roots {
		if root.Name == opts.Repo {
			rootKey = root.Key
			break
		}
	}
	if rootKey == "" {
		return nil, errors.Newf(errors.ErrNotFound, "cannot find repository named %q", opts.Repo).
			WithDetail("module", opts.Module)
	}

	d := &downloader{backend: backend, fs: fs, module: opts.Module, logger: logger}
	result := &Result{}
	if err := d.folder(ctx, rootKey, opts.Target, result); err != nil {
		return result, err
	}

	logger.Info().Int("folders", result.Folders).Int("files", result.Files).Msg("Download finished")
	return result, nil
}

type downloader struct {
	backend Backend
	fs      afero.Fs
	module  string
	logger  zerolog.Logger
}

func (d *downloader) folder(ctx context.Context, key, target string, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.logger.Info().Str("path", target).Msg("Folder")
	if err := d.fs.MkdirAll(target, filesystem.DirPerm); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot create folder").WithDetail("path", target)
	}
	result.Folders++

	files, err := d.backend.ListTree(ctx, d.module, client.KindLeaf, key)
	if err != nil {
		return err
	}
	for _, file := range files {
		if file.DlKey == "" {
			result.Skipped++
			continue
		}
		if err := d.file(ctx, file, filepath.Join(target, filesystem.SafeName(file.Name)), result); err != nil {
			return err
		}
	}

	nodes, err := d.backend.ListTree(ctx, d.module, client.KindNode, key)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		if err := d.folder(ctx, node.Key, filepath.Join(target, filesystem.SafeName(node.Name)), result); err != nil {
			return err
		}
	}
	return nil
}

func (d *downloader) file(ctx context.Context, file client.Node, path string, result *Result) error {
	f, err := d.fs.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot create file").WithDetail("path", path)
	}
	n, err := d.backend.Download(ctx, d.module, file.DlKey, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = errors.Wrap(closeErr, errors.ErrFileWrite, "cannot write file").WithDetail("path", path)
	}
	if err != nil {
		return err
	}

	d.logger.Info().Str("path", path).Int64("bytes", n).Msg("File")
	result.Files++
	result.Bytes += n
	return nil
}
