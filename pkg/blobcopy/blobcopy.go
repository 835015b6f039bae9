// Package blobcopy copies the blob store of one ViUR instance into another.
//
// The source is paged through its blob export. Every blob the destination
// does not hold yet is downloaded from the source and uploaded to the
// destination under its old key. Blobs known to be present are remembered in
// a KnownStore to save hasblob requests in later runs.
package blobcopy

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/viur/pkg/client"
	"github.com/arthur-debert/viur/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultSkipContentTypes are never copied unless configured otherwise
var DefaultSkipContentTypes = []string{"application/pdf"}

// Source is the instance blobs are read from
type Source interface {
	ExportBlobs(ctx context.Context, backupKey, cursor string) (*client.BlobPage, error)
	FetchBlob(ctx context.Context, blobKey string) ([]byte, error)
}

// Destination is the instance blobs are written to
type Destination interface {
	HasBlob(ctx context.Context, blobKey, backupKey string) (bool, error)
	UploadURL(ctx context.Context, backupKey string) (string, error)
	UploadBlob(ctx context.Context, uploadURL, backupKey string, blob client.Blob) (string, error)
}

// Options configures a copy
type Options struct {
	SourceKey      string
	DestinationKey string
	// Override copies blobs even if the destination already holds them.
	Override         bool
	SkipContentTypes []string
	// Known defaults to an in-memory store.
	Known  KnownStore
	Logger zerolog.Logger
}

// Result counts the blobs seen
type Result struct {
	Seen    int
	Copied  int
	Present int
	Skipped int
	Batches int
}

// HostURL returns the base URL of an application id. Ids naming localhost are
// served over plain http.
func HostURL(appID string) string {
	if strings.Contains(appID, "localhost") {
		return fmt.Sprintf("http://%s/", appID)
	}
	return fmt.Sprintf("https://%s.appspot.com/", appID)
}

// Run copies every blob of src missing in dst
func Run(ctx context.Context, src Source, dst Destination, opts Options) (*Result, error) {
	logger := logging.Component(opts.Logger, "blobcopy")
	done := logging.LogOperationStart(logger, "copy-blobs")
	defer done()

	known := opts.Known
	if known == nil {
		known = NewMemoryStore()
	}
	skip := make(map[string]bool)
	for _, ct := range opts.SkipContentTypes {
		skip[strings.ToLower(ct)] = true
	}

	result := &Result{}
	cursor := ""
	for {
		page, err := src.ExportBlobs(ctx, opts.SourceKey, cursor)
		if err != nil {
			return result, err
		}
		if len(page.Values) == 0 {
			break
		}
		result.Batches++
		result.Seen += len(page.Values)
		logger.Info().Int("total", result.Seen).Msg("Fetched blob batch")

		copied := 0
		for _, ref := range page.Values {
			if err := ctx.Err(); err != nil {
				return result, err
			}

			if !opts.Override {
				present, err := hasBlob(ctx, dst, known, ref.Key, opts.DestinationKey)
				if err != nil {
					return result, err
				}
				if present {
					result.Present++
					continue
				}
			}

			if skip[strings.ToLower(ref.ContentType)] {
				logger.Info().Str("blob", ref.Key).Str("contentType", ref.ContentType).Msg("Ignoring content type")
				result.Skipped++
				continue
			}

			logger.Info().Str("blob", ref.Key).Msg("Copying blob")
			if err := copyBlob(ctx, src, dst, ref, opts.DestinationKey); err != nil {
				return result, err
			}
			copied++
			result.Copied++
		}
		logger.Info().Int("new", copied).Int("batch", len(page.Values)).Msg("Batch done")

		if page.Cursor == "" || page.Cursor == cursor {
			break
		}
		cursor = page.Cursor
	}

	logger.Info().Int("copied", result.Copied).Int("seen", result.Seen).Msg("Blob copy finished")
	return result, nil
}

func hasBlob(ctx context.Context, dst Destination, known KnownStore, blobKey, backupKey string) (bool, error) {
	if ok, err := known.Has(blobKey); err != nil || ok {
		return ok, err
	}
	ok, err := dst.HasBlob(ctx, blobKey, backupKey)
	if err != nil || !ok {
		return false, err
	}
	return true, known.Add(blobKey)
}

func copyBlob(ctx context.Context, src Source, dst Destination, ref client.BlobRef, backupKey string) error {
	data, err := src.FetchBlob(ctx, ref.Key)
	if err != nil {
		return err
	}
	target, err := dst.UploadURL(ctx, backupKey)
	if err != nil {
		return err
	}
	_, err = dst.UploadBlob(ctx, target, backupKey, client.Blob{OldKey: ref.Key, ContentType: ref.ContentType, Data: data})
	return err
}
