package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/arthur-debert/viur/pkg/errors"
)

// uploadSuccess is the action answer of an accepted upload
const uploadSuccess = "addSuccess"

// BlobRef names one blob of an export batch
type BlobRef struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
}

// BlobPage is one batch of the blob export
type BlobPage struct {
	Values []BlobRef `json:"values"`
	Cursor string    `json:"cursor"`
}

// Blob is the payload of an upload
type Blob struct {
	// OldKey is the blob's key on the source instance.
	OldKey      string
	ContentType string
	Data        []byte
}

// ExportBlobs fetches one batch of the blob store. An empty cursor starts
// from the beginning.
func (c *Client) ExportBlobs(ctx context.Context, backupKey, cursor string) (*BlobPage, error) {
	form := url.Values{"key": {backupKey}}
	if cursor != "" {
		form.Set("cursor", cursor)
	}

	var page BlobPage
	r := request{method: http.MethodPost, url: c.rootEndpoint("dbtransfer/exportBlob2"), form: form}
	if err := c.decode(ctx, r, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// HasBlob asks whether the instance already stores blobKey
func (c *Client) HasBlob(ctx context.Context, blobKey, backupKey string) (bool, error) {
	path := fmt.Sprintf("dbtransfer/hasblob/%s/%s", url.PathEscape(blobKey), url.PathEscape(backupKey))
	body, err := c.read(ctx, request{method: http.MethodGet, url: c.rootEndpoint(path)})
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(string(body)), "true"), nil
}

// FetchBlob downloads the raw content of blobKey
func (c *Client) FetchBlob(ctx context.Context, blobKey string) ([]byte, error) {
	return c.read(ctx, request{method: http.MethodGet, url: c.rootEndpoint("file/download/" + url.PathEscape(blobKey))})
}

// UploadURL obtains a one-time URL to upload a blob to
func (c *Client) UploadURL(ctx context.Context, backupKey string) (string, error) {
	r := request{method: http.MethodPost, url: c.rootEndpoint("dbtransfer/getUploadURL"), form: url.Values{"key": {backupKey}}}
	body, err := c.read(ctx, r)
	if err != nil {
		return "", err
	}
	target := strings.TrimSpace(string(body))
	if target == "" {
		return "", errors.New(errors.ErrUpload, "backend returned no upload URL")
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = c.rootEndpoint(target)
	}
	return target, nil
}

// UploadBlob posts blob to uploadURL and returns the new download key
func (c *Client) UploadBlob(ctx context.Context, uploadURL, backupKey string, blob Blob) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="file1"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err == nil {
		_, err = part.Write(blob.Data)
	}
	if err == nil {
		err = mw.WriteField("key", backupKey)
	}
	if err == nil {
		err = mw.WriteField("oldkey", blob.OldKey)
	}
	if err == nil {
		err = mw.Close()
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot encode upload")
	}

	var answer struct {
		Action string `json:"action"`
		Values []struct {
			DlKey string `json:"dlkey"`
		} `json:"values"`
	}
	r := request{method: http.MethodPost, url: uploadURL, body: buf.Bytes(), contentType: mw.FormDataContentType()}
	if err := c.decode(ctx, r, &answer); err != nil {
		return "", errors.Wrap(err, errors.ErrUpload, "upload failed").WithDetail("blob", blob.OldKey)
	}
	if answer.Action != uploadSuccess || len(answer.Values) == 0 {
		return "", errors.Newf(errors.ErrUpload, "upload rejected: %s", answer.Action).
			WithDetail("blob", blob.OldKey)
	}
	return answer.Values[0].DlKey, nil
}
