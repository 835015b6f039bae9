package client

import (
	"context"
	"io"
	"net/http"

	"github.com/arthur-debert/viur/pkg/errors"
)

// Node is an entry of a file tree: a folder (node) or a file (leaf)
type Node struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	DlKey string `json:"dlkey"`
}

// Tree entry kinds
const (
	KindNode = "node"
	KindLeaf = "leaf"
)

// ListRootNodes returns the root folders of a tree module
func (c *Client) ListRootNodes(ctx context.Context, module string) ([]Node, error) {
	var nodes []Node
	if err := c.decode(ctx, request{method: http.MethodGet, url: c.endpoint(module, "listRootNodes")}, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// ListTree returns the entries of kind directly below the folder key
func (c *Client) ListTree(ctx context.Context, module, kind, key string) ([]Node, error) {
	var page struct {
		Entries []Node `json:"skellist"`
	}
	r := request{method: http.MethodGet, url: c.endpoint(module, "list", kind, key)}
	if err := c.decode(ctx, r, &page); err != nil {
		return nil, err
	}
	return page.Entries, nil
}

// Download streams the file dlkey of a tree module into w
func (c *Client) Download(ctx context.Context, module, dlkey string, w io.Writer) (int64, error) {
	resp, err := c.send(ctx, request{method: http.MethodGet, url: c.endpoint(module, "download", dlkey)})
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	return copyBody(w, resp)
}

func copyBody(w io.Writer, resp *http.Response) (int64, error) {
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, errors.Wrap(err, errors.ErrSourceUnavailable, "cannot read response").
			WithDetail("url", resp.Request.URL.String())
	}
	return n, nil
}
