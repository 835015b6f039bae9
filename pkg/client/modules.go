package client

import (
	"bytes"
	"context"
	"iter"
	"net/http"
	"net/url"
	"strings"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/schema"
)

// The backend redirects requests for unknown modules to its admin frontend.
const frontendPath = "/vi/s/main.html"

// Page is one answer of a list request
type Page struct {
	Records []schema.Record `json:"skellist"`
	Cursor  string          `json:"cursor"`
}

// actionAnswer is the answer of add and edit requests
type actionAnswer struct {
	Action string `json:"action"`
}

// Structure fetches the schema of module
func (c *Client) Structure(ctx context.Context, module string) (*schema.Schema, error) {
	r := request{method: http.MethodGet, url: c.endpoint(module, "view", "structure")}
	resp, err := c.send(ctx, r)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, errors.Wrap(err, errors.ErrSchemaNotFound, "module does not exist").
				WithDetail("module", module)
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.Request != nil && strings.HasSuffix(resp.Request.URL.Path, frontendPath) {
		return nil, errors.New(errors.ErrSchemaNotFound, "module does not exist").
			WithDetail("module", module)
	}

	body, err := readAll(resp)
	if err != nil {
		return nil, err
	}
	s, err := schema.DecodeStructure(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSchemaNotFound, "malformed structure description").
			WithDetail("module", module)
	}

	c.logger.Debug().Str("module", module).Int("fields", s.Len()).Msg("Fetched structure")
	return s, nil
}

// Query fetches one page of module's list
func (c *Client) Query(ctx context.Context, module string, params url.Values) (*Page, error) {
	var page Page
	r := request{method: http.MethodGet, url: c.endpoint(module, "list"), query: params}
	if err := c.decode(ctx, r, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// List yields every record of module, following the cursor until a page comes
// back empty. params are not modified.
func (c *Client) List(ctx context.Context, module string, params url.Values) iter.Seq2[schema.Record, error] {
	return func(yield func(schema.Record, error) bool) {
		query := cloneValues(params)
		for pages := 1; ; pages++ {
			page, err := c.Query(ctx, module, query)
			if err != nil {
				yield(nil, err)
				return
			}
			c.logger.Trace().Str("module", module).Int("page", pages).Int("records", len(page.Records)).Msg("Fetched page")
			if len(page.Records) == 0 {
				return
			}
			for _, rec := range page.Records {
				if !yield(rec, nil) {
					return
				}
			}
			if page.Cursor == "" {
				return
			}
			query.Set("cursor", page.Cursor)
		}
	}
}

// Add creates an entry in module and returns the backend's action answer
func (c *Client) Add(ctx context.Context, module string, values url.Values) (string, error) {
	return c.submit(ctx, module, "add", values)
}

// Edit updates the entry key of module and returns the backend's action answer
func (c *Client) Edit(ctx context.Context, module, key string, values url.Values) (string, error) {
	values = cloneValues(values)
	values.Set("key", key)
	return c.submit(ctx, module, "edit", values)
}

func (c *Client) submit(ctx context.Context, module, action string, values url.Values) (string, error) {
	skey, err := c.Skey(ctx)
	if err != nil {
		return "", err
	}
	form := cloneValues(values)
	form.Set("skey", skey)

	var answer actionAnswer
	if err := c.decode(ctx, request{method: http.MethodPost, url: c.endpoint(module, action), form: form}, &answer); err != nil {
		return "", err
	}
	return answer.Action, nil
}

func readAll(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := copyBody(&buf, resp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
