package client

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/arthur-debert/viur/pkg/errors"
)

// loginSuccess is the answer of a successful login
const loginSuccess = "OKAY"

// Some renders wrap JSON answers as JSON((...)).
var wrappedAnswer = regexp.MustCompile(`JSON\(\((.*)\)\)`)

// Credentials authenticate a session, either by user name and password or by
// a login key
type Credentials struct {
	Username string
	Password string
	LoginKey string
}

// Valid reports whether the credentials name one login method completely
func (c Credentials) Valid() bool {
	return (c.Username != "" && c.Password != "") || c.LoginKey != ""
}

// Skey fetches a fresh one-time security key
func (c *Client) Skey(ctx context.Context) (string, error) {
	var skey string
	if err := c.decode(ctx, request{method: http.MethodGet, url: c.endpoint("skey")}, &skey); err != nil {
		return "", err
	}
	return skey, nil
}

// Login opens an authenticated session. User name and password take
// precedence over a login key.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	if !creds.Valid() {
		return errors.New(errors.ErrAuth, "username and password or a login key are required")
	}

	skey, err := c.Skey(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrAuth, "cannot fetch security key")
	}

	form := url.Values{"skey": {skey}}
	path := "user/auth_loginkey/login"
	if creds.Username != "" && creds.Password != "" {
		path = "user/auth_userpassword/login"
		form.Set("name", creds.Username)
		form.Set("password", creds.Password)
	} else {
		form.Set("key", creds.LoginKey)
	}

	body, err := c.read(ctx, request{method: http.MethodPost, url: c.endpoint(path), form: form})
	if err != nil {
		return errors.Wrap(err, errors.ErrAuth, "login request failed").WithDetail("host", c.host)
	}

	answer, err := parseAnswer(body)
	if err != nil || answer != loginSuccess {
		return errors.New(errors.ErrAuth, "login rejected").
			WithDetail("host", c.host).
			WithDetail("answer", strings.TrimSpace(string(body)))
	}

	c.logger.Info().Msg("Logged in")
	return nil
}

// Logout ends the session
func (c *Client) Logout(ctx context.Context) error {
	skey, err := c.Skey(ctx)
	if err != nil {
		return err
	}
	_, err = c.read(ctx, request{
		method: http.MethodGet,
		url:    c.endpoint("user/logout"),
		query:  url.Values{"skey": {skey}},
	})
	if err == nil {
		c.logger.Debug().Msg("Logged out")
	}
	return err
}

// parseAnswer decodes a JSON string answer, unwrapping JSON((...)) if present
func parseAnswer(body []byte) (string, error) {
	if m := wrappedAnswer.FindSubmatch(body); m != nil {
		body = m[1]
	}
	var answer string
	if err := unmarshal(body, &answer); err != nil {
		return "", err
	}
	return answer, nil
}
