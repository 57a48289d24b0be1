// Package client is the typed HTTP client of the admin API. Every call
// issues exactly one request and returns the envelope as the server sent it,
// non-2xx included. Only transport and decoding failures are errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/juju/errors"

	"github.com/monocle-dev/opsdesk/internal/types"
)

// Response is the envelope with its payload left undecoded.
type Response struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	ResponseObject json.RawMessage `json:"responseObject"`
	StatusCode     int             `json:"statusCode"`
}

// Decode unmarshals the payload into v.
func (r Response) Decode(v any) error {
	if len(r.ResponseObject) == 0 {
		return errors.NotFoundf("payload")
	}
	if err := json.Unmarshal(r.ResponseObject, v); err != nil {
		return errors.Annotate(err, "decoding payload")
	}
	return nil
}

type Client struct {
	base       *url.URL
	httpclient *http.Client
	token      string

	Users      *EntityClient
	Projects   *EntityClient
	Tasks      *EntityClient
	Resources  *EntityClient
	Categories *EntityClient
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpclient = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.NotValidf("base url %q", baseURL)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.NotValidf("base url scheme %q", base.Scheme)
	}

	c := &Client{base: base, httpclient: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}

	c.Users = &EntityClient{client: c, entity: types.EntityUser}
	c.Projects = &EntityClient{client: c, entity: types.EntityProject}
	c.Tasks = &EntityClient{client: c, entity: types.EntityTask}
	c.Resources = &EntityClient{client: c, entity: types.EntityResource}
	c.Categories = &EntityClient{client: c, entity: types.EntityCategory}
	return c, nil
}

// Entity returns the client for an entity name, or nil.
func (c *Client) Entity(name string) *EntityClient {
	switch name {
	case types.EntityUser:
		return c.Users
	case types.EntityProject:
		return c.Projects
	case types.EntityTask:
		return c.Tasks
	case types.EntityResource:
		return c.Resources
	case types.EntityCategory:
		return c.Categories
	}
	return nil
}

func (c *Client) Token() string { return c.token }

// Login posts the credentials and, on success, keeps the issued token for
// later calls.
func (c *Client) Login(ctx context.Context, username, password string) (Response, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/login", types.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil || !resp.Success {
		return resp, err
	}

	var issued types.LoginResponse
	if err := resp.Decode(&issued); err != nil {
		return resp, err
	}
	c.token = issued.Token
	return resp, nil
}

func (c *Client) Me(ctx context.Context) (Response, error) {
	return c.do(ctx, http.MethodGet, "/v1/auth/me", nil)
}

func apipath(elem ...string) string {
	escaped := make([]string, len(elem))
	for i, e := range elem {
		escaped[i] = url.PathEscape(e)
	}
	return "/" + strings.Join(escaped, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body any) (Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return Response{}, errors.Annotate(err, "encoding request")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return Response{}, errors.Trace(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return Response{}, errors.Annotatef(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Response{}, errors.Annotatef(err, "%s %s: decoding response (status code = %d)", method, path, resp.StatusCode)
	}
	return envelope, nil
}
