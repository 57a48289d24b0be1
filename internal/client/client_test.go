package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/monocle-dev/opsdesk/internal/app"
	"github.com/monocle-dev/opsdesk/internal/auth"
	"github.com/monocle-dev/opsdesk/internal/client"
	"github.com/monocle-dev/opsdesk/internal/config"
	"github.com/monocle-dev/opsdesk/internal/router"
	"github.com/monocle-dev/opsdesk/internal/testenv"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	gdb, clk := testenv.NewDB(t)
	cfg := &config.Config{
		Env:        config.EnvLocal,
		CORSOrigin: "*",
		AuthRoutes: []string{"*.get"},
		JWT:        config.JWTConfig{Secret: "0123456789abcdef", Issuer: "opsdesk", TTL: time.Hour},
	}
	srv := httptest.NewServer(router.NewRouter(&app.App{
		Config: cfg,
		DB:     gdb,
		Logger: zerolog.Nop(),
		Clock:  clk,
		Tokens: auth.NewTokens(cfg.JWT, clk),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRequestShape(t *testing.T) {
	type When struct {
		Call func(ctx context.Context, c *client.Client) (client.Response, error)
	}
	type Then struct {
		Method string
		Path   string
		Body   map[string]any
	}

	theory := func(when When, then Then) func(t *testing.T) {
		return func(t *testing.T) {
			var got *http.Request
			var body map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r
				if r.Body != nil {
					_ = json.NewDecoder(r.Body).Decode(&body)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTeapot)
				w.Write([]byte(`{"success":false,"message":"short and stout","responseObject":null,"statusCode":418}`))
			}))
			defer srv.Close()

			c, err := client.New(srv.URL+"/", client.WithToken("tkn"))
			if err != nil {
				t.Fatal(err)
			}

			resp, err := when.Call(context.Background(), c)
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if resp.StatusCode != http.StatusTeapot || resp.Message != "short and stout" || resp.Success {
				t.Errorf("envelope not returned as is: %+v", resp)
			}

			if got.Method != then.Method || got.URL.Path != then.Path {
				t.Errorf("request: want %s %s, got %s %s", then.Method, then.Path, got.Method, got.URL.Path)
			}
			if h := got.Header.Get("Authorization"); h != "Bearer tkn" {
				t.Errorf("authorization: %q", h)
			}
			for k, v := range then.Body {
				if body[k] != v {
					t.Errorf("body[%s]: want %v, got %v", k, v, body[k])
				}
			}
		}
	}

	t.Run("list", theory(
		When{Call: func(ctx context.Context, c *client.Client) (client.Response, error) { return c.Projects.Get(ctx) }},
		Then{Method: http.MethodGet, Path: "/v1/project/get"},
	))
	t.Run("find", theory(
		When{Call: func(ctx context.Context, c *client.Client) (client.Response, error) { return c.Tasks.Find(ctx, "t-1") }},
		Then{Method: http.MethodGet, Path: "/v1/task/get/t-1"},
	))
	t.Run("create", theory(
		When{Call: func(ctx context.Context, c *client.Client) (client.Response, error) {
			return c.Categories.Create(ctx, map[string]any{"category_name": "hardware"})
		}},
		Then{Method: http.MethodPost, Path: "/v1/category/create", Body: map[string]any{"category_name": "hardware"}},
	))
	t.Run("update", theory(
		When{Call: func(ctx context.Context, c *client.Client) (client.Response, error) {
			return c.Resources.Update(ctx, map[string]any{"resource_id": "r-1", "quantity": 3})
		}},
		Then{Method: http.MethodPut, Path: "/v1/resource/update", Body: map[string]any{"resource_id": "r-1", "quantity": float64(3)}},
	))
	t.Run("delete", theory(
		When{Call: func(ctx context.Context, c *client.Client) (client.Response, error) {
			return c.Users.Delete(ctx, "u-1")
		}},
		Then{Method: http.MethodDelete, Path: "/v1/user/delete/u-1"},
	))
}

func TestNonEnvelopeResponseIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Projects.Get(context.Background()); err == nil {
		t.Error("want decoding error")
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"localhost:8080", "ftp://example.com", "::"} {
		if _, err := client.New(raw); err == nil {
			t.Errorf("%q: want error", raw)
		}
	}
}

func TestAgainstBackend(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t)

	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := c.Projects.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("list without token: %+v", resp)
	}

	if resp, err := c.Users.Create(ctx, map[string]any{"username": "ada", "password": "lovelace", "role": "admin"}); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("create user: %+v %v", resp, err)
	}

	resp, err = c.Login(ctx, "ada", "wrong-password")
	if err != nil || resp.StatusCode != http.StatusUnauthorized || c.Token() != "" {
		t.Fatalf("bad login: %+v %v", resp, err)
	}
	resp, err = c.Login(ctx, "ada", "lovelace")
	if err != nil || !resp.Success || c.Token() == "" {
		t.Fatalf("login: %+v %v", resp, err)
	}

	resp, err = c.Projects.Create(ctx, map[string]any{"project_name": "Apollo"})
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("create project: %+v %v", resp, err)
	}
	var created struct {
		ProjectID string `json:"project_id"`
	}
	if err := resp.Decode(&created); err != nil {
		t.Fatal(err)
	}

	resp, err = c.Projects.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var list []map[string]any
	if err := resp.Decode(&list); err != nil || len(list) != 1 {
		t.Fatalf("list: %s %v", resp.ResponseObject, err)
	}

	resp, err = c.Projects.Delete(ctx, created.ProjectID)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: %+v %v", resp, err)
	}
	resp, err = c.Projects.Delete(ctx, created.ProjectID)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: %+v %v", resp, err)
	}
}
