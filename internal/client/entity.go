package client

import (
	"context"
	"net/http"
)

// EntityClient mirrors the route table of one entity.
type EntityClient struct {
	client *Client
	entity string
}

func (e *EntityClient) Name() string { return e.entity }

func (e *EntityClient) path(op string, id ...string) string {
	return apipath(append([]string{"v1", e.entity, op}, id...)...)
}

func (e *EntityClient) Get(ctx context.Context) (Response, error) {
	return e.client.do(ctx, http.MethodGet, e.path("get"), nil)
}

func (e *EntityClient) Find(ctx context.Context, id string) (Response, error) {
	return e.client.do(ctx, http.MethodGet, e.path("get", id), nil)
}

func (e *EntityClient) Create(ctx context.Context, body any) (Response, error) {
	return e.client.do(ctx, http.MethodPost, e.path("create"), body)
}

// Update sends body as is; it must carry the {entity}_id field.
func (e *EntityClient) Update(ctx context.Context, body any) (Response, error) {
	return e.client.do(ctx, http.MethodPut, e.path("update"), body)
}

func (e *EntityClient) Delete(ctx context.Context, id string) (Response, error) {
	return e.client.do(ctx, http.MethodDelete, e.path("delete", id), nil)
}
