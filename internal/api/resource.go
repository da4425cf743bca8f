package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Resource is the CRUD surface of one REST collection rooted at a path.
type Resource[T any] struct {
	client     *Client
	path       string
	createPath string
}

// NewResource returns a resource rooted at path. Creates POST to path unless
// WithCreatePath overrides it.
func NewResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{client: c, path: path, createPath: path}
}

func (r Resource[T]) WithCreatePath(path string) Resource[T] {
	r.createPath = path
	return r
}

// Path returns the collection root.
func (r Resource[T]) Path() string { return r.path }

func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	return getList[T](ctx, r.client, r.path, nil)
}

func (r Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	p, err := idPath(r.path, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return get[T](ctx, r.client, p, nil)
}

func (r Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	return post[T](ctx, r.client, r.createPath, nil, payload)
}

func (r Resource[T]) Update(ctx context.Context, id int64, payload any) (T, error) {
	p, err := idPath(r.path, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return put[T](ctx, r.client, p, payload)
}

func (r Resource[T]) Delete(ctx context.Context, id int64) error {
	p, err := idPath(r.path, id)
	if err != nil {
		return err
	}
	return r.client.Do(ctx, http.MethodDelete, p, nil, nil, nil)
}

// Query lists the entities under path+subpath, e.g. Query(ctx, "/search",
// url.Values{"query": {"клек"}}).
func (r Resource[T]) Query(ctx context.Context, subpath string, query url.Values) ([]T, error) {
	return getList[T](ctx, r.client, r.path+subpath, query)
}

func idPath(base string, id int64) (string, error) {
	if id <= 0 {
		return "", ErrInvalidID
	}
	return base + "/" + strconv.FormatInt(id, 10), nil
}

func segment(s string) string {
	return "/" + url.PathEscape(s)
}
