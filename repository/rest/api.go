// Package rest implements the repositories over the TruCar HTTP API.
package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/internal/infrastructure/apiclient"
)

// API is the subset of *apiclient.Client the repositories use.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	PostForm(ctx context.Context, path string, form url.Values, out any) error
	PostMultipart(ctx context.Context, path string, fields map[string]string, file *apiclient.File, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

var _ API = (*apiclient.Client)(nil)

func itemPath(base string, id int) string {
	return fmt.Sprintf("%s/%d", base, id)
}

// postValid validates body before sending it.
func postValid(ctx context.Context, api API, path string, body, out any) error {
	if err := transport.Validate(body); err != nil {
		return err
	}
	return api.Post(ctx, path, body, out)
}

func putValid(ctx context.Context, api API, path string, body, out any) error {
	if err := transport.Validate(body); err != nil {
		return err
	}
	return api.Put(ctx, path, body, out)
}
