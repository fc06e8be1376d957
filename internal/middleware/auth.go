package middleware

import (
	"context"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/trucar/internal/infrastructure/apiclient"
)

// OnUnauthorized calls fn whenever a request that carried a bearer token is
// answered with 401. The response is passed through unchanged.
func OnUnauthorized(fn func(ctx context.Context), logger *zap.Logger) apiclient.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next apiclient.Handler) apiclient.Handler {
		return func(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
			err := next(ctx, req, resp)
			if err != nil || resp.StatusCode() != fasthttp.StatusUnauthorized {
				return err
			}
			if extractToken(req) == "" {
				return nil
			}
			logger.Warn("bearer token rejected", zap.ByteString("path", req.URI().Path()))
			if fn != nil {
				fn(ctx)
			}
			return nil
		}
	}
}

func extractToken(req *fasthttp.Request) string {
	header := string(req.Header.Peek(fasthttp.HeaderAuthorization))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
