package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/trucar/internal/infrastructure/apiclient"
	appLogger "github.com/fastygo/trucar/pkg/logger"
)

// HeaderRequestID correlates client logs with backend logs.
const HeaderRequestID = "X-Request-ID"

// RequestID stamps every request with the ID carried by ctx, or a fresh one.
func RequestID() apiclient.Middleware {
	return func(next apiclient.Handler) apiclient.Handler {
		return func(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
			id := appLogger.RequestID(ctx)
			if id == "" {
				id = uuid.NewString()
			}
			req.Header.Set(HeaderRequestID, id)
			return next(ctx, req, resp)
		}
	}
}
