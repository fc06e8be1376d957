package middleware

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/trucar/internal/infrastructure/apiclient"
	appLogger "github.com/fastygo/trucar/pkg/logger"
)

// Logging records method, path, status and duration of each API call.
// Server errors and transport failures are logged at warn level.
func Logging(logger *zap.Logger) apiclient.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next apiclient.Handler) apiclient.Handler {
		return func(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
			start := time.Now()
			err := next(ctx, req, resp)

			log := appLogger.WithRequestID(ctx, logger)
			fields := []zap.Field{
				zap.ByteString("method", req.Header.Method()),
				zap.ByteString("path", req.URI().Path()),
				zap.Duration("duration", time.Since(start)),
			}
			switch {
			case err != nil:
				log.Warn("api request failed", append(fields, zap.Error(err))...)
			case resp.StatusCode() >= fasthttp.StatusInternalServerError:
				log.Warn("api request", append(fields, zap.Int("status", resp.StatusCode()))...)
			default:
				log.Debug("api request", append(fields, zap.Int("status", resp.StatusCode()))...)
			}
			return err
		}
	}
}
