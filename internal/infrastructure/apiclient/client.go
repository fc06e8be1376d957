package apiclient

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/config"
	"github.com/fastygo/trucar/pkg/httpcontext"
)

const headerAuthorization = "Authorization"

// Handler performs one HTTP exchange. The innermost handler sends req over the
// wire and fills resp.
type Handler func(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error

// Middleware decorates a Handler. Middlewares are applied in the order given,
// the first one being the outermost.
type Middleware func(Handler) Handler

// Options configures a Client.
type Options struct {
	BaseURL         string
	Timeout         time.Duration
	MaxConnsPerHost int
	Breaker         config.BreakerConfig
	Logger          *zap.Logger
	Middlewares     []Middleware
	// Dial replaces the TCP dialer, used by tests with an in-memory listener.
	Dial fasthttp.DialFunc
}

// Client is the shared TruCar REST client. Its default header set is mutable at
// run time and applied to every request, which is how the session manager
// attaches and removes the bearer token.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	adapter *httpcontext.Adapter
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *zap.Logger
	chain   Handler

	mu      sync.RWMutex
	headers map[string]string
}

// New builds a Client from options.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := &fasthttp.Client{
		Name:            "trucar-cli",
		MaxConnsPerHost: opts.MaxConnsPerHost,
		ReadTimeout:     opts.Timeout,
		WriteTimeout:    opts.Timeout,
	}
	if opts.Dial != nil {
		httpClient.Dial = opts.Dial
	}

	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		adapter: httpcontext.NewAdapter(opts.Timeout),
		logger:  logger,
		headers: map[string]string{},
	}
	c.breaker = newBreaker(opts.Breaker, logger)

	var h Handler = c.send
	for i := len(opts.Middlewares) - 1; i >= 0; i-- {
		h = opts.Middlewares[i](h)
	}
	c.chain = h

	return c
}

// BaseURL returns the API root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetDefaultHeader sets a header sent with every subsequent request.
func (c *Client) SetDefaultHeader(key, value string) {
	c.mu.Lock()
	c.headers[key] = value
	c.mu.Unlock()
}

// DeleteDefaultHeader removes a default header. Removing an absent header is a no-op.
func (c *Client) DeleteDefaultHeader(key string) {
	c.mu.Lock()
	delete(c.headers, key)
	c.mu.Unlock()
}

// DefaultHeader returns the current value of a default header.
func (c *Client) DefaultHeader(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.headers[key]
	return v, ok
}

// SetBearer attaches "Authorization: Bearer <token>" to every request.
func (c *Client) SetBearer(token string) {
	if token == "" {
		c.ClearBearer()
		return
	}
	c.SetDefaultHeader(headerAuthorization, "Bearer "+token)
}

// ClearBearer removes the Authorization default header.
func (c *Client) ClearBearer() {
	c.DeleteDefaultHeader(headerAuthorization)
}

// BreakerState reports the circuit breaker state ("closed", "half-open", "open").
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// Get decodes the JSON response of GET path?query into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, fasthttp.MethodGet, path, query, nil, out)
}

// Post sends body as JSON. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, fasthttp.MethodPost, path, nil, optionalJSON(body), out)
}

// PostForm sends form as application/x-www-form-urlencoded.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, fasthttp.MethodPost, path, nil, formBody(form), out)
}

// PostMultipart sends fields and an optional file as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file *File, out any) error {
	return c.do(ctx, fasthttp.MethodPost, path, nil, multipartBody(fields, file), out)
}

// Put sends body as JSON. A nil body sends no payload.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, fasthttp.MethodPut, path, nil, optionalJSON(body), out)
}

// Delete issues DELETE path and decodes any JSON response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, fasthttp.MethodDelete, path, nil, nil, out)
}

// Ping checks that the API answers at all. It bypasses the circuit breaker so a
// connectivity monitor can observe recovery while the breaker is open. Any
// response below 500 counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := c.adapter.Attach(ctx)
	defer cancel()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/")
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.send(ctx, req, resp); err != nil {
		return domain.WrapError(domain.ErrCodeTransport, "API unreachable", err)
	}
	if resp.StatusCode() >= fasthttp.StatusInternalServerError {
		return statusToError(resp.StatusCode(), resp.Body())
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body requestBody, out any) error {
	ctx, cancel := c.adapter.Attach(ctx)
	defer cancel()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.resolve(path, query))
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	c.mu.RLock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	c.mu.RUnlock()

	if body != nil {
		if err := body(req); err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "encode request body", err)
		}
	}

	payload, err := c.breaker.Execute(func() ([]byte, error) {
		if err := c.chain(ctx, req, resp); err != nil {
			return nil, err
		}
		data := append([]byte(nil), resp.Body()...)
		if status := resp.StatusCode(); status >= fasthttp.StatusBadRequest {
			return data, &StatusError{Status: status, Body: data}
		}
		return data, nil
	})
	if err != nil {
		return classify(method, path, err)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "decode response of "+method+" "+path, err)
	}
	return nil
}

// send is the innermost handler: it performs the exchange bounded by the
// context deadline.
func (c *Client) send(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.http.DoDeadline(req, resp, c.adapter.Deadline(ctx))
}

func (c *Client) resolve(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	uri := c.baseURL + path
	if encoded := cleanQuery(query).Encode(); encoded != "" {
		uri += "?" + encoded
	}
	return uri
}

// cleanQuery drops parameters without a value.
func cleanQuery(query url.Values) url.Values {
	if len(query) == 0 {
		return nil
	}
	out := url.Values{}
	for k, values := range query {
		for _, v := range values {
			if v != "" {
				out.Add(k, v)
			}
		}
	}
	return out
}
