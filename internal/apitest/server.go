// Package apitest runs a fake TruCar backend on an in-memory listener.
package apitest

import (
	"encoding/json"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

// Prefix is the path prefix of the fake API, matching the real deployment.
const Prefix = "/api/v1"

// Request is a recorded incoming request. Path has Prefix stripped.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	ContentType   string
	Body          []byte
}

// JSON decodes the recorded body into v.
func (r Request) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Server is a fake backend. Routes are registered with Handle or Reply.
type Server struct {
	Router *router.Router

	ln  *fasthttputil.InmemoryListener
	srv *fasthttp.Server

	mu       sync.Mutex
	requests []Request
}

// New starts a server and registers its shutdown with t.Cleanup.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		Router: router.New(),
		ln:     fasthttputil.NewInmemoryListener(),
	}
	s.srv = &fasthttp.Server{Handler: s.serve}

	go func() {
		_ = s.srv.Serve(s.ln)
	}()

	t.Cleanup(func() {
		_ = s.srv.Shutdown()
		_ = s.ln.Close()
	})
	return s
}

// Dial connects to the in-memory listener; pass it as the client dialer.
func (s *Server) Dial(string) (net.Conn, error) {
	return s.ln.Dial()
}

// BaseURL is the API root to configure clients with.
func (s *Server) BaseURL() string {
	return "http://trucar.test" + Prefix
}

// Handle registers h for method and path (without Prefix).
func (s *Server) Handle(method, path string, h fasthttp.RequestHandler) {
	s.Router.Handle(method, Prefix+path, h)
}

// Reply registers a handler that always answers status with body as JSON.
func (s *Server) Reply(method, path string, status int, body any) {
	s.Handle(method, path, func(ctx *fasthttp.RequestCtx) {
		WriteJSON(ctx, status, body)
	})
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) serve(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        string(ctx.Method()),
		Path:          strings.TrimPrefix(string(ctx.Path()), Prefix),
		Query:         string(ctx.QueryArgs().QueryString()),
		Authorization: string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)),
		RequestID:     string(ctx.Request.Header.Peek("X-Request-ID")),
		ContentType:   string(ctx.Request.Header.ContentType()),
		Body:          append([]byte(nil), ctx.PostBody()...),
	})
	s.mu.Unlock()

	s.Router.Handler(ctx)
}

// WriteJSON writes body as a JSON response.
func WriteJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if body == nil {
		return
	}
	payload, err := json.Marshal(body)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetBody(payload)
}

// Detail is the backend's error body.
func Detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}
