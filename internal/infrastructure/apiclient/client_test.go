package apiclient_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/apitest"
	"github.com/fastygo/trucar/internal/config"
	"github.com/fastygo/trucar/internal/infrastructure/apiclient"
	"github.com/fastygo/trucar/internal/middleware"
)

func newClient(t *testing.T, srv *apitest.Server, breaker config.BreakerConfig) *apiclient.Client {
	t.Helper()
	return apiclient.New(apiclient.Options{
		BaseURL:     srv.BaseURL(),
		Timeout:     2 * time.Second,
		Breaker:     breaker,
		Dial:        srv.Dial,
		Middlewares: []apiclient.Middleware{middleware.RequestID()},
	})
}

func TestBearerHeaderIsAppliedAndRemoved(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/users/me", fasthttp.StatusOK, apitest.User(1, domain.SectorFreight))
	client := newClient(t, srv, config.BreakerConfig{})

	client.SetBearer("abc")
	var user domain.User
	require.NoError(t, client.Get(context.Background(), "/users/me", nil, &user))
	assert.Equal(t, 1, user.ID)

	last, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, "Bearer abc", last.Authorization)
	assert.NotEmpty(t, last.RequestID)

	client.ClearBearer()
	require.NoError(t, client.Get(context.Background(), "/users/me", nil, &user))
	last, _ = srv.Last()
	assert.Empty(t, last.Authorization)

	_, ok = client.DefaultHeader("Authorization")
	assert.False(t, ok)
}

func TestQuerySkipsEmptyValues(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/journeys/", fasthttp.StatusOK, []domain.Journey{})
	client := newClient(t, srv, config.BreakerConfig{})

	q := url.Values{"vehicle_id": {"4"}, "date_from": {""}}
	require.NoError(t, client.Get(context.Background(), "/journeys/", q, nil))

	last, _ := srv.Last()
	assert.Equal(t, "vehicle_id=4", last.Query)
}

func TestPostFormEncodesBody(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodPost, "/login/token", fasthttp.StatusOK, map[string]string{"access_token": "t"})
	client := newClient(t, srv, config.BreakerConfig{})

	form := url.Values{"username": {"a@b.c"}, "password": {"x"}}
	require.NoError(t, client.PostForm(context.Background(), "/login/token", form, nil))

	last, _ := srv.Last()
	assert.Equal(t, "application/x-www-form-urlencoded", last.ContentType)
	parsed, err := url.ParseQuery(string(last.Body))
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", parsed.Get("username"))
}

func TestPostMultipartSendsFileAndFields(t *testing.T) {
	srv := apitest.New(t)
	var gotType, gotName string
	var gotFile []byte
	srv.Handle(fasthttp.MethodPost, "/documents/", func(ctx *fasthttp.RequestCtx) {
		form, err := ctx.MultipartForm()
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			return
		}
		gotType = form.Value["document_type"][0]
		fh := form.File["file"][0]
		gotName = fh.Filename
		f, _ := fh.Open()
		defer f.Close()
		buf := make([]byte, fh.Size)
		_, _ = f.Read(buf)
		gotFile = buf
		apitest.WriteJSON(ctx, fasthttp.StatusCreated, map[string]int{"id": 1})
	})
	client := newClient(t, srv, config.BreakerConfig{})

	err := client.PostMultipart(context.Background(), "/documents/",
		map[string]string{"document_type": "CNH"},
		&apiclient.File{Name: "cnh.pdf", Contents: []byte("%PDF")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "CNH", gotType)
	assert.Equal(t, "cnh.pdf", gotName)
	assert.Equal(t, []byte("%PDF"), gotFile)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		body   any
		code   domain.ErrorCode
		msg    string
	}{
		{fasthttp.StatusUnauthorized, apitest.Detail("Incorrect email or password"), domain.ErrCodeUnauthorized, "Incorrect email or password"},
		{fasthttp.StatusForbidden, nil, domain.ErrCodeForbidden, "Forbidden"},
		{fasthttp.StatusNotFound, apitest.Detail("Vehicle not found"), domain.ErrCodeNotFound, "Vehicle not found"},
		{fasthttp.StatusConflict, apitest.Detail("Vehicle in use"), domain.ErrCodeConflict, "Vehicle in use"},
		{fasthttp.StatusUnprocessableEntity, map[string]any{"detail": []map[string]any{
			{"loc": []any{"body", "year"}, "msg": "field required"},
		}}, domain.ErrCodeInvalid, "year: field required"},
		{fasthttp.StatusInternalServerError, nil, domain.ErrCodeInternal, "Internal Server Error"},
	}

	for _, tc := range cases {
		srv := apitest.New(t)
		srv.Reply(fasthttp.MethodGet, "/x", tc.status, tc.body)
		client := newClient(t, srv, config.BreakerConfig{})

		err := client.Get(context.Background(), "/x", nil, nil)
		require.Error(t, err)
		assert.True(t, domain.IsDomainError(err, tc.code), "status %d: %v", tc.status, err)
		var dErr *domain.Error
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, tc.msg, dErr.Message)
		assert.Equal(t, tc.status, apiclient.StatusOf(err))
	}
}

func TestTransportErrorIsClassified(t *testing.T) {
	client := apiclient.New(apiclient.Options{
		BaseURL: "http://127.0.0.1:1/api/v1",
		Timeout: 200 * time.Millisecond,
	})
	err := client.Get(context.Background(), "/vehicles/", nil, nil)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeTransport))
}

func TestBreakerOpensOnServerErrorsOnly(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/bad", fasthttp.StatusBadRequest, apitest.Detail("nope"))
	srv.Reply(fasthttp.MethodGet, "/down", fasthttp.StatusServiceUnavailable, nil)
	client := newClient(t, srv, config.BreakerConfig{
		MaxRequests:  1,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  2,
	})
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_ = client.Get(ctx, "/bad", nil, nil)
	}
	assert.Equal(t, "closed", client.BreakerState())

	for i := 0; i < 6; i++ {
		_ = client.Get(ctx, "/down", nil, nil)
	}
	assert.Equal(t, "open", client.BreakerState())

	before := srv.Count(fasthttp.MethodGet, "/bad")
	err := client.Get(ctx, "/bad", nil, nil)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeTransport))
	assert.Equal(t, before, srv.Count(fasthttp.MethodGet, "/bad"), "open breaker must not reach the server")
}

func TestPingBypassesBreaker(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/", fasthttp.StatusOK, map[string]string{"status": "ok"})
	client := newClient(t, srv, config.BreakerConfig{})

	require.NoError(t, client.Ping(context.Background()))
}

func TestUnauthorizedHook(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/users/me", fasthttp.StatusUnauthorized, apitest.Detail("expired"))

	calls := 0
	client := apiclient.New(apiclient.Options{
		BaseURL: srv.BaseURL(),
		Timeout: time.Second,
		Dial:    srv.Dial,
		Middlewares: []apiclient.Middleware{
			middleware.OnUnauthorized(func(context.Context) { calls++ }, nil),
		},
	})

	_ = client.Get(context.Background(), "/users/me", nil, nil)
	assert.Equal(t, 0, calls, "anonymous requests do not trigger the hook")

	client.SetBearer("stale")
	err := client.Get(context.Background(), "/users/me", nil, nil)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
	assert.Equal(t, 1, calls)
}
