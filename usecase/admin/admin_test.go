package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/apitest"
	"github.com/fastygo/trucar/repository/rest"
	"github.com/fastygo/trucar/usecase"
	"github.com/fastygo/trucar/usecase/admin"
)

type impersonatorMock struct {
	mock.Mock
}

func (m *impersonatorMock) StartImpersonation(ctx context.Context, accessToken string, user *domain.User) (string, error) {
	args := m.Called(ctx, accessToken, user)
	return args.String(0), args.Error(1)
}

func TestImpersonateHandsTokenToSession(t *testing.T) {
	srv := apitest.New(t)
	target := apitest.Driver(9, domain.SectorFreight)
	srv.Reply(fasthttp.MethodPost, "/admin/users/9/impersonate", fasthttp.StatusOK, apitest.TokenBody("imp-tok", target))

	sessions := &impersonatorMock{}
	sessions.On("StartImpersonation", mock.Anything, "imp-tok", mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 9
	})).Return("/dashboard", nil)

	notices := &usecase.Recorder{}
	store := admin.New(rest.NewAdminRepository(srv.Client()), sessions, notices, nil)

	route, err := store.Impersonate(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", route)
	sessions.AssertExpectations(t)

	notice, _ := notices.Last()
	assert.Equal(t, usecase.LevelPositive, notice.Level)
}

func TestImpersonateRefusedBySession(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodPost, "/admin/users/9/impersonate", fasthttp.StatusOK,
		apitest.TokenBody("imp-tok", apitest.Driver(9, domain.SectorFreight)))
	sessions := &impersonatorMock{}
	sessions.On("StartImpersonation", mock.Anything, mock.Anything, mock.Anything).Return("", domain.ErrNotAdministrator)
	store := admin.New(rest.NewAdminRepository(srv.Client()), sessions, nil, nil)

	route, err := store.Impersonate(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotAdministrator)
	assert.Empty(t, route)
}

func TestImpersonateWhileImpersonatingIsExplained(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodPost, "/admin/users/9/impersonate", fasthttp.StatusOK,
		apitest.TokenBody("imp-tok", apitest.Driver(9, domain.SectorFreight)))
	sessions := &impersonatorMock{}
	sessions.On("StartImpersonation", mock.Anything, mock.Anything, mock.Anything).Return("", domain.ErrAlreadyImpersonating)
	notices := &usecase.Recorder{}
	store := admin.New(rest.NewAdminRepository(srv.Client()), sessions, notices, nil)

	_, err := store.Impersonate(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrAlreadyImpersonating)
	notice, ok := notices.Last()
	require.True(t, ok)
	assert.Equal(t, usecase.LevelNegative, notice.Level)
	assert.Contains(t, notice.Message, "Encerre a personificação atual")
}

func TestActivateUpdatesCachedUser(t *testing.T) {
	pending := apitest.User(4, domain.SectorServices)
	pending.IsActive = false
	active := apitest.User(4, domain.SectorServices)

	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/admin/users/", fasthttp.StatusOK, []*domain.User{pending, apitest.Admin(1)})
	srv.Reply(fasthttp.MethodPost, "/admin/users/4/activate", fasthttp.StatusOK, active)
	store := admin.New(rest.NewAdminRepository(srv.Client()), &impersonatorMock{}, nil, nil)
	ctx := context.Background()

	require.NoError(t, store.Fetch(ctx))
	_, err := store.Activate(ctx, 4)
	require.NoError(t, err)

	assert.True(t, store.Items()[0].IsActive)
}
