package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/apitest"
	"github.com/fastygo/trucar/internal/config"
)

type fakePrompter struct {
	email    string
	password string
	confirm  bool
	asked    []string
}

func (p *fakePrompter) Input(title, _ string) (string, error) {
	p.asked = append(p.asked, title)
	return p.email, nil
}

func (p *fakePrompter) Password(title string) (string, error) {
	p.asked = append(p.asked, title)
	return p.password, nil
}

func (p *fakePrompter) Confirm(message string) (bool, error) {
	p.asked = append(p.asked, message)
	return p.confirm, nil
}

type harness struct {
	srv      *apitest.Server
	dir      string
	prompter *fakePrompter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		srv:      apitest.New(t),
		dir:      t.TempDir(),
		prompter: &fakePrompter{},
	}
}

func (h *harness) config() *config.Config {
	return &config.Config{
		AppName:     "trucar-test",
		Environment: "test",
		API: config.APIConfig{
			BaseURL:         h.srv.BaseURL(),
			MaxConnsPerHost: 4,
			MonitorInterval: time.Minute,
		},
		Storage: config.StorageConfig{
			Driver:   config.StorageBolt,
			BoltPath: filepath.Join(h.dir, "trucar.db"),
		},
		Outbox: config.OutboxConfig{
			Enabled:      true,
			SyncInterval: time.Minute,
			MaxRetry:     3,
			MaxSize:      50,
		},
		Context: config.ContextConfig{
			RequestTimeout:  2 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Logger: config.LoggerConfig{Level: "error", Encoding: "console"},
	}
}

func (h *harness) run(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	err = Run(context.Background(), Options{
		Stdout:     &out,
		Stderr:     &errOut,
		LoadConfig: func() (*config.Config, error) { return h.config(), nil },
		Prompter:   h.prompter,
		Dial:       h.srv.Dial,
	}, args)
	return out.String(), errOut.String(), err
}

func (h *harness) login(t *testing.T, user *domain.User) {
	t.Helper()
	h.srv.Reply(fasthttp.MethodPost, "/login/token", fasthttp.StatusOK, apitest.TokenBody("cli-token", user))
	_, _, err := h.run("login", "-e", user.Email, "-p", "secret")
	require.NoError(t, err)
}

func TestLoginPersistsAcrossInvocations(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(fasthttp.MethodPost, "/login/token", fasthttp.StatusOK,
		apitest.TokenBody("cli-token", apitest.User(1, domain.SectorFreight)))

	out, _, err := h.run("login", "--email", "user@trucar.test", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ana Souza (Frete)")
	assert.Empty(t, h.prompter.asked)

	out, _, err = h.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Souza")
	assert.Contains(t, out, "Fazenda Boa Vista")
	assert.Contains(t, out, "Frete")
}

func TestLoginPromptsForMissingCredentials(t *testing.T) {
	h := newHarness(t)
	h.prompter.email = "user@trucar.test"
	h.prompter.password = "secret"
	h.srv.Reply(fasthttp.MethodPost, "/login/token", fasthttp.StatusOK,
		apitest.TokenBody("cli-token", apitest.User(1, domain.SectorAgriculture)))

	out, _, err := h.run("login")
	require.NoError(t, err)
	assert.Equal(t, []string{"E-mail", "Senha"}, h.prompter.asked)
	assert.Contains(t, out, "Agronegócio")

	last, ok := h.srv.Last()
	require.True(t, ok)
	assert.Contains(t, string(last.Body), "username=user%40trucar.test")
	assert.Contains(t, string(last.Body), "password=secret")
}

func TestLoginFailureIsReported(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(fasthttp.MethodPost, "/login/token", fasthttp.StatusUnauthorized, apitest.Detail("Incorrect email or password"))

	_, stderr, err := h.run("login", "-e", "user@trucar.test", "-p", "wrong")
	require.ErrorIs(t, err, errLoginFailed)
	assert.NotEmpty(t, strings.TrimSpace(stderr))

	_, _, err = h.run("whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestCommandsRequireLogin(t *testing.T) {
	h := newHarness(t)

	for _, args := range [][]string{
		{"whoami"},
		{"vehicles", "list"},
		{"fuel", "list"},
		{"sync"},
	} {
		_, _, err := h.run(args...)
		assert.ErrorIs(t, err, errNotLoggedIn, strings.Join(args, " "))
	}
	assert.Zero(t, h.srv.Count(fasthttp.MethodGet, "/vehicles/"))
}

func TestVehicleListUsesSectorVocabulary(t *testing.T) {
	h := newHarness(t)
	h.login(t, apitest.User(1, domain.SectorFreight))

	h.srv.Reply(fasthttp.MethodGet, "/vehicles/", fasthttp.StatusOK, map[string]any{
		"vehicles": []domain.Vehicle{
			{ID: 3, Brand: "Volvo", Model: "FH 540", Status: domain.VehicleAvailable},
		},
		"total_items": 1,
	})

	out, _, err := h.run("vehicles", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Gerenciamento de Frota (1)")
	assert.Contains(t, out, "Volvo")
	assert.Contains(t, out, "FH 540")

	last, _ := h.srv.Last()
	assert.Equal(t, "Bearer cli-token", last.Authorization)
}

func TestTermsForExplicitSector(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("terms", "--sector", "frete")
	require.NoError(t, err)
	assert.Contains(t, out, "Caminhão / Caminhões")
	assert.Contains(t, out, "Iniciar Frete")

	_, _, err = h.run("terms", "--sector", "mineracao")
	assert.ErrorContains(t, err, "unknown sector")
}

func TestLogoutForgetsSession(t *testing.T) {
	h := newHarness(t)
	h.login(t, apitest.User(1, domain.SectorServices))

	out, _, err := h.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, _, err = h.run("whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestUnauthorizedResponseEndsSession(t *testing.T) {
	h := newHarness(t)
	h.login(t, apitest.User(1, domain.SectorServices))
	h.srv.Reply(fasthttp.MethodGet, "/vehicles/", fasthttp.StatusUnauthorized, apitest.Detail("Could not validate credentials"))

	_, _, err := h.run("vehicles", "list")
	require.Error(t, err)

	_, _, err = h.run("whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestSyncListsEmptyOutbox(t *testing.T) {
	h := newHarness(t)
	h.login(t, apitest.User(1, domain.SectorServices))

	out, _, err := h.run("sync", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "Fila de envio")
	assert.Contains(t, out, emptyMessage)
}

func TestDashboardForDemoAccount(t *testing.T) {
	h := newHarness(t)
	h.login(t, apitest.User(1, domain.SectorFreight))
	h.srv.Reply(fasthttp.MethodGet, "/dashboard/summary", fasthttp.StatusOK, json.RawMessage(
		`{"kpis": {"total_vehicles": 3, "available_vehicles": 2, "in_use_vehicles": 1, "maintenance_vehicles": 0}}`))

	out, _, err := h.run("dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Resumo da frota")
	assert.Contains(t, out, "Caminhões")
	assert.Contains(t, out, "Demo account")
}

func TestNotificationCount(t *testing.T) {
	h := newHarness(t)
	h.login(t, apitest.User(1, domain.SectorServices))
	h.srv.Reply(fasthttp.MethodGet, "/notifications/unread-count", fasthttp.StatusOK, 4)

	out, _, err := h.run("notifications", "count")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestUnknownStorageDriverIsRejected(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("--storage", "sqlite", "terms")
	assert.ErrorContains(t, err, `unknown storage driver "sqlite"`)
}

func TestTableRenderPadsColumns(t *testing.T) {
	var buf bytes.Buffer
	tb := table{title: "Peças", headers: []string{"ID", "Nome"}}
	tb.add("1", "Filtro de óleo")
	tb.add("22", "Pneu")
	tb.render(&buf)

	var lines []string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Peças")
	assert.Contains(t, lines[2], "Filtro de óleo")
	assert.Contains(t, lines[3], "Pneu")
	// Cells of the second column start at the same offset in every row.
	assert.Equal(t, strings.Index(lines[1], "Nome"), strings.Index(lines[3], "Pneu"))
}

func TestIntArg(t *testing.T) {
	n, err := intArg([]string{"12"}, 0, "id")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = intArg([]string{"abc"}, 0, "id")
	assert.ErrorContains(t, err, `invalid id "abc"`)

	_, err = intArg([]string{"0"}, 0, "id")
	assert.Error(t, err)

	_, err = intArg(nil, 0, "id")
	assert.ErrorContains(t, err, "missing id")
}
