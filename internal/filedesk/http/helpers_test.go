package http

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/blob"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store/drivers/sqlite"
	"github.com/aussiebroadwan/filedesk/pkg/cryptox"
	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/aussiebroadwan/filedesk/pkg/httpx"
	"github.com/aussiebroadwan/filedesk/pkg/jwtx"
	"github.com/aussiebroadwan/filedesk/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://desk.test"
	resetURLBase = "https://desk.test/reset?token="
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "filedesk-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type mailbox struct {
	mu     sync.Mutex
	bodies []string
	err    error
}

func (m *mailbox) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.bodies = append(m.bodies, body)
	return nil
}

// lastResetToken pulls the token out of the most recent reset email.
func (m *mailbox) lastResetToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.bodies, "no reset email sent")

	_, rest, ok := strings.Cut(m.bodies[len(m.bodies)-1], resetURLBase)
	require.True(t, ok)
	token, _, _ := strings.Cut(rest, "\n")
	return strings.TrimSpace(token)
}

type testEnv struct {
	server *httptest.Server
	client *desksdk.SDKClient
	router *Router
	store  *sqlite.Store
	blobs  *blob.LocalStore
	clock  *testClock
	mail   *mailbox
}

type envOption func(*Router)

// withProductionLimits keeps the default throttles on the credential
// endpoints.
func withProductionLimits() envOption {
	return func(r *Router) {
		r.AuthLimit = httpx.StrictLimit
		r.LoginLimit = httpx.LoginLimit
	}
}

func withMaxUpload(n int64) envOption {
	return func(r *Router) { r.MaxUploadBytes = n }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	blobs, err := blob.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keys, testIssuer, []string{service.Audience})

	clock := &testClock{now: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
	mail := &mailbox{}
	audit := &service.AuditService{Store: st, Now: clock.Now}

	r := NewRouter(keys, verifier, "test", st, blobs, slogx.Discard())
	r.AuthLimit = httpx.PublicLimit
	r.LoginLimit = httpx.PublicLimit
	r.APILimit = httpx.PublicLimit
	r.AuthService = &service.AuthService{
		Store:        st,
		Notifier:     mail,
		ResetURLBase: resetURLBase,
		Now:          clock.Now,
	}
	r.TokenService = &service.TokenService{Signer: signer, Issuer: testIssuer, TTL: time.Hour}
	r.DocumentService = &service.DocumentService{Store: st, Blobs: blobs, Recorder: audit, Now: clock.Now}
	r.DirectoryService = &service.DirectoryService{Store: st, Recorder: audit}
	r.ApplicationService = &service.ApplicationService{Store: st, Recorder: audit}
	r.AccessService = &service.AccessService{Store: st, Recorder: audit}
	r.AuditService = audit
	for _, opt := range opts {
		opt(r)
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		server: srv,
		client: desksdk.NewSDKClient(srv.URL),
		router: r,
		store:  st,
		blobs:  blobs,
		clock:  clock,
		mail:   mail,
	}
}

func validRegistration(email string) desksdk.RegisterRequest {
	return desksdk.RegisterRequest{
		Email:      email,
		Password:   "correct horse",
		NationalID: "12345678901",
		FullName:   "Ada Lovelace",
		BirthDate:  "1990-12-10",
	}
}

// login registers a fresh account and returns its session.
func (e *testEnv) login(t *testing.T) *desksdk.Session {
	t.Helper()
	ctx := context.Background()
	req := validRegistration("ada@example.com")
	require.NoError(t, e.client.Register(ctx, req))
	s, err := e.client.Login(ctx, req.Email, req.Password)
	require.NoError(t, err)
	return s
}

func requireAPIError(t *testing.T, err error, status int, code string) *desksdk.APIError {
	t.Helper()
	var apiErr *desksdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected *APIError, got %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}
