package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/a7med3yad/Cartify-Frontend/auth"
	"github.com/a7med3yad/Cartify-Frontend/cart"
	"github.com/a7med3yad/Cartify-Frontend/clients"
	"github.com/a7med3yad/Cartify-Frontend/preferences"
	"github.com/a7med3yad/Cartify-Frontend/storage"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

type call struct {
	method      string
	path        string
	query       string
	auth        string
	contentType string
	body        string
	form        map[string][]string
}

type reply struct {
	status int
	body   string
}

// fakeAPI answers "METHOD /path" with canned replies and records every call.
type fakeAPI struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []call
}

func (f *fakeAPI) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method+" "+path] = reply{status: status, body: body}
}

func (f *fakeAPI) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeAPI) last(t *testing.T) call {
	t.Helper()
	calls := f.recorded()
	require.NotEmpty(t, calls)
	return calls[len(calls)-1]
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := call{
		method:      r.Method,
		path:        r.URL.Path,
		query:       r.URL.RawQuery,
		auth:        r.Header.Get("Authorization"),
		contentType: r.Header.Get("Content-Type"),
	}
	if strings.HasPrefix(c.contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			c.form = r.MultipartForm.Value
		}
	} else {
		b, _ := io.ReadAll(r.Body)
		c.body = string(b)
	}

	f.mu.Lock()
	f.calls = append(f.calls, c)
	rep, ok := f.replies[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"title":"Not Found"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

type env struct {
	api    *fakeAPI
	mem    *storage.MemoryStore
	tokens *auth.TokenStore
	cart   *cart.CartStore
	prefs  *preferences.Preferences
	gw     *clients.GatewayClient
}

func newEnv(t *testing.T) *env {
	t.Helper()
	api := &fakeAPI{replies: map[string]reply{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	mem := storage.NewMemoryStore()
	tokens := auth.NewTokenStore(mem, nil)
	return &env{
		api:    api,
		mem:    mem,
		tokens: tokens,
		cart:   cart.NewCartStore(mem, nil),
		prefs:  preferences.New(mem, nil),
		gw:     clients.NewGatewayClient(srv.URL, clients.GatewayOptions{Tokens: tokens}),
	}
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func (e *env) signIn(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := signedToken(t, claims)
	_, err := e.tokens.SetSession(context.Background(), auth.AuthResponse{JWT: token})
	require.NoError(t, err)
	return token
}
