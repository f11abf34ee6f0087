package handler_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/msomdec/petition/internal/handler"
	"github.com/msomdec/petition/internal/service"
	"github.com/msomdec/petition/internal/view"
)

type testEnv struct {
	srv    *httptest.Server
	client *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	auth, db := newTestAuthService(t)

	renderer, err := view.New()
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}

	petition := service.NewPetitionService(db.Signatures())
	profile := service.NewProfileService(db.Users(), db.Profiles(), db.Accounts())
	// A bucket large enough that flow tests never trip the limiter.
	limiter := service.NewTokenBucket(1000, 1000)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, petition, profile, renderer, limiter, false)

	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // don't follow redirects automatically
		},
	}

	return &testEnv{srv: srv, client: client}
}

// newServerEnv wraps an already-built mux in a test server with a fresh
// cookie-jar client.
func newServerEnv(t *testing.T, mux *http.ServeMux) *testEnv {
	t.Helper()
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testEnv{srv: srv, client: client}
}

// newClientEnv returns a second visitor for the same server: same routes
// and database, separate cookie jar.
func newClientEnv(t *testing.T, env *testEnv) *testEnv {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testEnv{srv: env.srv, client: client}
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := e.client.Get(e.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := e.client.PostForm(e.srv.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != location {
		t.Fatalf("expected redirect to %s, got %s", location, loc)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

// register creates an account through the HTTP surface, leaving the client
// logged in and on the profile step.
func (e *testEnv) register(t *testing.T, first, last, email string) {
	t.Helper()
	resp := e.postForm(t, "/register", url.Values{
		"first_name": {first},
		"last_name":  {last},
		"email":      {email},
		"password":   {"password123"},
	})
	expectRedirect(t, resp, "/profile")
}

// sign submits a signature, leaving the client in the signed state.
func (e *testEnv) sign(t *testing.T, image string) {
	t.Helper()
	resp := e.postForm(t, "/", url.Values{"signature": {image}})
	expectRedirect(t, resp, "/thankyou")
}

func bodyContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Fatalf("expected body to contain %q, got:\n%s", want, body)
	}
}
