package mivideo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mivideo/internal/mediaapi"
	"mivideo/internal/mediaapi/mivideo"
	"mivideo/internal/services"
)

const tokenResponse = `{"token_type":"Bearer","access_token":"tok-123"}`

// newTokenServer serves the OAuth2 exchange plus the supplied API handler.
func newTokenServer(t *testing.T, apiHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/um/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token exchange used method %s", r.Method)
		}
		query := r.URL.Query()
		if query.Get("grant_type") != "client_credentials" || query.Get("scope") != "mivideo" {
			t.Errorf("unexpected token query %q", r.URL.RawQuery)
		}
		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("token exchange missing basic auth")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(tokenResponse))
	})
	if apiHandler != nil {
		mux.HandleFunc("/um/aa/mivideo/", apiHandler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server) *mivideo.Client {
	t.Helper()
	client, err := mivideo.New(context.Background(), mivideo.Config{
		Host:       server.URL,
		AuthID:     "id",
		AuthSecret: "secret",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := mivideo.New(context.Background(), mivideo.Config{Host: "example.edu"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	_, err = mivideo.New(context.Background(), mivideo.Config{AuthID: "id", AuthSecret: "secret"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing host, got %v", err)
	}
}

func TestTokenExchange401IsAuthenticationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	_, err := mivideo.New(context.Background(), mivideo.Config{Host: server.URL, AuthID: "id", AuthSecret: "bad"})
	if !errors.Is(err, services.ErrAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if errors.Is(err, services.ErrTokenAcquisition) {
		t.Fatalf("401 must not classify as token acquisition failure: %v", err)
	}
}

func TestTokenExchange500IsTokenAcquisitionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	_, err := mivideo.New(context.Background(), mivideo.Config{Host: server.URL, AuthID: "id", AuthSecret: "secret"})
	if !errors.Is(err, services.ErrTokenAcquisition) {
		t.Fatalf("expected token acquisition error, got %v", err)
	}
	if errors.Is(err, services.ErrAuthentication) {
		t.Fatalf("500 must not classify as authentication failure: %v", err)
	}
}

func TestGetMediaListCarriesAuthAndPaging(t *testing.T) {
	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if got := r.Header.Get("LMS-User-Id"); got != "user1" {
			t.Errorf("unexpected LMS-User-Id header %q", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing correlation id header")
		}
		query := r.URL.Query()
		if query.Get("pageIndex") != "1" || query.Get("pageSize") != "500" {
			t.Errorf("unexpected paging %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"objects":[{"id":"1_abc","name":"Lecture 1"}]}`))
	})

	client := newTestClient(t, server)
	entries, err := client.GetMediaList(context.Background(), "course1", "user1", mediaapi.Page{})
	if err != nil {
		t.Fatalf("GetMediaList returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "1_abc" || entries[0].Name != "Lecture 1" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}

func TestGetCaptionListDecodesFormats(t *testing.T) {
	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"objects":[
			{"id":"cap1","languageCode":"en-us","format":"1"},
			{"id":"cap2","languageCode":"fr","format":3}
		]}`))
	})

	client := newTestClient(t, server)
	assets, err := client.GetCaptionList(context.Background(), "course1", "user1", "1_abc")
	if err != nil {
		t.Fatalf("GetCaptionList returned error: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}
	if assets[0].Format != mediaapi.FormatSRT || assets[1].Format != mediaapi.FormatWEBVTT {
		t.Fatalf("unexpected formats: %#v", assets)
	}
}

func TestGetCaptionTextReturnsRawBody(t *testing.T) {
	const captionText = "1\n00:00:00,000 --> 00:00:01,000\nhello\n"
	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(captionText))
	})

	client := newTestClient(t, server)
	text, err := client.GetCaptionText(context.Background(), "course1", "user1", "cap1")
	if err != nil {
		t.Fatalf("GetCaptionText returned error: %v", err)
	}
	if text != captionText {
		t.Fatalf("unexpected caption text %q", text)
	}
}

func TestAPIErrorStatusIsNotRetried(t *testing.T) {
	calls := 0
	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	})

	client := newTestClient(t, server)
	_, err := client.GetMediaList(context.Background(), "course1", "user1", mediaapi.Page{})
	if !errors.Is(err, services.ErrHTTPStatus) {
		t.Fatalf("expected http status error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("http errors must not be retried, got %d calls", calls)
	}
}

// timeoutTransport fails the first n API round trips with a timeout, then
// delegates to the real transport. The token exchange always passes through
// so construction succeeds.
type timeoutTransport struct {
	failures   int
	calls      int
	requestIDs []string
	inner      http.RoundTripper
}

type timeoutNetErr struct{}

func (timeoutNetErr) Error() string   { return "i/o timeout" }
func (timeoutNetErr) Timeout() bool   { return true }
func (timeoutNetErr) Temporary() bool { return true }

func (tt *timeoutTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Path == "/um/oauth2/token" {
		return tt.inner.RoundTrip(req)
	}
	tt.calls++
	tt.requestIDs = append(tt.requestIDs, req.Header.Get("X-Request-Id"))
	if tt.calls <= tt.failures {
		return nil, timeoutNetErr{}
	}
	return tt.inner.RoundTrip(req)
}

func newTimeoutClient(t *testing.T, server *httptest.Server, transport *timeoutTransport) *mivideo.Client {
	t.Helper()
	client, err := mivideo.New(context.Background(), mivideo.Config{
		Host:       server.URL,
		AuthID:     "id",
		AuthSecret: "secret",
		HTTPClient: &http.Client{Transport: transport},
		Retry:      mediaapi.RetryPolicy{InitialBackoff: time.Millisecond, MaxBackoff: 4 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestRequestRetriesTimeoutsThenSucceeds(t *testing.T) {
	server := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"objects":[]}`))
	})
	transport := &timeoutTransport{failures: 2, inner: http.DefaultTransport}
	client := newTimeoutClient(t, server, transport)

	if _, err := client.GetMediaList(context.Background(), "course1", "user1", mediaapi.Page{}); err != nil {
		t.Fatalf("expected third attempt to succeed, got %v", err)
	}
	if transport.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", transport.calls)
	}
	seen := make(map[string]bool, len(transport.requestIDs))
	for _, id := range transport.requestIDs {
		if id == "" {
			t.Fatal("attempt sent without a correlation id")
		}
		if seen[id] {
			t.Fatalf("correlation id %q reused across attempts", id)
		}
		seen[id] = true
	}
}

func TestRequestExhaustsRetriesOnPersistentTimeout(t *testing.T) {
	server := newTokenServer(t, nil)
	transport := &timeoutTransport{failures: 10, inner: http.DefaultTransport}
	client := newTimeoutClient(t, server, transport)

	_, err := client.GetMediaList(context.Background(), "course1", "user1", mediaapi.Page{})
	if !errors.Is(err, services.ErrRetryExhausted) {
		t.Fatalf("expected retry exhaustion, got %v", err)
	}
	if transport.calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", transport.calls)
	}
}
