package sync

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestProductNotifier_DeliversHeaderAndBody(t *testing.T) {
	type received struct {
		path   string
		secret string
		body   map[string]string
	}
	got := make(chan received, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]string
		_ = json.Unmarshal(raw, &body)
		got <- received{
			path:   r.URL.Path,
			secret: r.Header.Get("X-Internal-Token"),
			body:   body,
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewProductNotifier(srv.URL, "abc", zerolog.Nop())
	n.MediaAttached("p1", "m1")

	select {
	case r := <-got:
		if r.path != "/api/products/p1/images" {
			t.Fatalf("path = %q", r.path)
		}
		if r.secret != "abc" {
			t.Fatalf("secret header = %q, want abc", r.secret)
		}
		if r.body["mediaId"] != "m1" {
			t.Fatalf("body = %v", r.body)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("notification never arrived")
	}
}

func TestProductNotifier_UnreachableTargetIsSwallowed(t *testing.T) {
	n := NewProductNotifier("http://127.0.0.1:1", "abc", zerolog.Nop())

	// Must return immediately and must not panic; the failure is logged and
	// dropped inside the detached goroutine.
	n.MediaAttached("p1", "m1")
}

func TestProductNotifier_Non2xxIsSwallowed(t *testing.T) {
	done := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		done <- struct{}{}
	}))
	defer srv.Close()

	n := NewProductNotifier(srv.URL, "wrong", zerolog.Nop())
	n.MediaAttached("p1", "m1")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("notification never attempted")
	}
}

func TestProductNotifier_SkipsWhenUnconfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected when secret is unconfigured")
	}))
	defer srv.Close()

	n := NewProductNotifier(srv.URL, "", zerolog.Nop())
	n.MediaAttached("p1", "m1")

	// Give a stray goroutine a moment to surface before the server closes.
	time.Sleep(50 * time.Millisecond)
}

func TestProductNotifier_SlowTargetIsBounded(t *testing.T) {
	n := NewProductNotifier("http://example.invalid", "abc", zerolog.Nop())
	if n.client.Timeout != notifyTimeout {
		t.Fatalf("client timeout = %v, want %v", n.client.Timeout, notifyTimeout)
	}
}
