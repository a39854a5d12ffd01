package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jkrls/namehunt/internal/httpx"
)

func noRedirectClient() *http.Client {
	return &http.Client{
		Timeout: 2 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestCheckProfileOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := New(srv.Client(), "", nil)
	res := p.CheckProfile(context.Background(), srv.URL+"/janedoe")
	if res.Presence != Found {
		t.Errorf("Presence = %v; want Found", res.Presence)
	}
	if res.Status != http.StatusOK {
		t.Errorf("Status = %d; want 200", res.Status)
	}
}

func TestCheckProfileRedirectStatusesAreHits(t *testing.T) {
	for _, status := range []int{http.StatusMovedPermanently, http.StatusFound} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/elsewhere", status)
		}))

		p := New(noRedirectClient(), "", nil)
		res := p.CheckProfile(context.Background(), srv.URL+"/janedoe")
		if res.Presence != Found {
			t.Errorf("status %d: Presence = %v; want Found", status, res.Presence)
		}
		if res.Status != status {
			t.Errorf("status %d: Status = %d", status, res.Status)
		}
		srv.Close()
	}
}

func TestCheckProfileMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p := New(srv.Client(), "", nil)
	res := p.CheckProfile(context.Background(), srv.URL+"/nobody")
	if res.Presence != NotFound {
		t.Errorf("Presence = %v; want NotFound", res.Presence)
	}
	if res.Status != http.StatusNotFound {
		t.Errorf("Status = %d; want 404", res.Status)
	}
}

func TestCheckProfileTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // connection refused from here on

	p := New(&http.Client{Timeout: 2 * time.Second}, "", nil)
	res := p.CheckProfile(context.Background(), url+"/janedoe")
	if res.Presence != Unknown {
		t.Errorf("Presence = %v; want Unknown", res.Presence)
	}
	if res.Detail == "" {
		t.Error("expected error detail for transport failure")
	}
}

func TestCheckProfileSetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	p := New(srv.Client(), "", nil)
	p.CheckProfile(context.Background(), srv.URL)
	if gotUA != httpx.DefaultUserAgent {
		t.Errorf("User-Agent = %q; want %q", gotUA, httpx.DefaultUserAgent)
	}
}

func TestPresenceString(t *testing.T) {
	if Found.String() != "found" || NotFound.String() != "not-found" || Unknown.String() != "unknown" {
		t.Error("unexpected Presence string values")
	}
}
