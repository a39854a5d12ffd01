package hibp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestCheckEmailNoKey(t *testing.T) {
	called := false
	c := NewClient("", doerFunc(func(*http.Request) (*http.Response, error) {
		called = true
		return response(200, "[]"), nil
	}), nil)

	res := c.CheckEmail(context.Background(), "jane.doe@example.com")
	if res.Status != Unknown {
		t.Errorf("Status = %v; want Unknown", res.Status)
	}
	if called {
		t.Error("no request may be issued without an API key")
	}
	if c.Enabled() {
		t.Error("Enabled() = true without a key")
	}
}

func TestCheckEmailBreached(t *testing.T) {
	var gotReq *http.Request
	c := NewClient("test-key", doerFunc(func(req *http.Request) (*http.Response, error) {
		gotReq = req
		return response(200, `[{"Name":"Adobe"},{"Name":"LinkedIn"}]`), nil
	}), nil)

	res := c.CheckEmail(context.Background(), "jane.doe@example.com")
	if res.Status != Breached {
		t.Fatalf("Status = %v; want Breached", res.Status)
	}
	if len(res.Breaches) != 2 || res.Breaches[0] != "Adobe" || res.Breaches[1] != "LinkedIn" {
		t.Errorf("Breaches = %v", res.Breaches)
	}

	if got := gotReq.Header.Get("hibp-api-key"); got != "test-key" {
		t.Errorf("hibp-api-key = %q", got)
	}
	if got := gotReq.Header.Get("Accept"); got != "application/json" {
		t.Errorf("Accept = %q", got)
	}
	if !strings.Contains(gotReq.URL.Path, "jane.doe@example.com") {
		t.Errorf("unexpected lookup path %q", gotReq.URL.Path)
	}
}

func TestCheckEmailBreachedUnparsableBody(t *testing.T) {
	c := NewClient("test-key", doerFunc(func(*http.Request) (*http.Response, error) {
		return response(200, "not json"), nil
	}), nil)

	res := c.CheckEmail(context.Background(), "jane@example.com")
	if res.Status != Breached {
		t.Errorf("Status = %v; want Breached even with an unparsable body", res.Status)
	}
	if len(res.Breaches) != 0 {
		t.Errorf("Breaches = %v; want none", res.Breaches)
	}
}

func TestCheckEmailNotBreached(t *testing.T) {
	c := NewClient("test-key", doerFunc(func(*http.Request) (*http.Response, error) {
		return response(404, ""), nil
	}), nil)

	res := c.CheckEmail(context.Background(), "jane@example.com")
	if res.Status != NotBreached {
		t.Errorf("Status = %v; want NotBreached", res.Status)
	}
}

func TestCheckEmailUnexpectedStatus(t *testing.T) {
	for _, status := range []int{401, 429, 500} {
		c := NewClient("test-key", doerFunc(func(*http.Request) (*http.Response, error) {
			return response(status, ""), nil
		}), nil)

		res := c.CheckEmail(context.Background(), "jane@example.com")
		if res.Status != Unknown {
			t.Errorf("status %d: Status = %v; want Unknown", status, res.Status)
		}
		if res.Detail == "" {
			t.Errorf("status %d: expected a detail", status)
		}
	}
}

func TestCheckEmailTransportFailure(t *testing.T) {
	c := NewClient("test-key", doerFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	}), nil)

	res := c.CheckEmail(context.Background(), "jane@example.com")
	if res.Status != Unknown {
		t.Errorf("Status = %v; want Unknown", res.Status)
	}
	if res.Detail == "" {
		t.Error("expected error detail")
	}
}
