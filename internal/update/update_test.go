package update

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
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestCheckNewerRelease(t *testing.T) {
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.Contains(req.URL.Path, "releases/latest") {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		return response(200, `{"tag_name":"v1.2.0"}`), nil
	})

	latest, err := Check(context.Background(), client, "1.0.0")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if latest != "1.2.0" {
		t.Errorf("latest = %q; want 1.2.0", latest)
	}
}

func TestCheckUpToDate(t *testing.T) {
	client := doerFunc(func(*http.Request) (*http.Response, error) {
		return response(200, `{"tag_name":"v1.0.0"}`), nil
	})

	latest, err := Check(context.Background(), client, "1.0.0")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if latest != "" {
		t.Errorf("latest = %q; want empty for current build", latest)
	}
}

func TestCheckFailures(t *testing.T) {
	cases := []struct {
		name   string
		client doerFunc
	}{
		{"transport", func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp: timeout")
		}},
		{"status", func(*http.Request) (*http.Response, error) {
			return response(403, ""), nil
		}},
		{"body", func(*http.Request) (*http.Response, error) {
			return response(200, "not json"), nil
		}},
		{"no tag", func(*http.Request) (*http.Response, error) {
			return response(200, `{}`), nil
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Check(context.Background(), tc.client, "1.0.0"); err == nil {
				t.Error("expected error")
			}
		})
	}
}
