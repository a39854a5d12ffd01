// Package hibp queries the Have I Been Pwned v3 breachedaccount endpoint.
// Without an API key the check is disabled: every lookup reports Unknown
// and no request leaves the process.
package hibp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"github.com/jkrls/namehunt/internal/httpx"
)

const endpoint = "https://haveibeenpwned.com/api/v3/breachedaccount/"

// DefaultTimeout bounds a single breach lookup.
const DefaultTimeout = 10 * time.Second

// Status is the tri-state outcome of a breach lookup. The zero value is
// Unknown: a disabled check and a failed check look the same to callers.
type Status int

const (
	Unknown Status = iota
	NotBreached
	Breached
)

func (s Status) String() string {
	switch s {
	case Breached:
		return "breached"
	case NotBreached:
		return "not-breached"
	default:
		return "unknown"
	}
}

// Result is the outcome of one email breach lookup.
type Result struct {
	Email    string
	Status   Status
	Breaches []string // breach names, best effort, only when Breached
	Detail   string   // reason when Status is Unknown
}

type breachRecord struct {
	Name string `json:"Name"`
}

type Client struct {
	key       string
	http      httpx.Doer
	userAgent string
	log       *logrus.Logger
}

// NewClient builds a breach-lookup client. A nil Doer gets a default
// client with the lookup timeout; an empty key disables lookups entirely.
func NewClient(key string, client httpx.Doer, log *logrus.Logger) *Client {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		key:       key,
		http:      client,
		userAgent: httpx.DefaultUserAgent,
		log:       log,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.key != ""
}

// CheckEmail reports whether the email appears in known breach data.
// 200 means breached, 404 means clean; everything else, including
// transport failures and a missing API key, is Unknown. Errors never
// propagate past this boundary.
func (c *Client) CheckEmail(ctx context.Context, email string) Result {
	res := Result{Email: email}

	if c.key == "" {
		res.Detail = "no API key configured"
		return res
	}

	lookupURL := endpoint + url.PathEscape(email) + "?truncateResponse=false"
	req, err := httpx.NewRequest(ctx, http.MethodGet, lookupURL, nil, c.userAgent)
	if err != nil {
		res.Detail = err.Error()
		return res
	}
	req.Header.Set("hibp-api-key", c.key)
	req.Header.Set("Accept", "application/json")

	c.log.WithField("email", email).Debug("querying breach database")

	resp, err := c.http.Do(req)
	if err != nil {
		res.Detail = err.Error()
		return res
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		res.Status = Breached
		res.Breaches = breachNames(resp.Body)
	case http.StatusNotFound:
		res.Status = NotBreached
	case http.StatusTooManyRequests:
		res.Detail = "rate limited"
	default:
		res.Detail = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}

	c.log.WithFields(logrus.Fields{
		"email":  email,
		"status": res.Status.String(),
	}).Debug("breach lookup finished")

	return res
}

// breachNames extracts breach names from a 200 body. A body we cannot
// parse still counts as breached, just without names.
func breachNames(r io.Reader) []string {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil
	}

	var records []breachRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil
	}

	names := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Name != "" {
			names = append(names, rec.Name)
		}
	}
	return names
}
