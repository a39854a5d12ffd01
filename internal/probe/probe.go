// Package probe issues single GET requests against candidate profile URLs
// and classifies the result by HTTP status alone. Transport failures never
// escape this boundary; they become Unknown results.
package probe

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jkrls/namehunt/internal/httpx"
)

type Prober struct {
	client    httpx.Doer
	userAgent string
	log       *logrus.Logger
}

func New(client httpx.Doer, userAgent string, log *logrus.Logger) *Prober {
	if userAgent == "" {
		userAgent = httpx.DefaultUserAgent
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Prober{
		client:    client,
		userAgent: userAgent,
		log:       log,
	}
}

// CheckProfile issues one GET with the identifying User-Agent. 200 means
// the profile exists; 301/302 is treated as an existence signal too, since
// several sites redirect existing profiles to a canonical URL. Anything
// else is a miss. Note some sites answer 200 for every page, so a Found
// here is a heuristic, not proof.
func (p *Prober) CheckProfile(ctx context.Context, url string) Result {
	res := Result{URL: url}

	req, err := httpx.NewRequest(ctx, http.MethodGet, url, nil, p.userAgent)
	if err != nil {
		res.Detail = err.Error()
		return res
	}

	p.log.WithField("url", url).Debug("probing profile")

	resp, err := p.client.Do(req)
	if err != nil {
		res.Detail = err.Error()
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	switch resp.StatusCode {
	case http.StatusOK, http.StatusMovedPermanently, http.StatusFound:
		res.Presence = Found
	default:
		res.Presence = NotFound
	}

	p.log.WithFields(logrus.Fields{
		"url":      url,
		"status":   res.Status,
		"presence": res.Presence.String(),
	}).Debug("profile probe finished")

	return res
}
