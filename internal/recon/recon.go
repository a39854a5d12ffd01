// Package recon drives the generator-plus-prober pipeline: derive
// candidates from a name, probe each (username, site) pair, then run every
// email candidate through the breach lookup. Execution is strictly
// sequential and throttled by a shared fixed-interval limiter.
package recon

import (
	"context"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jkrls/namehunt/internal/hibp"
	"github.com/jkrls/namehunt/internal/namegen"
	"github.com/jkrls/namehunt/internal/probe"
	"github.com/jkrls/namehunt/internal/sites"
)

// DefaultDomains are tried when the caller supplies none.
var DefaultDomains = []string{"gmail.com", "yahoo.com", "outlook.com"}

const (
	// DefaultMaxProbes caps the total number of profile requests per run.
	DefaultMaxProbes = 50
	// DefaultInterval is the pause enforced between consecutive requests.
	DefaultInterval = time.Second
)

// ProfileChecker reports whether a profile URL resolves to a real account.
type ProfileChecker interface {
	CheckProfile(ctx context.Context, url string) probe.Result
}

// EmailChecker reports whether an email appears in known breach data.
type EmailChecker interface {
	CheckEmail(ctx context.Context, email string) hibp.Result
}

type Config struct {
	Domains   []string
	MaxProbes int
	Interval  time.Duration
}

// ProfileHit is one confirmed (site, username) pair.
type ProfileHit struct {
	Site     string
	Username string
	URL      string
	Status   int
}

// BreachHit is one email confirmed present in breach data.
type BreachHit struct {
	Email    string
	Pwned    bool
	Breaches []string
}

// Findings accumulates confirmed hits in probe order.
type Findings struct {
	Profiles []ProfileHit
	Breaches []BreachHit
	Probes   int // profile requests actually issued
}

// Phase identifies which half of the run emitted a ProbeEvent.
type Phase int

const (
	PhaseProfiles Phase = iota
	PhaseEmails
)

// ProbeEvent is emitted after every single request, hit or miss.
type ProbeEvent struct {
	Phase    Phase
	Site     string
	Username string
	Email    string
	Profile  probe.Result
	Breach   hibp.Result
}

type Finder struct {
	profiles ProfileChecker
	emails   EmailChecker
	registry []sites.Site
	limiter  *rate.Limiter
	log      *logrus.Logger
	cfg      Config

	// Compiled site patterns, cached per site name.
	patterns map[string]*regexp2.Regexp
}

func NewFinder(profiles ProfileChecker, emails EmailChecker, registry []sites.Site, cfg Config, log *logrus.Logger) *Finder {
	if cfg.MaxProbes <= 0 {
		cfg.MaxProbes = DefaultMaxProbes
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if len(cfg.Domains) == 0 {
		cfg.Domains = DefaultDomains
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Finder{
		profiles: profiles,
		emails:   emails,
		registry: registry,
		limiter:  rate.NewLimiter(rate.Every(cfg.Interval), 1),
		log:      log,
		cfg:      cfg,
		patterns: make(map[string]*regexp2.Regexp),
	}
}

// FindPublicAccounts runs the two-phase pipeline for a full name. Phase
// one probes every (username, site) pair in candidate order and registry
// order until the probe cap is hit; reaching the cap skips the email
// phase entirely. Phase two feeds every email candidate through the
// breach lookup, keeping only confirmed breaches. onProbe, when non-nil,
// observes every request as it completes.
//
// Network failures are absorbed by the checkers and never end the run;
// the error return is reserved for context cancellation, in which case
// the findings accumulated so far are still returned.
func (f *Finder) FindPublicAccounts(ctx context.Context, fullName string, onProbe func(ProbeEvent)) (Findings, error) {
	var findings Findings

	usernames := namegen.Usernames(fullName)
	emails := namegen.Emails(fullName, f.cfg.Domains)

	f.log.WithFields(logrus.Fields{
		"usernames": len(usernames),
		"emails":    len(emails),
	}).Info("generated candidates")

	for _, username := range usernames {
		for _, site := range f.registry {
			if !f.siteAccepts(site, username) {
				// Not a valid username shape for this site; skip
				// without spending a probe.
				continue
			}

			if err := f.limiter.Wait(ctx); err != nil {
				return findings, err
			}

			url := sites.BuildURL(site.URLTemplate, username)
			res := f.profiles.CheckProfile(ctx, url)
			findings.Probes++

			if res.Presence == probe.Found {
				findings.Profiles = append(findings.Profiles, ProfileHit{
					Site:     site.Name,
					Username: username,
					URL:      url,
					Status:   res.Status,
				})
			}
			if onProbe != nil {
				onProbe(ProbeEvent{Phase: PhaseProfiles, Site: site.Name, Username: username, Profile: res})
			}

			if findings.Probes >= f.cfg.MaxProbes {
				f.log.WithField("probes", findings.Probes).Info("probe cap reached, skipping email phase")
				return findings, nil
			}
		}
	}

	for _, email := range emails {
		if err := f.limiter.Wait(ctx); err != nil {
			return findings, err
		}

		res := f.emails.CheckEmail(ctx, email)
		if res.Status == hibp.Breached {
			findings.Breaches = append(findings.Breaches, BreachHit{
				Email:    email,
				Pwned:    true,
				Breaches: res.Breaches,
			})
		}
		if onProbe != nil {
			onProbe(ProbeEvent{Phase: PhaseEmails, Email: email, Breach: res})
		}
	}

	return findings, nil
}

// siteAccepts evaluates the site's optional username pattern. A pattern
// that fails to compile accepts everything rather than silencing the site.
func (f *Finder) siteAccepts(site sites.Site, username string) bool {
	if site.Pattern == "" {
		return true
	}

	re, ok := f.patterns[site.Name]
	if !ok {
		var err error
		re, err = regexp2.Compile(site.Pattern, 0)
		if err != nil {
			f.log.WithField("site", site.Name).WithError(err).Warn("invalid site pattern, ignoring")
			re = nil
		}
		f.patterns[site.Name] = re
	}
	if re == nil {
		return true
	}

	match, err := re.MatchString(username)
	if err != nil {
		return true
	}
	return match
}
