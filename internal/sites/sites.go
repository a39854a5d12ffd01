// Package sites holds the registry of probe targets: site labels mapped to
// URL templates with a single "{}" substitution slot for the username.
package sites

import (
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// Site is one probe target. Pattern is an optional username-validity
// regex (Sherlock-style regexCheck); candidates that fail it are skipped
// for the site without issuing a request.
type Site struct {
	Name        string `json:"name"`
	URLTemplate string `json:"url"`
	Pattern     string `json:"regexCheck,omitempty"`
}

// Builtin returns the default registry. Slice order is the probe order.
func Builtin() []Site {
	return []Site{
		{Name: "GitHub", URLTemplate: "https://github.com/{}", Pattern: `^[a-zA-Z0-9](?:[a-zA-Z0-9]|-(?=[a-zA-Z0-9])){0,38}$`},
		{Name: "X", URLTemplate: "https://x.com/{}", Pattern: `^[a-zA-Z0-9_]{1,15}$`},
		{Name: "Instagram", URLTemplate: "https://instagram.com/{}"},
		{Name: "Reddit", URLTemplate: "https://reddit.com/user/{}", Pattern: `^[a-zA-Z0-9_-]{3,20}$`},
		{Name: "TikTok", URLTemplate: "https://www.tiktok.com/@{}"},
		{Name: "Pinterest", URLTemplate: "https://pinterest.com/{}/"},
		{Name: "StackOverflow", URLTemplate: "https://stackoverflow.com/users/{}"},
	}
}

// BuildURL substitutes the username into a site URL template.
func BuildURL(template, username string) string {
	return strings.Replace(template, "{}", username, 1)
}

// LoadFile reads a custom registry from a JSON array, preserving file
// order. Every entry must carry a name and a template with a "{}" slot.
func LoadFile(path string) ([]Site, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []Site
	if err := sonic.Unmarshal(raw, &list); err != nil {
		return nil, errors.Wrapf(err, "parse site registry %q", path)
	}
	if len(list) == 0 {
		return nil, errors.Errorf("site registry %q is empty", path)
	}

	for _, s := range list {
		if s.Name == "" {
			return nil, errors.Errorf("site registry %q: entry with empty name", path)
		}
		if !strings.Contains(s.URLTemplate, "{}") {
			return nil, errors.Errorf("site %q: url must contain a {} slot", s.Name)
		}
	}

	return list, nil
}
