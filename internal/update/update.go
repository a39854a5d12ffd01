// Package update checks GitHub for a newer release of the tool.
package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	version "github.com/mcuadros/go-version"
	"github.com/pkg/errors"

	"github.com/jkrls/namehunt/internal/httpx"
)

const latestReleaseURL = "https://api.github.com/repos/jkrls/namehunt/releases/latest"

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check compares the running version against the latest GitHub release.
// It returns the newer version string when one exists, or "" when the
// running build is current.
func Check(ctx context.Context, client httpx.Doer, current string) (string, error) {
	req, err := httpx.NewRequest(ctx, http.MethodGet, latestReleaseURL, nil, httpx.DefaultUserAgent)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "query latest release")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var rel release
	if err := sonic.Unmarshal(body, &rel); err != nil {
		return "", errors.Wrap(err, "parse release")
	}
	latest := strings.TrimPrefix(rel.TagName, "v")
	if latest == "" {
		return "", errors.New("release has no tag")
	}

	if version.Compare(latest, strings.TrimPrefix(current, "v"), ">") {
		return latest, nil
	}
	return "", nil
}
