// Package breach wraps the Breach Directory API for credential lookups on
// confirmed usernames. Like the HIBP path, it is disabled without a key.
package breach

import (
	"github.com/ibnaleem/gobreach"
	"github.com/pkg/errors"
)

// Entry is one leaked credential record.
type Entry struct {
	Password string
	SHA1     string
	Sources  string
}

type Client struct {
	bd *gobreach.BreachDirectoryClient
}

func NewClient(apiKey string) (*Client, error) {
	bd, err := gobreach.NewBreachDirectoryClient(apiKey)
	if err != nil {
		return nil, errors.Wrap(err, "init breach directory client")
	}
	return &Client{bd: bd}, nil
}

// Lookup queries Breach Directory for records tied to a username.
func (c *Client) Lookup(username string) ([]Entry, error) {
	resp, err := c.bd.Search(username)
	if err != nil {
		return nil, errors.Wrapf(err, "breach directory search for %q", username)
	}

	entries := make([]Entry, 0, resp.Found)
	for _, r := range resp.Result {
		entries = append(entries, Entry{
			Password: r.Password,
			SHA1:     r.Sha1,
			Sources:  r.Sources,
		})
	}
	return entries, nil
}
