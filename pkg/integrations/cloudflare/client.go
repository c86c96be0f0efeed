package cloudflare

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/kryptos/pkg/integrations"
)

// DefaultBaseURL is the Cloudflare API v4 endpoint.
const DefaultBaseURL = "https://api.cloudflare.com/client/v4"

// MinTTL is the shortest expiration Workers KV accepts.
const MinTTL = 60 * time.Second

// ErrNotConfigured is returned by [NewClient] when credentials are missing.
var ErrNotConfigured = errors.New("cloudflare: account id, namespace id and api token are required")

// Config identifies a Workers KV namespace.
type Config struct {
	AccountID   string
	NamespaceID string
	APIToken    string

	// BaseURL overrides [DefaultBaseURL] (tests, API proxies).
	BaseURL string
}

// Configured reports whether all credentials are present.
func (c Config) Configured() bool {
	return c.AccountID != "" && c.NamespaceID != "" && c.APIToken != ""
}

// Client reads and writes values in one Workers KV namespace.
type Client struct {
	*integrations.Client
	prefix string
}

// NewClient creates a Workers KV client for cfg.
func NewClient(cfg Config) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	headers := map[string]string{"Authorization": "Bearer " + cfg.APIToken}
	return &Client{
		Client: integrations.NewClient(base, headers),
		prefix: "/accounts/" + url.PathEscape(cfg.AccountID) +
			"/storage/kv/namespaces/" + url.PathEscape(cfg.NamespaceID) + "/values/",
	}, nil
}

// Get fetches the raw value stored under key. A missing key is reported as
// ok == false with a nil error.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.Client.Get(ctx, c.valuePath(key))
	if errors.Is(err, integrations.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put stores data under key. A positive ttl shorter than [MinTTL] is raised
// to MinTTL; zero stores the value without expiry.
func (c *Client) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var query url.Values
	if ttl > 0 {
		ttl = max(ttl, MinTTL)
		query = url.Values{"expiration_ttl": {strconv.Itoa(int(ttl / time.Second))}}
	}
	return c.Client.Put(ctx, c.valuePath(key), query, data)
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.Client.Delete(ctx, c.valuePath(key))
	if errors.Is(err, integrations.ErrNotFound) {
		return nil
	}
	return err
}

func (c *Client) valuePath(key string) string {
	return c.prefix + url.PathEscape(key)
}
