package bgg

import (
	"net/http"
	"time"

	"github.com/meeplelab/go-bgg/internal/api"
)

// Default configuration values.
const (
	// DefaultBaseURL is the public XML API2 endpoint.
	DefaultBaseURL = "https://boardgamegeek.com/xmlapi2"

	defaultTimeout = 30 * time.Second
)

// Client is the BoardGameGeek XML API client.
type Client struct {
	// Things provides access to catalog items.
	Things ThingService
	// Collections provides access to user collections.
	Collections CollectionService
	// Search provides name search over the catalog.
	Search SearchService
	// Hot provides the current hotness list.
	Hot HotService
	// Guilds provides access to guilds.
	Guilds GuildService
	// Families provides access to game families.
	Families FamilyService

	transport *api.Transport
}

// NewClient creates a new client with the given options.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.baseURL == "" {
		return nil, ErrNoBaseURL
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.timeout,
		}
	}

	transport, err := api.NewTransport(cfg.baseURL, httpClient)
	if err != nil {
		return nil, err
	}

	if cfg.userAgent != "" {
		transport.UserAgent = cfg.userAgent
	}
	if cfg.loggerSet {
		transport.Logger = cfg.logger
	}
	if cfg.retryBase > 0 {
		transport.RetryBaseDelay = cfg.retryBase
	}
	if cfg.maxRetries != nil {
		transport.MaxRetries = *cfg.maxRetries
	}

	client := &Client{
		transport: transport,
	}

	// Initialize services
	client.Things = newThingService(transport)
	client.Collections = newCollectionService(transport)
	client.Search = newSearchService(transport)
	client.Hot = newHotService(transport)
	client.Guilds = newGuildService(transport)
	client.Families = newFamilyService(transport)

	return client, nil
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.transport.BaseURL.String()
}
