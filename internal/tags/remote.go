package tags

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cueimport/internal/logger"
)

// Remote fetch errors.
var (
	ErrNoServiceURL         = errors.New("no tag service URL configured")
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrEmptyMapping         = errors.New("tag service returned an empty mapping")
)

// mappingEntry is one element of the service's JSON response.
type mappingEntry struct {
	Name       string `json:"name"`
	MappedName string `json:"mapped_name"`
}

// Client fetches the tag mapping table from the remote lookup service.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a client for the given service URL with a bounded
// request timeout.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// Fetch retrieves the raw → canonical table from the service. Tag names
// are trimmed on ingestion; the live service has carried entries with
// trailing whitespace ("Camp 2016 ").
func (c *Client) Fetch(ctx context.Context) (map[string]string, error) {
	if c.url == "" {
		return nil, ErrNoServiceURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var entries []mappingEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse mapping response: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrEmptyMapping
	}

	table := make(map[string]string, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" || e.MappedName == "" {
			continue
		}

		table[name] = e.MappedName
	}

	if len(table) == 0 {
		return nil, ErrEmptyMapping
	}

	return table, nil
}

// LoadResolver selects the tag resolver at startup: the remote table when
// the fetch succeeds, otherwise the static fallback. Any failure (missing
// URL, network error, bad status, malformed body, timeout) degrades to the
// fallback so the batch run never hangs or aborts on the lookup.
func LoadResolver(ctx context.Context, serviceURL string, timeout time.Duration, fallback map[string]string, log *logger.Logger) Resolver {
	client := NewClient(serviceURL, timeout)

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	table, err := client.Fetch(fetchCtx)
	if err != nil {
		log.Warn("could not fetch tag mapping, using fallback table", "error", err, "mappings", len(fallback))

		return NewTableResolver(fallback)
	}

	log.Info("fetched tag mapping", "mappings", len(table))

	return NewTableResolver(table)
}
