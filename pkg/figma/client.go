package figma

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	figmaAPIBase = "https://api.figma.com/v1"
	maxRetries   = 3
)

// Client represents a Figma API client with configured HTTP settings for reliable communication
// with the Figma API. It includes retry logic and optimized transport settings for handling large files.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	backoff     time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBackoff sets the base delay between retries. The n-th retry waits n*d.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		c.backoff = d
	}
}

// NewClient creates a new Figma API client with the provided personal access token.
// The client is configured with connection pooling, disabled HTTP/2 (for large file stability),
// and a 10-minute timeout for very large files.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     figmaAPIBase,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
		backoff: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
// Returns an error if the URL format is invalid or if the URL doesn't match the expected Figma domain pattern.
func ExtractFileKey(figmaURL string) (string, error) {
	// Anchored to ensure the entire URL matches the expected pattern and prevent bypass attacks.
	matches := fileKeyPattern.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}

	return matches[1], nil
}

var (
	fileKeyPattern  = regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$|\?|#)`)
	queryNodeIDs    = regexp.MustCompile(`[?&]node-id=([^&#]*)`)
	fragmentNodeIDs = regexp.MustCompile(`#([0-9:,\- ]+)$`)
	pathNodeIDs     = regexp.MustCompile(`/nodes/([^?#]+)`)
)

// ExtractNodeIDs returns the node IDs referenced by a Figma URL, in order and without duplicates.
// IDs may appear as a node-id query parameter, a hash fragment or a /nodes/ path segment.
// The URL form "123-456" is normalized to the API form "123:456".
// A URL without node references yields an empty slice.
func ExtractNodeIDs(figmaURL string) ([]string, error) {
	var raw string
	switch {
	case queryNodeIDs.MatchString(figmaURL):
		raw = queryNodeIDs.FindStringSubmatch(figmaURL)[1]
	case pathNodeIDs.MatchString(figmaURL):
		raw = pathNodeIDs.FindStringSubmatch(figmaURL)[1]
	case fragmentNodeIDs.MatchString(figmaURL):
		raw = fragmentNodeIDs.FindStringSubmatch(figmaURL)[1]
	default:
		return []string{}, nil
	}

	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid node-id value %q: %w", raw, err)
	}

	ids := make([]string, 0)
	for _, part := range strings.Split(unescaped, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		ids = append(ids, strings.ReplaceAll(id, "-", ":"))
	}

	return deduplicateNodeIDs(ids), nil
}

// deduplicateNodeIDs removes repeated IDs, keeping the first occurrence.
func deduplicateNodeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// GetFile retrieves complete file data from the Figma API including the document structure.
func (c *Client) GetFile(ctx context.Context, fileKey string) (*FileResponse, error) {
	endpoint := fmt.Sprintf("%s/files/%s", c.baseURL, url.PathEscape(fileKey))

	var fileResp FileResponse
	if err := c.get(ctx, endpoint, &fileResp); err != nil {
		return nil, err
	}
	return &fileResp, nil
}

// GetFileNodes retrieves only the requested nodes (and their subtrees) of a file.
// IDs that do not exist in the file are returned as nil entries in NodesResponse.Nodes.
func (c *Client) GetFileNodes(ctx context.Context, fileKey string, nodeIDs []string) (*NodesResponse, error) {
	if len(nodeIDs) == 0 {
		return nil, fmt.Errorf("at least one node ID is required")
	}

	query := url.Values{}
	query.Set("ids", strings.Join(nodeIDs, ","))
	endpoint := fmt.Sprintf("%s/files/%s/nodes?%s", c.baseURL, url.PathEscape(fileKey), query.Encode())

	var nodesResp NodesResponse
	if err := c.get(ctx, endpoint, &nodesResp); err != nil {
		return nil, err
	}
	return &nodesResp, nil
}

// get performs a GET request and decodes the JSON body into out.
// Implements automatic retry logic (up to 3 attempts) with linear backoff for handling rate limits
// and temporary failures. The request retries on 429 (rate limit) and 5xx (server error) responses.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		body, retry, err := c.do(ctx, endpoint, attempt)
		if err == nil {
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil
		}

		lastErr = err
		if !retry || attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}

	return lastErr
}

// do executes a single attempt. retry reports whether a failure is worth retrying.
func (c *Client) do(ctx context.Context, endpoint string, attempt int) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Figma-Token", c.accessToken)
	// Disable HTTP/2 to avoid stream errors with large files
	req.Header.Set("Connection", "close")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("attempt %d failed to execute request: %w", attempt, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		retry = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(msg))
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("attempt %d failed to read response body: %w", attempt, err)
	}

	return body, false, nil
}
