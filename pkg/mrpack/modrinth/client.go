// Package modrinth implements a client for the two bulk lookup
// endpoints of the Modrinth v2 API: version lookup by file hash and
// project lookup by id. Both endpoints are idempotent reads; the
// client performs no mutation and no retries.
package modrinth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jamesainslie/mrpack/pkg/mrpack/logging"
)

const (
	// DefaultBaseURL is the production Modrinth API endpoint.
	DefaultBaseURL = "https://api.modrinth.com/v2"

	// defaultTimeout bounds each registry request.
	defaultTimeout = 10 * time.Second

	// maxResponseBytes is the upper bound on response size (10 MB).
	// Prevents unbounded memory consumption from malformed responses.
	maxResponseBytes = 10 << 20

	// hashAlgorithm is the digest the registry is queried by.
	hashAlgorithm = "sha512"
)

// ErrStatus is returned when the registry answers with a non-2xx
// status code.
var ErrStatus = errors.New("unexpected registry status")

// Version is a version record from the version_files endpoint: the
// release that owns a looked-up file hash.
type Version struct {
	ProjectID     string        `json:"project_id"`
	VersionNumber string        `json:"version_number"`
	Files         []VersionFile `json:"files"`
}

// VersionFile is one downloadable file of a version record.
type VersionFile struct {
	Hashes FileHashes `json:"hashes"`
}

// FileHashes carries the digests the registry publishes for a file.
type FileHashes struct {
	SHA512 string `json:"sha512"`
	SHA1   string `json:"sha1,omitempty"`
}

// Project is a project record from the projects endpoint. Fields the
// registry omits decode to their zero values.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	ClientSide   string   `json:"client_side"`
	ServerSide   string   `json:"server_side"`
	License      *License `json:"license"`
	SourceURL    string   `json:"source_url"`
	IssuesURL    string   `json:"issues_url"`
	GameVersions []string `json:"game_versions"`
}

// License is the license block of a project record.
type License struct {
	ID string `json:"id"`
}

// versionFilesRequest is the JSON body of a version_files lookup.
type versionFilesRequest struct {
	Hashes    []string `json:"hashes"`
	Algorithm string   `json:"algorithm"`
}

// Client queries the Modrinth API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	log        *logging.Logger
}

// Option configures a Client during construction.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy
// configurations.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API base URL, primarily for test servers.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a Client with sensible defaults: the production API,
// a 10 second timeout, and a generic user agent.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  "mrpack/dev",
		log:        logging.Get("modrinth"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VersionFiles looks up the version records owning a batch of sha512
// hashes in a single request. Hashes the registry does not recognize
// are absent from the returned map.
func (c *Client) VersionFiles(ctx context.Context, hashes []string) (map[string]Version, error) {
	if hashes == nil {
		hashes = []string{}
	}
	body, err := json.Marshal(versionFilesRequest{Hashes: hashes, Algorithm: hashAlgorithm})
	if err != nil {
		return nil, fmt.Errorf("encoding version_files request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/version_files", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building version_files request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var versions map[string]Version
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&versions); err != nil {
		return nil, fmt.Errorf("decoding version_files response: %w", err)
	}
	return versions, nil
}

// Projects fetches the project records for a batch of ids in a single
// request. The ids travel as a JSON string array in the query.
func (c *Client) Projects(ctx context.Context, ids []string) ([]Project, error) {
	if ids == nil {
		ids = []string{}
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encoding project ids: %w", err)
	}

	reqURL := c.baseURL + "/projects?ids=" + url.QueryEscape(string(encoded))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building projects request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var projects []Project
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&projects); err != nil {
		return nil, fmt.Errorf("decoding projects response: %w", err)
	}
	return projects, nil
}

// do sends the request with common headers and a per-request id, and
// rejects non-2xx responses.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)

	c.log.Debug("registry request",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		status := resp.Status
		resp.Body.Close()
		c.log.Debug("registry request failed",
			"request_id", requestID,
			"status", status)
		return nil, fmt.Errorf("%w: %s %s returned %s", ErrStatus, req.Method, req.URL.Path, status)
	}

	return resp, nil
}
