// Package content is a client for the external content repository that holds
// all blog posts. The repository speaks a small JSON-over-HTTP contract:
//
//	GET {base}/documents/{type}/{slug}?ref={previewRef}   -> single document or 404
//	GET {base}/documents/{type}?orderings=...&dir=...&after=...&pageSize=1
//	GET {base}/documents/{type}?page=N&pageSize=M          -> paginated listing
//
// The "after" parameter anchors an ordered query on a document ID and
// excludes that document from the results, which is how neighbor lookups
// find the chronologically adjacent post.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound is returned when the repository reports no document for a slug.
var ErrNotFound = errors.New("content: document not found")

// Direction selects which chronological neighbor to look up.
type Direction int

const (
	// Previous finds the post published immediately before the anchor,
	// ordered by first_publication_date ascending.
	Previous Direction = iota
	// Next finds the post published immediately after the anchor,
	// ordered by last_publication_date descending.
	Next
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

const (
	defaultDocType  = "posts"
	defaultPageSize = 100
)

// Client talks to one content repository. It is safe for concurrent use;
// every page build constructs fresh immutable data from its responses and
// nothing is cached locally.
type Client struct {
	baseURL  string
	token    string
	docType  string
	pageSize int
	http     *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the repository access token sent on every request.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithDocumentType overrides the document type queried (default "posts").
func WithDocumentType(t string) ClientOption {
	return func(c *Client) { c.docType = t }
}

// NewClient creates a Client for the repository at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  baseURL,
		docType:  defaultDocType,
		pageSize: defaultPageSize,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse is the envelope for list and neighbor queries.
type searchResponse struct {
	Results    []Document `json:"results"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
}

// GetPost looks up a single document by slug. A non-empty previewRef selects
// an unpublished revision. Returns ErrNotFound when the repository has no
// matching document; other failures propagate unretried.
func (c *Client) GetPost(ctx context.Context, slug, previewRef string) (Document, error) {
	q := url.Values{}
	if previewRef != "" {
		q.Set("ref", previewRef)
	}
	var doc Document
	err := c.get(ctx, fmt.Sprintf("/documents/%s/%s", c.docType, url.PathEscape(slug)), q, &doc)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Neighbor returns the chronologically adjacent post relative to the anchor
// document, or nil when no such neighbor exists. Absence is not an error.
func (c *Client) Neighbor(ctx context.Context, dir Direction, anchorID string) (*NeighborRef, error) {
	q := url.Values{}
	switch dir {
	case Previous:
		q.Set("orderings", "first_publication_date")
		q.Set("dir", "asc")
	case Next:
		q.Set("orderings", "last_publication_date")
		q.Set("dir", "desc")
	}
	q.Set("after", anchorID)
	q.Set("pageSize", "1")

	var resp searchResponse
	if err := c.get(ctx, "/documents/"+c.docType, q, &resp); err != nil {
		return nil, fmt.Errorf("content: %s neighbor of %s: %w", dir, anchorID, err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	first := resp.Results[0]
	return &NeighborRef{UID: first.UID, Title: first.Data.Title}, nil
}

// ListPosts returns every published document, following pagination until the
// repository reports no further pages.
func (c *Client) ListPosts(ctx context.Context) ([]Document, error) {
	var docs []Document
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(c.pageSize))

		var resp searchResponse
		if err := c.get(ctx, "/documents/"+c.docType, q, &resp); err != nil {
			return nil, fmt.Errorf("content: list page %d: %w", page, err)
		}
		docs = append(docs, resp.Results...)
		if resp.TotalPages == 0 || page >= resp.TotalPages {
			return docs, nil
		}
	}
}

// ListSlugs enumerates the slug of every published document. This is the
// path-enumeration half of the static build contract.
func (c *Client) ListSlugs(ctx context.Context) ([]string, error) {
	docs, err := c.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(docs))
	for _, d := range docs {
		slugs = append(slugs, d.UID)
	}
	return slugs, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("content: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("content: request %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("content: decode %s: %w", path, err)
	}
	return nil
}
