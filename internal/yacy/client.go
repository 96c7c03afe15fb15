// Package yacy talks to the XML status endpoints of a crawler peer.
package yacy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/mmcdole/queuewatch/internal/domain"
	"github.com/mmcdole/queuewatch/internal/xmltree"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "queuewatch/1.0"

	// StatusPath serves the single-record status document
	StatusPath = "/xml/status_p.xml"
	// QueuePath serves the indexing queue document
	QueuePath = "/xml/queues_p.xml"
	// DeletePage is the page that drops a queue entry when given deleteEntry
	DeletePage = "IndexCreateIndexingQueue_p.html"
)

// DeleteHref returns the page-relative link that deletes the entry with the
// given hash. The hash is inserted verbatim, as the peer expects it.
func DeleteHref(hash string) string {
	return DeletePage + "?deleteEntry=" + hash
}

// Client implements domain.StatusRepository and domain.QueueRepository
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a peer client for baseURL (e.g. http://localhost:8090)
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// BaseURL returns the normalized peer URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetStatus fetches and parses the status document
func (c *Client) GetStatus(ctx context.Context) (domain.StatusSnapshot, error) {
	doc, err := c.fetchDocument(ctx, StatusPath)
	if err != nil && !errors.Is(err, domain.ErrMalformedDocument) && !errors.Is(err, domain.ErrUnexpectedStatus) {
		return domain.StatusSnapshot{}, err
	}
	// A bad body still produces a (blank) snapshot; the caller decides
	// whether to render it.
	return ParseStatus(doc), err
}

// GetQueue fetches and parses the queue document
func (c *Client) GetQueue(ctx context.Context) ([]domain.QueueEntry, error) {
	doc, err := c.fetchDocument(ctx, QueuePath)
	if err != nil && !errors.Is(err, domain.ErrMalformedDocument) && !errors.Is(err, domain.ErrUnexpectedStatus) {
		return nil, err
	}
	return ParseQueue(doc), err
}

// DeleteEntry requests deletion of a queue entry. The peer answers with an
// HTML page which is discarded.
func (c *Client) DeleteEntry(ctx context.Context, hash string) error {
	if hash == "" {
		return domain.ErrEmptyHash
	}
	_, err := c.doRequest(ctx, "/"+DeleteHref(hash))
	return err
}

// fetchDocument GETs path and parses the body. For a non-2xx answer or a
// malformed body it returns a nil document along with the error.
func (c *Client) fetchDocument(ctx context.Context, path string) (*etree.Document, error) {
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	doc, err := xmltree.Parse(body)
	if err != nil {
		c.logger.Warn("malformed peer document", "path", path, "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%s: %w: %v", path, domain.ErrMalformedDocument, err)
	}
	return doc, nil
}

// doRequest performs a GET against the peer and returns the body
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("peer request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("peer request failed", "url", reqURL, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrServerOffline, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("peer request error", "status", resp.StatusCode, "url", reqURL)
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	return body, nil
}
