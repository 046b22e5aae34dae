// Package storage is a thin client for the hosted object store the
// web client uploads attachments to. The store exposes a plain HTTP
// surface: GET {base}/object/{bucket}/{path} with a service-key bearer
// header returns the raw object bytes.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrObjectNotFound is returned for any download the store refuses;
// callers surface it as 404 without leaking store internals.
var ErrObjectNotFound = errors.New("object not found")

type Client struct {
	baseURL    *url.URL
	serviceKey string
	httpClient *http.Client
}

// NewClient builds a storage client. baseURL points at the store's
// object API root, e.g. https://abc.storage.example.com/storage/v1.
func NewClient(baseURL, serviceKey string) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid storage base URL: %w", err)
	}
	return &Client{
		baseURL:    parsed,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Download fetches one object. The caller owns the returned body and
// must close it.
func (c *Client) Download(ctx context.Context, bucket, objectPath string) (io.ReadCloser, int64, error) {
	u := *c.baseURL
	u.Path = fmt.Sprintf("%s/object/%s/%s", c.baseURL.Path, url.PathEscape(bucket), objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("%w: store returned %d for %s/%s",
			ErrObjectNotFound, resp.StatusCode, bucket, objectPath)
	}
	return resp.Body, resp.ContentLength, nil
}
