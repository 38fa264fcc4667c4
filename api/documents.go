package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrDocumentNotFound is returned when a requested document does not exist
// or is not visible to the caller.
var ErrDocumentNotFound = errors.New("document not found")

// GetDocuments fetches documents by ID. IDs the API omits are reported in
// the response's Omitted list.
func (c *Client) GetDocuments(ctx context.Context, ids ...string) (*DocumentsResponse, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one document ID is required")
	}

	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = url.PathEscape(id)
	}
	path := fmt.Sprintf("/data/doc/%s/%s", url.PathEscape(c.dataset), strings.Join(escaped, ","))
	if c.Perspective != "" {
		path += "?" + url.Values{"perspective": {c.Perspective}}.Encode()
	}

	body, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var resp DocumentsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse documents response: %w", err)
	}

	return &resp, nil
}

// GetDocument fetches a single document by ID.
func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	resp, err := c.GetDocuments(ctx, id)
	if err != nil {
		return nil, err
	}

	for i := range resp.Documents {
		if resp.Documents[i].ID == id {
			return &resp.Documents[i], nil
		}
	}

	for _, o := range resp.Omitted {
		if o.ID == id && o.Reason != "" {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDocumentNotFound, id, o.Reason)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
}
