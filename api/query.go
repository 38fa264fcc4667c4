package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// maxGetURLLength is the longest query URL sent as GET; longer queries are POSTed.
const maxGetURLLength = 11264

type queryRequest struct {
	Query  string                 `json:"query"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// Query runs a GROQ query against the client's dataset. Each param is sent
// JSON-encoded as $name.
func (c *Client) Query(ctx context.Context, groq string, params map[string]interface{}) (*QueryResponse, error) {
	compact := CompactQuery(groq)

	values := url.Values{}
	if compact != "" {
		values.Set("query", compact)
	}
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode param %q: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}
	if c.Perspective != "" {
		values.Set("perspective", c.Perspective)
	}

	path := "/data/query/" + url.PathEscape(c.dataset)
	full := path
	if len(values) > 0 {
		full += "?" + values.Encode()
	}

	var (
		body []byte
		err  error
	)
	if len(c.baseURL)+len(full) > maxGetURLLength {
		post := path
		if c.Perspective != "" {
			post += "?" + url.Values{"perspective": {c.Perspective}}.Encode()
		}
		body, err = c.Post(ctx, post, queryRequest{Query: compact, Params: params})
	} else {
		body, err = c.Get(ctx, full)
	}
	if err != nil {
		return nil, err
	}

	var resp QueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}

	return &resp, nil
}

// QueryInto runs a query and decodes its result into T.
func QueryInto[T any](ctx context.Context, c *Client, groq string, params map[string]interface{}) (*QueryResult[T], error) {
	resp, err := c.Query(ctx, groq, params)
	if err != nil {
		return nil, err
	}

	out := &QueryResult[T]{
		Query:    resp.Query,
		SyncTags: resp.SyncTags,
		MS:       resp.MS,
	}
	if len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, &out.Result); err != nil {
			return nil, fmt.Errorf("failed to decode query result: %w", err)
		}
	}

	return out, nil
}
