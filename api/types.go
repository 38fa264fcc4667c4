// Package api provides the Sanity content API client.
package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/open-cli-collective/sanity-cli/pkg/portabletext"
)

// QueryResponse is the envelope returned by the query endpoint.
type QueryResponse struct {
	Query    string          `json:"query"`
	Result   json.RawMessage `json:"result"`
	SyncTags []string        `json:"syncTags,omitempty"`
	MS       int             `json:"ms"`
}

// QueryResult is a QueryResponse with its result decoded into T.
type QueryResult[T any] struct {
	Query    string
	Result   T
	SyncTags []string
	MS       int
}

// Document is a content document. System attributes are typed; every other
// attribute stays raw in Fields.
type Document struct {
	ID        string
	Type      string
	Rev       string
	CreatedAt Time
	UpdatedAt Time
	Fields    map[string]json.RawMessage
}

// UnmarshalJSON splits system attributes from content fields.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	system := []struct {
		key string
		dst interface{}
	}{
		{"_id", &d.ID},
		{"_type", &d.Type},
		{"_rev", &d.Rev},
		{"_createdAt", &d.CreatedAt},
		{"_updatedAt", &d.UpdatedAt},
	}
	for _, s := range system {
		v, ok := raw[s.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, s.dst); err != nil {
			return fmt.Errorf("failed to parse %s: %w", s.key, err)
		}
		delete(raw, s.key)
	}

	d.Fields = raw
	return nil
}

// MarshalJSON writes the document back in its wire shape.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Fields)+5)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["_id"] = d.ID
	out["_type"] = d.Type
	if d.Rev != "" {
		out["_rev"] = d.Rev
	}
	if !d.CreatedAt.IsZero() {
		out["_createdAt"] = d.CreatedAt
	}
	if !d.UpdatedAt.IsZero() {
		out["_updatedAt"] = d.UpdatedAt
	}
	return json.Marshal(out)
}

// Field returns the raw value of a content field.
func (d *Document) Field(name string) (json.RawMessage, bool) {
	v, ok := d.Fields[name]
	return v, ok
}

// PortableText decodes a Portable Text field of the document.
func (d *Document) PortableText(field string) (portabletext.Document, error) {
	raw, ok := d.Field(field)
	if !ok {
		return nil, fmt.Errorf("document %s has no field %q", d.ID, field)
	}

	var doc portabletext.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode field %q: %w", field, err)
	}
	return doc, nil
}

// DocumentsResponse is returned by the doc endpoint.
type DocumentsResponse struct {
	Documents []Document        `json:"documents"`
	Omitted   []OmittedDocument `json:"omitted,omitempty"`
}

// OmittedDocument names a requested document that was not returned.
type OmittedDocument struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Time is a wrapper around time.Time for custom JSON parsing.
type Time struct {
	time.Time
}

// UnmarshalJSON parses ISO 8601 timestamps.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)

	if s == "null" || s == `""` || s == "" {
		return nil
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}

	t.Time = parsed
	return nil
}

// MarshalJSON formats time in ISO 8601 format.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// ErrorResponse represents an API error. The API uses two body shapes:
// {"error":{"type":..,"description":..}} for query errors and
// {"error":"Unauthorized","message":".."} for transport level errors.
type ErrorResponse struct {
	StatusCode  int
	Type        string
	Message     string
	Description string
}

// UnmarshalJSON accepts both error body shapes.
func (e *ErrorResponse) UnmarshalJSON(data []byte) error {
	var wire struct {
		StatusCode int             `json:"statusCode"`
		Error      json.RawMessage `json:"error"`
		Message    string          `json:"message"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	e.StatusCode = wire.StatusCode
	e.Message = wire.Message

	if len(wire.Error) == 0 {
		return nil
	}

	var detail struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(wire.Error, &detail); err == nil {
		e.Type = detail.Type
		e.Description = detail.Description
		return nil
	}

	var s string
	if err := json.Unmarshal(wire.Error, &s); err != nil {
		return fmt.Errorf("unexpected error field: %w", err)
	}
	e.Type = s
	return nil
}

func (e *ErrorResponse) Error() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Message != "":
		return e.Message
	case e.Type != "":
		return e.Type
	default:
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}
}
