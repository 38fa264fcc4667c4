package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("https://abc123.api.sanity.io/v2022-03-07/", "production", "token123")

	assert.NotNil(t, client)
	assert.Equal(t, "https://abc123.api.sanity.io/v2022-03-07", client.baseURL)
	assert.Equal(t, "production", client.Dataset())
	assert.Equal(t, "token123", client.token)
	assert.Empty(t, client.Perspective)
}

func TestClient_AuthHeader(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{"bearer token", "mytoken", "Bearer mytoken"},
		{"anonymous", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedAuth string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedAuth = r.Header.Get("Authorization")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			client := NewClient(server.URL, "production", tt.token)
			_, err := client.do(context.Background(), "GET", "/test", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, capturedAuth)
		})
	}
}

func TestClient_Headers(t *testing.T) {
	var capturedHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "production", "mytoken")

	_, err := client.Get(context.Background(), "/test")
	require.NoError(t, err)
	assert.Equal(t, "application/json", capturedHeaders.Get("Accept"))
	assert.Empty(t, capturedHeaders.Get("Content-Type"))

	_, err = client.Post(context.Background(), "/test", map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", capturedHeaders.Get("Content-Type"))
}

func TestClient_ErrorResponse(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		responseBody   string
		expectedErrMsg string
		expectedType   string
	}{
		{
			name:           "query parse error",
			statusCode:     400,
			responseBody:   `{"error":{"description":"unexpected token \"]\"","type":"queryParseError","query":"*[","start":2,"end":3}}`,
			expectedErrMsg: `unexpected token "]"`,
			expectedType:   "queryParseError",
		},
		{
			name:           "401 unauthorized",
			statusCode:     401,
			responseBody:   `{"statusCode":401,"error":"Unauthorized","message":"Session not found"}`,
			expectedErrMsg: "Session not found",
			expectedType:   "Unauthorized",
		},
		{
			name:           "error string only",
			statusCode:     403,
			responseBody:   `{"error":"Forbidden"}`,
			expectedErrMsg: "Forbidden",
			expectedType:   "Forbidden",
		},
		{
			name:           "empty object",
			statusCode:     500,
			responseBody:   `{}`,
			expectedErrMsg: "API error (status 500)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := NewClient(server.URL, "production", "token")
			_, err := client.do(context.Background(), "GET", "/test", nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)

			var apiErr *ErrorResponse
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			assert.Equal(t, tt.expectedType, apiErr.Type)
		})
	}
}

func TestClient_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "production", "token")
	_, err := client.Get(context.Background(), "/test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (status 502)")
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, "production", "token")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.do(ctx, "GET", "/test", nil)
	require.Error(t, err)
}

func TestClient_URLConstruction(t *testing.T) {
	var capturedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/v2022-03-07", "production", "token")

	tests := []struct {
		inputPath    string
		expectedPath string
	}{
		{"/data/query/production", "/v2022-03-07/data/query/production"},
		{"data/query/production", "/v2022-03-07/data/query/production"},
	}

	for _, tt := range tests {
		_, err := client.do(context.Background(), "GET", tt.inputPath, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.expectedPath, capturedPath)
	}
}

func TestErrorResponse_Error(t *testing.T) {
	tests := []struct {
		name string
		err  ErrorResponse
		want string
	}{
		{"description wins", ErrorResponse{Description: "d", Message: "m", Type: "t"}, "d"},
		{"message next", ErrorResponse{Message: "m", Type: "t"}, "m"},
		{"type last", ErrorResponse{Type: "t"}, "t"},
		{"status fallback", ErrorResponse{StatusCode: 418}, "API error (status 418)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorResponse_BadErrorField(t *testing.T) {
	var e ErrorResponse
	err := json.Unmarshal([]byte(`{"error":42}`), &e)
	require.Error(t, err)
}
