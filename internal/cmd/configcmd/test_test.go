package configcmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/sanity-cli/api"
	"github.com/open-cli-collective/sanity-cli/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ProjectID: "abc123",
		Dataset:   "production",
		Token:     "test-token",
	}
}

func TestRunTest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"result": 0, "ms": 4}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	client := api.NewClient(server.URL, "production", "test-token")
	err := runTest(testConfig(), client, true, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Testing connection to https://abc123.api.sanity.io/v2022-03-07 (dataset production)")
	assert.Contains(t, buf.String(), "✓ Dataset reachable")
	assert.Contains(t, buf.String(), "✓ Token accepted")
	assert.Contains(t, buf.String(), "4ms")
}

func TestRunTest_Failures(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		errContain string
	}{
		{"auth failure", http.StatusUnauthorized, `{"error":"Unauthorized","message":"Session not found"}`, "authentication failed"},
		{"forbidden", http.StatusForbidden, `{}`, "access denied"},
		{"server error", http.StatusInternalServerError, `{}`, "unexpected status code: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			var buf bytes.Buffer
			client := api.NewClient(server.URL, "production", "token")
			err := runTest(testConfig(), client, true, &buf)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)
			assert.Contains(t, buf.String(), "sny init")
		})
	}
}
