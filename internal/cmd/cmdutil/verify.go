package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/open-cli-collective/sanity-cli/api"
)

const verifyTimeout = 10 * time.Second

// VerifyConnection runs a trivial query to check that the project, dataset
// and token are usable. It returns the server-side query time in ms.
func VerifyConnection(ctx context.Context, client *api.Client) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	resp, err := client.Query(ctx, "count(*[_type == $type])", map[string]interface{}{"type": "sanity.imageAsset"})
	if err == nil {
		return resp.MS, nil
	}

	var apiErr *api.ErrorResponse
	if !errors.As(err, &apiErr) {
		return 0, err
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return 0, fmt.Errorf("authentication failed - check your API token: %w", err)
	case http.StatusForbidden:
		return 0, fmt.Errorf("access denied - check the token's permissions: %w", err)
	case http.StatusNotFound:
		return 0, fmt.Errorf("project or dataset not found: %w", err)
	}
	return 0, fmt.Errorf("unexpected status code: %d: %w", apiErr.StatusCode, err)
}
