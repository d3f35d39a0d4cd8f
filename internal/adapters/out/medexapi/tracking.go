package medexapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"medex/internal/core/domain/model/tracking"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
)

var _ ports.TrackingAPI = (*Client)(nil)

// Track fetches the public tracking view. It is unauthenticated. A 404 maps to
// tracking.ErrTokenInvalid.
func (c *Client) Track(ctx context.Context, token string) (tracking.Snapshot, error) {
	if strings.TrimSpace(token) == "" {
		return tracking.Snapshot{}, errs.NewValueIsRequiredError("tracking token")
	}

	var out trackingDTO
	err := c.do(ctx, call{
		op:     "track order",
		method: http.MethodGet,
		path:   "/tracking/" + url.PathEscape(token),
	}, &out)
	if err != nil {
		if ports.StatusCodeOf(err) == http.StatusNotFound {
			return tracking.Snapshot{}, errors.Join(tracking.ErrTokenInvalid, err)
		}
		return tracking.Snapshot{}, err
	}

	snapshot, err := out.toDomain()
	if err != nil {
		return tracking.Snapshot{}, fmt.Errorf("track order: %w", err)
	}
	return snapshot, nil
}
