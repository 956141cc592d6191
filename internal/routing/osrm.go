package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
)

// Client fetches walking routes from an OSRM-compatible routing server.
// The engine only consumes routes; it never computes them itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a routing client against the given OSRM base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// GetWalkingRoute requests a two-point walking route. Failures are returned
// as errors so callers can distinguish "no route" from a degraded display.
func (c *Client) GetWalkingRoute(ctx context.Context, from, to models.GeoPosition) (*models.WalkingRoute, error) {
	// OSRM expects lon,lat ordering
	url := fmt.Sprintf("%s/route/v1/foot/%f,%f;%f,%f?overview=full&geometries=polyline",
		c.baseURL, from.Longitude, from.Latitude, to.Longitude, to.Latitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build route request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing server returned status %d", resp.StatusCode)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode route response: %w", err)
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, fmt.Errorf("no walking route found (code=%s)", parsed.Code)
	}

	route := parsed.Routes[0]
	return &models.WalkingRoute{
		Polyline:        route.Geometry,
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
	}, nil
}
