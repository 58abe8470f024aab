package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MiguelCorado/haxkthon-air-quality/internal/domain"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/observability"
)

// Client implements domain.Geocoder using the OpenWeatherMap Geocoding API.
// It talks to the same provider the collector fetches pollution data from,
// so one API key covers both services.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap geocoding client.
func NewClient(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.openweathermap.org/geo/1.0",
		metrics: metrics,
		logger:  logger,
	}
}

// ForwardGeocode converts a place name and optional ISO country code to
// coordinates.
func (c *Client) ForwardGeocode(ctx context.Context, name, country string) (domain.GeocodingResult, error) {
	query := name
	if country != "" {
		query = fmt.Sprintf("%s,%s", name, country)
	}

	params := url.Values{
		"q":     {query},
		"limit": {"1"},
		"appid": {c.apiKey},
	}
	return c.doRequest(ctx, c.baseURL+"/direct?"+params.Encode(), "forward")
}

// ReverseGeocode converts coordinates to place details.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	params := url.Values{
		"lat":   {fmt.Sprintf("%.6f", lat)},
		"lon":   {fmt.Sprintf("%.6f", lon)},
		"limit": {"1"},
		"appid": {c.apiKey},
	}
	return c.doRequest(ctx, c.baseURL+"/reverse?"+params.Encode(), "reverse")
}

func (c *Client) doRequest(ctx context.Context, fullURL, method string) (domain.GeocodingResult, error) {
	start := time.Now()
	defer func() {
		c.metrics.GeocodeAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("%s geocode request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("openweathermap API error: status %d: %s", resp.StatusCode, body)
	}

	var places []geoPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("decode response: %w", err)
	}

	if len(places) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues(method, "empty").Inc()
		return domain.GeocodingResult{}, nil
	}

	c.metrics.GeocodeRequests.WithLabelValues(method, "success").Inc()
	p := places[0]
	return domain.GeocodingResult{
		Lat:              p.Lat,
		Lon:              p.Lon,
		PlaceName:        p.Name,
		FormattedAddress: formatAddress(p),
		// The API returns no relevance score; any match counts as full confidence.
		Confidence: 1.0,
	}, nil
}

// formatAddress joins the non-empty place components, e.g. "Aracaju, Sergipe, BR".
func formatAddress(p geoPlace) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Name, p.State, p.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// OpenWeatherMap Geocoding API response element. Both /direct and /reverse
// return a JSON array of these.
type geoPlace struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}
