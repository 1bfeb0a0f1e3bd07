package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"agrismart/internal/types"
)

// nominatimZoom selects town-level detail in reverse geocoding responses.
const nominatimZoom = 10

// Geocoder resolves a coordinate to a human-readable place name.
//
// Geocoding is cosmetic: it only overrides the display name of a result.
// Callers must treat any error as a degradation and fall back to the
// caller-supplied location name, never as a failure of the overall fetch.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// nominatimAddress is the address component block of a reverse geocoding
// response. All fields are optional; they are consulted in declaration order.
type nominatimAddress struct {
	Village       string `json:"village"`
	Town          string `json:"town"`
	City          string `json:"city"`
	Municipality  string `json:"municipality"`
	County        string `json:"county"`
	StateDistrict string `json:"state_district"`
}

type nominatimResponse struct {
	Address nominatimAddress `json:"address"`
}

// nominatimClient implements Geocoder against a Nominatim-compatible endpoint.
type nominatimClient struct {
	base    *BaseClient
	baseURL string
	logger  *slog.Logger
}

// NewNominatimClient creates a Geocoder for the given reverse-geocoding endpoint.
func NewNominatimClient(base *BaseClient, baseURL string, logger *slog.Logger) Geocoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &nominatimClient{
		base:    base,
		baseURL: baseURL,
		logger:  logger,
	}
}

// ReverseGeocode performs a single reverse geocoding call. It returns an
// error on network failure, non-2xx status, or when no usable address
// component is present.
func (c *nominatimClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("format", "json")
	q.Set("zoom", strconv.Itoa(nominatimZoom))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building geocode request: %w", err)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return "", types.NewAppError(
			types.ErrCodeUpstreamGeocode,
			"geocoding service unavailable",
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", types.NewAppErrorWithDetails(
			types.ErrCodeUpstreamGeocode,
			"geocoding service unavailable",
			nil,
			map[string]any{"status": resp.StatusCode},
		)
	}

	var payload nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding geocode response: %w", err)
	}

	if name := payload.Address.bestName(); name != "" {
		return name, nil
	}

	return "", fmt.Errorf("geocode response contains no usable address component")
}

// bestName returns the most specific non-empty address component, consulting
// village, town, city, municipality, county, and state_district in that order.
func (a nominatimAddress) bestName() string {
	for _, candidate := range []string{
		a.Village,
		a.Town,
		a.City,
		a.Municipality,
		a.County,
		a.StateDistrict,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
