// Package geocode resolves UK postcodes to coordinates via postcodes.io.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipehub/internal/geo"
)

var ErrPostcodeNotFound = errors.New("could not find location for the provided postcode")

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	Status int `json:"status"`
	Result *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"result"`
}

// Lookup returns the coordinates of postcode. postcodes.io answers an
// unknown postcode with 404 and no result; that maps to
// ErrPostcodeNotFound, as does a result without coordinates.
func (c *Client) Lookup(ctx context.Context, postcode string) (geo.Point, error) {
	u := c.BaseURL + "/postcodes/" + url.PathEscape(strings.TrimSpace(postcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return geo.Point{}, fmt.Errorf("postcodes: build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return geo.Point{}, fmt.Errorf("postcodes: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return geo.Point{}, fmt.Errorf("postcodes: read body: %w", err)
	}

	var out lookupResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return geo.Point{}, fmt.Errorf("postcodes: status %d: decode: %w", resp.StatusCode, err)
	}
	if out.Result == nil || out.Result.Latitude == nil || out.Result.Longitude == nil {
		return geo.Point{}, ErrPostcodeNotFound
	}
	return geo.Point{Lat: *out.Result.Latitude, Lon: *out.Result.Longitude}, nil
}
