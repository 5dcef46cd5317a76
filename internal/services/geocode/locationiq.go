package geocode

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to the LocationIQ REST API. All lookups are restricted to
// one country.
type Client struct {
	HTTP        *http.Client
	Key         string
	CountryCode string
	BaseURL     string
}

func NewClient(key, countryCode string) *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: 10 * time.Second},
		Key:         key,
		CountryCode: countryCode,
		BaseURL:     "https://api.locationiq.com/v1",
	}
}

type Result struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

// raw API rows carry lat/lon as strings
type apiRow struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (r apiRow) toResult() (Result, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("bad lat %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("bad lon %q: %w", r.Lon, err)
	}
	return Result{Lat: lat, Lon: lon, DisplayName: r.DisplayName}, nil
}

// Search forward-geocodes an address. Returns nil when nothing matched.
func (c *Client) Search(q string) (*Result, error) {
	params := url.Values{}
	params.Set("key", c.Key)
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", c.CountryCode)

	rows, err := c.fetchRows(c.BaseURL + "/search.php?" + params.Encode())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	res, err := rows[0].toResult()
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Autocomplete returns ranked candidates for a partial address.
func (c *Client) Autocomplete(q string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("key", c.Key)
	params.Set("q", q)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("countrycodes", c.CountryCode)

	rows, err := c.fetchRows(c.BaseURL + "/autocomplete.php?" + params.Encode())
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(rows))
	for _, row := range rows {
		res, err := row.toResult()
		if err != nil {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

// Reverse resolves coordinates to a display name.
func (c *Client) Reverse(lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("key", c.Key)
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")

	resp, err := c.HTTP.Get(c.BaseURL + "/reverse.php?" + params.Encode())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("locationiq: status %d", resp.StatusCode)
	}

	var row apiRow
	if err := json.Unmarshal(body, &row); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return row.DisplayName, nil
}

func (c *Client) fetchRows(fullURL string) ([]apiRow, error) {
	resp, err := c.HTTP.Get(fullURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("locationiq: status %d", resp.StatusCode)
	}

	var rows []apiRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return rows, nil
}
