// Package weather fetches forecast observations and turns them into
// seating recommendations.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client is a minimal OpenWeather 5-day/3-hour forecast client. The API is
// unspecified about latency, so requests are bounded at 5 seconds; callers
// treat any failure as "no observation available".
type Client struct {
	hc     *http.Client
	apiKey string
	base   string
}

func NewClient(apiKey string) *Client {
	return &Client{
		hc:     &http.Client{Timeout: 5 * time.Second},
		apiKey: apiKey,
		base:   defaultBaseURL,
	}
}

type forecastResponse struct {
	List []struct {
		Dt      int64   `json:"dt"`
		Pop     float64 `json:"pop"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast returns the forecast entry closest to at for the given location.
// location is either "lat,lon" or a free-form city name.
func (c *Client) Forecast(ctx context.Context, at time.Time, location string) (*Observation, error) {
	params := map[string]string{"appid": c.apiKey}
	if lat, lon, ok := splitCoords(location); ok {
		params["lat"] = lat
		params["lon"] = lon
	} else {
		params["q"] = location
	}

	status, body, err := c.do(ctx, c.base+"/forecast", params)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("forecast fetch failed (status=%d)", status)
	}

	var res forecastResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}
	if len(res.List) == 0 {
		return nil, errors.New("no forecast entries")
	}

	best := res.List[0]
	bestDiff := absDuration(time.Unix(best.Dt, 0).Sub(at))
	for _, e := range res.List[1:] {
		if d := absDuration(time.Unix(e.Dt, 0).Sub(at)); d < bestDiff {
			best, bestDiff = e, d
		}
	}

	obs := &Observation{PrecipProb: best.Pop}
	if len(best.Weather) > 0 {
		obs.Condition = best.Weather[0].Description
		if obs.Condition == "" {
			obs.Condition = best.Weather[0].Main
		}
	}
	return obs, nil
}

func (c *Client) do(ctx context.Context, rawURL string, query map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, err
	}
	q := req.URL.Query()
	for k, v := range query {
		q.Add(k, v)
	}
	req.URL.RawQuery = q.Encode()

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}

func splitCoords(s string) (lat, lon string, ok bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	lat = strings.TrimSpace(parts[0])
	lon = strings.TrimSpace(parts[1])
	if _, err := strconv.ParseFloat(lat, 64); err != nil {
		return "", "", false
	}
	if _, err := strconv.ParseFloat(lon, 64); err != nil {
		return "", "", false
	}
	return lat, lon, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
