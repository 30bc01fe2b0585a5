// Package prayertimes talks to the Aladhan API for daily prayer schedules
// and to Nominatim for reverse geocoding. One attempt per call, bounded by
// the client timeout; any failure is reported as ErrLookupFailed with no
// partial result.
package prayertimes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"telegram-prayer-tracker/internal/models"
)

// ErrLookupFailed covers every adapter failure: network, HTTP status,
// malformed body. Callers degrade to "unavailable", they never branch on
// the cause.
var ErrLookupFailed = errors.New("lookup failed")

// aladhan timing keys -> canonical prayer names.
var timingNames = map[string]string{
	"Fajr":    "Subuh",
	"Dhuhr":   "Dzuhur",
	"Asr":     "Ashar",
	"Maghrib": "Maghrib",
	"Isha":    "Isya",
}

type Client struct {
	http         *http.Client
	aladhanURL   string
	nominatimURL string
	method       int
	log          *zap.Logger
}

func New(method int, log *zap.Logger) *Client {
	return &Client{
		http:         &http.Client{Timeout: 10 * time.Second},
		aladhanURL:   "https://api.aladhan.com",
		nominatimURL: "https://nominatim.openstreetmap.org",
		method:       method,
		log:          log,
	}
}

// FetchTimes returns today's five prayer times as "HH:MM" strings keyed by
// canonical name. With a location it queries by coordinates, otherwise by
// the given city/country.
func (c *Client) FetchTimes(ctx context.Context, date time.Time, loc *models.Location, city, country string) (map[string]string, error) {
	day := date.Format("02-01-2006")
	var u string
	if loc != nil {
		u = fmt.Sprintf("%s/v1/timings/%s?latitude=%f&longitude=%f&method=%d",
			c.aladhanURL, day, loc.Latitude, loc.Longitude, c.method)
	} else {
		u = fmt.Sprintf("%s/v1/timingsByCity/%s?city=%s&country=%s&method=%d",
			c.aladhanURL, day, url.QueryEscape(city), url.QueryEscape(country), c.method)
	}

	var body struct {
		Data struct {
			Timings map[string]string `json:"timings"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	times := make(map[string]string, len(timingNames))
	for key, name := range timingNames {
		t, ok := body.Data.Timings[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing timing %s", ErrLookupFailed, key)
		}
		times[name] = t
	}
	return times, nil
}

// ReverseGeocode turns coordinates into a short place label.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	u := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%f&lon=%f", c.nominatimURL, lat, lon)

	var body struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			County  string `json:"county"`
			State   string `json:"state"`
		} `json:"address"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return "", err
	}

	for _, label := range []string{body.Address.City, body.Address.Town, body.Address.Village, body.Address.County, body.Address.State} {
		if label != "" {
			return label, nil
		}
	}
	if body.DisplayName != "" {
		return body.DisplayName, nil
	}
	return "", fmt.Errorf("%w: empty geocode result", ErrLookupFailed)
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	// Nominatim rejects requests without an identifying agent.
	req.Header.Set("User-Agent", "telegram-prayer-tracker/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	return nil
}
