package prayertimes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"telegram-prayer-tracker/internal/models"
)

const aladhanBody = `{"code":200,"status":"OK","data":{"timings":{
	"Fajr":"04:36","Sunrise":"05:52","Dhuhr":"11:55","Asr":"15:16",
	"Sunset":"17:58","Maghrib":"17:58","Isha":"19:09","Imsak":"04:26","Midnight":"23:55"}}}`

func testClient(srvURL string) *Client {
	return &Client{
		http:         &http.Client{Timeout: time.Second},
		aladhanURL:   srvURL,
		nominatimURL: srvURL,
		method:       11,
		log:          zap.NewNop(),
	}
}

func TestFetchTimesByCity(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		_, _ = w.Write([]byte(aladhanBody))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	date := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	times, err := c.FetchTimes(context.Background(), date, nil, "Bekasi", "ID")
	require.NoError(t, err)

	assert.Contains(t, gotPath, "/v1/timingsByCity/28-08-2026")
	assert.Contains(t, gotPath, "city=Bekasi")
	assert.Equal(t, map[string]string{
		"Subuh": "04:36", "Dzuhur": "11:55", "Ashar": "15:16", "Maghrib": "17:58", "Isya": "19:09",
	}, times)
}

func TestFetchTimesByCoordinates(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		_, _ = w.Write([]byte(aladhanBody))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	loc := &models.Location{Latitude: -6.23, Longitude: 107.0}
	date := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	_, err := c.FetchTimes(context.Background(), date, loc, "Bekasi", "ID")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotPath, "/v1/timings/28-08-2026"), "path %s", gotPath)
	assert.Contains(t, gotPath, "latitude=")
}

func TestFetchTimesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchTimes(context.Background(), time.Now(), nil, "Bekasi", "ID")
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestFetchTimesMissingTiming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"timings":{"Fajr":"04:36"}}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchTimes(context.Background(), time.Now(), nil, "Bekasi", "ID")
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"display_name":"Bekasi, Jawa Barat, Indonesia","address":{"city":"Bekasi","state":"Jawa Barat"}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	label, err := c.ReverseGeocode(context.Background(), -6.23, 107.0)
	require.NoError(t, err)
	assert.Equal(t, "Bekasi", label)
}

func TestReverseGeocodeFallsBackToDisplayName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"display_name":"Somewhere remote","address":{}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	label, err := c.ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Somewhere remote", label)
}

func TestReverseGeocodeEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ReverseGeocode(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrLookupFailed)
}
