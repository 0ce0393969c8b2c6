// Package gapclient fetches ensemble weather forecasts from the TomorrowNow
// GAP measurement API and aggregates them into daily summaries.
package gapclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const defaultBaseURL = "https://tngap.sta.do.kartoza.com/api/v1/measurement/"

// GAP data products.
const (
	ProductHistorical       = "cbam_historical_analysis"
	ProductSeasonalForecast = "salient_seasonal_forecast"
)

var (
	// forecastAttributes is the fixed attribute list for plain forecasts.
	forecastAttributes = []string{
		AttrMaxTemperature,
		AttrMinTemperature,
		AttrPrecipitation,
		AttrRelativeHumidity,
		AttrWindSpeed,
	}

	// farmingAttributes extends the forecast list with anomaly counterparts
	// and solar radiation, used by the advisory tools.
	farmingAttributes = []string{
		AttrMaxTemperature,
		AttrMinTemperature,
		AttrPrecipitation,
		AttrRelativeHumidity,
		AttrWindSpeed,
		AttrTemperatureAnom,
		AttrPrecipitationAnom,
		AttrSolarRadiation,
	}
)

// Client calls the GAP measurement API. It is only constructed with a
// credential; a missing credential fails New rather than every call.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	// now is the clock used to compute fetch windows; tests override it.
	now func() time.Time
}

// New creates a Client from the GAP_API_KEY environment variable.
// GAP_API_URL overrides the default endpoint.
// Returns ErrNoCredential when no key is configured.
func New() (*Client, error) {
	apikey := os.Getenv("GAP_API_KEY")
	if apikey == "" {
		return nil, errors.WithStack(ErrNoCredential)
	}

	c := &Client{
		apiKey:     apikey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	if u := os.Getenv("GAP_API_URL"); u != "" {
		c.baseURL = u
	}
	return c, nil
}

func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// FetchForecast fetches the ensemble forecast for the next windowDays days
// and aggregates it into one record per calendar day.
func (c *Client) FetchForecast(ctx context.Context, coord Coordinate, windowDays int) (*ForecastSeries, error) {
	today := c.now()
	return c.fetch(ctx, coord, today, today.AddDate(0, 0, windowDays), ProductSeasonalForecast, forecastAttributes)
}

// FetchFarmingForecast is the extended forecast used by the advisory tools:
// the plain attribute list plus anomalies and solar radiation.
func (c *Client) FetchFarmingForecast(ctx context.Context, coord Coordinate, windowDays int) (*ForecastSeries, error) {
	today := c.now()
	return c.fetch(ctx, coord, today, today.AddDate(0, 0, windowDays), ProductSeasonalForecast, farmingAttributes)
}

// FetchHistorical fetches single-value historical analysis for the past
// windowDays days. Historical samples carry one value per attribute, so
// aggregation reduces to a per-date mean of scalars.
func (c *Client) FetchHistorical(ctx context.Context, coord Coordinate, windowDays int) (*ForecastSeries, error) {
	today := c.now()
	return c.fetch(ctx, coord, today.AddDate(0, 0, -windowDays), today, ProductHistorical, forecastAttributes)
}

func (c *Client) fetch(ctx context.Context, coord Coordinate, start, end time.Time, product string, attributes []string) (*ForecastSeries, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base URL")
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	q.Set("product", product)
	q.Set("attributes", strings.Join(attributes, ","))
	q.Set("output_type", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call weather API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.WithStack(&UpstreamError{Status: resp.StatusCode, Body: string(body)})
	}

	var mr measurementResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return nil, errors.WithStack(&UpstreamError{Status: resp.StatusCode, Body: "malformed response: " + err.Error()})
	}

	// Zero result groups means the API has no data for this location.
	// That is a valid empty series, not a failure.
	if len(mr.Results) == 0 {
		return &ForecastSeries{}, nil
	}

	res := mr.Results[0]
	loc := coord
	if len(res.Geometry.Coordinates) == 2 {
		loc = Coordinate{
			Latitude:  res.Geometry.Coordinates[1],
			Longitude: res.Geometry.Coordinates[0],
		}
	}

	return Aggregate(res.Data, loc), nil
}
