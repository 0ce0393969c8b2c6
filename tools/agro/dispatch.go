// Package agro exposes the agricultural advisory tools: weather forecast,
// farming advice, planting advice and irrigation advice. Each tool resolves
// and validates its input, fetches a forecast through the GAP client, runs
// the advisory rule engine and returns farmer-facing text.
//
// All failures are converted to conversational text at this boundary;
// technical detail is logged server-side only.
package agro

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"

	"github.com/agrisense/agroadvisor/advisor"
	"github.com/agrisense/agroadvisor/gapclient"
	"github.com/agrisense/agroadvisor/tools"
	"github.com/agrisense/agroadvisor/utils"
)

var logger = xlog.NewPackageLogger("github.com/agrisense/agroadvisor", "agro")

var validate = validator.New()

// ForecastAPI is the part of the GAP client the tools depend on.
type ForecastAPI interface {
	FetchForecast(ctx context.Context, coord gapclient.Coordinate, windowDays int) (*gapclient.ForecastSeries, error)
	FetchFarmingForecast(ctx context.Context, coord gapclient.Coordinate, windowDays int) (*gapclient.ForecastSeries, error)
}

// DefaultLocationFunc supplies fallback coordinates when the caller sent
// none, e.g. from transport-level defaults. It is consulted once per
// invocation.
type DefaultLocationFunc func(ctx context.Context) (gapclient.Coordinate, bool)

// EnvDefaultLocation reads fallback coordinates from DEFAULT_LATITUDE and
// DEFAULT_LONGITUDE on each invocation.
func EnvDefaultLocation() DefaultLocationFunc {
	return func(ctx context.Context) (gapclient.Coordinate, bool) {
		lat, err1 := strconv.ParseFloat(os.Getenv("DEFAULT_LATITUDE"), 64)
		lon, err2 := strconv.ParseFloat(os.Getenv("DEFAULT_LONGITUDE"), 64)
		if err1 != nil || err2 != nil {
			return gapclient.Coordinate{}, false
		}
		return gapclient.Coordinate{Latitude: lat, Longitude: lon}, true
	}
}

// Result is the tool-facing outcome: text for the caller plus an error
// flag. Raw coordinates, status codes and internal errors never appear in
// Text.
type Result struct {
	Text    string `json:"text"`
	IsError bool   `json:"isError,omitempty"`
}

func (r *Result) String() string {
	return r.Text
}

func (r *Result) GetContent() string {
	return r.Text
}

// Caller-facing messages. Kept free of coordinates and technical detail.
const (
	msgMissingLocation = "I need to know where your farm is to check the weather. Please share your location, or tell me the latitude and longitude."
	msgInvalidInput    = "Some of the values look out of range. Latitude must be between -90 and 90, longitude between -180 and 180, and the number of days within the supported window."
	msgNoData          = "No forecast data is available for this location right now. Please try again later, or try a nearby location."
	msgUpstreamFailure = "Sorry, I couldn't retrieve the weather forecast right now. Please try again in a little while."
)

// unknownCropResult reports an unsupported crop name, listing what the
// advisor knows.
func unknownCropResult() *Result {
	return &Result{
		Text:    "I don't have guidance for that crop yet. Supported crops: " + strings.Join(advisor.CropNames(), ", ") + ".",
		IsError: true,
	}
}

// core carries the collaborators shared by all four tools. The client is
// optional: when the server started without a credential, every invocation
// fails fast with the generic failure message.
type core struct {
	client   ForecastAPI
	defaults DefaultLocationFunc
	cb       tools.Callback
}

// SetCallback installs a hook fired around every tool invocation.
func (c *core) SetCallback(cb tools.Callback) {
	c.cb = cb
}

func (c *core) onToolStart(ctx context.Context, t tools.ITool, req any) {
	if c.cb != nil {
		c.cb.OnToolStart(ctx, t, utils.ToJSON(req))
	}
}

func (c *core) onToolEnd(ctx context.Context, t tools.ITool, req any, output string) {
	if c.cb != nil {
		c.cb.OnToolEnd(ctx, t, utils.ToJSON(req), output)
	}
}

func (c *core) onToolError(ctx context.Context, t tools.ITool, req any, err error) {
	if c.cb != nil {
		c.cb.OnToolError(ctx, t, utils.ToJSON(req), err)
	}
}

// resolveLocation applies the coordinate precedence: explicit parameters
// first, then the request-scoped fallback. A non-nil Result means no
// coordinates were available and the caller should be prompted.
func (c *core) resolveLocation(ctx context.Context, lat, lon *float64) (gapclient.Coordinate, *Result) {
	if lat != nil && lon != nil {
		return gapclient.Coordinate{Latitude: *lat, Longitude: *lon}, nil
	}
	if c.defaults != nil {
		if coord, ok := c.defaults(ctx); ok {
			return coord, nil
		}
	}
	return gapclient.Coordinate{}, &Result{Text: msgMissingLocation}
}

// checkInput validates a request struct's range tags. A non-nil Result is a
// tool-level error, returned before any network call.
func checkInput(req any) *Result {
	if err := validate.Struct(req); err != nil {
		logger.KV(xlog.DEBUG, "reason", "invalid_input", "err", err.Error())
		return &Result{Text: msgInvalidInput, IsError: true}
	}
	return nil
}

// fetchSeries performs the single outbound call of an invocation and folds
// every failure mode into a caller-facing Result: no credential and
// upstream errors report generically (with full server-side logging), an
// empty series reports as no data. The extended flag selects the farming
// attribute set.
func (c *core) fetchSeries(ctx context.Context, extended bool, coord gapclient.Coordinate, windowDays int) (*gapclient.ForecastSeries, *Result) {
	if c.client == nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "no_credential", "err", gapclient.ErrNoCredential.Error())
		return nil, &Result{Text: msgUpstreamFailure, IsError: true}
	}

	fetch := c.client.FetchForecast
	if extended {
		fetch = c.client.FetchFarmingForecast
	}

	series, err := fetch(ctx, coord, windowDays)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "fetch_failed", "err", err.Error())
		return nil, &Result{Text: msgUpstreamFailure, IsError: true}
	}
	if series.IsEmpty() {
		return nil, &Result{Text: msgNoData}
	}
	return series, nil
}

// LoggerCallback logs tool invocations through the package logger:
// start and end at debug, errors at error level.
type LoggerCallback struct{}

var _ tools.Callback = LoggerCallback{}

func (LoggerCallback) OnToolStart(ctx context.Context, t tools.ITool, input string) {
	logger.ContextKV(ctx, xlog.DEBUG, "event", "tool_start", "tool", t.Name(), "input", input)
}

func (LoggerCallback) OnToolEnd(ctx context.Context, t tools.ITool, input, output string) {
	logger.ContextKV(ctx, xlog.DEBUG, "event", "tool_end", "tool", t.Name())
}

func (LoggerCallback) OnToolError(ctx context.Context, t tools.ITool, input string, err error) {
	logger.ContextKV(ctx, xlog.ERROR, "event", "tool_error", "tool", t.Name(), "err", err.Error())
}

// NewToolset builds the four advisory tools with the logging callback
// installed. The client may be nil when no credential is configured; tools
// then answer with a generic failure.
func NewToolset(client ForecastAPI, defaults DefaultLocationFunc) ([]tools.IMCPTool, error) {
	forecast, err := NewForecastTool(client, defaults)
	if err != nil {
		return nil, err
	}
	farming, err := NewFarmingTool(client, defaults)
	if err != nil {
		return nil, err
	}
	planting, err := NewPlantingTool(client, defaults)
	if err != nil {
		return nil, err
	}
	irrigation, err := NewIrrigationTool(client, defaults)
	if err != nil {
		return nil, err
	}

	cb := LoggerCallback{}
	forecast.SetCallback(cb)
	farming.SetCallback(cb)
	planting.SetCallback(cb)
	irrigation.SetCallback(cb)

	return []tools.IMCPTool{forecast, farming, planting, irrigation}, nil
}
