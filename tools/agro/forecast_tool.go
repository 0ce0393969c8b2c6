package agro

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/cockroachdb/errors"
	mcp "github.com/metoro-io/mcp-golang"

	"github.com/agrisense/agroadvisor/advisor"
	"github.com/agrisense/agroadvisor/schema"
	"github.com/agrisense/agroadvisor/tools"
	"github.com/agrisense/agroadvisor/utils"
)

const ForecastToolName = "get_weather_forecast"

const forecastDaysDefault = 7

// ForecastRequest is the input of the weather forecast tool. Coordinates
// are optional; when absent, the request-scoped fallback is consulted.
type ForecastRequest struct {
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90" jsonschema:"title=Latitude,description=Latitude of the farm in decimal degrees."`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180" jsonschema:"title=Longitude,description=Longitude of the farm in decimal degrees."`
	Days      int      `json:"days,omitempty" validate:"omitempty,min=1,max=14" jsonschema:"title=Days,description=Number of forecast days to return (1-14; default 7)."`
}

// ForecastTool returns the aggregated daily weather forecast for a
// location, with a period summary.
type ForecastTool struct {
	core

	name        string
	description string
	funcParams  any
}

var _ tools.MCPTool[ForecastRequest] = (*ForecastTool)(nil)

func NewForecastTool(client ForecastAPI, defaults DefaultLocationFunc) (*ForecastTool, error) {
	sc, err := schema.New(reflect.TypeOf(ForecastRequest{}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &ForecastTool{
		core:        core{client: client, defaults: defaults},
		name:        ForecastToolName,
		description: "Get the daily weather forecast for a farm location: temperatures, rainfall, humidity and wind, with a period summary.",
		funcParams:  sc.Parameters,
	}, nil
}

func (t *ForecastTool) Name() string {
	return t.name
}

func (t *ForecastTool) Description() string {
	return t.description
}

func (t *ForecastTool) Parameters() any {
	return t.funcParams
}

func (t *ForecastTool) Run(ctx context.Context, req *ForecastRequest) (*Result, error) {
	t.onToolStart(ctx, t, req)
	res, err := t.run(ctx, req)
	if err != nil {
		t.onToolError(ctx, t, req, err)
		return nil, err
	}
	t.onToolEnd(ctx, t, req, res.Text)
	return res, nil
}

func (t *ForecastTool) run(ctx context.Context, req *ForecastRequest) (*Result, error) {
	if res := checkInput(req); res != nil {
		return res, nil
	}
	coord, res := t.resolveLocation(ctx, req.Latitude, req.Longitude)
	if res != nil {
		return res, nil
	}

	days := req.Days
	if days == 0 {
		days = forecastDaysDefault
	}

	series, res := t.fetchSeries(ctx, false, coord, days)
	if res != nil {
		return res, nil
	}

	return &Result{Text: advisor.FormatForecast(series)}, nil
}

func (t *ForecastTool) Call(ctx context.Context, input string) (string, error) {
	var req ForecastRequest
	if err := json.Unmarshal(utils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithStack(tools.ErrFailedUnmarshalInput)
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (t *ForecastTool) RegisterMCP(registrator tools.McpServerRegistrator) error {
	return registrator.RegisterTool(t.name, t.description, t.RunMCP)
}

func (t *ForecastTool) RunMCP(ctx context.Context, req *ForecastRequest) (*mcp.ToolResponse, error) {
	res, err := t.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResponse(mcp.NewTextContent(res.Text)), nil
}
