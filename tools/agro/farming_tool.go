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

const FarmingToolName = "get_farming_advice"

// FarmingRequest is the input of the general farming advisory tool.
type FarmingRequest struct {
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90" jsonschema:"title=Latitude,description=Latitude of the farm in decimal degrees."`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180" jsonschema:"title=Longitude,description=Longitude of the farm in decimal degrees."`
	Crop         string   `json:"crop,omitempty" jsonschema:"title=Crop,description=Optional crop to tailor the advice for (e.g. maize, beans, tomato)."`
	ForecastDays int      `json:"forecast_days,omitempty" validate:"omitempty,min=7,max=14" jsonschema:"title=Forecast days,description=Advisory window in days (7-14; default 14)."`
}

// FarmingTool produces general farming guidance for the coming one to two
// weeks: temperature and rainfall outlook, optional crop notes, and dry
// days suited to field work.
type FarmingTool struct {
	core

	name        string
	description string
	funcParams  any
}

var _ tools.MCPTool[FarmingRequest] = (*FarmingTool)(nil)

func NewFarmingTool(client ForecastAPI, defaults DefaultLocationFunc) (*FarmingTool, error) {
	sc, err := schema.New(reflect.TypeOf(FarmingRequest{}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &FarmingTool{
		core:        core{client: client, defaults: defaults},
		name:        FarmingToolName,
		description: "Get general farming advice for a location based on the coming weather: temperature and rainfall outlook, crop-specific notes, and good days for field work.",
		funcParams:  sc.Parameters,
	}, nil
}

func (t *FarmingTool) Name() string {
	return t.name
}

func (t *FarmingTool) Description() string {
	return t.description
}

func (t *FarmingTool) Parameters() any {
	return t.funcParams
}

func (t *FarmingTool) Run(ctx context.Context, req *FarmingRequest) (*Result, error) {
	t.onToolStart(ctx, t, req)
	res, err := t.run(ctx, req)
	if err != nil {
		t.onToolError(ctx, t, req, err)
		return nil, err
	}
	t.onToolEnd(ctx, t, req, res.Text)
	return res, nil
}

func (t *FarmingTool) run(ctx context.Context, req *FarmingRequest) (*Result, error) {
	if res := checkInput(req); res != nil {
		return res, nil
	}
	coord, res := t.resolveLocation(ctx, req.Latitude, req.Longitude)
	if res != nil {
		return res, nil
	}

	var crop advisor.Crop
	if req.Crop != "" {
		var ok bool
		if crop, ok = advisor.ParseCrop(req.Crop); !ok {
			return unknownCropResult(), nil
		}
	}

	windowDays := advisor.ClampFarmingWindow(req.ForecastDays)

	series, res := t.fetchSeries(ctx, true, coord, windowDays)
	if res != nil {
		return res, nil
	}

	return &Result{Text: advisor.FarmingAdvice(series, crop, windowDays)}, nil
}

func (t *FarmingTool) Call(ctx context.Context, input string) (string, error) {
	var req FarmingRequest
	if err := json.Unmarshal(utils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithStack(tools.ErrFailedUnmarshalInput)
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (t *FarmingTool) RegisterMCP(registrator tools.McpServerRegistrator) error {
	return registrator.RegisterTool(t.name, t.description, t.RunMCP)
}

func (t *FarmingTool) RunMCP(ctx context.Context, req *FarmingRequest) (*mcp.ToolResponse, error) {
	res, err := t.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResponse(mcp.NewTextContent(res.Text)), nil
}
