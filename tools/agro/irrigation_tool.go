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

const IrrigationToolName = "get_irrigation_advice"

// irrigationFetchDays matches the fixed evaluation window of the advisor.
const irrigationFetchDays = 7

// IrrigationRequest is the input of the irrigation advice tool. The crop
// is optional and only changes crop-specific caveats (rice).
type IrrigationRequest struct {
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90" jsonschema:"title=Latitude,description=Latitude of the farm in decimal degrees."`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180" jsonschema:"title=Longitude,description=Longitude of the farm in decimal degrees."`
	Crop      string   `json:"crop,omitempty" jsonschema:"title=Crop,description=Optional crop the field is growing (e.g. maize, rice)."`
}

// IrrigationTool estimates the week's water deficit from the forecast and
// recommends an irrigation schedule, plus a micro-recommendation per day.
type IrrigationTool struct {
	core

	name        string
	description string
	funcParams  any
}

var _ tools.MCPTool[IrrigationRequest] = (*IrrigationTool)(nil)

func NewIrrigationTool(client ForecastAPI, defaults DefaultLocationFunc) (*IrrigationTool, error) {
	sc, err := schema.New(reflect.TypeOf(IrrigationRequest{}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &IrrigationTool{
		core:        core{client: client, defaults: defaults},
		name:        IrrigationToolName,
		description: "Get irrigation advice for the coming week: estimated water deficit, how many irrigation sessions are needed, and day-by-day guidance.",
		funcParams:  sc.Parameters,
	}, nil
}

func (t *IrrigationTool) Name() string {
	return t.name
}

func (t *IrrigationTool) Description() string {
	return t.description
}

func (t *IrrigationTool) Parameters() any {
	return t.funcParams
}

func (t *IrrigationTool) Run(ctx context.Context, req *IrrigationRequest) (*Result, error) {
	t.onToolStart(ctx, t, req)
	res, err := t.run(ctx, req)
	if err != nil {
		t.onToolError(ctx, t, req, err)
		return nil, err
	}
	t.onToolEnd(ctx, t, req, res.Text)
	return res, nil
}

func (t *IrrigationTool) run(ctx context.Context, req *IrrigationRequest) (*Result, error) {
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

	series, res := t.fetchSeries(ctx, true, coord, irrigationFetchDays)
	if res != nil {
		return res, nil
	}

	plan := advisor.EvaluateIrrigation(series)
	if plan == nil {
		return &Result{Text: msgNoData}, nil
	}
	return &Result{Text: advisor.FormatIrrigation(crop, plan)}, nil
}

func (t *IrrigationTool) Call(ctx context.Context, input string) (string, error) {
	var req IrrigationRequest
	if err := json.Unmarshal(utils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithStack(tools.ErrFailedUnmarshalInput)
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (t *IrrigationTool) RegisterMCP(registrator tools.McpServerRegistrator) error {
	return registrator.RegisterTool(t.name, t.description, t.RunMCP)
}

func (t *IrrigationTool) RunMCP(ctx context.Context, req *IrrigationRequest) (*mcp.ToolResponse, error) {
	res, err := t.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResponse(mcp.NewTextContent(res.Text)), nil
}
