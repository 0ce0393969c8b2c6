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

const PlantingToolName = "get_planting_advice"

// plantingFetchDays is how much forecast the planting tool pulls. The rule
// engine judges only the first week; the extra days give context to the
// reasons without changing the verdict.
const plantingFetchDays = 14

// PlantingRequest is the input of the planting advice tool. The crop is
// required; planting rules are crop-specific.
type PlantingRequest struct {
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90" jsonschema:"title=Latitude,description=Latitude of the farm in decimal degrees."`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180" jsonschema:"title=Longitude,description=Longitude of the farm in decimal degrees."`
	Crop      string   `json:"crop" validate:"required" jsonschema:"title=Crop,description=The crop to plant (e.g. maize, beans, tomato)."`
}

// PlantingTool answers "should I plant this crop now?" with a yes/wait
// verdict and severity-tagged reasons, based on the coming week's forecast.
type PlantingTool struct {
	core

	name        string
	description string
	funcParams  any
}

var _ tools.MCPTool[PlantingRequest] = (*PlantingTool)(nil)

func NewPlantingTool(client ForecastAPI, defaults DefaultLocationFunc) (*PlantingTool, error) {
	sc, err := schema.New(reflect.TypeOf(PlantingRequest{}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &PlantingTool{
		core:        core{client: client, defaults: defaults},
		name:        PlantingToolName,
		description: "Check whether the coming week's weather favors planting a specific crop. Answers YES or WAIT with the reasons.",
		funcParams:  sc.Parameters,
	}, nil
}

func (t *PlantingTool) Name() string {
	return t.name
}

func (t *PlantingTool) Description() string {
	return t.description
}

func (t *PlantingTool) Parameters() any {
	return t.funcParams
}

func (t *PlantingTool) Run(ctx context.Context, req *PlantingRequest) (*Result, error) {
	t.onToolStart(ctx, t, req)
	res, err := t.run(ctx, req)
	if err != nil {
		t.onToolError(ctx, t, req, err)
		return nil, err
	}
	t.onToolEnd(ctx, t, req, res.Text)
	return res, nil
}

func (t *PlantingTool) run(ctx context.Context, req *PlantingRequest) (*Result, error) {
	if res := checkInput(req); res != nil {
		return res, nil
	}
	coord, res := t.resolveLocation(ctx, req.Latitude, req.Longitude)
	if res != nil {
		return res, nil
	}

	crop, ok := advisor.ParseCrop(req.Crop)
	if !ok {
		return unknownCropResult(), nil
	}

	series, res := t.fetchSeries(ctx, true, coord, plantingFetchDays)
	if res != nil {
		return res, nil
	}

	verdict := advisor.EvaluatePlanting(series, crop)
	return &Result{Text: advisor.FormatPlanting(crop, verdict)}, nil
}

func (t *PlantingTool) Call(ctx context.Context, input string) (string, error) {
	var req PlantingRequest
	if err := json.Unmarshal(utils.CleanJSON([]byte(input)), &req); err != nil {
		return "", errors.WithStack(tools.ErrFailedUnmarshalInput)
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (t *PlantingTool) RegisterMCP(registrator tools.McpServerRegistrator) error {
	return registrator.RegisterTool(t.name, t.description, t.RunMCP)
}

func (t *PlantingTool) RunMCP(ctx context.Context, req *PlantingRequest) (*mcp.ToolResponse, error) {
	res, err := t.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResponse(mcp.NewTextContent(res.Text)), nil
}
