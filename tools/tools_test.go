package tools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrisense/agroadvisor/tools"
)

type staticTool struct {
	name        string
	description string
}

func (t *staticTool) Name() string        { return t.name }
func (t *staticTool) Description() string { return t.description }
func (t *staticTool) Parameters() any     { return nil }
func (t *staticTool) Call(ctx context.Context, input string) (string, error) {
	return "", nil
}

func Test_GetDescriptions(t *testing.T) {
	out := tools.GetDescriptions(
		&staticTool{name: "get_weather_forecast", description: "Daily forecast for a farm."},
		&staticTool{name: "get_planting_advice", description: "Should I plant now?"},
	)

	assert.Contains(t, out, "```json")
	assert.Contains(t, out, "get_weather_forecast")
	assert.Contains(t, out, "Should I plant now?")
}
