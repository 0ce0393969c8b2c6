// Package tools defines the contracts implemented by the advisory tools.
package tools

import (
	"context"

	"github.com/cockroachdb/errors"
	mcp "github.com/metoro-io/mcp-golang"

	"github.com/agrisense/agroadvisor/utils"
)

// ErrFailedUnmarshalInput is returned by Call when the tool input does not
// match the tool's parameter schema.
var ErrFailedUnmarshalInput = errors.New("failed to unmarshal input: check the schema and try again")

// McpServerRegistrator is the subset of the MCP server used to register tools.
type McpServerRegistrator interface {
	RegisterTool(name string, description string, handler any) error
}

// ITool is a remote-callable tool exposed to an agent or MCP client.
type ITool interface {
	// Name returns the name of the Tool.
	Name() string
	// Description returns the description of the tool, to be used in the prompt.
	Description() string
	// Parameters returns the parameters definition of the tool input.
	Parameters() any

	// Call executes the tool with the given input and returns the result.
	// If the tool fails to parse the input, it should return ErrFailedUnmarshalInput error.
	Call(context.Context, string) (string, error)
}

type Callback interface {
	OnToolStart(context.Context, ITool, string)
	OnToolEnd(context.Context, ITool, string, string)
	OnToolError(context.Context, ITool, string, error)
}

type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// IMCPTool is an interface that extends ITool to include functionality for
// registering the tool with an MCP server.
type IMCPTool interface {
	ITool
	RegisterMCP(registrator McpServerRegistrator) error
}

type MCPTool[I any] interface {
	IMCPTool
	RunMCP(context.Context, *I) (*mcp.ToolResponse, error)
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

// GetDescriptions returns a JSON block describing the given tools,
// suitable for inclusion in a host agent's prompt.
func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return utils.BackticksJSON(utils.ToJSONIndent(d))
}
