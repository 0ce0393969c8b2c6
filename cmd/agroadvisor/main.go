// Command agroadvisor serves the agricultural advisory tools over the MCP
// stdio transport.
package main

import (
	"os"

	"github.com/effective-security/xlog"
	"github.com/joho/godotenv"
	mcpgolang "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"

	"github.com/agrisense/agroadvisor/gapclient"
	"github.com/agrisense/agroadvisor/tools/agro"
)

var logger = xlog.NewPackageLogger("github.com/agrisense/agroadvisor", "agroadvisor")

func main() {
	// stdout carries the MCP framing; all logging goes to stderr.
	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	xlog.SetGlobalLogLevel(xlog.INFO)

	if err := realMain(); err != nil {
		logger.KV(xlog.ERROR, "err", err.Error())
		os.Exit(1)
	}
}

func realMain() error {
	// Optional .env for local runs; the environment wins.
	_ = godotenv.Load()

	// Without a credential the server still comes up, and every tool
	// invocation reports a generic failure while the detail is logged.
	client, err := gapclient.New()
	if err != nil {
		logger.KV(xlog.WARNING, "reason", "client_not_configured", "err", err.Error())
		client = nil
	}

	var api agro.ForecastAPI
	if client != nil {
		api = client
	}

	toolset, err := agro.NewToolset(api, agro.EnvDefaultLocation())
	if err != nil {
		return err
	}

	server := mcpgolang.NewServer(
		stdio.NewStdioServerTransport(),
		mcpgolang.WithName("agroadvisor"),
		mcpgolang.WithVersion("1.0.0"),
	)

	for _, t := range toolset {
		if err := t.RegisterMCP(server); err != nil {
			return err
		}
		logger.KV(xlog.INFO, "registered_tool", t.Name())
	}

	if err := server.Serve(); err != nil {
		return err
	}

	select {}
}
