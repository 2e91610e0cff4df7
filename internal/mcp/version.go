package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
)

// versionInfo holds the server's build fields.
type versionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit"`
	Status  string `json:"status"`
}

func handleGetVersion(_ context.Context, _ mcp.CallToolRequest, _ CatalogTool) *mcp.CallToolResult {
	return jsonResult(versionInfo{
		Name:    "ukdata-mcp",
		Version: common.GetVersion(),
		Build:   common.GetBuild(),
		Commit:  common.GetGitCommit(),
		Status:  "ok",
	})
}
