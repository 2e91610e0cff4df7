package mcp

import (
	"context"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
)

// CorrelationHeader carries a caller-supplied correlation ID.
const CorrelationHeader = "X-Correlation-ID"

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	tools      *Tools
	logger     *common.Logger
}

// NewHandler creates the streamable HTTP endpoint for an MCP server.
func NewHandler(s *mcpserver.MCPServer, tools *Tools, logger *common.Logger) *Handler {
	streamable := mcpserver.NewStreamableHTTPServer(s,
		mcpserver.WithStateLess(true),
		mcpserver.WithHTTPContextFunc(correlationFromRequest),
	)

	logger.Info().Int("tools", len(tools.catalog)).Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		tools:      tools,
		logger:     logger,
	}
}

// Catalog returns a copy of the tool catalog.
func (h *Handler) Catalog() []CatalogTool {
	return h.tools.Catalog()
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}

// correlationFromRequest carries the request's correlation ID into tool calls.
func correlationFromRequest(ctx context.Context, r *http.Request) context.Context {
	if id := r.Header.Get(CorrelationHeader); id != "" {
		return ContextWithCorrelationID(ctx, id)
	}
	return ctx
}
