// ABOUTME: MCP server setup for the readiness score store.
// ABOUTME: Wraps MCP server with storage and scoring engine access.
package mcp

import (
	"context"

	"github.com/harperreed/readiness/internal/engine"
	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/source"
	"github.com/harperreed/readiness/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage and engine access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	engine    *engine.Engine
	settings  models.Settings
}

// NewServer creates a new MCP server over the given storage and source.
func NewServer(repo storage.Repository, src source.Source, settings models.Settings) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "readiness",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		engine:    engine.New(repo, src),
		settings:  settings,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
