package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/navmark/internal/nav"
	"github.com/ziadkadry99/navmark/internal/selection"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the navigation table and the
// stored selections as tools.
type Server struct {
	items      []nav.Item
	routes     *nav.RouteTable
	store      *selection.Store
	storageKey string
	mcp        *server.MCPServer
}

// NewServer creates a new MCP server. store may be nil, in which case the
// selection tools report that persistence is disabled.
func NewServer(items []nav.Item, routes *nav.RouteTable, store *selection.Store, storageKey string) *Server {
	if routes == nil {
		routes = nav.MustRouteTable(nav.DefaultRoutes(), "")
	}
	if storageKey == "" {
		storageKey = nav.DefaultStorageKey
	}
	s := &Server{
		items:      items,
		routes:     routes,
		store:      store,
		storageKey: storageKey,
	}

	s.mcp = server.NewMCPServer(
		"navmark",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listNavItemsTool, s.handleListNavItems)
	s.mcp.AddTool(resolvePathTool, s.handleResolvePath)
	s.mcp.AddTool(getSelectionTool, s.handleGetSelection)
	s.mcp.AddTool(activateItemTool, s.handleActivateItem)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

// highlighter returns a highlighter over a fresh copy of the items. An
// empty clientID gives one without persistence.
func (s *Server) highlighter(clientID string) *nav.Highlighter {
	var store nav.Store
	if s.store != nil && clientID != "" {
		store = s.store.For(clientID)
	}
	return nav.New(nav.NewCollection(s.items...), s.routes, store, nav.WithStorageKey(s.storageKey))
}
