package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listNavItemsTool defines the list_nav_items MCP tool.
var listNavItemsTool = mcp.NewTool("list_nav_items",
	mcp.WithDescription("List the site's navigation items in document order with their IDs and paths."),
)

// resolvePathTool defines the resolve_path MCP tool.
var resolvePathTool = mcp.NewTool("resolve_path",
	mcp.WithDescription("Show which navigation item a page load of the given URL path highlights."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("URL path, e.g. /settings"),
	),
)

// getSelectionTool defines the get_selection MCP tool.
var getSelectionTool = mcp.NewTool("get_selection",
	mcp.WithDescription("Get the navigation item a client last clicked."),
	mcp.WithString("client_id",
		mcp.Required(),
		mcp.Description("Client ID from the navmark_client cookie"),
	),
)

// activateItemTool defines the activate_item MCP tool.
var activateItemTool = mcp.NewTool("activate_item",
	mcp.WithDescription("Click a navigation item on behalf of a client and store it as their selection."),
	mcp.WithString("client_id",
		mcp.Required(),
		mcp.Description("Client ID from the navmark_client cookie"),
	),
	mcp.WithString("item_id",
		mcp.Required(),
		mcp.Description("Navigation item ID"),
	),
)
