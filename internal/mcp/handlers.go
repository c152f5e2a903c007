package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/navmark/internal/nav"
)

func (s *Server) handleListNavItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if len(s.items) == 0 {
		return mcp.NewToolResultText("No navigation items are configured."), nil
	}
	return mcp.NewToolResultText(formatItems(s.items)), nil
}

func (s *Server) handleResolvePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	h := s.highlighter("")
	active, ok := h.ActivateOnLoad(path)

	var b strings.Builder
	if ok {
		fmt.Fprintf(&b, "%s highlights item %s (%s).\n\n", path, active.ID, active.Label)
	} else {
		fmt.Fprintf(&b, "%s matches no navigation item; every item is left unmarked.\n\n", path)
	}
	b.WriteString(formatItems(h.Snapshot()))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetSelection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := request.RequireString("client_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: client_id"), nil
	}
	if s.store == nil {
		return mcp.NewToolResultError("selection storage is disabled"), nil
	}

	v, ok, err := s.highlighter(clientID).Selection(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read selection: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("Client %s has no stored selection.", clientID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Client %s last selected item %s.", clientID, v)), nil
}

func (s *Server) handleActivateItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := request.RequireString("client_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: client_id"), nil
	}
	itemID, err := request.RequireString("item_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: item_id"), nil
	}
	if s.store == nil {
		return mcp.NewToolResultError("selection storage is disabled"), nil
	}

	h := s.highlighter(clientID)
	if err := h.ActivateOnClick(ctx, itemID); err != nil {
		if errors.Is(err, nav.ErrUnknownItem) {
			return mcp.NewToolResultError(fmt.Sprintf("no navigation item %q", itemID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("activation failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Item %s is now active for client %s.", itemID, clientID)), nil
}

// formatItems renders one line per item: ID, label, path and markers.
func formatItems(items []nav.Item) string {
	var b strings.Builder
	for _, it := range items {
		var markers []string
		if it.Active {
			markers = append(markers, string(nav.MarkerActive))
		}
		if it.Stopped {
			markers = append(markers, string(nav.MarkerStopped))
		}
		fmt.Fprintf(&b, "- %s  %s  `%s`", it.ID, it.Label, it.Path)
		if len(markers) > 0 {
			fmt.Fprintf(&b, "  [%s]", strings.Join(markers, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
