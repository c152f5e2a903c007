package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/navmark/internal/db"
	"github.com/ziadkadry99/navmark/internal/nav"
	"github.com/ziadkadry99/navmark/internal/selection"
)

var testItems = []nav.Item{
	{ID: "1", Label: "Home", Path: "/"},
	{ID: "2", Label: "History", Path: "/history"},
	{ID: "3", Label: "Settings", Path: "/settings"},
	{ID: "4", Label: "Documentation", Path: "/documentation"},
}

func setupServer(t *testing.T) (*Server, *selection.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	store := selection.NewStore(database)
	return NewServer(testItems, nil, store, ""), store
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", result.Content[0])
	}
	return tc.Text
}

func TestToolDefinitions(t *testing.T) {
	// Verify tool names and required properties.
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_nav_items", listNavItemsTool, "list_nav_items"},
		{"resolve_path", resolvePathTool, "resolve_path"},
		{"get_selection", getSelectionTool, "get_selection"},
		{"activate_item", activateItemTool, "activate_item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(testItems, nil, nil, "")
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.storageKey != nav.DefaultStorageKey {
		t.Errorf("storageKey = %q, want %q", srv.storageKey, nav.DefaultStorageKey)
	}
}

func TestHandleListNavItems(t *testing.T) {
	srv, _ := setupServer(t)

	result, err := srv.handleListNavItems(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	for _, it := range testItems {
		if !strings.Contains(text, it.Label) {
			t.Errorf("missing %s in %q", it.Label, text)
		}
	}
}

func TestHandleResolvePath(t *testing.T) {
	srv, _ := setupServer(t)
	ctx := context.Background()

	t.Run("known path", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"path": "/settings"}

		result, err := srv.handleResolvePath(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := resultText(t, result)
		if !strings.Contains(text, "highlights item 3") {
			t.Errorf("text = %q", text)
		}
		if !strings.Contains(text, "- 3  Settings  `/settings`  [active, stopped]") {
			t.Errorf("markers missing: %q", text)
		}
	})

	t.Run("unknown path", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"path": "/unknown"}

		result, err := srv.handleResolvePath(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatal("unknown path should not be a tool error")
		}
		if text := resultText(t, result); strings.Contains(text, "[active") {
			t.Errorf("no item should be marked: %q", text)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		result, err := srv.handleResolvePath(ctx, mcp.CallToolRequest{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing path")
		}
	})
}

func TestHandleActivateAndGetSelection(t *testing.T) {
	srv, store := setupServer(t)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"client_id": "c1", "item_id": "2"}
	result, err := srv.handleActivateItem(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}

	v, ok, _ := store.Get(ctx, "c1", nav.DefaultStorageKey)
	if !ok || v != "2" {
		t.Errorf("stored = %q, %v, want 2", v, ok)
	}

	req = mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"client_id": "c1"}
	result, err = srv.handleGetSelection(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := resultText(t, result); !strings.Contains(text, "item 2") {
		t.Errorf("text = %q", text)
	}

	req = mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"client_id": "c1", "item_id": "9"}
	result, _ = srv.handleActivateItem(ctx, req)
	if !result.IsError {
		t.Error("expected error for unknown item")
	}
}

func TestSelectionToolsWithoutStore(t *testing.T) {
	srv := NewServer(testItems, nil, nil, "")

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"client_id": "c1"}
	result, err := srv.handleGetSelection(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error when storage is disabled")
	}
}
