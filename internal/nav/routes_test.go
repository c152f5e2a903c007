package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteTableResolve(t *testing.T) {
	table, err := NewRouteTable(append(DefaultRoutes(),
		Route{Pattern: "/documentation/**", ItemID: "4"},
		Route{Pattern: "/history/*", ItemID: "2"},
	), "")
	require.NoError(t, err)

	tests := []struct {
		path   string
		wantID string
		wantOK bool
	}{
		{"/", "1", true},
		{"", "1", true},
		{"/history", "2", true},
		{"/history/", "2", true},
		{"/history/2024", "2", true},
		{"/settings", "3", true},
		{"/documentation", "4", true},
		{"/documentation/api/nav", "4", true},
		{"/Settings", "", false},
		{"/unknown", "", false},
		{"/history/2024/01", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, ok := table.Resolve(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestRouteTableExactBeatsGlob(t *testing.T) {
	table, err := NewRouteTable([]Route{
		{Pattern: "/docs/**", ItemID: "4"},
		{Pattern: "/docs/changelog", ItemID: "2"},
	}, "")
	require.NoError(t, err)

	id, ok := table.Resolve("/docs/changelog")
	require.True(t, ok)
	assert.Equal(t, "2", id)
}

func TestRouteTableFallback(t *testing.T) {
	table, err := NewRouteTable(DefaultRoutes(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", table.Fallback())

	id, ok := table.Resolve("/nowhere")
	require.True(t, ok)
	assert.Equal(t, "1", id)

	_, ok = table.Match("/nowhere")
	assert.False(t, ok, "Match must ignore the fallback")

	id, ok = table.Match("/settings/")
	require.True(t, ok)
	assert.Equal(t, "3", id)
}

func TestRouteTableInvalid(t *testing.T) {
	_, err := NewRouteTable([]Route{{Pattern: "/docs/[", ItemID: "4"}}, "")
	assert.Error(t, err)

	_, err = NewRouteTable([]Route{{Pattern: "/", ItemID: ""}}, "")
	assert.Error(t, err)
}
