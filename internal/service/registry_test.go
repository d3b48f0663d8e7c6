package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/plotter/internal/types"
)

type mockProvider struct {
	id       string
	category types.Category
}

func (m *mockProvider) Definition() types.Service {
	category := m.category
	if category == "" {
		category = types.CategoryPlot
	}
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "A mock sampler for testing",
		Category:     category,
		Capabilities: []string{"sample", "classify"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"tool": toolID},
	}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))

	_, ok := r.Get("test")
	assert.True(t, ok)

	assert.Error(t, r.Register(&mockProvider{id: "test"}), "duplicate IDs are rejected")
	assert.Error(t, r.Register(&mockProvider{}), "empty IDs are rejected")
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))
	r.Unregister("test")

	_, ok := r.Get("test")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "b"}))
	require.NoError(t, r.Register(&mockProvider{id: "a", category: types.CategoryMath}))

	services := r.List(nil)
	require.Len(t, services, 2)
	assert.Equal(t, "a", services[0].ID)

	cat := types.CategoryMath
	filtered := r.List(&cat)
	require.Len(t, filtered, 1)
	assert.Equal(t, "a", filtered[0].ID)
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "sampler"}))
	require.NoError(t, r.Register(&mockProvider{id: "other", category: types.CategoryMath}))

	results := r.Discover("sampler classify", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "sampler", results[0].ID)

	assert.Len(t, r.Discover("classify", 1), 1)
	assert.Empty(t, r.Discover("zzz", 5))
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))

	result, err := r.Execute(context.Background(), "test.test", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "test.test", result.Data["tool"])
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))

	result, err := r.Execute(context.Background(), "notool", nil, nil)
	assert.ErrorIs(t, err, types.ErrInvalidToolID)
	assert.False(t, result.Success)

	result, err = r.Execute(context.Background(), "missing.tool", nil, nil)
	assert.ErrorIs(t, err, types.ErrServiceNotFound)
	assert.Contains(t, *result.Error, "service not found")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Execute(ctx, "test.test", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test1"}))
	require.NoError(t, r.Register(&mockProvider{id: "test2"}))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
	assert.Equal(t, map[string]int{"plot": 2}, stats["categories"])
}
