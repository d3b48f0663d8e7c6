package math

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/plotter/internal/types"
)

func TestDefinition(t *testing.T) {
	p := NewProvider(nil)
	def := p.Definition()

	assert.Equal(t, "math", def.ID)
	assert.Equal(t, types.CategoryMath, def.Category)

	ids := make(map[string]bool)
	for _, tool := range def.Tools {
		ids[tool.ID] = true
	}
	for _, id := range []string{
		"math.evaluate", "math.classify", "math.domain", "math.view", "math.presets",
		"math.root", "math.maximum", "math.minimum", "math.integrate", "math.summary",
	} {
		assert.True(t, ids[id], id)
	}
	assert.Len(t, def.Tools, 10)
}

func TestExecuteRoutesEveryTool(t *testing.T) {
	p := NewProvider(nil)
	ctx := context.Background()

	for _, tool := range p.Definition().Tools {
		res, err := p.Execute(ctx, tool.ID, nil, nil)
		require.NoError(t, err, tool.ID)
		require.NotNil(t, res, tool.ID)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	p := NewProvider(nil)
	_, err := p.Execute(context.Background(), "math.add", nil, nil)
	assert.ErrorIs(t, err, types.ErrToolNotFound)
}

func TestExecuteEvaluate(t *testing.T) {
	p := NewProvider(nil)
	res, err := p.Execute(context.Background(), "math.evaluate", map[string]interface{}{
		"expression": "sin(x)/x",
		"start":      "-pi*20",
		"stop":       "pi*20",
	}, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "f(x)=sin(x)/x", res.Data["title"])
}

func TestAnalysisTool(t *testing.T) {
	toolID, ok := AnalysisTool("integral")
	assert.True(t, ok)
	assert.Equal(t, "math.integrate", toolID)

	_, ok = AnalysisTool("derivative")
	assert.False(t, ok)
}
