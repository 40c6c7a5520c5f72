package layout_test

import (
	"testing"

	"github.com/glide-wm/glide/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestSolveSizesEmptyInput(t *testing.T) {
	out := layout.SolveSizes(nil, 1000, 10)
	assert.Nil(t, out)
}

func TestSolveSizesSingleWindow(t *testing.T) {
	out := layout.SolveSizes([]layout.SizeInput{{Weight: 1, MinSize: layout.MinWindowSize}}, 1000, 10)
	require.Len(t, out, 1)
	assert.InDelta(t, 1000.0, out[0].Size, 1e-6)
	assert.False(t, out[0].WasConstrained)
}

func TestSolveSizesEqualWeights(t *testing.T) {
	windows := []layout.SizeInput{
		{Weight: 1, MinSize: layout.MinWindowSize},
		{Weight: 1, MinSize: layout.MinWindowSize},
	}
	out := layout.SolveSizes(windows, 1000, 0)
	require.Len(t, out, 2)
	assert.InDelta(t, 500.0, out[0].Size, 1e-6)
	assert.InDelta(t, 500.0, out[1].Size, 1e-6)
}

func TestSolveSizesUnequalWeights(t *testing.T) {
	windows := []layout.SizeInput{
		{Weight: 1, MinSize: layout.MinWindowSize},
		{Weight: 3, MinSize: layout.MinWindowSize},
	}
	out := layout.SolveSizes(windows, 1000, 0)
	require.Len(t, out, 2)
	assert.InDelta(t, 250.0, out[0].Size, 1e-6)
	assert.InDelta(t, 750.0, out[1].Size, 1e-6)
}

func TestSolveSizesMinViolation(t *testing.T) {
	windows := []layout.SizeInput{
		{Weight: 1, MinSize: 200},
		{Weight: 20, MinSize: 50},
	}
	out := layout.SolveSizes(windows, 1000, 0)
	require.Len(t, out, 2)
	assert.GreaterOrEqual(t, out[0].Size, 200.0)
	assert.InDelta(t, out[0].Size+out[1].Size, 1000.0, 1e-6)
	assert.True(t, out[0].WasConstrained)
}

func TestSolveSizesMaxClamping(t *testing.T) {
	windows := []layout.SizeInput{
		{Weight: 1, MinSize: layout.MinWindowSize, MaxSize: ptr(200)},
		{Weight: 1, MinSize: layout.MinWindowSize},
	}
	out := layout.SolveSizes(windows, 1000, 0)
	require.Len(t, out, 2)
	assert.LessOrEqual(t, out[0].Size, 200.0)
	assert.InDelta(t, 1000.0, out[0].Size+out[1].Size, 1e-6)
}

func TestSolveSizesNegativeAvailable(t *testing.T) {
	windows := []layout.SizeInput{
		{Weight: 1, MinSize: layout.MinWindowSize},
		{Weight: 1, MinSize: layout.MinWindowSize},
	}
	out := layout.SolveSizes(windows, -100, 10)
	require.Len(t, out, 2)
	for _, o := range out {
		assert.GreaterOrEqual(t, o.Size, 1.0)
		assert.True(t, o.WasConstrained)
	}
}

func TestSolveSizesFixedSizeHonored(t *testing.T) {
	windows := []layout.SizeInput{
		{Weight: 1, MinSize: layout.MinWindowSize, FixedSize: ptr(300)},
		{Weight: 1, MinSize: layout.MinWindowSize},
	}
	out := layout.SolveSizes(windows, 1000, 0)
	require.Len(t, out, 2)
	assert.InDelta(t, 300.0, out[0].Size, 1e-6)
	assert.InDelta(t, 700.0, out[1].Size, 1e-6)
}

func TestSolveSizesGapReducesUsable(t *testing.T) {
	windows := []layout.SizeInput{
		{Weight: 1, MinSize: layout.MinWindowSize},
		{Weight: 1, MinSize: layout.MinWindowSize},
		{Weight: 1, MinSize: layout.MinWindowSize},
	}
	out := layout.SolveSizes(windows, 1000, 20)
	require.Len(t, out, 3)
	sum := out[0].Size + out[1].Size + out[2].Size
	assert.InDelta(t, 960.0, sum, 1e-6)
}
