package viewport_test

import (
	"testing"
	"time"

	"github.com/glide-wm/glide/viewport"
	"github.com/stretchr/testify/assert"
)

func TestCriticallyDampedConverges(t *testing.T) {
	now := time.Now()
	spring := viewport.NewSpring(0, 100, 0, 0.5, 1.0, now)
	end := now.Add(2 * time.Second)
	val := spring.ValueAt(end)
	assert.InDelta(t, 100.0, val, 1.0)
	assert.True(t, spring.IsComplete(end))
}

func TestUnderdampedOscillates(t *testing.T) {
	now := time.Now()
	spring := viewport.NewSpring(0, 100, 0, 0.5, 0.5, now)
	mid := now.Add(200 * time.Millisecond)
	val := spring.ValueAt(mid)
	assert.Greater(t, val, 50.0)
}

func TestRetargetPreservesContinuity(t *testing.T) {
	now := time.Now()
	spring := viewport.NewSpring(0, 100, 0, 0.5, 1.0, now)
	valBefore := spring.ValueAt(now)
	spring.Retarget(200, now)
	valAfter := spring.ValueAt(now)
	assert.InDelta(t, valBefore, valAfter, 5.0)
}

func TestIsCompleteRequiresMinimumElapsed(t *testing.T) {
	now := time.Now()
	spring := viewport.NewSpring(100, 100, 0, 0.5, 1.0, now)
	assert.False(t, spring.IsComplete(now))
	assert.True(t, spring.IsComplete(now.Add(20*time.Millisecond)))
}
