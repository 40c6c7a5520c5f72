package geom_test

import (
	"testing"

	"github.com/glide-wm/glide/geom"
	"github.com/stretchr/testify/assert"
)

func TestRectRound(t *testing.T) {
	r := geom.NewRect(0.2, 0.6, 99.5, 199.4)
	rounded := r.Round()
	assert.Equal(t, geom.NewRect(0, 1, 100, 199), rounded)
}

func TestRectMax(t *testing.T) {
	r := geom.NewRect(10, 20, 30, 40)
	assert.Equal(t, 40.0, r.MaxX())
	assert.Equal(t, 60.0, r.MaxY())
}

func TestRectEqual(t *testing.T) {
	a := geom.NewRect(0, 0, 100, 100)
	b := geom.NewRect(0, 0, 100, 100)
	c := geom.NewRect(0, 0, 100, 101)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
