package viewport

import (
	"math"
	"time"

	"github.com/glide-wm/glide/config"
	"github.com/glide-wm/glide/geom"
)

// ScrollState is the offset of a scroll viewport: either pinned at a
// static value, or animating toward a target via a Spring.
type ScrollState struct {
	spring *Spring // nil when static
	static float64
}

// Static returns a ScrollState pinned at offset.
func Static(offset float64) ScrollState { return ScrollState{static: offset} }

// Current returns the offset at the given instant.
func (s ScrollState) Current(now time.Time) float64 {
	if s.spring != nil {
		return s.spring.Current(now)
	}
	return s.static
}

// Target returns the offset this state is settling toward.
func (s ScrollState) Target() float64 {
	if s.spring != nil {
		return s.spring.Target()
	}
	return s.static
}

// Viewport is the horizontal scroll state for one scroll-kind layout.
type Viewport struct {
	scroll            ScrollState
	ActiveColumnIndex  int
	ScreenWidth        float64
	UserScrolling      bool
	scrollProgress     float64
}

// New returns a viewport pinned at offset 0 for a screen of the given
// width.
func New(screenWidth float64) *Viewport {
	return &Viewport{scroll: Static(0), ScreenWidth: screenWidth}
}

// ScrollOffset returns the current offset at now.
func (v *Viewport) ScrollOffset(now time.Time) float64 { return v.scroll.Current(now) }

// TargetOffset returns the offset the viewport is settling toward.
func (v *Viewport) TargetOffset() float64 { return v.scroll.Target() }

// SetScreenWidth updates the viewport's screen width (on a resize or
// screen change).
func (v *Viewport) SetScreenWidth(w float64) { v.ScreenWidth = w }

// EnsureColumnVisible scrolls (or schedules an animation) so that the
// given column is positioned per centerMode, and records it as the active
// column.
func (v *Viewport) EnsureColumnVisible(columnIndex int, columnX, columnWidth float64, centerMode config.CenterMode, gap float64, now time.Time) {
	v.ActiveColumnIndex = columnIndex
	v.UserScrolling = false
	current := v.TargetOffset()

	var newOffset float64
	switch centerMode {
	case config.CenterAlways:
		newOffset = columnX + columnWidth/2 - v.ScreenWidth/2
	case config.CenterOnOverflow:
		if columnWidth > v.ScreenWidth {
			newOffset = columnX + columnWidth/2 - v.ScreenWidth/2
		} else {
			newOffset = v.computeEdgeFit(columnX, columnWidth, current, gap)
		}
	default: // CenterNever
		newOffset = v.computeEdgeFit(columnX, columnWidth, current, gap)
	}

	if math.Abs(newOffset-current) > 0.5 {
		v.AnimateTo(newOffset, now)
	}
}

func (v *Viewport) computeEdgeFit(colX, colW, current, gap float64) float64 {
	viewLeft := current
	viewRight := current + v.ScreenWidth

	if colX >= viewLeft && colX+colW <= viewRight {
		return current
	}

	padding := clampF((v.ScreenWidth-colW)/2, 0, gap)

	if colX < viewLeft {
		return colX - padding
	}
	return colX + colW + padding - v.ScreenWidth
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SnapToOffset pins the viewport at offset, cancelling any animation.
func (v *Viewport) SnapToOffset(offset float64) { v.scroll = Static(offset) }

// AnimateTo launches (or retargets) a spring toward target.
func (v *Viewport) AnimateTo(target float64, now time.Time) {
	if v.scroll.spring != nil {
		v.scroll.spring.Retarget(target, now)
		return
	}
	s := NewSpringWithDefaults(v.scroll.static, target, now)
	v.scroll = ScrollState{spring: &s}
}

// AccumulateScroll adds delta to the wheel-input accumulator and, once the
// accumulated progress crosses avgColumnWidth, returns the integer number
// of columns to step (consuming that much progress). Returns false when no
// step threshold has been crossed yet.
func (v *Viewport) AccumulateScroll(delta, avgColumnWidth float64) (int, bool) {
	if avgColumnWidth <= 0 {
		return 0, false
	}
	v.scrollProgress += delta
	steps := int(v.scrollProgress / avgColumnWidth) // truncates toward zero
	if steps != 0 {
		v.scrollProgress -= float64(steps) * avgColumnWidth
		return steps, true
	}
	return 0, false
}

// IsAnimating reports whether the viewport has an unsettled spring at now.
func (v *Viewport) IsAnimating(now time.Time) bool {
	return v.scroll.spring != nil && !v.scroll.spring.IsComplete(now)
}

// Tick settles a completed animation to Static and clears UserScrolling.
// Callers should invoke this once per frame from their own run loop.
func (v *Viewport) Tick(now time.Time) {
	if v.scroll.spring != nil && v.scroll.spring.IsComplete(now) {
		v.scroll = Static(v.scroll.spring.Target())
		v.UserScrolling = false
	}
}

// OffsetRect shifts rect's x coordinate by the current scroll offset.
func (v *Viewport) OffsetRect(rect geom.Rect, now time.Time) geom.Rect {
	offset := v.ScrollOffset(now)
	return geom.NewRect(rect.Origin.X-offset, rect.Origin.Y, rect.Size.W, rect.Size.H)
}

// IsVisible reports whether rect, before viewport offsetting, intersects
// the current viewport window horizontally.
func (v *Viewport) IsVisible(rect geom.Rect, now time.Time) bool {
	offset := v.ScrollOffset(now)
	viewLeft := offset
	viewRight := offset + v.ScreenWidth
	rectLeft := rect.Origin.X
	rectRight := rect.Origin.X + rect.Size.W
	return rectRight > viewLeft && rectLeft < viewRight
}

// ApplyToFrames offsets every frame that intersects the viewport window
// horizontally, and parks the rest off-screen to the left or right
// (preserving width and height) so that a host can still animate them in
// and out without special-casing hidden columns.
func ApplyToFrames[T any](v *Viewport, screen geom.Rect, frames []Frame[T], now time.Time) []Frame[T] {
	offset := v.ScrollOffset(now)
	viewLeft := offset
	viewRight := offset + v.ScreenWidth

	out := make([]Frame[T], len(frames))
	for i, f := range frames {
		rect := f.Rect
		rectRight := rect.Origin.X + rect.Size.W
		rectLeft := rect.Origin.X

		switch {
		case rectRight > viewLeft && rectLeft < viewRight:
			out[i] = Frame[T]{Key: f.Key, Rect: v.OffsetRect(rect, now)}
		case rectRight <= viewLeft:
			out[i] = Frame[T]{Key: f.Key, Rect: geom.NewRect(screen.Origin.X-rect.Size.W, rect.Origin.Y, rect.Size.W, rect.Size.H)}
		default:
			out[i] = Frame[T]{Key: f.Key, Rect: geom.NewRect(screen.Origin.X+screen.Size.W, rect.Origin.Y, rect.Size.W, rect.Size.H)}
		}
	}
	return out
}

// Frame pairs an arbitrary key (typically a tree.WindowID) with a
// rectangle, for ApplyToFrames.
type Frame[T any] struct {
	Key  T
	Rect geom.Rect
}
