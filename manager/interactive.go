package manager

import (
	"time"

	"github.com/glide-wm/glide/config"
	"github.com/glide-wm/glide/geom"
	"github.com/glide-wm/glide/tree"
)

// ResizeEdge is a bitset of the rectangle edges a point is close enough to
// for an interactive scroll-column/window resize to start.
type ResizeEdge uint8

const (
	EdgeLeft ResizeEdge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// HasHorizontal reports whether e includes the left or right edge.
func (e ResizeEdge) HasHorizontal() bool { return e&(EdgeLeft|EdgeRight) != 0 }

// HasVertical reports whether e includes the top or bottom edge.
func (e ResizeEdge) HasVertical() bool { return e&(EdgeTop|EdgeBottom) != 0 }

// IsEmpty reports whether e names no edge at all.
func (e ResizeEdge) IsEmpty() bool { return e == 0 }

// resizeEdgeThreshold is the distance in points from a window's border
// within which a point is considered "on" that edge for interactive
// resize purposes.
const resizeEdgeThreshold = 8.0

// moveDragThreshold is the distance the mouse must travel from its
// mouse-down position before an interactive move is considered a real
// drag (as opposed to a click).
const moveDragThreshold = 10.0

// detectEdges reports which edges of frame point is close enough to for a
// resize affordance, per resizeEdgeThreshold. A point inside the frame's
// shrunk-by-threshold interior, or outside its expanded-by-threshold
// exterior, touches no edge. Opposing edges both firing (the frame is
// smaller than twice the threshold) cancels that axis rather than
// reporting a contradictory direction.
func detectEdges(point geom.Vector2, frame geom.Rect) ResizeEdge {
	expanded := geom.NewRect(
		frame.Origin.X-resizeEdgeThreshold, frame.Origin.Y-resizeEdgeThreshold,
		frame.Size.W+resizeEdgeThreshold*2, frame.Size.H+resizeEdgeThreshold*2,
	)
	if !rectContainsPoint(expanded, point) {
		return 0
	}
	inner := geom.NewRect(
		frame.Origin.X+resizeEdgeThreshold, frame.Origin.Y+resizeEdgeThreshold,
		maxF(frame.Size.W-resizeEdgeThreshold*2, 0), maxF(frame.Size.H-resizeEdgeThreshold*2, 0),
	)
	if rectContainsPoint(inner, point) {
		return 0
	}

	var edges ResizeEdge
	if point.X < frame.Origin.X+resizeEdgeThreshold {
		edges |= EdgeLeft
	}
	if point.X > frame.Origin.X+frame.Size.W-resizeEdgeThreshold {
		edges |= EdgeRight
	}
	if point.Y < frame.Origin.Y+resizeEdgeThreshold {
		edges |= EdgeTop
	}
	if point.Y > frame.Origin.Y+frame.Size.H-resizeEdgeThreshold {
		edges |= EdgeBottom
	}
	if edges&EdgeLeft != 0 && edges&EdgeRight != 0 {
		edges &^= EdgeLeft | EdgeRight
	}
	if edges&EdgeTop != 0 && edges&EdgeBottom != 0 {
		edges &^= EdgeTop | EdgeBottom
	}
	return edges
}

func rectContainsPoint(r geom.Rect, p geom.Vector2) bool {
	return p.X >= r.Origin.X && p.X <= r.MaxX() && p.Y >= r.Origin.Y && p.Y <= r.MaxY()
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// interactiveResize tracks an in-progress edge-drag resize of a scroll
// column's width or a window's height within its column.
type interactiveResize struct {
	column, window tree.NodeID
	edges          ResizeEdge
	lastMouse      geom.Vector2
}

// interactiveMove tracks an in-progress window-swap drag: dragActive only
// flips true once the mouse has travelled moveDragThreshold from its
// start position, so a plain click never triggers a swap.
type interactiveMove struct {
	layout     tree.LayoutID
	window     tree.WindowID
	windowNode tree.NodeID
	startMouse geom.Vector2
	dragActive bool
}

// BeginInteractiveResize starts an edge-drag resize, failing if one is
// already in progress.
func (m *LayoutManager) BeginInteractiveResize(column, window tree.NodeID, edges ResizeEdge, mouse geom.Vector2) bool {
	if m.resize != nil {
		return false
	}
	m.resize = &interactiveResize{column: column, window: window, edges: edges, lastMouse: mouse}
	return true
}

// UpdateInteractiveResize applies the mouse delta since the last call to
// the in-progress resize's column width and/or window height. Returns
// false if no resize is in progress.
func (m *LayoutManager) UpdateInteractiveResize(mouse geom.Vector2, screen geom.Rect) bool {
	st := m.resize
	if st == nil {
		return false
	}
	dx := mouse.X - st.lastMouse.X
	dy := mouse.Y - st.lastMouse.Y
	st.lastMouse = mouse

	changed := false
	if st.edges.HasHorizontal() && screen.Size.W != 0 {
		dir := tree.Right
		if st.edges&EdgeLeft != 0 {
			dir = tree.Left
		}
		if m.lt.Resize(st.column, dx/screen.Size.W, dir) {
			changed = true
		}
	}
	if st.edges.HasVertical() && screen.Size.H != 0 {
		dir := tree.Down
		if st.edges&EdgeTop != 0 {
			dir = tree.Up
		}
		if m.lt.Resize(st.window, dy/screen.Size.H, dir) {
			changed = true
		}
	}
	return changed
}

// EndInteractiveResize clears the in-progress resize and re-centers the
// space's viewport on the current focus.
func (m *LayoutManager) EndInteractiveResize(space tree.SpaceID, screen geom.Rect, cfg *config.Config, now time.Time) {
	if m.resize != nil {
		m.resize = nil
		m.ClearUserScrolling(space)
		m.UpdateViewportForFocus(space, screen, cfg, now)
	}
}

// BeginInteractiveMove starts a window-swap drag, failing if a resize or
// another move is already in progress.
func (m *LayoutManager) BeginInteractiveMove(space tree.SpaceID, wid tree.WindowID, node tree.NodeID, mouse geom.Vector2) bool {
	if m.resize != nil || m.move != nil {
		return false
	}
	layout := m.layout(space)
	m.move = &interactiveMove{layout: layout, window: wid, windowNode: node, startMouse: mouse}
	return true
}

// UpdateInteractiveMove activates the drag once it crosses
// moveDragThreshold, then swaps the dragged window with whichever window
// the pointer is currently over. Returns false if no move is in progress.
func (m *LayoutManager) UpdateInteractiveMove(mouse geom.Vector2, screen geom.Rect, cfg *config.Config, now time.Time) bool {
	st := m.move
	if st == nil {
		return false
	}
	if !st.dragActive {
		dx := mouse.X - st.startMouse.X
		dy := mouse.Y - st.startMouse.Y
		if dx*dx+dy*dy < moveDragThreshold*moveDragThreshold {
			return false
		}
		st.dragActive = true
	}

	target, ok := m.hitTestWindow(st.layout, mouse, screen, cfg, now)
	if !ok || target == st.windowNode {
		return false
	}
	m.lt.SwapWindows(st.windowNode, target)
	st.windowNode = target
	return true
}

// EndInteractiveMove clears the in-progress move and re-centers the
// space's viewport on the current focus.
func (m *LayoutManager) EndInteractiveMove(space tree.SpaceID, screen geom.Rect, cfg *config.Config, now time.Time) {
	if m.move != nil {
		m.move = nil
		m.ClearUserScrolling(space)
		m.UpdateViewportForFocus(space, screen, cfg, now)
	}
}

// CancelInteractiveState aborts any in-progress resize or move without
// re-centering the viewport.
func (m *LayoutManager) CancelInteractiveState() {
	m.resize = nil
	m.move = nil
}

// HasInteractiveState reports whether a resize or move is in progress.
func (m *LayoutManager) HasInteractiveState() bool {
	return m.resize != nil || m.move != nil
}
