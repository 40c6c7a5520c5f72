package manager

import (
	"log/slog"
	"time"

	"github.com/glide-wm/glide/config"
	"github.com/glide-wm/glide/geom"
	"github.com/glide-wm/glide/layout"
	"github.com/glide-wm/glide/tree"
	"github.com/glide-wm/glide/viewport"
)

// LayoutManager is the event-driven front end between a host and the
// layout tree model: it classifies windows, turns events and commands
// into tree operations, and tracks the floating set, per-layout
// viewports, and interactive drag/resize state.
type LayoutManager struct {
	lt      *layout.Tree
	mapping map[tree.SpaceID]*layout.SpaceLayoutMapping

	floating       map[tree.WindowID]bool
	activeFloating map[tree.SpaceID]map[int32]map[tree.WindowID]bool

	focusedWindow     *tree.WindowID
	lastFloatingFocus *tree.WindowID

	viewports  map[tree.LayoutID]*viewport.Viewport
	layoutKind map[tree.LayoutID]config.LayoutKind

	defaultLayoutKind config.LayoutKind
	scrollCfg         config.Scroll
	scrollEnabled     bool

	resize *interactiveResize
	move   *interactiveMove
}

// New returns an empty manager with no spaces mapped yet.
func New() *LayoutManager {
	return &LayoutManager{
		lt:             layout.NewTree(),
		mapping:        make(map[tree.SpaceID]*layout.SpaceLayoutMapping),
		floating:       make(map[tree.WindowID]bool),
		activeFloating: make(map[tree.SpaceID]map[int32]map[tree.WindowID]bool),
		viewports:      make(map[tree.LayoutID]*viewport.Viewport),
		layoutKind:     make(map[tree.LayoutID]config.LayoutKind),
	}
}

// SetConfig re-seeds the manager's non-persisted configuration: the
// scroll gate, the default layout kind, and (if the scroll gate was just
// turned off) downgrades any active scroll layouts back to tree-kind.
func (m *LayoutManager) SetConfig(cfg *config.Config) {
	m.scrollCfg = cfg.Scroll
	m.scrollEnabled = cfg.Scroll.Enable

	m.defaultLayoutKind = cfg.DefaultLayoutKind
	if !m.scrollEnabled && m.defaultLayoutKind == config.KindScroll {
		slog.Warn("ignoring default_layout_kind=scroll because scroll.enable=false")
		m.defaultLayoutKind = config.KindTree
	}
	if !m.scrollEnabled {
		for space := range m.mapping {
			m.ensureLayoutKindAllowed(space)
		}
	}
}

func (m *LayoutManager) tryLayout(space tree.SpaceID) (tree.LayoutID, bool) {
	mp, ok := m.mapping[space]
	if !ok {
		return tree.LayoutID{}, false
	}
	return mp.ActiveLayout(), true
}

func (m *LayoutManager) layout(space tree.SpaceID) tree.LayoutID {
	l, _ := m.tryLayout(space)
	return l
}

func (m *LayoutManager) isScrollLayout(id tree.LayoutID) bool {
	return m.layoutKind[id] == config.KindScroll
}

func (m *LayoutManager) ensureLayoutKindAllowed(space tree.SpaceID) {
	if m.scrollEnabled {
		return
	}
	layoutID, ok := m.tryLayout(space)
	if !ok || !m.isScrollLayout(layoutID) {
		return
	}
	slog.Debug("converting scroll layout to tree because scroll gate is disabled", "space", space)
	newLayout := m.convertLayoutKind(layoutID, config.KindTree)
	if mp := m.mapping[space]; mp != nil && mp.ActiveLayout() == layoutID {
		mp.ReplaceActiveLayout(newLayout)
	}
	delete(m.viewports, layoutID)
}

// convertLayoutKind rebuilds layoutID's windows into a freshly created
// layout of newKind, preserving window order and current selection, and
// returns the new layout's id. Returns layoutID unchanged if it is
// already newKind.
func (m *LayoutManager) convertLayoutKind(layoutID tree.LayoutID, newKind config.LayoutKind) tree.LayoutID {
	if m.layoutKind[layoutID] == newKind {
		return layoutID
	}

	selected, _ := m.lt.WindowAt(m.lt.EffectiveFocus(layoutID))
	var windows []tree.WindowID
	m.lt.Nodes.WalkPostorder(layoutID.Root(), func(n tree.NodeID) {
		if wid, ok := m.lt.WindowAt(n); ok {
			windows = append(windows, wid)
		}
	})

	newLayout := m.lt.CreateLayout(m.lt.Label(layoutID))
	m.layoutKind[newLayout] = newKind

	for _, wid := range windows {
		m.lt.RemoveWindow(wid)
		if newKind == config.KindScroll {
			m.lt.AddWindowToScrollColumn(newLayout, wid, true)
		} else {
			node := m.lt.AddWindowAfter(m.lt.EffectiveFocus(newLayout), wid)
			m.lt.Select(node)
		}
	}

	focusWid := selected
	if m.focusedWindow != nil {
		focusWid = *m.focusedWindow
	}
	if focusWid != (tree.WindowID{}) {
		if node, ok := m.lt.WindowNode(newLayout, focusWid); ok {
			m.lt.Select(node)
		}
	}
	return newLayout
}

// DebugTree returns an indented dump of space's active layout, for
// debug-level logging only.
func (m *LayoutManager) DebugTree(space tree.SpaceID) string {
	layoutID, ok := m.tryLayout(space)
	if !ok {
		return "no layout for space"
	}
	var b []byte
	var walk func(n tree.NodeID, depth int)
	walk = func(n tree.NodeID, depth int) {
		for i := 0; i < depth; i++ {
			b = append(b, ' ', ' ')
		}
		if wid, ok := m.lt.WindowAt(n); ok {
			b = append(b, []byte(wid.String())...)
		} else {
			b = append(b, []byte(m.lt.ContainerKind(n).String())...)
		}
		b = append(b, '\n')
		for _, c := range m.lt.Nodes.Children(n) {
			walk(c, depth+1)
		}
	}
	walk(layoutID.Root(), 0)
	return string(b)
}

func (m *LayoutManager) isFloating() bool {
	return m.focusedWindow != nil && m.floating[*m.focusedWindow]
}

func (m *LayoutManager) addFloatingWindow(wid tree.WindowID, space *tree.SpaceID) {
	if space != nil {
		byPID := m.activeFloating[*space]
		if byPID == nil {
			byPID = make(map[int32]map[tree.WindowID]bool)
			m.activeFloating[*space] = byPID
		}
		set := byPID[wid.PID]
		if set == nil {
			set = make(map[tree.WindowID]bool)
			byPID[wid.PID] = set
		}
		set[wid] = true
	}
	m.floating[wid] = true
}

func (m *LayoutManager) removeFloatingWindow(wid tree.WindowID, space *tree.SpaceID) {
	if space != nil {
		layoutID, ok := m.tryLayout(*space)
		if ok {
			node := m.lt.AddWindowAfter(m.lt.EffectiveFocus(layoutID), wid)
			m.lt.Select(node)
		}
		if byPID := m.activeFloating[*space]; byPID != nil {
			if set := byPID[wid.PID]; set != nil {
				delete(set, wid)
			}
		}
	}
	delete(m.floating, wid)
}

// CalculateLayout derives window rectangles for space's active layout,
// applying its viewport offset if it is a scroll layout.
func (m *LayoutManager) CalculateLayout(space tree.SpaceID, screen geom.Rect, cfg *config.Config, now time.Time) []layout.WindowFrame {
	layoutID := m.layout(space)
	frames := m.lt.CalculateLayout(layoutID, screen, cfg)
	if m.scrollEnabled && m.isScrollLayout(layoutID) {
		if vp := m.viewports[layoutID]; vp != nil {
			return applyViewport(vp, screen, frames, now)
		}
	}
	return frames
}

// CalculateLayoutAndGroups is CalculateLayout plus group-indicator
// records. The group records are returned as the layout computes them;
// whether the focused window is floating does not change them.
func (m *LayoutManager) CalculateLayoutAndGroups(space tree.SpaceID, screen geom.Rect, cfg *config.Config, now time.Time) ([]layout.WindowFrame, []layout.GroupInfo) {
	layoutID := m.layout(space)
	frames, groups := m.lt.CalculateLayoutAndGroups(layoutID, screen, cfg)
	if m.scrollEnabled && m.isScrollLayout(layoutID) {
		if vp := m.viewports[layoutID]; vp != nil {
			frames = applyViewport(vp, screen, frames, now)
		}
	}
	return frames, groups
}

func applyViewport(vp *viewport.Viewport, screen geom.Rect, frames []layout.WindowFrame, now time.Time) []layout.WindowFrame {
	in := make([]viewport.Frame[tree.WindowID], len(frames))
	for i, f := range frames {
		in[i] = viewport.Frame[tree.WindowID]{Key: f.Window, Rect: f.Rect}
	}
	out := viewport.ApplyToFrames(vp, screen, in, now)
	result := make([]layout.WindowFrame, len(out))
	for i, f := range out {
		result[i] = layout.WindowFrame{Window: f.Key, Rect: f.Rect}
	}
	return result
}

func (m *LayoutManager) scrollConfig() config.Scroll { return m.scrollCfg }

func (m *LayoutManager) addScrollWindow(layoutID tree.LayoutID, wid tree.WindowID) {
	newColumn := m.scrollConfig().NewWindowInColumn == config.NewWindowAfterFocused
	m.lt.AddWindowToScrollColumn(layoutID, wid, newColumn)
}

// Viewport returns layoutID's viewport, if one has been created.
func (m *LayoutManager) Viewport(layoutID tree.LayoutID) (*viewport.Viewport, bool) {
	vp, ok := m.viewports[layoutID]
	return vp, ok
}

// ViewportFor returns (creating if necessary) layoutID's viewport sized
// for screenWidth.
func (m *LayoutManager) ViewportFor(layoutID tree.LayoutID, screenWidth float64) *viewport.Viewport {
	vp, ok := m.viewports[layoutID]
	if !ok {
		vp = viewport.New(screenWidth)
		m.viewports[layoutID] = vp
	}
	return vp
}

// ClearUserScrolling clears space's viewport's manual-scroll flag, so
// future focus changes resume auto-centering.
func (m *LayoutManager) ClearUserScrolling(space tree.SpaceID) {
	layoutID := m.layout(space)
	if vp, ok := m.viewports[layoutID]; ok {
		vp.UserScrolling = false
	}
}

// UpdateViewportForFocus re-centers space's viewport on the selected
// column, unless scrolling is disabled, the layout isn't scroll-kind, or
// the user is mid-scroll.
func (m *LayoutManager) UpdateViewportForFocus(space tree.SpaceID, screen geom.Rect, cfg *config.Config, now time.Time) {
	if !m.scrollEnabled {
		return
	}
	layoutID := m.layout(space)
	if !m.isScrollLayout(layoutID) {
		return
	}
	if vp, ok := m.viewports[layoutID]; ok && vp.UserScrolling {
		return
	}

	frames := m.lt.CalculateLayout(layoutID, screen, cfg)
	selection := m.lt.EffectiveFocus(layoutID)
	selWid, ok := m.lt.WindowAt(selection)
	if !ok {
		return
	}
	col, colOK := m.lt.ColumnOf(layoutID, selection)
	if !colOK {
		return
	}
	columns := m.lt.Columns(layoutID)
	colIdx := 0
	for i, c := range columns {
		if c == col {
			colIdx = i
			break
		}
	}

	vp := m.ViewportFor(layoutID, screen.Size.W)
	vp.SetScreenWidth(screen.Size.W)
	for _, f := range frames {
		if f.Window == selWid {
			vp.EnsureColumnVisible(colIdx, f.Rect.Origin.X, f.Rect.Size.W, cfg.Scroll.CenterFocusedColumn, cfg.InnerGap, now)
			break
		}
	}
}

// HasActiveScrollAnimation reports whether any layout's viewport has an
// unsettled spring.
func (m *LayoutManager) HasActiveScrollAnimation(now time.Time) bool {
	if !m.scrollEnabled {
		return false
	}
	for _, vp := range m.viewports {
		if vp.IsAnimating(now) {
			return true
		}
	}
	return false
}

// TickViewports settles every completed viewport animation. Callers
// invoke this once per frame from their own run loop.
func (m *LayoutManager) TickViewports(now time.Time) {
	for _, vp := range m.viewports {
		vp.Tick(now)
	}
}

// HandleScrollWheel accumulates a trackpad/wheel delta against the space's
// scroll viewport and steps the selection by whole columns once the
// accumulated distance crosses a column-width threshold. A discrete wheel
// tick (an integral delta under 10 points, the signature of a physical
// mouse wheel rather than a trackpad) always steps by exactly one column's
// worth of threshold regardless of its magnitude, so one click of a wheel
// never free-scrolls a fraction of a column.
func (m *LayoutManager) HandleScrollWheel(space tree.SpaceID, deltaX float64, screen geom.Rect, cfg *config.Config) EventResponse {
	if !m.scrollEnabled {
		return EventResponse{}
	}
	layoutID := m.layout(space)
	if !m.isScrollLayout(layoutID) {
		return EventResponse{}
	}
	columns := m.lt.Columns(layoutID)
	if len(columns) == 0 {
		return EventResponse{}
	}
	colCount := len(columns)
	if colCount > 3 {
		colCount = 3
	}
	stepThreshold := screen.Size.W / float64(colCount)

	delta := deltaX
	if cfg.Scroll.InvertScrollDirection {
		delta = -delta
	}
	scaledDelta := delta * cfg.Scroll.ScrollSensitivity

	isDiscrete := deltaX < 10 && deltaX > -10 && deltaX == float64(int64(deltaX))
	effectiveDelta := scaledDelta
	if isDiscrete {
		// signum convention: zero (and positive) delta steps forward by one
		// column, only a strictly negative delta steps backward.
		sign := 1.0
		if scaledDelta < 0 {
			sign = -1.0
		}
		effectiveDelta = sign * stepThreshold
	}

	vp := m.ViewportFor(layoutID, screen.Size.W)
	vp.SetScreenWidth(screen.Size.W)
	steps, ok := vp.AccumulateScroll(effectiveDelta, stepThreshold)
	if !ok {
		return EventResponse{}
	}

	selection := m.lt.EffectiveFocus(layoutID)
	dir := tree.Left
	if steps < 0 {
		dir = tree.Right
	}
	absSteps := steps
	if absSteps < 0 {
		absSteps = -absSteps
	}
	if absSteps > 16 {
		absSteps = 16
	}

	current := selection
	for i := 0; i < absSteps; i++ {
		var next tree.NodeID
		var found bool
		if m.scrollCfg.InfiniteLoop {
			next, found = m.lt.TraverseScrollWrapping(layoutID, current, dir)
		} else {
			next, found = m.lt.Traverse(current, dir)
		}
		if !found {
			break
		}
		current = next
	}
	if current == selection {
		return EventResponse{}
	}

	m.ClearUserScrolling(space)
	var focusPtr *tree.WindowID
	if wid, ok := m.lt.WindowAt(current); ok {
		focusPtr = &wid
	}
	raise := m.lt.SelectReturningSurfacedWindows(current)
	return EventResponse{FocusWindow: focusPtr, RaiseWindows: raise}
}

func (m *LayoutManager) hitTestWindow(layoutID tree.LayoutID, point geom.Vector2, screen geom.Rect, cfg *config.Config, now time.Time) (tree.NodeID, bool) {
	frames := m.lt.CalculateLayout(layoutID, screen, cfg)
	if m.scrollEnabled && m.isScrollLayout(layoutID) {
		if vp := m.viewports[layoutID]; vp != nil {
			frames = applyViewport(vp, screen, frames, now)
		}
	}
	for _, f := range frames {
		if f.Rect.Origin.X <= point.X && point.X <= f.Rect.MaxX() && f.Rect.Origin.Y <= point.Y && point.Y <= f.Rect.MaxY() {
			if node, ok := m.lt.WindowNode(layoutID, f.Window); ok {
				return node, true
			}
		}
	}
	return tree.NodeID{}, false
}

// HitTestScrollWindow returns the window (and its node) under point, for
// a scroll-kind layout on an enabled scroll gate.
func (m *LayoutManager) HitTestScrollWindow(space tree.SpaceID, point geom.Vector2, screen geom.Rect, cfg *config.Config, now time.Time) (tree.WindowID, tree.NodeID, bool) {
	if !m.scrollEnabled {
		return tree.WindowID{}, tree.NodeID{}, false
	}
	layoutID, ok := m.tryLayout(space)
	if !ok || !m.isScrollLayout(layoutID) {
		return tree.WindowID{}, tree.NodeID{}, false
	}
	frames := m.lt.CalculateLayout(layoutID, screen, cfg)
	if vp := m.viewports[layoutID]; vp != nil {
		frames = applyViewport(vp, screen, frames, now)
	}
	for _, f := range frames {
		if f.Rect.Origin.X <= point.X && point.X <= f.Rect.MaxX() && f.Rect.Origin.Y <= point.Y && point.Y <= f.Rect.MaxY() {
			if node, ok := m.lt.WindowNode(layoutID, f.Window); ok {
				return f.Window, node, true
			}
		}
	}
	return tree.WindowID{}, tree.NodeID{}, false
}

// HitTestScrollEdges reports the column, window and edge set under point,
// for starting an interactive resize.
func (m *LayoutManager) HitTestScrollEdges(space tree.SpaceID, point geom.Vector2, screen geom.Rect, cfg *config.Config, now time.Time) (column, window tree.NodeID, edges ResizeEdge, ok bool) {
	if !m.scrollEnabled {
		return
	}
	layoutID, layoutOK := m.tryLayout(space)
	if !layoutOK || !m.isScrollLayout(layoutID) {
		return
	}
	frames := m.lt.CalculateLayout(layoutID, screen, cfg)
	if vp := m.viewports[layoutID]; vp != nil {
		frames = applyViewport(vp, screen, frames, now)
	}
	for _, f := range frames {
		e := detectEdges(point, f.Rect)
		if e.IsEmpty() {
			continue
		}
		node, wOK := m.lt.WindowNode(layoutID, f.Window)
		if !wOK {
			continue
		}
		col, cOK := m.lt.ColumnOf(layoutID, node)
		if !cOK {
			continue
		}
		return col, node, e, true
	}
	return
}
