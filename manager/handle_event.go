package manager

import (
	"github.com/glide-wm/glide/layout"
	"github.com/glide-wm/glide/tree"
)

// HandleEvent applies a host notification to the manager's state and
// returns whatever raise/focus response the host should act on.
func (m *LayoutManager) HandleEvent(event Event) EventResponse {
	switch event.Kind {
	case SpaceExposed:
		mp, ok := m.mapping[event.Space]
		if !ok {
			mp = layout.NewSpaceLayoutMapping(event.Size, m.lt, m.defaultLayoutKind)
			m.mapping[event.Space] = mp
			m.layoutKind[mp.ActiveLayout()] = m.defaultLayoutKind
		}
		active := mp.ActivateSize(event.Size, m.lt)
		if _, ok := m.layoutKind[active]; !ok {
			m.layoutKind[active] = m.layoutKind[mp.Layouts()[mp.ActiveLayoutIndex()]]
		}
		m.ensureLayoutKindAllowed(event.Space)

	case WindowsOnScreenUpdated:
		m.handleWindowsOnScreenUpdated(event)

	case AppsRunningUpdated:
		m.lt.RetainApps(func(pid int32) bool { return event.RunningPIDs[pid] })

	case AppClosed:
		m.lt.RemoveWindowsForApp(event.PID)
		for wid := range m.floating {
			if wid.PID == event.PID {
				delete(m.floating, wid)
			}
		}

	case WindowAdded:
		switch ClassifyWindow(event.Info) {
		case FloatByDefault:
			m.addFloatingWindow(event.Window, &event.Space)
		case Regular:
			layoutID := m.layout(event.Space)
			if m.scrollEnabled && m.isScrollLayout(layoutID) {
				m.addScrollWindow(layoutID, event.Window)
			} else {
				node := m.lt.AddWindowAfter(m.lt.EffectiveFocus(layoutID), event.Window)
				m.lt.Select(node)
			}
		case Untracked:
		}

	case WindowRemoved:
		m.lt.RemoveWindow(event.Window)
		delete(m.floating, event.Window)

	case WindowFocused:
		m.focusedWindow = &event.Window
		if m.floating[event.Window] {
			m.lastFloatingFocus = &event.Window
		} else {
			for _, space := range event.Spaces {
				m.ClearUserScrolling(space)
			}
			for _, space := range event.Spaces {
				layoutID := m.layout(space)
				if node, ok := m.lt.WindowNode(layoutID, event.Window); ok {
					m.lt.Select(node)
				}
			}
		}

	case WindowResized:
		for _, sp := range event.Screens {
			layoutID := m.layout(sp.Space)
			node, ok := m.lt.WindowNode(layoutID, event.Window)
			if !ok {
				continue
			}
			if !sp.Screen.Size.Contains(event.OldFrame.Size) || !sp.Screen.Size.Contains(event.NewFrame.Size) {
				continue
			}
			if event.NewFrame.Equal(sp.Screen) {
				m.lt.SetFullscreen(node, true)
			} else if m.lt.IsFullscreen(node) {
				m.lt.SetFullscreen(node, false)
			} else {
				m.lt.SetFrameFromResize(node, event.OldFrame, event.NewFrame, sp.Screen)
			}
		}

	case MouseMovedOverWindow:
		return m.handleMouseMovedOverWindow(event)
	}
	return EventResponse{}
}

func (m *LayoutManager) handleWindowsOnScreenUpdated(event Event) {
	space := event.Space
	pid := event.PID

	windowMap := make(map[tree.WindowID]WindowInfo, len(event.Windows))
	for _, w := range event.Windows {
		windowMap[w.Window] = w.Info
	}
	if m.lastFloatingFocus != nil && m.lastFloatingFocus.PID == pid {
		if _, stillOnScreen := windowMap[*m.lastFloatingFocus]; !stillOnScreen {
			m.lastFloatingFocus = nil
		}
	}

	layoutID := m.layout(space)
	byPID := m.activeFloating[space]
	if byPID == nil {
		byPID = make(map[int32]map[tree.WindowID]bool)
		m.activeFloating[space] = byPID
	}
	floatingActive := byPID[pid]
	if floatingActive == nil {
		floatingActive = make(map[tree.WindowID]bool)
		byPID[pid] = floatingActive
	} else {
		for wid := range floatingActive {
			delete(floatingActive, wid)
		}
	}

	var addFloating []tree.WindowID
	var newWindows []tree.WindowID
	var treeWindows []tree.WindowID

	for _, w := range event.Windows {
		wid := w.Window
		if m.floating[wid] {
			floatingActive[wid] = true
			continue
		}
		if _, ok := m.lt.WindowNode(layoutID, wid); ok {
			treeWindows = append(treeWindows, wid)
			continue
		}
		switch ClassifyWindow(w.Info) {
		case Untracked:
		case FloatByDefault:
			addFloating = append(addFloating, wid)
		case Regular:
			if m.scrollEnabled && m.isScrollLayout(layoutID) {
				newWindows = append(newWindows, wid)
			} else {
				treeWindows = append(treeWindows, wid)
			}
		}
	}

	m.lt.SetWindowsForApp(layoutID, pid, treeWindows)
	for _, wid := range newWindows {
		m.addScrollWindow(layoutID, wid)
	}
	for _, wid := range addFloating {
		m.addFloatingWindow(wid, &space)
	}
}

// windowTracked reports whether wid is known to the manager at all, either
// as a tiled window in space's layout tree or as a floating window. Floating
// windows never get tree nodes, so WindowNode alone cannot answer this.
func (m *LayoutManager) windowTracked(space tree.SpaceID, wid tree.WindowID) bool {
	if m.floating[wid] {
		return true
	}
	_, ok := m.lt.WindowNode(m.layout(space), wid)
	return ok
}

func (m *LayoutManager) handleMouseMovedOverWindow(event Event) EventResponse {
	if event.CurrentMain == nil {
		return EventResponse{}
	}
	curSpace, curWid := event.CurrentMain.Space, event.CurrentMain.Window
	newSpace, newWid := event.Over.Space, event.Over.Window

	if !m.windowTracked(curSpace, curWid) {
		return EventResponse{}
	}
	if !m.windowTracked(newSpace, newWid) {
		return EventResponse{}
	}

	curFloating := m.floating[curWid]
	newFloating := m.floating[newWid]
	if curFloating != newFloating {
		return EventResponse{}
	}

	focus := newWid
	return EventResponse{FocusWindow: &focus}
}
