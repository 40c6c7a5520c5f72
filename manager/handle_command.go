package manager

import (
	"fmt"

	"github.com/glide-wm/glide/config"
	"github.com/glide-wm/glide/errs"
	"github.com/glide-wm/glide/layout"
	"github.com/glide-wm/glide/tree"
)

// HandleCommand applies a host-issued command to space's active layout (or,
// for ToggleWindowFloating, to the focused window with no space at all) and
// returns whatever raise/focus response the host should act on.
//
// visibleSpaces orders the spaces currently on screen, for the wraparound
// next/previous-space fallback that MoveFocus and MoveNode use when a
// directional move runs off the edge of the current layout.
func (m *LayoutManager) HandleCommand(space *tree.SpaceID, visibleSpaces []tree.SpaceID, cmd Command) EventResponse {
	isFloating := m.isFloating()

	if !m.scrollEnabled && (cmd.Kind == CycleColumnWidth || cmd.Kind == ToggleColumnTabbed || cmd.Kind == ChangeLayoutKind) {
		errs.Log(fmt.Errorf("ignoring command %v because scroll layout is disabled", cmd.Kind))
		return EventResponse{}
	}

	if cmd.Kind == ToggleWindowFloating {
		if m.focusedWindow == nil {
			return EventResponse{}
		}
		wid := *m.focusedWindow
		if isFloating {
			m.removeFloatingWindow(wid, space)
			m.lastFloatingFocus = nil
		} else {
			m.addFloatingWindow(wid, space)
			m.lt.RemoveWindow(wid)
			m.lastFloatingFocus = &wid
		}
		return EventResponse{}
	}

	if space == nil {
		return EventResponse{}
	}
	mp, ok := m.mapping[*space]
	if !ok {
		errs.Log(fmt.Errorf("no layout mapping for space %v (command %v)", *space, cmd.Kind))
		return EventResponse{}
	}
	if cmd.ModifiesLayout() {
		mp.PrepareModify()
	}
	layoutID := mp.ActiveLayout()

	if cmd.Kind == ToggleFocusFloating {
		return m.toggleFocusFloating(*space, layoutID, isFloating)
	}

	if isFloating {
		return EventResponse{}
	}

	nextSpace := func(dir tree.Direction) (tree.SpaceID, bool) {
		if len(visibleSpaces) <= 1 {
			return tree.SpaceID(0), false
		}
		idx := -1
		for i, s := range visibleSpaces {
			if s == *space {
				idx = i
				break
			}
		}
		if idx < 0 {
			return tree.SpaceID(0), false
		}
		n := len(visibleSpaces)
		if dir == tree.Left || dir == tree.Up {
			idx--
		} else {
			idx++
		}
		idx = ((idx % n) + n) % n
		return visibleSpaces[idx], true
	}

	switch cmd.Kind {
	case NextLayout:
		newLayout := mp.ChangeLayoutIndex(1, m.scrollEnabled, m.isScrollLayout)
		m.reselectFocus(newLayout)
		return EventResponse{}

	case PrevLayout:
		newLayout := mp.ChangeLayoutIndex(-1, m.scrollEnabled, m.isScrollLayout)
		m.reselectFocus(newLayout)
		return EventResponse{}

	case MoveFocus:
		return m.moveFocus(*space, layoutID, cmd.Direction, nextSpace)

	case Ascend:
		m.lt.AscendSelection(layoutID)
		return EventResponse{}

	case Descend:
		m.lt.DescendSelection(layoutID)
		return EventResponse{}

	case MoveNode:
		selection := m.lt.EffectiveFocus(layoutID)
		if !m.lt.MoveNode(selection, cmd.Direction) {
			if newSpace, ok := nextSpace(cmd.Direction); ok {
				newLayout := m.layout(newSpace)
				m.lt.MoveNodeAfter(m.lt.EffectiveFocus(newLayout), selection)
			}
		}
		return EventResponse{}

	case Split:
		selection := m.lt.EffectiveFocus(layoutID)
		m.lt.NestInContainer(selection, layout.FromOrientation(cmd.Orientation))
		return EventResponse{}

	case Group:
		selection := m.lt.EffectiveFocus(layoutID)
		if parent := m.lt.Nodes.Parent(selection); !parent.IsNil() {
			m.lt.SetContainerKind(parent, layout.GroupKind(cmd.Orientation))
		}
		return EventResponse{}

	case Ungroup:
		selection := m.lt.EffectiveFocus(layoutID)
		if parent := m.lt.Nodes.Parent(selection); !parent.IsNil() {
			if m.lt.ContainerKind(parent).IsGroup() {
				m.lt.SetContainerKind(parent, m.lt.LastUngroupedContainerKind(parent))
			}
		}
		return EventResponse{}

	case ToggleFullscreen:
		node := m.lt.EffectiveFocus(layoutID)
		if m.lt.ToggleFullscreen(node) {
			var raise []tree.WindowID
			m.lt.Nodes.WalkPreorder(node, func(n tree.NodeID) {
				if wid, ok := m.lt.WindowAt(n); ok {
					raise = append(raise, wid)
				}
			})
			return EventResponse{RaiseWindows: raise}
		}
		return EventResponse{}

	case Resize:
		percent := cmd.Percent
		if percent > 100 {
			percent = 100
		} else if percent < -100 {
			percent = -100
		}
		node := m.lt.EffectiveFocus(layoutID)
		m.lt.Resize(node, percent/100, cmd.Direction)
		return EventResponse{}

	case CycleColumnWidth:
		return m.cycleColumnWidth(layoutID)

	case ToggleColumnTabbed:
		return m.toggleColumnTabbed(layoutID)

	case ChangeLayoutKind:
		return m.changeLayoutKind(mp, layoutID)
	}

	return EventResponse{}
}

func (m *LayoutManager) reselectFocus(newLayout tree.LayoutID) {
	if m.focusedWindow == nil {
		return
	}
	if node, ok := m.lt.WindowNode(newLayout, *m.focusedWindow); ok {
		m.lt.Select(node)
	}
}

func (m *LayoutManager) toggleFocusFloating(space tree.SpaceID, layoutID tree.LayoutID, isFloating bool) EventResponse {
	if isFloating {
		selection, _ := m.lt.WindowAt(m.lt.EffectiveFocus(layoutID))
		raise := m.lt.VisibleWindowsUnder(layoutID.Root())
		focus := selection
		if focus == (tree.WindowID{}) && len(raise) > 0 {
			focus = raise[len(raise)-1]
			raise = raise[:len(raise)-1]
		}
		var focusPtr *tree.WindowID
		if focus != (tree.WindowID{}) {
			f := focus
			focusPtr = &f
		}
		return EventResponse{RaiseWindows: raise, FocusWindow: focusPtr}
	}

	var raise []tree.WindowID
	for _, byPID := range m.activeFloating[space] {
		for wid := range byPID {
			if m.lastFloatingFocus == nil || *m.lastFloatingFocus != wid {
				raise = append(raise, wid)
			}
		}
	}
	var focusPtr *tree.WindowID
	if m.lastFloatingFocus != nil {
		f := *m.lastFloatingFocus
		focusPtr = &f
	} else if len(raise) > 0 {
		f := raise[len(raise)-1]
		raise = raise[:len(raise)-1]
		focusPtr = &f
	}
	return EventResponse{RaiseWindows: raise, FocusWindow: focusPtr}
}

func (m *LayoutManager) moveFocus(space tree.SpaceID, layoutID tree.LayoutID, dir tree.Direction, nextSpace func(tree.Direction) (tree.SpaceID, bool)) EventResponse {
	isScroll := m.isScrollLayout(layoutID)
	useWrapping := m.scrollEnabled && isScroll && m.scrollCfg.InfiniteLoop && (dir == tree.Left || dir == tree.Right)

	var newFocus tree.NodeID
	var found bool
	if useWrapping {
		newFocus, found = m.lt.TraverseScrollWrapping(layoutID, m.lt.EffectiveFocus(layoutID), dir)
	} else {
		newFocus, found = m.lt.Traverse(m.lt.EffectiveFocus(layoutID), dir)
	}
	if !found {
		if newSpace, ok := nextSpace(dir); ok {
			newFocus = m.lt.EffectiveFocus(m.layout(newSpace))
			found = true
		}
	}
	if !found {
		return EventResponse{}
	}
	if isScroll {
		m.ClearUserScrolling(space)
	}

	var focusPtr *tree.WindowID
	if wid, ok := m.lt.WindowAt(newFocus); ok {
		focusPtr = &wid
	}
	raise := m.lt.SelectReturningSurfacedWindows(newFocus)
	return EventResponse{FocusWindow: focusPtr, RaiseWindows: raise}
}

func (m *LayoutManager) cycleColumnWidth(layoutID tree.LayoutID) EventResponse {
	if !m.isScrollLayout(layoutID) {
		return EventResponse{}
	}
	presets := m.scrollCfg.ColumnWidthPresets
	if len(presets) == 0 {
		return EventResponse{}
	}
	selection := m.lt.EffectiveFocus(layoutID)
	col, ok := m.lt.ColumnOf(layoutID, selection)
	if !ok {
		return EventResponse{}
	}
	current, _ := m.lt.Proportion(col)
	if current == 0 {
		current = 1
	}
	next := presets[0]
	found := false
	for _, p := range presets {
		if p > current+0.01 {
			next = p
			found = true
			break
		}
	}
	if !found {
		next = presets[0]
	}
	delta := next - current
	if delta < 0 {
		delta = -delta
	}
	if delta > 0.001 {
		m.lt.Resize(col, next-current, tree.Right)
	}
	return EventResponse{}
}

func (m *LayoutManager) toggleColumnTabbed(layoutID tree.LayoutID) EventResponse {
	if !m.isScrollLayout(layoutID) {
		return EventResponse{}
	}
	selection := m.lt.EffectiveFocus(layoutID)
	col, ok := m.lt.ColumnOf(layoutID, selection)
	if !ok {
		return EventResponse{}
	}
	switch m.lt.ContainerKind(col) {
	case layout.KindVertical:
		m.lt.SetContainerKind(col, layout.KindTabbed)
	case layout.KindTabbed:
		m.lt.SetContainerKind(col, layout.KindVertical)
	}
	return EventResponse{}
}

func (m *LayoutManager) changeLayoutKind(mp *layout.SpaceLayoutMapping, layoutID tree.LayoutID) EventResponse {
	oldKind := m.layoutKind[layoutID]
	newKind := config.KindScroll
	if oldKind == config.KindScroll {
		newKind = config.KindTree
	}
	newLayout := m.convertLayoutKind(layoutID, newKind)
	mp.ReplaceActiveLayout(newLayout)
	delete(m.viewports, layoutID)
	return EventResponse{}
}
