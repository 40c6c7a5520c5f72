package layout

import (
	"github.com/glide-wm/glide/config"
	"github.com/glide-wm/glide/geom"
	"github.com/glide-wm/glide/tree"
)

// GroupInfo describes one Tabbed/Stacked container for the host's group
// indicator view.
type GroupInfo struct {
	NodeID        tree.NodeID
	ContainerKind ContainerKind
	IndicatorRect geom.Rect
	TotalCount    int
	SelectedIndex int
	IsVisible     bool
	IsSelected    bool
}

// CalculateLayout derives window rectangles for a layout, without group
// metadata.
func (lt *Tree) CalculateLayout(layout tree.LayoutID, screen geom.Rect, cfg *config.Config) []WindowFrame {
	frames, _ := lt.calculate(layout, screen, cfg, false)
	return frames
}

// WindowFrame pairs a window id with its derived rectangle.
type WindowFrame struct {
	Window tree.WindowID
	Rect   geom.Rect
}

// CalculateLayoutAndGroups derives window rectangles and group-indicator
// records for a layout.
func (lt *Tree) CalculateLayoutAndGroups(layout tree.LayoutID, screen geom.Rect, cfg *config.Config) ([]WindowFrame, []GroupInfo) {
	return lt.calculate(layout, screen, cfg, true)
}

func (lt *Tree) calculate(layout tree.LayoutID, screen geom.Rect, cfg *config.Config, withGroups bool) ([]WindowFrame, []GroupInfo) {
	root := layout.Root()
	var fullscreenNodes []tree.NodeID
	if withGroups {
		lt.Nodes.WalkPostorder(root, func(n tree.NodeID) {
			if lt.Info.IsFullscreen(n) {
				fullscreenNodes = append(fullscreenNodes, n)
			}
		})
	}

	v := &visitor{
		lt:              lt,
		cfg:             cfg,
		screen:          screen,
		fullscreenNodes: fullscreenNodes,
	}
	if withGroups {
		v.collectGroups = true
	}

	parentVisible := containsNode(fullscreenNodes, root)
	v.visitNode(root, screen, true, parentVisible, true)
	return v.frames, v.groups
}

func containsNode(haystack []tree.NodeID, needle tree.NodeID) bool {
	for _, n := range haystack {
		if n == needle {
			return true
		}
	}
	return false
}

type visitor struct {
	lt              *Tree
	cfg             *config.Config
	screen          geom.Rect
	fullscreenNodes []tree.NodeID
	collectGroups   bool
	frames          []WindowFrame
	groups          []GroupInfo
}

func (v *visitor) visitNode(node tree.NodeID, rect geom.Rect, isInVisibilityPath, isParentVisible, isSelected bool) {
	lt := v.lt
	if lt.Info.IsFullscreen(node) {
		rect = v.screen
	}

	if wid, ok := lt.Windows.WindowFor(node); ok {
		v.frames = append(v.frames, WindowFrame{Window: wid, Rect: rect})
		return
	}

	kind := lt.Info.Kind(node)
	switch kind {
	case KindTabbed, KindStacked:
		v.visitGroup(node, kind, rect, isInVisibilityPath, isParentVisible, isSelected)
	case KindHorizontal:
		v.visitPartition(node, rect, tree.Horizontal, isInVisibilityPath, isParentVisible, isSelected)
	default:
		v.visitPartition(node, rect, tree.Vertical, isInVisibilityPath, isParentVisible, isSelected)
	}
}

func (v *visitor) visitGroup(node tree.NodeID, kind ContainerKind, rect geom.Rect, isInVisibilityPath, isParentVisible, isSelected bool) {
	lt := v.lt
	var groupFrame, indicatorFrame geom.Rect
	if v.cfg.GroupIndicators.Enable {
		groupFrame, indicatorFrame = sizeWithGroupIndicator(rect, kind, &v.cfg.GroupIndicators)
	} else {
		groupFrame = rect
	}

	// A group is visible iff it sits on the active visibility path, and
	// either its parent is visible, there are no fullscreen nodes at all,
	// or this very node is one of them.
	isVisible := isInVisibilityPath &&
		(isParentVisible || len(v.fullscreenNodes) == 0 || containsNode(v.fullscreenNodes, node))

	selectedChild := lt.Selection.SelectedChild(lt.Nodes, node)
	selectedIndex := 0
	numChildren := 0
	for i, child := range lt.Nodes.Children(node) {
		selected := child == selectedChild
		if selected {
			selectedIndex = i
		}
		numChildren++
		v.visitNode(child, groupFrame, isInVisibilityPath && selected, isVisible, isSelected && selected)
	}

	if v.collectGroups {
		v.groups = append(v.groups, GroupInfo{
			NodeID:        node,
			ContainerKind: kind,
			IndicatorRect: indicatorFrame,
			TotalCount:    numChildren,
			SelectedIndex: selectedIndex,
			IsVisible:     isVisible,
			IsSelected:    isSelected,
		})
	}
}

func (v *visitor) visitPartition(node tree.NodeID, rect geom.Rect, orientation tree.Orientation, isInVisibilityPath, isParentVisible, isSelected bool) {
	lt := v.lt
	total := lt.Info.Total(node)
	localSelection := lt.Selection.SelectedChild(lt.Nodes, node)

	if orientation == tree.Horizontal {
		x := rect.Origin.X
		for _, child := range lt.Nodes.Children(node) {
			ratio := lt.Info.Size(child) / total
			childRect := geom.NewRect(x, rect.Origin.Y, rect.Size.W*ratio, rect.Size.H).Round()
			v.visitNode(child, childRect, isInVisibilityPath, isParentVisible, isSelected && child == localSelection)
			x = childRect.MaxX()
		}
		return
	}

	y := rect.Origin.Y
	for _, child := range lt.Nodes.Children(node) {
		ratio := lt.Info.Size(child) / total
		childRect := geom.NewRect(rect.Origin.X, y, rect.Size.W, rect.Size.H*ratio).Round()
		v.visitNode(child, childRect, isInVisibilityPath, isParentVisible, isSelected && child == localSelection)
		y = childRect.MaxY()
	}
}

// sizeWithGroupIndicator splits rect into the group's content frame and
// the indicator strip, reserving config.BarThickness along the configured
// edge.
func sizeWithGroupIndicator(rect geom.Rect, kind ContainerKind, cfg *config.GroupIndicators) (group, indicator geom.Rect) {
	thickness := cfg.BarThickness
	switch kind {
	case KindTabbed:
		switch cfg.HorizontalPlacement {
		case config.Top:
			group = geom.NewRect(rect.Origin.X, rect.Origin.Y+thickness, rect.Size.W, rect.Size.H-thickness)
			indicator = geom.NewRect(rect.Origin.X, rect.Origin.Y, rect.Size.W, thickness)
		default: // Bottom
			group = geom.NewRect(rect.Origin.X, rect.Origin.Y, rect.Size.W, rect.Size.H-thickness)
			indicator = geom.NewRect(rect.Origin.X, rect.Origin.Y+group.Size.H, rect.Size.W, thickness)
		}
	case KindStacked:
		switch cfg.VerticalPlacement {
		case config.PlacementLeft:
			group = geom.NewRect(rect.Origin.X+thickness, rect.Origin.Y, rect.Size.W-thickness, rect.Size.H)
			indicator = geom.NewRect(rect.Origin.X, rect.Origin.Y, thickness, rect.Size.H)
		default: // Right
			group = geom.NewRect(rect.Origin.X, rect.Origin.Y, rect.Size.W-thickness, rect.Size.H)
			indicator = geom.NewRect(rect.Origin.X+group.Size.W, rect.Origin.Y, thickness, rect.Size.H)
		}
	default:
		group = rect
	}
	return group, indicator
}
