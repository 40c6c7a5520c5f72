package manager

import (
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/glide-wm/glide/config"
	"github.com/glide-wm/glide/errs"
	"github.com/glide-wm/glide/layout"
	"github.com/glide-wm/glide/tree"
)

// persistedWindowID mirrors tree.WindowID with field names stable across
// format revisions, independent of whatever internal layout WindowID ends
// up with.
type persistedWindowID struct {
	PID int32  `toml:"pid"`
	Seq uint32 `toml:"seq"`
}

// persistedNode is one node of a saved layout tree. Leaves carry Window;
// interior nodes carry Container and Children. Size is the node's
// proportional share of its parent's total (meaningless, and omitted, for
// a layout root).
type persistedNode struct {
	Container  string             `toml:"container,omitempty"`
	Size       float64            `toml:"size,omitempty"`
	Window     *persistedWindowID `toml:"window,omitempty"`
	Fullscreen bool               `toml:"fullscreen,omitempty"`
	Children   []persistedNode    `toml:"children,omitempty"`
}

// persistedLayout is one named layout belonging to a space.
type persistedLayout struct {
	Label string        `toml:"label"`
	Kind  string        `toml:"kind"`
	Root  persistedNode `toml:"root"`
}

// persistedSpace is one space's named layouts and which is active.
type persistedSpace struct {
	Space       uint32            `toml:"space"`
	ActiveIndex int               `toml:"active_index"`
	Layouts     []persistedLayout `toml:"layouts"`
}

// persistedState is the full on-disk format written by Save and read by
// Load. Fields are named for what they hold, not for any internal type, so
// a future revision can add fields without breaking decode of an older
// file, and an older loader ignores fields it doesn't recognize.
//
// Deliberately absent: the scroll gate, default layout kind, viewports,
// interactive drag state, and the per-screen-size variant cache. These are
// either host configuration (re-seeded via SetConfig after Load) or purely
// derived state that is cheaper to recompute than to persist faithfully.
type persistedState struct {
	Spaces          []persistedSpace    `toml:"spaces"`
	FloatingWindows []persistedWindowID `toml:"floating_windows"`
}

func containerKindString(k layout.ContainerKind) string { return k.String() }

func parseContainerKind(s string) (layout.ContainerKind, bool) {
	switch s {
	case "horizontal":
		return layout.KindHorizontal, true
	case "vertical":
		return layout.KindVertical, true
	case "tabbed":
		return layout.KindTabbed, true
	case "stacked":
		return layout.KindStacked, true
	default:
		return 0, false
	}
}

func layoutKindString(k config.LayoutKind) string {
	if k == config.KindScroll {
		return "scroll"
	}
	return "tree"
}

func parseLayoutKind(s string) config.LayoutKind {
	if s == "scroll" {
		return config.KindScroll
	}
	return config.KindTree
}

// Save writes m's tree, per-space layout mappings, and floating set to
// path in TOML, overwriting any existing file. At each space's active
// index, the layout saved is the screen-size variant currently active, the
// one that holds the space's windows.
func Save(m *LayoutManager, path string) error {
	data, err := toml.Marshal(snapshotState(m))
	if err != nil {
		return errs.Log(err)
	}
	return errs.Log(os.WriteFile(path, data, 0o644))
}

// Load rebuilds a LayoutManager from a file written by Save. The returned
// manager still needs SetConfig called on it before use, since persisted
// state never includes host configuration.
func Load(path string) (*LayoutManager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Log(err)
	}
	var st persistedState
	if err := toml.Unmarshal(data, &st); err != nil {
		return nil, errs.Log(err)
	}
	return restoreState(st), nil
}

func snapshotState(m *LayoutManager) persistedState {
	var st persistedState
	for space, mp := range m.mapping {
		ps := persistedSpace{Space: uint32(space), ActiveIndex: mp.ActiveLayoutIndex()}
		for i, layoutID := range mp.Layouts() {
			if i == mp.ActiveLayoutIndex() {
				layoutID = mp.ActiveLayout()
			}
			ps.Layouts = append(ps.Layouts, persistedLayout{
				Label: m.lt.Label(layoutID),
				Kind:  layoutKindString(m.layoutKind[layoutID]),
				Root:  snapshotNode(m.lt, layoutID.Root()),
			})
		}
		st.Spaces = append(st.Spaces, ps)
	}
	sort.Slice(st.Spaces, func(i, j int) bool { return st.Spaces[i].Space < st.Spaces[j].Space })

	for wid := range m.floating {
		st.FloatingWindows = append(st.FloatingWindows, persistedWindowID{PID: wid.PID, Seq: wid.Seq})
	}
	sort.Slice(st.FloatingWindows, func(i, j int) bool {
		a, b := st.FloatingWindows[i], st.FloatingWindows[j]
		if a.PID != b.PID {
			return a.PID < b.PID
		}
		return a.Seq < b.Seq
	})
	return st
}

func snapshotNode(lt *layout.Tree, node tree.NodeID) persistedNode {
	if wid, ok := lt.WindowAt(node); ok {
		return persistedNode{Window: &persistedWindowID{PID: wid.PID, Seq: wid.Seq}}
	}
	pn := persistedNode{
		Container:  containerKindString(lt.ContainerKind(node)),
		Fullscreen: lt.IsFullscreen(node),
	}
	for _, c := range lt.Nodes.Children(node) {
		child := snapshotNode(lt, c)
		child.Size, _ = lt.Proportion(c)
		pn.Children = append(pn.Children, child)
	}
	return pn
}

func restoreState(st persistedState) *LayoutManager {
	m := New()
	for _, ps := range st.Spaces {
		var layouts []tree.LayoutID
		for _, pl := range ps.Layouts {
			layoutID := restoreLayout(m.lt, pl.Label, pl.Root)
			m.layoutKind[layoutID] = parseLayoutKind(pl.Kind)
			layouts = append(layouts, layoutID)
		}
		if len(layouts) == 0 {
			continue
		}
		m.mapping[tree.SpaceID(ps.Space)] = layout.NewSpaceLayoutMappingFromLayouts(layouts, ps.ActiveIndex)
	}
	for _, pw := range st.FloatingWindows {
		m.floating[tree.WindowID{PID: pw.PID, Seq: pw.Seq}] = true
	}
	return m
}

func restoreLayout(lt *layout.Tree, label string, root persistedNode) tree.LayoutID {
	layoutID := lt.CreateLayout(label)
	if kind, ok := parseContainerKind(root.Container); ok {
		lt.SetContainerKind(layoutID.Root(), kind)
	}
	lt.SetFullscreen(layoutID.Root(), root.Fullscreen)
	for _, child := range root.Children {
		restoreNode(lt, layoutID.Root(), child)
	}
	return layoutID
}

func restoreNode(lt *layout.Tree, parent tree.NodeID, pn persistedNode) {
	var node tree.NodeID
	if pn.Window != nil {
		node = lt.AddWindowUnder(parent, tree.WindowID{PID: pn.Window.PID, Seq: pn.Window.Seq})
	} else {
		kind, _ := parseContainerKind(pn.Container)
		node = lt.AddContainer(parent, kind)
		lt.SetFullscreen(node, pn.Fullscreen)
		for _, child := range pn.Children {
			restoreNode(lt, node, child)
		}
	}
	lt.Info.SetSizeAdjustingTotal(lt.Nodes, node, pn.Size)
}
