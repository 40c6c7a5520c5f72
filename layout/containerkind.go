// Package layout maintains the auxiliary indexes layered over a tree.Tree
// (proportional sizing, selection, window assignment), the layout-tree
// operations built on top of them, the arithmetic that turns a layout into
// window rectangles, the scroll-column constraint solver, and the
// per-space mapping between screen sizes and layout variants.
package layout

import "github.com/glide-wm/glide/tree"

// ContainerKind is the arrangement a container node uses for its children.
// Tabbed and Stacked are "group" kinds: only one child is ever visible.
type ContainerKind int

const (
	KindHorizontal ContainerKind = iota
	KindVertical
	KindTabbed
	KindStacked
)

// FromOrientation returns the plain (non-group) kind for an orientation.
func FromOrientation(o tree.Orientation) ContainerKind {
	if o == tree.Horizontal {
		return KindHorizontal
	}
	return KindVertical
}

// GroupKind returns the group kind for an orientation (Tabbed for
// Horizontal, Stacked for Vertical).
func GroupKind(o tree.Orientation) ContainerKind {
	if o == tree.Horizontal {
		return KindTabbed
	}
	return KindStacked
}

// Orientation returns the axis a container kind lays its children out
// along.
func (k ContainerKind) Orientation() tree.Orientation {
	switch k {
	case KindHorizontal, KindTabbed:
		return tree.Horizontal
	default:
		return tree.Vertical
	}
}

// IsGroup reports whether k is Tabbed or Stacked.
func (k ContainerKind) IsGroup() bool {
	return k == KindTabbed || k == KindStacked
}

func (k ContainerKind) String() string {
	switch k {
	case KindHorizontal:
		return "horizontal"
	case KindVertical:
		return "vertical"
	case KindTabbed:
		return "tabbed"
	case KindStacked:
		return "stacked"
	default:
		return "unknown"
	}
}
