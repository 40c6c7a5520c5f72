package layout

import (
	"github.com/glide-wm/glide/config"
	"github.com/glide-wm/glide/geom"
	"github.com/glide-wm/glide/tree"
)

// sizeBucket quantizes a screen size to a stable map key, so that
// screen sizes that round to the same whole pixel share a variant instead
// of spawning a new one per sub-pixel difference.
type sizeBucket struct {
	w, h int
}

func bucketOf(size geom.Size) sizeBucket {
	return sizeBucket{w: int(size.W + 0.5), h: int(size.H + 0.5)}
}

type sizeVariant struct {
	layout   tree.LayoutID
	modified bool
}

// SpaceLayoutMapping is one space's named layouts, the active selection
// among them, and the screen-size-bucket cache of scaled variants described
// in spec.md §4.4.
type SpaceLayoutMapping struct {
	order       []tree.LayoutID
	activeIndex int
	variants    map[sizeBucket]*sizeVariant
	lastBucket  sizeBucket
}

// NewSpaceLayoutMapping creates the first named layout for a space, sized
// for the space's initial exposure.
func NewSpaceLayoutMapping(size geom.Size, lt *Tree, kind config.LayoutKind) *SpaceLayoutMapping {
	// Both tree-kind and scroll-kind layouts root on a horizontal partition;
	// scroll behavior lives entirely in the viewport, not the container kind.
	_ = kind
	id := lt.CreateLayout("1")
	lt.SetContainerKind(id.Root(), KindHorizontal)

	bucket := bucketOf(size)
	m := &SpaceLayoutMapping{
		order:      []tree.LayoutID{id},
		variants:   map[sizeBucket]*sizeVariant{bucket: {layout: id}},
		lastBucket: bucket,
	}
	return m
}

// NewSpaceLayoutMappingFromLayouts restores a mapping from persisted named
// layouts and the previously active index. The screen-size-bucket cache is
// never persisted; it is rebuilt lazily by the next ActivateSize call for
// whatever size the host reports on restore.
func NewSpaceLayoutMappingFromLayouts(layouts []tree.LayoutID, activeIndex int) *SpaceLayoutMapping {
	if activeIndex < 0 || activeIndex >= len(layouts) {
		activeIndex = 0
	}
	return &SpaceLayoutMapping{
		order:       layouts,
		activeIndex: activeIndex,
		variants:    make(map[sizeBucket]*sizeVariant),
	}
}

// Layouts returns the space's named layouts in cycle order.
func (m *SpaceLayoutMapping) Layouts() []tree.LayoutID {
	out := make([]tree.LayoutID, len(m.order))
	copy(out, m.order)
	return out
}

// ActiveLayout returns the layout currently active for the most recently
// activated screen-size bucket.
func (m *SpaceLayoutMapping) ActiveLayout() tree.LayoutID {
	v, ok := m.variants[m.lastBucket]
	if !ok {
		return m.order[m.activeIndex]
	}
	return v.layout
}

// ActiveLayoutIndex returns the index into Layouts() of the named layout the
// active variant was derived from.
func (m *SpaceLayoutMapping) ActiveLayoutIndex() int { return m.activeIndex }

// mostRecentlyModified returns the variant most recently marked modified by
// PrepareModify, falling back to the variant of the most recently
// activated bucket if none has ever been modified.
func (m *SpaceLayoutMapping) mostRecentlyModified(order []sizeBucket) (*sizeVariant, bool) {
	for i := len(order) - 1; i >= 0; i-- {
		if v := m.variants[order[i]]; v != nil && v.modified {
			return v, true
		}
	}
	if v, ok := m.variants[m.lastBucket]; ok {
		return v, true
	}
	return nil, false
}

// ActivateSize selects or creates the variant for size per spec.md §4.4: an
// unseen bucket gets a scaled copy of the current source; a seen-but-
// unmodified bucket is discarded and recreated by scaling from the most
// recently modified variant, so an unmodified variant never accumulates
// stale structure left over from a previous screen size; a modified bucket
// activates unchanged.
func (m *SpaceLayoutMapping) ActivateSize(size geom.Size, lt *Tree) tree.LayoutID {
	bucket := bucketOf(size)
	source := m.order[m.activeIndex]

	existing, seen := m.variants[bucket]
	switch {
	case !seen:
		variant := lt.CloneLayout(source, m.Label(source, lt))
		m.variants[bucket] = &sizeVariant{layout: variant}
	case !existing.modified:
		// Proportions are scale-invariant: creating the replacement variant
		// is a plain structural copy, never arithmetic on stored sizes.
		scaleSource := source
		if v, ok := m.mostRecentlyModified(m.bucketOrder()); ok {
			scaleSource = v.layout
		}
		if existing.layout != scaleSource {
			lt.RemoveLayout(existing.layout)
		}
		variant := lt.CloneLayout(scaleSource, m.Label(source, lt))
		m.variants[bucket] = &sizeVariant{layout: variant}
	default:
		// Modified: keep unchanged.
	}

	m.lastBucket = bucket
	return m.variants[bucket].layout
}

func (m *SpaceLayoutMapping) bucketOrder() []sizeBucket {
	out := make([]sizeBucket, 0, len(m.variants))
	for b := range m.variants {
		out = append(out, b)
	}
	return out
}

// Label returns the display label the tree stores for layout id.
func (m *SpaceLayoutMapping) Label(id tree.LayoutID, lt *Tree) string {
	return lt.Label(id)
}

// PrepareModify marks the bucket active variant modified, so it survives
// untouched across future size changes. Callers must invoke this before any
// command that mutates tree structure.
func (m *SpaceLayoutMapping) PrepareModify() {
	if v, ok := m.variants[m.lastBucket]; ok {
		v.modified = true
	}
}

// SelectLayout switches the active named layout to id, if present among the
// mapping's named layouts.
func (m *SpaceLayoutMapping) SelectLayout(id tree.LayoutID) bool {
	for i, l := range m.order {
		if l == id {
			m.activeIndex = i
			return true
		}
	}
	return false
}

// ChangeLayoutIndex cycles the active named layout by offset, skipping
// scroll-kind layouts unless allowScroll is set. isScrollKind reports
// whether a given layout is currently scroll-kind.
func (m *SpaceLayoutMapping) ChangeLayoutIndex(offset int, allowScroll bool, isScrollKind func(tree.LayoutID) bool) tree.LayoutID {
	n := len(m.order)
	if n <= 1 {
		return m.order[m.activeIndex]
	}
	for step := 1; step <= n; step++ {
		idx := ((m.activeIndex+offset*step)%n + n) % n
		candidate := m.order[idx]
		if allowScroll || !isScrollKind(candidate) {
			m.activeIndex = idx
			return candidate
		}
	}
	return m.order[m.activeIndex]
}

// AddNamedLayout appends a new named layout (distinct from ActivateSize's
// per-size variants) and makes it active, e.g. for a user "new layout"
// command.
func (m *SpaceLayoutMapping) AddNamedLayout(id tree.LayoutID) {
	m.order = append(m.order, id)
	m.activeIndex = len(m.order) - 1
}

// ReplaceActiveLayout swaps the named layout at the active index for id,
// used when converting a layout's kind (Tree to Scroll or back). The
// caller is responsible for discarding any viewport associated with the
// layout being replaced.
func (m *SpaceLayoutMapping) ReplaceActiveLayout(id tree.LayoutID) {
	m.order[m.activeIndex] = id
	m.variants[m.lastBucket] = &sizeVariant{layout: id, modified: true}
}
