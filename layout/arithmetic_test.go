package layout_test

import (
	"sort"
	"testing"

	"github.com/glide-wm/glide/config"
	"github.com/glide-wm/glide/geom"
	"github.com/glide-wm/glide/layout"
	"github.com/glide-wm/glide/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wid(pid int32, seq uint32) tree.WindowID { return tree.WindowID{PID: pid, Seq: seq} }

func TestLaysOutWindowsProportionally(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	lt.AddWindowUnder(root, wid(1, 1))
	a2 := lt.AddContainer(root, layout.KindVertical)
	lt.AddWindowUnder(a2, wid(1, 2))
	lt.AddWindowUnder(a2, wid(1, 3))
	lt.AddWindowUnder(root, wid(1, 4))

	screen := geom.NewRect(0, 0, 3000, 1000)
	cfg := config.Default()
	frames, groups := lt.CalculateLayoutAndGroups(l, screen, &cfg)
	sort.Slice(frames, func(i, j int) bool { return frames[i].Window.Less(frames[j].Window) })

	require.Len(t, frames, 4)
	assert.Equal(t, geom.NewRect(0, 0, 1000, 1000), frames[0].Rect)
	assert.Equal(t, geom.NewRect(1000, 0, 1000, 500), frames[1].Rect)
	assert.Equal(t, geom.NewRect(1000, 500, 1000, 500), frames[2].Rect)
	assert.Equal(t, geom.NewRect(2000, 0, 1000, 1000), frames[3].Rect)
	assert.Len(t, groups, 0)
}

func TestCollectsGroupInfoForTabbedContainers(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	lt.AddWindowUnder(root, wid(1, 1))

	tabbed := lt.AddContainer(root, layout.KindTabbed)
	lt.AddWindowUnder(tabbed, wid(2, 1))
	lt.AddWindowUnder(tabbed, wid(2, 2))
	lt.AddWindowUnder(tabbed, wid(2, 3))

	lt.AddWindowUnder(root, wid(3, 1))

	screen := geom.NewRect(0, 0, 3000, 1000)
	cfg := config.Default()
	frames, groups := lt.CalculateLayoutAndGroups(l, screen, &cfg)

	require.Len(t, frames, 5)
	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, tabbed, g.NodeID)
	assert.Equal(t, layout.KindTabbed, g.ContainerKind)
	assert.Equal(t, 3, g.TotalCount)
	assert.Equal(t, 0, g.SelectedIndex)
	assert.True(t, g.IsVisible)
}

func TestCollectsGroupInfoForStackedContainers(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()

	stacked := lt.AddContainer(root, layout.KindStacked)
	lt.AddWindowUnder(stacked, wid(1, 1))
	child2 := lt.AddWindowUnder(stacked, wid(1, 2))
	lt.Select(child2)

	screen := geom.NewRect(0, 0, 1000, 1000)
	cfg := config.Default()
	frames, groups := lt.CalculateLayoutAndGroups(l, screen, &cfg)

	require.Len(t, frames, 2)
	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, stacked, g.NodeID)
	assert.Equal(t, layout.KindStacked, g.ContainerKind)
	assert.Equal(t, 2, g.TotalCount)
	assert.Equal(t, 1, g.SelectedIndex)
	assert.True(t, g.IsVisible)
}

func TestTracksVisibilityForNestedGroups(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()

	outer := lt.AddContainer(root, layout.KindTabbed)
	lt.AddWindowUnder(outer, wid(1, 1))

	inner := lt.AddContainer(outer, layout.KindStacked)
	lt.AddWindowUnder(inner, wid(2, 1))
	lt.AddWindowUnder(inner, wid(2, 2))

	screen := geom.NewRect(0, 0, 1000, 1000)
	cfg := config.Default()
	frames, groups := lt.CalculateLayoutAndGroups(l, screen, &cfg)
	require.Len(t, frames, 3)
	require.Len(t, groups, 2)

	var outerInfo, innerInfo *layout.GroupInfo
	for i := range groups {
		switch groups[i].ContainerKind {
		case layout.KindTabbed:
			outerInfo = &groups[i]
		case layout.KindStacked:
			innerInfo = &groups[i]
		}
	}
	require.NotNil(t, outerInfo)
	require.NotNil(t, innerInfo)
	assert.True(t, outerInfo.IsVisible)
	assert.Equal(t, 2, outerInfo.TotalCount)
	assert.Equal(t, 0, outerInfo.SelectedIndex)
	assert.False(t, innerInfo.IsVisible)
}

func TestGroupsObscuredByFullscreenNodes(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()

	outer := lt.AddContainer(root, layout.KindTabbed)
	lt.AddWindowUnder(outer, wid(1, 1))

	inner := lt.AddContainer(outer, layout.KindStacked)
	innerStack1 := lt.AddWindowUnder(inner, wid(2, 1))
	lt.AddWindowUnder(inner, wid(2, 2))
	lt.Select(innerStack1)

	screen := geom.NewRect(0, 0, 1000, 1000)
	cfg := config.Default()

	lt.SetFullscreen(inner, true)
	_, groups := lt.CalculateLayoutAndGroups(l, screen, &cfg)
	outerG, innerG := findByKind(groups, layout.KindTabbed), findByKind(groups, layout.KindStacked)
	assert.False(t, outerG.IsVisible)
	assert.True(t, innerG.IsVisible)

	lt.SetFullscreen(inner, false)
	lt.SetFullscreen(innerStack1, true)
	_, groups = lt.CalculateLayoutAndGroups(l, screen, &cfg)
	outerG, innerG = findByKind(groups, layout.KindTabbed), findByKind(groups, layout.KindStacked)
	assert.False(t, outerG.IsVisible)
	assert.False(t, innerG.IsVisible)

	lt.SetFullscreen(innerStack1, false)
	lt.SetFullscreen(root, true)
	_, groups = lt.CalculateLayoutAndGroups(l, screen, &cfg)
	outerG, innerG = findByKind(groups, layout.KindTabbed), findByKind(groups, layout.KindStacked)
	assert.True(t, outerG.IsVisible)
	assert.True(t, innerG.IsVisible)
}

func findByKind(groups []layout.GroupInfo, kind layout.ContainerKind) layout.GroupInfo {
	for _, g := range groups {
		if g.ContainerKind == kind {
			return g
		}
	}
	panic("not found")
}

func TestRegularContainersProduceNoGroups(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()
	lt.AddWindowUnder(root, wid(1, 1))

	vertical := lt.AddContainer(root, layout.KindVertical)
	lt.AddWindowUnder(vertical, wid(2, 1))
	lt.AddWindowUnder(vertical, wid(2, 2))

	screen := geom.NewRect(0, 0, 1000, 1000)
	cfg := config.Default()
	frames, groups := lt.CalculateLayoutAndGroups(l, screen, &cfg)
	assert.Len(t, frames, 3)
	assert.Len(t, groups, 0)
}

func TestReservesSpaceForIndicatorsWhenEnabled(t *testing.T) {
	lt := layout.NewTree()
	l := lt.CreateLayout("default")
	root := l.Root()

	tabbed := lt.AddContainer(root, layout.KindTabbed)
	lt.AddWindowUnder(tabbed, wid(1, 1))
	lt.AddWindowUnder(tabbed, wid(1, 2))

	screen := geom.NewRect(0, 0, 1000, 1000)

	disabled := config.Default()
	disabled.GroupIndicators.Enable = false
	framesDisabled, groupsDisabled := lt.CalculateLayoutAndGroups(l, screen, &disabled)

	enabled := config.Default()
	enabled.GroupIndicators.Enable = true
	enabled.GroupIndicators.BarThickness = 20
	framesEnabled, groupsEnabled := lt.CalculateLayoutAndGroups(l, screen, &enabled)

	assert.Equal(t, len(framesDisabled), len(framesEnabled))
	require.Len(t, groupsEnabled, 1)

	assert.Equal(t, geom.NewRect(0, 0, 0, 0), groupsDisabled[0].IndicatorRect)
	assert.Equal(t, geom.NewRect(0, 0, 1000, 20), groupsEnabled[0].IndicatorRect)

	target := wid(1, 1)
	var frameDisabled, frameEnabled geom.Rect
	for _, f := range framesDisabled {
		if f.Window == target {
			frameDisabled = f.Rect
		}
	}
	for _, f := range framesEnabled {
		if f.Window == target {
			frameEnabled = f.Rect
		}
	}
	assert.Equal(t, geom.NewRect(0, 0, 1000, 1000), frameDisabled)
	assert.Equal(t, geom.NewRect(0, 20, 1000, 980), frameEnabled)
}
