package manager

import (
	"github.com/glide-wm/glide/geom"
	"github.com/glide-wm/glide/tree"
)

// EventKind enumerates the host notifications HandleEvent dispatches.
type EventKind int

const (
	SpaceExposed EventKind = iota
	WindowsOnScreenUpdated
	AppsRunningUpdated
	AppClosed
	WindowAdded
	WindowRemoved
	WindowFocused
	WindowResized
	MouseMovedOverWindow
)

// WindowOnScreen pairs a window with the classification info reported for
// it, for WindowsOnScreenUpdated's window list.
type WindowOnScreen struct {
	Window tree.WindowID
	Info   WindowInfo
}

// SpaceWindow names a window on a specific space, for MouseMovedOverWindow.
type SpaceWindow struct {
	Space  tree.SpaceID
	Window tree.WindowID
}

// ScreenForSpace pairs a space with the screen rect it's currently showing,
// for WindowResized's per-screen redistribution.
type ScreenForSpace struct {
	Space  tree.SpaceID
	Screen geom.Rect
}

// Event is one host notification, tagged by Kind; only the fields relevant
// to that Kind are populated.
type Event struct {
	Kind EventKind

	Space tree.SpaceID
	Size  geom.Size

	PID     int32
	Windows []WindowOnScreen

	RunningPIDs map[int32]bool

	Window tree.WindowID
	Info   WindowInfo

	Spaces []tree.SpaceID

	OldFrame geom.Rect
	NewFrame geom.Rect
	Screens  []ScreenForSpace

	Over        SpaceWindow
	CurrentMain *SpaceWindow
}

// CommandKind enumerates the host-issued commands HandleCommand dispatches.
type CommandKind int

const (
	NextLayout CommandKind = iota
	PrevLayout
	MoveFocus
	Ascend
	Descend
	MoveNode
	Split
	Group
	Ungroup
	ToggleFocusFloating
	ToggleWindowFloating
	ToggleFullscreen
	Resize
	CycleColumnWidth
	ChangeLayoutKind
	ToggleColumnTabbed
)

// Command is one host-issued command, tagged by Kind.
type Command struct {
	Kind        CommandKind
	Direction   tree.Direction
	Orientation tree.Orientation
	Percent     float64
}

// ModifiesLayout reports whether c is a structural change that should be
// committed to the active screen-size variant via PrepareModify before
// being applied. Commands that merely change focus, or that only have a
// visible effect without altering the underlying proportions
// (ToggleFullscreen), return false.
func (c Command) ModifiesLayout() bool {
	switch c.Kind {
	case MoveNode, Split, Group, Ungroup, Resize, CycleColumnWidth, ToggleColumnTabbed:
		return true
	default:
		return false
	}
}
