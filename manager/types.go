// Package manager is the front end a host drives: window classification,
// event and command dispatch, interactive drag/resize, and persistence. It
// owns one layout.Tree, one SpaceLayoutMapping per space and one viewport
// per scroll layout, and never reads a file or spawns a goroutine on its own.
package manager

import "github.com/glide-wm/glide/tree"

// WindowInfo is the host-supplied record classification decides from.
type WindowInfo struct {
	BundleID     *string
	Layer        *int32
	IsStandard   bool
	IsResizable  bool
}

// systemPreferencesBundleID identifies the system-preferences app family,
// which always floats regardless of its reported resizability.
const systemPreferencesBundleID = "com.apple.systempreferences"

// finderDesktopBundleID is Finder's bundle id; its non-standard window is
// the desktop icon layer, which is never tracked.
const finderDesktopBundleID = "com.apple.finder"

// WindowClass is the outcome of classifying a window for tiling purposes.
type WindowClass int

const (
	// Regular windows enter the tiling tree.
	Regular WindowClass = iota
	// FloatByDefault windows enter the floating set.
	FloatByDefault
	// Untracked windows are ignored entirely.
	Untracked
)

func (c WindowClass) String() string {
	switch c {
	case Regular:
		return "regular"
	case FloatByDefault:
		return "float-by-default"
	default:
		return "untracked"
	}
}

// ClassifyWindow applies the fixed triage rules: non-zero layer or the
// Finder desktop window is Untracked; non-standard, non-resizable, or
// System Preferences is FloatByDefault; everything else is Regular.
func ClassifyWindow(info WindowInfo) WindowClass {
	if info.Layer != nil && *info.Layer != 0 {
		return Untracked
	}
	if info.Layer == nil && !info.IsStandard && info.BundleID != nil && *info.BundleID == finderDesktopBundleID {
		return Untracked
	}
	if !info.IsStandard || !info.IsResizable {
		return FloatByDefault
	}
	if info.BundleID != nil && *info.BundleID == systemPreferencesBundleID {
		return FloatByDefault
	}
	return Regular
}

// EventResponse is the result of handling an event or command: windows to
// raise (bottom to top) before finally raising and focusing FocusWindow.
type EventResponse struct {
	RaiseWindows []tree.WindowID
	FocusWindow  *tree.WindowID
}
