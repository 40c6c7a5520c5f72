// Package config holds the subset of host configuration the layout engine
// consumes. The engine never reads a file or watches for changes; a host
// decodes this struct (for example with go-toml/v2, as the engine's own
// persistence package does) and passes it in.
package config

// HorizontalPlacement chooses which edge a Tabbed group's indicator strip
// reserves.
type HorizontalPlacement int

const (
	Top HorizontalPlacement = iota
	Bottom
)

// VerticalPlacement chooses which edge a Stacked group's indicator strip
// reserves.
type VerticalPlacement int

const (
	PlacementLeft VerticalPlacement = iota
	PlacementRight
)

// GroupIndicators configures the reserved strip drawn for Tabbed/Stacked
// containers.
type GroupIndicators struct {
	Enable              bool                `toml:"enable"`
	BarThickness        float64             `toml:"bar_thickness"`
	HorizontalPlacement HorizontalPlacement `toml:"horizontal_placement"`
	VerticalPlacement   VerticalPlacement   `toml:"vertical_placement"`
}

// CenterMode controls how the scroll viewport reacts to focus changes.
type CenterMode int

const (
	CenterAlways CenterMode = iota
	CenterOnOverflow
	CenterNever
)

// NewWindowPlacement controls where a newly tiled window lands in a scroll
// layout.
type NewWindowPlacement int

const (
	NewWindowAfterFocused NewWindowPlacement = iota
	NewWindowAtEnd
)

// Scroll configures scroll-kind layouts: the gate, viewport behavior, and
// wheel handling.
type Scroll struct {
	Enable                  bool               `toml:"enable"`
	CenterFocusedColumn     CenterMode         `toml:"center_focused_column"`
	VisibleColumns          float64            `toml:"visible_columns"`
	ColumnWidthPresets      []float64          `toml:"column_width_presets"`
	NewWindowInColumn       NewWindowPlacement `toml:"new_window_in_column"`
	ScrollSensitivity       float64            `toml:"scroll_sensitivity"`
	InvertScrollDirection   bool               `toml:"invert_scroll_direction"`
	InfiniteLoop            bool               `toml:"infinite_loop"`
	SingleColumnAspectRatio float64            `toml:"single_column_aspect_ratio"`
}

// LayoutKind is the kind of layout created for a space that has never been
// seen before.
type LayoutKind int

const (
	KindTree LayoutKind = iota
	KindScroll
)

// Config is the engine-facing configuration subset described in the
// external interfaces. Non-persisted; it is re-seeded by the host on every
// load via (*manager.LayoutManager).SetConfig.
type Config struct {
	OuterGap          float64         `toml:"outer_gap"`
	InnerGap          float64         `toml:"inner_gap"`
	GroupIndicators   GroupIndicators `toml:"group_indicators"`
	Scroll            Scroll          `toml:"scroll"`
	DefaultLayoutKind LayoutKind      `toml:"default_layout_kind"`
}

// Default returns the configuration a fresh install would have.
func Default() Config {
	return Config{
		OuterGap: 0,
		InnerGap: 0,
		GroupIndicators: GroupIndicators{
			Enable:              false,
			BarThickness:        20,
			HorizontalPlacement: Top,
			VerticalPlacement:   PlacementLeft,
		},
		Scroll: Scroll{
			Enable:              false,
			CenterFocusedColumn: CenterOnOverflow,
			VisibleColumns:      1,
			NewWindowInColumn:   NewWindowAfterFocused,
			ScrollSensitivity:   1,
			InfiniteLoop:        false,
		},
		DefaultLayoutKind: KindTree,
	}
}
