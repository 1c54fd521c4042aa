package app

import "time"

// Layout constants define the footer and pane chrome.
const (
	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area. The app targets two rows on typical terminal widths.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3

	// PaneTitleRows is the height of a leaf pane's title bar.
	PaneTitleRows = 1
)

// Handle interaction constants.
const (
	// NudgeStep is how far a keyboard nudge moves the focused handle.
	NudgeStep = 1
	// NudgeStepLarge is the nudge distance for the shifted keys.
	NudgeStepLarge = 5
	// WheelScrollLines is how many lines a wheel tick scrolls a pane.
	WheelScrollLines = 3
)

// Rendering constants control render timing and optimization
const (
	// RenderDebounce is the delay before triggering a render after a pane
	// changes width. Drags produce bursts of width changes; only the last one
	// is rendered.
	RenderDebounce = 150 * time.Millisecond

	// RenderWidthBucket is the granularity for width-based render caching
	// Widths are rounded down to a multiple of this value
	RenderWidthBucket = 10
)

// File system permissions
const (
	// DirPermission is the permission mode for newly created directories
	DirPermission = 0o755

	// FilePermission is the permission mode for newly created files
	FilePermission = 0o644
)

// Watcher constants
const (
	// FileWatchDebounce coalesces bursts of filesystem events (editors often
	// write, rename and chmod in quick succession) into one reload.
	FileWatchDebounce = 250 * time.Millisecond
)
