package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which home stacks its columns
	// and the header drops the tab labels.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show the address line in the footer.
	LayoutWideWidth = 140
)

// Fixed chrome heights.
const (
	headerHeight = 2
	footerHeight = 2
)

// Page content limits.
const (
	projectsPerSlide = 2
	seminarsPerSlide = 6
	awardsPerRow     = 4
)

// Diagnostics overlay.
const (
	// DiagnosticsLines is how many log lines the overlay reads.
	DiagnosticsLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI reads a store snapshot.
	DefaultUIInterval = time.Second

	// scheduleWindow is how far ahead the home page lists schedule entries.
	scheduleWindow = 7 * 24 * time.Hour
)

// awardLoopDurations is the time one award row takes to cycle through all of
// its items, by row index modulo the slice length.
var awardLoopDurations = []time.Duration{
	20 * time.Second,
	25 * time.Second,
	30 * time.Second,
}
