// Package logtail reads the tail of the kiosk log for the diagnostics overlay.
//
// Read extracts the last N lines of a file in one pass with a ring buffer, so
// memory stays O(N) however large the log grows. A missing file is not an
// error; the kiosk may not have logged anything yet.
//
// Parse decodes the zerolog JSON lines written by package logging into
// Entry values. Lines that are not JSON records pass through untouched, so a
// log with stray output still renders.
//
//	lines, _ := logtail.Read(path, 200)
//	for _, e := range logtail.AtLeast(logtail.ParseLines(lines), "warn") {
//		fmt.Println(e.Format())
//	}
package logtail
