// Package ui is the kiosk's full-screen Bubble Tea interface.
//
// # Layout
//
// Every frame is a two-line header (logo, page tabs, connection status), the
// current page and a two-line footer with the lab's contact details and the
// short key help. Help, the QR modal and the diagnostics overlay replace the
// whole frame while open.
//
// # Pages
//
//   - home: hero slides, the intro text, this week's schedule, the current
//     project and a vertical news ticker
//   - project: projects of one year, two per slide, with a QR code for the
//     selected card's link
//   - paper and patent: one document per slide
//   - awards: rows of four, each row scrolling on its own loop with
//     alternating direction
//   - seminar: a grid of six per slide with a numbered pager
//
// Each page owns one or more carousel.Model values. A page's carousels run
// only while it is mounted; switching pages unmounts the old page, which
// cancels its pending ticks and animations.
//
// # Data flow
//
// The UI never talks to the network. A poller in package app writes into a
// state.Store; Model re-reads a Snapshot on every UI tick and hands it to all
// pages. Pages rebuild only when a section's revision changes, so an
// unchanged poll leaves slide positions untouched.
//
// # Keys
//
//	1-6, tab, shift+tab   switch pages
//	left, right           previous, next slide
//	[, ]                  move focus between carousels
//	g then 1-9            jump to a slide
//	up, down, y, enter    select card, cycle year, show QR code
//	T, D, ?, e            theme, diagnostics, help, quit
package ui
