// Package content fetches the lab's kiosk content over HTTP.
//
// Two base URLs are configured: the home API serves the home page payload and
// the general API serves projects, papers, awards, patents and seminars.
// Endpoints are joined onto each base with a single slash, so a base may carry
// a path prefix such as https://lab.example/api.
//
// # Errors
//
// Responses are checked in order: HTTP status, then content type, then JSON
// decoding. Callers can test for ErrHTMLResponse, ErrUnexpectedContentType and
// ErrTimeout with errors.Is, and for *StatusError with errors.As.
//
// # Concurrency
//
// FetchAll issues one request per section in parallel and reports each
// section's error separately, so one broken endpoint never blanks the others.
package content
