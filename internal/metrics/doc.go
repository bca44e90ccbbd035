// Package metrics exposes Prometheus metrics and a health probe for the kiosk.
//
// Collectors live on a private registry (not the global default) so tests can
// create as many as they like. The HTTP side is a small chi router:
//
//	GET /metrics   Prometheus text exposition
//	GET /healthz   200 "ok", or 503 "offline" once the poller has failed twice
//
// The server is optional and only started when metrics_addr is set.
package metrics
