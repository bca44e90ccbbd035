// Package app is the composition root of the kiosk.
//
// Run loads configuration, opens the log file and the offline cache, seeds the
// shared state.Store from the cache, starts the poller and (when metrics_addr is
// set) the metrics server, then hands the terminal to the UI. It returns when
// the user quits or the context is cancelled.
//
//	Run()
//	  ├─> LoadConfig()        dotenv, config.toml, LOBBY_* env, flags
//	  ├─> logging.New()       zerolog to log_file
//	  ├─> cache.Open/Load     seed store with the last good content
//	  ├─> Poller.Start()      background refresh
//	  ├─> metrics.Serve()     optional
//	  └─> ui.Run()            blocks
//
// # Polling
//
// The poller fetches every section at once. The first round runs immediately.
// After a round in which every section failed, the wait doubles per
// consecutive failure up to 30s; any success returns to the configured
// poll_seconds. A section that fails keeps its previous payload, so a flaky
// endpoint never blanks a page. Successful sections are written to the cache.
//
// Poll failures are logged at warn and never stop the kiosk. The UI reads
// store snapshots on its own tick and compares payload revisions to decide
// which carousels to rebuild.
package app
