// Package state holds the kiosk content shared between the poller and the UI.
//
// # Overview
//
// The poller writes one content.Result per round with Store.Update; the UI
// reads Store.Snapshot on its own refresh tick. A sync.RWMutex guards the
// snapshot and the lock is never held during network I/O or rendering.
//
//	Poller:                          UI:
//	client.FetchAll()                store.Snapshot()
//	store.Update(result)  ──mutex──→ compare revisions
//	cache.Save(changed)              Replace carousels that changed
//
// # Revisions
//
// Every section carries a revision: the hashstructure hash of its payload.
// Identical payloads hash the same, so a poll that returns unchanged data
// leaves the revision alone and the UI keeps every carousel where it is. A
// new revision is the signal to replace a carousel's sequence.
//
// # Update Semantics
//
//	// Section fetched: payload replaced if it hashes differently
//	// Section failed:  payload kept, error recorded in Errors[section]
//	// All failed:      ConsecutiveFailures++, IsOffline after two rounds
//	// Any success:     ConsecutiveFailures reset, FromCache cleared
//
// # Offline start
//
// Seed loads sections from the offline cache before the first poll. A seeded
// section is marked loaded, so pages render immediately; the first live fetch
// with the same payload keeps the seeded revision.
//
// # Defensive Copying
//
// Snapshot clones the bundle slices, the maps, and wraps LastError so callers
// can never mutate the stored state. The zero Store is ready to use.
package state
