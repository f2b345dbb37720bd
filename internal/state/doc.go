// Package state is the hand-off point between background loaders and panes.
//
// Loaders write into a Store from their own goroutines. Panes read it only
// from Process, through HasNewData, HasAllData and Snapshot, so a pane never
// waits on a load and never shares mutable data with a loader: Put and
// Snapshot both copy.
//
//	// loader goroutine
//	store.Reset(len(paths))
//	for _, p := range paths {
//		lines, err := read(p)
//		if err != nil {
//			store.Fail(p, err)
//			continue
//		}
//		store.Put(p, lines)
//	}
//
//	// pane
//	func (p *Preview) Process(now time.Time) {
//		if !store.HasNewData() {
//			return
//		}
//		snap := store.Snapshot()
//		...
//	}
//
// The zero Store is not usable; call NewStore.
package state
