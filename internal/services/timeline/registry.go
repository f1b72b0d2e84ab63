package timeline

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/contestreplay/replay-api/internal/metrics"
)

// Registry memoizes built inventories keyed by contest identity. The build
// is the one expensive I/O-bound step in the system (every file's stream is
// probed), so it must never sit on the playback-click request path twice:
// for each key there is a single build in flight, later callers wait for or
// reuse its result. A failed build is cached as a failure state so a broken
// contest does not trigger re-probing on every request; Invalidate clears
// it once the files are fixed on disk.
type Registry struct {
	prober  DurationProber
	metrics *metrics.Metrics

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	once sync.Once
	inv  *Inventory
	err  error
}

// NewRegistry creates an inventory registry. The metrics handle may be nil.
func NewRegistry(prober DurationProber, m *metrics.Metrics) *Registry {
	return &Registry{
		prober:  prober,
		metrics: m,
		entries: make(map[string]*registryEntry),
	}
}

// GetOrBuild returns the cached inventory for a contest, building it on
// first use. Readers see either "not yet built" (they wait on the in-flight
// build) or "fully built" - never a half-populated index.
func (r *Registry) GetOrBuild(ctx context.Context, contest string, paths []string) (*Inventory, error) {
	r.mu.Lock()
	entry, ok := r.entries[contest]
	if !ok {
		entry = &registryEntry{}
		r.entries[contest] = entry
	}
	r.mu.Unlock()

	entry.once.Do(func() {
		started := time.Now()
		inv, err := BuildInventory(ctx, r.prober, paths)

		// Publish under the registry lock so Get, which reads under the
		// same lock, never observes a partially written entry.
		r.mu.Lock()
		entry.inv, entry.err = inv, err
		r.mu.Unlock()

		if err != nil {
			log.Printf("[ERROR] Inventory build failed for contest %s: %v", contest, err)
			if r.metrics != nil {
				r.metrics.RecordInventoryBuildError()
			}
			return
		}

		if r.metrics != nil {
			r.metrics.RecordInventoryBuild(time.Since(started).Seconds())
			r.metrics.SetCachedInventories(r.Len())
		}
	})

	r.mu.Lock()
	inv, err := entry.inv, entry.err
	r.mu.Unlock()
	return inv, err
}

// Get returns the cached inventory without building. ok is false when the
// contest has no completed build (including builds still in flight).
func (r *Registry) Get(contest string) (*Inventory, bool) {
	r.mu.Lock()
	entry, ok := r.entries[contest]
	r.mu.Unlock()
	if !ok || entry.inv == nil {
		return nil, false
	}
	return entry.inv, true
}

// Invalidate drops a contest's cached inventory (or cached failure) so the
// next request rebuilds it. Used after files change on disk.
func (r *Registry) Invalidate(contest string) {
	r.mu.Lock()
	delete(r.entries, contest)
	count := len(r.entries)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.SetCachedInventories(count)
	}
}

// Len returns the number of cached entries (built or failed)
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
