package contests

import "context"

// Service defines the interface for contest discovery and access
type Service interface {
	// List returns a summary for every folder under the contests root,
	// including folders that fail validation (with the reason)
	List(ctx context.Context) ([]Summary, error)

	// Get returns a fully loaded contest: ordered audio paths, parsed log
	// and timing metadata. The loaded contest is cached per name.
	Get(ctx context.Context, name string) (*Contest, error)

	// Invalidate drops a cached contest so the next Get reloads from disk
	Invalidate(name string)
}

// Summary describes one contest folder in a listing
type Summary struct {
	Name         string `json:"name"`
	Valid        bool   `json:"valid"`
	Reason       string `json:"reason,omitempty"`
	AudioFiles   int    `json:"audio_files"`
	ContactCount int    `json:"contact_count"`
}
