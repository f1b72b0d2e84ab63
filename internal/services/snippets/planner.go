package snippets

import (
	"fmt"

	"github.com/contestreplay/replay-api/internal/services/timeline"
)

// Cut is one contiguous slice of a single recording file. A snippet spanning
// a file boundary is planned as multiple cuts in playback order.
type Cut struct {
	Path     string
	FileID   string
	Offset   float64 // seconds into the file
	Duration float64 // seconds
}

// PlanCuts maps a [startOffset, endOffset] window on the virtual timeline to
// per-file cuts. The first and last cuts are trimmed to the window; any file
// fully inside the window is taken whole.
func PlanCuts(inv *timeline.Inventory, startOffset, endOffset float64) ([]Cut, error) {
	if endOffset < startOffset {
		startOffset, endOffset = endOffset, startOffset
	}
	if startOffset < 0 || endOffset > inv.TotalDuration {
		return nil, fmt.Errorf("%w: window [%.1f, %.1f] outside timeline of %.1fs",
			ErrInvalidRange, startOffset, endOffset, inv.TotalDuration)
	}

	segments := inv.Intersecting(startOffset, endOffset)
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: window [%.1f, %.1f] covers no audio",
			ErrInvalidRange, startOffset, endOffset)
	}

	cuts := make([]Cut, 0, len(segments))
	for _, seg := range segments {
		cutStart := 0.0
		if startOffset > seg.CumulativeStart {
			cutStart = startOffset - seg.CumulativeStart
		}
		cutEnd := seg.Duration
		if endOffset < seg.End() {
			cutEnd = endOffset - seg.CumulativeStart
		}
		if cutEnd <= cutStart {
			continue
		}
		cuts = append(cuts, Cut{
			Path:     seg.Path,
			FileID:   seg.FileID,
			Offset:   cutStart,
			Duration: cutEnd - cutStart,
		})
	}

	if len(cuts) == 0 {
		return nil, fmt.Errorf("%w: window [%.1f, %.1f] is empty",
			ErrInvalidRange, startOffset, endOffset)
	}
	return cuts, nil
}
