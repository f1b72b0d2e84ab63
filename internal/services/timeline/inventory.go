package timeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
)

// Segment is one physical audio file's position and extent within the
// virtual timeline. Segments are contiguous and non-overlapping: segment i
// covers [CumulativeStart, CumulativeStart+Duration).
type Segment struct {
	FileID          string  `json:"file_id"` // Base name of the audio file
	Path            string  `json:"-"`
	OrderIndex      int     `json:"order_index"`
	Duration        float64 `json:"duration_seconds"`
	CumulativeStart float64 `json:"cumulative_start_seconds"`
}

// End returns the exclusive end of the segment's timeline range
func (s Segment) End() float64 {
	return s.CumulativeStart + s.Duration
}

// Inventory is the cumulative-offset index over a contest's audio files:
// one continuous virtual timeline formed by concatenating all segments in
// chronological order. Built once per contest and treated as immutable.
type Inventory struct {
	Segments      []Segment `json:"segments"`
	TotalDuration float64   `json:"total_duration_seconds"`
}

// BuildInventory measures every file and assembles the cumulative-offset
// index. File paths are sorted lexically by base name; the caller guarantees
// lexical order equals chronological order. Any file that cannot be measured
// fails the whole build, because a gap in the cumulative index would silently
// misalign every later file.
func BuildInventory(ctx context.Context, prober DurationProber, paths []string) (*Inventory, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyInventory
	}

	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Slice(sorted, func(i, j int) bool {
		return filepath.Base(sorted[i]) < filepath.Base(sorted[j])
	})

	inv := &Inventory{Segments: make([]Segment, 0, len(sorted))}

	start := 0.0
	for i, path := range sorted {
		duration, err := prober.Duration(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w: measuring %s: %v", ErrInventoryBuild, filepath.Base(path), err)
		}
		if duration <= 0 {
			return nil, fmt.Errorf("%w: %s has non-positive duration %.3f", ErrInventoryBuild, filepath.Base(path), duration)
		}

		inv.Segments = append(inv.Segments, Segment{
			FileID:          filepath.Base(path),
			Path:            path,
			OrderIndex:      i,
			Duration:        duration,
			CumulativeStart: start,
		})
		start += duration
	}
	inv.TotalDuration = start

	log.Printf("[DEBUG] Built audio inventory: %d segments, %.1fs total", len(inv.Segments), inv.TotalDuration)

	return inv, nil
}

// Locate maps a timeline offset to the segment containing it and the
// intra-segment offset. Lookup is a binary search over the cumulative-start
// array; a multi-day contest can hold hundreds of segments. An offset equal
// to the total duration maps to the very end of the last segment.
func (inv *Inventory) Locate(offset float64) (Segment, float64, bool) {
	if len(inv.Segments) == 0 || offset < 0 || offset > inv.TotalDuration {
		return Segment{}, 0, false
	}

	if offset == inv.TotalDuration {
		last := inv.Segments[len(inv.Segments)-1]
		return last, last.Duration, true
	}

	// First segment whose range ends after the offset
	i := sort.Search(len(inv.Segments), func(i int) bool {
		return inv.Segments[i].End() > offset
	})
	if i >= len(inv.Segments) {
		return Segment{}, 0, false
	}

	seg := inv.Segments[i]
	return seg, offset - seg.CumulativeStart, true
}

// Intersecting returns the ordered subsequence of segments whose timeline
// ranges intersect [startOffset, endOffset].
func (inv *Inventory) Intersecting(startOffset, endOffset float64) []Segment {
	var out []Segment
	for _, seg := range inv.Segments {
		if seg.End() <= startOffset || seg.CumulativeStart >= endOffset {
			continue
		}
		out = append(out, seg)
	}
	return out
}
