package timeline

import (
	"time"
)

// boundaryEpsilon is how close to a timeline boundary an offset may fall and
// still be clamped inside range. Anything further out is a metadata
// inconsistency and must fail as NotMapped, never be clamped into a
// convincing-looking but wrong position.
const boundaryEpsilon = 0.5

// Timing is a contest's timing metadata. Both instants are UTC; the engine
// performs no timezone inference and trusts them as given.
type Timing struct {
	RecordingStart time.Time
	ContestStart   time.Time
	PreSeconds     float64
}

// Position is a resolved location within the virtual timeline
type Position struct {
	AbsoluteOffset float64 `json:"absolute_offset_seconds"`
	FileID         string  `json:"file_id"`
	SegmentIndex   int     `json:"segment_index"`
	IntraOffset    float64 `json:"intra_file_offset_seconds"`
}

// Resolver maps absolute UTC timestamps to positions in one contest's
// audio inventory.
type Resolver struct {
	inv    *Inventory
	timing Timing
}

// NewResolver creates a resolver over a built inventory
func NewResolver(inv *Inventory, timing Timing) *Resolver {
	return &Resolver{inv: inv, timing: timing}
}

// Offset computes the raw timeline offset of a timestamp: seconds since the
// recording started, minus the pre-roll padding. No clamping.
func (r *Resolver) Offset(ts time.Time) float64 {
	return ts.Sub(r.timing.RecordingStart).Seconds() - r.timing.PreSeconds
}

// Resolve maps a contact timestamp to a (file, intra-file offset) position.
// Offsets within boundaryEpsilon of either timeline boundary are clamped
// inside range; offsets further out return a NotMappedError naming whether
// the contact falls before or after the recorded audio.
func (r *Resolver) Resolve(ts time.Time) (Position, error) {
	offset := r.Offset(ts)
	clamped, err := r.clamp(offset)
	if err != nil {
		return Position{}, err
	}

	seg, intra, ok := r.inv.Locate(clamped)
	if !ok {
		// Unreachable once clamp succeeded, unless the inventory is empty
		return Position{}, &NotMappedError{Reason: ReasonAfterRecording, Offset: offset, Total: r.inv.TotalDuration}
	}

	return Position{
		AbsoluteOffset: clamped,
		FileID:         seg.FileID,
		SegmentIndex:   seg.OrderIndex,
		IntraOffset:    intra,
	}, nil
}

// ResolveRange resolves both endpoints of a selection and returns the
// covered timeline range. A reversed selection is normalized; range
// selection is symmetric from the caller's perspective. If either endpoint
// fails to resolve, the whole range fails.
func (r *Resolver) ResolveRange(startTS, endTS time.Time) (float64, float64, error) {
	if endTS.Before(startTS) {
		startTS, endTS = endTS, startTS
	}

	start, err := r.Resolve(startTS)
	if err != nil {
		return 0, 0, err
	}

	end, err := r.Resolve(endTS)
	if err != nil {
		return 0, 0, err
	}

	return start.AbsoluteOffset, end.AbsoluteOffset, nil
}

// clamp keeps offsets that are merely rounding-adjacent to a boundary inside
// [0, total]; everything else is out of range.
func (r *Resolver) clamp(offset float64) (float64, error) {
	total := r.inv.TotalDuration

	if offset < 0 {
		if offset >= -boundaryEpsilon {
			return 0, nil
		}
		return 0, &NotMappedError{Reason: ReasonBeforeRecording, Offset: offset, Total: total}
	}

	if offset > total {
		if offset <= total+boundaryEpsilon {
			return total, nil
		}
		return 0, &NotMappedError{Reason: ReasonAfterRecording, Offset: offset, Total: total}
	}

	return offset, nil
}
