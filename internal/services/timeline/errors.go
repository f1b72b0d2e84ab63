package timeline

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMapped is returned when a timestamp falls outside the measured
	// audio timeline beyond tolerance
	ErrNotMapped = errors.New("no audio mapped for this contact")

	// ErrEmptyInventory is returned when an inventory is built from no files
	ErrEmptyInventory = errors.New("no audio files in inventory")

	// ErrInventoryBuild is returned when a contest's inventory cannot be
	// built; the contest is unusable for playback until fixed on disk
	ErrInventoryBuild = errors.New("audio inventory build failed")
)

// Not-mapped reasons, useful for diagnosis on the caller side
const (
	ReasonBeforeRecording = "before_recording"
	ReasonAfterRecording  = "after_recording"
)

// NotMappedError reports an offset outside the timeline, distinguishing
// "before recording started" from "after recording ended".
type NotMappedError struct {
	Reason string  // ReasonBeforeRecording or ReasonAfterRecording
	Offset float64 // The computed timeline offset in seconds
	Total  float64 // The total timeline duration in seconds
}

func (e *NotMappedError) Error() string {
	return fmt.Sprintf("%v: offset %.3fs outside timeline [0, %.3fs) (%s)",
		ErrNotMapped, e.Offset, e.Total, e.Reason)
}

func (e *NotMappedError) Unwrap() error {
	return ErrNotMapped
}
