package timeline

import "context"

// DurationProber measures the decoded length of one audio file in seconds.
// Implemented by pkg/ffmpeg in production; tests supply a fake so the
// timeline math is exercised without real decoders.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}
