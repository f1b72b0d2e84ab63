package snippets

import "context"

// Splicer is the audio capability the export pipeline needs: decode a window
// of a source file, stitch pieces back into one MP3, and pad short results.
// pkg/ffmpeg provides the production implementation.
type Splicer interface {
	DecodeWindow(ctx context.Context, input string, offset, duration float64, outputPath string) error
	ConcatEncode(ctx context.Context, pieces []string, outputPath string) error
	PadTail(ctx context.Context, input, output string, minDuration float64) error
}
