package snippets

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Extractor turns a cut plan into a single MP3 using a Splicer. Intermediate
// PCM pieces live in a scratch directory removed when extraction finishes.
type Extractor struct {
	splicer Splicer
	tempDir string
}

// NewExtractor creates an extractor. tempDir may be empty to use the
// OS default temp location.
func NewExtractor(splicer Splicer, tempDir string) *Extractor {
	return &Extractor{splicer: splicer, tempDir: tempDir}
}

// Extract decodes every cut, concatenates them into outputPath and pads the
// result to minDuration seconds when the plan comes up shorter.
func (e *Extractor) Extract(ctx context.Context, cuts []Cut, outputPath string, minDuration float64) error {
	if len(cuts) == 0 {
		return fmt.Errorf("%w: empty cut plan", ErrExtractionFailed)
	}

	scratch, err := os.MkdirTemp(e.tempDir, "snippet-*")
	if err != nil {
		return fmt.Errorf("%w: creating scratch dir: %v", ErrExtractionFailed, err)
	}
	defer os.RemoveAll(scratch)

	pieces := make([]string, 0, len(cuts))
	var planned float64
	for i, cut := range cuts {
		piece := filepath.Join(scratch, fmt.Sprintf("piece_%03d.wav", i))
		if err := e.splicer.DecodeWindow(ctx, cut.Path, cut.Offset, cut.Duration, piece); err != nil {
			return fmt.Errorf("%w: decoding %s at %.1fs: %v", ErrExtractionFailed, cut.FileID, cut.Offset, err)
		}
		pieces = append(pieces, piece)
		planned += cut.Duration
	}

	target := outputPath
	if planned < minDuration {
		target = filepath.Join(scratch, "unpadded.mp3")
	}

	if err := e.splicer.ConcatEncode(ctx, pieces, target); err != nil {
		return fmt.Errorf("%w: encoding snippet: %v", ErrExtractionFailed, err)
	}

	if planned < minDuration {
		if err := e.splicer.PadTail(ctx, target, outputPath, minDuration); err != nil {
			return fmt.Errorf("%w: padding snippet to %.1fs: %v", ErrExtractionFailed, minDuration, err)
		}
	}

	log.Printf("[DEBUG] Extracted snippet: %d cuts, %.1fs planned, output %s", len(cuts), planned, outputPath)
	return nil
}
