package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}

	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}

	return nil
}

// DecodeWindow decodes a time window of the input file to a PCM WAV file.
// Trimming happens on decoded sample data, not on raw encoded bytes, so cut
// points never land mid-frame.
// -ss before -i seeks on the input, which is faster for long recordings.
func (f *FFmpeg) DecodeWindow(ctx context.Context, inputFile string, offset, duration float64, outputPath string) error {
	if duration <= 0 {
		return NewProcessingError("window_decode", inputFile,
			fmt.Errorf("invalid window duration %.3f", duration), "")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	args := []string{
		"-ss", fmt.Sprintf("%.3f", offset),
		"-i", inputFile,
		"-t", fmt.Sprintf("%.3f", duration),
		"-c:a", "pcm_s16le",
		"-f", "wav",
		"-y",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return NewProcessingError("window_decode", inputFile, err, string(output))
	}

	return nil
}

// ConcatEncode concatenates previously decoded WAV pieces in order and
// re-encodes the result as a single MP3 file.
func (f *FFmpeg) ConcatEncode(ctx context.Context, pieces []string, outputPath string) error {
	if len(pieces) == 0 {
		return NewProcessingError("concat_encode", outputPath,
			fmt.Errorf("no input pieces"), "")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// The concat demuxer wants a list file; build it next to the output.
	listFile, err := os.CreateTemp(filepath.Dir(outputPath), "concat_*.txt")
	if err != nil {
		return NewProcessingError("concat_list_creation", outputPath, err, "")
	}
	defer os.Remove(listFile.Name())

	var sb strings.Builder
	for _, piece := range pieces {
		abs, err := filepath.Abs(piece)
		if err != nil {
			listFile.Close()
			return NewProcessingError("concat_list_creation", piece, err, "")
		}
		fmt.Fprintf(&sb, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	if _, err := listFile.WriteString(sb.String()); err != nil {
		listFile.Close()
		return NewProcessingError("concat_list_creation", outputPath, err, "")
	}
	listFile.Close()

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listFile.Name(),
		"-c:a", "libmp3lame",
		"-q:a", "4",
		"-y",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return NewProcessingError("concat_encode", outputPath, err, string(output))
	}

	return nil
}

// PadTail appends silence so the output is at least minDuration seconds long.
// Used to keep zero-length selections from producing unplayable files.
func (f *FFmpeg) PadTail(ctx context.Context, inputPath, outputPath string, minDuration float64) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	args := []string{
		"-i", inputPath,
		"-af", fmt.Sprintf("apad=whole_dur=%.3f", minDuration),
		"-c:a", "libmp3lame",
		"-q:a", "4",
		"-y",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return NewProcessingError("tail_pad", inputPath, err, string(output))
	}

	return nil
}
