package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	f := New("ffmpeg", "ffprobe", 30*time.Second)
	if f.ffmpegPath != "ffmpeg" {
		t.Errorf("Expected ffmpegPath to be 'ffmpeg', got %s", f.ffmpegPath)
	}
	if f.ffprobePath != "ffprobe" {
		t.Errorf("Expected ffprobePath to be 'ffprobe', got %s", f.ffprobePath)
	}
	if f.timeout != 30*time.Second {
		t.Errorf("Expected timeout to be 30s, got %v", f.timeout)
	}
}

func TestParseMetadata(t *testing.T) {
	raw := `{
		"format": {"duration": "300.480", "size": "4807680", "bit_rate": "128000", "format_name": "mp3"},
		"streams": [{"codec_type": "audio", "codec_name": "mp3", "sample_rate": "44100", "channels": 1, "duration": "300.480"}]
	}`

	var output ffprobeOutput
	if err := json.Unmarshal([]byte(raw), &output); err != nil {
		t.Fatalf("Failed to unmarshal fixture: %v", err)
	}

	metadata, err := parseMetadata(&output, "20241123_1200.mp3")
	if err != nil {
		t.Fatalf("parseMetadata returned error: %v", err)
	}

	if metadata.Duration != 300.48 {
		t.Errorf("Expected duration 300.48, got %f", metadata.Duration)
	}
	if metadata.Format != "mp3" {
		t.Errorf("Expected format mp3, got %s", metadata.Format)
	}
	if metadata.SampleRate != 44100 {
		t.Errorf("Expected sample rate 44100, got %d", metadata.SampleRate)
	}
	if metadata.Channels != 1 {
		t.Errorf("Expected 1 channel, got %d", metadata.Channels)
	}
}

func TestParseMetadataStreamDurationFallback(t *testing.T) {
	raw := `{
		"format": {"format_name": "mp3"},
		"streams": [{"codec_type": "audio", "codec_name": "mp3", "duration": "12.5"}]
	}`

	var output ffprobeOutput
	if err := json.Unmarshal([]byte(raw), &output); err != nil {
		t.Fatalf("Failed to unmarshal fixture: %v", err)
	}

	metadata, err := parseMetadata(&output, "test.mp3")
	if err != nil {
		t.Fatalf("parseMetadata returned error: %v", err)
	}
	if metadata.Duration != 12.5 {
		t.Errorf("Expected fallback duration 12.5, got %f", metadata.Duration)
	}
}

func TestParseMetadataNoDuration(t *testing.T) {
	raw := `{"format": {"format_name": "mp3"}, "streams": []}`

	var output ffprobeOutput
	if err := json.Unmarshal([]byte(raw), &output); err != nil {
		t.Fatalf("Failed to unmarshal fixture: %v", err)
	}

	_, err := parseMetadata(&output, "broken.mp3")
	if err == nil {
		t.Fatal("Expected error for unmeasurable file, got nil")
	}

	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("Expected ProcessingError, got %T", err)
	}
	if procErr.Operation != "metadata_validation" {
		t.Errorf("Expected operation metadata_validation, got %s", procErr.Operation)
	}
}

func TestDecodeWindowRejectsInvalidDuration(t *testing.T) {
	f := New("ffmpeg", "ffprobe", time.Second)

	err := f.DecodeWindow(context.Background(), "input.mp3", 10, 0, "out.wav")
	if err == nil {
		t.Fatal("Expected error for zero-length window, got nil")
	}
}

func TestConcatEncodeRejectsEmptyInput(t *testing.T) {
	f := New("ffmpeg", "ffprobe", time.Second)

	err := f.ConcatEncode(context.Background(), nil, "out.mp3")
	if err == nil {
		t.Fatal("Expected error for empty piece list, got nil")
	}
}

func TestProcessingErrorUnwrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := NewProcessingError("window_decode", "seg.mp3", cause, "decoder hiccup")

	if !errors.Is(err, cause) {
		t.Error("Expected ProcessingError to unwrap to its cause")
	}
	msg := err.Error()
	if msg == "" {
		t.Error("Expected non-empty error message")
	}
}

// Integration test - only runs if ffmpeg/ffprobe are available
func TestValidateBinaries(t *testing.T) {
	f := New("ffmpeg", "ffprobe", 30*time.Second)

	err := f.ValidateBinaries()
	if err != nil {
		t.Skipf("FFmpeg binaries not available: %v", err)
	}
}
