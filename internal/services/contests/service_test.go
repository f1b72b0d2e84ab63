package contests

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCabrilloLog = `START-OF-LOG: 3.0
CALLSIGN: K1ABC
CONTEST: CQ-WW-CW
QSO:  14025 CW 2024-11-23 1200 K1ABC         599 05     W2XYZ         599 14
QSO:  14025 CW 2024-11-23 1203 K1ABC         599 05     N3QRP         599 08
END-OF-LOG:
`

const testMetadata = `recording_start_utc: "2024-11-23 11:55:00"
contest_start_utc: "2024-11-23 12:00:00"
pre_seconds: 8.0
`

// writeContest lays out one contest folder under root
func writeContest(t *testing.T, root, name string, audio []string, logBody, metadata string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, a := range audio {
		require.NoError(t, os.WriteFile(filepath.Join(dir, a), []byte("mp3"), 0o644))
	}
	if logBody != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "k1abc.log"), []byte(logBody), 0o644))
	}
	if metadata != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "contest.yaml"), []byte(metadata), 0o644))
	}
	return dir
}

func TestGetLoadsContest(t *testing.T) {
	root := t.TempDir()
	writeContest(t, root, "cqww-2024",
		[]string{"20241123_1200.mp3", "20241123_1155.mp3"},
		testCabrilloLog, testMetadata)

	svc := NewService(root, "contest.yaml", 10.0)
	contest, err := svc.Get(context.Background(), "cqww-2024")
	require.NoError(t, err)

	assert.Equal(t, "cqww-2024", contest.Name)
	require.Len(t, contest.AudioPaths, 2)
	// lexical order by base name regardless of directory read order
	assert.Equal(t, "20241123_1155.mp3", filepath.Base(contest.AudioPaths[0]))
	assert.Equal(t, "20241123_1200.mp3", filepath.Base(contest.AudioPaths[1]))
	assert.Equal(t, 2, contest.Log().Len())

	wantStart := time.Date(2024, 11, 23, 11, 55, 0, 0, time.UTC)
	assert.True(t, contest.Timing.RecordingStart.Equal(wantStart))
	assert.Equal(t, 8.0, contest.Timing.PreSeconds)
}

func TestGetDefaultPreSeconds(t *testing.T) {
	root := t.TempDir()
	writeContest(t, root, "nopre", []string{"a.mp3"}, testCabrilloLog,
		"recording_start_utc: \"2024-11-23 11:55:00\"\ncontest_start_utc: \"2024-11-23 12:00:00\"\n")

	svc := NewService(root, "contest.yaml", 10.0)
	contest, err := svc.Get(context.Background(), "nopre")
	require.NoError(t, err)
	assert.Equal(t, 10.0, contest.Timing.PreSeconds)
}

func TestGetValidation(t *testing.T) {
	root := t.TempDir()
	writeContest(t, root, "no-audio", nil, testCabrilloLog, testMetadata)
	writeContest(t, root, "no-log", []string{"a.mp3"}, "", testMetadata)
	writeContest(t, root, "no-metadata", []string{"a.mp3"}, testCabrilloLog, "")
	writeContest(t, root, "bad-timing", []string{"a.mp3"}, testCabrilloLog,
		"recording_start_utc: \"yesterday\"\ncontest_start_utc: \"2024-11-23 12:00:00\"\n")

	dir := writeContest(t, root, "two-logs", []string{"a.mp3"}, testCabrilloLog, testMetadata)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.log"), []byte(testCabrilloLog), 0o644))

	svc := NewService(root, "contest.yaml", 10.0)
	ctx := context.Background()

	for _, name := range []string{"no-audio", "no-log", "no-metadata", "bad-timing", "two-logs"} {
		_, err := svc.Get(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidContest, "contest %s", name)
	}

	_, err := svc.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrContestNotFound)

	_, err = svc.Get(ctx, "../escape")
	assert.ErrorIs(t, err, ErrContestNotFound)
}

func TestListMixedValidity(t *testing.T) {
	root := t.TempDir()
	writeContest(t, root, "good", []string{"a.mp3"}, testCabrilloLog, testMetadata)
	writeContest(t, root, "broken", nil, testCabrilloLog, testMetadata)
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644))

	svc := NewService(root, "contest.yaml", 10.0)
	summaries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "broken", summaries[0].Name)
	assert.False(t, summaries[0].Valid)
	assert.NotEmpty(t, summaries[0].Reason)

	assert.Equal(t, "good", summaries[1].Name)
	assert.True(t, summaries[1].Valid)
	assert.Equal(t, 1, summaries[1].AudioFiles)
	assert.Equal(t, 2, summaries[1].ContactCount)
}

func TestCacheAndInvalidate(t *testing.T) {
	root := t.TempDir()
	dir := writeContest(t, root, "cached", []string{"a.mp3"}, testCabrilloLog, testMetadata)

	svc := NewService(root, "contest.yaml", 10.0)
	first, err := svc.Get(context.Background(), "cached")
	require.NoError(t, err)

	// cache hit returns the same instance even after the folder changes
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp3"), []byte("mp3"), 0o644))
	second, err := svc.Get(context.Background(), "cached")
	require.NoError(t, err)
	assert.Same(t, first, second)

	svc.Invalidate("cached")
	third, err := svc.Get(context.Background(), "cached")
	require.NoError(t, err)
	assert.Len(t, third.AudioPaths, 2)
}

func TestAudioPath(t *testing.T) {
	root := t.TempDir()
	writeContest(t, root, "audio", []string{"a.mp3", "b.mp3"}, testCabrilloLog, testMetadata)

	svc := NewService(root, "contest.yaml", 10.0)
	contest, err := svc.Get(context.Background(), "audio")
	require.NoError(t, err)

	path, err := contest.AudioPath("b.mp3")
	require.NoError(t, err)
	assert.Equal(t, "b.mp3", filepath.Base(path))

	_, err = contest.AudioPath("../../etc/passwd")
	assert.ErrorIs(t, err, ErrUnknownAudioFile)
}
