package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTiming() Timing {
	return Timing{
		RecordingStart: time.Date(2024, 11, 23, 11, 55, 0, 0, time.UTC),
		ContestStart:   time.Date(2024, 11, 23, 12, 0, 0, 0, time.UTC),
		PreSeconds:     10,
	}
}

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	prober := newFakeProber(threeSegmentDurations())
	inv, err := BuildInventory(context.Background(), prober, threeSegmentPaths())
	require.NoError(t, err)
	return NewResolver(inv, testTiming())
}

func TestResolveInsideFirstSegment(t *testing.T) {
	r := testResolver(t)

	// Contact at 12:00:05: (5m5s after recording start) - 10s pre = 295s
	pos, err := r.Resolve(time.Date(2024, 11, 23, 12, 0, 5, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 295.0, pos.AbsoluteOffset)
	assert.Equal(t, "20241123_1155.mp3", pos.FileID)
	assert.Equal(t, 0, pos.SegmentIndex)
	assert.Equal(t, 295.0, pos.IntraOffset)
}

func TestResolvePastTimelineIsNotMapped(t *testing.T) {
	r := testResolver(t)

	// Contact at 12:20:00: 1500s - 10s pre = 1490s, beyond 900s total
	_, err := r.Resolve(time.Date(2024, 11, 23, 12, 20, 0, 0, time.UTC))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotMapped)

	var nm *NotMappedError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, ReasonAfterRecording, nm.Reason)
	assert.Equal(t, 1490.0, nm.Offset)
}

func TestResolveBeforeTimelineIsNotMapped(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve(time.Date(2024, 11, 23, 11, 50, 0, 0, time.UTC))
	require.Error(t, err)

	var nm *NotMappedError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, ReasonBeforeRecording, nm.Reason)
}

func TestResolveBoundaryClamping(t *testing.T) {
	r := testResolver(t)

	// Exactly recording_start + pre_seconds resolves to offset 0 of segment 0
	pos, err := r.Resolve(time.Date(2024, 11, 23, 11, 55, 10, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0.0, pos.AbsoluteOffset)
	assert.Equal(t, 0, pos.SegmentIndex)
	assert.Equal(t, 0.0, pos.IntraOffset)

	// Sub-epsilon before the start clamps to 0 rather than failing
	pos, err = r.Resolve(time.Date(2024, 11, 23, 11, 55, 9, 700000000, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0.0, pos.AbsoluteOffset)

	// Beyond epsilon must fail, never silently clamp
	_, err = r.Resolve(time.Date(2024, 11, 23, 11, 55, 8, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNotMapped)
}

func TestResolveMonotonic(t *testing.T) {
	r := testResolver(t)

	timestamps := []time.Time{
		time.Date(2024, 11, 23, 11, 56, 0, 0, time.UTC),
		time.Date(2024, 11, 23, 12, 0, 5, 0, time.UTC),
		time.Date(2024, 11, 23, 12, 3, 0, 0, time.UTC),
		time.Date(2024, 11, 23, 12, 9, 30, 0, time.UTC),
	}

	prev := -1.0
	for _, ts := range timestamps {
		pos, err := r.Resolve(ts)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pos.AbsoluteOffset, prev)
		prev = pos.AbsoluteOffset
	}
}

func TestResolveRange(t *testing.T) {
	r := testResolver(t)

	a := time.Date(2024, 11, 23, 12, 0, 0, 0, time.UTC)
	b := time.Date(2024, 11, 23, 12, 5, 0, 0, time.UTC)

	start, end, err := r.ResolveRange(a, b)
	require.NoError(t, err)
	assert.Equal(t, 290.0, start)
	assert.Equal(t, 590.0, end)
}

func TestResolveRangeReversedIsSymmetric(t *testing.T) {
	r := testResolver(t)

	a := time.Date(2024, 11, 23, 12, 0, 0, 0, time.UTC)
	b := time.Date(2024, 11, 23, 12, 5, 0, 0, time.UTC)

	fwdStart, fwdEnd, err := r.ResolveRange(a, b)
	require.NoError(t, err)

	revStart, revEnd, err := r.ResolveRange(b, a)
	require.NoError(t, err)

	assert.Equal(t, fwdStart, revStart)
	assert.Equal(t, fwdEnd, revEnd)
}

func TestResolveRangeFailsWhenEndpointFails(t *testing.T) {
	r := testResolver(t)

	a := time.Date(2024, 11, 23, 12, 0, 0, 0, time.UTC)
	late := time.Date(2024, 11, 23, 12, 20, 0, 0, time.UTC)

	_, _, err := r.ResolveRange(a, late)
	assert.ErrorIs(t, err, ErrNotMapped)
}
