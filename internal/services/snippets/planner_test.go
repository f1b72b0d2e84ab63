package snippets

import (
	"testing"

	"github.com/contestreplay/replay-api/internal/services/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// three back-to-back 300s recordings
func threeSegmentInventory() *timeline.Inventory {
	return &timeline.Inventory{
		Segments: []timeline.Segment{
			{FileID: "a.mp3", Path: "/audio/a.mp3", OrderIndex: 0, Duration: 300, CumulativeStart: 0},
			{FileID: "b.mp3", Path: "/audio/b.mp3", OrderIndex: 1, Duration: 300, CumulativeStart: 300},
			{FileID: "c.mp3", Path: "/audio/c.mp3", OrderIndex: 2, Duration: 300, CumulativeStart: 600},
		},
		TotalDuration: 900,
	}
}

func TestPlanCutsSingleFile(t *testing.T) {
	cuts, err := PlanCuts(threeSegmentInventory(), 30, 90)
	require.NoError(t, err)
	require.Len(t, cuts, 1)
	assert.Equal(t, "a.mp3", cuts[0].FileID)
	assert.Equal(t, 30.0, cuts[0].Offset)
	assert.Equal(t, 60.0, cuts[0].Duration)
}

func TestPlanCutsBoundarySplice(t *testing.T) {
	// 290..310 straddles the first file boundary
	cuts, err := PlanCuts(threeSegmentInventory(), 290, 310)
	require.NoError(t, err)
	require.Len(t, cuts, 2)

	assert.Equal(t, "a.mp3", cuts[0].FileID)
	assert.Equal(t, 290.0, cuts[0].Offset)
	assert.Equal(t, 10.0, cuts[0].Duration)

	assert.Equal(t, "b.mp3", cuts[1].FileID)
	assert.Equal(t, 0.0, cuts[1].Offset)
	assert.Equal(t, 10.0, cuts[1].Duration)
}

func TestPlanCutsWholeMiddleFile(t *testing.T) {
	cuts, err := PlanCuts(threeSegmentInventory(), 250, 650)
	require.NoError(t, err)
	require.Len(t, cuts, 3)

	assert.Equal(t, 250.0, cuts[0].Offset)
	assert.Equal(t, 50.0, cuts[0].Duration)

	// middle file is taken whole
	assert.Equal(t, "b.mp3", cuts[1].FileID)
	assert.Equal(t, 0.0, cuts[1].Offset)
	assert.Equal(t, 300.0, cuts[1].Duration)

	assert.Equal(t, "c.mp3", cuts[2].FileID)
	assert.Equal(t, 50.0, cuts[2].Duration)
}

func TestPlanCutsReversedWindow(t *testing.T) {
	forward, err := PlanCuts(threeSegmentInventory(), 290, 310)
	require.NoError(t, err)
	reversed, err := PlanCuts(threeSegmentInventory(), 310, 290)
	require.NoError(t, err)
	assert.Equal(t, forward, reversed)
}

func TestPlanCutsOutsideTimeline(t *testing.T) {
	_, err := PlanCuts(threeSegmentInventory(), -10, 100)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = PlanCuts(threeSegmentInventory(), 100, 1000)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestPlanCutsFullTimeline(t *testing.T) {
	cuts, err := PlanCuts(threeSegmentInventory(), 0, 900)
	require.NoError(t, err)
	require.Len(t, cuts, 3)
	var total float64
	for _, c := range cuts {
		total += c.Duration
	}
	assert.Equal(t, 900.0, total)
}
