package types

import (
	"github.com/contestreplay/replay-api/internal/database"
	"github.com/contestreplay/replay-api/internal/metrics"
	"github.com/contestreplay/replay-api/internal/services/contests"
	"github.com/contestreplay/replay-api/internal/services/snippets"
	"github.com/contestreplay/replay-api/internal/services/timeline"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB             *database.DB
	ContestService contests.Service
	Registry       *timeline.Registry
	ExportService  *snippets.Service
	Metrics        *metrics.Metrics
}
