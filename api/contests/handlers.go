package contests

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contestreplay/replay-api/api/types"
	contestsService "github.com/contestreplay/replay-api/internal/services/contests"
	"github.com/contestreplay/replay-api/internal/services/timeline"
)

const timestampLayout = "2006-01-02 15:04:05"

// List handles contest folder listing
// @Summary List contest folders
// @Description Lists every contest folder under the configured root, including ones that fail validation
// @Tags contests
// @Produce json
// @Success 200 {object} types.ContestsResponse
// @Router /api/v1/contests [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := deps.ContestService.List(c.Request.Context())
		if err != nil {
			types.SendInternalError(c, "Failed to list contests: "+err.Error())
			return
		}

		contests := make([]types.ContestSummary, 0, len(summaries))
		for _, s := range summaries {
			contests = append(contests, types.ContestSummary{
				Name:         s.Name,
				Valid:        s.Valid,
				Reason:       s.Reason,
				AudioFiles:   s.AudioFiles,
				ContactCount: s.ContactCount,
			})
		}

		c.JSON(http.StatusOK, types.ContestsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Contests:     contests,
			Count:        len(contests),
		})
	}
}

// Get handles contest detail requests
// @Summary Get contest detail
// @Description Returns timing metadata and the measured audio timeline for one contest
// @Tags contests
// @Produce json
// @Param name path string true "Contest folder name"
// @Success 200 {object} types.ContestDetailResponse
// @Failure 404 {object} types.ErrorResponse "Contest not found"
// @Failure 409 {object} types.ErrorResponse "Audio inventory could not be built"
// @Router /api/v1/contests/{name} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		contest, inv, ok := loadContest(c, deps)
		if !ok {
			return
		}

		files := make([]types.AudioFileInfo, 0, len(inv.Segments))
		for _, seg := range inv.Segments {
			files = append(files, types.AudioFileInfo{
				FileID:          seg.FileID,
				OrderIndex:      seg.OrderIndex,
				DurationSeconds: seg.Duration,
				StartSeconds:    seg.CumulativeStart,
			})
		}

		c.JSON(http.StatusOK, types.ContestDetailResponse{
			BaseResponse:      types.BaseResponse{Status: types.StatusOK},
			Name:              contest.Name,
			RecordingStartUTC: contest.Timing.RecordingStart.Format(timestampLayout),
			ContestStartUTC:   contest.Timing.ContestStart.Format(timestampLayout),
			PreSeconds:        contest.Timing.PreSeconds,
			ContactCount:      contest.Log().Len(),
			TotalSeconds:      inv.TotalDuration,
			AudioFiles:        files,
		})
	}
}

// Contacts handles contact listing with resolved playback positions
// @Summary List contacts with playback positions
// @Description Returns every logged contact with its position on the audio timeline. Contacts outside the recorded audio are flagged rather than omitted.
// @Tags contests
// @Produce json
// @Param name path string true "Contest folder name"
// @Success 200 {object} types.ContactsResponse
// @Failure 404 {object} types.ErrorResponse "Contest not found"
// @Failure 409 {object} types.ErrorResponse "Audio inventory could not be built"
// @Router /api/v1/contests/{name}/contacts [get]
func Contacts(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		contest, inv, ok := loadContest(c, deps)
		if !ok {
			return
		}

		resolver := timeline.NewResolver(inv, contest.Timing)
		logContacts := contest.Log().Contacts()
		entries := make([]types.ContactEntry, 0, len(logContacts))
		for i, contact := range logContacts {
			entry := types.ContactEntry{
				Index:     i,
				Timestamp: contact.Timestamp.Format(timestampLayout),
				Frequency: contact.Frequency,
				Mode:      contact.Mode,
				TheirCall: contact.TheirCall,
				SentExch:  contact.SentExch,
				RcvdExch:  contact.RcvdExch,
			}

			if deps.Metrics != nil {
				deps.Metrics.RecordResolve()
			}

			pos, err := resolver.Resolve(contact.Timestamp)
			if err != nil {
				var notMapped *timeline.NotMappedError
				if errors.As(err, &notMapped) {
					entry.Reason = notMapped.Reason
					if deps.Metrics != nil {
						deps.Metrics.RecordNotMapped(notMapped.Reason)
					}
				} else {
					entry.Reason = err.Error()
				}
			} else {
				entry.Mapped = true
				entry.FileID = pos.FileID
				entry.FileOffset = pos.IntraOffset
				entry.Offset = pos.AbsoluteOffset
			}

			entries = append(entries, entry)
		}

		c.JSON(http.StatusOK, types.ContactsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Contest:      contest.Name,
			Contacts:     entries,
			Count:        len(entries),
		})
	}
}

// Audio serves one recording file with range support for seeking
// @Summary Serve a recording file
// @Description Streams one of the contest's audio files. Range requests are supported so players can seek.
// @Tags contests
// @Produce audio/mpeg
// @Param name path string true "Contest folder name"
// @Param filename path string true "Audio file name"
// @Success 200 {file} binary
// @Failure 404 {object} types.ErrorResponse "Contest or file not found"
// @Router /api/v1/contests/{name}/audio/{filename} [get]
func Audio(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		contest, err := deps.ContestService.Get(c.Request.Context(), c.Param("name"))
		if err != nil {
			sendContestError(c, err)
			return
		}

		path, err := contest.AudioPath(c.Param("filename"))
		if err != nil {
			types.SendNotFound(c, "Unknown audio file")
			return
		}

		c.Header("Content-Type", "audio/mpeg")
		c.File(path)
	}
}

// loadContest resolves the contest and its built inventory, writing the
// error response itself when either step fails
func loadContest(c *gin.Context, deps *types.Dependencies) (*contestsService.Contest, *timeline.Inventory, bool) {
	contest, err := deps.ContestService.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		sendContestError(c, err)
		return nil, nil, false
	}

	inv, err := deps.Registry.GetOrBuild(c.Request.Context(), contest.Name, contest.AudioPaths)
	if err != nil {
		types.SendConflict(c, "Audio inventory build failed: "+err.Error())
		return nil, nil, false
	}

	return contest, inv, true
}

func sendContestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, contestsService.ErrContestNotFound):
		types.SendNotFound(c, "Contest not found")
	case errors.Is(err, contestsService.ErrInvalidContest):
		types.SendUnprocessable(c, err.Error())
	default:
		types.SendInternalError(c, err.Error())
	}
}
