package exports

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contestreplay/replay-api/api/types"
	"github.com/contestreplay/replay-api/internal/models"
	contestsService "github.com/contestreplay/replay-api/internal/services/contests"
	"github.com/contestreplay/replay-api/internal/services/snippets"
	"github.com/contestreplay/replay-api/internal/services/timeline"
)

// CreateExportRequest represents the request to export a snippet
// @Description Request body for exporting a contact range as a paired audio and log bundle
type CreateExportRequest struct {
	StartIndex int `json:"start_index" binding:"min=0" example:"12"`
	EndIndex   int `json:"end_index" binding:"min=0" example:"15"`
}

// Create handles snippet export creation
// @Summary Export a contact range as an audio snippet
// @Description Extracts the audio window covering the selected contacts into one MP3, pairs it with the matching Cabrillo log subset and bundles both as a ZIP. Extraction runs synchronously; the response carries the final status.
// @Tags exports
// @Accept json
// @Produce json
// @Param name path string true "Contest folder name"
// @Param request body CreateExportRequest true "Inclusive contact index range"
// @Success 201 {object} types.ExportResponse
// @Failure 400 {object} types.ErrorResponse "Invalid index range or span too long"
// @Failure 404 {object} types.ErrorResponse "Contest not found"
// @Failure 409 {object} types.ErrorResponse "Audio inventory could not be built"
// @Failure 422 {object} types.ErrorResponse "Selection falls outside the recorded audio"
// @Failure 500 {object} types.ErrorResponse "Extraction failed"
// @Router /api/v1/contests/{name}/exports [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateExportRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		export, err := deps.ExportService.Export(c.Request.Context(), c.Param("name"), req.StartIndex, req.EndIndex)
		if err != nil {
			sendExportError(c, err)
			return
		}

		types.SendCreated(c, toResponse(export))
	}
}

// ListExports handles export listing
// @Summary List exports
// @Description Lists exports newest first, optionally filtered by contest
// @Tags exports
// @Produce json
// @Param contest query string false "Filter by contest name"
// @Success 200 {object} types.ExportsResponse
// @Router /api/v1/exports [get]
func ListExports(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		exports, err := deps.ExportService.List(c.Request.Context(), c.Query("contest"))
		if err != nil {
			types.SendInternalError(c, "Failed to list exports: "+err.Error())
			return
		}

		responses := make([]types.ExportResponse, 0, len(exports))
		for i := range exports {
			responses = append(responses, toResponse(&exports[i]))
		}

		c.JSON(http.StatusOK, types.ExportsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Exports:      responses,
			Count:        len(responses),
		})
	}
}

// GetExport handles single export requests
// @Summary Get an export
// @Tags exports
// @Produce json
// @Param uuid path string true "Export UUID"
// @Success 200 {object} types.ExportResponse
// @Failure 404 {object} types.ErrorResponse "Export not found"
// @Router /api/v1/exports/{uuid} [get]
func GetExport(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		export, err := deps.ExportService.Get(c.Request.Context(), c.Param("uuid"))
		if err != nil {
			sendExportError(c, err)
			return
		}

		types.SendSuccess(c, toResponse(export))
	}
}

// Download handles bundle downloads
// @Summary Download an export bundle
// @Description Streams the ZIP containing the snippet audio and its log subset
// @Tags exports
// @Produce application/zip
// @Param uuid path string true "Export UUID"
// @Success 200 {file} binary
// @Failure 404 {object} types.ErrorResponse "Export not found"
// @Failure 409 {object} types.ErrorResponse "Export is not ready"
// @Router /api/v1/exports/{uuid}/download [get]
func Download(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, err := deps.ExportService.BundlePath(c.Request.Context(), c.Param("uuid"))
		if err != nil {
			sendExportError(c, err)
			return
		}

		filename := fmt.Sprintf("snippet_%s.zip", c.Param("uuid"))
		c.Header("Content-Type", "application/zip")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.File(path)
	}
}

// DeleteExport handles export deletion
// @Summary Delete an export
// @Description Removes the export record and its files on disk
// @Tags exports
// @Produce json
// @Param uuid path string true "Export UUID"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse "Export not found"
// @Router /api/v1/exports/{uuid} [delete]
func DeleteExport(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.ExportService.Delete(c.Request.Context(), c.Param("uuid")); err != nil {
			sendExportError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Export deleted",
		})
	}
}

// toResponse converts an export record into its API shape
func toResponse(export *models.Export) types.ExportResponse {
	return types.ExportResponse{
		UUID:         export.UUID,
		ContestName:  export.ContestName,
		StartIndex:   export.StartIndex,
		EndIndex:     export.EndIndex,
		ContactCount: export.ContactCount(),
		StartOffset:  export.StartOffset,
		EndOffset:    export.EndOffset,
		Duration:     export.Duration,
		SizeBytes:    export.SizeBytes,
		Status:       export.Status,
		ErrorMessage: export.ErrorMessage,
		CreatedAt:    export.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// sendExportError maps service errors onto HTTP statuses
func sendExportError(c *gin.Context, err error) {
	var notMapped *timeline.NotMappedError
	switch {
	case errors.Is(err, contestsService.ErrContestNotFound):
		types.SendNotFound(c, "Contest not found")
	case errors.Is(err, snippets.ErrExportNotFound):
		types.SendNotFound(c, "Export not found")
	case errors.Is(err, snippets.ErrExportNotReady):
		types.SendConflict(c, err.Error())
	case errors.Is(err, snippets.ErrInvalidRange),
		errors.Is(err, snippets.ErrSpanTooLong):
		types.SendBadRequest(c, err.Error())
	case errors.As(err, &notMapped):
		types.SendUnprocessable(c, err.Error())
	case errors.Is(err, timeline.ErrInventoryBuild):
		types.SendConflict(c, "Audio inventory build failed: "+err.Error())
	default:
		types.SendInternalError(c, err.Error())
	}
}
