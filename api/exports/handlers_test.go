package exports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/contestreplay/replay-api/api/types"
	"github.com/contestreplay/replay-api/internal/models"
	contestsService "github.com/contestreplay/replay-api/internal/services/contests"
	"github.com/contestreplay/replay-api/internal/services/snippets"
	"github.com/contestreplay/replay-api/internal/services/timeline"
)

// fakeProber reports every recording as 300 seconds long
type fakeProber struct{}

func (fakeProber) Duration(ctx context.Context, path string) (float64, error) {
	return 300, nil
}

// fakeSplicer writes placeholder output files instead of running ffmpeg
type fakeSplicer struct{}

func (fakeSplicer) DecodeWindow(ctx context.Context, input string, offset, duration float64, outputPath string) error {
	return os.WriteFile(outputPath, []byte("pcm"), 0o644)
}

func (fakeSplicer) ConcatEncode(ctx context.Context, pieces []string, outputPath string) error {
	return os.WriteFile(outputPath, []byte("mp3"), 0o644)
}

func (fakeSplicer) PadTail(ctx context.Context, input, output string, minDuration float64) error {
	return os.WriteFile(output, []byte("mp3"), 0o644)
}

const exportHandlerLog = `START-OF-LOG: 3.0
CALLSIGN: K1ABC
CONTEST: CQ-WW-CW
QSO:  14025 CW 2024-11-23 1200 K1ABC         599 05     W2XYZ         599 14
QSO:  14025 CW 2024-11-23 1203 K1ABC         599 05     N3QRP         599 08
END-OF-LOG:
`

const exportHandlerMetadata = `recording_start_utc: "2024-11-23 11:55:00"
contest_start_utc: "2024-11-23 12:00:00"
pre_seconds: 10.0
`

func setupRouter(t *testing.T, maxSpan time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	dir := filepath.Join(root, "cqww-2024")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range []string{"20241123_1155.mp3", "20241123_1200.mp3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("mp3"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k1abc.log"), []byte(exportHandlerLog), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contest.yaml"), []byte(exportHandlerMetadata), 0o644))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Export{}))

	contestSvc := contestsService.NewService(root, "contest.yaml", 10.0)
	registry := timeline.NewRegistry(fakeProber{}, nil)
	extractor := snippets.NewExtractor(fakeSplicer{}, t.TempDir())
	exportSvc := snippets.NewService(db, contestSvc, registry, extractor, nil, t.TempDir(), maxSpan, 5.0)

	deps := &types.Dependencies{
		ContestService: contestSvc,
		Registry:       registry,
		ExportService:  exportSvc,
	}

	engine := gin.New()
	engine.POST("/api/v1/contests/:name/exports", Create(deps))
	RegisterRoutes(engine.Group("/api/v1/exports"), deps)
	return engine
}

func createExport(t *testing.T, engine *gin.Engine, contest, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contests/"+contest+"/exports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestCreate(t *testing.T) {
	engine := setupRouter(t, time.Hour)

	w := createExport(t, engine, "cqww-2024", `{"start_index": 0, "end_index": 1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.NotEmpty(t, resp.UUID)
	assert.Equal(t, 2, resp.ContactCount)
	assert.Equal(t, 290.0, resp.StartOffset)
}

func TestCreateInvalidBody(t *testing.T) {
	engine := setupRouter(t, time.Hour)

	w := createExport(t, engine, "cqww-2024", `{"start_index": "zero"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUnknownContest(t *testing.T) {
	engine := setupRouter(t, time.Hour)

	w := createExport(t, engine, "missing", `{"start_index": 0, "end_index": 0}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRangeOutOfBounds(t *testing.T) {
	engine := setupRouter(t, time.Hour)

	w := createExport(t, engine, "cqww-2024", `{"start_index": 0, "end_index": 50}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSpanTooLong(t *testing.T) {
	engine := setupRouter(t, time.Minute)

	w := createExport(t, engine, "cqww-2024", `{"start_index": 0, "end_index": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAndList(t *testing.T) {
	engine := setupRouter(t, time.Hour)

	w := createExport(t, engine, "cqww-2024", `{"start_index": 0, "end_index": 0}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/"+created.UUID, nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/exports?contest=cqww-2024", nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var list types.ExportsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/exports/no-such-uuid", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownload(t *testing.T) {
	engine := setupRouter(t, time.Hour)

	w := createExport(t, engine, "cqww-2024", `{"start_index": 0, "end_index": 0}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/"+created.UUID+"/download", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), created.UUID)
	assert.NotZero(t, w.Body.Len())
}

func TestDeleteExport(t *testing.T) {
	engine := setupRouter(t, time.Hour)

	w := createExport(t, engine, "cqww-2024", `{"start_index": 0, "end_index": 0}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/exports/"+created.UUID, nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/exports/"+created.UUID, nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
