package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harish222600/LMS-SELL-sub001/internal/service"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/storage"
)

func exportTestHandler(t *testing.T) *ExportHandler {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := service.NewExportService(nil, nil, nil, nil, files, signer, config.ExportsConfig{Enabled: true}, nil)
	return NewExportHandler(svc)
}

func TestExportHandlerDownloadRequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := exportTestHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/download", nil)

	h.Download(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandlerDownloadRejectsForgedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := exportTestHandler(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/download?token=export-1.123.ZmlsZQ.deadbeef", nil)

	h.Download(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "EXPORT_TOKEN_INVALID", envelope.Error["code"])
}
