package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestAnalyzeInvoiceRequiresFile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("note", "no file part here")
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/api/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req

	handler := AnalyzeInvoice(nil, nil, t.TempDir(), zap.NewNop().Sugar())
	handler(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing file, got %d", recorder.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body did not decode: %v", err)
	}
	if resp["error"] != "file required" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}

func TestRemoveTempFileMissingIsQuiet(t *testing.T) {
	// Deleting an already-removed temp file must stay best-effort.
	removeTempFile(filepath.Join(t.TempDir(), "gone.jpg"), zap.NewNop().Sugar())
}
