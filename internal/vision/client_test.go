package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, string) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	auditDir := t.TempDir()
	client := NewClient("test-key", "pixtral-12b-2409", server.URL, auditDir, 5*time.Second, zap.NewNop().Sugar())
	return client, auditDir
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestExtractInvoiceParsesCompletion(t *testing.T) {
	var gotAuth string
	client, auditDir := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request body did not decode: %v", err)
		}
		if req["model"] != "pixtral-12b-2409" {
			t.Errorf("unexpected model: %v", req["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("```json\n{\"invoice\":[{\"Product\":\"Milk\",\"Stock\":\"2\"}]}\n```")))
	})

	parsed, err := client.ExtractInvoice(context.Background(), base64.StdEncoding.EncodeToString([]byte("img")))
	if err != nil {
		t.Fatalf("ExtractInvoice returned error: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}

	items, ok := parsed["invoice"].([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("expected one invoice item, got %v", parsed["invoice"])
	}

	// Audit copy is written alongside the extraction.
	entries, err := os.ReadDir(auditDir)
	if err != nil {
		t.Fatalf("reading audit dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "invoice_") {
		t.Fatalf("expected one invoice_* audit file, got %v", entries)
	}
	data, err := os.ReadFile(filepath.Join(auditDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("reading audit file: %v", err)
	}
	if !strings.Contains(string(data), "Milk") {
		t.Fatalf("audit file missing extracted data: %s", data)
	}
}

func TestExtractInvoiceSurfacesUpstreamError(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	})

	_, err := client.ExtractInvoice(context.Background(), "aW1n")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestExtractInvoiceNoFencedBlockWritesNoAudit(t *testing.T) {
	client, auditDir := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionBody("I could not find any structured data.")))
	})

	_, err := client.ExtractInvoice(context.Background(), "aW1n")
	if err == nil {
		t.Fatal("expected extraction error")
	}

	entries, readErr := os.ReadDir(auditDir)
	if readErr != nil {
		t.Fatalf("reading audit dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no audit files for failed extraction, got %v", entries)
	}
}

func TestEncodeImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.jpg")
	if err := os.WriteFile(path, []byte{0xff, 0xd8, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}

	encoded, err := EncodeImageFile(path)
	if err != nil {
		t.Fatalf("EncodeImageFile returned error: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("output is not valid base64: %v", err)
	}
	if string(decoded) != string([]byte{0xff, 0xd8, 0xff}) {
		t.Fatalf("roundtrip mismatch: %v", decoded)
	}
}

func TestEncodeImageFileMissing(t *testing.T) {
	if _, err := EncodeImageFile(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
