package handlers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"backend/internal/freshness"
	"backend/internal/models"
	"backend/internal/vision"
)

// AnalyzeInvoice handles the full ingestion pipeline: uploaded image →
// temp file → base64 → vision model → persisted document → enriched
// products. There is no rollback: a document persisted before a later
// failure stays persisted.
func AnalyzeInvoice(db *mongo.Database, client *vision.Client, tempDir string, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, log, "AnalyzeInvoice")

		file, err := c.FormFile("file")
		if err != nil {
			analyzeRequests.WithLabelValues("rejected").Inc()
			respondWithError(c, http.StatusBadRequest, log, "AnalyzeInvoice", "file required")
			return
		}

		if err := os.MkdirAll(tempDir, 0o755); err != nil {
			analyzeRequests.WithLabelValues("error").Inc()
			respondWithError(c, http.StatusInternalServerError, log, "AnalyzeInvoice", err.Error())
			return
		}

		// Collision hazard: two concurrent uploads sharing a filename race
		// on this path.
		tempPath := filepath.Join(tempDir, "temp_"+filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, tempPath); err != nil {
			analyzeRequests.WithLabelValues("error").Inc()
			respondWithError(c, http.StatusInternalServerError, log, "AnalyzeInvoice", err.Error())
			return
		}
		defer removeTempFile(tempPath, log)

		base64Image, err := vision.EncodeImageFile(tempPath)
		if err != nil {
			analyzeRequests.WithLabelValues("error").Inc()
			respondWithError(c, http.StatusInternalServerError, log, "AnalyzeInvoice", err.Error())
			return
		}

		parsed, err := client.ExtractInvoice(c.Request.Context(), base64Image)
		if err != nil {
			analyzeRequests.WithLabelValues("extraction_failed").Inc()
			respondWithError(c, http.StatusInternalServerError, log, "AnalyzeInvoice", err.Error())
			return
		}

		now := time.Now()
		parsed["type"] = models.TypeVisionExtracted
		parsed["createdAt"] = now
		parsed["addedDate"] = now

		res, err := db.Collection(InvoiceCollection).InsertOne(context.Background(), parsed)
		if err != nil {
			analyzeRequests.WithLabelValues("error").Inc()
			log.Errorw("invoice insert failed", "error", err)
			respondWithError(c, http.StatusInternalServerError, log, "AnalyzeInvoice", err.Error())
			return
		}
		parsed["_id"] = res.InsertedID.(primitive.ObjectID).Hex()

		if rawInvoice, ok := parsed["invoice"].([]interface{}); ok {
			parsed["products"] = enrichLineItems(rawInvoice, now)
		}

		analyzeRequests.WithLabelValues("ok").Inc()
		log.Infow("invoice analyzed", "file", file.Filename, "document_id", parsed["_id"])
		c.JSON(http.StatusOK, parsed)
	}
}

// enrichLineItems attaches fresh ids and estimated expiry/category data to
// each extracted entry. Entries that are not objects are skipped.
func enrichLineItems(rawInvoice []interface{}, now time.Time) []models.Product {
	products := make([]models.Product, 0, len(rawInvoice))
	for _, raw := range rawInvoice {
		entry, ok := entryMap(raw)
		if !ok {
			continue
		}
		name := stringField(entry, "Product", "")
		expiry := freshness.EstimateExpiry(name, now)
		products = append(products, models.Product{
			ID:         uuid.NewString(),
			Name:       name,
			Quantity:   stringField(entry, "Stock", "1"),
			ExpiryDate: expiry,
			DaysLeft:   freshness.DaysLeft(expiry, now),
			Category:   freshness.Categorize(name),
			AddedDate:  now,
		})
	}
	return products
}

func removeTempFile(path string, log *zap.SugaredLogger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warnw("temp file delete failed", "path", path, "error", err)
	}
}
