package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"backend/internal/models"
)

/* =======================
   GET – LIST
======================= */

func GetProducts(db *mongo.Database, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, log, "GetProducts")

		limit := int64(100)
		if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed < 1 {
				respondWithError(c, http.StatusBadRequest, log, "GetProducts", "invalid limit")
				return
			}
			limit = parsed
		}
		filterType := strings.TrimSpace(c.Query("filter_type"))

		ctx := context.Background()

		cursor, err := db.Collection(InvoiceCollection).Find(ctx, bson.M{}, options.Find().SetLimit(limit))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, log, "GetProducts", "db error")
			return
		}
		defer cursor.Close(ctx)

		var docs []models.InvoiceDocument
		if err := cursor.All(ctx, &docs); err != nil {
			respondWithError(c, http.StatusInternalServerError, log, "GetProducts", "decode error")
			return
		}

		now := time.Now()
		products := make([]models.Product, 0)
		for _, doc := range docs {
			for _, product := range flattenInvoiceDocument(doc, now) {
				if filterType != "" && !matchesFilter(filterType, product.DaysLeft) {
					continue
				}
				products = append(products, product)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"total":    len(products),
		})
	}
}

/* =======================
   CREATE (MANUAL ENTRY)
======================= */

func CreateProduct(db *mongo.Database, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, log, "CreateProduct")

		var product map[string]interface{}
		if err := c.ShouldBindJSON(&product); err != nil {
			respondWithError(c, http.StatusBadRequest, log, "CreateProduct", "invalid body")
			return
		}
		if product == nil {
			product = map[string]interface{}{}
		}

		now := time.Now()
		product["id"] = uuid.NewString()
		product["addedDate"] = now

		doc := bson.M{
			"invoice":   bson.A{product},
			"type":      models.TypeManualEntry,
			"createdAt": now,
			"addedDate": now,
		}

		res, err := db.Collection(InvoiceCollection).InsertOne(context.Background(), doc)
		if err != nil {
			log.Errorw("manual product insert failed", "error", err)
			respondWithError(c, http.StatusInternalServerError, log, "CreateProduct", err.Error())
			return
		}

		product["_id"] = res.InsertedID.(primitive.ObjectID).Hex()
		log.Infow("manual product saved", "id", product["id"])
		c.JSON(http.StatusOK, product)
	}
}

/* =======================
   DELETE
======================= */

func DeleteProduct(db *mongo.Database, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, log, "DeleteProduct")

		id, err := primitive.ObjectIDFromHex(c.Param("product_id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, log, "DeleteProduct", "invalid id")
			return
		}

		res, err := db.Collection(InvoiceCollection).DeleteOne(context.Background(), bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, log, "DeleteProduct", "db error")
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, log, "DeleteProduct", "product not found")
			return
		}

		log.Infow("product deleted", "id", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

/* =======================
   STATS
======================= */

func GetProductStats(db *mongo.Database, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, log, "GetProductStats")

		ctx := context.Background()

		cursor, err := db.Collection(InvoiceCollection).Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, log, "GetProductStats", "db error")
			return
		}
		defer cursor.Close(ctx)

		var docs []models.InvoiceDocument
		if err := cursor.All(ctx, &docs); err != nil {
			respondWithError(c, http.StatusInternalServerError, log, "GetProductStats", "decode error")
			return
		}

		now := time.Now()
		total, expired, expiringSoon := 0, 0, 0
		for _, doc := range docs {
			for _, product := range flattenInvoiceDocument(doc, now) {
				total++
				if product.DaysLeft <= 0 {
					expired++
				} else if product.DaysLeft <= expiringSoonDays {
					expiringSoon++
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"total":         total,
			"expired":       expired,
			"expiring_soon": expiringSoon,
			"fresh":         total - expired - expiringSoon,
		})
	}
}
