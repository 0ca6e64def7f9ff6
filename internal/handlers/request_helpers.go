package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoiceCollection is the single collection holding invoice documents.
const InvoiceCollection = "product"

func respondWithError(c *gin.Context, status int, log *zap.SugaredLogger, route, message string) {
	log.Warnw("request failed", "route", route, "status", status, "error", message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func handlePanic(c *gin.Context, log *zap.SugaredLogger, route string) {
	if r := recover(); r != nil {
		log.Errorw("panic recovered", "route", route, "panic", r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
