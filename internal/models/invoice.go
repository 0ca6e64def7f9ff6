package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceDocument is one persisted ingestion or manual-entry event. The
// invoice entries keep whatever shape the vision model produced, including
// non-object values, so they are decoded as raw BSON values and read
// leniently.
type InvoiceDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Invoice   bson.A             `bson:"invoice,omitempty" json:"invoice,omitempty"`
	Type      string             `bson:"type,omitempty" json:"type,omitempty"`
	CreatedAt *time.Time         `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	AddedDate *time.Time         `bson:"addedDate,omitempty" json:"addedDate,omitempty"`
}

const (
	TypeVisionExtracted = "vision_extracted"
	TypeManualEntry     = "manual_entry"
)

// Product is a single line item as served by the API. DaysLeft and
// Category are derived from Name at read time and never stored.
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Quantity   string    `json:"quantity"`
	ExpiryDate time.Time `json:"expiryDate"`
	DaysLeft   int       `json:"daysLeft"`
	Category   string    `json:"category"`
	AddedDate  time.Time `json:"addedDate"`
}
