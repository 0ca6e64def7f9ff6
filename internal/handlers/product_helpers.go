package handlers

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"backend/internal/freshness"
	"backend/internal/models"
)

const expiringSoonDays = 7

// entryMap normalizes one raw invoice entry to a map. Mongo decodes
// documents inside an interface{} slice as bson.D, JSON decoding yields
// plain maps; anything that is not an object reports false.
func entryMap(raw interface{}) (map[string]interface{}, bool) {
	switch v := raw.(type) {
	case bson.M:
		return v, true
	case bson.D:
		return v.Map(), true
	case map[string]interface{}:
		return v, true
	default:
		return nil, false
	}
}

// stringField reads a key from a raw invoice entry, coercing non-string
// values so numeric quantities from the model still serialize cleanly.
func stringField(entry map[string]interface{}, key, fallback string) string {
	value, ok := entry[key]
	if !ok || value == nil {
		return fallback
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// flattenInvoiceDocument expands one stored document into served line
// items, skipping entries that are not objects. Expiry, daysLeft and
// category are recomputed against now on every call; the item id is the
// owning document's id so deletes can target it.
func flattenInvoiceDocument(doc models.InvoiceDocument, now time.Time) []models.Product {
	added := now
	if doc.AddedDate != nil {
		added = *doc.AddedDate
	}

	products := make([]models.Product, 0, len(doc.Invoice))
	for _, raw := range doc.Invoice {
		entry, ok := entryMap(raw)
		if !ok {
			continue
		}
		name := stringField(entry, "Product", "")
		expiry := freshness.EstimateExpiry(name, now)
		products = append(products, models.Product{
			ID:         doc.ID.Hex(),
			Name:       name,
			Quantity:   stringField(entry, "Stock", "1"),
			ExpiryDate: expiry,
			DaysLeft:   freshness.DaysLeft(expiry, now),
			Category:   freshness.Categorize(name),
			AddedDate:  added,
		})
	}
	return products
}

// matchesFilter applies the expiry-bucket filter. The three buckets
// partition daysLeft: expired <= 0 < expiring_soon <= 7 < fresh. Unknown
// filter values keep everything, matching the original behavior.
func matchesFilter(filterType string, daysLeft int) bool {
	switch filterType {
	case "expired":
		return daysLeft <= 0
	case "expiring_soon":
		return daysLeft > 0 && daysLeft <= expiringSoonDays
	case "fresh":
		return daysLeft > expiringSoonDays
	default:
		return true
	}
}
