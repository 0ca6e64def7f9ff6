// Package freshness estimates shelf life and category for a product name
// using ordered keyword tables. The first matching rule wins.
package freshness

import (
	"math"
	"strings"
	"time"
)

type expiryRule struct {
	keywords []string
	days     int
}

type categoryRule struct {
	keywords []string
	label    string
}

const defaultExpiryDays = 30

const DefaultCategory = "Altele"

var expiryRules = []expiryRule{
	{[]string{"lapte", "iaurt", "milk", "yogurt"}, 7},
	{[]string{"paine", "bread", "franzela"}, 3},
	{[]string{"carne", "meat", "porc", "vita", "pui"}, 5},
	{[]string{"branza", "cheese", "telemea"}, 14},
	{[]string{"cafea", "coffee", "cafe"}, 365},
	{[]string{"conserva", "conserve", "canned"}, 730},
}

var categoryRules = []categoryRule{
	{[]string{"lapte", "iaurt", "branza", "cheese", "milk"}, "Lactate"},
	{[]string{"paine", "bread", "franzela"}, "Panificație"},
	{[]string{"carne", "meat", "porc", "vita", "pui"}, "Carne"},
	{[]string{"cafea", "coffee", "cafe"}, "Băuturi"},
	{[]string{"sapun", "soap", "detergent"}, "Igienă"},
	{[]string{"baterie", "battery"}, "Electronice"},
}

// EstimateExpiry returns the estimated expiry timestamp for a product name
// relative to now.
func EstimateExpiry(productName string, now time.Time) time.Time {
	name := strings.ToLower(productName)
	for _, rule := range expiryRules {
		if containsAny(name, rule.keywords) {
			return now.AddDate(0, 0, rule.days)
		}
	}
	return now.AddDate(0, 0, defaultExpiryDays)
}

// Categorize maps a product name to its category label.
func Categorize(productName string) string {
	name := strings.ToLower(productName)
	for _, rule := range categoryRules {
		if containsAny(name, rule.keywords) {
			return rule.label
		}
	}
	return DefaultCategory
}

// DaysLeft is the whole number of days between now and expiry, rounded
// down. Negative means already expired.
func DaysLeft(expiry, now time.Time) int {
	return int(math.Floor(expiry.Sub(now).Hours() / 24))
}

func containsAny(name string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
