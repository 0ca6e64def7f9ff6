package vision

import (
	"errors"
	"testing"
)

func TestExtractJSONBlock(t *testing.T) {
	raw := "Here is the invoice data:\n```json\n{\"invoice\":[{\"Product\":\"Milk\",\"Stock\":\"2\"}]}\n```\nLet me know if you need more."

	parsed, err := ExtractJSONBlock(raw)
	if err != nil {
		t.Fatalf("ExtractJSONBlock returned error: %v", err)
	}

	items, ok := parsed["invoice"].([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("expected one invoice item, got %v", parsed["invoice"])
	}
	entry, ok := items[0].(map[string]interface{})
	if !ok || entry["Product"] != "Milk" || entry["Stock"] != "2" {
		t.Fatalf("unexpected entry: %v", items[0])
	}
}

func TestExtractJSONBlockSpansMultipleLines(t *testing.T) {
	raw := "```json\n{\n  \"invoice\": [\n    {\"Product\": \"Paine\", \"Stock\": \"1\"}\n  ]\n}\n```"

	parsed, err := ExtractJSONBlock(raw)
	if err != nil {
		t.Fatalf("ExtractJSONBlock returned error: %v", err)
	}
	if _, ok := parsed["invoice"]; !ok {
		t.Fatalf("expected invoice key, got %v", parsed)
	}
}

func TestExtractJSONBlockMissingFence(t *testing.T) {
	_, err := ExtractJSONBlock("Sorry, I could not read the invoice.")
	if !errors.Is(err, ErrNoJSONBlock) {
		t.Fatalf("expected ErrNoJSONBlock, got %v", err)
	}
}

func TestExtractJSONBlockInvalidJSON(t *testing.T) {
	_, err := ExtractJSONBlock("```json\n{\"invoice\": [}\n```")
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestExtractJSONBlockIgnoresPlainFences(t *testing.T) {
	_, err := ExtractJSONBlock("```\n{\"invoice\": []}\n```")
	if !errors.Is(err, ErrNoJSONBlock) {
		t.Fatalf("expected ErrNoJSONBlock for unlabelled fence, got %v", err)
	}
}
