package vision

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNoJSONBlock means the completion contained no ```json fenced block.
	ErrNoJSONBlock = errors.New("JSON block not found in the response")
	// ErrInvalidJSON means the fenced block did not parse as a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON format inside code block")
)

var fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// ExtractJSONBlock pulls the first ```json ... ``` fenced object out of the
// model completion and parses it.
func ExtractJSONBlock(rawText string) (bson.M, error) {
	match := fencedJSONPattern.FindStringSubmatch(rawText)
	if match == nil {
		return nil, ErrNoJSONBlock
	}

	var parsed bson.M
	if err := json.Unmarshal([]byte(match[1]), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return parsed, nil
}
