// Package vision calls a hosted vision-language model to extract invoice
// line items from an image and pulls the structured result out of the
// free-form completion.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const extractionPrompt = "Please extract the invoice data (From Product : NameProduct and Stock(Cant.) only) " +
	"and return only the JSON wrapped in ```json ... ```"

// Message is one chat turn sent to the model.
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart is a text or image part of a message.
type ContentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client talks to the vision model's chat-completions endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	auditDir   string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

func NewClient(apiKey, model, baseURL, auditDir string, timeout time.Duration, log *zap.SugaredLogger) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		auditDir:   auditDir,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ExtractInvoice sends the base64 image to the model and returns the parsed
// object from the completion's fenced JSON block. The parsed result is also
// written to a timestamped audit file, best-effort.
func (c *Client) ExtractInvoice(ctx context.Context, base64Image string) (bson.M, error) {
	reqBody := completionRequest{
		Model: c.model,
		Messages: []Message{
			{
				Role: "user",
				Content: []ContentPart{
					{Type: "text", Text: extractionPrompt},
					{Type: "image_url", ImageURL: "data:image/jpeg;base64," + base64Image},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vision API returned status %d: %s", resp.StatusCode, string(body))
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	parsed, err := ExtractJSONBlock(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.writeAuditFile(parsed)

	return parsed, nil
}

func (c *Client) writeAuditFile(parsed bson.M) {
	if c.auditDir == "" {
		return
	}
	if err := os.MkdirAll(c.auditDir, 0o755); err != nil {
		c.log.Warnw("audit dir create failed", "dir", c.auditDir, "error", err)
		return
	}

	data, err := json.MarshalIndent(parsed, "", "    ")
	if err != nil {
		c.log.Warnw("audit marshal failed", "error", err)
		return
	}

	filename := filepath.Join(c.auditDir, fmt.Sprintf("invoice_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		c.log.Warnw("audit write failed", "file", filename, "error", err)
		return
	}
	c.log.Infow("saved extracted invoice", "file", filename)
}
