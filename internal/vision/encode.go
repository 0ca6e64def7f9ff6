package vision

import (
	"encoding/base64"
	"fmt"
	"os"
)

// EncodeImageFile reads the image at path and returns its raw bytes as a
// base64 string.
func EncodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
