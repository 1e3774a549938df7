package gateway

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/liveheart/dna"
)

// ErrBadImage rejects image data that is not a base64 PNG data URL
var ErrBadImage = errors.New("image data is not a png data url")

const pngDataPrefix = "data:image/png;base64,"

// SaveRequest is the JSON body of a save call
type SaveRequest struct {
	DNA       *dna.DNA `json:"dna"`
	Title     string   `json:"title,omitempty"`
	ImageData string   `json:"imageData,omitempty"`
}

// SaveResponse carries the slug on success or a message on failure
type SaveResponse struct {
	Slug  string `json:"slug,omitempty"`
	Error string `json:"error,omitempty"`
}

// ShareResponse is a saved artifact as served to viewers
type ShareResponse struct {
	Slug      string  `json:"slug"`
	Title     string  `json:"title"`
	DNA       dna.DNA `json:"dna"`
	CreatedAt string  `json:"created_at"`
	Label     string  `json:"label"`
}

// EncodeImage wraps PNG bytes in a data URL
func EncodeImage(png []byte) string {
	if len(png) == 0 {
		return ""
	}
	return pngDataPrefix + base64.StdEncoding.EncodeToString(png)
}

// DecodeImage unwraps a PNG data URL
func DecodeImage(data string) ([]byte, error) {
	payload, ok := strings.CutPrefix(data, pngDataPrefix)
	if !ok {
		return nil, ErrBadImage
	}
	png, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	if len(png) == 0 {
		return nil, ErrBadImage
	}
	return png, nil
}
