package validation

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
)

// DefaultMaxImageBytes bounds uploads when no limit is configured.
const DefaultMaxImageBytes int64 = 5 << 20

// Image checks the metadata of an uploaded file before it is sent anywhere.
func Image(contentType string, size, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	verr := &domain.ValidationError{}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		verr.Add("image", "Upload must be an image")
	}
	if size > maxBytes {
		verr.Add("image", fmt.Sprintf("Image must be %d bytes or smaller", maxBytes))
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}
