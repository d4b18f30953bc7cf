package sync

import (
	"bytes"
	"encoding/json"
	"fmt"

	"skucraft/internal/platform"
	"skucraft/pkg/models"
)

// SerializeBatch renders the descriptors as newline-delimited JSON, one
// self-contained productSet input per line. The bulk executor consumes the
// stream line by line, so every line must parse without reference to its
// siblings; no ordering guarantee is made or relied upon.
func SerializeBatch(descriptors []models.UpdateDescriptor) ([]byte, error) {
	var buf bytes.Buffer

	for i, descriptor := range descriptors {
		line, err := json.Marshal(platform.ProductSetInputFrom(descriptor))
		if err != nil {
			return nil, fmt.Errorf("failed to serialize update for product %s: %w", descriptor.ProductID, err)
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(line)
	}
	return buf.Bytes(), nil
}
