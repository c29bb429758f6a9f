// Package schema resolves heterogeneous source headers onto the canonical
// Title/Url/Image/Price columns.
package schema

import (
	"fmt"
	"strings"

	"prodedup/product"
)

// MissingColumnError reports the first canonical field with no matching
// source header.
type MissingColumnError struct {
	Field string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column! no header matches %q", e.Field)
}

// Resolve classifies each header by case-insensitive substring against the
// canonical keywords, in priority order title, url, image, price. A header
// is assigned to the first keyword it matches; when several headers match
// the same keyword the last one wins the slot.
func Resolve(headers []string) (product.Mapping, error) {
	mapping := product.Mapping{Title: -1, Url: -1, Image: -1, Price: -1}

	for i, header := range headers {
		lowered := strings.ToLower(header)
		switch {
		case strings.Contains(lowered, "title"):
			mapping.Title = i
		case strings.Contains(lowered, "url"):
			mapping.Url = i
		case strings.Contains(lowered, "image"):
			mapping.Image = i
		case strings.Contains(lowered, "price"):
			mapping.Price = i
		}
	}

	switch {
	case mapping.Title < 0:
		return product.Mapping{}, &MissingColumnError{Field: "title"}
	case mapping.Url < 0:
		return product.Mapping{}, &MissingColumnError{Field: "url"}
	case mapping.Image < 0:
		return product.Mapping{}, &MissingColumnError{Field: "image"}
	case mapping.Price < 0:
		return product.Mapping{}, &MissingColumnError{Field: "price"}
	}

	return mapping, nil
}
