package sync

import (
	"encoding/json"
	"strings"
	"testing"

	"skucraft/pkg/models"
)

func TestSerializeBatchOneLinePerProduct(t *testing.T) {
	descriptors := []models.UpdateDescriptor{
		{
			ProductID: "gid://p/1",
			Options:   []models.OptionSchemaEntry{{Name: "Size", Values: []string{"S", "M"}}},
			Variants: []models.VariantUpdate{
				{VariantID: "gid://v/1", NewSKU: "SKU-1", OptionValues: []models.SelectedOption{{Name: "Size", Value: "S"}}},
				{VariantID: "gid://v/2", NewSKU: "SKU-2", OptionValues: []models.SelectedOption{{Name: "Size", Value: "M"}}},
			},
		},
		{
			ProductID: "gid://p/2",
			Options:   []models.OptionSchemaEntry{{Name: "Title", Values: []string{"Default Title"}}},
			Variants: []models.VariantUpdate{
				{VariantID: "gid://v/3", NewSKU: "SKU-1", OptionValues: []models.SelectedOption{{Name: "Title", Value: "Default Title"}}},
			},
		},
	}

	batch, err := SerializeBatch(descriptors)
	if err != nil {
		t.Fatalf("SerializeBatch: %v", err)
	}

	lines := strings.Split(string(batch), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	// Every line must be a complete document on its own.
	for i, line := range lines {
		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			t.Fatalf("line %d does not parse standalone: %v", i, err)
		}
		for _, key := range []string{"id", "productOptions", "variants"} {
			if _, ok := doc[key]; !ok {
				t.Errorf("line %d missing wire field %q", i, key)
			}
		}
	}

	var first struct {
		ID       string `json:"id"`
		Variants []struct {
			ID           string `json:"id"`
			SKU          string `json:"sku"`
			OptionValues []struct {
				Name       string `json:"name"`
				OptionName string `json:"optionName"`
			} `json:"optionValues"`
		} `json:"variants"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line: %v", err)
	}
	if first.ID != "gid://p/1" {
		t.Errorf("first line id = %q", first.ID)
	}
	if first.Variants[0].SKU != "SKU-1" {
		t.Errorf("first variant sku = %q", first.Variants[0].SKU)
	}
	// Wire orientation flips name/value: name carries the value.
	ov := first.Variants[0].OptionValues[0]
	if ov.Name != "S" || ov.OptionName != "Size" {
		t.Errorf("option value wire shape = %+v, want name=S optionName=Size", ov)
	}
}

func TestSerializeBatchEmpty(t *testing.T) {
	batch, err := SerializeBatch(nil)
	if err != nil {
		t.Fatalf("SerializeBatch: %v", err)
	}
	if len(batch) != 0 {
		t.Errorf("empty batch serialized to %q", batch)
	}
}
