package sku

import (
	"testing"

	"skucraft/pkg/models"
)

func TestContinueBase(t *testing.T) {
	rules := models.GeneratorRules{
		Prefix:         "SKU",
		BodyType:       models.BodyTypeContinueFromLast,
		StartingNumber: 1,
		Separator:      "-",
		Layout:         []string{models.SlotPrefix, models.SlotBody, models.SlotSuffix},
	}

	tests := []struct {
		name     string
		existing []string
		want     int
	}{
		{"no existing codes", nil, 1},
		{"none match the shape", []string{"OTHER-5", "misc"}, 1},
		{"single match", []string{"SKU-41"}, 42},
		{"highest wins", []string{"SKU-3", "SKU-107", "SKU-55"}, 108},
		{"non-numeric bodies skipped", []string{"SKU-abc", "SKU-12"}, 13},
		{"foreign prefixes ignored", []string{"XYZ-999", "SKU-20"}, 21},
	}

	for _, test := range tests {
		if got := ContinueBase(rules, test.existing); got != test.want {
			t.Errorf("%s: ContinueBase = %d, want %d", test.name, got, test.want)
		}
	}
}

func TestContinueBaseWithSuffix(t *testing.T) {
	rules := models.GeneratorRules{
		Prefix:         "A",
		Suffix:         "Z",
		StartingNumber: 10,
		Separator:      "-",
		Layout:         []string{models.SlotPrefix, models.SlotBody, models.SlotSuffix},
	}

	existing := []string{"A-7-Z", "A-19-Z", "A-100"}
	if got := ContinueBase(rules, existing); got != 20 {
		t.Errorf("ContinueBase = %d, want 20 (A-100 lacks the suffix)", got)
	}
}

func TestContinueBaseExtraComponents(t *testing.T) {
	rules := models.GeneratorRules{
		Prefix:         "SKU",
		StartingNumber: 1,
		Separator:      "-",
		Layout:         []string{models.SlotPrefix, models.SlotBody, models.SlotSuffix},
	}

	// The numeric body may sit between non-numeric components.
	existing := []string{"SKU-Acme-77", "SKU-9-Acme"}
	if got := ContinueBase(rules, existing); got != 78 {
		t.Errorf("ContinueBase = %d, want 78", got)
	}
}

func TestContinueBaseEmptySeparator(t *testing.T) {
	rules := models.GeneratorRules{
		Prefix:         "P",
		StartingNumber: 1,
		Separator:      "",
		Layout:         []string{models.SlotPrefix, models.SlotBody, models.SlotSuffix},
	}

	existing := []string{"P12", "P430", "Q999"}
	if got := ContinueBase(rules, existing); got != 431 {
		t.Errorf("ContinueBase = %d, want 431", got)
	}
}
