package sku

import (
	"strconv"
	"strings"
	"testing"

	"skucraft/pkg/models"
)

func baseRules() models.GeneratorRules {
	return models.GeneratorRules{
		Prefix:         "SKU",
		BodyType:       models.BodyTypeSequential,
		StartingNumber: 1,
		Separator:      "-",
		Layout:         []string{models.SlotPrefix, models.SlotBody, models.SlotSuffix},
	}
}

func testVariant() models.ProductVariant {
	oldSKU := "OLD-99"
	return models.ProductVariant{
		ID:    "gid://platform/ProductVariant/44444444",
		Title: "Large / Blue",
		SKU:   &oldSKU,
		Product: models.ParentProduct{
			ID:          "gid://platform/Product/12345678",
			Title:       "Trail Shirt",
			Vendor:      "Acme",
			ProductType: "Apparel",
		},
		SelectedOptions: []models.SelectedOption{
			{Name: "Size", Value: "Large"},
			{Name: "Color", Value: "Blue"},
		},
	}
}

func TestRenderSequential(t *testing.T) {
	rules := baseRules()
	variant := testVariant()

	for ordinal := 0; ordinal < 5; ordinal++ {
		got := Render(rules, variant, ordinal)
		want := "SKU-" + strconv.Itoa(1+ordinal)
		if got != want {
			t.Errorf("Render(ordinal=%d) = %q, want %q", ordinal, got, want)
		}
	}
}

func TestRenderSequentialScenario(t *testing.T) {
	// Three records at ordinals 0..2 with prefix SKU, start 1, separator "-".
	rules := baseRules()
	variant := testVariant()

	want := []string{"SKU-1", "SKU-2", "SKU-3"}
	for i, expected := range want {
		if got := Render(rules, variant, i); got != expected {
			t.Errorf("ordinal %d: got %q, want %q", i, got, expected)
		}
	}
}

func TestRenderZeroPadded(t *testing.T) {
	rules := baseRules()
	rules.ZeroPadded = true
	rules.PaddingWidth = 3

	tests := []struct {
		ordinal int
		want    string
	}{
		{0, "SKU-001"},
		{1, "SKU-002"},
		{2, "SKU-003"},
		{98, "SKU-099"},
		{998, "SKU-999"},
		// Wider than the padding width: unpadded, never truncated.
		{999, "SKU-1000"},
		{99999, "SKU-100000"},
	}
	for _, test := range tests {
		if got := Render(rules, testVariant(), test.ordinal); got != test.want {
			t.Errorf("Render(ordinal=%d) = %q, want %q", test.ordinal, got, test.want)
		}
	}
}

func TestRenderIsPure(t *testing.T) {
	rules := baseRules()
	rules.Suffix = "X"
	rules.AdditionalComponents = []models.AdditionalComponent{
		{ID: "vendor_1", Type: models.ComponentVendor},
	}
	rules.Layout = []string{models.SlotPrefix, models.SlotBody, "vendor_1", models.SlotSuffix}

	variant := testVariant()
	first := Render(rules, variant, 7)
	for i := 0; i < 20; i++ {
		if got := Render(rules, variant, 7); got != first {
			t.Fatalf("render diverged on call %d: %q != %q", i, got, first)
		}
	}
}

func TestRenderProductAndVariantID(t *testing.T) {
	variant := testVariant()

	rules := baseRules()
	rules.BodyType = models.BodyTypeProductID
	if got := Render(rules, variant, 0); got != "SKU-12345678" {
		t.Errorf("product id body: got %q", got)
	}

	rules.BodyType = models.BodyTypeVariantID
	if got := Render(rules, variant, 0); got != "SKU-44444444" {
		t.Errorf("variant id body: got %q", got)
	}
}

func TestRenderRandomStaysInRange(t *testing.T) {
	rules := baseRules()
	rules.BodyType = models.BodyTypeRandom
	rules.RandomMin = 10
	rules.RandomMax = 15

	for i := 0; i < 200; i++ {
		got := Render(rules, testVariant(), 0)
		body := strings.TrimPrefix(got, "SKU-")
		n, err := strconv.Atoi(body)
		if err != nil {
			t.Fatalf("random body %q is not numeric", body)
		}
		if n < 10 || n > 15 {
			t.Fatalf("random body %d outside [10,15]", n)
		}
	}
}

func TestRenderDisabledBodyDropsSlot(t *testing.T) {
	rules := baseRules()
	rules.BodyType = models.BodyTypeDisabled
	rules.Suffix = "END"

	// No doubled separator where the empty body slot sat.
	if got := Render(rules, testVariant(), 0); got != "SKU-END" {
		t.Errorf("got %q, want %q", got, "SKU-END")
	}
}

func TestRenderEmptyLayout(t *testing.T) {
	rules := baseRules()
	rules.Layout = nil
	if got := Render(rules, testVariant(), 0); got != "" {
		t.Errorf("empty layout rendered %q, want empty string", got)
	}
}

func TestRenderAdditionalComponents(t *testing.T) {
	variant := testVariant()

	tests := []struct {
		kind models.ComponentType
		want string
	}{
		{models.ComponentProductName, "Trail Shirt"},
		{models.ComponentVariantName, "Large / Blue"},
		{models.ComponentVendor, "Acme"},
		{models.ComponentProductType, "Apparel"},
		{models.ComponentOldSKU, "OLD-99"},
		{models.ComponentOption1, "Large"},
		{models.ComponentOption2, "Blue"},
		// Missing option index yields empty, and the slot is dropped.
		{models.ComponentOption3, ""},
	}
	for _, test := range tests {
		rules := baseRules()
		rules.BodyType = models.BodyTypeDisabled
		rules.AdditionalComponents = []models.AdditionalComponent{{ID: "comp", Type: test.kind}}
		rules.Layout = []string{models.SlotPrefix, models.SlotBody, "comp", models.SlotSuffix}

		want := "SKU"
		if test.want != "" {
			want = "SKU-" + test.want
		}
		if got := Render(rules, variant, 0); got != want {
			t.Errorf("%s: got %q, want %q", test.kind, got, want)
		}
	}
}

func TestRenderVendorBetweenBodyAndSuffix(t *testing.T) {
	rules := baseRules()
	rules.Suffix = "Z"
	rules.AdditionalComponents = []models.AdditionalComponent{
		{ID: "vendor_1", Type: models.ComponentVendor},
	}
	rules.Layout = []string{models.SlotPrefix, models.SlotBody, "vendor_1", models.SlotSuffix}

	if got := Render(rules, testVariant(), 0); got != "SKU-1-Acme-Z" {
		t.Errorf("got %q, want %q", got, "SKU-1-Acme-Z")
	}
}

func TestRenderEmptySeparator(t *testing.T) {
	rules := baseRules()
	rules.Separator = ""
	if got := Render(rules, testVariant(), 0); got != "SKU1" {
		t.Errorf("got %q, want %q", got, "SKU1")
	}
}
