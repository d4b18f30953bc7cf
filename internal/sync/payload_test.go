package sync

import (
	"errors"
	"reflect"
	"testing"

	"skucraft/pkg/models"
)

func sequentialRules() models.GeneratorRules {
	return models.GeneratorRules{
		Prefix:         "SKU",
		BodyType:       models.BodyTypeSequential,
		StartingNumber: 1,
		Separator:      "-",
		Layout:         []string{models.SlotPrefix, models.SlotBody, models.SlotSuffix},
	}
}

func variantOf(productID, productTitle, variantID string, options ...models.SelectedOption) models.ProductVariant {
	return models.ProductVariant{
		ID:              variantID,
		Product:         models.ParentProduct{ID: productID, Title: productTitle},
		SelectedOptions: options,
	}
}

func TestBuildPayloadGroupsByParentInEncounterOrder(t *testing.T) {
	variants := []models.ProductVariant{
		variantOf("gid://p/2", "Mug", "gid://v/20", models.SelectedOption{Name: "Size", Value: "S"}),
		variantOf("gid://p/1", "Shirt", "gid://v/10", models.SelectedOption{Name: "Size", Value: "M"}),
		variantOf("gid://p/2", "Mug", "gid://v/21", models.SelectedOption{Name: "Size", Value: "L"}),
	}

	descriptors, err := BuildPayload(sequentialRules(), variants)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	if len(descriptors) != 2 {
		t.Fatalf("got %d descriptors, want 2", len(descriptors))
	}
	if descriptors[0].ProductID != "gid://p/2" || descriptors[1].ProductID != "gid://p/1" {
		t.Errorf("descriptor order = %s, %s; want encounter order p/2, p/1",
			descriptors[0].ProductID, descriptors[1].ProductID)
	}
	if got := descriptors[0].Variants; len(got) != 2 || got[0].VariantID != "gid://v/20" || got[1].VariantID != "gid://v/21" {
		t.Errorf("group for p/2 lost variants or their order: %+v", got)
	}
}

func TestBuildPayloadOrdinalsRestartPerGroup(t *testing.T) {
	variants := []models.ProductVariant{
		variantOf("gid://p/1", "Shirt", "gid://v/10", models.SelectedOption{Name: "Size", Value: "S"}),
		variantOf("gid://p/1", "Shirt", "gid://v/11", models.SelectedOption{Name: "Size", Value: "M"}),
		variantOf("gid://p/2", "Mug", "gid://v/20", models.SelectedOption{Name: "Color", Value: "Red"}),
		variantOf("gid://p/2", "Mug", "gid://v/21", models.SelectedOption{Name: "Color", Value: "Blue"}),
	}

	descriptors, err := BuildPayload(sequentialRules(), variants)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	for _, descriptor := range descriptors {
		if got, want := descriptor.Variants[0].NewSKU, "SKU-1"; got != want {
			t.Errorf("%s first variant = %q, want %q", descriptor.ProductID, got, want)
		}
		if got, want := descriptor.Variants[1].NewSKU, "SKU-2"; got != want {
			t.Errorf("%s second variant = %q, want %q", descriptor.ProductID, got, want)
		}
	}
}

func TestBuildPayloadMissingParent(t *testing.T) {
	variants := []models.ProductVariant{
		{ID: "gid://v/1", Product: models.ParentProduct{}},
	}

	_, err := BuildPayload(sequentialRules(), variants)
	if !errors.Is(err, ErrMissingParent) {
		t.Fatalf("err = %v, want ErrMissingParent", err)
	}
}

func TestBuildPayloadSingleOptionProduct(t *testing.T) {
	tests := []struct {
		name    string
		options []models.SelectedOption
	}{
		{"no options at all", nil},
		{"lone Title pair", []models.SelectedOption{{Name: "Title", Value: "Default Title"}}},
		{"lone Title pair with other value", []models.SelectedOption{{Name: "Title", Value: "Whatever"}}},
	}

	for _, test := range tests {
		variants := []models.ProductVariant{variantOf("gid://p/1", "Poster", "gid://v/1", test.options...)}

		descriptors, err := BuildPayload(sequentialRules(), variants)
		if err != nil {
			t.Fatalf("%s: BuildPayload: %v", test.name, err)
		}

		descriptor := descriptors[0]
		if !descriptor.SingleOption {
			t.Errorf("%s: SingleOption = false, want true", test.name)
		}
		wantSchema := []models.OptionSchemaEntry{{Name: "Title", Values: []string{"Default Title"}}}
		if !reflect.DeepEqual(descriptor.Options, wantSchema) {
			t.Errorf("%s: schema = %+v, want synthetic Title option", test.name, descriptor.Options)
		}
		wantValues := []models.SelectedOption{{Name: "Title", Value: "Default Title"}}
		if !reflect.DeepEqual(descriptor.Variants[0].OptionValues, wantValues) {
			t.Errorf("%s: option values = %+v, want verbatim Default Title", test.name, descriptor.Variants[0].OptionValues)
		}
	}
}

func TestBuildPayloadMultiVariantIsNeverSingleOption(t *testing.T) {
	variants := []models.ProductVariant{
		variantOf("gid://p/1", "Shirt", "gid://v/1", models.SelectedOption{Name: "Title", Value: "Default Title"}),
		variantOf("gid://p/1", "Shirt", "gid://v/2", models.SelectedOption{Name: "Title", Value: "Other"}),
	}

	descriptors, err := BuildPayload(sequentialRules(), variants)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	if descriptors[0].SingleOption {
		t.Error("two-variant product classified as single-option")
	}
}

func TestBuildPayloadOptionSchemaUnion(t *testing.T) {
	variants := []models.ProductVariant{
		variantOf("gid://p/1", "Shirt", "gid://v/1",
			models.SelectedOption{Name: "Size", Value: "S"},
			models.SelectedOption{Name: "Color", Value: "Red"}),
		variantOf("gid://p/1", "Shirt", "gid://v/2",
			models.SelectedOption{Name: "Size", Value: "M"},
			models.SelectedOption{Name: "Color", Value: "Red"}),
		variantOf("gid://p/1", "Shirt", "gid://v/3",
			models.SelectedOption{Name: "Size", Value: "S"},
			models.SelectedOption{Name: "Color", Value: "Blue"},
			models.SelectedOption{Name: "Material", Value: "Cotton"}),
	}

	descriptors, err := BuildPayload(sequentialRules(), variants)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	want := []models.OptionSchemaEntry{
		{Name: "Size", Values: []string{"S", "M"}},
		{Name: "Color", Values: []string{"Red", "Blue"}},
		{Name: "Material", Values: []string{"Cotton"}},
	}
	if !reflect.DeepEqual(descriptors[0].Options, want) {
		t.Errorf("schema = %+v, want union in first-appearance order %+v", descriptors[0].Options, want)
	}
}

func TestBuildPayloadContinueFromLast(t *testing.T) {
	rules := sequentialRules()
	rules.BodyType = models.BodyTypeContinueFromLast

	existing := "SKU-41"
	variants := []models.ProductVariant{
		variantOf("gid://p/1", "Shirt", "gid://v/1", models.SelectedOption{Name: "Size", Value: "S"}),
		variantOf("gid://p/1", "Shirt", "gid://v/2", models.SelectedOption{Name: "Size", Value: "M"}),
	}
	variants[0].SKU = &existing

	descriptors, err := BuildPayload(rules, variants)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	got := []string{descriptors[0].Variants[0].NewSKU, descriptors[0].Variants[1].NewSKU}
	want := []string{"SKU-42", "SKU-43"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("continued codes = %v, want %v", got, want)
	}
}
