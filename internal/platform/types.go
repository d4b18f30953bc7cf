package platform

import "skucraft/pkg/models"

// Wire types for the productSet mutation. Field names follow the platform
// schema, not local conventions.

// ProductSetInput is one complete per-product update: the product's option
// schema and every variant's new code.
type ProductSetInput struct {
	ID             string                   `json:"id"`
	ProductOptions []ProductOptionInput     `json:"productOptions"`
	Variants       []ProductVariantSetInput `json:"variants"`
}

// ProductOptionInput declares a product option and its allowed values.
type ProductOptionInput struct {
	Name   string            `json:"name"`
	Values []OptionValueName `json:"values"`
}

// OptionValueName wraps an option value (the schema nests values as objects).
type OptionValueName struct {
	Name string `json:"name"`
}

// ProductVariantSetInput carries one variant's new code plus the option
// values that address it within the product.
type ProductVariantSetInput struct {
	ID           string                    `json:"id"`
	SKU          string                    `json:"sku"`
	OptionValues []VariantOptionValueInput `json:"optionValues"`
}

// VariantOptionValueInput names an option value. The schema flips the local
// name/value orientation: Name is the value, OptionName is the option.
type VariantOptionValueInput struct {
	Name       string `json:"name"`
	OptionName string `json:"optionName"`
}

// ProductSetInputFrom converts an update descriptor to the wire shape.
func ProductSetInputFrom(descriptor models.UpdateDescriptor) ProductSetInput {
	input := ProductSetInput{
		ID:             descriptor.ProductID,
		ProductOptions: make([]ProductOptionInput, 0, len(descriptor.Options)),
		Variants:       make([]ProductVariantSetInput, 0, len(descriptor.Variants)),
	}

	for _, option := range descriptor.Options {
		values := make([]OptionValueName, 0, len(option.Values))
		for _, value := range option.Values {
			values = append(values, OptionValueName{Name: value})
		}
		input.ProductOptions = append(input.ProductOptions, ProductOptionInput{Name: option.Name, Values: values})
	}

	for _, variant := range descriptor.Variants {
		optionValues := make([]VariantOptionValueInput, 0, len(variant.OptionValues))
		for _, ov := range variant.OptionValues {
			optionValues = append(optionValues, VariantOptionValueInput{Name: ov.Value, OptionName: ov.Name})
		}
		input.Variants = append(input.Variants, ProductVariantSetInput{
			ID:           variant.VariantID,
			SKU:          variant.NewSKU,
			OptionValues: optionValues,
		})
	}
	return input
}
