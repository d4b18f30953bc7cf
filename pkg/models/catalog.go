package models

// SelectedOption is one name/value pair on a variant. A variant with no real
// variation reports either no options or the single pair Title/Default Title.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductImage is the first image of the parent product, for UI previews.
type ProductImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
}

// ParentProduct is the product a variant belongs to.
type ParentProduct struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Vendor      string         `json:"vendor"`
	ProductType string         `json:"product_type"`
	Images      []ProductImage `json:"images,omitempty"`
}

// ProductVariant is one purchasable catalog record, fetched read-only from
// the platform. SKU is the code currently in use, nil when unset.
type ProductVariant struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	SKU             *string          `json:"sku"`
	Product         ParentProduct    `json:"product"`
	SelectedOptions []SelectedOption `json:"selected_options"`
}

// OldSKU returns the current code or the empty string.
func (v ProductVariant) OldSKU() string {
	if v.SKU == nil {
		return ""
	}
	return *v.SKU
}

// OptionSchemaEntry declares one product option and the values observed
// across the product's variants, in order of first appearance.
type OptionSchemaEntry struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// VariantUpdate is the new code for a single variant, together with the
// option values the platform requires to address it.
type VariantUpdate struct {
	VariantID    string           `json:"variant_id"`
	NewSKU       string           `json:"new_sku"`
	OptionValues []SelectedOption `json:"option_values"`
}

// UpdateDescriptor is one per-product update: the full option schema plus the
// new code for every selected variant of that product. Built fresh for each
// synchronization attempt and consumed exactly once.
type UpdateDescriptor struct {
	ProductID    string              `json:"product_id"`
	ProductTitle string              `json:"product_title"`
	SingleOption bool                `json:"single_option"`
	Options      []OptionSchemaEntry `json:"options"`
	Variants     []VariantUpdate     `json:"variants"`
}
