package models

// BodyType defines how the main, usually numeric, part of the SKU is generated.
type BodyType string

const (
	BodyTypeSequential       BodyType = "consecutive"
	BodyTypeContinueFromLast BodyType = "continue_from_last"
	BodyTypeDisabled         BodyType = "disable_body"
	BodyTypeProductID        BodyType = "product_id"
	BodyTypeVariantID        BodyType = "variant_id"
	BodyTypeRandom           BodyType = "random"
)

// ComponentType defines the optional, attribute-derived parts that can be
// included in the SKU layout.
type ComponentType string

const (
	ComponentProductName ComponentType = "product_name"
	ComponentVariantName ComponentType = "variant_name"
	ComponentVendor      ComponentType = "product_vendor"
	ComponentProductType ComponentType = "product_type"
	ComponentOldSKU      ComponentType = "old_sku"
	ComponentOption1     ComponentType = "variant_option1"
	ComponentOption2     ComponentType = "variant_option2"
	ComponentOption3     ComponentType = "variant_option3"
)

// Core layout slot ids. These are always present in a layout and cannot be
// removed; every other layout id must match an additional component.
const (
	SlotPrefix = "prefix"
	SlotBody   = "body"
	SlotSuffix = "suffix"
)

// AdditionalComponent is a single optional component added to the SKU.
// The id must be unique within the rule set because the layout references
// components by id.
type AdditionalComponent struct {
	ID   string        `json:"id" validate:"required"`
	Type ComponentType `json:"type" validate:"required,oneof=product_name variant_name product_vendor product_type old_sku variant_option1 variant_option2 variant_option3"`
}

// GeneratorRules is the full configuration for one render pass. It is never
// mutated after validation; edits go through sku.ApplyPatch which returns a
// fresh copy.
type GeneratorRules struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`

	BodyType       BodyType `json:"body_type" validate:"required,oneof=consecutive continue_from_last disable_body product_id variant_id random"`
	StartingNumber int      `json:"starting_number" validate:"gte=0"`

	// Zero padding only applies to the consecutive strategy. Numbers wider
	// than PaddingWidth are rendered unpadded, never truncated.
	ZeroPadded   bool `json:"zero_padded"`
	PaddingWidth int  `json:"padding_width" validate:"omitempty,gte=2,lte=10"`

	// Inclusive range for the random strategy.
	RandomMin int `json:"random_min"`
	RandomMax int `json:"random_max"`

	Separator string `json:"separator"`

	AdditionalComponents []AdditionalComponent `json:"additional_components" validate:"dive"`

	// Layout is the ordered list of slot ids that make up the final SKU,
	// e.g. ["prefix", "body", "product_name_1678886400000", "suffix"].
	Layout []string `json:"layout"`
}

// RulesPatch is a partial update to a rule set. Nil fields are left
// untouched. UI panels produce patches; they never hold rule state.
type RulesPatch struct {
	Prefix               *string                `json:"prefix,omitempty"`
	Suffix               *string                `json:"suffix,omitempty"`
	BodyType             *BodyType              `json:"body_type,omitempty"`
	StartingNumber       *int                   `json:"starting_number,omitempty"`
	ZeroPadded           *bool                  `json:"zero_padded,omitempty"`
	PaddingWidth         *int                   `json:"padding_width,omitempty"`
	RandomMin            *int                   `json:"random_min,omitempty"`
	RandomMax            *int                   `json:"random_max,omitempty"`
	Separator            *string                `json:"separator,omitempty"`
	AdditionalComponents *[]AdditionalComponent `json:"additional_components,omitempty"`
	Layout               *[]string              `json:"layout,omitempty"`
}

// DefaultRules returns the rule set a fresh session starts from.
func DefaultRules() GeneratorRules {
	return GeneratorRules{
		Prefix:         "SKU",
		Suffix:         "",
		BodyType:       BodyTypeSequential,
		StartingNumber: 1,
		PaddingWidth:   4,
		RandomMin:      1000,
		RandomMax:      9999,
		Separator:      "-",
		Layout:         []string{SlotPrefix, SlotBody, SlotSuffix},
	}
}
