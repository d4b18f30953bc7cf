package sync

import (
	"errors"
	"fmt"

	"skucraft/internal/sku"
	"skucraft/pkg/models"
)

// ErrMissingParent signals a caller contract violation: every selected
// variant must carry its parent product reference.
var ErrMissingParent = errors.New("variant without parent product id")

// BuildPayload groups the selected variants by parent product, preserving
// encounter order, and emits one update descriptor per parent with freshly
// rendered codes. The ordinal fed to the renderer is the variant's position
// within its own group, so the same rule set can render different bodies
// depending on how a selection groups.
func BuildPayload(rules models.GeneratorRules, variants []models.ProductVariant) ([]models.UpdateDescriptor, error) {
	groups, order, err := groupByProduct(variants)
	if err != nil {
		return nil, err
	}

	base := rules.StartingNumber
	if rules.BodyType == models.BodyTypeContinueFromLast {
		base = sku.ContinueBase(rules, existingCodes(variants))
	}

	descriptors := make([]models.UpdateDescriptor, 0, len(order))
	for _, productID := range order {
		group := groups[productID]
		descriptors = append(descriptors, buildDescriptor(rules, group, base))
	}
	return descriptors, nil
}

func groupByProduct(variants []models.ProductVariant) (map[string][]models.ProductVariant, []string, error) {
	groups := make(map[string][]models.ProductVariant)
	order := make([]string, 0)

	for _, variant := range variants {
		productID := variant.Product.ID
		if productID == "" {
			return nil, nil, fmt.Errorf("%w: variant %s", ErrMissingParent, variant.ID)
		}
		if _, seen := groups[productID]; !seen {
			order = append(order, productID)
		}
		groups[productID] = append(groups[productID], variant)
	}
	return groups, order, nil
}

func existingCodes(variants []models.ProductVariant) []string {
	codes := make([]string, 0, len(variants))
	for _, variant := range variants {
		if code := variant.OldSKU(); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func buildDescriptor(rules models.GeneratorRules, group []models.ProductVariant, base int) models.UpdateDescriptor {
	single := isSingleOption(group)

	descriptor := models.UpdateDescriptor{
		ProductID:    group[0].Product.ID,
		ProductTitle: group[0].Product.Title,
		SingleOption: single,
		Options:      optionSchema(group, single),
		Variants:     make([]models.VariantUpdate, 0, len(group)),
	}

	for index, variant := range group {
		descriptor.Variants = append(descriptor.Variants, models.VariantUpdate{
			VariantID:    variant.ID,
			NewSKU:       sku.RenderFrom(rules, variant, index, base),
			OptionValues: variantOptionValues(variant, single),
		})
	}
	return descriptor
}

// isSingleOption reports whether a group is an option-less product: exactly
// one variant whose options are empty or the lone Title pair. The platform
// represents such products with a synthetic Title/Default Title option, which
// must be applied verbatim rather than echoing whatever the variant reported.
func isSingleOption(group []models.ProductVariant) bool {
	if len(group) != 1 {
		return false
	}
	opts := group[0].SelectedOptions
	if len(opts) == 0 {
		return true
	}
	return len(opts) == 1 && opts[0].Name == "Title"
}

func optionSchema(group []models.ProductVariant, single bool) []models.OptionSchemaEntry {
	if single {
		return []models.OptionSchemaEntry{{Name: "Title", Values: []string{"Default Title"}}}
	}

	// Union of every option name to its observed values, both in order of
	// first appearance across the group.
	names := make([]string, 0)
	values := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	for _, variant := range group {
		for _, opt := range variant.SelectedOptions {
			if seen[opt.Name] == nil {
				names = append(names, opt.Name)
				seen[opt.Name] = make(map[string]bool)
			}
			if !seen[opt.Name][opt.Value] {
				seen[opt.Name][opt.Value] = true
				values[opt.Name] = append(values[opt.Name], opt.Value)
			}
		}
	}

	schema := make([]models.OptionSchemaEntry, 0, len(names))
	for _, name := range names {
		schema = append(schema, models.OptionSchemaEntry{Name: name, Values: values[name]})
	}
	return schema
}

func variantOptionValues(variant models.ProductVariant, single bool) []models.SelectedOption {
	if single {
		return []models.SelectedOption{{Name: "Title", Value: "Default Title"}}
	}
	return append([]models.SelectedOption(nil), variant.SelectedOptions...)
}
