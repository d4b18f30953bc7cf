package sku

import (
	"fmt"
	"math/rand"
	"strings"

	"skucraft/pkg/models"
)

// Render renders one SKU for a variant. Ordinal is the variant's 0-based
// position within the current selection order; preview and apply must feed
// the same ordering or the two will diverge.
//
// Render is pure for every body type except random, which draws uniformly
// from the configured range and may return a different code on every call
// with identical inputs. For continue_from_last the continuation base must be
// resolved first (see ContinueBase); Render alone falls back to the
// configured starting number.
func Render(rules models.GeneratorRules, variant models.ProductVariant, ordinal int) string {
	return RenderFrom(rules, variant, ordinal, rules.StartingNumber)
}

// RenderFrom is Render with an explicit numbering base for the consecutive
// and continue_from_last strategies.
func RenderFrom(rules models.GeneratorRules, variant models.ProductVariant, ordinal int, base int) string {
	slots := map[string]string{
		models.SlotPrefix: rules.Prefix,
		models.SlotSuffix: rules.Suffix,
	}
	slots[models.SlotBody] = renderBody(rules, variant, ordinal, base)

	for _, comp := range rules.AdditionalComponents {
		slots[comp.ID] = componentValue(comp.Type, variant)
	}

	parts := make([]string, 0, len(rules.Layout))
	for _, id := range rules.Layout {
		if value := slots[id]; value != "" {
			parts = append(parts, value)
		}
	}

	return strings.Join(parts, rules.Separator)
}

func renderBody(rules models.GeneratorRules, variant models.ProductVariant, ordinal int, base int) string {
	switch rules.BodyType {
	case models.BodyTypeSequential:
		n := rules.StartingNumber + ordinal
		if rules.ZeroPadded {
			return fmt.Sprintf("%0*d", rules.PaddingWidth, n)
		}
		return fmt.Sprintf("%d", n)
	case models.BodyTypeContinueFromLast:
		return fmt.Sprintf("%d", base+ordinal)
	case models.BodyTypeProductID:
		return trailingID(variant.Product.ID)
	case models.BodyTypeVariantID:
		return trailingID(variant.ID)
	case models.BodyTypeRandom:
		span := rules.RandomMax - rules.RandomMin + 1
		if span < 1 {
			span = 1
		}
		return fmt.Sprintf("%d", rules.RandomMin+rand.Intn(span))
	case models.BodyTypeDisabled:
		return ""
	}
	return ""
}

// trailingID takes the numeric tail of a platform-global id such as
// gid://platform/ProductVariant/44444444.
func trailingID(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}

func componentValue(kind models.ComponentType, variant models.ProductVariant) string {
	switch kind {
	case models.ComponentProductName:
		return variant.Product.Title
	case models.ComponentVariantName:
		return variant.Title
	case models.ComponentVendor:
		return variant.Product.Vendor
	case models.ComponentProductType:
		return variant.Product.ProductType
	case models.ComponentOldSKU:
		return variant.OldSKU()
	case models.ComponentOption1:
		return optionValue(variant, 0)
	case models.ComponentOption2:
		return optionValue(variant, 1)
	case models.ComponentOption3:
		return optionValue(variant, 2)
	}
	return ""
}

// optionValue returns the value of the nth selected option; a missing index
// yields the empty string, not an error.
func optionValue(variant models.ProductVariant, index int) string {
	if index >= len(variant.SelectedOptions) {
		return ""
	}
	return variant.SelectedOptions[index].Value
}
