package sku

import (
	"errors"
	"fmt"

	"skucraft/pkg/models"
)

// ErrInvalidRules marks rule-set validation failures so handlers can map
// them to a 400 before anything is rendered or sent to the platform.
var ErrInvalidRules = errors.New("invalid generator rules")

// ValidateRules checks the cross-field invariants the struct tags cannot
// express. It is the single place the layout invariant is enforced; render
// assumes a validated rule set.
func ValidateRules(rules models.GeneratorRules) error {
	if rules.StartingNumber < 0 {
		return fmt.Errorf("%w: starting number must not be negative", ErrInvalidRules)
	}

	if rules.ZeroPadded && (rules.PaddingWidth < 2 || rules.PaddingWidth > 10) {
		return fmt.Errorf("%w: padding width %d outside [2,10]", ErrInvalidRules, rules.PaddingWidth)
	}

	if rules.BodyType == models.BodyTypeRandom && rules.RandomMin > rules.RandomMax {
		return fmt.Errorf("%w: random range inverted (%d > %d)", ErrInvalidRules, rules.RandomMin, rules.RandomMax)
	}

	components := make(map[string]bool, len(rules.AdditionalComponents))
	for _, comp := range rules.AdditionalComponents {
		if comp.ID == "" {
			return fmt.Errorf("%w: additional component with empty id", ErrInvalidRules)
		}
		if components[comp.ID] {
			return fmt.Errorf("%w: duplicate component id %q", ErrInvalidRules, comp.ID)
		}
		components[comp.ID] = true
	}

	seen := make(map[string]bool, len(rules.Layout))
	for _, id := range rules.Layout {
		if seen[id] {
			return fmt.Errorf("%w: layout id %q appears twice", ErrInvalidRules, id)
		}
		seen[id] = true

		switch id {
		case models.SlotPrefix, models.SlotBody, models.SlotSuffix:
		default:
			if !components[id] {
				return fmt.Errorf("%w: dangling layout id %q", ErrInvalidRules, id)
			}
		}
	}

	// The three core slots are non-removable.
	for _, core := range []string{models.SlotPrefix, models.SlotBody, models.SlotSuffix} {
		if !seen[core] {
			return fmt.Errorf("%w: layout missing core slot %q", ErrInvalidRules, core)
		}
	}

	// Components and layout move in lockstep: a component the layout never
	// places is as much a bug as a dangling id.
	for id := range components {
		if !seen[id] {
			return fmt.Errorf("%w: component %q missing from layout", ErrInvalidRules, id)
		}
	}

	return nil
}

// ApplyPatch returns a new rule set with the patch applied. The input is
// never mutated. When the patch changes the component list without supplying
// a layout, the layout is reconciled automatically: ids for removed
// components are dropped and ids for new components are inserted before the
// suffix slot.
func ApplyPatch(rules models.GeneratorRules, patch models.RulesPatch) models.GeneratorRules {
	next := rules
	next.AdditionalComponents = append([]models.AdditionalComponent(nil), rules.AdditionalComponents...)
	next.Layout = append([]string(nil), rules.Layout...)

	if patch.Prefix != nil {
		next.Prefix = *patch.Prefix
	}
	if patch.Suffix != nil {
		next.Suffix = *patch.Suffix
	}
	if patch.BodyType != nil {
		next.BodyType = *patch.BodyType
	}
	if patch.StartingNumber != nil {
		next.StartingNumber = *patch.StartingNumber
	}
	if patch.ZeroPadded != nil {
		next.ZeroPadded = *patch.ZeroPadded
	}
	if patch.PaddingWidth != nil {
		next.PaddingWidth = *patch.PaddingWidth
	}
	if patch.RandomMin != nil {
		next.RandomMin = *patch.RandomMin
	}
	if patch.RandomMax != nil {
		next.RandomMax = *patch.RandomMax
	}
	if patch.Separator != nil {
		next.Separator = *patch.Separator
	}
	if patch.AdditionalComponents != nil {
		next.AdditionalComponents = append([]models.AdditionalComponent(nil), (*patch.AdditionalComponents)...)
		if patch.Layout == nil {
			next.Layout = reconcileLayout(next.Layout, next.AdditionalComponents)
		}
	}
	if patch.Layout != nil {
		next.Layout = append([]string(nil), (*patch.Layout)...)
	}

	return next
}

// reconcileLayout keeps the layout in lockstep with the component list.
func reconcileLayout(layout []string, components []models.AdditionalComponent) []string {
	live := make(map[string]bool, len(components))
	for _, comp := range components {
		live[comp.ID] = true
	}

	kept := make([]string, 0, len(layout)+len(components))
	placed := make(map[string]bool, len(layout))
	for _, id := range layout {
		switch id {
		case models.SlotPrefix, models.SlotBody, models.SlotSuffix:
			kept = append(kept, id)
			placed[id] = true
		default:
			if live[id] {
				kept = append(kept, id)
				placed[id] = true
			}
		}
	}

	// New components slot in before the suffix.
	for _, comp := range components {
		if placed[comp.ID] {
			continue
		}
		inserted := false
		for i, id := range kept {
			if id == models.SlotSuffix {
				kept = append(kept[:i], append([]string{comp.ID}, kept[i:]...)...)
				inserted = true
				break
			}
		}
		if !inserted {
			kept = append(kept, comp.ID)
		}
	}

	return kept
}
