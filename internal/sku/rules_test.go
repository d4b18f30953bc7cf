package sku

import (
	"errors"
	"testing"

	"skucraft/pkg/models"
)

func validRules() models.GeneratorRules {
	return models.GeneratorRules{
		Prefix:         "SKU",
		BodyType:       models.BodyTypeSequential,
		StartingNumber: 1,
		Separator:      "-",
		AdditionalComponents: []models.AdditionalComponent{
			{ID: "vendor_1", Type: models.ComponentVendor},
		},
		Layout: []string{models.SlotPrefix, models.SlotBody, "vendor_1", models.SlotSuffix},
	}
}

func TestValidateRulesAccepts(t *testing.T) {
	if err := ValidateRules(validRules()); err != nil {
		t.Fatalf("valid rules rejected: %v", err)
	}
}

func TestValidateRulesRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.GeneratorRules)
	}{
		{"dangling layout id", func(r *models.GeneratorRules) {
			r.Layout = append(r.Layout, "ghost_component")
		}},
		{"duplicate component id", func(r *models.GeneratorRules) {
			r.AdditionalComponents = append(r.AdditionalComponents, models.AdditionalComponent{ID: "vendor_1", Type: models.ComponentOldSKU})
		}},
		{"component missing from layout", func(r *models.GeneratorRules) {
			r.AdditionalComponents = append(r.AdditionalComponents, models.AdditionalComponent{ID: "orphan", Type: models.ComponentOldSKU})
		}},
		{"missing core slot", func(r *models.GeneratorRules) {
			r.Layout = []string{models.SlotPrefix, "vendor_1", models.SlotSuffix}
		}},
		{"duplicate layout id", func(r *models.GeneratorRules) {
			r.Layout = []string{models.SlotPrefix, models.SlotBody, models.SlotBody, "vendor_1", models.SlotSuffix}
		}},
		{"inverted random range", func(r *models.GeneratorRules) {
			r.BodyType = models.BodyTypeRandom
			r.RandomMin = 100
			r.RandomMax = 10
		}},
		{"padding width too small", func(r *models.GeneratorRules) {
			r.ZeroPadded = true
			r.PaddingWidth = 1
		}},
		{"padding width too large", func(r *models.GeneratorRules) {
			r.ZeroPadded = true
			r.PaddingWidth = 11
		}},
		{"negative starting number", func(r *models.GeneratorRules) {
			r.StartingNumber = -1
		}},
		{"empty component id", func(r *models.GeneratorRules) {
			r.AdditionalComponents[0].ID = ""
		}},
	}

	for _, test := range tests {
		rules := validRules()
		test.mutate(&rules)
		err := ValidateRules(rules)
		if err == nil {
			t.Errorf("%s: expected error, got nil", test.name)
			continue
		}
		if !errors.Is(err, ErrInvalidRules) {
			t.Errorf("%s: error %v does not wrap ErrInvalidRules", test.name, err)
		}
	}
}

func TestApplyPatchDoesNotMutateInput(t *testing.T) {
	rules := validRules()
	newPrefix := "ITEM"
	patched := ApplyPatch(rules, models.RulesPatch{Prefix: &newPrefix})

	if rules.Prefix != "SKU" {
		t.Errorf("input rules mutated: prefix = %q", rules.Prefix)
	}
	if patched.Prefix != "ITEM" {
		t.Errorf("patch not applied: prefix = %q", patched.Prefix)
	}

	patched.Layout[0] = "tampered"
	if rules.Layout[0] != models.SlotPrefix {
		t.Error("patched rules share layout backing array with input")
	}
}

func TestApplyPatchScalarFields(t *testing.T) {
	rules := validRules()
	body := models.BodyTypeRandom
	start := 500
	padded := true
	width := 6
	min, max := 1, 10
	sep := "_"
	suffix := "V2"

	patched := ApplyPatch(rules, models.RulesPatch{
		Suffix:         &suffix,
		BodyType:       &body,
		StartingNumber: &start,
		ZeroPadded:     &padded,
		PaddingWidth:   &width,
		RandomMin:      &min,
		RandomMax:      &max,
		Separator:      &sep,
	})

	if patched.Suffix != "V2" || patched.BodyType != models.BodyTypeRandom ||
		patched.StartingNumber != 500 || !patched.ZeroPadded || patched.PaddingWidth != 6 ||
		patched.RandomMin != 1 || patched.RandomMax != 10 || patched.Separator != "_" {
		t.Errorf("patch not fully applied: %+v", patched)
	}
	// Untouched fields survive.
	if patched.Prefix != "SKU" {
		t.Errorf("prefix changed unexpectedly: %q", patched.Prefix)
	}
}

func TestApplyPatchReconcilesLayoutOnComponentAdd(t *testing.T) {
	rules := validRules()
	components := []models.AdditionalComponent{
		{ID: "vendor_1", Type: models.ComponentVendor},
		{ID: "option_a", Type: models.ComponentOption1},
	}

	patched := ApplyPatch(rules, models.RulesPatch{AdditionalComponents: &components})

	want := []string{models.SlotPrefix, models.SlotBody, "vendor_1", "option_a", models.SlotSuffix}
	if len(patched.Layout) != len(want) {
		t.Fatalf("layout = %v, want %v", patched.Layout, want)
	}
	for i := range want {
		if patched.Layout[i] != want[i] {
			t.Fatalf("layout = %v, want %v", patched.Layout, want)
		}
	}
	if err := ValidateRules(patched); err != nil {
		t.Errorf("reconciled rules invalid: %v", err)
	}
}

func TestApplyPatchReconcilesLayoutOnComponentRemove(t *testing.T) {
	rules := validRules()
	components := []models.AdditionalComponent{}

	patched := ApplyPatch(rules, models.RulesPatch{AdditionalComponents: &components})

	want := []string{models.SlotPrefix, models.SlotBody, models.SlotSuffix}
	if len(patched.Layout) != len(want) {
		t.Fatalf("layout = %v, want %v", patched.Layout, want)
	}
	for i := range want {
		if patched.Layout[i] != want[i] {
			t.Fatalf("layout = %v, want %v", patched.Layout, want)
		}
	}
}

func TestApplyPatchExplicitLayoutWins(t *testing.T) {
	rules := validRules()
	layout := []string{models.SlotSuffix, models.SlotBody, "vendor_1", models.SlotPrefix}

	patched := ApplyPatch(rules, models.RulesPatch{Layout: &layout})
	for i := range layout {
		if patched.Layout[i] != layout[i] {
			t.Fatalf("layout = %v, want %v", patched.Layout, layout)
		}
	}
}
