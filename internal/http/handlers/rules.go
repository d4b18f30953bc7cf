package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"skucraft/internal/sku"
	"skucraft/internal/sync"
	"skucraft/pkg/models"
)

// RulesHandler serves rule-set validation, patching and SKU previews. It
// holds no state: rule sets live in the UI and travel with every request.
type RulesHandler struct{}

// NewRulesHandler creates a new rules handler
func NewRulesHandler() *RulesHandler {
	return &RulesHandler{}
}

// GetDefaults returns the rule set a fresh session starts from
// @Summary Default generator rules
// @Tags rules
// @Produce json
// @Success 200 {object} models.GeneratorRules
// @Router /rules/defaults [get]
func (h *RulesHandler) GetDefaults(c echo.Context) error {
	return c.JSON(http.StatusOK, models.DefaultRules())
}

// Validate checks a rule set against the layout and range invariants
// @Summary Validate generator rules
// @Tags rules
// @Accept json
// @Produce json
// @Param rules body models.GeneratorRules true "Rule set"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /rules/validate [post]
func (h *RulesHandler) Validate(c echo.Context) error {
	var rules models.GeneratorRules
	if err := c.Bind(&rules); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&rules); err != nil {
		return err
	}
	if err := sku.ValidateRules(rules); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]bool{"valid": true})
}

// PatchRequest applies a partial edit to a rule set.
type PatchRequest struct {
	Rules models.GeneratorRules `json:"rules"`
	Patch models.RulesPatch     `json:"patch"`
}

// Patch applies a partial update and returns the new rule set
// @Summary Patch generator rules
// @Description Applies a partial edit and returns the resulting rule set. The input rules are never mutated; panels send patches, they do not hold state.
// @Tags rules
// @Accept json
// @Produce json
// @Param request body PatchRequest true "Rules and patch"
// @Success 200 {object} models.GeneratorRules
// @Failure 400 {object} map[string]string
// @Router /rules/patch [post]
func (h *RulesHandler) Patch(c echo.Context) error {
	var req PatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	next := sku.ApplyPatch(req.Rules, req.Patch)
	if err := sku.ValidateRules(next); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, next)
}

// PreviewRequest renders codes for a selection without applying anything.
type PreviewRequest struct {
	Rules    models.GeneratorRules   `json:"rules"`
	Variants []models.ProductVariant `json:"variants" validate:"required"`
}

// PreviewEntry is one variant's rendered code.
type PreviewEntry struct {
	VariantID    string `json:"variant_id"`
	ProductTitle string `json:"product_title"`
	VariantTitle string `json:"variant_title"`
	OldSKU       string `json:"old_sku,omitempty"`
	NewSKU       string `json:"new_sku"`
}

// Preview renders the codes a selection would receive
// @Summary Preview rendered SKUs
// @Description Runs the same grouping and rendering as apply, so preview and apply cannot diverge.
// @Tags rules
// @Accept json
// @Produce json
// @Param request body PreviewRequest true "Rules and selected variants"
// @Success 200 {array} PreviewEntry
// @Failure 400 {object} map[string]string
// @Router /rules/preview [post]
func (h *RulesHandler) Preview(c echo.Context) error {
	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := sku.ValidateRules(req.Rules); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	// Build the same payload the apply path would and read the codes back
	// out of it.
	descriptors, err := sync.BuildPayload(req.Rules, req.Variants)
	if err != nil {
		if errors.Is(err, sync.ErrMissingParent) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	titles := make(map[string]models.ProductVariant, len(req.Variants))
	for _, variant := range req.Variants {
		titles[variant.ID] = variant
	}

	entries := make([]PreviewEntry, 0, len(req.Variants))
	for _, descriptor := range descriptors {
		for _, update := range descriptor.Variants {
			entry := PreviewEntry{
				VariantID:    update.VariantID,
				ProductTitle: descriptor.ProductTitle,
				NewSKU:       update.NewSKU,
			}
			if variant, ok := titles[update.VariantID]; ok {
				entry.VariantTitle = variant.Title
				entry.OldSKU = variant.OldSKU()
			}
			entries = append(entries, entry)
		}
	}
	return c.JSON(http.StatusOK, entries)
}
