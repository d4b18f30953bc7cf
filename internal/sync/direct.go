package sync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"skucraft/internal/platform"
	"skucraft/pkg/models"
)

// ExecuteDirect applies the descriptors one parent at a time with inline
// mutations, no upload or job machinery. A failure on one parent never
// aborts the rest; every parent lands in the summary either way, in the
// same shape the bulk path produces.
func (o *Orchestrator) ExecuteDirect(ctx context.Context, descriptors []models.UpdateDescriptor) models.SyncSummary {
	summary := models.SyncSummary{Outcome: models.OutcomeApplied}

	for _, descriptor := range descriptors {
		result := models.ParentResult{
			ProductID:    descriptor.ProductID,
			ProductTitle: descriptor.ProductTitle,
			Variants:     len(descriptor.Variants),
		}

		userErrors, err := o.api.ProductSetDirect(ctx, platform.ProductSetInputFrom(descriptor))
		switch {
		case err != nil:
			result.Error = err.Error()
		case len(userErrors) > 0:
			result.Error = joinMessages(userErrors)
		}

		summary.Total++
		if result.Error != "" {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %s", descriptor.ProductTitle, result.Error))
			log.Warn().
				Str("product_id", descriptor.ProductID).
				Str("error", result.Error).
				Msg("Direct update failed for product")
		} else {
			summary.Successful++
		}
		summary.Parents = append(summary.Parents, result)
	}

	summary.SuccessRate = successRate(summary.Successful, summary.Total)
	return summary
}

func joinMessages(errs []platform.UserError) string {
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += e.Message
	}
	return msg
}
