package sync

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"skucraft/internal/platform"
	"skucraft/pkg/models"
)

// resultLine is the shape of one bulk result record. Some platform versions
// nest the mutation payload, some flatten it, so both spellings are read.
type resultLine struct {
	UserErrors []platform.UserError `json:"userErrors"`
	ProductSet *struct {
		Product *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"product"`
		UserErrors []platform.UserError `json:"userErrors"`
	} `json:"productSet"`
}

func (r resultLine) errors() []platform.UserError {
	if len(r.UserErrors) > 0 {
		return r.UserErrors
	}
	if r.ProductSet != nil {
		return r.ProductSet.UserErrors
	}
	return nil
}

// Reconcile classifies every record of a bulk result stream and aggregates
// the totals. A line that fails to parse is logged, counted separately and
// skipped; it never fails the batch.
func Reconcile(stream []byte) models.SyncSummary {
	summary := models.SyncSummary{Outcome: models.OutcomeApplied}

	for _, raw := range strings.Split(string(stream), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		var record resultLine
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			log.Warn().Err(err).Str("line", truncate(line, 200)).Msg("Skipping unparsable result line")
			summary.UnparsableLines++
			continue
		}

		summary.Total++
		if errs := record.errors(); len(errs) > 0 {
			summary.Failed++
			summary.Errors = append(summary.Errors, userErrorMessages(errs)...)
		} else {
			summary.Successful++
		}
	}

	summary.SuccessRate = successRate(summary.Successful, summary.Total)
	return summary
}

// successRate formats successful/total as a one-decimal percentage string.
// An empty result set yields "0", never a division error.
func successRate(successful, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(successful)/float64(total)*100)
}

func userErrorMessages(errs []platform.UserError) []string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
