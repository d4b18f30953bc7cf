package sku

import (
	"strconv"
	"strings"

	"skucraft/pkg/models"
)

// ContinueBase resolves the numbering base for the continue_from_last body
// type: the highest numeric body found among the existing codes that match
// the rule set's prefix/suffix shape, plus one. Codes that do not match the
// shape, or contain no numeric segment where the body would sit, are ignored.
// When nothing matches, numbering starts at the configured starting number.
func ContinueBase(rules models.GeneratorRules, existingCodes []string) int {
	highest := -1

	for _, code := range existingCodes {
		body, ok := extractBody(rules, code)
		if !ok {
			continue
		}
		if body > highest {
			highest = body
		}
	}

	if highest < 0 {
		return rules.StartingNumber
	}
	return highest + 1
}

// extractBody strips the rule's prefix and suffix from a code and pulls the
// first purely numeric segment out of what remains.
func extractBody(rules models.GeneratorRules, code string) (int, bool) {
	rest := code

	if rules.Prefix != "" {
		head := rules.Prefix + rules.Separator
		if !strings.HasPrefix(rest, head) {
			return 0, false
		}
		rest = rest[len(head):]
	}
	if rules.Suffix != "" {
		tail := rules.Separator + rules.Suffix
		if !strings.HasSuffix(rest, tail) {
			return 0, false
		}
		rest = rest[:len(rest)-len(tail)]
	}
	if rest == "" {
		return 0, false
	}

	if rules.Separator == "" {
		return leadingNumber(rest)
	}

	for _, segment := range strings.Split(rest, rules.Separator) {
		if segment == "" {
			continue
		}
		if n, err := strconv.Atoi(segment); err == nil {
			return n, true
		}
	}
	return 0, false
}

// leadingNumber reads the digit run at the start of s. Used when no
// separator exists to split segments on.
func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
