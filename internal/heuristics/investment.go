// Package heuristics implements the deterministic text scorers that feed
// advisory findings into the agent runs. All scorers are pure functions:
// identical input yields byte-identical rendered output.
package heuristics

import (
	"fmt"
	"strings"
)

// keyTerms is scanned in order; the rendered finding preserves this order.
var keyTerms = []string{"revenue", "profit", "loss", "cash flow", "assets", "liabilities", "equity"}

type InvestmentFinding struct {
	Query      string
	FoundTerms []string
}

// AnalyzeInvestment scans the document for the fixed vocabulary of financial
// indicators, case-insensitively.
func AnalyzeInvestment(text, query string) InvestmentFinding {
	processed := strings.ToLower(squeezeSpaces(text))

	f := InvestmentFinding{Query: query}
	for _, term := range keyTerms {
		if strings.Contains(processed, term) {
			f.FoundTerms = append(f.FoundTerms, term)
		}
	}
	return f
}

func (f InvestmentFinding) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Investment Analysis for query: '%s'\n\n", f.Query)
	if len(f.FoundTerms) > 0 {
		fmt.Fprintf(&b, "Key financial indicators found: %s\n", strings.Join(f.FoundTerms, ", "))
	} else {
		b.WriteString("Limited financial data identified in document.\n")
	}
	b.WriteString("Investment analysis functionality partially implemented based on document content.")
	return b.String()
}

// squeezeSpaces collapses double spaces in a single left-to-right pass.
func squeezeSpaces(s string) string {
	return strings.ReplaceAll(s, "  ", " ")
}
