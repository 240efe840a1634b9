package heuristics

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var standardSections = []string{
	"balance sheet", "income statement", "cash flow", "profit & loss",
	"financial summary", "statement of operations",
}

var (
	yearPattern     = regexp.MustCompile(`\b20\d{2}\b`)
	currencyPattern = regexp.MustCompile(`\$\d+`)
)

type VerificationFinding struct {
	Query         string
	Issues        []string
	FoundSections []string
}

// VerifyDocument runs the completeness checks: minimum length, presence of
// standard financial sections, a 4-digit year and at least one dollar amount.
func VerifyDocument(text, query string) VerificationFinding {
	processed := strings.ToLower(squeezeSpaces(text))

	f := VerificationFinding{Query: query}

	// character count, not bytes; multibyte text must not be over-counted
	if utf8.RuneCountInString(strings.TrimSpace(processed)) < 500 {
		f.Issues = append(f.Issues, "Document seems too short, may be incomplete.")
	}

	for _, s := range standardSections {
		if strings.Contains(processed, s) {
			f.FoundSections = append(f.FoundSections, s)
		}
	}
	if len(f.FoundSections) == 0 {
		f.Issues = append(f.Issues, "No standard financial sections detected (balance sheet, income statement, cash flow, etc.)")
	}

	if !yearPattern.MatchString(processed) {
		f.Issues = append(f.Issues, "No year detected.")
	}
	if !currencyPattern.MatchString(processed) {
		f.Issues = append(f.Issues, "No currency amounts detected.")
	}
	return f
}

func (f VerificationFinding) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document Verification for query: '%s'\n", f.Query)
	if len(f.Issues) > 0 {
		b.WriteString("Potential Issues:\n- " + strings.Join(f.Issues, "\n- ") + "\n")
	} else {
		b.WriteString("Document appears complete and relevant for analysis.\n")
	}
	if len(f.FoundSections) > 0 {
		b.WriteString("Found Sections: " + strings.Join(f.FoundSections, ", "))
	} else {
		b.WriteString("Found Sections: None")
	}
	return b.String()
}
