package heuristics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// riskKeywords are matched as independent substrings. "risk" also matches
// inside "market risk" etc., so compound keywords count double; that
// double-counting is part of the scoring contract.
var riskKeywords = []string{
	"risk", "market risk", "credit risk", "operational risk",
	"financial risk", "uncertainty", "volatility", "exposure",
}

var negativeWords = []string{"loss", "deficit", "decline", "decrease"}

// numberPattern matches decimal-like tokens, optionally currency-prefixed and
// comma-grouped. The capture group excludes the currency sign.
var numberPattern = regexp.MustCompile(`\$?([\d,]+\.?\d*)`)

type RiskFinding struct {
	Query         string
	Score         int
	Category      string
	FoundKeywords []string
	Factors       []string
}

// AssessRisk scores the document on a 0-100 scale:
// min(10 x matched keywords, 50), +20 when the first numeric token exceeds
// 1,000,000, +20 when any negative-sentiment word appears.
func AssessRisk(text, query string) RiskFinding {
	lower := strings.ToLower(text)
	numbers := extractNumbers(text)

	f := RiskFinding{Query: query}

	for _, k := range riskKeywords {
		if strings.Contains(lower, k) {
			f.FoundKeywords = append(f.FoundKeywords, k)
		}
	}
	if len(f.FoundKeywords) > 0 {
		f.Score += min(len(f.FoundKeywords)*10, 50)
		f.Factors = append(f.Factors, "Found risk indicators: "+strings.Join(f.FoundKeywords, ", "))
	}

	if len(numbers) > 0 && numbers[0] > 1_000_000 {
		f.Score += 20
		f.Factors = append(f.Factors, "High debt levels detected")
	}

	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			f.Score += 20
			f.Factors = append(f.Factors, "Negative financial indicators detected")
			break
		}
	}

	switch {
	case f.Score >= 70:
		f.Category = "High Risk"
	case f.Score >= 30:
		f.Category = "Medium Risk"
	default:
		f.Category = "Low Risk"
	}
	return f
}

func (f RiskFinding) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk Assessment for query: '%s'\n", f.Query)
	fmt.Fprintf(&b, "Risk Score: %d/100\nCategory: %s\n", f.Score, f.Category)
	if len(f.Factors) > 0 {
		b.WriteString("Risk Factors: " + strings.Join(f.Factors, "; "))
	}
	return b.String()
}

func extractNumbers(text string) []float64 {
	var out []float64
	for _, m := range numberPattern.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			// a lone comma or dot satisfies the pattern but is not a number
			continue
		}
		out = append(out, v)
	}
	return out
}
