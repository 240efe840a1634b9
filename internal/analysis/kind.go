// Package analysis constructs and runs the per-kind LLM agent calls and
// normalizes their output. The agent framework itself is an external
// collaborator; only the call inputs and the response shape are owned here.
package analysis

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindAnalyze    Kind = "analyze"
	KindInvestment Kind = "investment"
	KindRisk       Kind = "risk"
	KindVerify     Kind = "verify"
)

// Kinds lists every analysis kind in registration order.
var Kinds = []Kind{KindAnalyze, KindInvestment, KindRisk, KindVerify}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindAnalyze, KindInvestment, KindRisk, KindVerify:
		return k, nil
	}
	return "", fmt.Errorf("unknown analysis kind %q", s)
}

// descriptor binds one analysis kind to its agent role, task prompt and
// default query. A single table replaces per-kind handler closures.
type descriptor struct {
	agentName      string
	role           string
	taskTemplate   string
	expectedOutput string
	defaultQuery   string
}

var descriptors = map[Kind]descriptor{
	KindAnalyze: {
		agentName:      "Senior Financial Analyst",
		role:           analystRole,
		taskTemplate:   analyzeTask,
		expectedOutput: analyzeExpected,
		defaultQuery:   "Analyze this financial document for investment insights",
	},
	KindInvestment: {
		agentName:      "Investment Advisor",
		role:           advisorRole,
		taskTemplate:   investmentTask,
		expectedOutput: investmentExpected,
		defaultQuery:   "Provide detailed investment insights",
	},
	KindRisk: {
		agentName:      "Risk Assessment Specialist",
		role:           riskRole,
		taskTemplate:   riskTask,
		expectedOutput: riskExpected,
		defaultQuery:   "Perform a detailed risk assessment",
	},
	KindVerify: {
		agentName:      "Financial Document Verifier",
		role:           verifierRole,
		taskTemplate:   verifyTask,
		expectedOutput: verifyExpected,
		defaultQuery:   "Verify document completeness and relevance",
	},
}

// DefaultQuery returns the fallback query text used when a submission
// carries no query of its own.
func (k Kind) DefaultQuery() string {
	return descriptors[k].defaultQuery
}

// taskInput substitutes the document path and user query into the kind's
// task template and appends the expected report skeleton.
func (k Kind) taskInput(query, path string) string {
	d := descriptors[k]
	r := strings.NewReplacer("{path}", path, "{query}", query)
	return r.Replace(d.taskTemplate) + "\n\nExpected output:\n" + r.Replace(d.expectedOutput)
}
