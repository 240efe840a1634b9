package analysis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v3/packages/param"

	"findoc/internal/extract"
	"findoc/internal/heuristics"
)

// Function tools exposed to the agents. Extraction failures are reported to
// the model as plain "Error: ..." strings rather than aborting the run, so
// the agent can still produce a report that flags the problem.

type pathArgs struct {
	Path string `json:"path"`
}

type pathQueryArgs struct {
	Path  string `json:"path"`
	Query string `json:"query"`
}

func readDocument(path string) string {
	doc, err := extract.Extract(path)
	if err != nil {
		return extractionErrorText(path, err)
	}
	return doc.String()
}

func extractionErrorText(path string, err error) string {
	switch {
	case errors.Is(err, extract.ErrNotFound):
		return "Error: File not found at path: " + path
	case errors.Is(err, extract.ErrEmptyContent):
		return "Error: No text content could be extracted from the PDF"
	default:
		return "Error reading PDF: " + err.Error()
	}
}

func readDocumentTool() agents.Tool {
	return agents.FunctionTool{
		Name:             "read_financial_document",
		Description:      "Reads PDF financial documents and returns the full text.",
		ParamsJSONSchema: pathSchema("read_financial_document_args"),
		OnInvokeTool: func(_ context.Context, arguments string) (any, error) {
			var args pathArgs
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return nil, err
			}
			return readDocument(args.Path), nil
		},
		StrictJSONSchema: param.NewOpt(true),
	}
}

// scorerTool returns the heuristic scorer matching the analysis kind. The
// analyze kind carries only the document reader.
func (k Kind) scorerTool() (agents.Tool, bool) {
	switch k {
	case KindInvestment:
		return scoringTool("analyze_investment",
			"Analyzes financial document data for investment insights.",
			func(text, query string) string { return heuristics.AnalyzeInvestment(text, query).Render() }), true
	case KindRisk:
		return scoringTool("risk_assessment",
			"Evaluates financial risk from a document using keyword and numeric analysis.",
			func(text, query string) string { return heuristics.AssessRisk(text, query).Render() }), true
	case KindVerify:
		return scoringTool("verify_financial_document",
			"Verifies financial document content for completeness and relevance.",
			func(text, query string) string { return heuristics.VerifyDocument(text, query).Render() }), true
	default:
		return nil, false
	}
}

func scoringTool(name, description string, score func(text, query string) string) agents.Tool {
	return agents.FunctionTool{
		Name:             name,
		Description:      description,
		ParamsJSONSchema: pathQuerySchema(name + "_args"),
		OnInvokeTool: func(_ context.Context, arguments string) (any, error) {
			var args pathQueryArgs
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return nil, err
			}
			doc, err := extract.Extract(args.Path)
			if err != nil {
				return extractionErrorText(args.Path, err), nil
			}
			return score(doc.String(), args.Query), nil
		},
		StrictJSONSchema: param.NewOpt(true),
	}
}

func pathSchema(title string) map[string]any {
	return map[string]any{
		"title":                title,
		"type":                 "object",
		"required":             []string{"path"},
		"additionalProperties": false,
		"properties": map[string]any{
			"path": map[string]any{
				"title":       "Path",
				"type":        "string",
				"description": "Filesystem path of the PDF document.",
			},
		},
	}
}

func pathQuerySchema(title string) map[string]any {
	s := pathSchema(title)
	s["required"] = []string{"path", "query"}
	props := s["properties"].(map[string]any)
	props["query"] = map[string]any{
		"title":       "Query",
		"type":        "string",
		"description": "The user's analysis query.",
	}
	return s
}
