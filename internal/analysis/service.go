package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/nlpodyssey/openai-agents-go/modelsettings"
	"github.com/openai/openai-go/v3/packages/param"
)

// ErrEmptyOutput marks an agent run that completed without producing any
// report text. An empty report is a failure, never an empty success.
var ErrEmptyOutput = errors.New("agent returned empty response")

// Result is the normalized output of a completed analysis run.
type Result struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Service runs one agent per analysis kind against a document on disk.
type Service struct {
	model    string
	settings modelsettings.ModelSettings
}

func NewService(model string) *Service {
	return &Service{
		model: model,
		settings: modelsettings.ModelSettings{
			Temperature: param.NewOpt(0.7),
			MaxTokens:   param.NewOpt(int64(8000)),
		},
	}
}

// Analyze builds the kind's agent, attaches the document reader plus the
// kind's scorer tool, and runs it with the substituted task prompt. The
// call blocks for the duration of the model exchange; callers schedule it
// off the request path.
func (s *Service) Analyze(ctx context.Context, kind Kind, query, path string) (Result, error) {
	d, ok := descriptors[kind]
	if !ok {
		return Result{}, fmt.Errorf("unknown analysis kind %q", kind)
	}

	tools := []agents.Tool{readDocumentTool()}
	if scorer, ok := kind.scorerTool(); ok {
		tools = append(tools, scorer)
	}

	agent := agents.New(d.agentName).
		WithInstructions(d.role).
		WithModel(s.model).
		WithModelSettings(s.settings).
		WithTools(tools...)

	result, err := agents.Run(ctx, agent, kind.taskInput(query, path))
	if err != nil {
		return Result{}, fmt.Errorf("agent run: %w", err)
	}

	text := outputText(result.FinalOutput)
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyOutput
	}
	return Result{Text: text}, nil
}

// outputText flattens the framework's heterogeneous final output into the
// report body.
func outputText(out any) string {
	switch v := out.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
