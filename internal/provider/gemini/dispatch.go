package gemini

import (
	"context"

	"github.com/Cyclone1070/myshkin/internal/workflow/toolmanager"
	"google.golang.org/genai"
)

// toolExecutor runs one tool call.
type toolExecutor interface {
	Execute(ctx context.Context, call toolmanager.Call) (toolmanager.Reply, error)
}

// Dispatch runs each function call in order and returns one function response
// part per call, in the same order. Successful replies are sent as
// {"output": ...} and failed ones as {"error": ...}.
//
// Calls run sequentially; the only error returned is the context error that
// stopped execution.
func Dispatch(ctx context.Context, tools toolExecutor, calls []*genai.FunctionCall) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(calls))
	for _, fc := range calls {
		if fc == nil {
			continue
		}
		reply, err := tools.Execute(ctx, toolmanager.Call{
			ID:   fc.ID,
			Name: fc.Name,
			Args: fc.Args,
		})
		if err != nil {
			return nil, err
		}

		key := "output"
		if reply.IsError {
			key = "error"
		}
		parts = append(parts, &genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				ID:       fc.ID,
				Name:     fc.Name,
				Response: map[string]any{key: reply.Content},
			},
		})
	}
	return parts, nil
}

// ResponseContent wraps function response parts in a user-role content
// ready to append to the conversation.
func ResponseContent(parts []*genai.Part) *genai.Content {
	return &genai.Content{
		Role:  string(genai.RoleUser),
		Parts: parts,
	}
}
