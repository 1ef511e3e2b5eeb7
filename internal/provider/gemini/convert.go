package gemini

import (
	"github.com/Cyclone1070/myshkin/internal/tool"
	"google.golang.org/genai"
)

// Tools converts tool declarations into a single Gemini tool carrying one
// function declaration per tool.
func Tools(decls []tool.Declaration) []*genai.Tool {
	if len(decls) == 0 {
		return nil
	}

	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, decl := range decls {
		fd := &genai.FunctionDeclaration{
			Name:        decl.Name,
			Description: decl.Description,
		}
		if decl.Parameters != nil {
			fd.Parameters = toGeminiSchema(decl.Parameters)
		}
		functionDeclarations = append(functionDeclarations, fd)
	}

	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts a tool schema, recursing into properties and items.
func toGeminiSchema(s *tool.Schema) *genai.Schema {
	schema := &genai.Schema{
		Type:        toGeminiType(s.Type),
		Description: s.Description,
	}

	if len(s.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			schema.Properties[name] = toGeminiSchema(prop)
		}
	}
	if len(s.Required) > 0 {
		schema.Required = s.Required
	}
	if len(s.Enum) > 0 {
		schema.Enum = s.Enum
	}
	if s.Items != nil {
		schema.Items = toGeminiSchema(s.Items)
	}

	return schema
}

func toGeminiType(t tool.Type) genai.Type {
	switch t {
	case tool.TypeString:
		return genai.TypeString
	case tool.TypeNumber:
		return genai.TypeNumber
	case tool.TypeInteger:
		return genai.TypeInteger
	case tool.TypeBoolean:
		return genai.TypeBoolean
	case tool.TypeArray:
		return genai.TypeArray
	case tool.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
