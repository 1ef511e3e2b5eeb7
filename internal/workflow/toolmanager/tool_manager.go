package toolmanager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/Cyclone1070/myshkin/internal/tool"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
)

// Call is a request from the model to run one tool.
type Call struct {
	ID   string
	Name string
	Args map[string]any
}

// Reply is the outcome of a Call. Failures are replies too: Content then holds
// an "Error: ..." message for the model and IsError is set.
type Reply struct {
	ID      string
	Name    string
	Content string
	Display tool.ToolDisplay
	IsError bool
}

// ToolManager is the registry of available tools keyed by name.
type ToolManager struct {
	registry map[string]toolImpl
	log      zerolog.Logger
}

func NewToolManager(log zerolog.Logger, tools ...toolImpl) *ToolManager {
	tm := &ToolManager{
		registry: make(map[string]toolImpl),
		log:      log,
	}
	for _, t := range tools {
		tm.Register(t)
	}
	return tm
}

// Register adds t, replacing any tool with the same name.
func (m *ToolManager) Register(t toolImpl) {
	m.registry[t.Name()] = t
}

// Names returns the registered tool names in sorted order.
func (m *ToolManager) Names() []string {
	names := make([]string, 0, len(m.registry))
	for name := range m.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *ToolManager) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(m.registry))
	for _, t := range m.registry {
		decls = append(decls, t.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Execute decodes the call's arguments into the tool's input, validates them
// and runs the tool.
//
// Unknown tools, bad arguments and tool failures are reported to the model as
// error replies. The returned error is non-nil only when ctx is done.
func (m *ToolManager) Execute(ctx context.Context, call Call) (Reply, error) {
	t, ok := m.registry[call.Name]
	if !ok {
		declsJSON, _ := json.MarshalIndent(m.Declarations(), "", "  ")
		m.log.Warn().Str("tool", call.Name).Msg("unknown tool requested")
		return m.errorReply(call, fmt.Sprintf("Error: tool %q does not exist.\n\nAvailable tools:\n%s", call.Name, declsJSON)), nil
	}

	input := t.Input()
	if err := decodeArgs(call.Args, input); err != nil {
		declJSON, _ := json.MarshalIndent(t.Declaration(), "", "  ")
		m.log.Warn().Err(err).Str("tool", call.Name).Msg("invalid tool arguments")
		return m.errorReply(call, fmt.Sprintf("Error: invalid arguments for tool %q: %v\n\nExpected schema:\n%s", call.Name, err, declJSON)), nil
	}

	if v, ok := input.(validator); ok {
		if err := v.Validate(); err != nil {
			m.log.Warn().Err(err).Str("tool", call.Name).Msg("tool arguments rejected")
			return m.errorReply(call, fmt.Sprintf("Error: invalid arguments for tool %q: %v", call.Name, err)), nil
		}
	}

	event := m.log.Debug().Str("tool", call.Name)
	if s, ok := input.(fmt.Stringer); ok {
		event = event.Str("request", s.String())
	}
	event.Msg("executing tool")

	res, err := t.Execute(ctx, input)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return Reply{}, err
		}
		m.log.Info().Err(err).Str("tool", call.Name).Msg("tool failed")
		return m.errorReply(call, fmt.Sprintf("Error: %v", err)), nil
	}

	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	return Reply{
		ID:      call.ID,
		Name:    call.Name,
		Content: res.LLMContent(),
		Display: res.Display(),
	}, nil
}

func (m *ToolManager) errorReply(call Call, content string) Reply {
	return Reply{
		ID:      call.ID,
		Name:    call.Name,
		Content: content,
		Display: tool.StringDisplay(content),
		IsError: true,
	}
}

// decodeArgs fills input from loosely typed JSON arguments. Numbers arriving
// as float64 or strings are converted to the field type; unknown keys and
// fractional values for integer fields are rejected.
func decodeArgs(args map[string]any, input any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           input,
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       integralNumberHook,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

// integralNumberHook refuses to truncate a fractional JSON number into an
// integer field.
func integralNumberHook(from, to reflect.Type, data any) (any, error) {
	for to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		if f := reflect.ValueOf(data).Float(); f != math.Trunc(f) {
			return nil, fmt.Errorf("expected an integer, got %v", f)
		}
	}
	return data, nil
}
