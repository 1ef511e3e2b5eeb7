package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Cyclone1070/myshkin/internal/provider/gemini"
	"github.com/Cyclone1070/myshkin/internal/tool"
	"github.com/Cyclone1070/myshkin/internal/workflow/toolmanager"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

func newToolsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Describe the tools offered to a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				format = "json"
			}

			decls := a.toolkit.Tools.Declarations()
			switch format {
			case "markdown":
			case "json":
				return writeJSON(a.out, decls)
			case "gemini":
				return writeJSON(a.out, gemini.Tools(decls))
			default:
				return fmt.Errorf("unknown format %q: want markdown, json or gemini", format)
			}

			renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
			if err != nil {
				return err
			}
			out, err := renderer.Render(declarationsMarkdown(decls))
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, out)
			return nil
		},
	}
	cmd.Flags().String("format", "markdown", "Output format: markdown, json or gemini")
	cmd.Flags().Bool("json", false, "Shorthand for --format json")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// declarationsMarkdown documents each tool with a parameter table.
func declarationsMarkdown(decls []tool.Declaration) string {
	var b strings.Builder
	b.WriteString("# Tools\n")
	for _, decl := range decls {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", decl.Name, decl.Description)
		if decl.Parameters == nil || len(decl.Parameters.Properties) == 0 {
			continue
		}

		required := make(map[string]bool, len(decl.Parameters.Required))
		for _, name := range decl.Parameters.Required {
			required[name] = true
		}
		names := make([]string, 0, len(decl.Parameters.Properties))
		for name := range decl.Parameters.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString("\n| Parameter | Type | Required | Description |\n|---|---|---|---|\n")
		for _, name := range names {
			prop := decl.Parameters.Properties[name]
			req := ""
			if required[name] {
				req = "yes"
			}
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", name, prop.Type, req, strings.ReplaceAll(prop.Description, "|", "\\|"))
		}
	}
	return b.String()
}

func newCallCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call TOOL [JSON-ARGS]",
		Short: "Dispatch one tool call through the registry, as a model would",
		Example: `  $ myshkin call read_file '{"path": "go.mod"}'
  $ myshkin call remove_lines '{"path": "a.txt", "start_line": 2, "end_line": 2}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var callArgs map[string]any
			if len(args) == 2 {
				if err := json.Unmarshal([]byte(args[1]), &callArgs); err != nil {
					return fmt.Errorf("invalid JSON arguments: %w", err)
				}
			}

			reply, err := a.toolkit.Tools.Execute(cmd.Context(), toolmanager.Call{
				ID:   "cli",
				Name: args[0],
				Args: callArgs,
			})
			if err != nil {
				return err
			}

			if reply.IsError {
				fmt.Fprintln(a.out, errorStyle.Render(reply.Content))
				return nil
			}
			printDisplay(a, reply.Display)
			return nil
		},
	}
}

func newDispatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch [CALLS-FILE]",
		Short: "Run Gemini function calls and print the function response content",
		Long: `Reads a JSON array of Gemini function calls from CALLS-FILE, or stdin when
omitted, runs them in order through the registry and prints the user-role
content holding one function response per call.`,
		Example: `  $ echo '[{"id": "1", "name": "read_file", "args": {"path": "go.mod"}}]' | myshkin dispatch`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var calls []*genai.FunctionCall
			if err := json.Unmarshal(data, &calls); err != nil {
				return fmt.Errorf("invalid function calls: %w", err)
			}

			parts, err := gemini.Dispatch(cmd.Context(), a.toolkit.Tools, calls)
			if err != nil {
				return err
			}
			return writeJSON(a.out, gemini.ResponseContent(parts))
		},
	}
}

func printDisplay(a *app, display tool.ToolDisplay) {
	switch d := display.(type) {
	case tool.LinesDisplay:
		printLines(a.out, d)
	case tool.PatchDisplay:
		if d.ExitCode == 0 {
			fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("patch exited 0 (dry run: %t)", d.DryRun)))
		} else {
			fmt.Fprintln(a.out, errorStyle.Render(fmt.Sprintf("patch exited %d", d.ExitCode)))
		}
		if d.Stdout != "" {
			fmt.Fprint(a.out, d.Stdout)
		}
		if d.Stderr != "" {
			fmt.Fprint(a.out, errorStyle.Render(d.Stderr))
		}
	case tool.StringDisplay:
		fmt.Fprintln(a.out, string(d))
	default:
		fmt.Fprintln(a.out, headerStyle.Render(fmt.Sprintf("%v", d)))
	}
}
