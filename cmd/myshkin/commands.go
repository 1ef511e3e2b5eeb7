package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
)

func newTreeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [DIR]",
		Short: "Show the directory tree, skipping build artifacts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth := a.cfg.Tools.TreeMaxDepth
			if cmd.Flags().Changed("depth") {
				d, err := cmd.Flags().GetInt("depth")
				if err != nil {
					return err
				}
				if d < 0 {
					return fmt.Errorf("invalid depth %d: must be >= 0", d)
				}
				depth = d
			}
			dir, err := a.toolkit.Resolver.Resolve(optionalArg(args))
			if err != nil {
				return err
			}
			for line := range a.toolkit.Tree.Render(dir, depth) {
				fmt.Fprintln(a.out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntP("depth", "d", 0, "Maximum depth, 0 shows only the root (default from config)")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls [DIR]",
		Aliases: []string{"list"},
		Short:   "List files as paths relative to the base directory",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noRecurse, err := cmd.Flags().GetBool("no-recursive")
			if err != nil {
				return err
			}
			dir, err := a.toolkit.Resolver.Resolve(optionalArg(args))
			if err != nil {
				return err
			}
			printLines(a.out, slices.Collect(a.toolkit.Lister.List(dir, !noRecurse).Lines()))
			return nil
		},
	}
	cmd.Flags().Bool("no-recursive", false, "Only list the top level")
	return cmd
}

func newReadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read FILE",
		Short: "Print a file with line numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.toolkit.Editor.Read(args[0])
			if err != nil {
				return err
			}
			if res.Missing {
				printLines(a.out, res.Lines)
				return nil
			}
			printNumbered(a.out, slices.Collect(res.View()))
			return nil
		},
	}
}

func newInsertCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "insert FILE LINE TEXT",
		Short: "Insert TEXT as a new line at 0-based position LINE",
		Long: `Insert TEXT as a new line at 0-based position LINE.
LINE 0 prepends; LINE equal to the current line count appends.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLine(args[1])
			if err != nil {
				return err
			}
			res, err := a.toolkit.Editor.InsertAt(args[0], args[2], line)
			if err != nil {
				return err
			}
			printNumbered(a.out, slices.Collect(res.View()))
			return nil
		},
	}
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove FILE START [END]",
		Aliases: []string{"rm"},
		Short:   "Remove the inclusive 1-based line range START..END",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseLine(args[1])
			if err != nil {
				return err
			}
			end := start
			if len(args) == 3 {
				if end, err = parseLine(args[2]); err != nil {
					return err
				}
			}
			res, err := a.toolkit.Editor.RemoveRange(args[0], start, end)
			if err != nil {
				return err
			}
			printNumbered(a.out, slices.Collect(res.View()))
			return nil
		},
	}
}

func newPatchCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch [PATCHFILE]",
		Short: "Apply a unified diff read from PATCHFILE or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strip, err := cmd.Flags().GetInt("strip")
			if err != nil {
				return err
			}
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return err
			}
			dir, err := cmd.Flags().GetString("directory")
			if err != nil {
				return err
			}

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			res, err := a.toolkit.Applier.ApplyUnifiedDiff(cmd.Context(), dir, string(text), strip, dryRun)
			if err != nil {
				return err
			}
			if !res.Succeeded() {
				return fmt.Errorf("patch failed (exit %d):\n%s", res.ExitCode, res.Message())
			}
			fmt.Fprintln(a.out, successStyle.Render(res.Message()))
			return nil
		},
	}
	cmd.Flags().IntP("strip", "p", 0, "Strip this many leading path components from file names")
	cmd.Flags().Bool("dry-run", false, "Check the patch without changing files")
	cmd.Flags().StringP("directory", "d", "", "Directory to apply in, relative to the base directory")
	return cmd
}

// readInput reads the file named by the only argument, or stdin. The file is
// supplied by the operator, so it is read as given and not confined to the
// base directory.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return data, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func parseLine(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid line number %q", s)
	}
	return n, nil
}
