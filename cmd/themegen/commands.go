package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/soft-focus/themegen/internal/tui"
)

func newValidateCmd() *cobra.Command {
	var swatches bool

	cmd := &cobra.Command{
		Use:   "validate [dark|light|all|THEME]",
		Short: "Load and validate palettes without writing anything",
		Long: `Validate loads every selected palette and reports all missing or
malformed keys at once, grouped by palette.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			palettes, err := a.runner.LoadAll(a.themes(args))
			if err != nil {
				return err
			}
			for _, p := range palettes {
				a.printer.Valid(p.Theme, a.storage.Rel(p.Source))
				if swatches {
					if err := a.printer.Swatches(p); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&swatches, "swatches", false, "print every resolved role as a color swatch")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dark|light|all|THEME]",
		Short: "List the files a run would write",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			plan, err := a.runner.Plan(cmd.Context(), a.themes(args))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TARGET\tTHEME\tPATH")
			for _, p := range plan {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Target, p.Theme, a.storage.Rel(p.File.Path))
			}
			return w.Flush()
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [dark|light|all|THEME]",
		Short: "Check that generated files exist, are current and parse",
		Long: `Verify renders every target in memory and compares the result with the
files on disk. Each file is reported as ok, missing, stale (content differs
from what the palette produces) or invalid (does not parse). Any result other
than ok makes the command fail.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			_, err = a.runner.Verify(cmd.Context(), a.themes(args))
			return err
		},
	}
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Browse palettes and generate themes interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log output would draw over the alternate screen
			a, err := setup(cmd, io.Discard)
			if err != nil {
				return err
			}

			model := tui.New(tui.Options{
				Storage:  a.storage,
				Loader:   a.loader,
				Runner:   a.runner,
				Variants: a.variants,
				Logger:   a.logger,
			})
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}
}
