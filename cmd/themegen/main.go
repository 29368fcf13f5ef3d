package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/soft-focus/themegen/internal/config"
	"github.com/soft-focus/themegen/internal/generator"
	"github.com/soft-focus/themegen/internal/logging"
	"github.com/soft-focus/themegen/internal/palette"
	"github.com/soft-focus/themegen/internal/storage"
	"github.com/soft-focus/themegen/internal/ui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themegen [dark|light|all|THEME]",
		Short: "Generate application themes from a central color palette",
		Long: `themegen renders theme files for terminal, editor, desktop and browser
applications from one palette per variant kept in a chezmoi source tree.

Palettes live in <root>/.chezmoidata/colors/<theme>.json (or .yaml).
Generated files are written into the chezmoi source tree, ready for
chezmoi apply.

Selectors:
  dark   the dark variant (themes.dark, default soft-focus-dark)
  light  the light variant (themes.light, default soft-focus-light)
  all    both variants, dark first (default)
  THEME  any other palette name`,
		Args: cobra.MaximumNArgs(1),
		// Errors are printed once by main
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	flags := cmd.PersistentFlags()
	flags.String("root", "", "chezmoi source directory (default: auto-detect)")
	flags.String("config", "", "config file (default: themegen.yaml in $XDG_CONFIG_HOME/themegen, ~/.config/themegen or .)")
	flags.String("colors-dir", "", "palette directory relative to the root")
	flags.String("config-dir", "", "dot_config directory relative to the root")
	flags.String("emacs-dir", "", "Emacs directory relative to the root")
	flags.Bool("yaml", true, "allow YAML palettes when no JSON palette exists")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.StringSlice("only", nil, "limit generation to these targets (comma separated)")

	cmd.Flags().Bool("stage", false, "git add generated files after a successful run")

	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newPreviewCmd())
	return cmd
}

// app bundles everything a command needs once configuration is resolved
type app struct {
	cfg      *config.Config
	storage  *storage.Storage
	loader   *palette.Loader
	runner   *generator.Runner
	printer  *ui.Printer
	logger   zerolog.Logger
	variants generator.Variants
}

// setup loads configuration for cmd and wires storage, loader and runner.
// Logs go to logOut.
func setup(cmd *cobra.Command, logOut io.Writer) (*app, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.New(), cmd.Flags(), file)
	if err != nil {
		return nil, err
	}

	logger, err := logging.Setup(logOut, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("root", cfg.Root).Str("colors_dir", cfg.ColorsDir).Msg("configuration loaded")

	only, _ := cmd.Flags().GetStringSlice("only")
	targets, err := generator.Filter(generator.Targets(), only)
	if err != nil {
		return nil, err
	}

	s := storage.New(cfg.Root, cfg.Layout())
	loader := palette.NewLoader(s,
		palette.WithYAML(cfg.YAML),
		palette.WithLogger(logging.Component("palette")),
	)
	printer := ui.NewPrinter(cmd.OutOrStdout())

	return &app{
		cfg:     cfg,
		storage: s,
		loader:  loader,
		runner: &generator.Runner{
			Storage: s,
			Loader:  loader,
			Targets: targets,
			Printer: printer,
			Logger:  logging.Component("generator"),
			Stage:   cfg.Stage,
		},
		printer:  printer,
		logger:   logger,
		variants: generator.Variants{Dark: cfg.Themes.Dark, Light: cfg.Themes.Light},
	}, nil
}

// themes maps the optional selector argument to palette names
func (a *app) themes(args []string) []string {
	selector := generator.SelectAll
	if len(args) > 0 {
		selector = args[0]
	}
	return generator.SelectThemes(selector, a.variants)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	_, err = a.runner.Run(cmd.Context(), a.themes(args))
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.NewPrinter(os.Stderr).Error(err)
		os.Exit(1)
	}
}
