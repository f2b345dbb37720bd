package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/five82/tinywin/internal/app"
	"github.com/five82/tinywin/internal/config"
	"github.com/five82/tinywin/internal/logx"
	"github.com/five82/tinywin/internal/theme"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("tinywin failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		dir     string
		backend string
		themeID string
		debug   bool
	)
	root := &cobra.Command{
		Use:           "tinywin [flags]",
		Short:         "Browse a directory with the tinywin pane toolkit",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath, backend, themeID)
			if err != nil {
				return err
			}
			f, err := logx.OpenFile(cfg.LogFile)
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := pslog.ContextWithLogger(cmd.Context(), logx.New(f, debug))
			return app.Run(ctx, app.Options{
				Config: cfg,
				Dir:    dir,
				Logger: logx.Ctx(ctx),
			})
		},
	}
	flags := root.Flags()
	flags.StringVar(&cfgPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&dir, "dir", ".", "directory to browse")
	flags.StringVar(&backend, "backend", "", `terminal backend, "tcell" or "bubbletea"`)
	flags.StringVar(&themeID, "theme", "", "color theme ("+strings.Join(theme.Names(), ", ")+")")
	flags.BoolVar(&debug, "debug", false, "log at debug level")

	root.AddCommand(newThemesCmd())
	return root
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(path, backend, themeID string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if b := strings.ToLower(strings.TrimSpace(backend)); b != "" {
		cfg.Backend = b
	}
	if t := strings.TrimSpace(themeID); t != "" {
		cfg.Theme = t
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range theme.Names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
