// Command brlslice drives the BRL-CAD tools over mged scripts: it builds
// databases, measures objects, renders previews and exports Z slices as
// meshes or depth images.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/soypat/brlcad"
	"github.com/soypat/brlcad/config"
	"github.com/soypat/brlcad/engine"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	logLevel   string
	verbose    bool

	cfg    config.Config
	engine *engine.Engine
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "brlslice",
		Short:        "Build, measure and slice BRL-CAD geometry",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "configuration file (default "+config.DefaultPath+")")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.BoolVar(&a.verbose, "verbose", false, "echo the output of the BRL-CAD tools")

	root.AddCommand(
		a.materializeCommand(),
		a.topsCommand(),
		a.bboxCommand(),
		a.renderCommand(),
		a.sliceCommand(),
		a.previewCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(a.logLevel))); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}
	brlcad.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	a.cfg = cfg
	ec := cfg.Engine()
	ec.Stdout = cmd.OutOrStdout()
	ec.Stderr = cmd.ErrOrStderr()
	a.engine, err = engine.New(ec)
	return err
}
