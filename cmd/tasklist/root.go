package main

import (
	"io"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/JamesPrial/tasklist/internal/app"
	"github.com/JamesPrial/tasklist/internal/config"
)

const version = "0.1.0"

// cli holds per-invocation state shared by the subcommands.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFile string
	debug      bool

	app *app.App
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) (*cobra.Command, *cli) {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "tasklist",
		Short: "A small persistent task list",
		Long: `tasklist keeps a list of short text tasks in a single storage slot.

Add tasks, mark them done, delete them, or clear the completed ones. The list
is saved after every change and reloaded on the next run.`,
		Version:           version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
		RunE:              c.runList,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "Log storage warnings and metrics to stderr")

	root.AddCommand(
		c.listCmd(),
		c.addCmd(),
		c.toggleCmd(),
		c.deleteCmd(),
		c.clearCmd(),
		c.applyCmd(),
	)

	return root, c
}

// open loads config and opens the store before any subcommand runs.
func (c *cli) open(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return setupError(err)
	}
	if c.debug {
		cfg.Debug = true
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Debug {
		logger = log.New(c.stderr, "[tasklist] ", log.LstdFlags)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		return setupError(err)
	}
	c.app = a

	logger.Printf("Using %s backend, slot %q, %d task(s) loaded", a.BackendName(), a.Store.Key(), len(a.Store.Items()))
	return nil
}

// shutdown flushes debug metrics and releases the backend. Safe to call when
// open never ran.
func (c *cli) shutdown() {
	if c.app == nil {
		return
	}
	if c.app.Config.Debug {
		logMetrics(c.app.Logger, c.app.Registry)
	}
	if err := c.app.Close(); err != nil {
		c.app.Logger.Printf("Warning: %v", err)
	}
}

// logMetrics writes every counter and gauge sample in reg, one per line.
func logMetrics(logger *log.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.Printf("Warning: failed to gather metrics: %v", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			label := ""
			for _, lp := range m.GetLabel() {
				label += "{" + lp.GetName() + "=" + lp.GetValue() + "}"
			}
			switch {
			case m.GetCounter() != nil:
				logger.Printf("metric %s%s = %g", mf.GetName(), label, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				logger.Printf("metric %s%s = %g", mf.GetName(), label, m.GetGauge().GetValue())
			}
		}
	}
}
