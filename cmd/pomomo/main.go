package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/pomomo-timer"
)

const (
	RepoURL = "https://github.com/benjamonnguyen/pomomo-timer"
	Version = "0.1.0"
)

type cli struct {
	isProd   bool
	inMemory bool
	verbose  bool

	cfg pomomo.Config
	l   *log.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "pomomo",
		Short:         "Pomodoro timer with statistics and a task list",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
	}
	root.PersistentFlags().BoolVar(&c.isProd, "prod", false, "load .env instead of .env.dev")
	root.PersistentFlags().BoolVar(&c.inMemory, "memory", false, "keep state in memory only")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRunCmd(c),
		newServeCmd(c),
		newBotCmd(c),
		newRegisterCmd(c),
		newStatsCmd(c),
		newTaskCmd(c),
		newSettingsCmd(c),
		newPrefsCmd(c),
	)
	return root
}

func (c *cli) init() error {
	cfg, err := pomomo.LoadConfig(c.isProd)
	if err != nil {
		return err
	}
	if c.verbose {
		cfg.LogLevel = log.DebugLevel
	}
	c.cfg = cfg

	c.l = log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
		ReportCaller:    cfg.LogLevel == log.DebugLevel,
	})
	log.SetDefault(c.l)
	return nil
}
