package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/pomomo-timer"
	"github.com/benjamonnguyen/pomomo-timer/preferences"
)

// withApp runs fn with an opened app and closes it afterwards.
func (c *cli) withApp(fn func(*app) error) error {
	a, err := c.openApp()
	if err != nil {
		return err
	}
	defer a.Close() //nolint
	return fn(a)
}

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show pomodoro statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app) error {
				ctx := cmd.Context()
				now := time.Now()
				t := themeFor(a.prefs.DarkMode(ctx))
				fmt.Fprintln(cmd.OutOrStdout(), renderStats(t, a.recorder.Summary(ctx, now), a.recorder.Today(ctx, now)))
				return nil
			})
		},
	}
}

func newTaskCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the task list",
	}

	var estimate int
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app) error {
				task, err := a.tasks.Add(cmd.Context(), strings.Join(args, " "), estimate)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", task.ID)
				return nil
			})
		},
	}
	add.Flags().IntVarP(&estimate, "estimate", "e", 1, "estimated pomodoros")

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app) error {
				ctx := cmd.Context()
				fmt.Fprintln(cmd.OutOrStdout(), renderTasks(themeFor(a.prefs.DarkMode(ctx)), a.tasks.List(ctx)))
				return nil
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app) error {
				task, found, err := a.tasks.Toggle(cmd.Context(), pomomo.TaskID(args[0]))
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no task with id %s", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s completed=%t\n", task.ID, task.Completed)
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app) error {
				_, err := a.tasks.Remove(cmd.Context(), pomomo.TaskID(args[0]))
				return err
			})
		},
	}

	cmd.AddCommand(add, list, toggle, remove)
	return cmd
}

func newSettingsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change timer settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app) error {
				return preferences.WriteSettingsYAML(cmd.OutOrStdout(), a.prefs.Settings(cmd.Context()))
			})
		},
	}

	var work, shortBreak, longBreak time.Duration
	var interval int
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; unset flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app) error {
				ctx := cmd.Context()
				settings := a.prefs.Settings(ctx)
				flags := cmd.Flags()
				if flags.Changed("work") {
					settings.Work = work
				}
				if flags.Changed("short-break") {
					settings.ShortBreak = shortBreak
				}
				if flags.Changed("long-break") {
					settings.LongBreak = longBreak
				}
				if flags.Changed("interval") {
					settings.LongBreakInterval = interval
				}
				if err := a.prefs.UpdateSettings(ctx, settings); err != nil {
					return err
				}
				return preferences.WriteSettingsYAML(cmd.OutOrStdout(), settings)
			})
		},
	}
	set.Flags().DurationVar(&work, "work", 25*time.Minute, "focus duration")
	set.Flags().DurationVar(&shortBreak, "short-break", 5*time.Minute, "short break duration")
	set.Flags().DurationVar(&longBreak, "long-break", 15*time.Minute, "long break duration")
	set.Flags().IntVar(&interval, "interval", 4, "pomodoros between long breaks")

	export := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the settings to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app) error {
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				if err := preferences.WriteSettingsYAML(f, a.prefs.Settings(cmd.Context())); err != nil {
					_ = f.Close()
					return err
				}
				return f.Close()
			})
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Read settings from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close() //nolint

				ctx := cmd.Context()
				settings, err := preferences.ReadSettingsYAML(f, a.prefs.Settings(ctx))
				if err != nil {
					return err
				}
				return a.prefs.UpdateSettings(ctx, settings)
			})
		},
	}

	cmd.AddCommand(show, set, export, importCmd)
	return cmd
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("expected on or off, got %q", s)
		}
		return b, nil
	}
}

func newPrefsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app) error {
				p := a.prefs.Preferences(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "sound: %t\ndark mode: %t\n", p.SoundEnabled, p.DarkMode)
				return nil
			})
		},
	}

	toggle := func(use, short string, set func(*app, *cobra.Command, bool) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " on|off",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				on, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				return c.withApp(func(a *app) error {
					return set(a, cmd, on)
				})
			},
		}
	}
	cmd.AddCommand(
		toggle("sound", "Play a sound when a phase completes", func(a *app, cmd *cobra.Command, on bool) error {
			return a.prefs.SetSoundEnabled(cmd.Context(), on)
		}),
		toggle("theme", "Use the dark theme", func(a *app, cmd *cobra.Command, on bool) error {
			return a.prefs.SetDarkMode(cmd.Context(), on)
		}),
	)
	return cmd
}
