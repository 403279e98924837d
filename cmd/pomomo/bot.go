package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dg "github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/pomomo-timer"
	"github.com/benjamonnguyen/pomomo-timer/discordgo"
	"github.com/benjamonnguyen/pomomo-timer/notify"
	"github.com/benjamonnguyen/pomomo-timer/timer"
)

func newDiscordClient(cfg pomomo.Config) (*dg.Session, error) {
	if err := cfg.RequireBot(); err != nil {
		return nil, err
	}
	cl, err := dg.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	cl.ShouldRetryOnRateLimit = false
	cl.Client = &http.Client{Timeout: (20 * time.Second)}
	cl.UserAgent = fmt.Sprintf("%s (%s, v%s)", cfg.BotName, RepoURL, Version)
	cl.ShouldReconnectVoiceOnSessionError = true
	cl.Identify.Intents = dg.IntentsGuilds | dg.IntentsGuildVoiceStates
	return cl, nil
}

func newBotCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the timer as a Discord bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			topCtx, topCtxC := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer topCtxC()

			cl, err := newDiscordClient(c.cfg)
			if err != nil {
				return err
			}
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close() //nolint

			return a.runBot(topCtx, cl)
		},
	}
}

func (a *app) runBot(topCtx context.Context, cl *dg.Session) error {
	l := a.l.WithPrefix("bot")
	dm := NewDiscordMessenger(cl)
	board := &statusBoard{}

	// notification sinks
	notifier := notify.MultiNotifier{notify.LogNotifier{L: l}}
	if a.cfg.NotifyChannelID != "" {
		notifier = append(notifier, discordgo.NewChannelNotifier(cl, a.cfg.NotifyChannelID, l))
	}
	var audio pomomo.AudioSink = notify.Silent{}
	var voiceAlert *discordgo.VoiceAlert
	if a.cfg.HasVoiceAlert() {
		l.Info("loading packets", "path", a.cfg.AlertSoundPath)
		packets, err := discordgo.LoadDCAFile(a.cfg.AlertSoundPath)
		if err != nil {
			return fmt.Errorf("failed to load alert sound: %w", err)
		}
		voiceAlert = discordgo.NewVoiceAlert(cl, a.cfg.VoiceGuildID, a.cfg.VoiceChannelID, packets, l)
		audio = voiceAlert
	}
	dispatcher := notify.NewDispatcher(notifier, audio, a.prefs, l)

	// session manager
	sessionManager := a.newSessionManager(topCtx)
	completion := onCompletion(dispatcher)
	sessionManager.OnSessionUpdate(func(ctx context.Context, before, curr timer.Snapshot) {
		now := time.Now()
		due := board.Due(before, curr, now)
		if len(due) > 0 {
			components := SessionMessageComponents(curr, a.recorder.Today(ctx, now))
			for _, msg := range due {
				if _, err := dm.EditChannelMessage(msg.channelID, msg.messageID, components...); err != nil {
					l.Error("failed to edit discord channel message", "channelID", msg.channelID, "messageID", msg.messageID, "err", err)
				}
			}
		}
		completion(ctx, before, curr)
	})

	// discord event hooks
	cl.AddHandler(func(s *dg.Session, m *dg.InteractionCreate) {
		_ = TimerCommand(topCtx, sessionManager, a.recorder, board, dm, m) ||
			TimerButton(topCtx, sessionManager, a.recorder, board, dm, m) ||
			EditSettings(topCtx, sessionManager, a.prefs, dm, m) ||
			ManageTasks(topCtx, a.tasks, dm, m) ||
			ShowStats(topCtx, a.recorder, dm, m)
	})

	// open connection
	if err := cl.Open(); err != nil {
		_ = sessionManager.Shutdown()
		return fmt.Errorf("error opening connection: %w", err)
	}
	l.Info(a.cfg.BotName + " running. Press CTRL-C to exit.")

	// graceful shutdown
	<-topCtx.Done()
	l.Info("terminating " + a.cfg.BotName)
	shutdownTimeout, shutdownTimeoutC := context.WithTimeout(context.Background(), time.Minute)
	go func() {
		// to ensure proper shutdown ordering...
		if err := sessionManager.Shutdown(); err != nil {
			l.Error(err)
		}
		if voiceAlert != nil {
			voiceAlert.Close()
		}
		if err := cl.Close(); err != nil {
			l.Error(err)
		}
		shutdownTimeoutC()
	}()
	<-shutdownTimeout.Done()
	if shutdownTimeout.Err() != context.Canceled {
		return fmt.Errorf("failed to shut down gracefully: %w", shutdownTimeout.Err())
	}
	return nil
}

func newRegisterCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Overwrite the bot's Discord application commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := newDiscordClient(c.cfg)
			if err != nil {
				return err
			}

			// Open a connection
			if err := bot.Open(); err != nil {
				return fmt.Errorf("error opening connection: %w", err)
			}
			defer bot.Close() //nolint

			app, err := bot.Application("@me")
			if err != nil {
				return err
			}

			created, err := bot.ApplicationCommandBulkOverwrite(app.ID, "", pomomo.Commands)
			if err != nil {
				return err
			}

			for _, ac := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ac.Name, ac.Description)
			}
			return nil
		},
	}
}
