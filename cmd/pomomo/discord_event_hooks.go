package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-timer"
	"github.com/benjamonnguyen/pomomo-timer/preferences"
	"github.com/benjamonnguyen/pomomo-timer/stats"
	"github.com/benjamonnguyen/pomomo-timer/tasks"
	"github.com/benjamonnguyen/pomomo-timer/timer"
)

const (
	defaultErrorMsg = "Looks like something went wrong. Try again in a bit or reach out to support."
)

type SessionManager interface {
	Snapshot() timer.Snapshot
	Start() timer.Snapshot
	Pause() timer.Snapshot
	Resume() timer.Snapshot
	Reset() timer.Snapshot
	Skip() timer.Snapshot
	UpdateSettings(context.Context, pomomo.Settings) (timer.Snapshot, error)
}

func timerOp(sessionManager SessionManager, action string) (func() timer.Snapshot, bool) {
	switch action {
	case pomomo.StartAction:
		return sessionManager.Start, true
	case pomomo.PauseAction:
		return sessionManager.Pause, true
	case pomomo.ResumeAction:
		return sessionManager.Resume, true
	case pomomo.ResetAction:
		return sessionManager.Reset, true
	case pomomo.SkipAction:
		return sessionManager.Skip, true
	case pomomo.StatusAction:
		return sessionManager.Snapshot, true
	default:
		return nil, false
	}
}

// TimerCommand handles `/timer <action>` and posts a fresh status message.
func TimerCommand(ctx context.Context, sessionManager SessionManager, recorder *stats.Recorder, board *statusBoard, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionApplicationCommand {
		return false
	}
	data := m.ApplicationCommandData()
	if data.Name != pomomo.TimerCommand.Name {
		return false
	}

	var action string
	for _, opt := range data.Options {
		if opt.Name == pomomo.ActionOption {
			action = opt.StringValue()
		}
	}
	op, ok := timerOp(sessionManager, action)
	if !ok {
		if err := dm.RespondEphemeral(m.Interaction, fmt.Sprintf("Unknown action %q.", action)); err != nil {
			log.Error(err)
		}
		return true
	}

	s := op()
	now := time.Now()
	msg, err := dm.Respond(m.Interaction, true, SessionMessageComponents(s, recorder.Today(ctx, now))...)
	if err != nil {
		log.Error("failed to respond", "action", action, "err", err)
		return true
	}
	board.Track(m.ChannelID, msg.ID, now)
	log.Info("timer command", "action", action, "phase", s.Phase, "remaining", s.Remaining)
	return true
}

// TimerButton handles the buttons of a status message.
func TimerButton(ctx context.Context, sessionManager SessionManager, recorder *stats.Recorder, board *statusBoard, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionMessageComponent {
		return false
	}
	id, err := FromCustomID(m.MessageComponentData().CustomID)
	if err != nil || id.Type != timerInteraction {
		return false
	}
	op, ok := timerOp(sessionManager, id.Action)
	if !ok {
		return false
	}

	s := op()
	now := time.Now()
	if err := dm.UpdateMessage(m.Interaction, SessionMessageComponents(s, recorder.Today(ctx, now))...); err != nil {
		log.Error("failed to update timer message", "action", id.Action, "err", err)
		return true
	}
	if m.Message != nil {
		board.Track(m.ChannelID, m.Message.ID, now)
	}
	return true
}

// settingsFromOptions applies `/settings` options on top of base. Integer
// options arrive as float64.
func settingsFromOptions(base pomomo.Settings, opts []*discordgo.ApplicationCommandInteractionDataOption) (settings pomomo.Settings, sound *bool, changed bool) {
	settings = base
	for _, opt := range opts {
		switch opt.Name {
		case pomomo.WorkOption, pomomo.ShortBreakOption, pomomo.LongBreakOption, pomomo.IntervalsOption:
			val, ok := opt.Value.(float64)
			if !ok {
				continue
			}
			intVal := int(val)
			switch opt.Name {
			case pomomo.WorkOption:
				settings.Work = time.Duration(intVal) * time.Minute
			case pomomo.ShortBreakOption:
				settings.ShortBreak = time.Duration(intVal) * time.Minute
			case pomomo.LongBreakOption:
				settings.LongBreak = time.Duration(intVal) * time.Minute
			case pomomo.IntervalsOption:
				settings.LongBreakInterval = intVal
			}
			changed = true
		case pomomo.SoundOption:
			if val, ok := opt.Value.(bool); ok {
				sound = &val
			}
		}
	}
	return settings, sound, changed
}

func EditSettings(ctx context.Context, sessionManager SessionManager, prefs *preferences.Store, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionApplicationCommand {
		return false
	}
	data := m.ApplicationCommandData()
	if data.Name != pomomo.SettingsCommand.Name {
		return false
	}

	settings, sound, changed := settingsFromOptions(sessionManager.Snapshot().Settings, data.Options)
	if changed {
		s, err := sessionManager.UpdateSettings(ctx, settings)
		if err != nil {
			msg := defaultErrorMsg
			if errors.Is(err, pomomo.ErrInvalidSettings) {
				msg = "Those settings don't work: " + err.Error()
			} else {
				log.Error("failed to update settings", "err", err)
			}
			if err := dm.RespondEphemeral(m.Interaction, msg); err != nil {
				log.Error(err)
			}
			return true
		}
		settings = s.Settings
	}
	if sound != nil {
		if err := prefs.SetSoundEnabled(ctx, *sound); err != nil {
			log.Error("failed to save sound preference", "err", err)
		}
	}

	if _, err := dm.Respond(m.Interaction, false, TextDisplay(settingsText(settings, prefs.SoundEnabled(ctx)))); err != nil {
		log.Error(err)
	}
	return true
}

func ManageTasks(ctx context.Context, store *tasks.Store, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionApplicationCommand {
		return false
	}
	data := m.ApplicationCommandData()
	if data.Name != pomomo.TaskCommand.Name || len(data.Options) == 0 {
		return false
	}

	sub := data.Options[0]
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		opts[opt.Name] = opt
	}

	reply := func(content string) {
		if _, err := dm.Respond(m.Interaction, false, TextDisplay(content)); err != nil {
			log.Error(err)
		}
	}
	replyErr := func(err error) {
		msg := defaultErrorMsg
		if errors.Is(err, tasks.ErrEmptyText) || errors.Is(err, tasks.ErrInvalidEstimate) {
			msg = err.Error()
		} else {
			log.Error("failed task command", "subcommand", sub.Name, "err", err)
		}
		if err := dm.RespondEphemeral(m.Interaction, msg); err != nil {
			log.Error(err)
		}
	}

	switch sub.Name {
	case pomomo.TaskAddSubcommand:
		var text string
		estimate := 1
		if opt := opts[pomomo.TaskTextOption]; opt != nil {
			text = opt.StringValue()
		}
		if opt := opts[pomomo.TaskEstimateOption]; opt != nil {
			estimate = int(opt.IntValue())
		}
		task, err := store.Add(ctx, text, estimate)
		if err != nil {
			replyErr(err)
			return true
		}
		reply(fmt.Sprintf("Added **%s** (%d) `%s`", task.Text, task.EstimatedPomodoros, task.ID))
	case pomomo.TaskToggleSubcommand, pomomo.TaskRemoveSubcommand:
		var id pomomo.TaskID
		if opt := opts[pomomo.TaskIDOption]; opt != nil {
			id = pomomo.TaskID(opt.StringValue())
		}
		var found bool
		var err error
		if sub.Name == pomomo.TaskToggleSubcommand {
			_, found, err = store.Toggle(ctx, id)
		} else {
			found, err = store.Remove(ctx, id)
		}
		if err != nil {
			replyErr(err)
			return true
		}
		if !found {
			if err := dm.RespondEphemeral(m.Interaction, fmt.Sprintf("No task with id `%s`.", id)); err != nil {
				log.Error(err)
			}
			return true
		}
		reply(tasksText(store.List(ctx)))
	case pomomo.TaskListSubcommand:
		reply(tasksText(store.List(ctx)))
	default:
		return false
	}
	return true
}

func ShowStats(ctx context.Context, recorder *stats.Recorder, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionApplicationCommand {
		return false
	}
	if m.ApplicationCommandData().Name != pomomo.StatsCommand.Name {
		return false
	}

	now := time.Now()
	text := statsText(recorder.Summary(ctx, now), recorder.Today(ctx, now))
	if _, err := dm.Respond(m.Interaction, false, TextDisplay(text)); err != nil {
		log.Error(err)
	}
	return true
}
