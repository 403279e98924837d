package main

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/benjamonnguyen/pomomo-timer"
	"github.com/benjamonnguyen/pomomo-timer/timer"
)

const timerInteraction = "timer"

var messageUpdateRate = 20 * time.Second

func SessionMessageComponents(s timer.Snapshot, today int) []discordgo.MessageComponent {
	button := func(label string, style discordgo.ButtonStyle, action string) discordgo.Button {
		return discordgo.Button{
			Label: label,
			Style: style,
			CustomID: InteractionID{
				Type:   timerInteraction,
				Action: action,
			}.ToCustomID(),
		}
	}
	var primary discordgo.Button
	switch {
	case s.Paused:
		primary = button("Resume", discordgo.SuccessButton, pomomo.ResumeAction)
	case s.Running:
		primary = button("Pause", discordgo.SecondaryButton, pomomo.PauseAction)
	default:
		primary = button("Start", discordgo.SuccessButton, pomomo.StartAction)
	}
	actionRow := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			primary,
			button("Skip", discordgo.PrimaryButton, pomomo.SkipAction),
			button("Reset", discordgo.DangerButton, pomomo.ResetAction),
		},
	}

	textParts := []string{
		fmt.Sprintf("### %s", s.Phase),
		fmt.Sprintf("`%s` %s", timer.FormatRemaining(s.Remaining), timerBar(s)),
		fmt.Sprintf("Session %s | Today: %d", sessionProgress(s.CompletedPomodoros), today),
	}
	accentColor := ColorRed
	if s.Phase.IsBreak() {
		accentColor = ColorGreen
	}
	if !s.Running || s.Paused {
		accentColor = ColorLightGrey
	}
	container := discordgo.Container{
		Components: []discordgo.MessageComponent{
			TextDisplay(strings.Join(textParts, "\n")),
		},
		AccentColor: accentColor.ToInt(),
	}

	return []discordgo.MessageComponent{
		container,
		actionRow,
	}
}

func settingsText(s pomomo.Settings, soundEnabled bool) string {
	sound := "on"
	if !soundEnabled {
		sound = "off"
	}
	return strings.Join([]string{
		"### Timer Settings",
		fmt.Sprintf("%s: %d min", pomomo.WorkPhase, int(s.Work.Minutes())),
		fmt.Sprintf("%s: %d min", pomomo.ShortBreakPhase, int(s.ShortBreak.Minutes())),
		fmt.Sprintf("%s: %d min", pomomo.LongBreakPhase, int(s.LongBreak.Minutes())),
		fmt.Sprintf("Long break every %d pomodoros", s.LongBreakInterval),
		fmt.Sprintf("Sound: %s", sound),
	}, "\n")
}

func statsText(stats pomomo.Statistics, today int) string {
	return strings.Join([]string{
		"### Statistics",
		fmt.Sprintf("Today: %d", today),
		fmt.Sprintf("This week: %d", stats.WeeklyTotal),
		fmt.Sprintf("Total: %d pomodoros (%.0f min)", stats.TotalPomodoros, stats.TotalMinutes),
		fmt.Sprintf("Daily average: %d", stats.DailyAverage),
	}, "\n")
}

func tasksText(list []pomomo.ExistingTaskRecord) string {
	if len(list) == 0 {
		return "No tasks yet. Add one with `/task add`."
	}
	lines := []string{"### Tasks"}
	for _, t := range list {
		box := "⬜"
		text := t.Text
		if t.Completed {
			box = "✅"
			text = "~~" + text + "~~"
		}
		lines = append(lines, fmt.Sprintf("%s %s (%d) `%s`", box, text, t.EstimatedPomodoros, t.ID))
	}
	return strings.Join(lines, "\n")
}

type boardMessage struct {
	channelID, messageID string
	lastEdit             time.Time
}

// statusBoard tracks the last timer message of each channel so session
// updates can edit them.
type statusBoard struct {
	mu       sync.Mutex
	messages map[string]boardMessage
}

func (b *statusBoard) Track(channelID, messageID string, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.messages == nil {
		b.messages = make(map[string]boardMessage)
	}
	b.messages[channelID] = boardMessage{
		channelID: channelID,
		messageID: messageID,
		lastEdit:  now,
	}
}

// Due returns the tracked messages that should show an update from before
// to curr, ordered by channel. Ticks alone are shown at most every
// messageUpdateRate per message.
func (b *statusBoard) Due(before, curr timer.Snapshot, now time.Time) []boardMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	changed := before.Phase != curr.Phase ||
		before.Running != curr.Running ||
		before.Paused != curr.Paused ||
		before.Settings != curr.Settings

	var due []boardMessage
	for cID, msg := range b.messages {
		if !changed && now.Sub(msg.lastEdit) < messageUpdateRate {
			continue
		}
		msg.lastEdit = now
		b.messages[cID] = msg
		due = append(due, msg)
	}
	slices.SortFunc(due, func(x, y boardMessage) int {
		return strings.Compare(x.channelID, y.channelID)
	})
	return due
}
