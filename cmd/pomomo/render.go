package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/benjamonnguyen/pomomo-timer"
	"github.com/benjamonnguyen/pomomo-timer/timer"
)

const (
	timerBarFilledChar = "⣶"
	timerBarEmptyChar  = "⡀"
	timerBarLength     = 20

	sessionDotFilled = "●"
	sessionDotEmpty  = "○"
	sessionDots      = 4
)

// timerBar fills with the remaining share of the current phase.
func timerBar(s timer.Snapshot) string {
	total := s.Duration()
	if s.Remaining <= 0 || total <= 0 {
		return strings.Repeat(timerBarEmptyChar, timerBarLength)
	}
	percentage := s.Remaining.Seconds() / total.Seconds()
	filled := min(int(math.Round(percentage*timerBarLength)), timerBarLength)
	return strings.Repeat(timerBarFilledChar, filled) + strings.Repeat(timerBarEmptyChar, timerBarLength-filled)
}

// sessionProgress renders the position within a set of four pomodoros.
func sessionProgress(completed int) string {
	filled := completed % sessionDots
	return strings.Repeat(sessionDotFilled, filled) + strings.Repeat(sessionDotEmpty, sessionDots-filled)
}

type theme struct {
	work, shortBreak, longBreak lipgloss.Color
	muted                       lipgloss.Color
}

var (
	darkTheme = theme{
		work:       lipgloss.Color("#ff6b6b"),
		shortBreak: lipgloss.Color("#57f287"),
		longBreak:  lipgloss.Color("#3498db"),
		muted:      lipgloss.Color("#95a5a6"),
	}
	lightTheme = theme{
		work:       lipgloss.Color("#c0392b"),
		shortBreak: lipgloss.Color("#1f8b4c"),
		longBreak:  lipgloss.Color("#206694"),
		muted:      lipgloss.Color("#7f8c8d"),
	}
)

func themeFor(darkMode bool) theme {
	if darkMode {
		return darkTheme
	}
	return lightTheme
}

func (t theme) phaseColor(p pomomo.Phase) lipgloss.Color {
	switch p {
	case pomomo.ShortBreakPhase:
		return t.shortBreak
	case pomomo.LongBreakPhase:
		return t.longBreak
	default:
		return t.work
	}
}

func status(s timer.Snapshot) string {
	switch {
	case s.Paused:
		return "paused"
	case s.Running:
		return "running"
	default:
		return "ready"
	}
}

// renderState renders s as a single terminal line.
func renderState(t theme, s timer.Snapshot, today int) string {
	accent := lipgloss.NewStyle().Foreground(t.phaseColor(s.Phase))
	muted := lipgloss.NewStyle().Foreground(t.muted)
	return strings.Join([]string{
		accent.Bold(true).Render(fmt.Sprintf("%-11s", s.Phase)),
		accent.Render(timer.FormatRemaining(s.Remaining)),
		accent.Render(timerBar(s)),
		muted.Render(fmt.Sprintf("%-7s", status(s))),
		sessionProgress(s.CompletedPomodoros),
		muted.Render(fmt.Sprintf("today %d", today)),
	}, "  ")
}

func renderStats(t theme, stats pomomo.Statistics, today int) string {
	label := lipgloss.NewStyle().Foreground(t.muted).Width(18)
	value := lipgloss.NewStyle().Bold(true)
	rows := []struct {
		name, val string
	}{
		{"Today", fmt.Sprint(today)},
		{"This week", fmt.Sprint(stats.WeeklyTotal)},
		{"Total pomodoros", fmt.Sprint(stats.TotalPomodoros)},
		{"Focus minutes", fmt.Sprintf("%.0f", stats.TotalMinutes)},
		{"Daily average", fmt.Sprint(stats.DailyAverage)},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, label.Render(r.name)+value.Render(r.val))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.work).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func renderTasks(t theme, list []pomomo.ExistingTaskRecord) string {
	if len(list) == 0 {
		return lipgloss.NewStyle().Foreground(t.muted).Render("no tasks")
	}
	done := lipgloss.NewStyle().Foreground(t.muted).Strikethrough(true)
	lines := make([]string, 0, len(list))
	for _, task := range list {
		box := "[ ]"
		text := task.Text
		if task.Completed {
			box = "[x]"
			text = done.Render(text)
		}
		lines = append(lines, fmt.Sprintf("%s %s (%d) %s", box, text, task.EstimatedPomodoros,
			lipgloss.NewStyle().Foreground(t.muted).Render(string(task.ID))))
	}
	return strings.Join(lines, "\n")
}
