package pomomo

import (
	"github.com/bwmarrin/discordgo"
)

const (
	WorkOption       = "work"
	ShortBreakOption = "short_break"
	LongBreakOption  = "long_break"
	IntervalsOption  = "intervals"
	SoundOption      = "sound"

	TaskAddSubcommand    = "add"
	TaskToggleSubcommand = "toggle"
	TaskRemoveSubcommand = "remove"
	TaskListSubcommand   = "list"
	TaskTextOption       = "text"
	TaskEstimateOption   = "estimate"
	TaskIDOption         = "id"
)

func float64Ptr(f float64) *float64 {
	return &f
}

var SettingsCommand = discordgo.ApplicationCommand{
	Name:        "settings",
	Description: "show or edit timer settings",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        WorkOption,
			Description: "focus duration in minutes (Default: 25)",
			MinValue:    float64Ptr(1),
			MaxValue:    60,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        ShortBreakOption,
			Description: "short break duration in minutes (Default: 5)",
			MinValue:    float64Ptr(1),
			MaxValue:    30,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        LongBreakOption,
			Description: "long break duration in minutes (Default: 15)",
			MinValue:    float64Ptr(1),
			MaxValue:    60,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        IntervalsOption,
			Description: "number of pomodoros between long breaks (Default: 4)",
			MinValue:    float64Ptr(2),
			MaxValue:    10,
		},
		{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        SoundOption,
			Description: "play a sound when a phase completes (Default: true)",
		},
	},
}

var TaskCommand = discordgo.ApplicationCommand{
	Name:        "task",
	Description: "manage your task list",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        TaskAddSubcommand,
			Description: "add a task",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        TaskTextOption,
					Description: "what are you working on?",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        TaskEstimateOption,
					Description: "estimated pomodoros (Default: 1)",
					MinValue:    float64Ptr(1),
					MaxValue:    20,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        TaskToggleSubcommand,
			Description: "mark a task done or not done",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        TaskIDOption,
					Description: "task id",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        TaskRemoveSubcommand,
			Description: "remove a task",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        TaskIDOption,
					Description: "task id",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        TaskListSubcommand,
			Description: "list tasks",
		},
	},
}

var StatsCommand = discordgo.ApplicationCommand{
	Name:        "stats",
	Description: "show pomodoro statistics",
}

// Commands are registered with Discord by `pomomo register`.
var Commands = []*discordgo.ApplicationCommand{
	&TimerCommand,
	&SettingsCommand,
	&TaskCommand,
	&StatsCommand,
}
