package pomomo

import (
	"github.com/bwmarrin/discordgo"
)

const (
	ActionOption = "action"

	StartAction  = "start"
	PauseAction  = "pause"
	ResumeAction = "resume"
	ResetAction  = "reset"
	SkipAction   = "skip"
	StatusAction = "status"
)

var TimerCommand = discordgo.ApplicationCommand{
	Name:        "timer",
	Description: "control the pomodoro timer",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        ActionOption,
			Description: "what to do with the timer",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "start", Value: StartAction},
				{Name: "pause", Value: PauseAction},
				{Name: "resume", Value: ResumeAction},
				{Name: "reset", Value: ResetAction},
				{Name: "skip", Value: SkipAction},
				{Name: "status", Value: StatusAction},
			},
		},
	},
}
