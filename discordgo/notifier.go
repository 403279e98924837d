package discordgo

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-timer"
)

// ColorGreen is the embed accent of completion notifications.
const ColorGreen = 0x57f287

type channelClient interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelNotifier posts notifications to a text channel.
type ChannelNotifier struct {
	cl        channelClient
	channelID string
	l         *log.Logger
}

var _ pomomo.Notifier = (*ChannelNotifier)(nil)

func NewChannelNotifier(cl *discordgo.Session, channelID string, logger *log.Logger) *ChannelNotifier {
	return &ChannelNotifier{
		cl:        cl,
		channelID: channelID,
		l:         logger,
	}
}

// RequestPermission reports whether the channel is reachable.
func (n *ChannelNotifier) RequestPermission(ctx context.Context) bool {
	if n.channelID == "" {
		return false
	}
	if _, err := n.cl.Channel(n.channelID, discordgo.WithContext(ctx)); err != nil {
		n.l.Warn("notification channel unavailable", "channelID", n.channelID, "err", err)
		return false
	}
	return true
}

func (n *ChannelNotifier) Show(ctx context.Context, title, body string) error {
	_, err := n.cl.ChannelMessageSendComplex(n.channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: body,
				Color:       ColorGreen,
			},
		},
	}, discordgo.WithContext(ctx))
	return err
}
