package discordgo

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChannelClient struct {
	channelFunc                   func(string) (*discordgo.Channel, error)
	channelMessageSendComplexFunc func(string, *discordgo.MessageSend) (*discordgo.Message, error)
}

func (m *mockChannelClient) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if m.channelFunc != nil {
		return m.channelFunc(channelID)
	}
	return &discordgo.Channel{ID: channelID}, nil
}

func (m *mockChannelClient) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.channelMessageSendComplexFunc != nil {
		return m.channelMessageSendComplexFunc(channelID, data)
	}
	return &discordgo.Message{}, nil
}

func TestChannelNotifier_RequestPermission(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		channelID string
		err       error
		want      bool
	}{
		{"reachable", "123", nil, true},
		{"unreachable", "123", errors.New("403 Forbidden"), false},
		{"no channel", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := &ChannelNotifier{
				cl: &mockChannelClient{
					channelFunc: func(string) (*discordgo.Channel, error) {
						return &discordgo.Channel{}, tt.err
					},
				},
				channelID: tt.channelID,
				l:         log.Default(),
			}
			assert.Equal(t, tt.want, n.RequestPermission(context.Background()))
		})
	}
}

func TestChannelNotifier_Show(t *testing.T) {
	t.Parallel()

	var gotChannel string
	var gotData *discordgo.MessageSend
	n := &ChannelNotifier{
		cl: &mockChannelClient{
			channelMessageSendComplexFunc: func(cID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
				gotChannel, gotData = cID, data
				return &discordgo.Message{}, nil
			},
		},
		channelID: "123",
		l:         log.Default(),
	}

	require.NoError(t, n.Show(context.Background(), "Break Complete!", "Ready to focus again?"))
	assert.Equal(t, "123", gotChannel)
	require.Len(t, gotData.Embeds, 1)
	assert.Equal(t, "Break Complete!", gotData.Embeds[0].Title)
	assert.Equal(t, "Ready to focus again?", gotData.Embeds[0].Description)
}
