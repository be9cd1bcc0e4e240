package bot

import (
	"io"

	"github.com/bwmarrin/discordgo"
)

// sessionResponder sends command replies over the Discord REST API
type sessionResponder struct {
	session *discordgo.Session
}

func (r *sessionResponder) Send(channelID, content string) error {
	_, err := r.session.ChannelMessageSend(channelID, content)
	return err
}

func (r *sessionResponder) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := r.session.ChannelMessageSendEmbed(channelID, embed)
	return err
}

func (r *sessionResponder) SendFile(channelID, name string, reader io.Reader, content string) error {
	_, err := r.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Files: []*discordgo.File{
			{Name: name, Reader: reader},
		},
	})
	return err
}
