// Package dispatchtest provides fakes for exercising command handlers.
package dispatchtest

import (
	"io"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
)

// SentFile is a file upload captured by the recorder
type SentFile struct {
	Name    string
	Content string
	Data    []byte
}

// Recorder is a Responder that keeps everything sent through it
type Recorder struct {
	mu       sync.Mutex
	Messages []string
	Embeds   []*discordgo.MessageEmbed
	Files    []SentFile
	Err      error // Returned from every send when set
}

// Send records a text message
func (r *Recorder) Send(channelID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, content)
	return r.Err
}

// SendEmbed records an embed
func (r *Recorder) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Embeds = append(r.Embeds, embed)
	return r.Err
}

// SendFile records a file upload
func (r *Recorder) SendFile(channelID, name string, rd io.Reader, content string) error {
	data, err := io.ReadAll(rd)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Files = append(r.Files, SentFile{Name: name, Content: content, Data: data})
	return r.Err
}

// Last returns the most recent text message
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1]
}

// LastEmbed returns the most recent embed
func (r *Recorder) LastEmbed() *discordgo.MessageEmbed {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Embeds) == 0 {
		return nil
	}
	return r.Embeds[len(r.Embeds)-1]
}

// EmbedText flattens an embed's title, description and fields for assertions
func EmbedText(e *discordgo.MessageEmbed) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Title)
	b.WriteString("\n")
	b.WriteString(e.Description)
	for _, f := range e.Fields {
		b.WriteString("\n")
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Value)
	}
	if e.Footer != nil {
		b.WriteString("\n")
		b.WriteString(e.Footer.Text)
	}
	return b.String()
}

// NewGuildContext builds a guild invocation for userID with default config
func NewGuildContext(rec *Recorder, guildID, userID string, args ...string) *dispatch.Context {
	return &dispatch.Context{
		Responder: rec,
		GuildID:   guildID,
		ChannelID: "channel-1",
		MessageID: "message-1",
		Author:    &discordgo.User{ID: userID, Username: "user" + userID},
		Prefix:    "!",
		Args:      args,
		Config:    entities.NewDefaultGuildConfig(guildID),
	}
}

// WithPermissions sets the author's permissions
func WithPermissions(ctx *dispatch.Context, perms int64) *dispatch.Context {
	ctx.Permissions = perms
	return ctx
}
