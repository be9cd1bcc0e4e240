package dispatch

import (
	"io"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/common"
	"coinbot/domain/entities"
)

// Responder sends replies back to the channel a command came from
type Responder interface {
	Send(channelID, content string) error
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
	SendFile(channelID, name string, r io.Reader, content string) error
}

// Context carries one invocation of a command
type Context struct {
	Responder Responder

	GuildID   string // Empty for direct messages
	ChannelID string
	MessageID string
	Author    *discordgo.User

	Permissions int64    // Resolved permissions of the author in the channel
	RoleNames   []string // Names of the author's roles in the guild
	Mentions    []*discordgo.User

	Prefix  string
	Command string // Canonical name of the resolved command
	Args    []string

	// Config is the guild configuration, nil in direct messages
	Config *entities.GuildConfig
}

// Reply sends a text message to the invoking channel
func (c *Context) Reply(content string) error {
	return c.Responder.Send(c.ChannelID, content)
}

// ReplyEmbed sends an embed to the invoking channel
func (c *Context) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	return c.Responder.SendEmbed(c.ChannelID, embed)
}

// ReplyFile uploads a file to the invoking channel
func (c *Context) ReplyFile(name string, r io.Reader, content string) error {
	return c.Responder.SendFile(c.ChannelID, name, r, content)
}

// UserID returns the author's id
func (c *Context) UserID() string {
	if c.Author == nil {
		return ""
	}
	return c.Author.ID
}

// InGuild reports whether the command was sent in a guild channel
func (c *Context) InGuild() bool {
	return c.GuildID != ""
}

// HasRole reports whether the author holds a role with the given name
func (c *Context) HasRole(name string) bool {
	for _, r := range c.RoleNames {
		if r == name {
			return true
		}
	}
	return false
}

// Arg returns the i-th argument or an empty string
func (c *Context) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// TargetUserID returns the first mentioned user, falling back to an id or
// mention parsed from Args[i]
func (c *Context) TargetUserID(i int) (string, bool) {
	if len(c.Mentions) > 0 && c.Mentions[0] != nil {
		return c.Mentions[0].ID, true
	}
	return common.ParseUserMention(c.Arg(i))
}

// Usage builds the standard usage error for a command
func (c *Context) Usage(usage string) error {
	return common.NewUserErrorf("Usage: `%s%s`", c.Prefix, usage)
}
