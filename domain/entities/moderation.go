package entities

import "time"

// ModAction is the kind of moderation event recorded in the log
type ModAction string

const (
	ModActionWarning        ModAction = "WARNING"
	ModActionAutoBan        ModAction = "AUTO_BAN"
	ModActionBan            ModAction = "BAN"
	ModActionKick           ModAction = "KICK"
	ModActionMute           ModAction = "MUTE"
	ModActionUnmute         ModAction = "UNMUTE"
	ModActionWarningRemoved ModAction = "WARNING_REMOVED"
)

// MaxModLogsPerGuild caps the moderation log; oldest entries are dropped first
const MaxModLogsPerGuild = 1000

// ParseModAction converts user input to a known action
func ParseModAction(s string) (ModAction, bool) {
	switch ModAction(s) {
	case ModActionWarning, ModActionAutoBan, ModActionBan, ModActionKick,
		ModActionMute, ModActionUnmute, ModActionWarningRemoved:
		return ModAction(s), true
	}
	return "", false
}

// Warning is a moderator warning issued to a member
type Warning struct {
	ID          string    `json:"id"`
	GuildID     string    `json:"guildId"`
	UserID      string    `json:"userId"`
	ModeratorID string    `json:"moderatorId"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"timestamp"`
}

// ModLogEntry is one moderation log record
type ModLogEntry struct {
	ID          string    `json:"id"`
	GuildID     string    `json:"guildId"`
	Action      ModAction `json:"action"`
	UserID      string    `json:"userId"`
	ModeratorID string    `json:"moderatorId"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"timestamp"`
}

// ModLogFilter narrows a moderation log query
type ModLogFilter struct {
	UserID string
	Action ModAction
	Limit  int
}

// ModStats summarizes moderation activity over a window
type ModStats struct {
	Days        int
	Total       int
	Warnings    int
	Bans        int
	Kicks       int
	Mutes       int
	UniqueUsers int
}
