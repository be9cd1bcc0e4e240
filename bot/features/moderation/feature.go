package moderation

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/dispatch"
	"coinbot/domain/interfaces"
)

// Feature handles warnings and the moderation log
type Feature struct {
	moderation interfaces.ModerationService
}

// New creates a new moderation feature
func New(moderation interfaces.ModerationService) *Feature {
	return &Feature{moderation: moderation}
}

// Commands returns the moderation commands
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "warn",
			Usage:       "warn @user <reason>",
			Description: "Warn a member",
			Category:    dispatch.CategoryModeration,
			Permissions: discordgo.PermissionKickMembers,
			Cooldown:    3 * time.Second,
			Handler:     f.handleWarn,
		},
		{
			Name:        "removewarn",
			Usage:       "removewarn @user <warningID>",
			Description: "Remove a warning from a member",
			Category:    dispatch.CategoryModeration,
			Permissions: discordgo.PermissionKickMembers,
			Handler:     f.handleRemoveWarn,
		},
		{
			Name:        "warnings",
			Usage:       "warnings [@user]",
			Description: "List a member's warnings",
			Category:    dispatch.CategoryModeration,
			Permissions: discordgo.PermissionKickMembers,
			Handler:     f.handleWarnings,
		},
		{
			Name:        "modlogs",
			Usage:       "modlogs [@user] [action] [limit]",
			Description: "Show recent moderation actions",
			Category:    dispatch.CategoryModeration,
			Permissions: discordgo.PermissionManageMessages,
			Cooldown:    5 * time.Second,
			Handler:     f.handleModLogs,
		},
		{
			Name:        "modstats",
			Usage:       "modstats [days]",
			Description: "Summarize moderation activity",
			Category:    dispatch.CategoryModeration,
			Permissions: discordgo.PermissionManageMessages,
			Cooldown:    5 * time.Second,
			Handler:     f.handleModStats,
		},
		{
			Name:        "exportlogs",
			Usage:       "exportlogs",
			Description: "Export the moderation log as CSV",
			Category:    dispatch.CategoryModeration,
			Permissions: discordgo.PermissionAdministrator,
			Cooldown:    30 * time.Second,
			Handler:     f.handleExportLogs,
		},
		{
			Name:        "cleanwarnings",
			Usage:       "cleanwarnings [days]",
			Description: "Delete warnings older than the given number of days",
			Category:    dispatch.CategoryModeration,
			Permissions: discordgo.PermissionAdministrator,
			Cooldown:    30 * time.Second,
			Handler:     f.handleCleanWarnings,
		},
	}
}
