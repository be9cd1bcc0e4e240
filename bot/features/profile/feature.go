package profile

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/dispatch"
	"coinbot/domain/interfaces"
)

// Feature handles cosmetic profiles and badges
type Feature struct {
	profiles interfaces.ProfileService
	ledger   interfaces.UserLedger
}

// New creates a new profile feature
func New(profiles interfaces.ProfileService, ledger interfaces.UserLedger) *Feature {
	return &Feature{
		profiles: profiles,
		ledger:   ledger,
	}
}

// Commands returns profile and its sub-commands. The sub-commands are two
// word names so they resolve before the bare profile command.
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "profile",
			Usage:       "profile [@user]",
			Description: "View a user's profile",
			Category:    dispatch.CategoryProfile,
			Cooldown:    3 * time.Second,
			Handler:     f.handleProfile,
		},
		{
			Name:        "profile setbio",
			Usage:       "profile setbio <text>",
			Description: "Set your profile bio",
			Category:    dispatch.CategoryProfile,
			Cooldown:    5 * time.Second,
			Handler:     f.handleSetBio,
		},
		{
			Name:        "profile addlink",
			Usage:       "profile addlink <platform> <url>",
			Description: "Add a social link to your profile",
			Category:    dispatch.CategoryProfile,
			Cooldown:    5 * time.Second,
			Handler:     f.handleAddLink,
		},
		{
			Name:        "profile removelink",
			Usage:       "profile removelink <platform>",
			Description: "Remove a social link from your profile",
			Category:    dispatch.CategoryProfile,
			Cooldown:    5 * time.Second,
			Handler:     f.handleRemoveLink,
		},
		{
			Name:        "profile grant",
			Usage:       "profile grant <@user> <badgeId>",
			Description: "Grant a badge to a member",
			Category:    dispatch.CategoryProfile,
			Permissions: discordgo.PermissionManageServer,
			Handler:     f.handleGrant,
		},
		{
			Name:        "profile revoke",
			Usage:       "profile revoke <@user> <badgeId>",
			Description: "Revoke a badge from a member",
			Category:    dispatch.CategoryProfile,
			Permissions: discordgo.PermissionManageServer,
			Handler:     f.handleRevoke,
		},
	}
}
