package nuke

import (
	"github.com/bwmarrin/discordgo"

	"coinbot/bot/dispatch"
	"coinbot/domain/interfaces"
)

// Feature handles the guarded economy wipe
type Feature struct {
	nukes interfaces.NukeService
}

// New creates a new nuke feature
func New(nukes interfaces.NukeService) *Feature {
	return &Feature{nukes: nukes}
}

// Commands returns nuke, launch and abort
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "nuke",
			Usage:       "nuke",
			Description: "⚠️ Initiate a full economy wipe. Requires confirmation via launch or abort.",
			Category:    dispatch.CategoryAdmin,
			Permissions: discordgo.PermissionManageServer,
			Handler:     f.handleNuke,
		},
		{
			Name:        "launch",
			Usage:       "launch",
			Description: "Confirm a pending economy wipe",
			Category:    dispatch.CategoryAdmin,
			Permissions: discordgo.PermissionManageServer,
			Handler:     f.handleLaunch,
		},
		{
			Name:        "abort",
			Usage:       "abort",
			Description: "Cancel a pending economy wipe",
			Category:    dispatch.CategoryAdmin,
			Permissions: discordgo.PermissionManageServer,
			Handler:     f.handleAbort,
		},
	}
}
