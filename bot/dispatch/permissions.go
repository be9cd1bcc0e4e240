package dispatch

import (
	"github.com/bwmarrin/discordgo"
)

// CheckPermission decides whether the invoker may run cmd
func CheckPermission(cmd *Command, ctx *Context) bool {
	if cmd.Permissions == 0 && !cmd.AdminRole {
		return true
	}

	if !ctx.InGuild() {
		return cmd.DMAllowed
	}

	if ctx.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}

	if cmd.AdminRole {
		if ctx.Config == nil || !ctx.HasRole(ctx.Config.Roles.Admin) {
			return false
		}
	}

	return ctx.Permissions&cmd.Permissions == cmd.Permissions
}
