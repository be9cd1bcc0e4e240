package dispatch

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"coinbot/domain/entities"
)

func TestCheckPermission(t *testing.T) {
	t.Parallel()

	guildCtx := func(perms int64, roles ...string) *Context {
		return &Context{
			GuildID:     "g1",
			Author:      &discordgo.User{ID: "u1"},
			Permissions: perms,
			RoleNames:   roles,
			Config:      entities.NewDefaultGuildConfig("g1"),
		}
	}
	dmCtx := &Context{Author: &discordgo.User{ID: "u1"}}

	open := &Command{Name: "balance"}
	dmOK := &Command{Name: "help", DMAllowed: true}
	kick := &Command{Name: "warn", Permissions: discordgo.PermissionKickMembers}
	both := &Command{Name: "x", Permissions: discordgo.PermissionKickMembers | discordgo.PermissionManageMessages}
	admin := &Command{Name: "configset", AdminRole: true}

	tests := []struct {
		name string
		cmd  *Command
		ctx  *Context
		want bool
	}{
		{"no requirement in guild", open, guildCtx(0), true},
		{"no requirement in DM", open, dmCtx, true},
		{"restricted command in DM", kick, dmCtx, false},
		{"admin command in DM", admin, dmCtx, false},
		{"DM allowed", dmOK, dmCtx, true},
		{"missing permission", kick, guildCtx(0), false},
		{"has permission", kick, guildCtx(discordgo.PermissionKickMembers), true},
		{"needs every permission", both, guildCtx(discordgo.PermissionKickMembers), false},
		{"administrator implies all", both, guildCtx(discordgo.PermissionAdministrator), true},
		{"admin role by name", admin, guildCtx(0, "Admin"), true},
		{"admin role missing", admin, guildCtx(0, "Moderator"), false},
		{"administrator overrides admin role", admin, guildCtx(discordgo.PermissionAdministrator), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPermission(tt.cmd, tt.ctx))
		})
	}
}
