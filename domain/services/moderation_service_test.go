package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"coinbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationService_WarnAndRemove(t *testing.T) {
	t.Parallel()

	// Setup
	env := newTestEnv(t)
	mod := NewModerationService(env.store)

	// Execute
	first, total, err := mod.Warn(testGuildID, testUser1, testUser3, "spam")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	_, total, err = mod.Warn(testGuildID, testUser1, testUser3, "")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 2, total)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, testNow, first.CreatedAt)
	warnings := mod.Warnings(testGuildID, testUser1)
	require.Len(t, warnings, 2)
	assert.Equal(t, "spam", warnings[0].Reason)
	assert.Equal(t, "No reason provided", warnings[1].Reason)
	assert.Empty(t, mod.Warnings(testOtherGuild, testUser1), "warnings are per guild")

	assert.False(t, mod.RemoveWarning(testGuildID, testUser1, testUser3, "missing"))
	assert.True(t, mod.RemoveWarning(testGuildID, testUser1, testUser3, first.ID))
	assert.Len(t, mod.Warnings(testGuildID, testUser1), 1)

	logs := mod.Logs(testGuildID, entities.ModLogFilter{})
	require.Len(t, logs, 3)
	assert.Equal(t, entities.ModActionWarningRemoved, logs[0].Action, "newest first")
	assert.Equal(t, entities.ModActionWarning, logs[2].Action)
}

func TestModerationService_LogsFilter(t *testing.T) {
	t.Parallel()

	// Setup
	env := newTestEnv(t)
	mod := NewModerationService(env.store)
	for i := 0; i < 30; i++ {
		action := entities.ModActionKick
		if i%3 == 0 {
			action = entities.ModActionBan
		}
		user := testUser1
		if i%2 == 0 {
			user = testUser2
		}
		mod.Log(&entities.ModLogEntry{GuildID: testGuildID, Action: action, UserID: user, ModeratorID: testUser3})
	}

	tests := []struct {
		name   string
		filter entities.ModLogFilter
		want   int
	}{
		{name: "default limit", filter: entities.ModLogFilter{}, want: DefaultModLogLimit},
		{name: "limit capped", filter: entities.ModLogFilter{Limit: 100}, want: MaxModLogLimit},
		{name: "by action", filter: entities.ModLogFilter{Action: entities.ModActionBan, Limit: 25}, want: 10},
		{name: "by user", filter: entities.ModLogFilter{UserID: testUser1, Limit: 25}, want: 15},
		{name: "by user and action", filter: entities.ModLogFilter{UserID: testUser1, Action: entities.ModActionBan, Limit: 25}, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logs := mod.Logs(testGuildID, tt.filter)

			assert.Len(t, logs, tt.want)
			for _, e := range logs {
				if tt.filter.Action != "" {
					assert.Equal(t, tt.filter.Action, e.Action)
				}
				if tt.filter.UserID != "" {
					assert.Equal(t, tt.filter.UserID, e.UserID)
				}
			}
		})
	}
}

func TestModerationService_LogIsCapped(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	mod := NewModerationService(env.store)
	for i := 0; i < entities.MaxModLogsPerGuild+5; i++ {
		mod.Log(&entities.ModLogEntry{
			GuildID: testGuildID,
			Action:  entities.ModActionMute,
			UserID:  fmt.Sprintf("%d", i),
		})
	}

	var buf bytes.Buffer
	n, err := mod.ExportCSV(testGuildID, &buf)
	require.NoError(t, err)
	assert.Equal(t, entities.MaxModLogsPerGuild, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, entities.MaxModLogsPerGuild+1)
	assert.Equal(t, "5", records[1][2], "the oldest entries are dropped")
}

func TestModerationService_ExportCSV(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	mod := NewModerationService(env.store)
	_, _, err := mod.Warn(testGuildID, testUser1, testUser3, "said \"hi\", loudly")
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := mod.ExportCSV(testGuildID, &buf)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"timestamp", "action", "user_id", "moderator_id", "reason"},
		{"2024-06-01T12:00:00Z", "WARNING", testUser1, testUser3, "said \"hi\", loudly"},
	}, records)
}

func TestModerationService_Stats(t *testing.T) {
	t.Parallel()

	// Setup
	env := newTestEnv(t)
	mod := NewModerationService(env.store)
	mod.Log(&entities.ModLogEntry{GuildID: testGuildID, Action: entities.ModActionBan, UserID: testUser1})
	env.advance(20 * 24 * time.Hour)
	mod.Log(&entities.ModLogEntry{GuildID: testGuildID, Action: entities.ModActionAutoBan, UserID: testUser2})
	mod.Log(&entities.ModLogEntry{GuildID: testGuildID, Action: entities.ModActionKick, UserID: testUser2})
	_, _, err := mod.Warn(testGuildID, testUser3, testUser1, "rude")
	require.NoError(t, err)
	mod.Log(&entities.ModLogEntry{GuildID: testGuildID, Action: entities.ModActionMute, UserID: testUser3})

	// Execute
	week := mod.Stats(testGuildID, 7)
	month := mod.Stats(testGuildID, 0)

	// Assert
	assert.Equal(t, &entities.ModStats{Days: 7, Total: 4, Warnings: 1, Bans: 1, Kicks: 1, Mutes: 1, UniqueUsers: 2}, week)
	assert.Equal(t, DefaultModStatsWindow, month.Days)
	assert.Equal(t, 5, month.Total)
	assert.Equal(t, 2, month.Bans)
	assert.Equal(t, 3, month.UniqueUsers)
}

func TestModerationService_CleanWarnings(t *testing.T) {
	t.Parallel()

	// Setup
	env := newTestEnv(t)
	mod := NewModerationService(env.store)
	_, _, err := mod.Warn(testGuildID, testUser1, testUser3, "old")
	require.NoError(t, err)
	_, _, err = mod.Warn(testGuildID, testUser2, testUser3, "old")
	require.NoError(t, err)
	env.advance(100 * 24 * time.Hour)
	_, _, err = mod.Warn(testGuildID, testUser1, testUser3, "recent")
	require.NoError(t, err)

	// Execute
	_, err = mod.CleanWarnings(testGuildID, 400)
	assert.Error(t, err)
	removed, err := mod.CleanWarnings(testGuildID, 0)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	remaining := mod.Warnings(testGuildID, testUser1)
	require.Len(t, remaining, 1)
	assert.Equal(t, "recent", remaining[0].Reason)
	assert.Empty(t, mod.Warnings(testGuildID, testUser2))
}
