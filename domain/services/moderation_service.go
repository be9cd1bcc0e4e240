package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultModLogLimit     = 10
	MaxModLogLimit         = 25
	DefaultWarningMaxAge   = 90
	DefaultModStatsWindow  = 30
	maxWarningCleanAgeDays = 365
	noReasonProvided       = "No reason provided"
)

// moderationService implements the ModerationService interface
type moderationService struct {
	store *store.Store
}

// NewModerationService creates a new moderation service
func NewModerationService(s *store.Store) interfaces.ModerationService {
	return &moderationService{store: s}
}

// Warn records a warning and logs it
func (m *moderationService) Warn(guildID, userID, moderatorID, reason string) (*entities.Warning, int, error) {
	if reason == "" {
		reason = noReasonProvided
	}

	var warning *entities.Warning
	total := 0
	err := m.store.Update(func(tx *store.Tx) error {
		warning = &entities.Warning{
			ID:          uuid.New().String(),
			GuildID:     guildID,
			UserID:      userID,
			ModeratorID: moderatorID,
			Reason:      reason,
			CreatedAt:   tx.Now(),
		}
		list := append(tx.Warnings(guildID, userID), warning)
		tx.SetWarnings(guildID, userID, list)
		total = len(list)

		appendModLog(tx, &entities.ModLogEntry{
			GuildID:     guildID,
			Action:      entities.ModActionWarning,
			UserID:      userID,
			ModeratorID: moderatorID,
			Reason:      reason,
		})
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	c := *warning
	return &c, total, nil
}

// RemoveWarning deletes one warning by id
func (m *moderationService) RemoveWarning(guildID, userID, moderatorID, warningID string) bool {
	removed := false
	_ = m.store.Update(func(tx *store.Tx) error {
		list := tx.Warnings(guildID, userID)
		kept := make([]*entities.Warning, 0, len(list))
		for _, w := range list {
			if w.ID == warningID {
				removed = true
				continue
			}
			kept = append(kept, w)
		}
		if !removed {
			return nil
		}
		tx.SetWarnings(guildID, userID, kept)
		appendModLog(tx, &entities.ModLogEntry{
			GuildID:     guildID,
			Action:      entities.ModActionWarningRemoved,
			UserID:      userID,
			ModeratorID: moderatorID,
			Reason:      fmt.Sprintf("Removed warning %s", warningID),
		})
		return nil
	})
	return removed
}

// Warnings returns a member's warnings, oldest first
func (m *moderationService) Warnings(guildID, userID string) []*entities.Warning {
	var out []*entities.Warning
	_ = m.store.View(func(tx *store.Tx) error {
		for _, w := range tx.Warnings(guildID, userID) {
			c := *w
			out = append(out, &c)
		}
		return nil
	})
	return out
}

// Log appends an entry to the guild's moderation log
func (m *moderationService) Log(entry *entities.ModLogEntry) *entities.ModLogEntry {
	var out entities.ModLogEntry
	_ = m.store.Update(func(tx *store.Tx) error {
		out = *appendModLog(tx, entry)
		return nil
	})
	return &out
}

// Logs returns the newest entries matching the filter
func (m *moderationService) Logs(guildID string, filter entities.ModLogFilter) []*entities.ModLogEntry {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultModLogLimit
	}
	if limit > MaxModLogLimit {
		limit = MaxModLogLimit
	}

	var out []*entities.ModLogEntry
	_ = m.store.View(func(tx *store.Tx) error {
		list := tx.ModLogs(guildID)
		for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
			e := list[i]
			if filter.UserID != "" && e.UserID != filter.UserID {
				continue
			}
			if filter.Action != "" && e.Action != filter.Action {
				continue
			}
			c := *e
			out = append(out, &c)
		}
		return nil
	})
	return out
}

// Stats summarizes the last days of moderation activity
func (m *moderationService) Stats(guildID string, days int) *entities.ModStats {
	if days < 1 {
		days = DefaultModStatsWindow
	}
	if days > maxWarningCleanAgeDays {
		days = maxWarningCleanAgeDays
	}

	stats := &entities.ModStats{Days: days}
	users := make(map[string]struct{})
	_ = m.store.View(func(tx *store.Tx) error {
		cutoff := tx.Now().AddDate(0, 0, -days)
		for _, e := range tx.ModLogs(guildID) {
			if e.CreatedAt.Before(cutoff) {
				continue
			}
			stats.Total++
			users[e.UserID] = struct{}{}
			switch e.Action {
			case entities.ModActionWarning:
				stats.Warnings++
			case entities.ModActionBan, entities.ModActionAutoBan:
				stats.Bans++
			case entities.ModActionKick:
				stats.Kicks++
			case entities.ModActionMute:
				stats.Mutes++
			}
		}
		return nil
	})
	stats.UniqueUsers = len(users)
	return stats
}

// ExportCSV writes the guild's full moderation log, oldest first
func (m *moderationService) ExportCSV(guildID string, w io.Writer) (int, error) {
	var rows [][]string
	_ = m.store.View(func(tx *store.Tx) error {
		for _, e := range tx.ModLogs(guildID) {
			rows = append(rows, []string{
				e.CreatedAt.UTC().Format(time.RFC3339),
				string(e.Action),
				e.UserID,
				e.ModeratorID,
				e.Reason,
			})
		}
		return nil
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "action", "user_id", "moderator_id", "reason"}); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return 0, fmt.Errorf("failed to write moderation logs: %w", err)
	}
	return len(rows), nil
}

// CleanWarnings removes warnings older than the given number of days
func (m *moderationService) CleanWarnings(guildID string, olderThanDays int) (int, error) {
	if olderThanDays == 0 {
		olderThanDays = DefaultWarningMaxAge
	}
	if olderThanDays < 1 || olderThanDays > maxWarningCleanAgeDays {
		return 0, fmt.Errorf("days must be between 1 and %d", maxWarningCleanAgeDays)
	}

	removed := 0
	err := m.store.Update(func(tx *store.Tx) error {
		cutoff := tx.Now().AddDate(0, 0, -olderThanDays)
		for userID, list := range tx.GuildWarnings(guildID) {
			kept := make([]*entities.Warning, 0, len(list))
			for _, w := range list {
				if w.CreatedAt.Before(cutoff) {
					removed++
					continue
				}
				kept = append(kept, w)
			}
			if len(kept) != len(list) {
				tx.SetWarnings(guildID, userID, kept)
			}
		}
		return nil
	})

	log.WithFields(log.Fields{
		"guild_id": guildID,
		"days":     olderThanDays,
		"removed":  removed,
	}).Info("Cleaned old warnings")

	return removed, err
}

// appendModLog stamps and appends an entry, dropping the oldest entries
// beyond the per-guild cap
func appendModLog(tx *store.Tx, entry *entities.ModLogEntry) *entities.ModLogEntry {
	e := *entry
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = tx.Now()
	}
	if e.Reason == "" {
		e.Reason = noReasonProvided
	}

	list := append(tx.ModLogs(e.GuildID), &e)
	if over := len(list) - entities.MaxModLogsPerGuild; over > 0 {
		list = append([]*entities.ModLogEntry(nil), list[over:]...)
	}
	tx.SetModLogs(e.GuildID, list)
	return &e
}
