package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coinbot/database"
	"coinbot/domain/entities"
	"coinbot/domain/interfaces"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// snapshotTables lists every table a save rewrites
const snapshotTables = "accounts, catalog_items, listings, invites, claimed_referrals, guild_configs, warnings, mod_logs"

// PostgresSnapshotRepository stores each store collection in its own table
type PostgresSnapshotRepository struct {
	db *database.DB
}

// NewPostgresSnapshotRepository creates a new PostgreSQL snapshot repository
func NewPostgresSnapshotRepository(db *database.DB) interfaces.SnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// Load reads every table into a snapshot
func (r *PostgresSnapshotRepository) Load(ctx context.Context) (*entities.Snapshot, error) {
	snapshot := entities.NewSnapshot()

	loaders := []struct {
		name string
		load func(context.Context, Queryable, *entities.Snapshot) error
	}{
		{"accounts", loadAccounts},
		{"catalog items", loadItems},
		{"listings", loadListings},
		{"invites", loadInvites},
		{"claimed referrals", loadClaimed},
		{"guild configs", loadGuildConfigs},
		{"warnings", loadWarnings},
		{"moderation logs", loadModLogs},
	}

	for _, l := range loaders {
		if err := l.load(ctx, r.db.Pool, snapshot); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", l.name, err)
		}
	}

	snapshot.Normalize()
	return snapshot, nil
}

// Save replaces every table with the snapshot contents in one transaction
func (r *PostgresSnapshotRepository) Save(ctx context.Context, snapshot *entities.Snapshot) error {
	start := time.Now()

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "TRUNCATE "+snapshotTables); err != nil {
			return fmt.Errorf("failed to truncate snapshot tables: %w", err)
		}

		copies := []struct {
			table   string
			columns []string
			rows    [][]any
		}{
			{"accounts", accountColumns, accountRows(snapshot)},
			{"catalog_items", itemColumns, itemRows(snapshot)},
			{"listings", listingColumns, listingRows(snapshot)},
			{"invites", inviteColumns, inviteRows(snapshot)},
			{"claimed_referrals", []string{"user_id"}, claimedRows(snapshot)},
			{"guild_configs", []string{"guild_id", "config"}, guildConfigRows(snapshot)},
			{"warnings", warningColumns, warningRows(snapshot)},
			{"mod_logs", modLogColumns, modLogRows(snapshot)},
		}

		for _, c := range copies {
			if len(c.rows) == 0 {
				continue
			}
			if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows)); err != nil {
				return fmt.Errorf("failed to copy %s: %w", c.table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"users":    len(snapshot.Users),
		"listings": len(snapshot.Listings),
		"duration": time.Since(start),
	}).Debug("Snapshot saved to postgres")
	return nil
}

var accountColumns = []string{
	"user_id", "guild_id", "balance", "bank_balance", "total_earned", "inventory", "referrals",
	"daily_streak", "last_daily", "last_weekly", "last_earn", "last_bank_activity", "joined_at",
	"bio", "links", "badges",
}

func accountRows(s *entities.Snapshot) [][]any {
	rows := make([][]any, 0, len(s.Users))
	for _, u := range s.Users {
		badges := u.Badges
		if badges == nil {
			badges = []string{}
		}
		rows = append(rows, []any{
			u.UserID, u.GuildID, u.Balance, u.BankBalance, u.TotalEarned, u.Inventory, u.Referrals,
			u.DailyStreak, nullTime(u.LastDaily), nullTime(u.LastWeekly), nullTime(u.LastEarn),
			nullTime(u.LastBankActivity), u.JoinedAt.UTC(), u.Bio, u.Links, badges,
		})
	}
	return rows
}

func loadAccounts(ctx context.Context, q Queryable, s *entities.Snapshot) error {
	rows, err := q.Query(ctx, `SELECT `+columnList(accountColumns)+` FROM accounts`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			u                                        entities.UserAccount
			lastDaily, lastWeekly, lastEarn, lastBnk *time.Time
		)
		if err := rows.Scan(
			&u.UserID, &u.GuildID, &u.Balance, &u.BankBalance, &u.TotalEarned, &u.Inventory, &u.Referrals,
			&u.DailyStreak, &lastDaily, &lastWeekly, &lastEarn, &lastBnk, &u.JoinedAt,
			&u.Bio, &u.Links, &u.Badges,
		); err != nil {
			return err
		}
		u.LastDaily = fromNullTime(lastDaily)
		u.LastWeekly = fromNullTime(lastWeekly)
		u.LastEarn = fromNullTime(lastEarn)
		u.LastBankActivity = fromNullTime(lastBnk)
		u.JoinedAt = u.JoinedAt.UTC()
		if len(u.Badges) == 0 {
			u.Badges = nil
		}
		s.Users[u.UserID] = &u
	}
	return rows.Err()
}

var itemColumns = []string{"item_key", "guild_id", "name", "emoji", "description", "price"}

func itemRows(s *entities.Snapshot) [][]any {
	rows := make([][]any, 0, len(s.Items))
	for _, i := range s.Items {
		rows = append(rows, []any{i.Key, i.GuildID, i.Name, i.Emoji, i.Description, i.Price})
	}
	return rows
}

func loadItems(ctx context.Context, q Queryable, s *entities.Snapshot) error {
	rows, err := q.Query(ctx, `SELECT `+columnList(itemColumns)+` FROM catalog_items`)
	if err != nil {
		return err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entities.CatalogItem])
	if err != nil {
		return err
	}
	for _, i := range items {
		s.Items[i.Key] = i
	}
	return nil
}

var listingColumns = []string{"id", "seller_id", "guild_id", "item_key", "quantity", "price", "created_at"}

func listingRows(s *entities.Snapshot) [][]any {
	rows := make([][]any, 0, len(s.Listings))
	for _, l := range s.Listings {
		rows = append(rows, []any{l.ID, l.SellerID, l.GuildID, l.ItemKey, l.Quantity, l.Price, l.CreatedAt.UTC()})
	}
	return rows
}

func loadListings(ctx context.Context, q Queryable, s *entities.Snapshot) error {
	rows, err := q.Query(ctx, `SELECT `+columnList(listingColumns)+` FROM listings`)
	if err != nil {
		return err
	}
	listings, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entities.Listing])
	if err != nil {
		return err
	}
	for _, l := range listings {
		l.CreatedAt = l.CreatedAt.UTC()
		s.Listings[l.ID] = l
	}
	return nil
}

var inviteColumns = []string{"code", "inviter_id", "registered_at", "uses"}

func inviteRows(s *entities.Snapshot) [][]any {
	rows := make([][]any, 0, len(s.Invites))
	for _, inv := range s.Invites {
		rows = append(rows, []any{inv.Code, inv.InviterID, inv.RegisteredAt.UTC(), inv.Uses})
	}
	return rows
}

func loadInvites(ctx context.Context, q Queryable, s *entities.Snapshot) error {
	rows, err := q.Query(ctx, `SELECT `+columnList(inviteColumns)+` FROM invites`)
	if err != nil {
		return err
	}
	invites, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entities.InviteRegistration])
	if err != nil {
		return err
	}
	for _, inv := range invites {
		inv.RegisteredAt = inv.RegisteredAt.UTC()
		s.Invites[inv.Code] = inv
	}
	return nil
}

func claimedRows(s *entities.Snapshot) [][]any {
	rows := make([][]any, 0, len(s.Claimed))
	for _, userID := range s.Claimed {
		rows = append(rows, []any{userID})
	}
	return rows
}

func loadClaimed(ctx context.Context, q Queryable, s *entities.Snapshot) error {
	rows, err := q.Query(ctx, `SELECT user_id FROM claimed_referrals ORDER BY user_id`)
	if err != nil {
		return err
	}
	claimed, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return err
	}
	s.Claimed = claimed
	return nil
}

func guildConfigRows(s *entities.Snapshot) [][]any {
	rows := make([][]any, 0, len(s.GuildConfigs))
	for guildID, cfg := range s.GuildConfigs {
		rows = append(rows, []any{guildID, cfg})
	}
	return rows
}

func loadGuildConfigs(ctx context.Context, q Queryable, s *entities.Snapshot) error {
	rows, err := q.Query(ctx, `SELECT guild_id, config FROM guild_configs`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			guildID string
			cfg     entities.GuildConfig
		)
		if err := rows.Scan(&guildID, &cfg); err != nil {
			return err
		}
		cfg.GuildID = guildID
		s.GuildConfigs[guildID] = &cfg
	}
	return rows.Err()
}

var warningColumns = []string{"id", "guild_id", "user_id", "moderator_id", "reason", "created_at", "position"}

func warningRows(s *entities.Snapshot) [][]any {
	var rows [][]any
	for _, byUser := range s.Warnings {
		for _, list := range byUser {
			for pos, w := range list {
				rows = append(rows, []any{w.ID, w.GuildID, w.UserID, w.ModeratorID, w.Reason, w.CreatedAt.UTC(), pos})
			}
		}
	}
	return rows
}

func loadWarnings(ctx context.Context, q Queryable, s *entities.Snapshot) error {
	rows, err := q.Query(ctx, `
		SELECT id, guild_id, user_id, moderator_id, reason, created_at
		FROM warnings
		ORDER BY guild_id, user_id, position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var w entities.Warning
		if err := rows.Scan(&w.ID, &w.GuildID, &w.UserID, &w.ModeratorID, &w.Reason, &w.CreatedAt); err != nil {
			return err
		}
		w.CreatedAt = w.CreatedAt.UTC()
		byUser, ok := s.Warnings[w.GuildID]
		if !ok {
			byUser = make(map[string][]*entities.Warning)
			s.Warnings[w.GuildID] = byUser
		}
		byUser[w.UserID] = append(byUser[w.UserID], &w)
	}
	return rows.Err()
}

var modLogColumns = []string{"id", "guild_id", "action", "user_id", "moderator_id", "reason", "created_at", "position"}

func modLogRows(s *entities.Snapshot) [][]any {
	var rows [][]any
	for _, list := range s.ModLogs {
		for pos, e := range list {
			rows = append(rows, []any{e.ID, e.GuildID, string(e.Action), e.UserID, e.ModeratorID, e.Reason, e.CreatedAt.UTC(), pos})
		}
	}
	return rows
}

func loadModLogs(ctx context.Context, q Queryable, s *entities.Snapshot) error {
	rows, err := q.Query(ctx, `
		SELECT id, guild_id, action, user_id, moderator_id, reason, created_at
		FROM mod_logs
		ORDER BY guild_id, position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e      entities.ModLogEntry
			action string
		)
		if err := rows.Scan(&e.ID, &e.GuildID, &action, &e.UserID, &e.ModeratorID, &e.Reason, &e.CreatedAt); err != nil {
			return err
		}
		e.Action = entities.ModAction(action)
		e.CreatedAt = e.CreatedAt.UTC()
		s.ModLogs[e.GuildID] = append(s.ModLogs[e.GuildID], &e)
	}
	return rows.Err()
}

func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}
