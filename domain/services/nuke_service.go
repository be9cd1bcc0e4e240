package services

import (
	"sync"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"
	"coinbot/events"

	log "github.com/sirupsen/logrus"
)

// DefaultNukeTimeout is how long a nuke waits for confirmation
const DefaultNukeTimeout = 60 * time.Second

type pendingNuke struct {
	entities.PendingNuke
	timer *time.Timer
}

// nukeService implements the NukeService interface. Each guild is either
// idle or holds one pending nuke whose timer auto-aborts it.
type nukeService struct {
	store   *store.Store
	timeout time.Duration

	mu       sync.Mutex
	pending  map[string]*pendingNuke
	onExpire func(entities.PendingNuke)
}

// NewNukeService creates a nuke state machine with the given confirmation window
func NewNukeService(s *store.Store, timeout time.Duration) interfaces.NukeService {
	if timeout <= 0 {
		timeout = DefaultNukeTimeout
	}
	return &nukeService{
		store:   s,
		timeout: timeout,
		pending: make(map[string]*pendingNuke),
	}
}

// OnExpire registers the callback run when a pending nuke times out
func (n *nukeService) OnExpire(fn func(entities.PendingNuke)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onExpire = fn
}

// Request moves the guild from idle to pending
func (n *nukeService) Request(guildID, userID string) (time.Time, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.pending[guildID]; exists {
		return time.Time{}, ErrNukeAlreadyPending
	}

	p := &pendingNuke{
		PendingNuke: entities.PendingNuke{
			GuildID:     guildID,
			InitiatorID: userID,
			Deadline:    time.Now().Add(n.timeout),
		},
	}
	p.timer = time.AfterFunc(n.timeout, func() { n.expire(p) })
	n.pending[guildID] = p

	log.WithFields(log.Fields{
		"guild_id":     guildID,
		"initiator_id": userID,
		"deadline":     p.Deadline,
	}).Warn("Economy nuke requested")

	return p.Deadline, nil
}

// Pending returns the guild's outstanding nuke, if any
func (n *nukeService) Pending(guildID string) (entities.PendingNuke, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if p, ok := n.pending[guildID]; ok {
		return p.PendingNuke, true
	}
	return entities.PendingNuke{}, false
}

// Confirm executes the wipe. Only the initiator can confirm.
func (n *nukeService) Confirm(guildID, userID string) (*entities.WipeResult, error) {
	if err := n.leave(guildID, userID); err != nil {
		return nil, err
	}

	result := &entities.WipeResult{}
	err := n.store.Update(func(tx *store.Tx) error {
		for _, u := range tx.Accounts() {
			if u.GuildID != guildID {
				continue
			}
			u.ResetEconomy()
			result.AccountsReset++
		}
		for _, l := range tx.Listings() {
			if l.GuildID == guildID {
				tx.DeleteListing(l.ID)
				result.ListingsRemoved++
			}
		}
		for _, item := range tx.Items() {
			if !item.IsGlobal() && item.GuildID == guildID {
				tx.DeleteItem(item.Key)
				result.ItemsRemoved++
			}
		}
		tx.Stage(events.EconomyNukedEvent{
			GuildID:         guildID,
			InitiatorID:     userID,
			AccountsReset:   result.AccountsReset,
			ListingsRemoved: result.ListingsRemoved,
			ItemsRemoved:    result.ItemsRemoved,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guild_id":         guildID,
		"initiator_id":     userID,
		"accounts_reset":   result.AccountsReset,
		"listings_removed": result.ListingsRemoved,
		"items_removed":    result.ItemsRemoved,
	}).Warn("Economy nuked")

	return result, nil
}

// Cancel returns the guild to idle. Only the initiator can cancel.
func (n *nukeService) Cancel(guildID, userID string) error {
	if err := n.leave(guildID, userID); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"guild_id": guildID,
		"user_id":  userID,
	}).Info("Economy nuke aborted")
	return nil
}

// Stop cancels every pending timer without firing callbacks
func (n *nukeService) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for guildID, p := range n.pending {
		p.timer.Stop()
		delete(n.pending, guildID)
	}
}

func (n *nukeService) leave(guildID, userID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	p, ok := n.pending[guildID]
	if !ok {
		return ErrNoPendingNuke
	}
	if p.InitiatorID != userID {
		return ErrNotNukeInitiator
	}
	p.timer.Stop()
	delete(n.pending, guildID)
	return nil
}

func (n *nukeService) expire(p *pendingNuke) {
	n.mu.Lock()
	current, ok := n.pending[p.GuildID]
	if !ok || current != p {
		n.mu.Unlock()
		return
	}
	delete(n.pending, p.GuildID)
	callback := n.onExpire
	n.mu.Unlock()

	log.WithFields(log.Fields{
		"guild_id":     p.GuildID,
		"initiator_id": p.InitiatorID,
	}).Info("Economy nuke expired without confirmation")

	if callback != nil {
		callback(p.PendingNuke)
	}
}
