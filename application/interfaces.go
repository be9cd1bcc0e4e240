package application

import (
	"context"

	"coinbot/events"
)

// InterestNotifier posts interest sweep summaries to a guild channel.
// Implemented by the bot over the Discord session.
type InterestNotifier interface {
	NotifyInterest(ctx context.Context, guildID, channelID, message string) error
}

// GuildLister lists the guilds a background job should visit
type GuildLister interface {
	GuildIDs() []string
}

// SnapshotSaver flushes the store to durable storage
type SnapshotSaver interface {
	Save(ctx context.Context) error
}

// EventHandlerRegistry accepts in-process event handlers
type EventHandlerRegistry interface {
	RegisterLocalHandler(eventType events.EventType, handler func(ctx context.Context, event events.Event) error)
}
